package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/cottand/typeflect/catalog"
	"github.com/cottand/typeflect/internal/log"
	"github.com/cottand/typeflect/resolve"
)

var AssignableCmd = &cobra.Command{
	Use:          "assignable <target> <source>",
	Short:        "Check whether a value of the source type can stand where the target type is expected",
	RunE:         runAssignable,
	Args:         cobra.ExactArgs(2),
	SilenceUsage: true,
}

var (
	assignableCatalogPath *string
	assignablePartial     *bool
	assignableLogLevel    *int
)

func init() {
	assignableCatalogPath = AssignableCmd.Flags().StringP("catalog", "c", "typeflect.yaml", "catalog file to resolve against")
	assignablePartial = AssignableCmd.Flags().Bool("partial", false, "treat unresolved generic arguments on the source side as compatible")
	assignableLogLevel = AssignableCmd.Flags().IntP("log-level", "l", int(slog.LevelError), "log level")
}

func runAssignable(cmd *cobra.Command, args []string) error {
	log.SetLevel(slog.Level(*assignableLogLevel))

	cat, err := catalog.LoadFile(*assignableCatalogPath)
	if err != nil {
		return err
	}
	reg := resolve.NewRegistry(cat)
	target := reg.ForType(resolve.Identity(args[0]))
	source := reg.ForType(resolve.Identity(args[1]))

	var ok bool
	if *assignablePartial {
		ok = target.AssignableFromResolvedPart(source)
	} else {
		ok = target.AssignableFrom(source)
	}
	fmt.Printf("%s <- %s: %v\n", target, source, ok)
	if !ok {
		// distinguish "not assignable" from "could not resolve"
		if _, resolved := target.Resolve(); !resolved {
			return fmt.Errorf("could not resolve %q", args[0])
		}
		if _, resolved := source.Resolve(); !resolved {
			return fmt.Errorf("could not resolve %q", args[1])
		}
	}
	return nil
}

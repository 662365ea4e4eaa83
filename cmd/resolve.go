package cmd

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cottand/typeflect/catalog"
	"github.com/cottand/typeflect/internal/log"
	"github.com/cottand/typeflect/resolve"
)

var ResolveCmd = &cobra.Command{
	Use:          "resolve [type]",
	Short:        "Resolve a type against a declaration catalog and describe it",
	Long:         "Resolves the given type reference against the catalog and prints its rendering, generics, shape and hierarchy. With no argument, lists every identity the catalog knows about.",
	RunE:         runResolve,
	Args:         cobra.MaximumNArgs(1),
	SilenceUsage: true,
}

var (
	resolveCatalogPath *string
	resolveLogLevel    *int
)

func init() {
	resolveCatalogPath = ResolveCmd.Flags().StringP("catalog", "c", "typeflect.yaml", "catalog file to resolve against")
	resolveLogLevel = ResolveCmd.Flags().IntP("log-level", "l", int(slog.LevelError), "log level")
}

func runResolve(cmd *cobra.Command, args []string) error {
	log.SetLevel(slog.Level(*resolveLogLevel))

	cat, err := catalog.LoadFile(*resolveCatalogPath)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		for _, id := range cat.Identities() {
			fmt.Println(string(id))
		}
		return nil
	}

	reg := resolve.NewRegistry(cat)
	t := reg.ForType(resolve.Identity(args[0]))
	d, ok := t.Resolve()
	if !ok {
		return fmt.Errorf("could not resolve %q against %s", args[0], *resolveCatalogPath)
	}

	fmt.Printf("%s\n", t)
	fmt.Printf("  qualified: %s\n", d.QualifiedName())
	if generics := t.Generics(); len(generics) > 0 {
		parts := make([]string, len(generics))
		for i, g := range generics {
			parts[i] = g.String()
		}
		fmt.Printf("  generics:  %s\n", strings.Join(parts, ", "))
	}
	if t.IsArray() {
		fmt.Printf("  array of:  %s\n", t.ComponentType())
	}
	if key := t.KeyType(); !key.IsNone() {
		fmt.Printf("  keys:      %s\n", key)
	}
	var supers []string
	for s := t.Supertype(); !s.IsNone(); s = s.Supertype() {
		supers = append(supers, s.String())
	}
	if len(supers) > 0 {
		fmt.Printf("  extends:   %s\n", strings.Join(supers, " > "))
	}
	if interfaces := t.Interfaces(); len(interfaces) > 0 {
		parts := make([]string, len(interfaces))
		for i, iface := range interfaces {
			parts[i] = iface.String()
		}
		fmt.Printf("  implements: %s\n", strings.Join(parts, ", "))
	}
	if t.HasUnresolvableGenerics() {
		fmt.Printf("  note: reachable generics include unresolvable arguments\n")
	}
	return nil
}

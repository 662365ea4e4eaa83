package cmd

import (
	"fmt"
	"go/build"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/traefik/yaegi/interp"
	"github.com/traefik/yaegi/stdlib"

	"github.com/cottand/typeflect/gotypes"
	"github.com/cottand/typeflect/internal/log"
	"github.com/cottand/typeflect/resolve"
)

var EvalCmd = &cobra.Command{
	Use:          "eval <expression>",
	Short:        "Evaluate a Go expression and resolve the type of its value",
	RunE:         runEval,
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
}

var evalLogLevel *int

func init() {
	evalLogLevel = EvalCmd.Flags().IntP("log-level", "l", int(slog.LevelError), "log level")
}

func runEval(cmd *cobra.Command, args []string) error {
	log.SetLevel(slog.Level(*evalLogLevel))

	i := interp.New(interp.Options{GoPath: build.Default.GOPATH, Stdout: os.Stdout, Stderr: os.Stderr})
	if err := i.Use(stdlib.Symbols); err != nil {
		return fmt.Errorf("error loading Go interpreter: %w", err)
	}
	v, err := i.Eval(args[0])
	if err != nil {
		return fmt.Errorf("error during evaluation: %w", err)
	}
	if !v.IsValid() {
		return fmt.Errorf("expression %q produced no value", args[0])
	}

	lookup := gotypes.NewLookup()
	reg := resolve.NewRegistry(lookup)
	t := reg.ForValue(lookup.Value(v.Interface()))
	if t.IsNone() {
		fmt.Println("?")
		return nil
	}

	fmt.Printf("%s\n", t)
	if t.IsArray() {
		fmt.Printf("  array of: %s\n", t.ComponentType())
	}
	if key := t.KeyType(); !key.IsNone() {
		fmt.Printf("  keys:     %s\n", key)
	}
	return nil
}

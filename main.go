package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/cottand/typeflect/cmd"
)

func main() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:          "typeflect [subcommand]",
	Short:        "typeflect 🧭\n navigate and compare generic types declared in a catalog",
	Args:         cobra.MinimumNArgs(1),
	SilenceUsage: true,
}

func init() {
	rootCmd.AddCommand(cmd.ResolveCmd)
	rootCmd.AddCommand(cmd.AssignableCmd)
	rootCmd.AddCommand(cmd.EvalCmd)
}

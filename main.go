//go:build !(js || wasm)

package main

import (
	"os"

	"github.com/cottand/gradual/cmd"
	"github.com/spf13/cobra"
)

func main() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:          "gradual [subcommand]",
	Short:        "gradual\n a gradual typechecker for Python syntax trees",
	Args:         cobra.MinimumNArgs(1),
	SilenceUsage: true,
}

func init() {
	rootCmd.AddCommand(cmd.CheckCmd)
	rootCmd.AddCommand(cmd.ScopeCmd)
}

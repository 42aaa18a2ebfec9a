package cmd

import (
	"io"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var ScopeCmd = &cobra.Command{
	Use:          "scope FILE.json",
	Short:        "Print the types inferred for the top-level identifiers of a module",
	RunE:         runScope,
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
}

var scopeOptions options

func init() {
	scopeOptions.register(ScopeCmd)
}

func runScope(cmd *cobra.Command, args []string) error {
	cfg, err := scopeOptions.resolve(cmd)
	if err != nil {
		return err
	}
	unit, err := loadFile(args[0], settings(cfg))
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if unit.Errors().HasError() {
		printErrors(out, args[0], unit, colored(cfg, out))
		return errors.Errorf("%s failed to check", args[0])
	}
	_, err = io.WriteString(out, unit.DisplayScope())
	return err
}

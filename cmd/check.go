package cmd

import (
	"github.com/cottand/gradual/gradual"
	"github.com/dustin/go-humanize/english"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var CheckCmd = &cobra.Command{
	Use:          "check FILE.json...",
	Short:        "Typecheck modules from their JSON syntax trees",
	RunE:         runCheck,
	Args:         cobra.MinimumNArgs(1),
	SilenceUsage: true,
}

var (
	checkOptions options
	checkJobs    int
)

func init() {
	checkOptions.register(CheckCmd)
	CheckCmd.Flags().IntVarP(&checkJobs, "jobs", "j", 4, "units checked at the same time")
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg, err := checkOptions.resolve(cmd)
	if err != nil {
		return err
	}
	// units are independent, each is checked start to finish by one goroutine
	units := make([]*gradual.Unit, len(args))
	var group errgroup.Group
	group.SetLimit(max(checkJobs, 1))
	for i, target := range args {
		group.Go(func() error {
			unit, err := loadFile(target, settings(cfg))
			if err != nil {
				return err
			}
			units[i] = unit
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return err
	}

	color := colored(cfg, cmd.OutOrStdout())
	failed := 0
	for i, unit := range units {
		if !unit.Errors().HasError() {
			continue
		}
		failed++
		printErrors(cmd.OutOrStdout(), args[i], unit, color)
	}
	cliLogger.Info("checked units", "units", len(units), "failed", failed)
	if failed > 0 {
		return errors.Errorf("%s of %s failed to check", english.Plural(failed, "unit", ""), english.Plural(len(units), "unit", ""))
	}
	return nil
}

package main

import (
	"github.com/spf13/cobra"

	"github.com/backmassage/bitv/internal/classify"
)

var reportCmd = &cobra.Command{
	Use:     "report <report.json>",
	Aliases: []string{"apply"},
	Short:   "Replay a saved analysis report",
	Long: `Sort the files listed in a previously saved analysis report into the
tier directories the report assigned, without probing them again. Files
that no longer exist at their recorded path are skipped, so re-applying
an already applied report is a no-op.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if f := cmd.Flags(); f.Changed("move") {
			cfg.Move, _ = f.GetBool("move")
		}

		engine, err := classify.New(&cfg, log)
		if err != nil {
			return err
		}
		rep, err := engine.ClassifyFromReport(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		if len(rep.Results) == 0 {
			log.Info("nothing to do, all files from the report are already gone")
		}
		if rep.Stats.FailedOperations > 0 {
			log.Warnf("%d operations failed, see the run log for details",
				rep.Stats.FailedOperations)
		}
		return nil
	},
}

func init() {
	reportCmd.Flags().BoolP("move", "m", false, "move files instead of copying")
	rootCmd.AddCommand(reportCmd)
}

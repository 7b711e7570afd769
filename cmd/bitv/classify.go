package main

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"github.com/backmassage/bitv/internal/check"
	"github.com/backmassage/bitv/internal/classify"
)

var classifyCmd = &cobra.Command{
	Use:   "classify <source> [target]",
	Short: "Sort videos into bitrate tier directories",
	Long: `Probe every video under <source> and move or copy it into a tier
directory under [target] (defaults to <source>). A per-run report and a
plain-text log are written under <target>/logs/.

Unreadable files are recorded as failures and left in place; the run
continues.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := check.EnsureProbe(&cfg); err != nil {
			return err
		}
		if f := cmd.Flags(); f.Changed("move") {
			cfg.Move, _ = f.GetBool("move")
		}

		target := ""
		if len(args) == 2 {
			target = args[1]
		}

		engine, err := classify.New(&cfg, log)
		if err != nil {
			return err
		}
		log.Debugf("tier table: %s", strings.Join(engine.Table().Labels(), " "))
		rep, err := engine.ClassifyDir(cmd.Context(), args[0], target)
		if errors.Is(err, classify.ErrNoFiles) {
			log.Warn("no video files found, nothing to do")
			return nil
		}
		if err != nil {
			return err
		}
		if rep.Stats.FailedOperations > 0 {
			log.Warnf("%d of %d files failed, see the run log for details",
				rep.Stats.FailedOperations, rep.TotalFiles)
		}
		return nil
	},
}

func init() {
	classifyCmd.Flags().BoolP("move", "m", false, "move files instead of copying")
	rootCmd.AddCommand(classifyCmd)
}

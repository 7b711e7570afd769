package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/backmassage/bitv/internal/analyze"
	"github.com/backmassage/bitv/internal/check"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <folder>",
	Short: "Probe videos and report their bitrate tiers without moving anything",
	Long: `Probe every video under <folder> and print the bitrate tier distribution.
A JSON report is saved into the folder; feed it to "bitv report" to
perform the sort later.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := check.EnsureProbe(&cfg); err != nil {
			return err
		}
		noSave, _ := cmd.Flags().GetBool("no-save")
		output, _ := cmd.Flags().GetString("output")

		a, err := analyze.New(&cfg, log)
		if err != nil {
			return err
		}
		rep, err := a.AnalyzeDir(cmd.Context(), args[0], !noSave, output)
		if errors.Is(err, analyze.ErrNoFiles) {
			log.Warn("no video files found")
			return nil
		}
		if err != nil {
			return err
		}
		fmt.Fprint(os.Stdout, a.Summary(rep))
		return nil
	},
}

var analyzeFileCmd = &cobra.Command{
	Use:     "analyze-file <file>",
	Aliases: []string{"info"},
	Short:   "Probe a single video file",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := check.EnsureProbe(&cfg); err != nil {
			return err
		}
		a, err := analyze.New(&cfg, log)
		if err != nil {
			return err
		}
		rec, err := a.AnalyzeFile(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		fmt.Printf("file:       %s\n", rec.Info.Filename)
		fmt.Printf("duration:   %s\n", rec.Info.DurationFormatted)
		fmt.Printf("resolution: %s\n", rec.Info.Resolution)
		fmt.Printf("fps:        %.1f\n", rec.Info.FPS)
		fmt.Printf("size:       %.1f MB\n", rec.Info.SizeMB)
		fmt.Printf("bitrate:    %s\n", rec.Info.BitrateFormatted)
		fmt.Printf("tier:       %s\n", rec.BitrateLevel)
		return nil
	},
}

func init() {
	analyzeCmd.Flags().Bool("no-save", false, "print the summary only, do not write a report")
	analyzeCmd.Flags().StringP("output", "o", "", "write the report to this path instead of into the folder")
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(analyzeFileCmd)
}

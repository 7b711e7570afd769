package main

import (
	"github.com/spf13/cobra"

	"github.com/backmassage/bitv/internal/check"
	"github.com/backmassage/bitv/internal/config"
	"github.com/backmassage/bitv/internal/extract"
)

var extractCmd = &cobra.Command{
	Use:   "extract <folder> [output-folder]",
	Short: "Extract audio tracks from videos",
	Long: `Extract the audio track of every video under <folder> into
[output-folder] (defaults to <folder>). Outputs that already exist are
skipped, so an interrupted batch can simply be rerun.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := check.EnsureFfmpeg(&cfg); err != nil {
			return err
		}
		f := cmd.Flags()
		if f.Changed("format") {
			v, _ := f.GetString("format")
			cfg.AudioFormat = config.AudioFormat(v)
		}
		if f.Changed("bitrate") {
			cfg.AudioBitrate, _ = f.GetString("bitrate")
		}
		if err := cfg.Validate(); err != nil {
			return err
		}

		outDir := ""
		if len(args) == 2 {
			outDir = args[1]
		}

		res, err := extract.New(&cfg, log).ExtractDir(cmd.Context(), args[0], outDir)
		if err != nil {
			return err
		}
		log.Infof("extracted %d, skipped %d, failed %d", res.Extracted, res.Skipped, res.Failed)
		return nil
	},
}

func init() {
	extractCmd.Flags().String("format", "aac", "audio output format (aac, mp3, copy)")
	extractCmd.Flags().String("bitrate", "192k", "audio bitrate for re-encoding formats")
	rootCmd.AddCommand(extractCmd)
}

package main

import (
	"github.com/spf13/cobra"

	"github.com/backmassage/bitv/internal/check"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Verify ffprobe, ffmpeg and the audio encoder are usable",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		check.RunCheck(&cfg, log)
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

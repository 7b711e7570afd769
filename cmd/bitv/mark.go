package main

import (
	"github.com/spf13/cobra"

	"github.com/backmassage/bitv/internal/marker"
)

var markCmd = &cobra.Command{
	Use:   "mark",
	Short: "Hide and unhide videos behind the " + marker.Ext + " marker extension",
}

var markHideCmd = &cobra.Command{
	Use:   "hide <folder>",
	Short: "Hide videos from media scanners by appending " + marker.Ext,
	Long: `Rename every video under <folder> by appending the marker extension
("movie.mp4" becomes "movie.mp4` + marker.Ext + `"). Content and modification
times are untouched; "bitv mark unhide" reverses the operation exactly.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := marker.New(&cfg, log).Hide(args[0])
		return err
	},
}

var markUnhideCmd = &cobra.Command{
	Use:   "unhide <folder>",
	Short: "Restore the original names of hidden videos",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := marker.New(&cfg, log).Unhide(args[0])
		return err
	},
}

func init() {
	markCmd.AddCommand(markHideCmd)
	markCmd.AddCommand(markUnhideCmd)
	rootCmd.AddCommand(markCmd)
}

package main

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/backmassage/bitv/internal/config"
	"github.com/backmassage/bitv/internal/display"
	"github.com/backmassage/bitv/internal/logging"
)

// Shared state assembled by the persistent pre-run hook, in effect for every
// subcommand.
var (
	cfg      config.Config
	log      *logrus.Logger
	closeLog func() error

	configPath string
)

var rootCmd = &cobra.Command{
	Use:   "bitv",
	Short: "Sort video files into bitrate tiers",
	Long: `bitv probes video files with ffprobe, derives each file's real bitrate
from its size and duration, and sorts the files into tier directories
named after the bitrate ceiling they fall under ("05MB", "10MB", ...,
"overflow").`,
	SilenceUsage:  true,
	SilenceErrors: false,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg = config.Default()

		path := configPath
		if path == "" {
			path = config.DefaultFilePath()
		}
		if path != "" {
			if err := cfg.ApplyFile(path); err != nil {
				return err
			}
		}
		applyFlagOverrides(cmd)
		if err := cfg.Validate(); err != nil {
			return err
		}

		var err error
		log, closeLog, err = logging.New(&cfg)
		if err != nil {
			return fmt.Errorf("set up logging: %w", err)
		}
		display.PrintBanner()
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if closeLog != nil {
			closeLog()
		}
	},
}

// applyFlagOverrides copies explicitly set flags over file and default
// values. Only changed flags override, so a config file value survives when
// the flag is left at its default.
func applyFlagOverrides(cmd *cobra.Command) {
	f := cmd.Flags()
	if f.Changed("step") {
		cfg.StepMegabits, _ = f.GetFloat64("step")
	}
	if f.Changed("levels") {
		cfg.Levels, _ = f.GetInt("levels")
	}
	if f.Changed("recursive") {
		cfg.Recursive, _ = f.GetBool("recursive")
	}
	if f.Changed("jobs") {
		cfg.Jobs, _ = f.GetInt("jobs")
	}
	if f.Changed("ffprobe") {
		cfg.FfprobePath, _ = f.GetString("ffprobe")
	}
	if f.Changed("ffmpeg") {
		cfg.FfmpegPath, _ = f.GetString("ffmpeg")
	}
	if f.Changed("log-level") {
		cfg.LogLevel, _ = f.GetString("log-level")
	}
	if f.Changed("log-file") {
		cfg.LogFile, _ = f.GetString("log-file")
	}
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configPath, "config", "", "config file (default ~/.config/bitv/config.toml)")
	pf.Float64("step", 5, "tier width in Mbps")
	pf.Int("levels", 10, "number of finite tiers before overflow")
	pf.BoolP("recursive", "r", false, "scan subdirectories")
	pf.Int("jobs", 4, "concurrent ffprobe workers (analyze only)")
	pf.String("ffprobe", "ffprobe", "ffprobe binary")
	pf.String("ffmpeg", "ffmpeg", "ffmpeg binary")
	pf.String("log-level", "info", "log level (debug, info, warn, error)")
	pf.String("log-file", "", "also write logs to this file")
}

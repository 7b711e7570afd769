// bitv sorts video collections into bitrate tiers. It probes files with
// ffprobe, derives the real bitrate from size and duration, and moves or
// copies each file into a tier directory ("05MB", "10MB", ..., "overflow").
// Companion commands analyze folders without touching them, replay a saved
// analysis, extract audio tracks, and hide files behind a marker extension.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

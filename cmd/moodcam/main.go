// moodcam serves a webcam feed and suggests advice based on the detected
// facial expression. Without a model or camera it runs in demo mode with
// random emotions.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/teslashibe/moodcam/internal/config"
)

var version = "dev"

var rootCmd = &cobra.Command{
	Use:   "moodcam",
	Short: "Webcam emotion detection with canned advice",
	Long: `moodcam streams a local webcam to the browser and, on request, classifies
the current frame into one of seven emotions (Angry, Disgust, Fear, Happy,
Neutral, Sad, Surprise) and returns advice for it.

Without a trained model or a working camera it falls back to placeholder
frames and random emotions.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "moodcam:", err)
		os.Exit(exitCode(err))
	}
}

func init() {
	rootCmd.AddCommand(serveCmd, probeCmd, watchCmd, snapshotCmd)
}

// exitCode is 2 for bad configuration and 1 for everything else.
func exitCode(err error) int {
	if config.IsConfigError(err) {
		return 2
	}
	return 1
}

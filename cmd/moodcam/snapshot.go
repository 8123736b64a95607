package main

import (
	"encoding/base64"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/teslashibe/moodcam/internal/httpc"
	"github.com/teslashibe/moodcam/pkg/resolver"
)

var (
	snapshotServer string
	snapshotOut    string
)

var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Take one reading from a running server and save its image",
	RunE:  runSnapshot,
}

func init() {
	snapshotCmd.Flags().StringVarP(&snapshotServer, "server", "s", "http://localhost:5000", "Server base URL")
	snapshotCmd.Flags().StringVarP(&snapshotOut, "out", "o", "snapshot.jpg", "Where to write the JPEG (empty to skip)")
}

type snapshotReading struct {
	resolver.Event
	Image string `json:"image"`
}

func runSnapshot(cmd *cobra.Command, args []string) error {
	endpoint := strings.TrimSuffix(snapshotServer, "/") + "/api/reading"

	var reading snapshotReading
	if err := httpc.GetJSON(cmd.Context(), nil, endpoint, &reading); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, formatEvent(reading.Event))

	if snapshotOut == "" {
		return nil
	}
	data, err := base64.StdEncoding.DecodeString(reading.Image)
	if err != nil {
		return fmt.Errorf("decode image: %w", err)
	}
	if err := os.WriteFile(snapshotOut, data, 0644); err != nil {
		return err
	}
	fmt.Fprintf(out, "Saved %s (%d bytes)\n", snapshotOut, len(data))
	return nil
}

package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/teslashibe/moodcam/internal/log"
	"github.com/teslashibe/moodcam/pkg/camera"
	"github.com/teslashibe/moodcam/pkg/camera/opencv"
)

var probeJSON bool

var probeCmd = &cobra.Command{
	Use:   "probe",
	Short: "List which camera indices open and deliver frames",
	Long: `Try every camera index below --max-index, read one frame from each and
report whether it opened, whether it captured and the frame size.`,
	RunE: runProbe,
}

func init() {
	addCameraFlags(probeCmd)
	probeCmd.Flags().BoolVar(&probeJSON, "json", false, "Output as JSON")
}

func runProbe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	log.Init(cfg.LogLevel)

	camCfg := cameraConfig(cfg)
	results := camera.Probe(opencv.Opener(camCfg.Width, camCfg.Height), camCfg.Candidates())

	if probeJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		if err := enc.Encode(results); err != nil {
			return err
		}
	} else {
		printProbe(cmd.OutOrStdout(), results)
	}

	if _, ok := camera.FirstWorking(results); !ok {
		return errors.New("no working camera found")
	}
	return nil
}

func printProbe(out io.Writer, results []camera.ProbeResult) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "INDEX\tOPENED\tCAPTURED\tSIZE\tERROR")
	for _, r := range results {
		size := "-"
		if r.Captured {
			size = fmt.Sprintf("%dx%d", r.Width, r.Height)
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n", r.Index, yesNo(r.Opened), yesNo(r.Captured), size, r.Err)
	}
	w.Flush()

	if first, ok := camera.FirstWorking(results); ok {
		fmt.Fprintf(out, "\nUse CAMERA_INDEX=%d\n", first.Index)
	}
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}


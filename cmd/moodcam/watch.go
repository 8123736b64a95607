package main

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/gorilla/websocket"
	"github.com/spf13/cobra"
	"github.com/teslashibe/moodcam/pkg/resolver"
)

var (
	watchServer string
	watchCount  int
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Print readings from a running server as they happen",
	RunE:  runWatch,
}

func init() {
	watchCmd.Flags().StringVarP(&watchServer, "server", "s", "http://localhost:5000", "Server base URL")
	watchCmd.Flags().IntVarP(&watchCount, "count", "n", 0, "Stop after this many readings (0 = forever)")
}

func runWatch(cmd *cobra.Command, args []string) error {
	wsURL, err := readingsURL(watchServer)
	if err != nil {
		return err
	}

	conn, _, err := websocket.DefaultDialer.DialContext(cmd.Context(), wsURL, nil)
	if err != nil {
		return fmt.Errorf("connect %s: %w", wsURL, err)
	}
	defer conn.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go func() {
		<-ctx.Done()
		conn.Close()
	}()

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Watching %s\n", wsURL)

	for seen := 0; watchCount == 0 || seen < watchCount; seen++ {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("read: %w", err)
		}

		var ev resolver.Event
		if err := json.Unmarshal(data, &ev); err != nil {
			return fmt.Errorf("decode event: %w", err)
		}
		fmt.Fprintln(out, formatEvent(ev))
	}
	return nil
}

// readingsURL turns an http(s) base URL into the readings websocket URL.
func readingsURL(base string) (string, error) {
	u, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("invalid server URL %q: %w", base, err)
	}
	switch u.Scheme {
	case "http", "ws", "":
		u.Scheme = "ws"
	case "https", "wss":
		u.Scheme = "wss"
	default:
		return "", fmt.Errorf("unsupported scheme %q", u.Scheme)
	}
	if u.Host == "" {
		return "", fmt.Errorf("invalid server URL %q: missing host", base)
	}
	u.Path = strings.TrimSuffix(u.Path, "/") + "/ws/readings"
	return u.String(), nil
}

func formatEvent(ev resolver.Event) string {
	var label string
	if ev.Strategy == resolver.StrategyClassifier {
		label = fmt.Sprintf("%s (%.0f%%)", ev.Emotion, ev.Confidence*100)
	} else {
		label = "DEMO: " + ev.Emotion
	}
	return fmt.Sprintf("%s  %-16s %s", ev.CreatedAt.Format("15:04:05"), label, ev.Advice)
}

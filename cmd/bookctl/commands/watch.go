package commands

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/gorilla/websocket"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(watchCmd)
}

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Streams scrape lifecycle events from the API.",
	RunE: func(cmd *cobra.Command, args []string) error {
		endpoint, err := websocketURL(apiURL, "/api/v1/scraping/events")
		if err != nil {
			return fmt.Errorf("ws url: %w", err)
		}

		for {
			err := watch(cmd, endpoint)
			if cmd.Context().Err() != nil {
				return nil
			}
			slog.Warn("event stream disconnected", "err", err)
			time.Sleep(time.Second)
		}
	},
}

func watch(cmd *cobra.Command, endpoint string) error {
	conn, _, err := websocket.DefaultDialer.DialContext(cmd.Context(), endpoint, nil)
	if err != nil {
		return err
	}
	defer conn.Close()

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-cmd.Context().Done():
			_ = conn.Close()
		case <-done:
		}
	}()

	slog.Info("connected", "url", endpoint)
	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			return err
		}
		var obj map[string]any
		if err := json.Unmarshal(msg, &obj); err != nil {
			fmt.Println(string(msg))
			continue
		}
		b, _ := json.MarshalIndent(obj, "", "  ")
		fmt.Println(string(b))
	}
}

package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"bookhub/pkg/datastore"
)

const defaultAPIURL = "http://localhost:8080"

var (
	apiURL    string
	tokenPath string
	dataDir   string
)

var rootCmd = &cobra.Command{
	Use:   "bookctl",
	Short: "bookctl administers a bookhub data directory and talks to a running API.",
}

func init() {
	api := os.Getenv("BOOKHUB_API_URL")
	if api == "" {
		api = defaultAPIURL
	}
	rootCmd.PersistentFlags().StringVar(&apiURL, "api", api, "API base URL")
	rootCmd.PersistentFlags().StringVar(&tokenPath, "token", defaultTokenPath(), "token file path")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data", datastore.DefaultConfig().Dir, "data directory")
}

func dataConfig() datastore.Config {
	return datastore.Config{Dir: dataDir}
}

func ExecuteContext(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

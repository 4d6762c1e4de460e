package commands

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-resty/resty/v2"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(triggerCmd)
}

var triggerCmd = &cobra.Command{
	Use:   "trigger",
	Short: "Triggers a scrape run on the API and waits for its summary.",
	RunE: func(cmd *cobra.Command, args []string) error {
		td, err := readTokens(tokenPath)
		if err != nil {
			return err
		}
		client := newClient(apiURL)

		res, err := postTrigger(cmd, client, td.AccessToken)
		if err == nil && res.StatusCode() == http.StatusUnauthorized && td.RefreshToken != "" {
			// access token likely expired; refresh once and retry
			if td, err = refreshTokens(cmd, client, td); err != nil {
				return err
			}
			res, err = postTrigger(cmd, client, td.AccessToken)
		}
		if err := checkResponse(res, err); err != nil {
			return err
		}

		var pretty map[string]any
		if err := json.Unmarshal(res.Body(), &pretty); err != nil {
			return err
		}
		b, _ := json.MarshalIndent(pretty, "", "  ")
		fmt.Println(string(b))
		return nil
	},
}

func postTrigger(cmd *cobra.Command, client *resty.Client, token string) (*resty.Response, error) {
	return client.R().
		SetContext(cmd.Context()).
		SetAuthToken(token).
		Post("/scraping/trigger")
}

func refreshTokens(cmd *cobra.Command, client *resty.Client, td tokenData) (tokenData, error) {
	var out loginResponse
	res, err := client.R().
		SetContext(cmd.Context()).
		SetBody(map[string]string{"refresh_token": td.RefreshToken}).
		SetResult(&out).
		Post("/auth/refresh")
	if err := checkResponse(res, err); err != nil {
		return tokenData{}, fmt.Errorf("refresh failed, please login: %w", err)
	}

	td.AccessToken = out.AccessToken
	if err := saveTokens(tokenPath, td); err != nil {
		return tokenData{}, fmt.Errorf("save token: %w", err)
	}
	return td, nil
}

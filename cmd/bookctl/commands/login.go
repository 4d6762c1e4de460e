package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	loginUsername string
	loginPassword string
)

func init() {
	loginCmd.Flags().StringVar(&loginUsername, "username", "", "username")
	loginCmd.Flags().StringVar(&loginPassword, "password", "", "password")
	_ = loginCmd.MarkFlagRequired("username")
	_ = loginCmd.MarkFlagRequired("password")
	rootCmd.AddCommand(loginCmd)
}

type loginResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int    `json:"expires_in"`
}

var loginCmd = &cobra.Command{
	Use:   "login --username <name> --password <pw>",
	Short: "Logs in and stores the token pair.",
	RunE: func(cmd *cobra.Command, args []string) error {
		var out loginResponse
		res, err := newClient(apiURL).R().
			SetContext(cmd.Context()).
			SetBody(map[string]string{"username": loginUsername, "password": loginPassword}).
			SetResult(&out).
			Post("/auth/login")
		if err := checkResponse(res, err); err != nil {
			return fmt.Errorf("login failed: %w", err)
		}

		if err := saveTokens(tokenPath, tokenData{AccessToken: out.AccessToken, RefreshToken: out.RefreshToken}); err != nil {
			return fmt.Errorf("save token: %w", err)
		}
		fmt.Printf("logged in, access token valid for %ds\n", out.ExpiresIn)
		return nil
	},
}

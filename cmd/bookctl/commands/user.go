package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"

	"bookhub/internal/auth"
	"bookhub/pkg/models"
)

var (
	userUsername string
	userEmail    string
	userPassword string
	userInactive bool
)

func init() {
	userAddCmd.Flags().StringVar(&userUsername, "username", "", "username (required)")
	userAddCmd.Flags().StringVar(&userEmail, "email", "", "email address")
	userAddCmd.Flags().StringVar(&userPassword, "password", "", "password (required, 8-72 chars)")
	userAddCmd.Flags().BoolVar(&userInactive, "inactive", false, "create the account disabled")
	_ = userAddCmd.MarkFlagRequired("username")
	_ = userAddCmd.MarkFlagRequired("password")

	userCmd.AddCommand(userAddCmd, userListCmd)
	rootCmd.AddCommand(userCmd)
}

var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Manages API accounts in users.json.",
}

var userAddCmd = &cobra.Command{
	Use:   "add --username <name> --password <pw> [--email <email>]",
	Short: "Creates an account; the API has no signup endpoint.",
	RunE: func(cmd *cobra.Command, args []string) error {
		repo := auth.NewRepo(dataConfig().UsersPath())
		u, err := addUser(cmd.Context(), repo, userUsername, userEmail, userPassword, !userInactive)
		if err != nil {
			return err
		}
		fmt.Printf("created user %s (%s)\n", u.Username, u.ID)
		return nil
	},
}

var userListCmd = &cobra.Command{
	Use:   "list",
	Short: "Lists accounts.",
	RunE: func(cmd *cobra.Command, args []string) error {
		users, err := auth.NewRepo(dataConfig().UsersPath()).List(cmd.Context())
		if err != nil {
			return err
		}

		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.AppendHeader(table.Row{"ID", "Username", "Email", "Active", "Created"})
		for _, u := range users {
			created := ""
			if u.CreatedAt != nil {
				created = u.CreatedAt.Format(time.RFC3339)
			}
			t.AppendRow(table.Row{u.ID, u.Username, u.Email, u.IsActive, created})
		}
		t.SetStyle(table.StyleRounded)
		t.Render()
		return nil
	},
}

func addUser(ctx context.Context, repo *auth.Repo, username, email, password string, active bool) (models.User, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(strings.ToLower(email))

	if len(username) < 3 || len(username) > 30 {
		return models.User{}, errors.New("username must be 3-30 chars")
	}
	if email != "" && !strings.Contains(email, "@") {
		return models.User{}, errors.New("invalid email")
	}
	if len(password) < 8 || len(password) > 72 {
		return models.User{}, errors.New("password must be 8-72 chars")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now().UTC()
	u := models.User{
		ID:        uuid.NewString(),
		Username:  username,
		Password:  string(hash),
		Email:     email,
		IsActive:  active,
		CreatedAt: &now,
	}
	if err := repo.Create(ctx, u); err != nil {
		return models.User{}, err
	}
	return u, nil
}

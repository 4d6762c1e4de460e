package commands

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

type tokenData struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type apiError struct {
	Error string `json:"error"`
}

func newClient(base string) *resty.Client {
	c := resty.New()
	c.SetBaseURL(strings.TrimRight(base, "/") + "/api/v1")
	c.SetTimeout(15 * time.Minute) // a trigger waits for the whole run
	c.SetHeader("Accept", "application/json")
	return c
}

// checkResponse turns a non-2xx response into an error carrying the API's
// error message.
func checkResponse(res *resty.Response, err error) error {
	if err != nil {
		return err
	}
	if res.IsSuccess() {
		return nil
	}
	var body apiError
	if json.Unmarshal(res.Body(), &body) == nil && body.Error != "" {
		return fmt.Errorf("%s %s: %d %s", res.Request.Method, res.Request.URL, res.StatusCode(), body.Error)
	}
	return fmt.Errorf("%s %s: %d %s", res.Request.Method, res.Request.URL, res.StatusCode(), strings.TrimSpace(res.String()))
}

func defaultTokenPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "./.bookhub-token.json"
	}
	return filepath.Join(home, ".bookhub", "token.json")
}

func saveTokens(path string, td tokenData) error {
	if td.AccessToken == "" {
		return errors.New("empty token")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(td, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}

func readTokens(path string) (tokenData, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return tokenData{}, fmt.Errorf("token not found, please login: %w", err)
	}
	var td tokenData
	if err := json.Unmarshal(data, &td); err != nil {
		return tokenData{}, err
	}
	if strings.TrimSpace(td.AccessToken) == "" {
		return tokenData{}, errors.New("token empty, please login")
	}
	return td, nil
}

func websocketURL(baseURL, path string) (string, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return "", err
	}
	scheme := "ws"
	if u.Scheme == "https" {
		scheme = "wss"
	}
	return (&url.URL{
		Scheme: scheme,
		Host:   u.Host,
		Path:   path,
	}).String(), nil
}

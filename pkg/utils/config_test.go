package utils

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadAuthConfigDefaults(t *testing.T) {
	t.Setenv("BOOKHUB_JWT_SECRET", "")
	t.Setenv("BOOKHUB_ACCESS_TTL", "")
	t.Setenv("BOOKHUB_REFRESH_TTL", "")

	cfg := LoadAuthConfig()
	require.Equal(t, "dev-secret-change-me", cfg.JWTSecret)
	require.Equal(t, 30*time.Minute, cfg.AccessTTL)
	require.Equal(t, 7*24*time.Hour, cfg.RefreshTTL)
}

func TestLoadScraperConfigOverrides(t *testing.T) {
	t.Setenv("BOOKHUB_SOURCE_URL", "http://localhost:9000")
	t.Setenv("BOOKHUB_FETCH_TIMEOUT", "3s")
	t.Setenv("BOOKHUB_MAX_BOOKS_PER_CATEGORY", "5")
	t.Setenv("BOOKHUB_SCRAPE_COOLDOWN", "garbage")

	cfg := LoadScraperConfig()
	require.Equal(t, "http://localhost:9000", cfg.SourceURL)
	require.Equal(t, 3*time.Second, cfg.FetchTimeout)
	require.Equal(t, 5, cfg.MaxPerCategory)
	require.Equal(t, time.Hour, cfg.Cooldown)
}

func TestParseLevel(t *testing.T) {
	require.Equal(t, slog.LevelDebug, parseLevel("DEBUG"))
	require.Equal(t, slog.LevelWarn, parseLevel("warning"))
	require.Equal(t, slog.LevelInfo, parseLevel(""))
}

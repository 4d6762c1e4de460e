package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"bookhub/internal/auth"
	"bookhub/internal/book"
	"bookhub/internal/category"
	"bookhub/internal/events"
	"bookhub/internal/health"
	"bookhub/internal/scraper"
	"bookhub/internal/scraping"
	"bookhub/internal/server"
	"bookhub/pkg/datastore"
	"bookhub/pkg/utils"
)

func main() {
	utils.LoadDotEnv()
	utils.InitLogger()

	data := datastore.DefaultConfig()
	if err := datastore.EnsureDataDir(data); err != nil {
		slog.Error("failed to create data dir", "dir", data.Dir, "err", err)
		os.Exit(1)
	}

	srvCfg := utils.LoadServerConfig()
	scrCfg := utils.LoadScraperConfig()
	authCfg := utils.LoadAuthConfig()

	tokens := auth.TokenService{
		Secret:     []byte(authCfg.JWTSecret),
		Issuer:     authCfg.JWTIssuer,
		AccessTTL:  authCfg.AccessTTL,
		RefreshTTL: authCfg.RefreshTTL,
	}

	fetcher := scraper.NewHTTPFetcher(scraper.FetcherOptions{
		UserAgent:      scrCfg.UserAgent,
		Timeout:        scrCfg.FetchTimeout,
		RequestsPerSec: scrCfg.RequestsPerSec,
	})
	hub := events.NewHub()
	coord := scraping.NewCoordinator(
		scraper.New(fetcher, scrCfg.SourceURL, scrCfg.MaxPerCategory),
		scraper.NewWriter(data),
		data.BooksPath(),
		scrCfg.Cooldown,
	)
	coord.Publisher = hub

	router := server.NewRouter(server.Deps{
		Books:          book.NewService(book.NewRepo(data.BooksPath())),
		Categories:     category.NewRepo(data.CategoriesPath()),
		Users:          auth.NewRepo(data.UsersPath()),
		Tokens:         tokens,
		Coordinator:    coord,
		Health:         health.NewChecker(data, scrCfg.SourceURL+"/", scrCfg.UserAgent, scrCfg.FetchTimeout),
		Hub:            hub,
		RateLimitRPS:   srvCfg.RateLimitRPS,
		RateLimitBurst: srvCfg.RateLimitBurst,
	})

	httpSrv := &http.Server{
		Addr:              srvCfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("HTTP API server listening", "addr", srvCfg.Addr, "data_dir", data.Dir)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		slog.Info("shutdown signal received", "signal", sig.String())
	case err := <-errCh:
		slog.Error("server error", "err", err)
	}

	slog.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		slog.Error("http shutdown error", "err", err)
	}
	slog.Info("server stopped")
}

package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"

	"bookhub/internal/book"
	"bookhub/internal/scraper"
	"bookhub/pkg/datastore"
	"bookhub/pkg/utils"
)

func main() {
	utils.LoadDotEnv()
	utils.InitLogger()

	cfg := utils.LoadScraperConfig()
	data := datastore.DefaultConfig()

	var (
		dataDir = flag.String("data", data.Dir, "output directory for books.json, categories.json and books.csv")
		source  = flag.String("source", cfg.SourceURL, "catalog base URL")
		maxPer  = flag.Int("max-per-category", cfg.MaxPerCategory, "cap books per category (0 = all)")
		rps     = flag.Float64("rps", cfg.RequestsPerSec, "max upstream requests per second (0 = unlimited)")
	)
	flag.Parse()
	data.Dir = *dataDir

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	fetcher := scraper.NewHTTPFetcher(scraper.FetcherOptions{
		UserAgent:      cfg.UserAgent,
		Timeout:        cfg.FetchTimeout,
		RequestsPerSec: *rps,
	})
	s := scraper.New(fetcher, *source, *maxPer)

	slog.Info("starting scrape", "source", *source, "data_dir", data.Dir)
	start := time.Now()

	res, err := s.Run(ctx)
	if err != nil {
		slog.Error("scrape failed", "err", err)
		os.Exit(1)
	}
	if err := scraper.NewWriter(data).Save(ctx, res); err != nil {
		slog.Error("save failed", "err", err)
		os.Exit(1)
	}

	printSummary(res, time.Since(start))
}

func printSummary(res *scraper.Result, elapsed time.Duration) {
	ov := book.ComputeOverview(res.Books)

	inStockPct := 0.0
	if ov.TotalBooks > 0 {
		inStockPct = float64(ov.BooksInStock) / float64(ov.TotalBooks) * 100
	}

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetTitle("Scrape summary")
	t.AppendRows([]table.Row{
		{"Categories", len(res.Categories)},
		{"Books", ov.TotalBooks},
		{"In stock", fmt.Sprintf("%d (%.1f%%)", ov.BooksInStock, inStockPct)},
		{"Average price", "£" + ov.PriceStats.Average.StringFixed(2)},
		{"Price range", "£" + ov.PriceStats.Minimum.StringFixed(2) + " - £" + ov.PriceStats.Maximum.StringFixed(2)},
		{"Elapsed", elapsed.Round(time.Millisecond).String()},
	})
	t.SetStyle(table.StyleRounded)
	t.Render()
}

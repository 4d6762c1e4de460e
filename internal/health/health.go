package health

import (
	"context"
	"log/slog"
	"time"

	"github.com/go-resty/resty/v2"

	"bookhub/pkg/datastore"
)

const (
	StatusOK    = "ok"
	StatusNotOK = "not_ok"
)

type DataFiles struct {
	BooksJSON      string `json:"books_json"`
	CategoriesJSON string `json:"categories_json"`
}

type Services struct {
	API           string    `json:"api"`
	DataFiles     DataFiles `json:"data_files"`
	BooksToScrape string    `json:"books_to_scrape"`
}

type Checks struct {
	BooksFileExists         bool `json:"books_file_exists"`
	CategoriesFileExists    bool `json:"categories_file_exists"`
	BooksToScrapeResponding bool `json:"books_to_scrape_responding"`
}

type Report struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Services  Services  `json:"services"`
	Checks    Checks    `json:"checks"`
}

func (r Report) OK() bool { return r.Status == StatusOK }

// Checker verifies that both data files exist and that the upstream site
// answers a plain GET with 200.
type Checker struct {
	Data        datastore.Config
	UpstreamURL string
	Client      *resty.Client
}

func NewChecker(data datastore.Config, upstreamURL, userAgent string, timeout time.Duration) *Checker {
	client := resty.New()
	client.SetHeader("User-Agent", userAgent)
	client.SetTimeout(timeout)
	return &Checker{Data: data, UpstreamURL: upstreamURL, Client: client}
}

func (c *Checker) Check(ctx context.Context) Report {
	checks := Checks{
		BooksFileExists:         datastore.Exists(c.Data.BooksPath()),
		CategoriesFileExists:    datastore.Exists(c.Data.CategoriesPath()),
		BooksToScrapeResponding: c.upstreamUp(ctx),
	}

	status := StatusNotOK
	if checks.BooksFileExists && checks.CategoriesFileExists && checks.BooksToScrapeResponding {
		status = StatusOK
	}

	return Report{
		Status:    status,
		Timestamp: time.Now().UTC(),
		Services: Services{
			API: StatusOK,
			DataFiles: DataFiles{
				BooksJSON:      okString(checks.BooksFileExists),
				CategoriesJSON: okString(checks.CategoriesFileExists),
			},
			BooksToScrape: okString(checks.BooksToScrapeResponding),
		},
		Checks: checks,
	}
}

func (c *Checker) upstreamUp(ctx context.Context) bool {
	res, err := c.Client.R().SetContext(ctx).Get(c.UpstreamURL)
	if err != nil {
		slog.WarnContext(ctx, "upstream health probe failed", "url", c.UpstreamURL, "err", err)
		return false
	}
	return res.StatusCode() == 200
}

func okString(b bool) string {
	if b {
		return StatusOK
	}
	return StatusNotOK
}

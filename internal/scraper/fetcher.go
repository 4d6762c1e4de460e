package scraper

import (
	"bytes"
	"context"
	"log/slog"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
	"golang.org/x/time/rate"
)

// Fetcher turns a URL into a parsed document. A nil document means the page
// could not be loaded; implementations log the cause and never return errors.
type Fetcher interface {
	Fetch(ctx context.Context, url string) *goquery.Document
}

type FetcherOptions struct {
	UserAgent string
	Timeout   time.Duration
	// RequestsPerSec throttles outgoing requests. Zero disables throttling.
	RequestsPerSec float64
}

// HTTPFetcher fetches pages with a fixed User-Agent, a per-request timeout and
// no retries.
type HTTPFetcher struct {
	Client  *resty.Client
	limiter *rate.Limiter
}

func NewHTTPFetcher(opts FetcherOptions) *HTTPFetcher {
	if opts.Timeout <= 0 {
		opts.Timeout = 10 * time.Second
	}

	client := resty.New()
	client.SetHeader("User-Agent", opts.UserAgent)
	client.SetTimeout(opts.Timeout)

	f := &HTTPFetcher{Client: client}
	if opts.RequestsPerSec > 0 {
		f.limiter = rate.NewLimiter(rate.Limit(opts.RequestsPerSec), 1)
	}
	return f
}

func (f *HTTPFetcher) Fetch(ctx context.Context, url string) *goquery.Document {
	if f.limiter != nil {
		if err := f.limiter.Wait(ctx); err != nil {
			slog.WarnContext(ctx, "fetch throttle aborted", "url", url, "err", err)
			return nil
		}
	}

	res, err := f.Client.R().
		SetContext(ctx).
		Get(url)
	if err != nil {
		slog.WarnContext(ctx, "failed to fetch page", "url", url, "err", err)
		return nil
	}
	if !res.IsSuccess() {
		slog.WarnContext(ctx, "unexpected status fetching page", "url", url, "status", res.StatusCode())
		return nil
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(res.Body()))
	if err != nil {
		slog.WarnContext(ctx, "failed to parse page", "url", url, "err", err)
		return nil
	}
	return doc
}

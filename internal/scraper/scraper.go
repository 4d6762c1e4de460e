package scraper

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"bookhub/pkg/models"
)

// ErrNoCategories is returned when the homepage yields no categories. The run
// is aborted so an unreachable upstream cannot wipe the persisted catalog.
var ErrNoCategories = errors.New("no categories found on homepage")

// Scraper walks the catalog: categories, then every listing page of each
// category, then every book detail page. It is strictly sequential so the
// upstream is hit one page at a time and a failing book only costs itself.
type Scraper struct {
	Fetcher Fetcher
	BaseURL string
	// MaxPerCategory caps detail pages per category. Zero means no cap.
	MaxPerCategory int
}

// Result is the output of a full run.
type Result struct {
	Books      []models.Book
	Categories []models.Category
}

func New(fetcher Fetcher, baseURL string, maxPerCategory int) *Scraper {
	return &Scraper{
		Fetcher:        fetcher,
		BaseURL:        strings.TrimRight(baseURL, "/"),
		MaxPerCategory: maxPerCategory,
	}
}

// Categories fetches the homepage and extracts the category list.
func (s *Scraper) Categories(ctx context.Context) []models.Category {
	doc := s.Fetcher.Fetch(ctx, s.BaseURL+"/")
	if doc == nil {
		return []models.Category{}
	}
	cats := ParseCategories(doc, s.BaseURL+"/")
	slog.InfoContext(ctx, "found categories", "count", len(cats))
	return cats
}

// BookURLs follows the pagination of one category and returns every detail
// link in page order.
func (s *Scraper) BookURLs(ctx context.Context, cat models.Category) []string {
	var urls []string
	for page := 1; ; page++ {
		pageURL := ListingPageURL(cat.URL, page)
		slog.DebugContext(ctx, "scraping listing page", "category", cat.Name, "page", page, "url", pageURL)

		doc := s.Fetcher.Fetch(ctx, pageURL)
		if doc == nil {
			break
		}
		listing, ok := ParseListing(doc, s.BaseURL)
		if !ok {
			break
		}
		urls = append(urls, listing.BookURLs...)
		slog.DebugContext(ctx, "found books on page", "category", cat.Name, "page", page, "count", len(listing.BookURLs))

		if !listing.HasNext {
			break
		}
	}

	slog.InfoContext(ctx, "collected book links", "category", cat.Name, "count", len(urls))
	return urls
}

// Book fetches and parses one detail page. Parsing panics are recovered and
// reported as errors so a single malformed page cannot end the run.
func (s *Scraper) Book(ctx context.Context, url, category string) (book *models.Book, err error) {
	defer func() {
		if r := recover(); r != nil {
			book = nil
			err = fmt.Errorf("parse %s: panic: %v", url, r)
		}
	}()

	doc := s.Fetcher.Fetch(ctx, url)
	if doc == nil {
		return nil, fmt.Errorf("fetch %s: no document", url)
	}
	book, err = ParseBook(doc, url, category, s.BaseURL+"/")
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", url, err)
	}
	return book, nil
}

// Run scrapes the whole catalog. Per-book failures are logged and skipped;
// only a missing category list or a cancelled context fails the run.
func (s *Scraper) Run(ctx context.Context) (*Result, error) {
	cats := s.Categories(ctx)
	if len(cats) == 0 {
		return nil, ErrNoCategories
	}

	books := []models.Book{}
	for i, cat := range cats {
		slog.InfoContext(ctx, "processing category", "name", cat.Name, "index", i+1, "total", len(cats))

		urls := s.BookURLs(ctx, cat)
		if s.MaxPerCategory > 0 && len(urls) > s.MaxPerCategory {
			urls = urls[:s.MaxPerCategory]
		}

		for j, u := range urls {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			slog.DebugContext(ctx, "scraping book", "category", cat.Name, "index", j+1, "total", len(urls))

			book, err := s.Book(ctx, u, cat.Name)
			if err != nil {
				// keep going: one broken page should not kill the run
				slog.WarnContext(ctx, "failed to scrape book", "url", u, "err", err)
				continue
			}
			books = append(books, *book)
		}
	}

	slog.InfoContext(ctx, "scraping completed", "books", len(books), "categories", len(cats))
	return &Result{Books: books, Categories: cats}, nil
}

package scraper

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"strconv"

	"github.com/shopspring/decimal"

	"bookhub/pkg/datastore"
	"bookhub/pkg/models"
)

// CSVHeader is the column order of books.csv; it mirrors the JSON keys.
var CSVHeader = []string{
	"id", "title", "url", "image_url", "category", "price", "in_stock",
	"stock_quantity", "rating", "description", "upc", "product_type",
	"price_excl_tax", "price_incl_tax", "tax", "number_of_reviews",
}

// Writer persists a scrape result into the data directory.
type Writer struct {
	Data datastore.Config
}

func NewWriter(cfg datastore.Config) *Writer {
	return &Writer{Data: cfg}
}

// Save replaces categories.json, books.csv and books.json, in that order.
// books.json goes last because its modification time marks a completed run.
func (w *Writer) Save(ctx context.Context, res *Result) error {
	if err := datastore.EnsureDataDir(w.Data); err != nil {
		return fmt.Errorf("ensure data dir: %w", err)
	}

	if err := datastore.WriteJSON(w.Data.CategoriesPath(), res.Categories); err != nil {
		return fmt.Errorf("save categories: %w", err)
	}
	slog.InfoContext(ctx, "saved categories", "count", len(res.Categories), "path", w.Data.CategoriesPath())

	if err := SaveBooksCSV(w.Data.BooksCSVPath(), res.Books); err != nil {
		return fmt.Errorf("save books csv: %w", err)
	}

	if err := datastore.WriteJSON(w.Data.BooksPath(), res.Books); err != nil {
		return fmt.Errorf("save books: %w", err)
	}
	slog.InfoContext(ctx, "saved books", "count", len(res.Books), "path", w.Data.BooksPath())
	return nil
}

// SaveBooksCSV writes the flat export. Absent optional fields are empty cells.
func SaveBooksCSV(path string, books []models.Book) error {
	return datastore.WriteFileAtomic(path, func(out io.Writer) error {
		w := csv.NewWriter(out)
		if err := w.Write(CSVHeader); err != nil {
			return err
		}
		for _, b := range books {
			if err := w.Write(bookRecord(b)); err != nil {
				return err
			}
		}
		w.Flush()
		return w.Error()
	})
}

func bookRecord(b models.Book) []string {
	return []string{
		b.ID,
		b.Title,
		b.URL,
		b.ImageURL,
		b.Category,
		b.Price.String(),
		strconv.FormatBool(b.InStock),
		intOrEmpty(b.StockQuantity),
		intOrEmpty(b.Rating),
		strOrEmpty(b.Description),
		strOrEmpty(b.UPC),
		strOrEmpty(b.ProductType),
		decOrEmpty(b.PriceExclTax),
		decOrEmpty(b.PriceInclTax),
		decOrEmpty(b.Tax),
		intOrEmpty(b.NumberOfReviews),
	}
}

func intOrEmpty(n *int) string {
	if n == nil {
		return ""
	}
	return strconv.Itoa(*n)
}

func strOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func decOrEmpty(d *decimal.Decimal) string {
	if d == nil {
		return ""
	}
	return d.String()
}

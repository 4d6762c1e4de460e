package scraper

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"os"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"bookhub/pkg/datastore"
	"bookhub/pkg/models"
)

func TestSaveWritesAllFiles(t *testing.T) {
	cfg := datastore.Config{Dir: t.TempDir() + "/nested"}
	w := NewWriter(cfg)

	rating := 4
	res := &Result{
		Categories: []models.Category{{ID: "c1", Name: "Travel", URL: "u", Slug: "travel_2"}},
		Books: []models.Book{
			{ID: "b1", Title: "Full", Category: "Travel", Price: decimal.RequireFromString("12.50"), InStock: true, Rating: &rating},
			{ID: "b2", Title: "Bare", Category: "Travel"},
		},
	}
	require.NoError(t, w.Save(context.Background(), res))

	books, err := datastore.LoadJSON[models.Book](cfg.BooksPath())
	require.NoError(t, err)
	require.Len(t, books, 2)
	require.Equal(t, 4, *books[0].Rating)
	require.Nil(t, books[1].Rating)
	require.Nil(t, books[1].Tax)
	require.Nil(t, books[1].NumberOfReviews)

	cats, err := datastore.LoadJSON[models.Category](cfg.CategoriesPath())
	require.NoError(t, err)
	require.Equal(t, res.Categories, cats)

	// books.json is written last
	booksAt, _, err := datastore.ModTime(cfg.BooksPath())
	require.NoError(t, err)
	catsAt, _, err := datastore.ModTime(cfg.CategoriesPath())
	require.NoError(t, err)
	require.False(t, booksAt.Before(catsAt))
}

func TestAbsentFieldsStayNullInJSON(t *testing.T) {
	cfg := datastore.Config{Dir: t.TempDir()}
	require.NoError(t, NewWriter(cfg).Save(context.Background(), &Result{
		Categories: []models.Category{},
		Books:      []models.Book{{ID: "b", Title: "Bare"}},
	}))

	raw, err := os.ReadFile(cfg.BooksPath())
	require.NoError(t, err)
	var generic []map[string]any
	require.NoError(t, json.Unmarshal(raw, &generic))
	require.Len(t, generic, 1)
	for _, k := range []string{"stock_quantity", "rating", "description", "upc", "product_type", "price_excl_tax", "price_incl_tax", "tax", "number_of_reviews"} {
		v, ok := generic[0][k]
		require.True(t, ok, "key %s present", k)
		require.Nil(t, v, "key %s is null", k)
	}

	back, err := datastore.LoadJSON[models.Book](cfg.BooksPath())
	require.NoError(t, err)
	require.Len(t, back, 1)
	b := back[0]
	require.Equal(t, "Bare", b.Title)
	require.Nil(t, b.StockQuantity)
	require.Nil(t, b.Rating)
	require.Nil(t, b.Description)
	require.Nil(t, b.UPC)
	require.Nil(t, b.ProductType)
	require.Nil(t, b.PriceExclTax)
	require.Nil(t, b.PriceInclTax)
	require.Nil(t, b.Tax)
	require.Nil(t, b.NumberOfReviews)
}

func TestSaveBooksCSV(t *testing.T) {
	path := t.TempDir() + "/books.csv"
	qty, reviews := 3, 0
	tax := decimal.Zero
	books := []models.Book{
		{ID: "b1", Title: "Priced", Price: decimal.RequireFromString("51.77"), InStock: true, StockQuantity: &qty, Tax: &tax, NumberOfReviews: &reviews},
		{ID: "b2", Title: "Bare"},
	}
	require.NoError(t, SaveBooksCSV(path, books))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	require.Equal(t, CSVHeader, rows[0])

	require.Equal(t, "51.77", rows[1][5])
	require.Equal(t, "true", rows[1][6])
	require.Equal(t, "3", rows[1][7])
	require.Equal(t, "", rows[1][8])
	require.Equal(t, "0", rows[1][14])
	require.Equal(t, "0", rows[1][15])

	for i := 7; i < len(CSVHeader); i++ {
		require.Empty(t, rows[2][i], "column %s", CSVHeader[i])
	}
}

func TestSaveReplacesPreviousRun(t *testing.T) {
	cfg := datastore.Config{Dir: t.TempDir()}
	w := NewWriter(cfg)
	ctx := context.Background()

	require.NoError(t, w.Save(ctx, &Result{Books: []models.Book{{ID: "old"}}, Categories: []models.Category{}}))
	past := time.Now().Add(-time.Hour)
	require.NoError(t, os.Chtimes(cfg.BooksPath(), past, past))

	require.NoError(t, w.Save(ctx, &Result{Books: []models.Book{{ID: "new1"}, {ID: "new2"}}, Categories: []models.Category{}}))
	books, err := datastore.LoadJSON[models.Book](cfg.BooksPath())
	require.NoError(t, err)
	require.Len(t, books, 2)

	at, ok, err := datastore.ModTime(cfg.BooksPath())
	require.NoError(t, err)
	require.True(t, ok)
	require.True(t, at.After(past))
}

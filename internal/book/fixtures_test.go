package book

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"bookhub/pkg/datastore"
	"bookhub/pkg/models"
)

func ip(n int) *int { return &n }

func bk(id, title, cat, price string, inStock bool, rating *int) models.Book {
	return models.Book{
		ID:       id,
		Title:    title,
		Category: cat,
		Price:    decimal.RequireFromString(price),
		InStock:  inStock,
		Rating:   rating,
	}
}

func catalog() []models.Book {
	return []models.Book{
		bk("1", "A Light in the Attic", "Poetry", "51.77", true, ip(3)),
		bk("2", "Tipping the Velvet", "Historical Fiction", "53.74", true, ip(1)),
		bk("3", "Soumission", "Fiction", "50.10", false, ip(1)),
		bk("4", "Sharp Objects", "Mystery", "47.82", true, ip(4)),
		bk("5", "Sapiens", "History", "54.23", true, ip(5)),
		bk("6", "The Requiem Red", "Young Adult", "22.65", false, nil),
		bk("7", "The Dirty Little Secrets", "Business", "33.34", true, ip(4)),
		bk("8", "The Coming Woman", "Default", "17.93", true, ip(3)),
		bk("9", "The Boys in the Boat", "Default", "22.60", false, ip(4)),
		bk("10", "The Black Maria", "poetry", "52.15", true, ip(1)),
	}
}

func writeCatalog(t *testing.T, books []models.Book) string {
	t.Helper()
	path := t.TempDir() + "/books.json"
	require.NoError(t, datastore.WriteJSON(path, books))
	return path
}

func ids(books []models.Book) []string {
	out := make([]string, 0, len(books))
	for _, b := range books {
		out = append(out, b.ID)
	}
	return out
}

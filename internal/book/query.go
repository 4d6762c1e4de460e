package book

import (
	"slices"
	"strings"

	"github.com/shopspring/decimal"

	"bookhub/pkg/models"
)

// Filter is conjunctive: a book must satisfy every set field.
type Filter struct {
	Category string // exact, case-insensitive
	InStock  *bool
	MinPrice *decimal.Decimal // inclusive
	MaxPrice *decimal.Decimal // inclusive
	Rating   *int
}

func (f Filter) Match(b models.Book) bool {
	if f.Category != "" && !strings.EqualFold(b.Category, f.Category) {
		return false
	}
	if f.InStock != nil && b.InStock != *f.InStock {
		return false
	}
	if f.MinPrice != nil && b.Price.LessThan(*f.MinPrice) {
		return false
	}
	if f.MaxPrice != nil && b.Price.GreaterThan(*f.MaxPrice) {
		return false
	}
	if f.Rating != nil && (b.Rating == nil || *b.Rating != *f.Rating) {
		return false
	}
	return true
}

func Apply(books []models.Book, f Filter) []models.Book {
	out := make([]models.Book, 0, len(books))
	for _, b := range books {
		if f.Match(b) {
			out = append(out, b)
		}
	}
	return out
}

// Paginate returns books[offset:offset+limit], clamped. An offset past the
// end yields an empty slice.
func Paginate(books []models.Book, limit, offset int) []models.Book {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(books) {
		return []models.Book{}
	}
	end := len(books)
	if limit >= 0 && offset+limit < end {
		end = offset + limit
	}
	return books[offset:end]
}

// Search matches case-insensitive substrings of title and/or category.
// Empty terms are ignored.
func Search(books []models.Book, title, category string) []models.Book {
	title = strings.ToLower(title)
	category = strings.ToLower(category)

	out := make([]models.Book, 0)
	for _, b := range books {
		if title != "" && !strings.Contains(strings.ToLower(b.Title), title) {
			continue
		}
		if category != "" && !strings.Contains(strings.ToLower(b.Category), category) {
			continue
		}
		out = append(out, b)
	}
	return out
}

// TopRated sorts by rating descending, stable; unrated books come last.
func TopRated(books []models.Book) []models.Book {
	out := slices.Clone(books)
	slices.SortStableFunc(out, func(a, b models.Book) int {
		return b.RatingOrZero() - a.RatingOrZero()
	})
	return out
}

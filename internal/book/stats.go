package book

import (
	"fmt"
	"slices"
	"strings"

	"github.com/shopspring/decimal"

	"bookhub/pkg/models"
)

type PriceStats struct {
	Average decimal.Decimal `json:"average"`
	Minimum decimal.Decimal `json:"minimum"`
	Maximum decimal.Decimal `json:"maximum"`
}

type Overview struct {
	TotalBooks         int              `json:"total_books"`
	BooksInStock       int              `json:"books_in_stock"`
	BooksOutOfStock    int              `json:"books_out_of_stock"`
	TotalCategories    int              `json:"total_categories"`
	PriceStats         PriceStats       `json:"price_stats"`
	AverageRating      *decimal.Decimal `json:"average_rating"`
	RatingDistribution map[string]int   `json:"rating_distribution"`
}

type CategoryPriceStats struct {
	PriceStats
	Count int `json:"count"`
}

type CategoryStats struct {
	Category        string             `json:"category"`
	TotalBooks      int                `json:"total_books"`
	BooksInStock    int                `json:"books_in_stock"`
	BooksOutOfStock int                `json:"books_out_of_stock"`
	PriceStats      CategoryPriceStats `json:"price_stats"`
	AverageRating   *decimal.Decimal   `json:"average_rating"`
	RatingCount     int                `json:"rating_count"`
}

// accumulator collects the per-group numbers both stats views need.
type accumulator struct {
	total, inStock int
	prices         []decimal.Decimal
	ratings        []int
}

func (a *accumulator) add(b models.Book) {
	a.total++
	if b.InStock {
		a.inStock++
	}
	// a zero price means the page had none
	if !b.Price.IsZero() {
		a.prices = append(a.prices, b.Price)
	}
	if b.Rating != nil {
		a.ratings = append(a.ratings, *b.Rating)
	}
}

func (a *accumulator) priceStats() PriceStats {
	if len(a.prices) == 0 {
		return PriceStats{Average: decimal.Zero, Minimum: decimal.Zero, Maximum: decimal.Zero}
	}
	return PriceStats{
		Average: decimal.Avg(a.prices[0], a.prices[1:]...).Round(2),
		Minimum: decimal.Min(a.prices[0], a.prices[1:]...),
		Maximum: decimal.Max(a.prices[0], a.prices[1:]...),
	}
}

func (a *accumulator) averageRating() *decimal.Decimal {
	if len(a.ratings) == 0 {
		return nil
	}
	sum := 0
	for _, r := range a.ratings {
		sum += r
	}
	avg := decimal.NewFromInt(int64(sum)).Div(decimal.NewFromInt(int64(len(a.ratings)))).Round(2)
	return &avg
}

func ComputeOverview(books []models.Book) Overview {
	var acc accumulator
	cats := map[string]struct{}{}
	dist := map[string]int{}
	for r := 1; r <= 5; r++ {
		dist[starKey(r)] = 0
	}

	for _, b := range books {
		acc.add(b)
		if b.Category != "" {
			cats[b.Category] = struct{}{}
		}
		if b.Rating != nil && *b.Rating >= 1 && *b.Rating <= 5 {
			dist[starKey(*b.Rating)]++
		}
	}

	return Overview{
		TotalBooks:         acc.total,
		BooksInStock:       acc.inStock,
		BooksOutOfStock:    acc.total - acc.inStock,
		TotalCategories:    len(cats),
		PriceStats:         acc.priceStats(),
		AverageRating:      acc.averageRating(),
		RatingDistribution: dist,
	}
}

// ComputeCategoryStats groups books by category, largest first and then by
// name. Books without a category are grouped under "Unknown".
func ComputeCategoryStats(books []models.Book) []CategoryStats {
	groups := map[string]*accumulator{}
	for _, b := range books {
		name := b.Category
		if name == "" {
			name = "Unknown"
		}
		acc, ok := groups[name]
		if !ok {
			acc = &accumulator{}
			groups[name] = acc
		}
		acc.add(b)
	}

	out := make([]CategoryStats, 0, len(groups))
	for name, acc := range groups {
		out = append(out, CategoryStats{
			Category:        name,
			TotalBooks:      acc.total,
			BooksInStock:    acc.inStock,
			BooksOutOfStock: acc.total - acc.inStock,
			PriceStats:      CategoryPriceStats{PriceStats: acc.priceStats(), Count: len(acc.prices)},
			AverageRating:   acc.averageRating(),
			RatingCount:     len(acc.ratings),
		})
	}

	slices.SortFunc(out, func(a, b CategoryStats) int {
		if a.TotalBooks != b.TotalBooks {
			return b.TotalBooks - a.TotalBooks
		}
		return strings.Compare(a.Category, b.Category)
	})
	return out
}

func starKey(r int) string { return fmt.Sprintf("%d_star", r) }

package book

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"bookhub/pkg/models"
)

func TestComputeOverview(t *testing.T) {
	ov := ComputeOverview(catalog())

	require.Equal(t, 10, ov.TotalBooks)
	require.Equal(t, 7, ov.BooksInStock)
	require.Equal(t, 3, ov.BooksOutOfStock)
	require.Equal(t, 9, ov.TotalCategories)
	require.Equal(t, "40.63", ov.PriceStats.Average.StringFixed(2))
	require.Equal(t, "17.93", ov.PriceStats.Minimum.String())
	require.Equal(t, "54.23", ov.PriceStats.Maximum.String())
	require.NotNil(t, ov.AverageRating)
	require.Equal(t, "2.89", ov.AverageRating.String())
	require.Equal(t, map[string]int{"1_star": 3, "2_star": 0, "3_star": 2, "4_star": 3, "5_star": 1}, ov.RatingDistribution)
}

func TestComputeOverviewEmpty(t *testing.T) {
	ov := ComputeOverview(nil)
	require.Zero(t, ov.TotalBooks)
	require.Nil(t, ov.AverageRating)
	require.True(t, ov.PriceStats.Average.IsZero())
	require.Len(t, ov.RatingDistribution, 5)

	raw, err := json.Marshal(ov)
	require.NoError(t, err)
	require.Contains(t, string(raw), `"average_rating":null`)
	require.Contains(t, string(raw), `"price_stats":{"average":"0","minimum":"0","maximum":"0"}`)
}

func TestComputeCategoryStats(t *testing.T) {
	stats := ComputeCategoryStats(catalog())
	require.Len(t, stats, 9)

	names := make([]string, 0, len(stats))
	for _, s := range stats {
		names = append(names, s.Category)
	}
	require.Equal(t, []string{"Default", "Business", "Fiction", "Historical Fiction", "History", "Mystery", "Poetry", "Young Adult", "poetry"}, names)

	def := stats[0]
	require.Equal(t, 2, def.TotalBooks)
	require.Equal(t, 1, def.BooksInStock)
	require.Equal(t, 1, def.BooksOutOfStock)
	require.Equal(t, 2, def.PriceStats.Count)
	require.Equal(t, "20.27", def.PriceStats.Average.String())
	require.Equal(t, "17.93", def.PriceStats.Minimum.String())
	require.Equal(t, "22.6", def.PriceStats.Maximum.String())
	require.Equal(t, "3.5", def.AverageRating.String())
	require.Equal(t, 2, def.RatingCount)

	ya := stats[7]
	require.Equal(t, "Young Adult", ya.Category)
	require.Nil(t, ya.AverageRating)
	require.Zero(t, ya.RatingCount)
}

func TestCategoryStatsUnknownGroup(t *testing.T) {
	stats := ComputeCategoryStats([]models.Book{bk("1", "x", "", "1.00", true, nil)})
	require.Len(t, stats, 1)
	require.Equal(t, "Unknown", stats[0].Category)

	raw, err := json.Marshal(stats[0])
	require.NoError(t, err)
	require.Contains(t, string(raw), `"price_stats":{"average":"1","minimum":"1","maximum":"1","count":1}`)
}

func TestPriceStatsSkipZeroPrices(t *testing.T) {
	books := []models.Book{
		bk("1", "a", "Travel", "10.00", true, nil),
		bk("2", "b", "Travel", "0", true, nil),
		bk("3", "c", "Travel", "20.00", false, nil),
	}

	ov := ComputeOverview(books)
	require.Equal(t, 3, ov.TotalBooks)
	require.Equal(t, "10", ov.PriceStats.Minimum.String())
	require.Equal(t, "15", ov.PriceStats.Average.String())

	stats := ComputeCategoryStats(books)
	require.Len(t, stats, 1)
	require.Equal(t, 3, stats[0].TotalBooks)
	require.Equal(t, 2, stats[0].PriceStats.Count)
	require.Equal(t, "10", stats[0].PriceStats.Minimum.String())
}

func TestPriceStatsAreQuotedDecimals(t *testing.T) {
	raw, err := json.Marshal(ComputeOverview(catalog()))
	require.NoError(t, err)
	require.Contains(t, string(raw), `"minimum":"17.93"`)
	require.Contains(t, string(raw), `"average_rating":"2.89"`)
}

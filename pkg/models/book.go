package models

import "github.com/shopspring/decimal"

// Book is a single catalog entry scraped from a detail page.
//
// Optional fields are pointers and marshal as null when the source page
// omits them; they are never replaced by zero values.
type Book struct {
	ID       string          `json:"id"`
	Title    string          `json:"title"`
	URL      string          `json:"url"`
	ImageURL string          `json:"image_url"`
	Category string          `json:"category"`
	Price    decimal.Decimal `json:"price"`
	InStock  bool            `json:"in_stock"`

	StockQuantity   *int             `json:"stock_quantity"`
	Rating          *int             `json:"rating"`
	Description     *string          `json:"description"`
	UPC             *string          `json:"upc"`
	ProductType     *string          `json:"product_type"`
	PriceExclTax    *decimal.Decimal `json:"price_excl_tax"`
	PriceInclTax    *decimal.Decimal `json:"price_incl_tax"`
	Tax             *decimal.Decimal `json:"tax"`
	NumberOfReviews *int             `json:"number_of_reviews"`
}

// RatingOrZero is used for ordering; unrated books sort below every rating.
func (b Book) RatingOrZero() int {
	if b.Rating == nil {
		return 0
	}
	return *b.Rating
}

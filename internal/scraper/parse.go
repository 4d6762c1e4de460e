package scraper

import (
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"bookhub/pkg/models"
)

var (
	priceRegex    = regexp.MustCompile(`[\d.]+`)
	quantityRegex = regexp.MustCompile(`\((\d+) available\)`)

	ratingWords = map[string]int{"One": 1, "Two": 2, "Three": 3, "Four": 4, "Five": 5}

	errMissingTitle = errors.New("detail page has no title")
)

// ParseCategories reads the side navigation of the homepage. The first link
// ("Books", i.e. view all) is skipped.
func ParseCategories(doc *goquery.Document, baseURL string) []models.Category {
	nav := doc.Find("div.side_categories").First()
	if nav.Length() == 0 {
		slog.Warn("could not find category navigation")
		return []models.Category{}
	}

	links := nav.Find("a")
	out := make([]models.Category, 0, links.Length())
	links.Each(func(i int, a *goquery.Selection) {
		if i == 0 {
			return
		}
		u := resolveURL(baseURL, a.AttrOr("href", ""))
		out = append(out, models.Category{
			ID:   uuid.NewString(),
			Name: strings.TrimSpace(a.Text()),
			URL:  u,
			Slug: slugFromURL(u),
		})
	})
	return out
}

// Listing is what one page of a category grid yields.
type Listing struct {
	BookURLs []string
	HasNext  bool
}

// ParseListing extracts detail links from a category page. ok is false when
// the page has no product grid or the grid is empty, which ends pagination.
func ParseListing(doc *goquery.Document, baseURL string) (Listing, bool) {
	section := doc.Find("section").First()
	if section.Length() == 0 {
		return Listing{}, false
	}
	cards := section.Find("article.product_pod")
	if cards.Length() == 0 {
		return Listing{}, false
	}

	catalogue := strings.TrimRight(baseURL, "/") + "/catalogue/"
	urls := make([]string, 0, cards.Length())
	cards.Each(func(_ int, card *goquery.Selection) {
		link := card.Find("h3 a").First()
		if link.Length() == 0 {
			return
		}
		href := strings.ReplaceAll(link.AttrOr("href", ""), "../", "")
		urls = append(urls, resolveURL(catalogue, href))
	})

	return Listing{
		BookURLs: urls,
		HasNext:  doc.Find("li.next").Length() > 0,
	}, true
}

// ListingPageURL returns the URL of page n of a category listing.
func ListingPageURL(categoryURL string, n int) string {
	if n <= 1 {
		return categoryURL
	}
	base := strings.TrimSuffix(categoryURL, "index.html")
	if !strings.HasSuffix(base, "/") {
		base += "/"
	}
	return fmt.Sprintf("%spage-%d.html", base, n)
}

// ParseBook extracts a Book from a detail page.
func ParseBook(doc *goquery.Document, pageURL, category, baseURL string) (*models.Book, error) {
	h1 := doc.Find("h1").First()
	if h1.Length() == 0 {
		return nil, errMissingTitle
	}

	book := &models.Book{
		ID:       uuid.NewString(),
		Title:    strings.TrimSpace(h1.Text()),
		URL:      pageURL,
		Category: category,
		Price:    decimal.Zero,
	}

	if img := doc.Find("div.item.active img").First(); img.Length() > 0 {
		book.ImageURL = resolveURL(baseURL, img.AttrOr("src", ""))
	}

	if p := doc.Find("p.price_color").First(); p.Length() > 0 {
		if price, ok := parsePrice(p.Text()); ok {
			book.Price = price
		}
	}

	availability := strings.TrimSpace(doc.Find("p.instock.availability").First().Text())
	book.InStock, book.StockQuantity = parseStock(availability)

	book.Rating = parseRating(doc.Find("p.star-rating").First())

	desc := doc.Find("div#product_description").First().NextAllFiltered("p").First()
	if desc.Length() > 0 {
		book.Description = strPtr(strings.TrimSpace(desc.Text()))
	}

	info := productInfo(doc)
	if v, ok := info["UPC"]; ok {
		book.UPC = strPtr(v)
	}
	if v, ok := info["Product Type"]; ok {
		book.ProductType = strPtr(v)
	}
	book.PriceExclTax = optionalPrice(info, "Price (excl. tax)")
	book.PriceInclTax = optionalPrice(info, "Price (incl. tax)")
	book.Tax = optionalPrice(info, "Tax")

	if v, ok := info["Number of reviews"]; ok {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			book.NumberOfReviews = &n
		}
	}

	return book, nil
}

// productInfo collects the th/td rows of the product information table.
func productInfo(doc *goquery.Document) map[string]string {
	info := map[string]string{}
	doc.Find("table.table-striped").First().Find("tr").Each(func(_ int, row *goquery.Selection) {
		th := row.Find("th").First()
		td := row.Find("td").First()
		if th.Length() == 0 || td.Length() == 0 {
			return
		}
		info[strings.TrimSpace(th.Text())] = strings.TrimSpace(td.Text())
	})
	return info
}

// parsePrice takes the first numeric run of text, dropping currency symbols.
func parsePrice(text string) (decimal.Decimal, bool) {
	m := priceRegex.FindString(text)
	if m == "" {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(m)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

func optionalPrice(info map[string]string, key string) *decimal.Decimal {
	raw, ok := info[key]
	if !ok {
		return nil
	}
	d, ok := parsePrice(raw)
	if !ok {
		return nil
	}
	return &d
}

func parseStock(availability string) (bool, *int) {
	inStock := strings.Contains(strings.ToLower(availability), "in stock")

	m := quantityRegex.FindStringSubmatch(availability)
	if len(m) < 2 {
		return inStock, nil
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return inStock, nil
	}
	return inStock, &n
}

func parseRating(sel *goquery.Selection) *int {
	if sel.Length() == 0 {
		return nil
	}
	for _, cls := range strings.Fields(sel.AttrOr("class", "")) {
		if n, ok := ratingWords[cls]; ok {
			return &n
		}
	}
	return nil
}

func resolveURL(base, ref string) string {
	b, err := url.Parse(base)
	if err != nil {
		return ref
	}
	r, err := url.Parse(strings.TrimSpace(ref))
	if err != nil {
		return ref
	}
	return b.ResolveReference(r).String()
}

// slugFromURL returns the second-to-last path segment,
// e.g. ".../books/travel_2/index.html" -> "travel_2".
func slugFromURL(u string) string {
	parts := strings.Split(u, "/")
	if len(parts) < 2 {
		return ""
	}
	return parts[len(parts)-2]
}

func strPtr(s string) *string { return &s }

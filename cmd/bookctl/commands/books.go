package commands

import (
	"fmt"
	"os"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"bookhub/pkg/models"
)

var (
	booksCategory string
	booksInStock  bool
	booksRating   int
	booksLimit    int
	booksOffset   int
	booksTitle    string
)

func init() {
	f := booksCmd.Flags()
	f.StringVar(&booksCategory, "category", "", "exact category (case-insensitive)")
	f.BoolVar(&booksInStock, "in-stock", false, "only books in stock")
	f.IntVar(&booksRating, "rating", 0, "only books with this rating (1-5)")
	f.IntVar(&booksLimit, "limit", 20, "page size")
	f.IntVar(&booksOffset, "offset", 0, "offset")
	f.StringVar(&booksTitle, "title", "", "search titles instead of filtering")
	rootCmd.AddCommand(booksCmd)
}

var booksCmd = &cobra.Command{
	Use:   "books [--category <name>] [--in-stock] [--rating <n>] [--title <text>]",
	Short: "Lists books from the API as a table.",
	RunE: func(cmd *cobra.Command, args []string) error {
		req := newClient(apiURL).R().SetContext(cmd.Context())

		path := "/books"
		if booksTitle != "" {
			path = "/books/search"
			req.SetQueryParam("title", booksTitle)
			if booksCategory != "" {
				req.SetQueryParam("category", booksCategory)
			}
		} else {
			if booksCategory != "" {
				req.SetQueryParam("category", booksCategory)
			}
			if cmd.Flags().Changed("in-stock") {
				req.SetQueryParam("in_stock", strconv.FormatBool(booksInStock))
			}
			if booksRating > 0 {
				req.SetQueryParam("rating", strconv.Itoa(booksRating))
			}
			req.SetQueryParam("offset", strconv.Itoa(booksOffset))
		}
		req.SetQueryParam("limit", strconv.Itoa(booksLimit))

		var books []models.Book
		res, err := req.SetResult(&books).Get(path)
		if err := checkResponse(res, err); err != nil {
			return err
		}

		renderBooks(books)
		return nil
	},
}

func renderBooks(books []models.Book) {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(table.Row{"Title", "Category", "Price", "Stock", "Rating", "ID"})
	for _, b := range books {
		stock := "out"
		if b.InStock {
			stock = "in"
			if b.StockQuantity != nil {
				stock = fmt.Sprintf("in (%d)", *b.StockQuantity)
			}
		}
		rating := "-"
		if b.Rating != nil {
			rating = strconv.Itoa(*b.Rating)
		}
		t.AppendRow(table.Row{truncate(b.Title, 50), b.Category, "£" + b.Price.StringFixed(2), stock, rating, b.ID})
	}
	t.AppendFooter(table.Row{"", "", "", "", "Total", len(books)})
	t.SetStyle(table.StyleRounded)
	t.Render()
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"bookhub/internal/scraper"
	"bookhub/pkg/datastore"
	"bookhub/pkg/models"
)

var exportOut string

func init() {
	exportCmd.Flags().StringVar(&exportOut, "out", "", "output CSV path (defaults to <data>/books.csv)")
	rootCmd.AddCommand(exportCmd)
}

var exportCmd = &cobra.Command{
	Use:   "export-csv [--out <path>]",
	Short: "Regenerates the flat CSV export from books.json.",
	RunE: func(cmd *cobra.Command, args []string) error {
		data := dataConfig()
		out := exportOut
		if out == "" {
			out = data.BooksCSVPath()
		}

		books, err := datastore.LoadJSON[models.Book](data.BooksPath())
		if err != nil {
			return err
		}
		if err := scraper.SaveBooksCSV(out, books); err != nil {
			return fmt.Errorf("export csv: %w", err)
		}
		fmt.Printf("exported %d books to %s\n", len(books), out)
		return nil
	},
}

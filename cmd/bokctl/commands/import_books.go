package commands

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"bokloftet/internal/entity"
	"bokloftet/internal/store"

	"github.com/spf13/cobra"
)

// CSV layout: title, author, language, publisher, publish_year, pages,
// isbn, description, category name. A header row is detected and skipped.
var importBooksCmd = &cobra.Command{
	Use:   "import-books FILE",
	Short: "Import catalog entries from a CSV file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := os.Open(filepath.Clean(args[0]))
		if err != nil {
			return err
		}
		defer f.Close()

		ctx := cmd.Context()
		pool, err := openPool(ctx)
		if err != nil {
			return fmt.Errorf("cannot connect to database: %w", err)
		}
		defer pool.Close()

		books := store.NewBookPG(pool)
		categories := store.NewCategoryPG(pool)

		existing, err := categories.List(ctx)
		if err != nil {
			return err
		}
		categoryIDs := make(map[string]string, len(existing))
		for _, c := range existing {
			categoryIDs[c.Name] = c.ID
		}

		reader := csv.NewReader(f)
		reader.FieldsPerRecord = 9

		imported := 0
		for line := 1; ; line++ {
			record, err := reader.Read()
			if err == io.EOF {
				break
			}
			if err != nil {
				return fmt.Errorf("line %d: %w", line, err)
			}
			if line == 1 && strings.EqualFold(record[0], "title") {
				continue
			}

			year, err := strconv.Atoi(strings.TrimSpace(record[4]))
			if err != nil {
				return fmt.Errorf("line %d: bad publish_year: %w", line, err)
			}
			pages, err := strconv.Atoi(strings.TrimSpace(record[5]))
			if err != nil {
				return fmt.Errorf("line %d: bad pages: %w", line, err)
			}

			categoryName := strings.TrimSpace(record[8])
			categoryID, ok := categoryIDs[categoryName]
			if !ok {
				category := entity.Category{Name: categoryName}
				if err := categories.Create(ctx, &category); err != nil {
					return fmt.Errorf("line %d: create category %q: %w", line, categoryName, err)
				}
				categoryID = category.ID
				categoryIDs[categoryName] = categoryID
			}

			book := entity.Book{
				Title:       strings.TrimSpace(record[0]),
				Author:      strings.TrimSpace(record[1]),
				Language:    strings.TrimSpace(record[2]),
				Publisher:   strings.TrimSpace(record[3]),
				PublishYear: year,
				Pages:       pages,
				ISBN:        strings.TrimSpace(record[6]),
				Description: strings.TrimSpace(record[7]),
				CategoryID:  categoryID,
			}
			if err := books.Create(ctx, &book); err != nil {
				return fmt.Errorf("line %d: create book %q: %w", line, book.Title, err)
			}
			imported++
		}

		fmt.Printf("Imported %d books\n", imported)
		return nil
	},
}

// Package main provides a tool to load the book catalog from a CSV file
// into the SQLite store.
//
// Usage:
//
//	go run ./cmd/seed --csv ./books.csv --db ~/Compass/data/catalog.db
package main

import (
	"context"
	"encoding/csv"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/compassreads/compass-server/internal/domain"
	"github.com/compassreads/compass-server/internal/store/sqlite"
)

var (
	csvPath = flag.String("csv", "books.csv", "Path to the catalog CSV file")
	dbPath  = flag.String("db", "", "Path to the SQLite catalog database")
)

func main() {
	flag.Parse()

	if *dbPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to resolve home directory: %v\n", err)
			os.Exit(1)
		}
		*dbPath = home + "/Compass/data/catalog.db"
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	store, err := sqlite.Open(*dbPath, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open catalog store: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	file, err := os.Open(*csvPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open CSV: %v\n", err)
		os.Exit(1)
	}
	defer file.Close()

	count, err := load(context.Background(), store, file)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Seeding failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Seeded %d books into %s\n", count, *dbPath)
}

// load reads the CSV and upserts every row. Rows are assigned sequential
// IDs in file order, matching how the original catalog was built.
func load(ctx context.Context, store *sqlite.Store, r io.Reader) (int, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err != nil {
		return 0, fmt.Errorf("read header: %w", err)
	}

	columns := make(map[string]int, len(header))
	for idx, name := range header {
		columns[strings.TrimSpace(strings.ToLower(name))] = idx
	}
	if _, ok := columns["title"]; !ok {
		return 0, fmt.Errorf("CSV has no title column")
	}

	field := func(record []string, name string) string {
		idx, ok := columns[name]
		if !ok || idx >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[idx])
	}

	count := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return count, fmt.Errorf("read row %d: %w", count+1, err)
		}

		book := &domain.Book{
			ID:            int64(count + 1),
			Title:         field(record, "title"),
			Author:        field(record, "author"),
			CoverLink:     field(record, "cover_link"),
			Series:        field(record, "series"),
			AverageRating: parseFloat(field(record, "average_rating")),
			RatingCount:   parseInt(field(record, "rating_count")),
			ReviewCount:   parseInt(field(record, "review_count")),
			NumberOfPages: parseInt(field(record, "number_of_pages")),
			DatePublished: parseDate(field(record, "date_published")),
			Publisher:     field(record, "publisher"),
			ISBN:          field(record, "isbn"),
			Description:   field(record, "description"),
			MainGenres:    field(record, "main_genres"),
			SubGenres:     field(record, "sub_genres"),
		}
		if book.Title == "" {
			continue
		}

		if err := store.UpsertBook(ctx, book); err != nil {
			return count, fmt.Errorf("upsert book %d (%q): %w", book.ID, book.Title, err)
		}
		count++
	}

	return count, nil
}

func parseInt(s string) int64 {
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0
	}
	return v
}

func parseFloat(s string) float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}

var ordinalSuffix = regexp.MustCompile(`(\d+)(st|nd|rd|th)`)

// parseDate handles the date shapes found in the catalog export, including
// ordinal day suffixes ("September 14th 2008"). Unparseable dates load as
// NULL, matching the original loader's coercion.
func parseDate(s string) *time.Time {
	if s == "" {
		return nil
	}
	cleaned := ordinalSuffix.ReplaceAllString(s, "$1")

	for _, layout := range []string{"2006-01-02", "January 2 2006", "January 2, 2006", "January 2006", "2006"} {
		if t, err := time.Parse(layout, cleaned); err == nil {
			return &t
		}
	}
	return nil
}

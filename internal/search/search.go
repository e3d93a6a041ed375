// Package search provides full-text catalog search backed by Bleve.
// The catalog is read-only at runtime, so the index is built in memory
// from the book table at startup and never updated incrementally.
package search

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/keyword"
	"github.com/blevesearch/bleve/v2/analysis/lang/en"
	"github.com/blevesearch/bleve/v2/mapping"

	"github.com/compassreads/compass-server/internal/domain"
)

const defaultLimit = 20

// Index wraps a Bleve index over the book catalog.
type Index struct {
	index  bleve.Index
	logger *slog.Logger
}

// bookDocument is the shape indexed per book.
type bookDocument struct {
	Title      string `json:"title"`
	Author     string `json:"author"`
	Series     string `json:"series,omitempty"`
	MainGenres string `json:"main_genres,omitempty"`
	SubGenres  string `json:"sub_genres,omitempty"`
}

// Hit is a single search result.
type Hit struct {
	BookID int64   `json:"book_id"`
	Score  float64 `json:"score"`
}

// buildIndexMapping creates the Bleve mapping for book documents.
// Title and author get English stemming; genres stay exact-match.
func buildIndexMapping() mapping.IndexMapping {
	indexMapping := bleve.NewIndexMapping()
	indexMapping.DefaultAnalyzer = en.AnalyzerName

	docMapping := bleve.NewDocumentMapping()

	titleField := bleve.NewTextFieldMapping()
	titleField.Analyzer = en.AnalyzerName
	titleField.Store = true
	docMapping.AddFieldMappingsAt("title", titleField)

	authorField := bleve.NewTextFieldMapping()
	authorField.Analyzer = en.AnalyzerName
	authorField.Store = true
	docMapping.AddFieldMappingsAt("author", authorField)

	seriesField := bleve.NewTextFieldMapping()
	seriesField.Analyzer = en.AnalyzerName
	docMapping.AddFieldMappingsAt("series", seriesField)

	genreField := bleve.NewTextFieldMapping()
	genreField.Analyzer = keyword.Name
	docMapping.AddFieldMappingsAt("main_genres", genreField)

	subGenreField := bleve.NewTextFieldMapping()
	subGenreField.Analyzer = keyword.Name
	docMapping.AddFieldMappingsAt("sub_genres", subGenreField)

	indexMapping.AddDocumentMapping("_default", docMapping)
	return indexMapping
}

// NewIndex creates an empty in-memory index.
func NewIndex(logger *slog.Logger) (*Index, error) {
	index, err := bleve.NewMemOnly(buildIndexMapping())
	if err != nil {
		return nil, fmt.Errorf("create search index: %w", err)
	}
	return &Index{index: index, logger: logger}, nil
}

// Close releases index resources.
func (i *Index) Close() error {
	return i.index.Close()
}

// IndexBooks loads the given books into the index in a single batch.
func (i *Index) IndexBooks(books []*domain.Book) error {
	batch := i.index.NewBatch()
	for _, b := range books {
		doc := bookDocument{
			Title:      b.Title,
			Author:     b.Author,
			Series:     b.Series,
			MainGenres: b.MainGenres,
			SubGenres:  b.SubGenres,
		}
		if err := batch.Index(strconv.FormatInt(b.ID, 10), doc); err != nil {
			return fmt.Errorf("index book %d: %w", b.ID, err)
		}
	}

	if err := i.index.Batch(batch); err != nil {
		return fmt.Errorf("apply index batch: %w", err)
	}

	if i.logger != nil {
		i.logger.Info("search index built", "books", len(books))
	}
	return nil
}

// Search runs a fuzzy match query over titles and authors and returns
// matching book IDs by relevance. A non-positive limit uses the default.
func (i *Index) Search(ctx context.Context, queryText string, limit int) ([]Hit, error) {
	if limit <= 0 {
		limit = defaultLimit
	}

	// Match query with fuzziness tolerates minor typos; a disjunction with
	// a prefix query covers partially typed titles.
	matchQuery := bleve.NewMatchQuery(queryText)
	matchQuery.SetFuzziness(1)

	prefixQuery := bleve.NewPrefixQuery(queryText)

	searchQuery := bleve.NewDisjunctionQuery(matchQuery, prefixQuery)

	req := bleve.NewSearchRequestOptions(searchQuery, limit, 0, false)
	result, err := i.index.SearchInContext(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}

	hits := make([]Hit, 0, len(result.Hits))
	for _, h := range result.Hits {
		id, err := strconv.ParseInt(h.ID, 10, 64)
		if err != nil {
			continue // Not a book document
		}
		hits = append(hits, Hit{BookID: id, Score: h.Score})
	}
	return hits, nil
}

// Package recommend talks to the external scoring service that produces
// book recommendations. The service receives titles or a sub-genre and
// answers with an ordered list of catalog book IDs.
package recommend

import (
	"bytes"
	"context"
	"encoding/json/v2"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"
)

const (
	similarBooksPath = "/recommend-similar-books"
	bySubGenrePath   = "/recommend-books-by-sub-genre"

	defaultTimeout = 30 * time.Second
)

// Errors returned by the client.
var (
	ErrUnavailable = errors.New("recommendation service unavailable")
	ErrBadRequest  = errors.New("recommendation service rejected the request")
)

// Client calls the external recommendation service.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *slog.Logger
}

// New creates a recommendation client for the given base URL.
// A zero timeout falls back to the default.
func New(baseURL string, timeout time.Duration, logger *slog.Logger) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

// similarBooksRequest is the payload for title-based recommendations.
type similarBooksRequest struct {
	BookTitles        []string `json:"book_titles"`
	ExcludeSameAuthor bool     `json:"exclude_same_author"`
}

// bySubGenreRequest is the payload for genre-based recommendations.
type bySubGenreRequest struct {
	SubGenre string `json:"sub_genre"`
}

// SimilarBooks asks the service for books similar to the given titles.
// Returns catalog book IDs in the service's ranking order.
func (c *Client) SimilarBooks(ctx context.Context, titles []string, excludeSameAuthor bool) ([]int64, error) {
	return c.doRequest(ctx, similarBooksPath, similarBooksRequest{
		BookTitles:        titles,
		ExcludeSameAuthor: excludeSameAuthor,
	})
}

// BySubGenre asks the service for top-rated books in a sub-genre.
func (c *Client) BySubGenre(ctx context.Context, subGenre string) ([]int64, error) {
	return c.doRequest(ctx, bySubGenrePath, bySubGenreRequest{SubGenre: subGenre})
}

// doRequest posts a JSON payload and decodes the ID list response.
func (c *Client) doRequest(ctx context.Context, path string, payload any) ([]int64, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	c.logger.Debug("recommendation request", "path", path)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusOK:
		// Decoded below.
	case resp.StatusCode == http.StatusBadRequest:
		return nil, ErrBadRequest
	case resp.StatusCode >= 500:
		return nil, fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode)
	default:
		return nil, fmt.Errorf("unexpected status %d: %s", resp.StatusCode, string(respBody))
	}

	var ids []int64
	if err := json.Unmarshal(respBody, &ids); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return ids, nil
}

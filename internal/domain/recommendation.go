package domain

import "time"

// Recommendation records an external similarity or genre query and its
// resulting book IDs. Either InputBookIDs or InputSubGenre is set, depending
// on which kind of query produced it. Output IDs come from the external
// scoring service and are not validated against the catalog.
type Recommendation struct {
	ID            string    `json:"id"`
	UserID        int64     `json:"user_id"`
	InputBookIDs  []int64   `json:"input_book_ids,omitempty"`
	InputSubGenre string    `json:"input_sub_genre,omitempty"`
	OutputBookIDs []int64   `json:"output_book_ids"`
	CreatedAt     time.Time `json:"created_at"`
}

package domain

import "time"

// Favorite is a user's bookmark of a catalog book. Favorites are keyed by
// the (user, book) pair in the document store, so a pair exists at most once.
// No guarantee ties a favorite to catalog existence: a favorite can outlive
// or predate its book row.
type Favorite struct {
	UserID    int64     `json:"user_id"`
	BookID    int64     `json:"book_id"`
	CreatedAt time.Time `json:"created_at"`
}

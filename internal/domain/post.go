package domain

import "time"

// Post is a user-authored review of a book. Posts live in the document store
// and reference catalog books and users by numeric ID (soft foreign keys).
type Post struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	UserID    int64     `json:"user_id"`
	BookID    int64     `json:"book_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Touch updates the modification timestamp.
func (p *Post) Touch() {
	p.UpdatedAt = time.Now()
}

package domain

import "time"

// Book is a catalog entry. The catalog is read-mostly: rows are written by
// the seeder, never by the API.
type Book struct {
	ID            int64      `json:"id"`
	Title         string     `json:"title"`
	Author        string     `json:"author"`
	CoverLink     string     `json:"cover_link,omitempty"`
	Series        string     `json:"series,omitempty"`
	AverageRating float64    `json:"average_rating"`
	RatingCount   int64      `json:"rating_count"`
	ReviewCount   int64      `json:"review_count"`
	NumberOfPages int64      `json:"number_of_pages,omitempty"`
	DatePublished *time.Time `json:"date_published,omitempty"`
	Publisher     string     `json:"publisher,omitempty"`
	ISBN          string     `json:"isbn,omitempty"`
	Description   string     `json:"description,omitempty"`
	MainGenres    string     `json:"main_genres,omitempty"`
	SubGenres     string     `json:"sub_genres,omitempty"`
}

// BookSummary is the projection used for lists that only need display fields.
type BookSummary struct {
	ID        int64  `json:"id"`
	Title     string `json:"title"`
	CoverLink string `json:"cover_link,omitempty"`
}

// BookRatingSummary is the projection returned with recommendation results.
type BookRatingSummary struct {
	ID            int64   `json:"id"`
	Title         string  `json:"title"`
	Author        string  `json:"author"`
	AverageRating float64 `json:"average_rating"`
	RatingCount   int64   `json:"rating_count"`
}

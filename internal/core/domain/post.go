package domain

import "time"

// =============================================================================
// Post
// =============================================================================

// Author is the embedded author projection attached to a post. All fields
// are pointers: when the author join misses (dangling foreign key), the
// sub-object is present with null fields rather than the read failing.
type Author struct {
	ID    *int64
	Name  *string
	Email *string
}

// Post represents a blog post. AuthorID must reference an existing User;
// the storage layer reports a violation as a foreign key error.
type Post struct {
	ID              int64
	Title           string
	Content         string
	Excerpt         *string
	MetaDescription *string
	MetaKeywords    *string
	AuthorID        int64
	Published       bool
	CreatedAt       time.Time
	UpdatedAt       time.Time

	// Author is populated by joined reads; zero-valued on writes.
	Author Author
}

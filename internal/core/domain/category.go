package domain

import "time"

// =============================================================================
// Category
// =============================================================================

// Category represents a post category. Slug is unique among categories
// and always URL-safe: it passes through Slugify and ResolveUniqueSlug at
// write time, with the storage unique constraint as the authoritative
// guard.
type Category struct {
	ID          int64
	Name        string
	Slug        string
	Description *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

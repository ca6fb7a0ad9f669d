package api

import "time"

// =============================================================================
// Request Types
// =============================================================================

// CreateUserRequest is the request body for registering a user. The
// plaintext password is hashed before anything touches storage and never
// echoes back in a response.
type CreateUserRequest struct {
	Name     string  `json:"name"`
	Email    string  `json:"email"`
	Password string  `json:"password"`
	Bio      *string `json:"bio,omitempty"`
}

// UpdateUserRequest is the request body for updating a user. Password is
// deliberately not part of this surface.
type UpdateUserRequest struct {
	Name  string  `json:"name"`
	Email string  `json:"email"`
	Bio   *string `json:"bio,omitempty"`
}

// CreatePostRequest is the request body for creating a post.
type CreatePostRequest struct {
	Title           string  `json:"title"`
	Content         string  `json:"content"`
	Excerpt         *string `json:"excerpt,omitempty"`
	MetaDescription *string `json:"meta_description,omitempty"`
	MetaKeywords    *string `json:"meta_keywords,omitempty"`
	AuthorID        int64   `json:"author_id"`
	Published       bool    `json:"published"`
}

// UpdatePostRequest is the request body for updating a post.
type UpdatePostRequest struct {
	Title           string  `json:"title"`
	Content         string  `json:"content"`
	Excerpt         *string `json:"excerpt,omitempty"`
	MetaDescription *string `json:"meta_description,omitempty"`
	MetaKeywords    *string `json:"meta_keywords,omitempty"`
	Published       bool    `json:"published"`
}

// PublishPostRequest is the request body for toggling the published flag.
type PublishPostRequest struct {
	Published bool `json:"published"`
}

// CategoryRequest is the request body for creating or updating a
// category. A missing slug is derived from the name; a supplied slug is
// normalized before use.
type CategoryRequest struct {
	Name        string  `json:"name"`
	Slug        string  `json:"slug,omitempty"`
	Description *string `json:"description,omitempty"`
}

// =============================================================================
// Response Types
// =============================================================================

// UserResponse is the response for user operations. There is no password
// field here, hashed or otherwise.
type UserResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Bio       *string   `json:"bio"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// AuthorResponse is the embedded author object on a post. Fields are
// null when the author join misses.
type AuthorResponse struct {
	ID    *int64  `json:"id"`
	Name  *string `json:"name"`
	Email *string `json:"email"`
}

// PostResponse is the response for post operations.
type PostResponse struct {
	ID              int64          `json:"id"`
	Title           string         `json:"title"`
	Content         string         `json:"content"`
	Excerpt         *string        `json:"excerpt"`
	MetaDescription *string        `json:"meta_description"`
	MetaKeywords    *string        `json:"meta_keywords"`
	Published       bool           `json:"published"`
	Author          AuthorResponse `json:"author"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
}

// CategoryResponse is the response for category operations.
type CategoryResponse struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description *string   `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ListUsersResponse is the response for listing users.
type ListUsersResponse struct {
	Users  []UserResponse `json:"users"`
	Total  int            `json:"total"`
	Limit  int            `json:"limit"`
	Offset int            `json:"offset"`
}

// ListPostsResponse is the response for listing posts.
type ListPostsResponse struct {
	Posts  []PostResponse `json:"posts"`
	Total  int            `json:"total"`
	Limit  int            `json:"limit"`
	Offset int            `json:"offset"`
}

// ListCategoriesResponse is the response for listing categories.
type ListCategoriesResponse struct {
	Categories []CategoryResponse `json:"categories"`
	Total      int                `json:"total"`
	Limit      int                `json:"limit"`
	Offset     int                `json:"offset"`
}

// DeleteResponse acknowledges a deletion.
type DeleteResponse struct {
	Message string `json:"message"`
	ID      int64  `json:"id"`
}

// CheckSlugResponse reports slug availability.
type CheckSlugResponse struct {
	Available bool   `json:"available"`
	Slug      string `json:"slug"`
}

// ErrorResponse is the error response format.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// HealthResponse is the health check response.
type HealthResponse struct {
	Status   string `json:"status"`
	Message  string `json:"message"`
	Instance string `json:"instance,omitempty"`
}

// ReadyResponse is the readiness check response.
type ReadyResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

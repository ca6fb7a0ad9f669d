package store

import (
	"context"

	"github.com/openblog/blogd/internal/core/domain"
)

// =============================================================================
// Store Interface
// =============================================================================

// Store defines the persistence interface for blog entities.
//
// Every write is a single-statement, single-row operation; no multi-step
// transactions exist in this API.
type Store interface {
	// User operations
	CreateUser(ctx context.Context, user *domain.User) error
	GetUser(ctx context.Context, id int64) (*domain.User, error)
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)
	UpdateUser(ctx context.Context, user *domain.User) error
	DeleteUser(ctx context.Context, id int64) error
	ListUsers(ctx context.Context, opts ListOptions) ([]domain.User, error)

	// Post operations (reads join the author)
	CreatePost(ctx context.Context, post *domain.Post) error
	GetPost(ctx context.Context, id int64) (*domain.Post, error)
	UpdatePost(ctx context.Context, post *domain.Post) error
	SetPostPublished(ctx context.Context, id int64, published bool) error
	DeletePost(ctx context.Context, id int64) error
	ListPosts(ctx context.Context, opts PostListOptions) ([]domain.Post, error)

	// Category operations
	CreateCategory(ctx context.Context, category *domain.Category) error
	GetCategory(ctx context.Context, id int64) (*domain.Category, error)
	GetCategoryBySlug(ctx context.Context, slug string) (*domain.Category, error)
	// CategorySlugExists reports whether a slug is taken by any category
	// other than excludeID. Pass 0 to exclude nothing. This is the
	// advisory pre-check; the unique constraint on categories.slug is the
	// authoritative guard.
	CategorySlugExists(ctx context.Context, slug string, excludeID int64) (bool, error)
	UpdateCategory(ctx context.Context, category *domain.Category) error
	DeleteCategory(ctx context.Context, id int64) error
	ListCategories(ctx context.Context, opts ListOptions) ([]domain.Category, error)

	// Lifecycle
	Ping(ctx context.Context) error
	Close() error
}

// =============================================================================
// Options
// =============================================================================

// ListOptions defines pagination options.
type ListOptions struct {
	Limit  int
	Offset int
}

// PostListOptions defines pagination and filtering options for post
// listings. A nil AuthorID means no author filter.
type PostListOptions struct {
	ListOptions
	AuthorID *int64
}

// DefaultListOptions returns default list options.
func DefaultListOptions() ListOptions {
	return ListOptions{
		Limit:  20,
		Offset: 0,
	}
}

// Normalize ensures list options have valid values. The upper limit is
// the explicit bound on otherwise caller-controlled pagination.
func (o ListOptions) Normalize() ListOptions {
	if o.Limit <= 0 {
		o.Limit = 20
	}
	if o.Limit > 1000 {
		o.Limit = 1000
	}
	if o.Offset < 0 {
		o.Offset = 0
	}
	return o
}

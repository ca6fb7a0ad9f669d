package store

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"

	"github.com/openblog/blogd/internal/core/domain"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// =============================================================================
// SQLiteStore
// =============================================================================

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db *sqlx.DB
}

// NewSQLiteStore creates a new SQLite store and runs migrations.
func NewSQLiteStore(dsn string) (*SQLiteStore, error) {
	db, err := sqlx.Open("sqlite3", dsn+"?_foreign_keys=on")
	if err != nil {
		return nil, NewStoreError("NewSQLiteStore", "", "", "failed to open database", ErrConnectionFailed)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, NewStoreError("NewSQLiteStore", "", "", "failed to ping database", ErrConnectionFailed)
	}

	if err := runMigrations(db.DB); err != nil {
		db.Close()
		return nil, NewStoreError("NewSQLiteStore", "", "", err.Error(), ErrMigrationFailed)
	}

	return &SQLiteStore{db: db}, nil
}

// runMigrations runs database migrations using embedded SQL files.
func runMigrations(db *sql.DB) error {
	driver, err := sqlite3.WithInstance(db, &sqlite3.Config{})
	if err != nil {
		return fmt.Errorf("failed to create migration driver: %w", err)
	}

	source, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("failed to create migration source: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, "sqlite3", driver)
	if err != nil {
		return fmt.Errorf("failed to create migrator: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}

// Ping verifies the database connection is alive.
func (s *SQLiteStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// =============================================================================
// Row Mapping Helpers
// =============================================================================

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func parseTime(op, entity, id, value string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, NewStoreError(op, entity, id, "malformed timestamp "+value, ErrInvalidData)
	}
	return t, nil
}

// =============================================================================
// User Operations
// =============================================================================

// userRow represents a user row in the database.
type userRow struct {
	ID        int64   `db:"id"`
	Name      string  `db:"name"`
	Email     string  `db:"email"`
	Password  string  `db:"password"`
	Bio       *string `db:"bio"`
	CreatedAt string  `db:"created_at"`
	UpdatedAt string  `db:"updated_at"`
}

func rowToUser(op string, row *userRow) (*domain.User, error) {
	createdAt, err := parseTime(op, "user", itoa(row.ID), row.CreatedAt)
	if err != nil {
		return nil, err
	}
	updatedAt, err := parseTime(op, "user", itoa(row.ID), row.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &domain.User{
		ID:           row.ID,
		Name:         row.Name,
		Email:        row.Email,
		PasswordHash: row.Password,
		Bio:          row.Bio,
		CreatedAt:    createdAt,
		UpdatedAt:    updatedAt,
	}, nil
}

func (s *SQLiteStore) CreateUser(ctx context.Context, user *domain.User) error {
	query := `
		INSERT INTO users (name, email, password, bio, created_at, updated_at)
		VALUES (:name, :email, :password, :bio, :created_at, :updated_at)`

	row := map[string]any{
		"name":       user.Name,
		"email":      user.Email,
		"password":   user.PasswordHash,
		"bio":        user.Bio,
		"created_at": formatTime(user.CreatedAt),
		"updated_at": formatTime(user.UpdatedAt),
	}

	result, err := s.db.NamedExecContext(ctx, query, row)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed: users.email") {
			return NewStoreError("CreateUser", "user", user.Email, "user with this email already exists", ErrDuplicateEmail)
		}
		return NewStoreError("CreateUser", "user", "", err.Error(), err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return NewStoreError("CreateUser", "user", "", err.Error(), err)
	}
	user.ID = id

	return nil
}

func (s *SQLiteStore) GetUser(ctx context.Context, id int64) (*domain.User, error) {
	query := `SELECT * FROM users WHERE id = ?`

	var row userRow
	err := s.db.GetContext(ctx, &row, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, NewStoreError("GetUser", "user", itoa(id), "user not found", ErrNotFound)
		}
		return nil, NewStoreError("GetUser", "user", itoa(id), err.Error(), err)
	}

	return rowToUser("GetUser", &row)
}

func (s *SQLiteStore) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `SELECT * FROM users WHERE email = ?`

	var row userRow
	err := s.db.GetContext(ctx, &row, query, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, NewStoreError("GetUserByEmail", "user", email, "user not found", ErrNotFound)
		}
		return nil, NewStoreError("GetUserByEmail", "user", email, err.Error(), err)
	}

	return rowToUser("GetUserByEmail", &row)
}

func (s *SQLiteStore) UpdateUser(ctx context.Context, user *domain.User) error {
	query := `
		UPDATE users SET
			name = :name,
			email = :email,
			bio = :bio,
			updated_at = :updated_at
		WHERE id = :id`

	row := map[string]any{
		"id":         user.ID,
		"name":       user.Name,
		"email":      user.Email,
		"bio":        user.Bio,
		"updated_at": formatTime(user.UpdatedAt),
	}

	result, err := s.db.NamedExecContext(ctx, query, row)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed: users.email") {
			return NewStoreError("UpdateUser", "user", user.Email, "user with this email already exists", ErrDuplicateEmail)
		}
		return NewStoreError("UpdateUser", "user", itoa(user.ID), err.Error(), err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return NewStoreError("UpdateUser", "user", itoa(user.ID), "user not found", ErrNotFound)
	}

	return nil
}

func (s *SQLiteStore) DeleteUser(ctx context.Context, id int64) error {
	query := `DELETE FROM users WHERE id = ?`

	result, err := s.db.ExecContext(ctx, query, id)
	if err != nil {
		if strings.Contains(err.Error(), "FOREIGN KEY constraint failed") {
			return NewStoreError("DeleteUser", "user", itoa(id), "user still has posts", ErrForeignKey)
		}
		return NewStoreError("DeleteUser", "user", itoa(id), err.Error(), err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return NewStoreError("DeleteUser", "user", itoa(id), "user not found", ErrNotFound)
	}

	return nil
}

func (s *SQLiteStore) ListUsers(ctx context.Context, opts ListOptions) ([]domain.User, error) {
	opts = opts.Normalize()
	query := `SELECT * FROM users ORDER BY created_at DESC LIMIT ? OFFSET ?`

	var rows []userRow
	err := s.db.SelectContext(ctx, &rows, query, opts.Limit, opts.Offset)
	if err != nil {
		return nil, NewStoreError("ListUsers", "user", "", err.Error(), err)
	}

	users := make([]domain.User, 0, len(rows))
	for _, row := range rows {
		user, err := rowToUser("ListUsers", &row)
		if err != nil {
			return nil, err
		}
		users = append(users, *user)
	}

	return users, nil
}

// =============================================================================
// Post Operations
// =============================================================================

// postRow represents a post row joined with its author. The author
// columns come from a LEFT JOIN and are nullable as a set: a dangling
// author_id yields a row with all three unset.
type postRow struct {
	ID              int64   `db:"id"`
	Title           string  `db:"title"`
	Content         string  `db:"content"`
	Excerpt         *string `db:"excerpt"`
	MetaDescription *string `db:"meta_description"`
	MetaKeywords    *string `db:"meta_keywords"`
	AuthorID        int64   `db:"author_id"`
	Published       bool    `db:"published"`
	CreatedAt       string  `db:"created_at"`
	UpdatedAt       string  `db:"updated_at"`
	JoinedAuthorID  *int64  `db:"joined_author_id"`
	AuthorName      *string `db:"author_name"`
	AuthorEmail     *string `db:"author_email"`
}

// postSelect is the joined projection shared by every post read.
const postSelect = `
	SELECT
		p.id, p.title, p.content, p.excerpt,
		p.meta_description, p.meta_keywords,
		p.author_id, p.published, p.created_at, p.updated_at,
		u.id AS joined_author_id, u.name AS author_name, u.email AS author_email
	FROM posts p
	LEFT JOIN users u ON u.id = p.author_id`

func rowToPost(op string, row *postRow) (*domain.Post, error) {
	createdAt, err := parseTime(op, "post", itoa(row.ID), row.CreatedAt)
	if err != nil {
		return nil, err
	}
	updatedAt, err := parseTime(op, "post", itoa(row.ID), row.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &domain.Post{
		ID:              row.ID,
		Title:           row.Title,
		Content:         row.Content,
		Excerpt:         row.Excerpt,
		MetaDescription: row.MetaDescription,
		MetaKeywords:    row.MetaKeywords,
		AuthorID:        row.AuthorID,
		Published:       row.Published,
		CreatedAt:       createdAt,
		UpdatedAt:       updatedAt,
		Author: domain.Author{
			ID:    row.JoinedAuthorID,
			Name:  row.AuthorName,
			Email: row.AuthorEmail,
		},
	}, nil
}

func (s *SQLiteStore) CreatePost(ctx context.Context, post *domain.Post) error {
	query := `
		INSERT INTO posts (
			title, content, excerpt, meta_description, meta_keywords,
			author_id, published, created_at, updated_at
		) VALUES (
			:title, :content, :excerpt, :meta_description, :meta_keywords,
			:author_id, :published, :created_at, :updated_at
		)`

	row := map[string]any{
		"title":            post.Title,
		"content":          post.Content,
		"excerpt":          post.Excerpt,
		"meta_description": post.MetaDescription,
		"meta_keywords":    post.MetaKeywords,
		"author_id":        post.AuthorID,
		"published":        post.Published,
		"created_at":       formatTime(post.CreatedAt),
		"updated_at":       formatTime(post.UpdatedAt),
	}

	result, err := s.db.NamedExecContext(ctx, query, row)
	if err != nil {
		if strings.Contains(err.Error(), "FOREIGN KEY constraint failed") {
			return NewStoreError("CreatePost", "post", "", "author not found", ErrForeignKey)
		}
		return NewStoreError("CreatePost", "post", "", err.Error(), err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return NewStoreError("CreatePost", "post", "", err.Error(), err)
	}
	post.ID = id

	return nil
}

func (s *SQLiteStore) GetPost(ctx context.Context, id int64) (*domain.Post, error) {
	query := postSelect + ` WHERE p.id = ?`

	var row postRow
	err := s.db.GetContext(ctx, &row, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, NewStoreError("GetPost", "post", itoa(id), "post not found", ErrNotFound)
		}
		return nil, NewStoreError("GetPost", "post", itoa(id), err.Error(), err)
	}

	return rowToPost("GetPost", &row)
}

func (s *SQLiteStore) UpdatePost(ctx context.Context, post *domain.Post) error {
	query := `
		UPDATE posts SET
			title = :title,
			content = :content,
			excerpt = :excerpt,
			meta_description = :meta_description,
			meta_keywords = :meta_keywords,
			published = :published,
			updated_at = :updated_at
		WHERE id = :id`

	row := map[string]any{
		"id":               post.ID,
		"title":            post.Title,
		"content":          post.Content,
		"excerpt":          post.Excerpt,
		"meta_description": post.MetaDescription,
		"meta_keywords":    post.MetaKeywords,
		"published":        post.Published,
		"updated_at":       formatTime(post.UpdatedAt),
	}

	result, err := s.db.NamedExecContext(ctx, query, row)
	if err != nil {
		return NewStoreError("UpdatePost", "post", itoa(post.ID), err.Error(), err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return NewStoreError("UpdatePost", "post", itoa(post.ID), "post not found", ErrNotFound)
	}

	return nil
}

func (s *SQLiteStore) SetPostPublished(ctx context.Context, id int64, published bool) error {
	query := `UPDATE posts SET published = ?, updated_at = ? WHERE id = ?`

	result, err := s.db.ExecContext(ctx, query, published, formatTime(time.Now()), id)
	if err != nil {
		return NewStoreError("SetPostPublished", "post", itoa(id), err.Error(), err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return NewStoreError("SetPostPublished", "post", itoa(id), "post not found", ErrNotFound)
	}

	return nil
}

func (s *SQLiteStore) DeletePost(ctx context.Context, id int64) error {
	query := `DELETE FROM posts WHERE id = ?`

	result, err := s.db.ExecContext(ctx, query, id)
	if err != nil {
		return NewStoreError("DeletePost", "post", itoa(id), err.Error(), err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return NewStoreError("DeletePost", "post", itoa(id), "post not found", ErrNotFound)
	}

	return nil
}

func (s *SQLiteStore) ListPosts(ctx context.Context, opts PostListOptions) ([]domain.Post, error) {
	opts.ListOptions = opts.ListOptions.Normalize()

	query := postSelect
	args := []any{}
	if opts.AuthorID != nil {
		query += ` WHERE p.author_id = ?`
		args = append(args, *opts.AuthorID)
	}
	query += ` ORDER BY p.created_at DESC LIMIT ? OFFSET ?`
	args = append(args, opts.Limit, opts.Offset)

	var rows []postRow
	err := s.db.SelectContext(ctx, &rows, query, args...)
	if err != nil {
		return nil, NewStoreError("ListPosts", "post", "", err.Error(), err)
	}

	posts := make([]domain.Post, 0, len(rows))
	for _, row := range rows {
		post, err := rowToPost("ListPosts", &row)
		if err != nil {
			return nil, err
		}
		posts = append(posts, *post)
	}

	return posts, nil
}

// =============================================================================
// Category Operations
// =============================================================================

// categoryRow represents a category row in the database.
type categoryRow struct {
	ID          int64   `db:"id"`
	Name        string  `db:"name"`
	Slug        string  `db:"slug"`
	Description *string `db:"description"`
	CreatedAt   string  `db:"created_at"`
	UpdatedAt   string  `db:"updated_at"`
}

func rowToCategory(op string, row *categoryRow) (*domain.Category, error) {
	createdAt, err := parseTime(op, "category", itoa(row.ID), row.CreatedAt)
	if err != nil {
		return nil, err
	}
	updatedAt, err := parseTime(op, "category", itoa(row.ID), row.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &domain.Category{
		ID:          row.ID,
		Name:        row.Name,
		Slug:        row.Slug,
		Description: row.Description,
		CreatedAt:   createdAt,
		UpdatedAt:   updatedAt,
	}, nil
}

func (s *SQLiteStore) CreateCategory(ctx context.Context, category *domain.Category) error {
	query := `
		INSERT INTO categories (name, slug, description, created_at, updated_at)
		VALUES (:name, :slug, :description, :created_at, :updated_at)`

	row := map[string]any{
		"name":        category.Name,
		"slug":        category.Slug,
		"description": category.Description,
		"created_at":  formatTime(category.CreatedAt),
		"updated_at":  formatTime(category.UpdatedAt),
	}

	result, err := s.db.NamedExecContext(ctx, query, row)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed: categories.slug") {
			return NewStoreError("CreateCategory", "category", category.Slug, "category with this slug already exists", ErrDuplicateSlug)
		}
		return NewStoreError("CreateCategory", "category", "", err.Error(), err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return NewStoreError("CreateCategory", "category", "", err.Error(), err)
	}
	category.ID = id

	return nil
}

func (s *SQLiteStore) GetCategory(ctx context.Context, id int64) (*domain.Category, error) {
	query := `SELECT * FROM categories WHERE id = ?`

	var row categoryRow
	err := s.db.GetContext(ctx, &row, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, NewStoreError("GetCategory", "category", itoa(id), "category not found", ErrNotFound)
		}
		return nil, NewStoreError("GetCategory", "category", itoa(id), err.Error(), err)
	}

	return rowToCategory("GetCategory", &row)
}

func (s *SQLiteStore) GetCategoryBySlug(ctx context.Context, slug string) (*domain.Category, error) {
	query := `SELECT * FROM categories WHERE slug = ?`

	var row categoryRow
	err := s.db.GetContext(ctx, &row, query, slug)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, NewStoreError("GetCategoryBySlug", "category", slug, "category not found", ErrNotFound)
		}
		return nil, NewStoreError("GetCategoryBySlug", "category", slug, err.Error(), err)
	}

	return rowToCategory("GetCategoryBySlug", &row)
}

func (s *SQLiteStore) CategorySlugExists(ctx context.Context, slug string, excludeID int64) (bool, error) {
	query := `SELECT COUNT(*) FROM categories WHERE slug = ? AND id != ?`

	var count int
	err := s.db.GetContext(ctx, &count, query, slug, excludeID)
	if err != nil {
		return false, NewStoreError("CategorySlugExists", "category", slug, err.Error(), err)
	}

	return count > 0, nil
}

func (s *SQLiteStore) UpdateCategory(ctx context.Context, category *domain.Category) error {
	query := `
		UPDATE categories SET
			name = :name,
			slug = :slug,
			description = :description,
			updated_at = :updated_at
		WHERE id = :id`

	row := map[string]any{
		"id":          category.ID,
		"name":        category.Name,
		"slug":        category.Slug,
		"description": category.Description,
		"updated_at":  formatTime(category.UpdatedAt),
	}

	result, err := s.db.NamedExecContext(ctx, query, row)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed: categories.slug") {
			return NewStoreError("UpdateCategory", "category", category.Slug, "category with this slug already exists", ErrDuplicateSlug)
		}
		return NewStoreError("UpdateCategory", "category", itoa(category.ID), err.Error(), err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return NewStoreError("UpdateCategory", "category", itoa(category.ID), "category not found", ErrNotFound)
	}

	return nil
}

func (s *SQLiteStore) DeleteCategory(ctx context.Context, id int64) error {
	query := `DELETE FROM categories WHERE id = ?`

	result, err := s.db.ExecContext(ctx, query, id)
	if err != nil {
		return NewStoreError("DeleteCategory", "category", itoa(id), err.Error(), err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return NewStoreError("DeleteCategory", "category", itoa(id), "category not found", ErrNotFound)
	}

	return nil
}

func (s *SQLiteStore) ListCategories(ctx context.Context, opts ListOptions) ([]domain.Category, error) {
	opts = opts.Normalize()
	query := `SELECT * FROM categories ORDER BY created_at DESC LIMIT ? OFFSET ?`

	var rows []categoryRow
	err := s.db.SelectContext(ctx, &rows, query, opts.Limit, opts.Offset)
	if err != nil {
		return nil, NewStoreError("ListCategories", "category", "", err.Error(), err)
	}

	categories := make([]domain.Category, 0, len(rows))
	for _, row := range rows {
		category, err := rowToCategory("ListCategories", &row)
		if err != nil {
			return nil, err
		}
		categories = append(categories, *category)
	}

	return categories, nil
}

package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openblog/blogd/internal/core/domain"
)

// =============================================================================
// Test Helpers
// =============================================================================

func setupTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := NewSQLiteStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() {
		store.Close()
	})
	return store
}

func createTestUser(t *testing.T, store Store, email string) *domain.User {
	t.Helper()
	now := time.Now().UTC().Truncate(time.Second)
	user := &domain.User{
		Name:         "Test User",
		Email:        email,
		PasswordHash: "$2a$10$fakefakefakefakefakefake",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	require.NoError(t, store.CreateUser(context.Background(), user))
	return user
}

func createTestPost(t *testing.T, store Store, authorID int64, title string, createdAt time.Time) *domain.Post {
	t.Helper()
	post := &domain.Post{
		Title:     title,
		Content:   "Some content",
		AuthorID:  authorID,
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	}
	require.NoError(t, store.CreatePost(context.Background(), post))
	return post
}

func createTestCategory(t *testing.T, store Store, name, slug string) *domain.Category {
	t.Helper()
	now := time.Now().UTC().Truncate(time.Second)
	category := &domain.Category{
		Name:      name,
		Slug:      slug,
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(t, store.CreateCategory(context.Background(), category))
	return category
}

// =============================================================================
// User CRUD Tests
// =============================================================================

func TestCreateUser_Success(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	user := createTestUser(t, store, "jane@example.com")
	assert.NotZero(t, user.ID)

	retrieved, err := store.GetUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.Name, retrieved.Name)
	assert.Equal(t, user.Email, retrieved.Email)
	assert.Equal(t, user.PasswordHash, retrieved.PasswordHash)
	assert.Nil(t, retrieved.Bio)
	assert.True(t, user.CreatedAt.Equal(retrieved.CreatedAt))
}

func TestCreateUser_DuplicateEmail(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	createTestUser(t, store, "jane@example.com")

	now := time.Now().UTC()
	dup := &domain.User{
		Name:         "Other",
		Email:        "jane@example.com",
		PasswordHash: "hash",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	err := store.CreateUser(ctx, dup)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDuplicateEmail)
}

func TestGetUser_NotFound(t *testing.T) {
	store := setupTestStore(t)

	_, err := store.GetUser(context.Background(), 12345)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetUserByEmail_Success(t *testing.T) {
	store := setupTestStore(t)

	user := createTestUser(t, store, "jane@example.com")

	retrieved, err := store.GetUserByEmail(context.Background(), "jane@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, retrieved.ID)
}

func TestUpdateUser_Success(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	user := createTestUser(t, store, "jane@example.com")

	bio := "Writes about Go"
	user.Name = "Jane Doe"
	user.Bio = &bio
	user.UpdatedAt = user.UpdatedAt.Add(time.Minute)
	require.NoError(t, store.UpdateUser(ctx, user))

	retrieved, err := store.GetUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", retrieved.Name)
	require.NotNil(t, retrieved.Bio)
	assert.Equal(t, bio, *retrieved.Bio)
}

func TestUpdateUser_DuplicateEmail(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	createTestUser(t, store, "taken@example.com")
	user := createTestUser(t, store, "jane@example.com")

	user.Email = "taken@example.com"
	err := store.UpdateUser(ctx, user)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDuplicateEmail)
}

func TestUpdateUser_NotFound(t *testing.T) {
	store := setupTestStore(t)

	user := &domain.User{ID: 999, Name: "Ghost", Email: "ghost@example.com"}
	err := store.UpdateUser(context.Background(), user)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteUser_Success(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	user := createTestUser(t, store, "jane@example.com")
	require.NoError(t, store.DeleteUser(ctx, user.ID))

	_, err := store.GetUser(ctx, user.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteUser_NotFound(t *testing.T) {
	store := setupTestStore(t)

	err := store.DeleteUser(context.Background(), 999)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteUser_WithPosts(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	user := createTestUser(t, store, "jane@example.com")
	createTestPost(t, store, user.ID, "Post", time.Now().UTC())

	err := store.DeleteUser(ctx, user.ID)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrForeignKey)
}

func TestListUsers_OrderedByCreatedAtDesc(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	base := time.Now().UTC().Truncate(time.Second)
	for i, email := range []string{"a@example.com", "b@example.com", "c@example.com"} {
		user := &domain.User{
			Name:         "User",
			Email:        email,
			PasswordHash: "hash",
			CreatedAt:    base.Add(time.Duration(i) * time.Minute),
			UpdatedAt:    base.Add(time.Duration(i) * time.Minute),
		}
		require.NoError(t, store.CreateUser(ctx, user))
	}

	users, err := store.ListUsers(ctx, ListOptions{Limit: 10})
	require.NoError(t, err)
	require.Len(t, users, 3)
	assert.Equal(t, "c@example.com", users[0].Email)
	assert.Equal(t, "a@example.com", users[2].Email)
}

// =============================================================================
// Post CRUD Tests
// =============================================================================

func TestCreatePost_Success(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	user := createTestUser(t, store, "author@example.com")
	post := createTestPost(t, store, user.ID, "Hello", time.Now().UTC().Truncate(time.Second))
	assert.NotZero(t, post.ID)

	retrieved, err := store.GetPost(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, "Hello", retrieved.Title)
	assert.False(t, retrieved.Published)
	require.NotNil(t, retrieved.Author.ID)
	assert.Equal(t, user.ID, *retrieved.Author.ID)
	require.NotNil(t, retrieved.Author.Name)
	assert.Equal(t, user.Name, *retrieved.Author.Name)
	require.NotNil(t, retrieved.Author.Email)
	assert.Equal(t, user.Email, *retrieved.Author.Email)
}

func TestCreatePost_UnknownAuthor(t *testing.T) {
	store := setupTestStore(t)

	now := time.Now().UTC()
	post := &domain.Post{
		Title:     "Orphan",
		Content:   "Body",
		AuthorID:  424242,
		CreatedAt: now,
		UpdatedAt: now,
	}
	err := store.CreatePost(context.Background(), post)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrForeignKey)
}

func TestGetPost_DanglingAuthorProjectsNullFields(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	// Force a dangling author_id past the constraint to exercise the
	// LEFT JOIN miss path.
	_, err := store.db.Exec(`PRAGMA foreign_keys = OFF`)
	require.NoError(t, err)
	res, err := store.db.Exec(
		`INSERT INTO posts (title, content, author_id, published, created_at, updated_at)
		 VALUES ('Orphan', 'Body', 999, 0, '2024-01-01T00:00:00Z', '2024-01-01T00:00:00Z')`)
	require.NoError(t, err)
	id, err := res.LastInsertId()
	require.NoError(t, err)

	post, err := store.GetPost(ctx, id)
	require.NoError(t, err)
	assert.Nil(t, post.Author.ID)
	assert.Nil(t, post.Author.Name)
	assert.Nil(t, post.Author.Email)
}

func TestGetPost_NotFound(t *testing.T) {
	store := setupTestStore(t)

	_, err := store.GetPost(context.Background(), 999)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdatePost_Success(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	user := createTestUser(t, store, "author@example.com")
	post := createTestPost(t, store, user.ID, "Before", time.Now().UTC().Truncate(time.Second))

	excerpt := "Short summary"
	post.Title = "After"
	post.Excerpt = &excerpt
	post.UpdatedAt = post.UpdatedAt.Add(time.Minute)
	require.NoError(t, store.UpdatePost(ctx, post))

	retrieved, err := store.GetPost(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, "After", retrieved.Title)
	require.NotNil(t, retrieved.Excerpt)
	assert.Equal(t, excerpt, *retrieved.Excerpt)
}

func TestUpdatePost_NotFound(t *testing.T) {
	store := setupTestStore(t)

	post := &domain.Post{ID: 999, Title: "Ghost", Content: "Body"}
	err := store.UpdatePost(context.Background(), post)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSetPostPublished_TogglesAndRefreshesUpdatedAt(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	user := createTestUser(t, store, "author@example.com")
	created := time.Now().UTC().Add(-time.Hour).Truncate(time.Second)
	post := createTestPost(t, store, user.ID, "Draft", created)

	require.NoError(t, store.SetPostPublished(ctx, post.ID, true))

	retrieved, err := store.GetPost(ctx, post.ID)
	require.NoError(t, err)
	assert.True(t, retrieved.Published)
	assert.True(t, retrieved.UpdatedAt.After(created))
}

func TestSetPostPublished_NotFound(t *testing.T) {
	store := setupTestStore(t)

	err := store.SetPostPublished(context.Background(), 999, true)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeletePost_NotFound(t *testing.T) {
	store := setupTestStore(t)

	err := store.DeletePost(context.Background(), 999)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListPosts_PaginationAndOrdering(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	user := createTestUser(t, store, "author@example.com")
	base := time.Now().UTC().Truncate(time.Second)
	for i := 0; i < 7; i++ {
		createTestPost(t, store, user.ID, "Post", base.Add(time.Duration(i)*time.Minute))
	}

	posts, err := store.ListPosts(ctx, PostListOptions{ListOptions: ListOptions{Limit: 5}})
	require.NoError(t, err)
	require.Len(t, posts, 5)
	for i := 1; i < len(posts); i++ {
		assert.False(t, posts[i].CreatedAt.After(posts[i-1].CreatedAt))
	}

	rest, err := store.ListPosts(ctx, PostListOptions{ListOptions: ListOptions{Limit: 5, Offset: 5}})
	require.NoError(t, err)
	assert.Len(t, rest, 2)
}

func TestListPosts_FilterByAuthor(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	alice := createTestUser(t, store, "alice@example.com")
	bob := createTestUser(t, store, "bob@example.com")
	base := time.Now().UTC().Truncate(time.Second)
	createTestPost(t, store, alice.ID, "By Alice", base)
	createTestPost(t, store, bob.ID, "By Bob", base.Add(time.Minute))

	posts, err := store.ListPosts(ctx, PostListOptions{
		ListOptions: ListOptions{Limit: 10},
		AuthorID:    &alice.ID,
	})
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, "By Alice", posts[0].Title)
}

// =============================================================================
// Category CRUD Tests
// =============================================================================

func TestCreateCategory_Success(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	category := createTestCategory(t, store, "Tech", "tech")
	assert.NotZero(t, category.ID)

	retrieved, err := store.GetCategory(ctx, category.ID)
	require.NoError(t, err)
	assert.Equal(t, "Tech", retrieved.Name)
	assert.Equal(t, "tech", retrieved.Slug)
}

func TestCreateCategory_DuplicateSlug(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	createTestCategory(t, store, "Tech", "tech")

	now := time.Now().UTC()
	dup := &domain.Category{Name: "Technology", Slug: "tech", CreatedAt: now, UpdatedAt: now}
	err := store.CreateCategory(ctx, dup)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDuplicateSlug)
}

func TestGetCategoryBySlug_Success(t *testing.T) {
	store := setupTestStore(t)

	category := createTestCategory(t, store, "Tech", "tech")

	retrieved, err := store.GetCategoryBySlug(context.Background(), "tech")
	require.NoError(t, err)
	assert.Equal(t, category.ID, retrieved.ID)
}

func TestGetCategoryBySlug_NotFound(t *testing.T) {
	store := setupTestStore(t)

	_, err := store.GetCategoryBySlug(context.Background(), "missing")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCategorySlugExists(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	category := createTestCategory(t, store, "Tech", "tech")

	exists, err := store.CategorySlugExists(ctx, "tech", 0)
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = store.CategorySlugExists(ctx, "missing", 0)
	require.NoError(t, err)
	assert.False(t, exists)

	// The owning category is excluded when updating.
	exists, err = store.CategorySlugExists(ctx, "tech", category.ID)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestUpdateCategory_DuplicateSlugLeavesRowUnchanged(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	createTestCategory(t, store, "Tech", "tech")
	category := createTestCategory(t, store, "News", "news")

	category.Slug = "tech"
	err := store.UpdateCategory(ctx, category)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDuplicateSlug)

	retrieved, err := store.GetCategory(ctx, category.ID)
	require.NoError(t, err)
	assert.Equal(t, "news", retrieved.Slug)
}

func TestDeleteCategory_NotFound(t *testing.T) {
	store := setupTestStore(t)

	err := store.DeleteCategory(context.Background(), 999)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListCategories_OrderedByCreatedAtDesc(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	base := time.Now().UTC().Truncate(time.Second)
	for i, name := range []string{"First", "Second", "Third"} {
		category := &domain.Category{
			Name:      name,
			Slug:      domain.Slugify(name),
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
			UpdatedAt: base.Add(time.Duration(i) * time.Minute),
		}
		require.NoError(t, store.CreateCategory(ctx, category))
	}

	categories, err := store.ListCategories(ctx, ListOptions{Limit: 10})
	require.NoError(t, err)
	require.Len(t, categories, 3)
	assert.Equal(t, "Third", categories[0].Name)
}

// =============================================================================
// Options Tests
// =============================================================================

func TestListOptions_Normalize(t *testing.T) {
	opts := ListOptions{Limit: 0, Offset: -5}.Normalize()
	assert.Equal(t, 20, opts.Limit)
	assert.Equal(t, 0, opts.Offset)

	opts = ListOptions{Limit: 5000, Offset: 10}.Normalize()
	assert.Equal(t, 1000, opts.Limit)
	assert.Equal(t, 10, opts.Offset)
}

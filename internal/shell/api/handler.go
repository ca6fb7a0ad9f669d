// Package api provides HTTP handlers for the blog API.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/crypto/bcrypt"

	"github.com/openblog/blogd/internal/core/domain"
	"github.com/openblog/blogd/internal/core/validation"
	"github.com/openblog/blogd/internal/shell/store"
)

// =============================================================================
// Handler
// =============================================================================

// Handler provides HTTP handlers for the API.
type Handler struct {
	store      store.Store
	logger     *slog.Logger
	instanceID string
}

// NewHandler creates a new API handler. instanceID identifies this
// process in health responses; empty is fine.
func NewHandler(s store.Store, l *slog.Logger, instanceID string) *Handler {
	if l == nil {
		l = slog.Default()
	}
	return &Handler{
		store:      s,
		logger:     l,
		instanceID: instanceID,
	}
}

// Routes returns the router with all routes configured.
func (h *Handler) Routes() http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(h.jsonContentType)
	r.Use(h.requestIDHeader)

	r.NotFound(h.handleRouteNotFound)
	r.MethodNotAllowed(h.handleRouteNotFound)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", h.handleHealth)
		r.Get("/ready", h.handleReady)

		r.Route("/users", func(r chi.Router) {
			r.Get("/", h.handleListUsers)
			r.Post("/", h.handleCreateUser)
			r.Get("/{id}", h.handleGetUser)
			r.Put("/{id}", h.handleUpdateUser)
			r.Delete("/{id}", h.handleDeleteUser)
		})

		r.Route("/posts", func(r chi.Router) {
			r.Get("/", h.handleListPosts)
			r.Post("/", h.handleCreatePost)
			r.Get("/{id}", h.handleGetPost)
			r.Put("/{id}", h.handleUpdatePost)
			r.Delete("/{id}", h.handleDeletePost)
			r.Patch("/{id}/publish", h.handlePublishPost)
		})

		r.Route("/categories", func(r chi.Router) {
			r.Get("/", h.handleListCategories)
			r.Post("/", h.handleCreateCategory)
			r.Get("/slug/{slug}", h.handleGetCategoryBySlug)
			r.Get("/check-slug/{slug}", h.handleCheckSlug)
			r.Get("/{id}", h.handleGetCategory)
			r.Put("/{id}", h.handleUpdateCategory)
			r.Delete("/{id}", h.handleDeleteCategory)
		})
	})

	return r
}

// =============================================================================
// Middleware
// =============================================================================

// jsonContentType sets Content-Type header to application/json.
func (h *Handler) jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		next.ServeHTTP(w, r)
	})
}

// requestIDHeader copies the request ID to the response header.
func (h *Handler) requestIDHeader(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if reqID := middleware.GetReqID(r.Context()); reqID != "" {
			w.Header().Set("X-Request-ID", reqID)
		}
		next.ServeHTTP(w, r)
	})
}

// =============================================================================
// Health Handlers
// =============================================================================

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, HealthResponse{
		Status:   "ok",
		Message:  "server is running",
		Instance: h.instanceID,
	})
}

func (h *Handler) handleReady(w http.ResponseWriter, r *http.Request) {
	checks := make(map[string]string)

	if err := h.store.Ping(r.Context()); err != nil {
		checks["database"] = "failed"
		h.writeJSON(w, http.StatusServiceUnavailable, ReadyResponse{
			Status: "not_ready",
			Checks: checks,
		})
		return
	}
	checks["database"] = "ok"

	h.writeJSON(w, http.StatusOK, ReadyResponse{
		Status: "ready",
		Checks: checks,
	})
}

func (h *Handler) handleRouteNotFound(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusNotFound, ErrorResponse{Error: "Route not found"})
}

// =============================================================================
// User Handlers
// =============================================================================

func (h *Handler) handleListUsers(w http.ResponseWriter, r *http.Request) {
	opts := h.listOptions(r)

	users, err := h.store.ListUsers(r.Context(), opts)
	if err != nil {
		h.logger.Error("failed to list users", "error", err)
		h.writeError(w, http.StatusInternalServerError, "failed to list users", "internal_error")
		return
	}

	resp := ListUsersResponse{
		Users:  make([]UserResponse, 0, len(users)),
		Total:  len(users),
		Limit:  opts.Limit,
		Offset: opts.Offset,
	}
	for _, u := range users {
		resp.Users = append(resp.Users, userToResponse(&u))
	}

	h.writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleGetUser(w http.ResponseWriter, r *http.Request) {
	id, ok := h.urlID(w, r)
	if !ok {
		return
	}

	user, err := h.store.GetUser(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			h.writeError(w, http.StatusNotFound, "user not found", "user_not_found")
			return
		}
		h.logger.Error("failed to get user", "error", err)
		h.writeError(w, http.StatusInternalServerError, "failed to get user", "internal_error")
		return
	}

	h.writeJSON(w, http.StatusOK, userToResponse(user))
}

func (h *Handler) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	var req CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid JSON", "validation_error")
		return
	}

	if field, msg := validation.ValidateCreateUserFields(req.Name, req.Email, req.Password); field != "" {
		h.writeError(w, http.StatusBadRequest, msg, "validation_error")
		return
	}

	// Hash before anything leaves the handler; the plaintext is never
	// persisted or echoed back.
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		h.logger.Error("failed to hash password", "error", err)
		h.writeError(w, http.StatusInternalServerError, "failed to create user", "internal_error")
		return
	}

	now := time.Now()
	user := &domain.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hash),
		Bio:          req.Bio,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := h.store.CreateUser(r.Context(), user); err != nil {
		if errors.Is(err, store.ErrDuplicateEmail) {
			h.writeError(w, http.StatusConflict, "email already exists", "email_taken")
			return
		}
		h.logger.Error("failed to create user", "error", err)
		h.writeError(w, http.StatusInternalServerError, "failed to create user", "internal_error")
		return
	}

	h.writeJSON(w, http.StatusCreated, userToResponse(user))
}

func (h *Handler) handleUpdateUser(w http.ResponseWriter, r *http.Request) {
	id, ok := h.urlID(w, r)
	if !ok {
		return
	}

	var req UpdateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid JSON", "validation_error")
		return
	}

	// Validation fails before any storage access.
	if field, msg := validation.ValidateUpdateUserFields(req.Name, req.Email); field != "" {
		h.writeError(w, http.StatusBadRequest, msg, "validation_error")
		return
	}

	user, err := h.store.GetUser(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			h.writeError(w, http.StatusNotFound, "user not found", "user_not_found")
			return
		}
		h.logger.Error("failed to get user", "error", err)
		h.writeError(w, http.StatusInternalServerError, "failed to update user", "internal_error")
		return
	}

	user.Name = req.Name
	user.Email = req.Email
	user.Bio = req.Bio
	user.UpdatedAt = time.Now()

	if err := h.store.UpdateUser(r.Context(), user); err != nil {
		if errors.Is(err, store.ErrDuplicateEmail) {
			h.writeError(w, http.StatusConflict, "email already exists", "email_taken")
			return
		}
		if errors.Is(err, store.ErrNotFound) {
			h.writeError(w, http.StatusNotFound, "user not found", "user_not_found")
			return
		}
		h.logger.Error("failed to update user", "error", err)
		h.writeError(w, http.StatusInternalServerError, "failed to update user", "internal_error")
		return
	}

	h.writeJSON(w, http.StatusOK, userToResponse(user))
}

func (h *Handler) handleDeleteUser(w http.ResponseWriter, r *http.Request) {
	id, ok := h.urlID(w, r)
	if !ok {
		return
	}

	if err := h.store.DeleteUser(r.Context(), id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			h.writeError(w, http.StatusNotFound, "user not found", "user_not_found")
			return
		}
		if errors.Is(err, store.ErrForeignKey) {
			h.writeError(w, http.StatusBadRequest, "user still has posts and cannot be deleted", "user_has_posts")
			return
		}
		h.logger.Error("failed to delete user", "error", err)
		h.writeError(w, http.StatusInternalServerError, "failed to delete user", "internal_error")
		return
	}

	h.writeJSON(w, http.StatusOK, DeleteResponse{Message: "user deleted successfully", ID: id})
}

// =============================================================================
// Post Handlers
// =============================================================================

func (h *Handler) handleListPosts(w http.ResponseWriter, r *http.Request) {
	opts := store.PostListOptions{ListOptions: h.listOptions(r)}

	if raw := r.URL.Query().Get("author_id"); raw != "" {
		authorID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			h.writeError(w, http.StatusBadRequest, "author_id must be an integer", "validation_error")
			return
		}
		opts.AuthorID = &authorID
	}

	posts, err := h.store.ListPosts(r.Context(), opts)
	if err != nil {
		h.logger.Error("failed to list posts", "error", err)
		h.writeError(w, http.StatusInternalServerError, "failed to list posts", "internal_error")
		return
	}

	resp := ListPostsResponse{
		Posts:  make([]PostResponse, 0, len(posts)),
		Total:  len(posts),
		Limit:  opts.Limit,
		Offset: opts.Offset,
	}
	for _, p := range posts {
		resp.Posts = append(resp.Posts, postToResponse(&p))
	}

	h.writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleGetPost(w http.ResponseWriter, r *http.Request) {
	id, ok := h.urlID(w, r)
	if !ok {
		return
	}

	post, err := h.store.GetPost(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			h.writeError(w, http.StatusNotFound, "post not found", "post_not_found")
			return
		}
		h.logger.Error("failed to get post", "error", err)
		h.writeError(w, http.StatusInternalServerError, "failed to get post", "internal_error")
		return
	}

	h.writeJSON(w, http.StatusOK, postToResponse(post))
}

func (h *Handler) handleCreatePost(w http.ResponseWriter, r *http.Request) {
	var req CreatePostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid JSON", "validation_error")
		return
	}

	if field, msg := validation.ValidateCreatePostFields(req.Title, req.Content, req.AuthorID); field != "" {
		h.writeError(w, http.StatusBadRequest, msg, "validation_error")
		return
	}

	now := time.Now()
	post := &domain.Post{
		Title:           req.Title,
		Content:         req.Content,
		Excerpt:         req.Excerpt,
		MetaDescription: req.MetaDescription,
		MetaKeywords:    req.MetaKeywords,
		AuthorID:        req.AuthorID,
		Published:       req.Published,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := h.store.CreatePost(r.Context(), post); err != nil {
		if errors.Is(err, store.ErrForeignKey) {
			h.writeError(w, http.StatusBadRequest, "invalid author_id: user does not exist", "invalid_author")
			return
		}
		h.logger.Error("failed to create post", "error", err)
		h.writeError(w, http.StatusInternalServerError, "failed to create post", "internal_error")
		return
	}

	// Re-read for the joined author projection.
	created, err := h.store.GetPost(r.Context(), post.ID)
	if err != nil {
		h.logger.Error("failed to load created post", "error", err)
		h.writeError(w, http.StatusInternalServerError, "failed to create post", "internal_error")
		return
	}

	h.writeJSON(w, http.StatusCreated, postToResponse(created))
}

func (h *Handler) handleUpdatePost(w http.ResponseWriter, r *http.Request) {
	id, ok := h.urlID(w, r)
	if !ok {
		return
	}

	var req UpdatePostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid JSON", "validation_error")
		return
	}

	if field, msg := validation.ValidateUpdatePostFields(req.Title, req.Content); field != "" {
		h.writeError(w, http.StatusBadRequest, msg, "validation_error")
		return
	}

	post, err := h.store.GetPost(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			h.writeError(w, http.StatusNotFound, "post not found", "post_not_found")
			return
		}
		h.logger.Error("failed to get post", "error", err)
		h.writeError(w, http.StatusInternalServerError, "failed to update post", "internal_error")
		return
	}

	post.Title = req.Title
	post.Content = req.Content
	post.Excerpt = req.Excerpt
	post.MetaDescription = req.MetaDescription
	post.MetaKeywords = req.MetaKeywords
	post.Published = req.Published
	post.UpdatedAt = time.Now()

	if err := h.store.UpdatePost(r.Context(), post); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			h.writeError(w, http.StatusNotFound, "post not found", "post_not_found")
			return
		}
		h.logger.Error("failed to update post", "error", err)
		h.writeError(w, http.StatusInternalServerError, "failed to update post", "internal_error")
		return
	}

	h.writeJSON(w, http.StatusOK, postToResponse(post))
}

func (h *Handler) handlePublishPost(w http.ResponseWriter, r *http.Request) {
	id, ok := h.urlID(w, r)
	if !ok {
		return
	}

	var req PublishPostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid JSON", "validation_error")
		return
	}

	if err := h.store.SetPostPublished(r.Context(), id, req.Published); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			h.writeError(w, http.StatusNotFound, "post not found", "post_not_found")
			return
		}
		h.logger.Error("failed to update post status", "error", err)
		h.writeError(w, http.StatusInternalServerError, "failed to update post status", "internal_error")
		return
	}

	post, err := h.store.GetPost(r.Context(), id)
	if err != nil {
		h.logger.Error("failed to load post", "error", err)
		h.writeError(w, http.StatusInternalServerError, "failed to update post status", "internal_error")
		return
	}

	h.writeJSON(w, http.StatusOK, postToResponse(post))
}

func (h *Handler) handleDeletePost(w http.ResponseWriter, r *http.Request) {
	id, ok := h.urlID(w, r)
	if !ok {
		return
	}

	if err := h.store.DeletePost(r.Context(), id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			h.writeError(w, http.StatusNotFound, "post not found", "post_not_found")
			return
		}
		h.logger.Error("failed to delete post", "error", err)
		h.writeError(w, http.StatusInternalServerError, "failed to delete post", "internal_error")
		return
	}

	h.writeJSON(w, http.StatusOK, DeleteResponse{Message: "post deleted successfully", ID: id})
}

// =============================================================================
// Category Handlers
// =============================================================================

func (h *Handler) handleListCategories(w http.ResponseWriter, r *http.Request) {
	opts := h.listOptions(r)

	categories, err := h.store.ListCategories(r.Context(), opts)
	if err != nil {
		h.logger.Error("failed to list categories", "error", err)
		h.writeError(w, http.StatusInternalServerError, "failed to list categories", "internal_error")
		return
	}

	resp := ListCategoriesResponse{
		Categories: make([]CategoryResponse, 0, len(categories)),
		Total:      len(categories),
		Limit:      opts.Limit,
		Offset:     opts.Offset,
	}
	for _, c := range categories {
		resp.Categories = append(resp.Categories, categoryToResponse(&c))
	}

	h.writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleGetCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := h.urlID(w, r)
	if !ok {
		return
	}

	category, err := h.store.GetCategory(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			h.writeError(w, http.StatusNotFound, "category not found", "category_not_found")
			return
		}
		h.logger.Error("failed to get category", "error", err)
		h.writeError(w, http.StatusInternalServerError, "failed to get category", "internal_error")
		return
	}

	h.writeJSON(w, http.StatusOK, categoryToResponse(category))
}

func (h *Handler) handleGetCategoryBySlug(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	category, err := h.store.GetCategoryBySlug(r.Context(), slug)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			h.writeError(w, http.StatusNotFound, "category not found", "category_not_found")
			return
		}
		h.logger.Error("failed to get category", "error", err)
		h.writeError(w, http.StatusInternalServerError, "failed to get category", "internal_error")
		return
	}

	h.writeJSON(w, http.StatusOK, categoryToResponse(category))
}

func (h *Handler) handleCheckSlug(w http.ResponseWriter, r *http.Request) {
	slug := domain.Slugify(chi.URLParam(r, "slug"))
	if slug == "" {
		h.writeJSON(w, http.StatusOK, CheckSlugResponse{Available: false, Slug: ""})
		return
	}

	taken, err := h.store.CategorySlugExists(r.Context(), slug, 0)
	if err != nil {
		h.logger.Error("failed to check slug", "error", err)
		h.writeError(w, http.StatusInternalServerError, "failed to check slug availability", "internal_error")
		return
	}

	h.writeJSON(w, http.StatusOK, CheckSlugResponse{Available: !taken, Slug: slug})
}

func (h *Handler) handleCreateCategory(w http.ResponseWriter, r *http.Request) {
	var req CategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid JSON", "validation_error")
		return
	}

	if field, msg := validation.ValidateCategoryFields(req.Name); field != "" {
		h.writeError(w, http.StatusBadRequest, msg, "validation_error")
		return
	}

	slug, ok := h.deriveSlug(w, &req)
	if !ok {
		return
	}

	// Advisory uniqueness: the unique constraint on categories.slug is
	// what actually guarantees it, so a lost race below maps to 409.
	slug, err := domain.ResolveUniqueSlug(r.Context(), slug, h.categorySlugExists(0))
	if err != nil {
		h.logger.Error("failed to resolve slug", "error", err)
		h.writeError(w, http.StatusInternalServerError, "failed to create category", "internal_error")
		return
	}

	now := time.Now()
	category := &domain.Category{
		Name:        req.Name,
		Slug:        slug,
		Description: req.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := h.store.CreateCategory(r.Context(), category); err != nil {
		if errors.Is(err, store.ErrDuplicateSlug) {
			h.writeError(w, http.StatusConflict, "slug already exists", "slug_taken")
			return
		}
		h.logger.Error("failed to create category", "error", err)
		h.writeError(w, http.StatusInternalServerError, "failed to create category", "internal_error")
		return
	}

	h.writeJSON(w, http.StatusCreated, categoryToResponse(category))
}

func (h *Handler) handleUpdateCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := h.urlID(w, r)
	if !ok {
		return
	}

	var req CategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid JSON", "validation_error")
		return
	}

	if field, msg := validation.ValidateCategoryFields(req.Name); field != "" {
		h.writeError(w, http.StatusBadRequest, msg, "validation_error")
		return
	}

	slug, ok := h.deriveSlug(w, &req)
	if !ok {
		return
	}

	category, err := h.store.GetCategory(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			h.writeError(w, http.StatusNotFound, "category not found", "category_not_found")
			return
		}
		h.logger.Error("failed to get category", "error", err)
		h.writeError(w, http.StatusInternalServerError, "failed to update category", "internal_error")
		return
	}

	// No auto-suffixing on update: a collision with another category is
	// reported so the caller can pick a different slug.
	taken, err := h.store.CategorySlugExists(r.Context(), slug, id)
	if err != nil {
		h.logger.Error("failed to check slug", "error", err)
		h.writeError(w, http.StatusInternalServerError, "failed to update category", "internal_error")
		return
	}
	if taken {
		h.writeError(w, http.StatusConflict, "slug '"+slug+"' already exists, choose a different slug", "slug_taken")
		return
	}

	category.Name = req.Name
	category.Slug = slug
	category.Description = req.Description
	category.UpdatedAt = time.Now()

	if err := h.store.UpdateCategory(r.Context(), category); err != nil {
		if errors.Is(err, store.ErrDuplicateSlug) {
			h.writeError(w, http.StatusConflict, "slug already exists", "slug_taken")
			return
		}
		if errors.Is(err, store.ErrNotFound) {
			h.writeError(w, http.StatusNotFound, "category not found", "category_not_found")
			return
		}
		h.logger.Error("failed to update category", "error", err)
		h.writeError(w, http.StatusInternalServerError, "failed to update category", "internal_error")
		return
	}

	h.writeJSON(w, http.StatusOK, categoryToResponse(category))
}

func (h *Handler) handleDeleteCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := h.urlID(w, r)
	if !ok {
		return
	}

	if err := h.store.DeleteCategory(r.Context(), id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			h.writeError(w, http.StatusNotFound, "category not found", "category_not_found")
			return
		}
		h.logger.Error("failed to delete category", "error", err)
		h.writeError(w, http.StatusInternalServerError, "failed to delete category", "internal_error")
		return
	}

	h.writeJSON(w, http.StatusOK, DeleteResponse{Message: "category deleted successfully", ID: id})
}

// =============================================================================
// Helpers
// =============================================================================

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error("failed to encode JSON", "error", err)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, status int, message, code string) {
	h.writeJSON(w, status, ErrorResponse{
		Error: message,
		Code:  code,
	})
}

// urlID parses the {id} route parameter, writing a 400 on failure.
func (h *Handler) urlID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		h.writeError(w, http.StatusBadRequest, "id must be a positive integer", "validation_error")
		return 0, false
	}
	return id, true
}

// listOptions reads limit/offset query parameters.
func (h *Handler) listOptions(r *http.Request) store.ListOptions {
	opts := store.DefaultListOptions()

	if limit := r.URL.Query().Get("limit"); limit != "" {
		if l, err := strconv.Atoi(limit); err == nil {
			opts.Limit = l
		}
	}
	if offset := r.URL.Query().Get("offset"); offset != "" {
		if o, err := strconv.Atoi(offset); err == nil {
			opts.Offset = o
		}
	}

	return opts.Normalize()
}

// deriveSlug produces the normalized slug for a category request: the
// supplied slug if any, otherwise the name. Writes a 400 when nothing
// sluggable remains.
func (h *Handler) deriveSlug(w http.ResponseWriter, req *CategoryRequest) (string, bool) {
	base := req.Slug
	if base == "" {
		base = req.Name
	}
	slug := domain.Slugify(base)
	if slug == "" {
		h.writeError(w, http.StatusBadRequest, "name must contain at least one letter or digit", "validation_error")
		return "", false
	}
	return slug, true
}

// categorySlugExists adapts the store lookup to the resolver capability.
func (h *Handler) categorySlugExists(excludeID int64) domain.SlugExistsFunc {
	return func(ctx context.Context, slug string) (bool, error) {
		return h.store.CategorySlugExists(ctx, slug, excludeID)
	}
}

func userToResponse(u *domain.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Bio:       u.Bio,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func postToResponse(p *domain.Post) PostResponse {
	return PostResponse{
		ID:              p.ID,
		Title:           p.Title,
		Content:         p.Content,
		Excerpt:         p.Excerpt,
		MetaDescription: p.MetaDescription,
		MetaKeywords:    p.MetaKeywords,
		Published:       p.Published,
		Author: AuthorResponse{
			ID:    p.Author.ID,
			Name:  p.Author.Name,
			Email: p.Author.Email,
		},
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

func categoryToResponse(c *domain.Category) CategoryResponse {
	return CategoryResponse{
		ID:          c.ID,
		Name:        c.Name,
		Slug:        c.Slug,
		Description: c.Description,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

package validation

import "strings"

// =============================================================================
// User Validation Functions
// =============================================================================

// ValidateCreateUserFields validates required fields for user registration.
// Returns the field name and error message if validation fails, empty
// strings otherwise.
func ValidateCreateUserFields(name, email, password string) (field, message string) {
	if name == "" {
		return "name", "name is required"
	}
	if email == "" {
		return "email", "email is required"
	}
	if !strings.Contains(email, "@") {
		return "email", "email is not a valid address"
	}
	if password == "" {
		return "password", "password is required"
	}
	return "", ""
}

// ValidateUpdateUserFields validates required fields for a user update.
// Password is deliberately absent: it is not updatable through this
// surface.
func ValidateUpdateUserFields(name, email string) (field, message string) {
	if name == "" {
		return "name", "name is required"
	}
	if email == "" {
		return "email", "email is required"
	}
	if !strings.Contains(email, "@") {
		return "email", "email is not a valid address"
	}
	return "", ""
}

// =============================================================================
// Post Validation Functions
// =============================================================================

// ValidateCreatePostFields validates required fields for post creation.
func ValidateCreatePostFields(title, content string, authorID int64) (field, message string) {
	if title == "" {
		return "title", "title is required"
	}
	if content == "" {
		return "content", "content is required"
	}
	if authorID <= 0 {
		return "author_id", "author_id is required"
	}
	return "", ""
}

// ValidateUpdatePostFields validates required fields for a post update.
func ValidateUpdatePostFields(title, content string) (field, message string) {
	if title == "" {
		return "title", "title is required"
	}
	if content == "" {
		return "content", "content is required"
	}
	return "", ""
}

// =============================================================================
// Category Validation Functions
// =============================================================================

// ValidateCategoryFields validates required fields for category creation
// and update.
func ValidateCategoryFields(name string) (field, message string) {
	if name == "" {
		return "name", "name is required"
	}
	return "", ""
}

// Package validation provides pure validation functions for API handlers.
//
// All functions are pure (no I/O, no side effects). Handlers run them
// before touching storage so that a malformed request never reaches the
// database:
//
//	if field, msg := validation.ValidateCreateUserFields(name, email, password); field != "" {
//	    // Return 400 Bad Request with msg
//	}
package validation

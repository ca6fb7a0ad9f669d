package domain

import (
	"context"
	"errors"
	"strconv"
)

// =============================================================================
// Slug Generation
// =============================================================================

// Slugify converts a display name to a URL-safe slug.
//
// The transformation rules are:
//   - Lowercase letters (a-z) and digits (0-9) are kept as-is
//   - Uppercase letters (A-Z) are converted to lowercase
//   - Any run of other characters (spaces, punctuation, symbols) collapses
//     into a single hyphen
//   - Leading and trailing hyphens are stripped
//
// This is a pure function with no side effects. Input that contains no
// alphanumeric characters at all maps to the empty string.
//
// Example:
//
//	Slugify("Hello World!")         // returns "hello-world"
//	Slugify("  multiple   spaces ") // returns "multiple-spaces"
//	Slugify("Tech & Gadgets")       // returns "tech-gadgets"
func Slugify(name string) string {
	slug := make([]byte, 0, len(name))
	pendingHyphen := false
	for _, r := range name {
		switch {
		case (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9'):
			if pendingHyphen && len(slug) > 0 {
				slug = append(slug, '-')
			}
			pendingHyphen = false
			slug = append(slug, byte(r))
		case r >= 'A' && r <= 'Z':
			if pendingHyphen && len(slug) > 0 {
				slug = append(slug, '-')
			}
			pendingHyphen = false
			slug = append(slug, byte(r+32)) // convert to lowercase
		default:
			// Separators and symbols collapse into one hyphen, emitted
			// only when more content follows.
			pendingHyphen = true
		}
	}
	return string(slug)
}

// =============================================================================
// Slug Uniqueness Resolution
// =============================================================================

// maxSlugAttempts bounds the suffix search. The source of this behavior
// looped without limit; an explicit bound turns a pathological exists
// capability into an error instead of a stalled request.
const maxSlugAttempts = 1000

// ErrSlugExhausted is returned when no free slug variant is found within
// maxSlugAttempts.
var ErrSlugExhausted = errors.New("no free slug variant found")

// SlugExistsFunc answers whether a slug is already taken. Implementations
// typically query storage, excluding the record being updated when
// applicable.
type SlugExistsFunc func(ctx context.Context, slug string) (bool, error)

// ResolveUniqueSlug returns candidate unchanged if it is free, otherwise
// the first free variant among candidate-1, candidate-2, ...
//
// The result is advisory: two concurrent requests can both see a slug as
// free. The authoritative guard is the storage-level unique constraint,
// and callers must treat a constraint violation on the subsequent insert
// as a conflict, not a fault.
func ResolveUniqueSlug(ctx context.Context, candidate string, exists SlugExistsFunc) (string, error) {
	taken, err := exists(ctx, candidate)
	if err != nil {
		return "", err
	}
	if !taken {
		return candidate, nil
	}

	for counter := 1; counter <= maxSlugAttempts; counter++ {
		variant := candidate + "-" + strconv.Itoa(counter)
		taken, err := exists(ctx, variant)
		if err != nil {
			return "", err
		}
		if !taken {
			return variant, nil
		}
	}

	return "", ErrSlugExhausted
}

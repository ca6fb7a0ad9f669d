// Package domain contains the core entity types and validation logic.
// This is part of the Functional Core - all functions are pure with no I/O.
package domain

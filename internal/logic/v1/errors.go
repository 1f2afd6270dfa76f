// Package v1 provides authentication business logic for API version 1.
//
// Error Handling:
// This package defines sentinel errors that represent the authentication
// failure taxonomy. Every operation surfaces exactly one of these kinds
// rather than a raw driver or library error; they should be wrapped with
// context using fmt.Errorf("%w") when returned.
//
// Error Checking (in handlers):
//
//	switch {
//	case errors.Is(err, logicv1.ErrUserExists):
//	    c.JSON(http.StatusConflict, ...)
//	case errors.Is(err, logicv1.ErrUserNotFound):
//	    c.JSON(http.StatusNotFound, ...)
//	default:
//	    c.JSON(http.StatusInternalServerError, ...)
//	}
package v1

import "errors"

// Sentinel errors for authentication operations.
// The transport layer owns the mapping to HTTP statuses; nothing in this
// package formats an HTTP response.
var (
	// ErrUserExists indicates the username is already registered.
	// HTTP Status: 409 Conflict
	ErrUserExists = errors.New("user already exists")

	// ErrUserNotFound indicates no identity matches the given username or id.
	// HTTP Status: 404 Not Found
	ErrUserNotFound = errors.New("user not found")

	// ErrInvalidCredentials indicates the password does not match the stored
	// hash.
	// HTTP Status: 401 Unauthorized
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrInvalidToken indicates the session token is malformed, carries a bad
	// signature, or has expired. The three cases are deliberately collapsed:
	// the client-side remedy is to re-authenticate either way.
	// HTTP Status: 401 Unauthorized
	ErrInvalidToken = errors.New("invalid token")

	// ErrMissingToken indicates the request carried no bearer token.
	// HTTP Status: 401 Unauthorized
	ErrMissingToken = errors.New("missing token")
)

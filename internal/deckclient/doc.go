// Package deckclient is the HTTP client for the deck service.
//
// Every call takes a context and opens one client span. Transport failures,
// non-2xx answers (ErrStatus) and payloads missing required card fields
// (types.ErrMissingField) are returned as wrapped errors; the caller decides
// whether they reach the user.
package deckclient

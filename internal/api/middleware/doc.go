// Package middleware contains the HTTP middleware composed in front of the
// API handlers: request tracing, request logging and the ownership guard
// that resolves the path token to its user.
package middleware

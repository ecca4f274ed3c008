// Package shared holds the HTTP plumbing used by both the handlers and the
// middleware: JSON responses, request decoding and validation, and the
// request context keys.
package shared

// Package auth issues and validates the opaque access tokens that identify
// task-list owners. A token is 128 random bits rendered as 32 lowercase hex
// characters; its uniqueness is enforced by the user store.
package auth

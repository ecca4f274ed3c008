// Package service contains the task-list use cases. It orchestrates domain
// objects and the store interfaces (defined in internal/store) to fulfil each
// API operation.
//
// Every service method takes the caller's access token and resolves the owning
// user itself, inside the same transaction as the work it guards. Store errors
// are translated into the sentinel errors in errors.go, which the API layer
// maps to HTTP status codes:
//
//   - ErrOwnerNotFound: the token does not belong to any user (403)
//   - ErrTaskNotFound: no such task under this owner (404)
//   - ErrInvalidInput: the request content is unusable (400)
//
// Anything else is an unexpected failure, wrapped in TaskServiceError or
// UserServiceError, and any partial writes have been rolled back.
package service

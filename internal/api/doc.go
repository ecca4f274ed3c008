// Package api handles incoming HTTP requests, request validation and
// response formatting. It adapts HTTP to the task and user services and is
// the single place where service errors become status codes.
//
// Every failure is answered with {"result": false}; error details only ever
// reach the (redacted) logs.
package api

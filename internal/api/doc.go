// Package api contains the HTTP handlers for the portfolio API.
//
// Handlers decode and validate requests, call into the stores and
// services, and translate internal errors to sanitized HTTP responses
// through MapErrorToStatusCode and GetSafeErrorMessage. Authentication
// and authorization run in the middleware subpackage before a handler
// is reached.
package api

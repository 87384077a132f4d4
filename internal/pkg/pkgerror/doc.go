// Package pkgerror defines shared error types and sentinel errors used across
// the application.
//
// Handlers return *Error values; the router maps their Code to an HTTP status.
// Lower layers keep their own sentinels and are translated at the usecase
// boundary.
package pkgerror

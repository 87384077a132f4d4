// Package pkgroutine contains helpers for running goroutines safely.
//
// The Manager type limits concurrency without blocking the caller, collects a
// bounded number of returned errors, and turns panics into errors so that
// background jobs never crash the process.
package pkgroutine

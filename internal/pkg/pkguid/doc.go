// Package pkguid provides helpers for generating unique identifiers.
//
// UUIDs identify requests and events; Snowflake IDs identify jobs because they
// sort by creation time.
package pkguid

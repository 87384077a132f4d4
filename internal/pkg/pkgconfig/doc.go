// Package pkgconfig provides a small abstraction for reading configuration values.
//
// Business code depends on the Config interface so it stays easy to test and
// does not care where values come from. The Viper implementation layers, from
// lowest to highest priority, registered defaults, an optional config file, and
// environment variables (GOBRC_ prefix, dots replaced by underscores).
package pkgconfig

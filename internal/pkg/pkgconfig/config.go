package pkgconfig

import "io"

// Config reads typed configuration values by dotted key.
type Config interface {
	io.Closer

	GetInt(key string) int64
	GetBool(key string) bool
	GetString(key string) string
}

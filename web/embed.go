// Package web holds the server-rendered templates and static assets.
// In release mode they are compiled into the binary via EmbeddedFS; in debug
// mode the app reads the same directory tree from disk for hot reload.
package web

import "embed"

//go:embed templates static
var EmbeddedFS embed.FS

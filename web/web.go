// Package web holds the landing page assets compiled into the binary.
package web

import "embed"

//go:embed static
var Static embed.FS

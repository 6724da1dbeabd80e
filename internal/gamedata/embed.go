// Package gamedata provides the embedded color themes and utilities for
// loading them.
package gamedata

import "embed"

// dataFS holds the theme definitions compiled into the binary.
//
//go:embed themes.json
var dataFS embed.FS

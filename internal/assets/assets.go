// Package assets holds the resource bundle compiled into the binary.
package assets

import "embed"

// Bundle is the default resource bundle. It ships login.json.
//
//go:embed *.json
var Bundle embed.FS

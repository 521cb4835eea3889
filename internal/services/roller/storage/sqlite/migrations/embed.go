// Package migrations contains embedded SQL migrations for the roll history store.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS

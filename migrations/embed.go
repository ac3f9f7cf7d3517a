package migrations

import "embed"

// FS holds the ordered schema migrations.
//
//go:embed *.sql
var FS embed.FS

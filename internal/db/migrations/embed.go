// Package migrations embeds the schema migrations for the knowledge base.
package migrations

import "embed"

// FS holds the embedded migration files, applied at server startup.
//
//go:embed *.sql
var FS embed.FS

// Package migrations embeds the consentd schema.
package migrations

import "embed"

// FS contains the Postgres migrations, applied in version order at startup.
//
//go:embed *.sql
var FS embed.FS

// Dir is the directory within FS where migrations live.
const Dir = "."

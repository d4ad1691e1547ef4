// Package db embeds the SQL migrations so a deployed binary carries its own
// schema.
package db

import "embed"

// Migrations holds the SQL migration files.
//
//go:embed migrations
var Migrations embed.FS

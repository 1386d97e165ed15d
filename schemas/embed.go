// Package schemas embeds the database migration files so reviewctl can
// run them without a copy of the repository on disk.
package schemas

import "embed"

//go:embed migrations/*.sql
var Migrations embed.FS

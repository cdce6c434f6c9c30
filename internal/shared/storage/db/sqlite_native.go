//go:build !cgo_sqlite

package db

import _ "modernc.org/sqlite"

const sqliteDriver = "sqlite"

// Package testutil provides an in-memory SQLite store mirroring the Postgres schema.
package testutil

import (
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"

	"github.com/oksasatya/orgauth-service/internal/infrastructure/postgres"
)

var schema = []string{
	"PRAGMA foreign_keys = ON;",
	`CREATE TABLE users (
    user_id       TEXT NOT NULL PRIMARY KEY,
    first_name    TEXT NOT NULL CHECK (first_name <> ''),
    last_name     TEXT NOT NULL,
    email         TEXT NOT NULL UNIQUE,
    password_hash TEXT NOT NULL,
    phone         TEXT,
    created_at    TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
    updated_at    TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);`,
	`CREATE TABLE organisations (
    org_id       TEXT NOT NULL PRIMARY KEY,
    name         TEXT NOT NULL CHECK (name <> ''),
    description  TEXT,
    org_owner_id TEXT NOT NULL REFERENCES users (user_id),
    created_at   TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
    updated_at   TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);`,
	`CREATE TABLE memberships (
    user_id    TEXT NOT NULL REFERENCES users (user_id) ON DELETE CASCADE,
    org_id     TEXT NOT NULL REFERENCES organisations (org_id) ON DELETE CASCADE,
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
    PRIMARY KEY (user_id, org_id)
);`,
}

// NewBunDB opens a fresh in-memory database with the application schema.
func NewBunDB(t *testing.T) *bun.DB {
	t.Helper()

	sqldb, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	// one connection so every query sees the same in-memory database
	sqldb.SetMaxOpenConns(1)

	db := bun.NewDB(sqldb, sqlitedialect.New())
	for _, stmt := range schema {
		_, err := db.Exec(stmt)
		require.NoError(t, err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

// NewStore returns a repository manager over a fresh in-memory database.
func NewStore(t *testing.T) *postgres.Store {
	t.Helper()
	return postgres.NewStore(NewBunDB(t))
}

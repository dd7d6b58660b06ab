package repository

import (
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupTestDB creates an in-memory SQLite database with the schema laid out
// by hand for SQLite compatibility (no gen_random_uuid, TEXT uuids). The
// unique like indexes are part of the toggle protocol, so they are kept.
func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
		TranslateError:                           true,
	})
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}

	db.Exec(`CREATE TABLE users (
		id TEXT PRIMARY KEY,
		created_at DATETIME NOT NULL,
		updated_at DATETIME NOT NULL,
		deleted_at DATETIME,
		email TEXT NOT NULL UNIQUE,
		username TEXT NOT NULL UNIQUE,
		name TEXT NOT NULL,
		image TEXT NOT NULL DEFAULT '',
		password TEXT NOT NULL
	)`)

	db.Exec(`CREATE TABLE posts (
		id TEXT PRIMARY KEY,
		created_at DATETIME NOT NULL,
		updated_at DATETIME NOT NULL,
		deleted_at DATETIME,
		user_id TEXT NOT NULL,
		content TEXT NOT NULL,
		images TEXT
	)`)

	db.Exec(`CREATE TABLE comments (
		id TEXT PRIMARY KEY,
		created_at DATETIME NOT NULL,
		updated_at DATETIME NOT NULL,
		deleted_at DATETIME,
		user_id TEXT NOT NULL,
		post_id TEXT NOT NULL,
		parent_comment_id TEXT,
		content TEXT NOT NULL
	)`)

	db.Exec(`CREATE TABLE post_likes (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		post_id TEXT NOT NULL,
		created_at DATETIME NOT NULL,
		UNIQUE(user_id, post_id)
	)`)

	db.Exec(`CREATE TABLE comment_likes (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		comment_id TEXT NOT NULL,
		post_id TEXT NOT NULL,
		created_at DATETIME NOT NULL,
		UNIQUE(user_id, comment_id)
	)`)

	return db
}

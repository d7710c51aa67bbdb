package store

import (
	"context"

	"github.com/gogf/gf/v2/database/gdb"
	"github.com/gogf/gf/v2/errors/gerror"
)

// SchemaStatements SQLite 建表语句，可重复执行。
var SchemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS user (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		username TEXT NOT NULL UNIQUE,
		role TEXT NOT NULL,
		full_name TEXT NOT NULL DEFAULT '',
		created_at TEXT
	)`,
	`CREATE TABLE IF NOT EXISTS audio_file (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		filename TEXT NOT NULL,
		original_path TEXT NOT NULL,
		processed_dir TEXT,
		status TEXT NOT NULL,
		segment_count INTEGER NOT NULL DEFAULT 0,
		duration REAL NOT NULL DEFAULT 0,
		size INTEGER NOT NULL DEFAULT 0,
		uploaded_by INTEGER,
		error_message TEXT,
		created_at TEXT,
		updated_at TEXT
	)`,
	`CREATE TABLE IF NOT EXISTS audio_segment (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		audio_file_id INTEGER NOT NULL REFERENCES audio_file(id),
		segment_path TEXT NOT NULL,
		start_time REAL NOT NULL,
		end_time REAL NOT NULL,
		duration REAL NOT NULL,
		status TEXT NOT NULL,
		assigned_to INTEGER,
		transcribed_by INTEGER,
		reviewed_by INTEGER,
		created_at TEXT,
		updated_at TEXT
	)`,
	`CREATE INDEX IF NOT EXISTS idx_audio_segment_status ON audio_segment(status)`,
	`CREATE INDEX IF NOT EXISTS idx_audio_segment_file ON audio_segment(audio_file_id)`,
	`CREATE TABLE IF NOT EXISTS transcription (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		segment_id INTEGER NOT NULL UNIQUE REFERENCES audio_segment(id),
		text TEXT NOT NULL,
		notes TEXT,
		status TEXT NOT NULL,
		rating INTEGER,
		review_notes TEXT,
		created_by INTEGER NOT NULL,
		reviewed_by INTEGER,
		created_at TEXT,
		updated_at TEXT
	)`,
	`CREATE TABLE IF NOT EXISTS segment_transition (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		segment_id INTEGER NOT NULL,
		from_status TEXT NOT NULL,
		to_status TEXT NOT NULL,
		action TEXT NOT NULL,
		actor_id INTEGER NOT NULL,
		created_at TEXT
	)`,
}

// Migrate 在 db 上执行建表语句
func Migrate(ctx context.Context, db gdb.DB) error {
	for _, stmt := range SchemaStatements {
		if _, err := db.Exec(ctx, stmt); err != nil {
			return gerror.Wrap(err, "apply schema")
		}
	}
	return nil
}

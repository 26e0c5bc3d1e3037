package mediastore

import (
	"context"
	"database/sql"
)

const currentSchemaVersion = 1

func initSchema(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER PRIMARY KEY
		);

		CREATE TABLE IF NOT EXISTS albums (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			album TEXT NOT NULL,
			bucket TEXT NOT NULL,
			UNIQUE(album, bucket)
		);

		CREATE TABLE IF NOT EXISTS audio (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			path TEXT NOT NULL UNIQUE,
			mtime INTEGER NOT NULL,
			title TEXT,
			display_name TEXT NOT NULL,
			album TEXT,
			album_id INTEGER REFERENCES albums(id),
			artist TEXT,
			album_artist TEXT,
			year INTEGER NOT NULL DEFAULT 0,
			track INTEGER,
			duration INTEGER,
			is_music INTEGER NOT NULL DEFAULT 1
		);

		CREATE INDEX IF NOT EXISTS idx_audio_is_music ON audio(is_music);

		CREATE TABLE IF NOT EXISTS genres (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT UNIQUE
		);

		CREATE TABLE IF NOT EXISTS genre_members (
			genre_id INTEGER NOT NULL REFERENCES genres(id),
			audio_id INTEGER NOT NULL,
			PRIMARY KEY (genre_id, audio_id)
		);

		CREATE INDEX IF NOT EXISTS idx_genre_members_audio ON genre_members(audio_id);
	`)
	if err != nil {
		return err
	}

	_, err = db.ExecContext(ctx, `
		INSERT OR IGNORE INTO schema_version (version) VALUES (?)
	`, currentSchemaVersion)
	return err
}

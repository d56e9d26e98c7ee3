package storage

import (
	"database/sql"
	"fmt"
)

// Schema version tracking
const currentSchemaVersion = 1

// initializeSchema creates all tables for a new database
func (db *DB) initializeSchema() error {
	return db.WithTx(func(tx *sql.Tx) error {
		if err := createSchemaVersionTable(tx); err != nil {
			return err
		}
		if err := createIdeasTable(tx); err != nil {
			return err
		}
		if err := createCategoriesTable(tx); err != nil {
			return err
		}
		if err := createTagTables(tx); err != nil {
			return err
		}
		if err := setSchemaVersion(tx, currentSchemaVersion); err != nil {
			return err
		}

		db.logger.Info("database schema initialized", "version", currentSchemaVersion)
		return nil
	})
}

// runMigrations runs any pending schema migrations
func (db *DB) runMigrations() error {
	version, err := db.getSchemaVersion()
	if err != nil {
		return err
	}

	if version == currentSchemaVersion {
		db.logger.Debug("database schema is up to date", "version", version)
		return nil
	}

	if version == 0 {
		// Database file exists but carries no schema yet.
		return db.initializeSchema()
	}

	db.logger.Info("running database migrations",
		"from_version", version, "to_version", currentSchemaVersion)

	// Migration functions are added here as the schema evolves.
	return nil
}

// getSchemaVersion gets the current schema version
func (db *DB) getSchemaVersion() (int, error) {
	var tableName string
	err := db.QueryRow(`
		SELECT name FROM sqlite_master
		WHERE type='table' AND name='schema_version'
	`).Scan(&tableName)

	if err == sql.ErrNoRows {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}

	var version int
	err = db.QueryRow("SELECT version FROM schema_version LIMIT 1").Scan(&version)
	if err == sql.ErrNoRows {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}

	return version, nil
}

// setSchemaVersion sets the schema version
func setSchemaVersion(tx *sql.Tx, version int) error {
	if _, err := tx.Exec("DELETE FROM schema_version"); err != nil {
		return err
	}
	_, err := tx.Exec("INSERT INTO schema_version (version) VALUES (?)", version)
	return err
}

func createSchemaVersionTable(tx *sql.Tx) error {
	_, err := tx.Exec(`
		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER NOT NULL
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create schema_version table: %w", err)
	}
	return nil
}

func createIdeasTable(tx *sql.Tx) error {
	_, err := tx.Exec(`
		CREATE TABLE IF NOT EXISTS ideas (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			title TEXT NOT NULL DEFAULT '',
			content TEXT,
			color TEXT NOT NULL DEFAULT '#95A5A6',
			is_pinned INTEGER NOT NULL DEFAULT 0,
			is_favorite INTEGER NOT NULL DEFAULT 0,
			is_locked INTEGER NOT NULL DEFAULT 0,
			rating INTEGER NOT NULL DEFAULT 0,
			created_at TEXT NOT NULL,
			updated_at TEXT NOT NULL,
			category_id INTEGER,
			is_deleted INTEGER DEFAULT 0,
			item_type TEXT NOT NULL DEFAULT 'text',
			data_blob BLOB,
			content_hash TEXT
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create ideas table: %w", err)
	}

	indexes := []string{
		"CREATE INDEX IF NOT EXISTS idx_ideas_category ON ideas(category_id)",
		"CREATE INDEX IF NOT EXISTS idx_ideas_deleted ON ideas(is_deleted)",
		"CREATE INDEX IF NOT EXISTS idx_ideas_updated ON ideas(updated_at)",
		"CREATE INDEX IF NOT EXISTS idx_ideas_hash ON ideas(content_hash)",
	}
	for _, idx := range indexes {
		if _, err := tx.Exec(idx); err != nil {
			return fmt.Errorf("failed to create index: %w", err)
		}
	}

	return nil
}

func createCategoriesTable(tx *sql.Tx) error {
	_, err := tx.Exec(`
		CREATE TABLE IF NOT EXISTS categories (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL,
			parent_id INTEGER,
			color TEXT NOT NULL DEFAULT '#95A5A6',
			sort_order INTEGER NOT NULL DEFAULT 0,
			preset_tags TEXT NOT NULL DEFAULT ''
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create categories table: %w", err)
	}

	if _, err := tx.Exec("CREATE INDEX IF NOT EXISTS idx_categories_parent ON categories(parent_id)"); err != nil {
		return fmt.Errorf("failed to create index: %w", err)
	}

	return nil
}

func createTagTables(tx *sql.Tx) error {
	_, err := tx.Exec(`
		CREATE TABLE IF NOT EXISTS tags (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL UNIQUE
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create tags table: %w", err)
	}

	_, err = tx.Exec(`
		CREATE TABLE IF NOT EXISTS idea_tags (
			idea_id INTEGER NOT NULL,
			tag_id INTEGER NOT NULL,
			PRIMARY KEY (idea_id, tag_id)
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create idea_tags table: %w", err)
	}

	if _, err := tx.Exec("CREATE INDEX IF NOT EXISTS idx_idea_tags_tag ON idea_tags(tag_id)"); err != nil {
		return fmt.Errorf("failed to create index: %w", err)
	}

	return nil
}

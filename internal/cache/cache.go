package cache

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/matheuskafuri/capalinks/internal/links"
	_ "modernc.org/sqlite"
)

// Cache keeps a local history of builds and the links they published.
type Cache struct {
	readDB  *sql.DB
	writeDB *sql.DB
}

func Open(dbPath string) (*Cache, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("creating cache dir: %w", err)
	}

	writeDB, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening write db: %w", err)
	}
	writeDB.SetMaxOpenConns(1)

	c := &Cache{writeDB: writeDB}
	if err := c.init(); err != nil {
		c.Close()
		return nil, err
	}

	// The read handle is opened after the schema exists so mode=ro never
	// sees a missing file.
	readDB, err := sql.Open("sqlite", dbPath+"?mode=ro")
	if err != nil {
		c.Close()
		return nil, fmt.Errorf("opening read db: %w", err)
	}
	c.readDB = readDB
	return c, nil
}

func (c *Cache) init() error {
	_, err := c.writeDB.Exec(`
		CREATE TABLE IF NOT EXISTS runs (
			id           TEXT PRIMARY KEY,
			database_id  TEXT NOT NULL,
			output       TEXT NOT NULL,
			count        INTEGER NOT NULL,
			generated_at DATETIME NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_runs_generated ON runs(generated_at DESC);

		CREATE TABLE IF NOT EXISTS links (
			id          TEXT PRIMARY KEY,
			title       TEXT NOT NULL,
			url         TEXT NOT NULL DEFAULT '',
			host        TEXT NOT NULL DEFAULT '',
			tags        TEXT NOT NULL DEFAULT '',
			last_run_id TEXT NOT NULL,
			first_seen  DATETIME NOT NULL,
			last_seen   DATETIME NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_links_last_seen ON links(last_seen DESC);

		CREATE TABLE IF NOT EXISTS meta (
			key   TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);
	`)
	if err != nil {
		return fmt.Errorf("initializing schema: %w", err)
	}
	return nil
}

func (c *Cache) Close() error {
	var errs []error
	if c.readDB != nil {
		errs = append(errs, c.readDB.Close())
	}
	if c.writeDB != nil {
		errs = append(errs, c.writeDB.Close())
	}
	for _, e := range errs {
		if e != nil {
			return e
		}
	}
	return nil
}

// RecordRun stores a finished build and upserts every link it published.
// An empty run.ID is replaced with a new UUID. The stored run is returned.
func (c *Cache) RecordRun(run Run, published []links.Link) (Run, error) {
	if run.ID == "" {
		run.ID = uuid.NewString()
	}

	tx, err := c.writeDB.Begin()
	if err != nil {
		return run, err
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		INSERT INTO runs (id, database_id, output, count, generated_at)
		VALUES (?, ?, ?, ?, ?)
	`, run.ID, run.DatabaseID, run.Output, run.Count, run.GeneratedAt.UTC())
	if err != nil {
		return run, fmt.Errorf("inserting run %s: %w", run.ID, err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO links (id, title, url, host, tags, last_run_id, first_seen, last_seen)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			title = excluded.title,
			url = excluded.url,
			host = excluded.host,
			tags = excluded.tags,
			last_run_id = excluded.last_run_id,
			last_seen = excluded.last_seen
	`)
	if err != nil {
		return run, err
	}
	defer stmt.Close()

	seen := run.GeneratedAt.UTC()
	for _, l := range published {
		_, err := stmt.Exec(l.ID, l.Title, l.URL, l.Host, strings.Join(l.Tags, ","), run.ID, seen, seen)
		if err != nil {
			return run, fmt.Errorf("upserting link %s: %w", l.ID, err)
		}
	}

	_, err = tx.Exec(`
		INSERT INTO meta (key, value) VALUES ('last_build', ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, seen.Format(time.RFC3339))
	if err != nil {
		return run, fmt.Errorf("updating last build: %w", err)
	}

	return run, tx.Commit()
}

// Runs returns the most recent runs, newest first.
func (c *Cache) Runs(limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := c.readDB.Query(`
		SELECT id, database_id, output, count, generated_at
		FROM runs ORDER BY generated_at DESC LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		if err := rows.Scan(&r.ID, &r.DatabaseID, &r.Output, &r.Count, &r.GeneratedAt); err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// Links returns every known link, most recently seen first.
func (c *Cache) Links() ([]StoredLink, error) {
	rows, err := c.readDB.Query(`
		SELECT id, title, url, host, tags, last_run_id, first_seen, last_seen
		FROM links ORDER BY last_seen DESC, id
	`)
	if err != nil {
		return nil, fmt.Errorf("querying links: %w", err)
	}
	defer rows.Close()

	var out []StoredLink
	for rows.Next() {
		var l StoredLink
		if err := rows.Scan(&l.ID, &l.Title, &l.URL, &l.Host, &l.Tags, &l.LastRunID, &l.FirstSeen, &l.LastSeen); err != nil {
			return nil, fmt.Errorf("scanning link: %w", err)
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

func (c *Cache) NeedsRefresh(interval time.Duration) bool {
	var value string
	err := c.readDB.QueryRow("SELECT value FROM meta WHERE key = 'last_build'").Scan(&value)
	if err != nil {
		return true
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return true
	}
	return time.Since(t) > interval
}

// Prune deletes runs older than olderThan and links no run has seen since.
// It returns the number of runs removed.
func (c *Cache) Prune(olderThan time.Duration) (int64, error) {
	cutoff := time.Now().Add(-olderThan).UTC()

	tx, err := c.writeDB.Begin()
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	res, err := tx.Exec("DELETE FROM runs WHERE generated_at < ?", cutoff)
	if err != nil {
		return 0, fmt.Errorf("pruning runs: %w", err)
	}
	if _, err := tx.Exec("DELETE FROM links WHERE last_seen < ?", cutoff); err != nil {
		return 0, fmt.Errorf("pruning links: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// Stats reports the number of runs and links and the database file size.
func (c *Cache) Stats(dbPath string) (runs, linkCount int, size int64, err error) {
	if err = c.readDB.QueryRow("SELECT COUNT(*) FROM runs").Scan(&runs); err != nil {
		return 0, 0, 0, fmt.Errorf("counting runs: %w", err)
	}
	if err = c.readDB.QueryRow("SELECT COUNT(*) FROM links").Scan(&linkCount); err != nil {
		return 0, 0, 0, fmt.Errorf("counting links: %w", err)
	}
	info, err := os.Stat(dbPath)
	if err != nil {
		return runs, linkCount, 0, fmt.Errorf("stat %s: %w", dbPath, err)
	}
	return runs, linkCount, info.Size(), nil
}

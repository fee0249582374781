package database

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/llms-txt/generator/internal/model"
)

// archiveFileName is the SQLite file created inside the archive directory.
const archiveFileName = "llmsgen.db"

// Archive provides SQLite-based storage for crawl run history.
//
// Design decision: We use a single database file for all sites rather
// than one file per site. History queries span sites, and a single file
// simplifies backup and cleanup.
type Archive struct {
	// db is the underlying SQL database connection.
	db *sql.DB

	// dbPath is the path to the SQLite database file.
	dbPath string
}

// Options configures Archive behavior.
type Options struct {
	// CreateIfNotExists creates the database file if it doesn't exist.
	CreateIfNotExists bool

	// EnableWAL enables Write-Ahead Logging for better concurrent performance.
	// This is recommended for most use cases.
	EnableWAL bool
}

// DefaultOptions returns the default archive options.
func DefaultOptions() Options {
	return Options{
		CreateIfNotExists: true,
		EnableWAL:         true,
	}
}

// Open opens or creates an Archive in the specified directory.
// If CreateIfNotExists is true, the directory and database file are created.
// If CreateIfNotExists is false and the database doesn't exist, an error is returned.
func Open(dbDir string, opts Options) (*Archive, error) {
	dbPath := filepath.Join(dbDir, archiveFileName)

	if !opts.CreateIfNotExists {
		if _, err := os.Stat(dbPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("archive not found at %s (use CreateIfNotExists option to create)", dbPath)
		} else if err != nil {
			return nil, fmt.Errorf("failed to check archive path: %w", err)
		}
	} else {
		if err := os.MkdirAll(dbDir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create archive directory: %w", err)
		}
	}

	// modernc.org/sqlite uses mode=rw to prevent creating new files and
	// mode=rwc to allow creation.
	var dsn string
	if opts.CreateIfNotExists {
		dsn = dbPath + "?mode=rwc"
	} else {
		dsn = dbPath + "?mode=rw"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open archive: %w", err)
	}

	// SQLite only supports one writer.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	a := &Archive{
		db:     db,
		dbPath: dbPath,
	}

	if opts.EnableWAL {
		if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	if err := a.createTables(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return a, nil
}

// Close closes the database connection.
func (a *Archive) Close() error {
	return a.db.Close()
}

// createTables creates the database schema if it doesn't exist.
func (a *Archive) createTables() error {
	schema := `
	-- Runs store one row per generation run
	CREATE TABLE IF NOT EXISTS runs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		site_host TEXT NOT NULL,
		base_url TEXT NOT NULL,
		started_at DATETIME NOT NULL,
		finished_at DATETIME NOT NULL,
		page_count INTEGER NOT NULL DEFAULT 0,
		failed_count INTEGER NOT NULL DEFAULT 0
	);

	CREATE INDEX IF NOT EXISTS idx_runs_host ON runs(site_host);
	CREATE INDEX IF NOT EXISTS idx_runs_started ON runs(started_at);

	-- Pages store one row per crawled page within a run
	CREATE TABLE IF NOT EXISTS pages (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id INTEGER NOT NULL REFERENCES runs(id),
		source_url TEXT NOT NULL,
		storage_key TEXT NOT NULL,
		title TEXT,
		description TEXT,
		category TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_pages_run ON pages(run_id);
	CREATE INDEX IF NOT EXISTS idx_pages_url ON pages(source_url);
	`

	_, err := a.db.ExecContext(context.Background(), schema)
	return err
}

// pageCategory returns the archived category label for a page.
func pageCategory(rec model.PageRecord) string {
	if rec.IsCore() {
		return "core"
	}
	return "optional"
}

// SaveRun archives a completed crawl result. The run row and its page
// rows are written in a single transaction so a partial run never
// appears in history.
func (a *Archive) SaveRun(ctx context.Context, result *model.CrawlResult) error {
	tx, err := a.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // Rollback after commit is a no-op

	res, err := tx.ExecContext(ctx, `
	INSERT INTO runs (site_host, base_url, started_at, finished_at, page_count, failed_count)
	VALUES (?, ?, ?, ?, ?, ?)
	`,
		result.SiteHost,
		result.BaseURL,
		result.StartedAt.UTC().Format(time.RFC3339),
		result.FinishedAt.UTC().Format(time.RFC3339),
		len(result.Records),
		len(result.Failed),
	)
	if err != nil {
		return fmt.Errorf("failed to insert run: %w", err)
	}

	runID, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get run id: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
	INSERT INTO pages (run_id, source_url, storage_key, title, description, category)
	VALUES (?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare page insert: %w", err)
	}
	defer stmt.Close() //nolint:errcheck // Close error on prepared statement is not actionable

	for _, rec := range result.Records {
		if _, err := stmt.ExecContext(ctx,
			runID,
			rec.SourceURL,
			rec.StorageKey,
			rec.Title,
			rec.Description,
			pageCategory(rec),
		); err != nil {
			return fmt.Errorf("failed to insert page: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit run: %w", err)
	}

	return nil
}

// RunSummary contains summary information about an archived run.
// This is used for displaying run history without loading page rows.
type RunSummary struct {
	// ID is the unique identifier of the run in the archive.
	ID int64

	// SiteHost is the crawled site's hostname.
	SiteHost string

	// BaseURL is the normalized base URL the run used for links.
	BaseURL string

	// StartedAt is when the crawl began.
	StartedAt time.Time

	// FinishedAt is when the crawl completed.
	FinishedAt time.Time

	// PageCount is the number of pages successfully converted.
	PageCount int

	// FailedCount is the number of pages that failed to fetch.
	FailedCount int
}

// ListRuns returns the most recent runs, newest first.
// A limit of 0 or less returns all runs.
func (a *Archive) ListRuns(ctx context.Context, limit int) ([]RunSummary, error) {
	query := `
	SELECT id, site_host, base_url, started_at, finished_at, page_count, failed_count
	FROM runs
	ORDER BY started_at DESC, id DESC
	`
	args := make([]interface{}, 0, 1)
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := a.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var results []RunSummary
	for rows.Next() {
		var run RunSummary
		var started, finished string

		if err := rows.Scan(
			&run.ID,
			&run.SiteHost,
			&run.BaseURL,
			&started,
			&finished,
			&run.PageCount,
			&run.FailedCount,
		); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}

		run.StartedAt = parseTimestamp(started)
		run.FinishedAt = parseTimestamp(finished)
		results = append(results, run)
	}

	return results, rows.Err()
}

// ArchivedPage represents a page row stored with a run.
type ArchivedPage struct {
	// SourceURL is the normalized URL the page was fetched from.
	SourceURL string

	// StorageKey is the markdown file name derived from the URL.
	StorageKey string

	// Title is the extracted page title.
	Title string

	// Description is the extracted meta description.
	Description string

	// Category is "core" or "optional".
	Category string
}

// ListRunPages returns the pages recorded for a run, in crawl order.
func (a *Archive) ListRunPages(ctx context.Context, runID int64) ([]ArchivedPage, error) {
	rows, err := a.db.QueryContext(ctx, `
	SELECT source_url, storage_key, title, description, category
	FROM pages
	WHERE run_id = ?
	ORDER BY id
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to list pages: %w", err)
	}
	defer rows.Close()

	var results []ArchivedPage
	for rows.Next() {
		var p ArchivedPage
		if err := rows.Scan(&p.SourceURL, &p.StorageKey, &p.Title, &p.Description, &p.Category); err != nil {
			return nil, fmt.Errorf("failed to scan page: %w", err)
		}
		results = append(results, p)
	}

	return results, rows.Err()
}

// timestampFormats contains the timestamp formats that SQLite may return.
// The order matters: more specific formats should come first.
var timestampFormats = []string{
	time.RFC3339,
	time.RFC3339Nano,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05.999",
}

// parseTimestamp attempts to parse a timestamp string using multiple formats.
// SQLite may return timestamps in different formats depending on configuration.
// If parsing fails with all formats, returns zero time.
func parseTimestamp(s string) time.Time {
	for _, format := range timestampFormats {
		if t, err := time.Parse(format, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

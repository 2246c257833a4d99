// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package catalog records split runs and their pages in a SQLite database so
// earlier output can be listed and searched.
package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/chart-splitter/pkg/types"
)

const defaultMaxResults = 50

// Run is one recorded split run.
type Run struct {
	ID         string    `json:"id" yaml:"id"`
	Source     string    `json:"source" yaml:"source"`
	SiteCode   string    `json:"site_code" yaml:"site_code"`
	OutputDir  string    `json:"output_dir" yaml:"output_dir"`
	PageCount  int       `json:"page_count" yaml:"page_count"`
	Exported   int       `json:"exported" yaml:"exported"`
	Failed     int       `json:"failed" yaml:"failed"`
	DryRun     bool      `json:"dry_run" yaml:"dry_run"`
	RecordedAt time.Time `json:"recorded_at" yaml:"recorded_at"`
}

// Page is one recorded page together with the run it belongs to.
type Page struct {
	RunID    string           `json:"run_id" yaml:"run_id"`
	SiteCode string           `json:"site_code" yaml:"site_code"`
	Page     int              `json:"page" yaml:"page"`
	Title    string           `json:"title" yaml:"title"`
	Category types.Category   `json:"category" yaml:"category"`
	Path     string           `json:"path" yaml:"path"`
	Status   types.PageStatus `json:"status" yaml:"status"`
	Error    string           `json:"error,omitempty" yaml:"error,omitempty"`
}

// QueryOptions filters recorded pages.
type QueryOptions struct {
	// Site filters by site code, case-insensitively.
	Site string

	// Category filters by classification tag.
	Category types.Category

	// Title matches pages whose title contains the string.
	Title string

	// Limit caps the result count. Zero uses the store default.
	Limit int
}

// Store manages the catalog database.
type Store struct {
	db         *sql.DB
	maxResults int
	now        func() time.Time
}

// NewStore opens or creates the catalog database at cfg.Path and creates the
// schema if it does not exist.
func NewStore(cfg types.CatalogConfig) (*Store, error) {
	if cfg.Path == "" {
		return nil, fmt.Errorf("catalog path is empty")
	}
	if dir := filepath.Dir(cfg.Path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating catalog directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", cfg.Path+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = defaultMaxResults
	}

	s := &Store{db: db, maxResults: maxResults, now: time.Now}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			seq INTEGER PRIMARY KEY AUTOINCREMENT,
			id TEXT NOT NULL UNIQUE,
			source TEXT NOT NULL,
			site_code TEXT NOT NULL,
			output_dir TEXT NOT NULL,
			page_count INTEGER NOT NULL,
			exported INTEGER NOT NULL,
			failed INTEGER NOT NULL,
			dry_run INTEGER NOT NULL,
			recorded_at TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS pages (
			run_id TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
			page INTEGER NOT NULL,
			title TEXT NOT NULL,
			category TEXT NOT NULL,
			path TEXT NOT NULL,
			status TEXT NOT NULL,
			error TEXT,
			PRIMARY KEY (run_id, page)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_site_code ON runs(site_code)`,
		`CREATE INDEX IF NOT EXISTS idx_pages_category ON pages(category)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Record stores the report as a new run with all of its pages and returns
// the run ID.
func (s *Store) Record(ctx context.Context, report types.RunReport) (string, error) {
	id := uuid.NewString()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO runs (id, source, site_code, output_dir, page_count, exported, failed, dry_run, recorded_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, report.Source, report.SiteCode, report.OutputDir, report.PageCount,
		report.Exported(), report.Failed(), report.DryRun,
		s.now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return "", fmt.Errorf("inserting run: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO pages (run_id, page, title, category, path, status, error)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return "", fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for _, p := range report.Pages {
		_, err := stmt.ExecContext(ctx,
			id, p.Page, p.Title, string(p.Category), p.Path, string(p.Status), p.Error)
		if err != nil {
			return "", fmt.Errorf("inserting page %d: %w", p.Page, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("committing run: %w", err)
	}
	return id, nil
}

// Runs lists recorded runs, newest first. A non-empty site limits the list
// to that site code.
func (s *Store) Runs(ctx context.Context, site string) ([]Run, error) {
	q := `SELECT id, source, site_code, output_dir, page_count, exported, failed, dry_run, recorded_at
		FROM runs`
	var args []any
	if site != "" {
		q += ` WHERE site_code = ?`
		args = append(args, strings.ToUpper(site))
	}
	q += ` ORDER BY seq DESC`

	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var (
			r        Run
			recorded string
		)
		if err := rows.Scan(&r.ID, &r.Source, &r.SiteCode, &r.OutputDir, &r.PageCount,
			&r.Exported, &r.Failed, &r.DryRun, &recorded); err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		r.RecordedAt, err = time.Parse(time.RFC3339Nano, recorded)
		if err != nil {
			return nil, fmt.Errorf("parsing timestamp of run %s: %w", r.ID, err)
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// Pages returns recorded pages matching opts, newest run first and in page
// order within a run.
func (s *Store) Pages(ctx context.Context, opts QueryOptions) ([]Page, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = s.maxResults
	}

	var (
		qb   strings.Builder
		args []any
	)
	qb.WriteString(
		`SELECT p.run_id, r.site_code, p.page, p.title, p.category, p.path, p.status, COALESCE(p.error, '')
		FROM pages p
		JOIN runs r ON r.id = p.run_id
		WHERE 1=1`)

	if opts.Site != "" {
		qb.WriteString(` AND r.site_code = ?`)
		args = append(args, strings.ToUpper(opts.Site))
	}
	if opts.Category != "" {
		qb.WriteString(` AND p.category = ?`)
		args = append(args, string(opts.Category))
	}
	if opts.Title != "" {
		qb.WriteString(` AND p.title LIKE '%' || ? || '%'`)
		args = append(args, opts.Title)
	}
	qb.WriteString(` ORDER BY r.seq DESC, p.page LIMIT ?`)
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, qb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("querying pages: %w", err)
	}
	defer rows.Close()

	var pages []Page
	for rows.Next() {
		var (
			p        Page
			category string
			status   string
		)
		if err := rows.Scan(&p.RunID, &p.SiteCode, &p.Page, &p.Title, &category,
			&p.Path, &status, &p.Error); err != nil {
			return nil, fmt.Errorf("scanning page: %w", err)
		}
		p.Category = types.Category(category)
		p.Status = types.PageStatus(status)
		pages = append(pages, p)
	}
	return pages, rows.Err()
}

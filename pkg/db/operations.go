package db

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/dtnitsch/local-rag/models"
)

var ErrRunNotFound = errors.New("run not found")

// UpsertDocument inserts or updates the document stored at localPath and
// returns its document_id. An empty hash or zero size keeps the stored value.
func (db *DB) UpsertDocument(localPath, sourceURL, sha256 string, sizeBytes int64) (int64, error) {
	_, err := db.Exec(`
		INSERT INTO documents (local_path, source_url, sha256, size_bytes)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(local_path) DO UPDATE SET
			source_url = excluded.source_url,
			sha256 = COALESCE(NULLIF(excluded.sha256, ''), documents.sha256),
			size_bytes = CASE WHEN excluded.size_bytes > 0 THEN excluded.size_bytes ELSE documents.size_bytes END,
			updated_at = CURRENT_TIMESTAMP
	`, localPath, sourceURL, sha256, sizeBytes)
	if err != nil {
		return 0, fmt.Errorf("failed to upsert document: %w", err)
	}

	var documentID int64
	if err := db.QueryRow("SELECT document_id FROM documents WHERE local_path = ?", localPath).Scan(&documentID); err != nil {
		return 0, fmt.Errorf("failed to get document ID: %w", err)
	}
	return documentID, nil
}

// RecordDownload records an EnsurePresent outcome for a document.
func (db *DB) RecordDownload(documentID int64, result models.DownloadResult) error {
	_, err := db.Exec(`
		INSERT INTO downloads (document_id, status, status_code)
		VALUES (?, ?, ?)
	`, documentID, string(result.Status), result.StatusCode)
	if err != nil {
		return fmt.Errorf("failed to record download: %w", err)
	}
	return nil
}

// CountDownloads returns how many outcomes were recorded for a document with
// the given status. An empty status counts all of them.
func (db *DB) CountDownloads(documentID int64, status models.DownloadStatus) (int, error) {
	var count int
	err := db.QueryRow(`
		SELECT COUNT(*) FROM downloads
		WHERE document_id = ? AND (? = '' OR status = ?)
	`, documentID, string(status), string(status)).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count downloads: %w", err)
	}
	return count, nil
}

// SaveRun stores a run and the records it returned, in order, in a single
// transaction. It returns the new run_id.
func (db *DB) SaveRun(documentID int64, run models.Run, pages []models.PageRecord) (int64, error) {
	tx, err := db.Begin()
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }() // no-op after commit

	result, err := tx.Exec(`
		INSERT INTO runs (experiment_name, document_id, page_offset, mode, requested, page_count)
		VALUES (?, ?, ?, ?, ?, ?)
	`, run.ExperimentName, documentID, run.PageOffset, string(run.Mode), run.Requested, len(pages))
	if err != nil {
		return 0, fmt.Errorf("failed to insert run: %w", err)
	}

	runID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get run ID: %w", err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO run_pages (run_id, position, page_number, character_count, word_count, sentence_count, token_count, text)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare page insert: %w", err)
	}
	defer stmt.Close()

	for i, p := range pages {
		if _, err := stmt.Exec(runID, i, p.PageNumber, p.CharacterCount, p.WordCount, p.SentenceCount, p.TokenCount, p.Text); err != nil {
			return 0, fmt.Errorf("failed to insert page %d: %w", p.PageNumber, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit run: %w", err)
	}
	return runID, nil
}

const runColumns = `
	r.run_id, r.experiment_name, d.local_path, d.source_url,
	r.page_offset, r.mode, r.requested, r.page_count, r.created_at
`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (models.Run, error) {
	var (
		run  models.Run
		mode string
	)
	err := row.Scan(&run.RunID, &run.ExperimentName, &run.LocalPath, &run.SourceURL,
		&run.PageOffset, &mode, &run.Requested, &run.PageCount, &run.CreatedAt)
	run.Mode = models.RunMode(mode)
	return run, err
}

// ListRuns returns the most recent runs first. limit <= 0 returns all runs.
func (db *DB) ListRuns(limit int) ([]models.Run, error) {
	query := `SELECT ` + runColumns + `
		FROM runs r JOIN documents d ON d.document_id = r.document_id
		ORDER BY r.run_id DESC`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var runs []models.Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// GetRun returns a single run or ErrRunNotFound.
func (db *DB) GetRun(runID int64) (*models.Run, error) {
	row := db.QueryRow(`SELECT `+runColumns+`
		FROM runs r JOIN documents d ON d.document_id = r.document_id
		WHERE r.run_id = ?`, runID)

	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("run %d: %w", runID, ErrRunNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get run: %w", err)
	}
	return &run, nil
}

// GetRunPages returns the records stored for a run, in the order the run
// returned them.
func (db *DB) GetRunPages(runID int64) ([]models.PageRecord, error) {
	rows, err := db.Query(`
		SELECT page_number, character_count, word_count, sentence_count, token_count, text
		FROM run_pages
		WHERE run_id = ?
		ORDER BY position
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to get run pages: %w", err)
	}
	defer rows.Close()

	pages := []models.PageRecord{}
	for rows.Next() {
		var p models.PageRecord
		if err := rows.Scan(&p.PageNumber, &p.CharacterCount, &p.WordCount, &p.SentenceCount, &p.TokenCount, &p.Text); err != nil {
			return nil, fmt.Errorf("failed to scan page: %w", err)
		}
		pages = append(pages, p)
	}
	return pages, rows.Err()
}

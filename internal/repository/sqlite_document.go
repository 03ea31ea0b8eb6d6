package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/brp/internal/db"
)

// SQLiteDocumentRepo implements DocumentRepo on the documents table.
type SQLiteDocumentRepo struct {
	db db.DBTX
}

// NewSQLiteDocumentRepo creates a new SQLiteDocumentRepo.
func NewSQLiteDocumentRepo(conn db.DBTX) *SQLiteDocumentRepo {
	return &SQLiteDocumentRepo{db: conn}
}

func (r *SQLiteDocumentRepo) Get(ctx context.Context, key string) (*Document, error) {
	query := `SELECT key, body, revision, updated_at FROM documents WHERE key = ?`
	var (
		doc       Document
		body      string
		updatedAt string
	)
	err := r.db.QueryRowContext(ctx, query, key).Scan(&doc.Key, &body, &doc.Revision, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("document %q: %w", key, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("reading document %q: %w", key, err)
	}
	doc.Body = []byte(body)
	doc.UpdatedAt = parseStoredTime(updatedAt)
	return &doc, nil
}

// Put writes body under key, replacing any previous value and bumping its revision.
func (r *SQLiteDocumentRepo) Put(ctx context.Context, key string, body []byte) error {
	query := `INSERT INTO documents (key, body, updated_at, revision)
		VALUES (?, ?, ?, 1)
		ON CONFLICT(key) DO UPDATE SET
			body = excluded.body,
			updated_at = excluded.updated_at,
			revision = documents.revision + 1`
	if _, err := r.db.ExecContext(ctx, query, key, string(body), nowUTC()); err != nil {
		return fmt.Errorf("writing document %q: %w", key, err)
	}
	return nil
}

func (r *SQLiteDocumentRepo) Delete(ctx context.Context, key string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM documents WHERE key = ?`, key)
	if err != nil {
		return fmt.Errorf("deleting document %q: %w", key, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting document %q: %w", key, err)
	}
	if n == 0 {
		return fmt.Errorf("document %q: %w", key, ErrNotFound)
	}
	return nil
}

func (r *SQLiteDocumentRepo) Keys(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT key FROM documents ORDER BY key`)
	if err != nil {
		return nil, fmt.Errorf("listing document keys: %w", err)
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, fmt.Errorf("scanning document key: %w", err)
		}
		keys = append(keys, k)
	}
	return keys, rows.Err()
}

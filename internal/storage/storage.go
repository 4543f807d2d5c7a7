package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/cespare/xxhash/v2"
	_ "github.com/mattn/go-sqlite3"
)

var ErrNotFound = errors.New("no such expression")

type Status string

const (
	StatusOK    Status = "ok"
	StatusError Status = "error"
)

// Record is one evaluated expression. Result is set only for StatusOK,
// Reason only for StatusError.
type Record struct {
	ID         int64     `json:"id"`
	Expression string    `json:"expression"`
	Postfix    string    `json:"postfix"`
	Status     Status    `json:"status"`
	Result     *float64  `json:"result,omitempty"`
	Reason     string    `json:"reason,omitempty"`
	Count      int64     `json:"count"`
	CreatedAt  time.Time `json:"created_at"`
}

type Store struct {
	db *sql.DB
}

func Hash(expr string) int64 {
	return int64(xxhash.Sum64String(expr))
}

func Open(ctx context.Context, path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// sqlite allows a single writer
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	if err := createTables(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func createTables(ctx context.Context, db *sql.DB) error {
	const (
		expressionsTable = `
		CREATE TABLE IF NOT EXISTS expressions(
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			hash INTEGER NOT NULL,
			expression TEXT NOT NULL,
			postfixExpression TEXT NOT NULL DEFAULT '',
			status TEXT NOT NULL,
			result REAL,
			reason TEXT NOT NULL DEFAULT '',
			count INTEGER NOT NULL DEFAULT 1,
			createdAt INTEGER NOT NULL
		);`

		hashIndex = `
		CREATE INDEX IF NOT EXISTS expressions_hash ON expressions(hash);`
	)

	if _, err := db.ExecContext(ctx, expressionsTable); err != nil {
		return err
	}
	if _, err := db.ExecContext(ctx, hashIndex); err != nil {
		return err
	}
	return nil
}

// Save stores rec and returns its id. An expression seen before keeps its
// first row; only its count grows.
func (s *Store) Save(ctx context.Context, rec Record) (int64, error) {
	hash := Hash(rec.Expression)

	if id, err := s.checkExpressionExists(ctx, hash, rec.Expression); err == nil {
		q := `UPDATE expressions SET count = count + 1 WHERE id = $1`
		if _, err := s.db.ExecContext(ctx, q, id); err != nil {
			return 0, fmt.Errorf("failed to update expression %d: %w", id, err)
		}
		return id, nil
	} else if !errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("failed to look up expression: %w", err)
	}

	createdAt := rec.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}
	var result sql.NullFloat64
	if rec.Result != nil {
		result = sql.NullFloat64{Float64: *rec.Result, Valid: true}
	}

	q := `
	INSERT INTO expressions (hash, expression, postfixExpression, status, result, reason, createdAt)
	VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	res, err := s.db.ExecContext(ctx, q, hash, rec.Expression, rec.Postfix, rec.Status, result, rec.Reason, createdAt.UnixMilli())
	if err != nil {
		return 0, fmt.Errorf("failed to insert expression: %w", err)
	}
	return res.LastInsertId()
}

func (s *Store) checkExpressionExists(ctx context.Context, hash int64, expr string) (int64, error) {
	q := `SELECT id FROM expressions WHERE hash = $1 AND expression = $2`
	var id int64
	err := s.db.QueryRowContext(ctx, q, hash, expr).Scan(&id)
	return id, err
}

func (s *Store) Get(ctx context.Context, id int64) (Record, error) {
	q := `
	SELECT id, expression, postfixExpression, status, result, reason, count, createdAt
	FROM expressions WHERE id = $1`
	rec, err := scanRecord(s.db.QueryRowContext(ctx, q, id))
	if errors.Is(err, sql.ErrNoRows) {
		return Record{}, ErrNotFound
	}
	if err != nil {
		return Record{}, fmt.Errorf("failed to read expression %d: %w", id, err)
	}
	return rec, nil
}

// List returns up to limit records, newest first.
func (s *Store) List(ctx context.Context, limit int) ([]Record, error) {
	if limit <= 0 {
		return []Record{}, nil
	}
	q := `
	SELECT id, expression, postfixExpression, status, result, reason, count, createdAt
	FROM expressions ORDER BY id DESC LIMIT $1`
	rows, err := s.db.QueryContext(ctx, q, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list expressions: %w", err)
	}
	defer rows.Close()

	res := make([]Record, 0, limit)
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan expression: %w", err)
		}
		res = append(res, rec)
	}
	return res, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(row scanner) (Record, error) {
	var (
		rec       Record
		result    sql.NullFloat64
		createdAt int64
	)
	err := row.Scan(&rec.ID, &rec.Expression, &rec.Postfix, &rec.Status, &result, &rec.Reason, &rec.Count, &createdAt)
	if err != nil {
		return Record{}, err
	}
	if result.Valid {
		v := result.Float64
		rec.Result = &v
	}
	rec.CreatedAt = time.UnixMilli(createdAt)
	return rec, nil
}

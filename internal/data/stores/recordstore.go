// Package stores implements record persistence over the SQLite catalog.
package stores

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hay-kot/pagepick/internal/core/page"
	"github.com/hay-kot/pagepick/internal/data/db"
)

// RecordStore pages records out of the catalog in insertion order.
type RecordStore struct {
	db *db.DB
}

var _ page.Fetcher = (*RecordStore)(nil)

// NewRecordStore creates a new SQLite-backed record store.
func NewRecordStore(db *db.DB) *RecordStore {
	return &RecordStore{db: db}
}

// Fetch returns one page of records and the catalog size. Both are read in
// one transaction so Total always describes the same snapshot as Records.
func (s *RecordStore) Fetch(ctx context.Context, req page.Request) (page.Result, error) {
	if err := req.Validate(); err != nil {
		return page.Result{}, err
	}

	var res page.Result
	err := s.db.WithTx(ctx, func(tx *sql.Tx) error {
		if err := tx.QueryRowContext(ctx, "SELECT COUNT(*) FROM records").Scan(&res.Total); err != nil {
			return fmt.Errorf("failed to count records: %w", err)
		}

		records, err := listRecords(ctx, tx, req)
		if err != nil {
			return err
		}
		res.Records = records
		return nil
	})
	if err != nil {
		return page.Result{}, err
	}

	return res, nil
}

func listRecords(ctx context.Context, tx *sql.Tx, req page.Request) ([]page.Record, error) {
	rows, err := tx.QueryContext(ctx,
		"SELECT id, title, fields FROM records ORDER BY seq LIMIT ? OFFSET ?",
		req.Size, req.Offset(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list records: %w", err)
	}
	defer func() { _ = rows.Close() }()

	records := make([]page.Record, 0, req.Size)
	for rows.Next() {
		var (
			rec    page.Record
			fields sql.NullString
		)
		if err := rows.Scan(&rec.ID, &rec.Title, &fields); err != nil {
			return nil, fmt.Errorf("failed to scan record: %w", err)
		}

		if fields.Valid && fields.String != "" {
			if err := json.Unmarshal([]byte(fields.String), &rec.Fields); err != nil {
				return nil, fmt.Errorf("failed to unmarshal fields of %q: %w", rec.ID, err)
			}
		}

		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read records: %w", err)
	}

	return records, nil
}

// Count returns the number of records in the catalog.
func (s *RecordStore) Count(ctx context.Context) (int, error) {
	var total int
	if err := s.db.Conn().QueryRowContext(ctx, "SELECT COUNT(*) FROM records").Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to count records: %w", err)
	}
	return total, nil
}

// Insert upserts records in a single transaction. Existing ids keep their
// position and get the new title and fields. It returns how many rows were
// written.
func (s *RecordStore) Insert(ctx context.Context, records []page.Record) (int, error) {
	if len(records) == 0 {
		return 0, nil
	}

	now := time.Now().UnixNano()
	written := 0

	err := s.db.WithTx(ctx, func(tx *sql.Tx) error {
		stmt, err := tx.PrepareContext(ctx, `
			INSERT INTO records (id, title, fields, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?)
			ON CONFLICT(id) DO UPDATE SET
				title = excluded.title,
				fields = excluded.fields,
				updated_at = excluded.updated_at
		`)
		if err != nil {
			return fmt.Errorf("failed to prepare insert: %w", err)
		}
		defer func() { _ = stmt.Close() }()

		for _, rec := range records {
			if rec.ID == "" {
				return fmt.Errorf("record %d: id is required", written+1)
			}

			var fields sql.NullString
			if len(rec.Fields) > 0 {
				data, err := json.Marshal(rec.Fields)
				if err != nil {
					return fmt.Errorf("failed to marshal fields of %q: %w", rec.ID, err)
				}
				fields = sql.NullString{String: string(data), Valid: true}
			}

			if _, err := stmt.ExecContext(ctx, rec.ID, rec.Title, fields, now, now); err != nil {
				return fmt.Errorf("failed to insert %q: %w", rec.ID, err)
			}
			written++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	return written, nil
}

// Truncate removes every record.
func (s *RecordStore) Truncate(ctx context.Context) error {
	if _, err := s.db.Conn().ExecContext(ctx, "DELETE FROM records"); err != nil {
		return fmt.Errorf("failed to truncate records: %w", err)
	}
	return nil
}

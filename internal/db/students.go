package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"studentdash/internal/dataset"
)

// ListStudentRows returns every stored record in insertion order.
func (d *DB) ListStudentRows(ctx context.Context) ([]dataset.Row, error) {
	query := `
		SELECT activity, gpa, well_being, intensity_level
		FROM student_records
		ORDER BY id
	`

	rows, err := d.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query student records: %w", err)
	}
	defer rows.Close()

	var out []dataset.Row
	for rows.Next() {
		var r dataset.Row
		if err := rows.Scan(&r.Activity, &r.GPA, &r.WellBeing, &r.IntensityLevel); err != nil {
			return nil, fmt.Errorf("failed to scan student record: %w", err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if len(out) == 0 {
		return nil, ErrNoRecords
	}
	return out, nil
}

// CountStudentRecords returns the number of stored records.
func (d *DB) CountStudentRecords(ctx context.Context) (int64, error) {
	var n int64
	if err := d.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM student_records`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count student records: %w", err)
	}
	return n, nil
}

// ImportStudentRows bulk loads rows. With replace set, existing rows are
// removed in the same transaction.
func (d *DB) ImportStudentRows(ctx context.Context, rows []dataset.Row, replace bool) (int64, error) {
	tx, err := d.Pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to begin import: %w", err)
	}
	defer tx.Rollback(ctx)

	if replace {
		if _, err := tx.Exec(ctx, `DELETE FROM student_records`); err != nil {
			return 0, fmt.Errorf("failed to clear student records: %w", err)
		}
	}

	n, err := tx.CopyFrom(ctx,
		pgx.Identifier{"student_records"},
		[]string{"activity", "gpa", "well_being", "intensity_level"},
		pgx.CopyFromSlice(len(rows), func(i int) ([]any, error) {
			r := rows[i]
			return []any{r.Activity, r.GPA, r.WellBeing, r.IntensityLevel}, nil
		}),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to copy student records: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("failed to commit import: %w", err)
	}
	return n, nil
}

// LoadDataset reads every stored row into a prepared dataset.
func (d *DB) LoadDataset(ctx context.Context) (*dataset.Dataset, error) {
	rows, err := d.ListStudentRows(ctx)
	if err != nil {
		return nil, err
	}
	return dataset.FromRows(rows, "postgres:student_records"), nil
}

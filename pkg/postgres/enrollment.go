package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/openvol/shiftengine/pkg/core/model"
	"github.com/openvol/shiftengine/pkg/db"
)

// uniqueViolation is the PostgreSQL error code for a unique constraint breach
const uniqueViolation = "23505"

// FetchEnrollments retrieves every enrollment row whose date is in the given
// set, in a single batched query regardless of how many dates are asked for
func (d *DB) FetchEnrollments(ctx context.Context, dates []string) ([]model.EnrollmentRecord, error) {
	if len(dates) == 0 {
		return nil, nil
	}

	rows, err := d.pool.Query(ctx, `
		SELECT template_id, volunteer_id, date
		FROM enrollment
		WHERE date = ANY($1::date[])
	`, dates)
	if err != nil {
		return nil, fmt.Errorf("failed to query enrollments: %w", err)
	}
	defer rows.Close()

	var records []model.EnrollmentRecord
	for rows.Next() {
		var rec model.EnrollmentRecord
		var date time.Time
		if err := rows.Scan(&rec.TemplateID, &rec.VolunteerID, &date); err != nil {
			return nil, fmt.Errorf("failed to scan enrollment: %w", err)
		}
		rec.Date = date.Format("2006-01-02")
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating enrollments: %w", err)
	}

	return records, nil
}

// InsertEnrollment appends one enrollment row with the capacity check inside
// the same transaction as the insert. The template row is locked first, so
// two concurrent enrollments for the same occurrence serialize on it and the
// second one observes the first one's count; neither can exceed max capacity.
func (d *DB) InsertEnrollment(ctx context.Context, templateID, volunteerID, date string) error {
	tx, err := d.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var maxCapacity int
	err = tx.QueryRow(ctx, `
		SELECT max_capacity FROM shift_template WHERE id = $1 FOR UPDATE
	`, templateID).Scan(&maxCapacity)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return db.ErrTemplateNotFound
		}
		return fmt.Errorf("failed to lock shift template: %w", err)
	}

	var enrolled int
	err = tx.QueryRow(ctx, `
		SELECT COUNT(*) FROM enrollment WHERE template_id = $1 AND date = $2
	`, templateID, date).Scan(&enrolled)
	if err != nil {
		return fmt.Errorf("failed to count enrollments: %w", err)
	}

	if enrolled >= maxCapacity {
		return db.ErrShiftFull
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO enrollment (id, template_id, volunteer_id, date)
		VALUES ($1, $2, $3, $4)
	`, uuid.New().String(), templateID, volunteerID, date)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return db.ErrAlreadyEnrolled
		}
		return fmt.Errorf("failed to insert enrollment: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit enrollment: %w", err)
	}

	return nil
}

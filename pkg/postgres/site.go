package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/openvol/shiftengine/pkg/core/model"
	"github.com/openvol/shiftengine/pkg/db"
)

// foreignKeyViolation is the PostgreSQL error code for a broken reference
const foreignKeyViolation = "23503"

// CreateSite inserts a new site, generating an id if the caller left it empty
func (d *DB) CreateSite(ctx context.Context, site *model.Site) error {
	if site.ID == "" {
		site.ID = uuid.New().String()
	}

	var scopeID *string
	if site.ScopeID != "" {
		scopeID = &site.ScopeID
	}

	_, err := d.pool.Exec(ctx, `
		INSERT INTO site (id, name, address, lat, lng, scope_id, category)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, site.ID, site.Name, site.Address, site.Lat, site.Lng, scopeID, site.Category)
	if err != nil {
		return fmt.Errorf("failed to insert site: %w", err)
	}

	return nil
}

// CreateTemplate inserts a new shift template referencing an existing site
func (d *DB) CreateTemplate(ctx context.Context, tpl *model.ShiftTemplate) error {
	if tpl.ID == "" {
		tpl.ID = uuid.New().String()
	}

	var coordinatorID *string
	if tpl.Coordinator != nil {
		coordinatorID = &tpl.Coordinator.ID
	}

	_, err := d.pool.Exec(ctx, `
		INSERT INTO shift_template (id, weekday, start_time, end_time, max_capacity, site_id, coordinator_id, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, tpl.ID, int16(tpl.Weekday), tpl.StartTime, tpl.EndTime, tpl.MaxCapacity, tpl.Site.ID, coordinatorID, tpl.Notes)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == foreignKeyViolation {
			return db.ErrSiteNotFound
		}
		return fmt.Errorf("failed to insert shift template: %w", err)
	}

	return nil
}

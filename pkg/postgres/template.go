package postgres

import (
	"context"
	"fmt"

	"github.com/openvol/shiftengine/pkg/core/model"
)

// FetchTemplates retrieves shift templates with their site and coordinator
// embedded, in a single query. Templates on globally visible sites (NULL
// scope) are always included; an empty scopeID returns templates for all
// scopes.
func (d *DB) FetchTemplates(ctx context.Context, scopeID string) ([]model.ShiftTemplate, error) {
	query := `
		SELECT t.id, t.weekday, t.start_time, t.end_time, t.max_capacity, t.notes,
		       s.id, s.name, s.address, s.lat, s.lng, s.scope_id, s.category,
		       c.id, c.name, c.email
		FROM shift_template t
		JOIN site s ON s.id = t.site_id
		LEFT JOIN coordinator c ON c.id = t.coordinator_id
	`
	args := []any{}
	if scopeID != "" {
		query += ` WHERE s.scope_id IS NULL OR s.scope_id = $1`
		args = append(args, scopeID)
	}

	rows, err := d.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query shift templates: %w", err)
	}
	defer rows.Close()

	var templates []model.ShiftTemplate
	for rows.Next() {
		var t model.ShiftTemplate
		var weekday int16
		var siteScope *string
		var coordID, coordName, coordEmail *string
		if err := rows.Scan(
			&t.ID, &weekday, &t.StartTime, &t.EndTime, &t.MaxCapacity, &t.Notes,
			&t.Site.ID, &t.Site.Name, &t.Site.Address, &t.Site.Lat, &t.Site.Lng, &siteScope, &t.Site.Category,
			&coordID, &coordName, &coordEmail,
		); err != nil {
			return nil, fmt.Errorf("failed to scan shift template: %w", err)
		}
		t.Weekday = model.Weekday(weekday)
		if siteScope != nil {
			t.Site.ScopeID = *siteScope
		}
		if coordID != nil {
			t.Coordinator = &model.Coordinator{ID: *coordID}
			if coordName != nil {
				t.Coordinator.Name = *coordName
			}
			if coordEmail != nil {
				t.Coordinator.Email = *coordEmail
			}
		}
		templates = append(templates, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating shift templates: %w", err)
	}

	return templates, nil
}

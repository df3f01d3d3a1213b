package db

import (
	"context"

	"github.com/openvol/shiftengine/pkg/core/model"
)

// TemplateStore defines the read side of the template/site boundary
type TemplateStore interface {
	// FetchTemplates returns the shift templates visible to an
	// organizational scope, including templates on globally visible sites.
	// An empty scopeID returns templates for all scopes.
	FetchTemplates(ctx context.Context, scopeID string) ([]model.ShiftTemplate, error)
}

// EnrollmentStore defines enrollment reads and writes
type EnrollmentStore interface {
	// FetchEnrollments returns every enrollment row whose date is in the
	// given set, in one batched call
	FetchEnrollments(ctx context.Context, dates []string) ([]model.EnrollmentRecord, error)

	// InsertEnrollment appends one enrollment row. Capacity and uniqueness
	// are enforced atomically with the insert: ErrShiftFull and
	// ErrAlreadyEnrolled are returned instead of writing.
	InsertEnrollment(ctx context.Context, templateID, volunteerID, date string) error
}

// CreationStore defines the write side used by shift creation
type CreationStore interface {
	// CreateSite inserts a new site and fills in its generated ID
	CreateSite(ctx context.Context, site *model.Site) error

	// CreateTemplate inserts a new shift template referencing an existing site
	CreateTemplate(ctx context.Context, tpl *model.ShiftTemplate) error
}

// Database is the full store contract the engine runs against.
// The postgres package implements it.
type Database interface {
	TemplateStore
	EnrollmentStore
	CreationStore
}

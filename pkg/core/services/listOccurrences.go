package services

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/openvol/shiftengine/internal/config"
	"github.com/openvol/shiftengine/pkg/core/model"
	"github.com/openvol/shiftengine/pkg/core/schedule"
)

// ListStore defines the database operations needed to list occurrences
type ListStore interface {
	FetchTemplates(ctx context.Context, scopeID string) ([]model.ShiftTemplate, error)
	FetchEnrollments(ctx context.Context, dates []string) ([]model.EnrollmentRecord, error)
}

// ListResult is the outcome of one generation call
type ListResult struct {
	Occurrences []model.ShiftOccurrence

	// Degraded is true when the enrollment batch fetch failed and every
	// occurrence was generated with zero enrollments. Callers must not
	// trust an "available" state from a degraded listing.
	Degraded bool
}

// ListOccurrences materializes every shift occurrence visible to a scope
// within the rolling window around today.
//
// It performs exactly two batched reads regardless of window size: one for
// templates (with their sites and coordinators) and one for enrollments.
// A failed template fetch aborts; a failed enrollment fetch degrades to
// zero enrollments with a warning rather than losing the whole listing.
func ListOccurrences(
	ctx context.Context,
	store ListStore,
	cfg *config.Config,
	logger *zap.Logger,
	scopeID string,
	today time.Time,
) (*ListResult, error) {
	window := schedule.Window{PastDays: cfg.PastDays, FutureDays: cfg.FutureDays}

	logger.Info("Listing shift occurrences",
		zap.String("scope_id", scopeID),
		zap.String("today", today.Format("2006-01-02")),
		zap.Int("past_days", window.PastDays),
		zap.Int("future_days", window.FutureDays))

	logger.Debug("Fetching templates")
	templates, err := store.FetchTemplates(ctx, scopeID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch templates: %w", err)
	}
	logger.Debug("Found templates", zap.Int("count", len(templates)))

	dateKeys := window.DateKeys(today)

	degraded := false
	var idx schedule.EnrollmentIndex
	logger.Debug("Fetching enrollments", zap.Int("dates", len(dateKeys)))
	enrollments, err := store.FetchEnrollments(ctx, dateKeys)
	if err != nil {
		// Degrade instead of aborting: the listing stays useful, but every
		// state was computed from zero enrollments and may be wrong.
		logger.Warn("Enrollment fetch failed, generating occurrences with zero enrollments",
			zap.Error(err))
		degraded = true
		idx = schedule.EnrollmentIndex{}
	} else {
		logger.Debug("Found enrollments", zap.Int("count", len(enrollments)))
		idx = schedule.BuildEnrollmentIndex(enrollments)
	}

	closed, err := closureDates(cfg.ClosureRules, window, today)
	if err != nil {
		return nil, fmt.Errorf("failed to expand closure rules: %w", err)
	}

	occurrences := schedule.Generate(templates, idx, window, today, closed)

	logger.Info("Occurrences generated",
		zap.Int("count", len(occurrences)),
		zap.Bool("degraded", degraded))

	return &ListResult{Occurrences: occurrences, Degraded: degraded}, nil
}

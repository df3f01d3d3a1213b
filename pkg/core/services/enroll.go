package services

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/openvol/shiftengine/pkg/core/schedule"
	"github.com/openvol/shiftengine/pkg/db"
)

// EnrollStore defines the database operations needed to enroll a volunteer
type EnrollStore interface {
	InsertEnrollment(ctx context.Context, templateID, volunteerID, date string) error
}

// Enroll signs a volunteer up for one occurrence of a template.
//
// The capacity ceiling and the (template, volunteer, date) uniqueness are
// enforced by the store inside the same atomic operation as the insert, so
// concurrent signups for the same occurrence cannot exceed max capacity.
// db.ErrShiftFull and db.ErrAlreadyEnrolled are surfaced unwrapped for the
// caller to branch on.
func Enroll(ctx context.Context, store EnrollStore, logger *zap.Logger, templateID, volunteerID, date string) error {
	if templateID == "" {
		return fmt.Errorf("template id is required")
	}
	if volunteerID == "" {
		return fmt.Errorf("volunteer id is required")
	}
	if _, err := schedule.ParseDate(date); err != nil {
		return err
	}

	logger.Info("Enrolling volunteer",
		zap.String("template_id", templateID),
		zap.String("volunteer_id", volunteerID),
		zap.String("date", date))

	if err := store.InsertEnrollment(ctx, templateID, volunteerID, date); err != nil {
		switch {
		case errors.Is(err, db.ErrShiftFull):
			logger.Info("Enrollment rejected, shift full",
				zap.String("template_id", templateID),
				zap.String("date", date))
			return err
		case errors.Is(err, db.ErrAlreadyEnrolled):
			logger.Info("Enrollment rejected, duplicate",
				zap.String("template_id", templateID),
				zap.String("volunteer_id", volunteerID),
				zap.String("date", date))
			return err
		case errors.Is(err, db.ErrTemplateNotFound):
			return err
		default:
			return fmt.Errorf("failed to insert enrollment: %w", err)
		}
	}

	logger.Info("Volunteer enrolled",
		zap.String("template_id", templateID),
		zap.String("volunteer_id", volunteerID),
		zap.String("date", date))
	return nil
}

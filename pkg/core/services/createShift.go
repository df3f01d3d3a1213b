package services

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/openvol/shiftengine/pkg/core/model"
	"github.com/openvol/shiftengine/pkg/core/schedule"
)

// NewSiteFields are the fields needed to create a site alongside a shift
type NewSiteFields struct {
	Name     string `validate:"required"`
	Address  string
	Lat      *float64 `validate:"omitempty,latitude"`
	Lng      *float64 `validate:"omitempty,longitude"`
	Category string
}

// CreateShiftRequest describes a new recurring shift. Exactly one of SiteID
// (use an existing site) or NewSite (create one first) must be set.
type CreateShiftRequest struct {
	SiteID  string
	NewSite *NewSiteFields `validate:"omitempty"`

	// Date is any concrete date the shift should run on; only its weekday
	// is kept on the template
	Date string `validate:"required,datetime=2006-01-02"`

	StartTime     string `validate:"required,datetime=15:04"`
	EndTime       string `validate:"required,datetime=15:04"`
	MaxCapacity   int    `validate:"required,min=1"`
	CoordinatorID string
	Notes         string
}

// CreateStore defines the database operations needed to create a shift
type CreateStore interface {
	CreateSite(ctx context.Context, site *model.Site) error
	CreateTemplate(ctx context.Context, tpl *model.ShiftTemplate) error
}

var validate = validator.New()

// CreateShift creates a new shift template, creating its site first when the
// request carries new-site fields instead of an existing site id.
//
// The weekday key is derived from the request date with the same normalizer
// the occurrence generator uses, so the new template is visible in the next
// listing that includes a matching date.
//
// The two writes are not transactional: a failed site creation aborts before
// any template exists, but a failed template creation after a successful
// site creation leaves an orphan site behind. That inconsistency is logged
// and accepted; the site is reusable by a later creation attempt.
func CreateShift(
	ctx context.Context,
	store CreateStore,
	logger *zap.Logger,
	req CreateShiftRequest,
	scopeID string,
) (*model.ShiftTemplate, error) {
	if err := validate.Struct(req); err != nil {
		return nil, fmt.Errorf("invalid create shift request: %w", err)
	}
	if (req.SiteID == "") == (req.NewSite == nil) {
		return nil, fmt.Errorf("exactly one of site id or new site fields must be set")
	}

	logger.Info("Creating shift",
		zap.String("scope_id", scopeID),
		zap.String("date", req.Date),
		zap.Bool("new_site", req.NewSite != nil))

	siteID := req.SiteID
	var site model.Site
	if req.NewSite != nil {
		site = model.Site{
			ID:       uuid.New().String(),
			Name:     req.NewSite.Name,
			Address:  req.NewSite.Address,
			Lat:      req.NewSite.Lat,
			Lng:      req.NewSite.Lng,
			ScopeID:  scopeID,
			Category: req.NewSite.Category,
		}

		logger.Debug("Creating site", zap.String("site_id", site.ID), zap.String("name", site.Name))
		if err := store.CreateSite(ctx, &site); err != nil {
			// No template may ever reference a site that was not created
			return nil, fmt.Errorf("failed to create site: %w", err)
		}
		siteID = site.ID
		logger.Info("Site created", zap.String("site_id", siteID))
	} else {
		site = model.Site{ID: siteID}
	}

	date, err := schedule.ParseDate(req.Date)
	if err != nil {
		return nil, err
	}
	weekday := schedule.WeekdayOf(date)

	tpl := &model.ShiftTemplate{
		ID:          uuid.New().String(),
		Weekday:     weekday,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		MaxCapacity: req.MaxCapacity,
		Site:        site,
		Notes:       req.Notes,
	}
	if req.CoordinatorID != "" {
		tpl.Coordinator = &model.Coordinator{ID: req.CoordinatorID}
	}

	logger.Debug("Creating template",
		zap.String("template_id", tpl.ID),
		zap.String("weekday", weekday.Key()),
		zap.Int("max_capacity", tpl.MaxCapacity))

	if err := store.CreateTemplate(ctx, tpl); err != nil {
		if req.NewSite != nil {
			// Orphan site: created above but now referenced by nothing.
			// There is no compensating delete against the external store;
			// the integrity violation is logged for operators instead.
			logger.Error("Template creation failed after site creation, orphan site left behind",
				zap.String("site_id", siteID),
				zap.Error(err))
		}
		return nil, fmt.Errorf("failed to create template: %w", err)
	}

	logger.Info("Shift created",
		zap.String("template_id", tpl.ID),
		zap.String("site_id", siteID),
		zap.String("weekday", weekday.Key()))

	return tpl, nil
}

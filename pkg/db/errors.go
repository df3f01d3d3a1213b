package db

import "errors"

var (
	// ErrTemplateNotFound is returned when a referenced shift template does not exist
	ErrTemplateNotFound = errors.New("shift template not found")

	// ErrShiftFull is returned when an enrollment would exceed the template's
	// max capacity for that date. The check is enforced inside the same
	// atomic store operation as the insert, so two concurrent enrollments
	// cannot both slip past it.
	ErrShiftFull = errors.New("shift is at max capacity for this date")

	// ErrAlreadyEnrolled is returned when the (template, volunteer, date)
	// triple already exists
	ErrAlreadyEnrolled = errors.New("volunteer already enrolled for this shift date")

	// ErrSiteNotFound is returned when a referenced site does not exist
	ErrSiteNotFound = errors.New("site not found")
)

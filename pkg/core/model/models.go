package model

// CapacityState classifies how much room an occurrence has left
type CapacityState string

const (
	StateAvailable CapacityState = "available"
	StateLimited   CapacityState = "limited"
	StateFull      CapacityState = "full"
)

// Weekday is the canonical weekday bucket, aligned with time.Weekday
// (Sunday = 0 .. Saturday = 6). Templates store this numeric form; the
// human-language weekday keys templates were historically authored in are
// resolved to it by schedule.ParseWeekdayKey.
type Weekday int

const (
	Sunday Weekday = iota
	Monday
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
)

var weekdayKeys = [7]string{"sunday", "monday", "tuesday", "wednesday", "thursday", "friday", "saturday"}

// Key returns the canonical lower-case English weekday key
func (w Weekday) Key() string {
	if !w.IsValid() {
		return "invalid"
	}
	return weekdayKeys[w]
}

func (w Weekday) String() string {
	return w.Key()
}

func (w Weekday) IsValid() bool {
	return w >= Sunday && w <= Saturday
}

// Site represents a location where shifts take place.
// An empty ScopeID means the site is globally visible to all scopes.
type Site struct {
	ID       string
	Name     string
	Address  string
	Lat      *float64
	Lng      *float64
	ScopeID  string
	Category string
}

// IsGlobal reports whether the site is visible to every organizational scope
func (s Site) IsGlobal() bool {
	return s.ScopeID == ""
}

// Coordinator is the volunteer coordinator assigned to a template
type Coordinator struct {
	ID    string
	Name  string
	Email string
}

// ShiftTemplate is a recurring weekly definition of a work slot.
// Weekday and time fields are immutable after creation.
type ShiftTemplate struct {
	ID          string
	Weekday     Weekday
	StartTime   string // "15:04"
	EndTime     string // "15:04"
	MaxCapacity int
	Site        Site
	Coordinator *Coordinator // nil if unassigned
	Notes       string
}

// EnrollmentRecord links one volunteer to one template on one concrete date.
// The (TemplateID, VolunteerID, Date) triple is unique.
type EnrollmentRecord struct {
	TemplateID  string
	VolunteerID string
	Date        string // "2006-01-02"
}

// ShiftOccurrence is one dated materialization of a template. It is always
// derived, never persisted: its lifetime is a single generation call.
type ShiftOccurrence struct {
	Template ShiftTemplate
	Date     string // "2006-01-02"
	Enrolled []string
	State    CapacityState
}

package schedule

import "github.com/openvol/shiftengine/pkg/core/model"

// EnrollmentIndex is a nested lookup over enrollment rows:
// date -> template id -> enrolled volunteer ids.
// It is built once per generation call from a single batched fetch.
type EnrollmentIndex map[string]map[string][]string

// BuildEnrollmentIndex reshapes a flat batch of enrollment rows into the
// nested lookup the generator joins against
func BuildEnrollmentIndex(records []model.EnrollmentRecord) EnrollmentIndex {
	idx := make(EnrollmentIndex)
	for _, rec := range records {
		byTemplate, ok := idx[rec.Date]
		if !ok {
			byTemplate = make(map[string][]string)
			idx[rec.Date] = byTemplate
		}
		byTemplate[rec.TemplateID] = append(byTemplate[rec.TemplateID], rec.VolunteerID)
	}
	return idx
}

// Enrolled returns the volunteer ids enrolled for a template on a date.
// Absence is just an empty list, not an error.
func (idx EnrollmentIndex) Enrolled(date, templateID string) []string {
	byTemplate, ok := idx[date]
	if !ok {
		return nil
	}
	return byTemplate[templateID]
}

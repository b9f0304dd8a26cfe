package mvc

import (
	"maps"
	"slices"
)

// ModelState collects validation errors per form field.
type ModelState struct {
	errs map[string][]string
}

// AddModelError records msg against field.
func (s *ModelState) AddModelError(field, msg string) {
	if s.errs == nil {
		s.errs = make(map[string][]string)
	}
	s.errs[field] = append(s.errs[field], msg)
}

// IsValid reports whether no errors were recorded.
func (s *ModelState) IsValid() bool {
	return s == nil || len(s.errs) == 0
}

// Errors returns the errors for field.
func (s *ModelState) Errors(field string) []string {
	if s == nil {
		return nil
	}
	return s.errs[field]
}

// Fields returns the fields with errors in sorted order.
func (s *ModelState) Fields() []string {
	if s == nil {
		return nil
	}
	return slices.Sorted(maps.Keys(s.errs))
}

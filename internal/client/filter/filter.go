// Package filter implements the client-side search/filter engine for the
// browse and saved pages. Apply is a pure function over an in-memory
// profile list: same inputs always produce the same output, so it can be
// unit tested without network or UI state.
package filter

import (
	"strings"

	"github.com/acemeet/aceletters/internal/client/models"
)

// Set is a multi-select categorical filter. An empty set matches
// everything ("any"); a non-empty set requires the profile's field value
// to be a member. Matching is exact and case-sensitive on the stored
// code, not the display label.
type Set map[string]struct{}

func NewSet(values ...string) Set {
	s := make(Set, len(values))
	for _, v := range values {
		s[v] = struct{}{}
	}
	return s
}

func (s Set) Has(v string) bool {
	_, ok := s[v]
	return ok
}

// matches reports whether the value passes the filter: empty set means
// "any".
func (s Set) matches(v string) bool {
	if len(s) == 0 {
		return true
	}
	return s.Has(v)
}

// Spec is the transient, client-only set of search/filter criteria.
// The zero value matches every profile except the viewer's own.
type Spec struct {
	// Query is a free-text, case-insensitive substring search across a
	// fixed set of profile fields.
	Query string

	Cities       Set
	Orientations Set
	LookingFor   Set
	Genders      Set

	// Age bounds, each optional. A bound only excludes profiles whose
	// age is a valid number on the wrong side of it; a missing or
	// unparsable age is never excluded by an age bound.
	AgeMin *int
	AgeMax *int
}

// IsZero reports whether the spec has no active criteria.
func (s Spec) IsZero() bool {
	return strings.TrimSpace(s.Query) == "" &&
		len(s.Cities) == 0 && len(s.Orientations) == 0 &&
		len(s.LookingFor) == 0 && len(s.Genders) == 0 &&
		s.AgeMin == nil && s.AgeMax == nil
}

// searchBlob concatenates the lower-cased searchable fields with single
// spaces. Missing fields contribute an empty string.
func searchBlob(p models.Profile) string {
	fields := []string{
		p.Username,
		p.Name,
		p.City,
		p.Orientation,
		p.LookingFor,
		p.Gender,
		p.Info,
		p.Contact,
	}
	return strings.ToLower(strings.Join(fields, " "))
}

func passes(p models.Profile, spec Spec, query string) bool {
	if !spec.Cities.matches(p.City) {
		return false
	}
	if !spec.Orientations.matches(p.Orientation) {
		return false
	}
	if !spec.LookingFor.matches(p.LookingFor) {
		return false
	}
	if !spec.Genders.matches(p.Gender) {
		return false
	}

	if spec.AgeMin != nil && p.Age.Valid && p.Age.Value < *spec.AgeMin {
		return false
	}
	if spec.AgeMax != nil && p.Age.Valid && p.Age.Value > *spec.AgeMax {
		return false
	}

	if query != "" && !strings.Contains(searchBlob(p), query) {
		return false
	}
	return true
}

// Apply returns the profiles visible under spec, excluding the viewer's
// own profile. The result is a stable subsequence of the input: relative
// order is preserved and nothing is re-sorted. The input slice is never
// mutated.
func Apply(profiles []models.Profile, spec Spec, viewerID string) []models.Profile {
	query := strings.ToLower(strings.TrimSpace(spec.Query))

	out := make([]models.Profile, 0, len(profiles))
	for _, p := range profiles {
		if viewerID != "" && p.ID == viewerID {
			continue
		}
		if passes(p, spec, query) {
			out = append(out, p)
		}
	}
	return out
}

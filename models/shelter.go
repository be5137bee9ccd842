package models

// Slot is a half-open [Open, Close) interval in local "HH:MM" time.
type Slot struct {
	Open  string `json:"open"`
	Close string `json:"close"`
}

// ScheduleEntry lists the open slots for one day of the week.
// Day is 0=Sunday .. 6=Saturday. A day may appear more than once, and a
// single day may carry multiple slots (split lunch/dinner hours).
type ScheduleEntry struct {
	Day   int    `json:"day"`
	Slots []Slot `json:"slots"`
	Note  string `json:"note,omitempty"`
}

// Shelter is one catalog entry. The catalog is read-only at runtime.
type Shelter struct {
	Name          string          `json:"name"`
	Address       string          `json:"address"`
	Contact       string          `json:"contact,omitempty"`
	Website       string          `json:"website,omitempty"`
	DistanceMiles float64         `json:"distanceMiles"`
	Eligibility   string          `json:"eligibility,omitempty"`
	Schedule      []ScheduleEntry `json:"schedule"`
}

// OpenOn reports whether the shelter has at least one non-empty slot list
// for the given day.
func (s Shelter) OpenOn(day int) bool {
	for _, e := range s.Schedule {
		if e.Day == day && len(e.Slots) > 0 {
			return true
		}
	}
	return false
}

// EntryFor returns the first schedule entry for the given day, or nil.
func (s Shelter) EntryFor(day int) *ScheduleEntry {
	for i := range s.Schedule {
		if s.Schedule[i].Day == day {
			return &s.Schedule[i]
		}
	}
	return nil
}

package services

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"commontable-alerts/models"
)

// UnavailableMessage replaces the digest whenever the catalog cannot be
// loaded or rendered. Subscribers get the helpline instead of silence.
const UnavailableMessage = "Common Table: Alerts temporarily unavailable. Call 1-888-711-1151. Reply STOP to unsubscribe."

const unsubscribeFooter = "Reply STOP to unsubscribe."

// maxDigestShelters caps the digest at the five closest open shelters. The
// resulting body can still exceed one SMS segment; carriers segment longer
// text transparently, so no hard length cap is enforced here.
const maxDigestShelters = 5

var dayNames = [...]string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

// DigestService renders the daily open-shelters text message.
type DigestService struct {
	catalog ShelterCatalog
}

func NewDigestService(catalog ShelterCatalog) *DigestService {
	return &DigestService{catalog: catalog}
}

// BuildDailyMessage returns the digest body for day (0=Sun..6=Sat). It never
// fails: any catalog or rendering problem yields the unavailable fallback so
// the dispatch loop cannot stall on bad data.
func (s *DigestService) BuildDailyMessage(day int) (msg string) {
	defer func() {
		if r := recover(); r != nil {
			msg = UnavailableMessage
		}
	}()

	if day < 0 || day > 6 {
		return UnavailableMessage
	}
	shelters, err := s.catalog.Load()
	if err != nil {
		return UnavailableMessage
	}
	return RenderDigest(day, shelters)
}

// OpenToday filters shelters to those with a non-empty slot list for day,
// sorted ascending by distance. The sort is stable: ties keep catalog order.
func OpenToday(shelters []models.Shelter, day int) []models.Shelter {
	var open []models.Shelter
	for _, s := range shelters {
		if s.OpenOn(day) {
			open = append(open, s)
		}
	}
	sort.SliceStable(open, func(i, j int) bool {
		return open[i].DistanceMiles < open[j].DistanceMiles
	})
	return open
}

// RenderDigest formats the ranked open-today list into the SMS body.
func RenderDigest(day int, shelters []models.Shelter) string {
	open := OpenToday(shelters, day)
	if len(open) > maxDigestShelters {
		open = open[:maxDigestShelters]
	}

	dayName := dayNames[day]
	if len(open) == 0 {
		return fmt.Sprintf("Common Table: No locations open %s. Call 1-888-711-1151. %s", dayName, unsubscribeFooter)
	}

	lines := []string{fmt.Sprintf("Food shelves open %s (near campus):", dayName)}
	for _, s := range open {
		lines = append(lines, fmt.Sprintf("• %s (%s mi)", s.Name, formatMiles(s.DistanceMiles)))
		lines = append(lines, "  "+s.Address)

		entry := s.EntryFor(day)
		hours := ""
		note := ""
		if entry != nil {
			hours = formatSlots(entry.Slots)
			if entry.Note != "" {
				note = fmt.Sprintf(" (%s)", entry.Note)
			}
		}
		if hours != "" {
			lines = append(lines, fmt.Sprintf("  Hours: %s%s", hours, note))
		}

		eligibility := s.Eligibility
		if eligibility == "" {
			eligibility = "Call for details."
		}
		lines = append(lines, "  Req: "+eligibility)

		if s.Contact != "" {
			lines = append(lines, "  Call: "+s.Contact)
		}
	}
	lines = append(lines, unsubscribeFooter)
	return strings.Join(lines, "\n")
}

// formatSlots joins open/close pairs into e.g. "10am-12pm, 2-4pm" style
// ranges; slots missing either end are skipped.
func formatSlots(slots []models.Slot) string {
	var parts []string
	for _, slot := range slots {
		if slot.Open == "" || slot.Close == "" {
			continue
		}
		parts = append(parts, formatClock(slot.Open)+"-"+formatClock(slot.Close))
	}
	return strings.Join(parts, ", ")
}

// formatClock converts 24-hour "HH:MM" to compact 12-hour form: no leading
// zero, minutes dropped on the hour, "12am" for midnight, "12pm" for noon.
// Unparseable input is passed through untouched.
func formatClock(hhmm string) string {
	if len(hhmm) < 4 {
		return hhmm
	}
	h, err := strconv.Atoi(hhmm[:2])
	if err != nil {
		return hhmm
	}
	m := 0
	if len(hhmm) >= 5 {
		m, err = strconv.Atoi(hhmm[3:5])
		if err != nil {
			return hhmm
		}
	}

	suffix := "am"
	display := h
	switch {
	case h == 0:
		display = 12
	case h == 12:
		suffix = "pm"
	case h > 12:
		display = h - 12
		suffix = "pm"
	}
	if m == 0 {
		return fmt.Sprintf("%d%s", display, suffix)
	}
	return fmt.Sprintf("%d:%02d%s", display, m, suffix)
}

// formatMiles prints the distance with at least one decimal place ("1.0",
// "2.4") to match the catalog's published figures.
func formatMiles(d float64) string {
	s := strconv.FormatFloat(d, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

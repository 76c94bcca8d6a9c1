package dialogue

import (
	"regexp"
	"strings"
	"time"
)

var nonLetters = regexp.MustCompile(`[^a-z]`)

// ClassifyVehicleType maps a free-text answer onto one of the six known
// vehicle types. Substrings are checked in priority order: "motorcycle" and
// "bike" before "bicycle"/"cycle" so that "motorbike" does not fall through
// to a cycle match. Anything unrecognized is "other".
func ClassifyVehicleType(input string) string {
	cleaned := nonLetters.ReplaceAllString(strings.ToLower(input), "")
	switch {
	case strings.Contains(cleaned, "car"):
		return "car"
	case strings.Contains(cleaned, "motorcycle"), strings.Contains(cleaned, "bike"):
		return "motorcycle"
	case strings.Contains(cleaned, "scooter"):
		return "scooter"
	case strings.Contains(cleaned, "bicycle"), strings.Contains(cleaned, "cycle"):
		return "bicycle"
	case strings.Contains(cleaned, "truck"):
		return "truck"
	default:
		return "other"
	}
}

// Layouts that carry a time component; bare dates are handled separately so
// they get the mid-day default instead of midnight.
var dateTimeLayouts = []string{
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	time.RFC3339,
	"2006/01/02 15:04",
	"02-01-2006 15:04",
	"January 2, 2006 15:04",
	"Jan 2, 2006 15:04",
}

var bareDatePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// NormalizeTheftDate tries to bring a free-text date to the combined
// "2006-01-02T15:04" form. A bare calendar date gets T12:00 appended; text
// that parses as neither is kept as entered, which is never an error.
func NormalizeTheftDate(raw string) string {
	trimmed := strings.TrimSpace(raw)
	for _, layout := range dateTimeLayouts {
		if t, err := time.Parse(layout, trimmed); err == nil {
			return t.Format("2006-01-02T15:04")
		}
	}
	if bareDatePattern.MatchString(trimmed) {
		return trimmed + "T12:00"
	}
	return trimmed
}

// FormatStatus turns a stored status value into its display label, e.g.
// "under_investigation" becomes "Under Investigation".
func FormatStatus(status string) string {
	words := strings.Split(strings.ReplaceAll(status, "_", " "), " ")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

func isSkip(text string) bool {
	return strings.EqualFold(strings.TrimSpace(text), "skip")
}

package domain

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Validation errors carry stable tokens the locale layer maps to
// user-facing messages.
const (
	ReasonEmptyValue = "empty_value"
	ReasonBadTime    = "bad_time"
	ReasonBadHours   = "bad_hours"
	ReasonBadMinutes = "bad_minutes"
	ReasonBadDate    = "bad_date"
	ReasonDateInPast = "date_in_past"
	ReasonDateTooFar = "date_too_far"
)

// MaxScheduleAhead limits how far in the future a meeting may be set.
const MaxScheduleAhead = 30 * 24 * time.Hour

var (
	timeSplitRe = regexp.MustCompile(`[-:\s.]+`)
	nonDigitRe  = regexp.MustCompile(`\D`)
)

// ValidateMeetingTime accepts "10:30", "10-30", "10 30", "1030", "930"
// and bare hours like "10", normalizing to "HH:MM". Returns the
// normalized value or a diagnostic reason.
func ValidateMeetingTime(value string) (string, string) {
	raw := strings.TrimSpace(value)
	if raw == "" {
		return "", ReasonEmptyValue
	}

	digits := nonDigitRe.ReplaceAllString(raw, "")
	if digits == "" {
		return "", ReasonBadTime
	}

	var h, m int
	var err error
	parts := splitNonEmpty(timeSplitRe.Split(raw, -1))
	switch {
	case len(parts) >= 2:
		if h, err = strconv.Atoi(parts[0]); err != nil {
			return "", ReasonBadTime
		}
		if m, err = strconv.Atoi(parts[1]); err != nil {
			return "", ReasonBadTime
		}
	case len(digits) <= 2:
		h, _ = strconv.Atoi(digits)
	case len(digits) == 3:
		h, _ = strconv.Atoi(digits[:1])
		m, _ = strconv.Atoi(digits[1:3])
	default:
		h, _ = strconv.Atoi(digits[:2])
		m, _ = strconv.Atoi(digits[2:4])
	}

	if h < 0 || h > 23 {
		return "", ReasonBadHours
	}
	if m < 0 || m > 59 {
		return "", ReasonBadMinutes
	}
	return fmt.Sprintf("%02d:%02d", h, m), ""
}

// ValidateMeetingDate accepts DD.MM.YYYY or DD.MM.YY with '.', '-' or
// '/' separators, rejects past dates and dates more than 30 days ahead,
// and normalizes to DD.MM.YYYY. The reference time lets tests pin "now".
func ValidateMeetingDate(value string, now time.Time) (string, string) {
	raw := strings.TrimSpace(value)
	if raw == "" {
		return "", ReasonEmptyValue
	}

	normalized := strings.NewReplacer("-", ".", "/", ".").Replace(raw)
	parsed, err := time.ParseInLocation("02.01.2006", normalized, now.Location())
	if err != nil {
		parsed, err = time.ParseInLocation("02.01.06", normalized, now.Location())
		if err != nil {
			return "", ReasonBadDate
		}
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if parsed.Before(today) {
		return "", ReasonDateInPast
	}
	if parsed.After(today.Add(MaxScheduleAhead)) {
		return "", ReasonDateTooFar
	}
	return parsed.Format("02.01.2006"), ""
}

func splitNonEmpty(parts []string) []string {
	out := parts[:0]
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

package domain

import (
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func TestValidateMeetingTime(t *testing.T) {
	cases := []struct {
		in     string
		want   string
		reason string
	}{
		{"10:30", "10:30", ""},
		{"10-30", "10:30", ""},
		{"10 30", "10:30", ""},
		{"10.30", "10:30", ""},
		{"1030", "10:30", ""},
		{"930", "09:30", ""},
		{"10", "10:00", ""},
		{"9", "09:00", ""},
		{"0", "00:00", ""},
		{"", "", ReasonEmptyValue},
		{"abc", "", ReasonBadTime},
		{"25:00", "", ReasonBadHours},
		{"10:75", "", ReasonBadMinutes},
		{"2500", "", ReasonBadHours},
	}

	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			got, reason := ValidateMeetingTime(tc.in)
			if got != tc.want || reason != tc.reason {
				t.Fatalf("ValidateMeetingTime(%q) = (%q, %q), want (%q, %q)", tc.in, got, reason, tc.want, tc.reason)
			}
		})
	}
}

func TestValidateMeetingDate(t *testing.T) {
	now := time.Date(2026, 2, 10, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		in     string
		want   string
		reason string
	}{
		{"16.02.2026", "16.02.2026", ""},
		{"10.02.2026", "10.02.2026", ""}, // today is allowed
		{"16-02-2026", "16.02.2026", ""},
		{"16/02/2026", "16.02.2026", ""},
		{"16.02.26", "16.02.2026", ""},
		{"12.03.2026", "12.03.2026", ""}, // exactly 30 days ahead
		{"13.03.2026", "", ReasonDateTooFar},
		{"09.02.2026", "", ReasonDateInPast},
		{"", "", ReasonEmptyValue},
		{"31.02.2026", "", ReasonBadDate},
		{"не дата", "", ReasonBadDate},
	}

	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			got, reason := ValidateMeetingDate(tc.in, now)
			if got != tc.want || reason != tc.reason {
				t.Fatalf("ValidateMeetingDate(%q) = (%q, %q), want (%q, %q)", tc.in, got, reason, tc.want, tc.reason)
			}
		})
	}
}

func TestProperty_ValidDatesRoundTrip(t *testing.T) {
	now := time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC)

	properties := gopter.NewProperties(gopter.DefaultTestParameters())
	properties.Property("dates within the window normalize and re-validate", prop.ForAll(
		func(offset int) bool {
			date := now.AddDate(0, 0, offset).Format("02.01.2006")
			normalized, reason := ValidateMeetingDate(date, now)
			if reason != "" {
				return false
			}
			again, reason := ValidateMeetingDate(normalized, now)
			return reason == "" && again == normalized
		},
		gen.IntRange(0, 30),
	))

	properties.TestingRun(t)
}

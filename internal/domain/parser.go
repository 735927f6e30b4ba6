package domain

import (
	"regexp"
	"strings"
)

// Bulk invite lists use one person per line in the form
// "full name | email | phone". The first matching separator wins so a
// name containing ';' still splits correctly when ' | ' is present.
var lineSeparators = []string{" | ", "|", ";"}

var emailRe = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// InviteeRow is one validated unit parsed from bulk text input.
type InviteeRow struct {
	FullName string
	Email    string
	Phone    string
}

// ParsedLine pairs a candidate row with its originating line number and
// validation outcome so callers can report exactly which lines failed.
type ParsedLine struct {
	LineNumber int
	Row        *InviteeRow
	Valid      bool
	Reason     string
}

// Diagnostic reasons reported back per line. These are stable tokens the
// localization layer turns into user-facing text.
const (
	ReasonUnrecognized = "unrecognized"
	ReasonEmptyName    = "empty_name"
	ReasonNoContact    = "no_contact"
	ReasonBadEmail     = "bad_email"
)

// ParseInviteeLine extracts the fields of a single line, or returns nil
// when the line has no recognizable separator or an empty name.
func ParseInviteeLine(line string) *InviteeRow {
	line = strings.TrimSpace(line)
	if line == "" {
		return nil
	}

	var parts []string
	for _, sep := range lineSeparators {
		if strings.Contains(line, sep) {
			split := strings.SplitN(line, sep, 3)
			parts = make([]string, 0, len(split))
			for _, p := range split {
				parts = append(parts, strings.TrimSpace(p))
			}
			break
		}
	}
	if parts == nil {
		return nil
	}

	row := &InviteeRow{FullName: parts[0]}
	if row.FullName == "" {
		return nil
	}
	if len(parts) > 1 {
		row.Email = parts[1]
	}
	if len(parts) > 2 {
		row.Phone = parts[2]
	}
	return row
}

// ValidateInviteeRow checks required fields: a name plus at least one of
// email or phone, and a plausible email shape when an email is present.
func ValidateInviteeRow(row *InviteeRow) (bool, string) {
	if row == nil || row.FullName == "" {
		return false, ReasonEmptyName
	}
	if row.Email == "" && row.Phone == "" {
		return false, ReasonNoContact
	}
	if row.Email != "" && !emailRe.MatchString(row.Email) {
		return false, ReasonBadEmail
	}
	return true, ""
}

// ParseInviteeList splits free text into candidate rows, one per
// non-empty line. It never fails: malformed lines come back with
// Valid=false and a diagnostic reason, numbered by their position in the
// original text (1-based, counting empty lines).
func ParseInviteeList(text string) []ParsedLine {
	var result []ParsedLine
	for i, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		entry := ParsedLine{LineNumber: i + 1}
		entry.Row = ParseInviteeLine(line)
		if entry.Row == nil {
			entry.Reason = ReasonUnrecognized
		} else {
			entry.Valid, entry.Reason = ValidateInviteeRow(entry.Row)
		}
		result = append(result, entry)
	}
	return result
}

// ValidRows extracts the rows that passed validation.
func ValidRows(lines []ParsedLine) []InviteeRow {
	var rows []InviteeRow
	for _, l := range lines {
		if l.Valid {
			rows = append(rows, *l.Row)
		}
	}
	return rows
}

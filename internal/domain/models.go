package domain

import (
	"errors"
	"time"
)

// VoteAnswer is a recorded attendance answer.
type VoteAnswer string

const (
	VoteNone VoteAnswer = ""
	VoteYes  VoteAnswer = "yes"
	VoteNo   VoteAnswer = "no"
)

// VoteFilter selects which invitees a list view shows.
type VoteFilter int

const (
	FilterNone VoteFilter = iota
	FilterVoted
	FilterNotVoted
)

// String returns the filter name used in logs.
func (f VoteFilter) String() string {
	switch f {
	case FilterVoted:
		return "voted"
	case FilterNotVoted:
		return "not_voted"
	default:
		return "all"
	}
}

// MeetingStatus values for the meetings table.
const (
	MeetingStatusActive   = "active"
	MeetingStatusArchived = "archived"
)

// Meeting is a scheduled meeting. Date and Time keep the normalized
// display forms (DD.MM.YYYY and HH:MM) the validators produce.
type Meeting struct {
	ID        int64
	Topic     string
	Date      string
	Time      string
	Place     string
	Link      string
	Status    string
	CreatedBy int64
	CreatedAt time.Time
}

// DateTimeDisplay returns "DD.MM.YYYY HH:MM" for list headers.
func (m *Meeting) DateTimeDisplay() string {
	switch {
	case m.Date != "" && m.Time != "":
		return m.Date + " " + m.Time
	case m.Date != "":
		return m.Date
	default:
		return m.Time
	}
}

// Invitee is a person invited to one specific meeting.
// Answer is filled in by AttachVotes, not stored on the row itself.
type Invitee struct {
	ID        int64
	MeetingID int64
	FullName  string
	Email     string
	Phone     string
	Answer    VoteAnswer
	CreatedAt time.Time
}

// Contact returns the preferred contact string for display.
func (i *Invitee) Contact() string {
	if i.Email != "" {
		return i.Email
	}
	return i.Phone
}

// Participant is a standing member of meetings, independent of a single
// invite list. Identified by email.
type Participant struct {
	ID        int64
	FullName  string
	Email     string
	Phone     string
	CreatedAt time.Time
}

// Contact returns the preferred contact string for display.
func (p *Participant) Contact() string {
	if p.Email != "" {
		return p.Email
	}
	return p.Phone
}

// ChatUser is profile data captured from chat events, used to match
// votes against invitee rows.
type ChatUser struct {
	ID       int64
	Username string
	FullName string
}

// Vote is one recorded attendance answer joined with the voter profile.
type Vote struct {
	UserID   int64
	Username string
	FullName string
	Answer   VoteAnswer
	VotedAt  time.Time
}

// Sentinel errors shared across the engine and repositories.
var (
	// ErrNoActiveMeeting is returned when an operation needs an active
	// meeting and none exists.
	ErrNoActiveMeeting = errors.New("no active meeting")
	// ErrNotFound is returned when a requested row does not exist.
	ErrNotFound = errors.New("not found")
	// ErrFlowActive is returned when a user tries to start a flow while
	// another one is already registered for them.
	ErrFlowActive = errors.New("another flow is active")
)

// Logger is the logging interface consumed by every component.
type Logger interface {
	Debug(msg string, fields ...interface{})
	Info(msg string, fields ...interface{})
	Warn(msg string, fields ...interface{})
	Error(msg string, fields ...interface{})
}

package domain

import "context"

// MeetingRepository persists meetings.
type MeetingRepository interface {
	CreateMeeting(ctx context.Context, meeting *Meeting) error
	// ActiveMeeting returns the current active meeting or ErrNoActiveMeeting.
	ActiveMeeting(ctx context.Context) (*Meeting, error)
	UpdateMeeting(ctx context.Context, meeting *Meeting) error
	// RescheduleMeeting archives the old meeting, creates the new one and
	// moves the invitee list over with votes reset. Returns the number of
	// invitees moved.
	RescheduleMeeting(ctx context.Context, oldMeetingID int64, meeting *Meeting) (int, error)
}

// InviteeRepository persists per-meeting invite lists.
type InviteeRepository interface {
	ListInvitees(ctx context.Context, meetingID int64) ([]*Invitee, error)
	// AddInvitees inserts rows one by one; rows already present (same
	// email, or same name when the email is empty) are updated instead.
	// Returns how many rows were newly added and how many updated.
	AddInvitees(ctx context.Context, meetingID int64, rows []InviteeRow) (added, updated int, err error)
	// DeleteInvitee removes the invitee with the given email. Returns
	// ErrNotFound when no such invitee exists.
	DeleteInvitee(ctx context.Context, meetingID int64, email string) error
	SearchInvitees(ctx context.Context, meetingID int64, query string) ([]*Invitee, error)
}

// ParticipantRepository persists the permanent participant list.
type ParticipantRepository interface {
	ListParticipants(ctx context.Context) ([]*Participant, error)
	// SaveParticipant upserts by email. Returns true when a new row was
	// inserted, false when an existing one was updated.
	SaveParticipant(ctx context.Context, p *Participant) (bool, error)
	// DeleteParticipant removes the participant with the given email.
	// Returns ErrNotFound when no such participant exists.
	DeleteParticipant(ctx context.Context, email string) error
	SearchParticipants(ctx context.Context, query string) ([]*Participant, error)
}

// VoteRepository records attendance answers.
type VoteRepository interface {
	// RecordVote upserts the user's answer for the meeting.
	RecordVote(ctx context.Context, meetingID, userID int64, answer VoteAnswer) error
	// ListVotes returns all votes for the meeting joined with the voter
	// profiles known to the user repository.
	ListVotes(ctx context.Context, meetingID int64) ([]*Vote, error)
}

// UserRepository stores chat user profiles seen in events.
type UserRepository interface {
	UpsertUser(ctx context.Context, user *ChatUser) error
}

// Authorizer decides whether a user may run organizer actions.
type Authorizer interface {
	IsOrganizer(ctx context.Context, userID, meetingID int64) (bool, error)
}

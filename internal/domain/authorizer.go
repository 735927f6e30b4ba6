package domain

import "context"

// OrganizerLookup is the persistence-side check for organizer rows.
type OrganizerLookup interface {
	IsOrganizer(ctx context.Context, userID int64) (bool, error)
}

// StaticAuthorizer authorizes organizer actions against the configured
// ID list plus the organizers table. The meeting ID is accepted for
// interface compatibility; organizer rights are global in this
// deployment, not per meeting.
type StaticAuthorizer struct {
	userIDs map[int64]struct{}
	lookup  OrganizerLookup
}

// NewStaticAuthorizer builds an authorizer from configured user IDs and
// an optional persistence lookup (may be nil).
func NewStaticAuthorizer(userIDs []int64, lookup OrganizerLookup) *StaticAuthorizer {
	set := make(map[int64]struct{}, len(userIDs))
	for _, id := range userIDs {
		set[id] = struct{}{}
	}
	return &StaticAuthorizer{userIDs: set, lookup: lookup}
}

// IsOrganizer reports whether the user may run organizer actions.
func (a *StaticAuthorizer) IsOrganizer(ctx context.Context, userID, meetingID int64) (bool, error) {
	if _, ok := a.userIDs[userID]; ok {
		return true, nil
	}
	if a.lookup == nil {
		return false, nil
	}
	return a.lookup.IsOrganizer(ctx, userID)
}

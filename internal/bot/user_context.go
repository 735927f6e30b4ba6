package bot

import (
	"sync"

	"github.com/ad/telegram-meeting-bot/internal/domain"
)

// View identifies which list a user is currently looking at.
type View int

const (
	ViewInvited View = iota
	ViewParticipants
)

// String returns the view name used in logs.
func (v View) String() string {
	if v == ViewParticipants {
		return "participants"
	}
	return "invited"
}

// UserContext is the per-user list state: which list is shown, which
// vote filter applies and which page was last requested. The filter only
// affects the invited view.
type UserContext struct {
	View   View
	Filter domain.VoteFilter
	Page   int
}

// UserContextStore keeps per-user list state in memory. Every mutation
// that changes what the list contains resets the page to 1 so the user
// never lands on a page that no longer exists.
type UserContextStore struct {
	mu       sync.Mutex
	contexts map[int64]*UserContext
}

// NewUserContextStore creates an empty store.
func NewUserContextStore() *UserContextStore {
	return &UserContextStore{contexts: make(map[int64]*UserContext)}
}

// Get returns a copy of the user's context, defaulting to the unfiltered
// invited view at page 1.
func (s *UserContextStore) Get(userID int64) UserContext {
	s.mu.Lock()
	defer s.mu.Unlock()
	return *s.get(userID)
}

func (s *UserContextStore) get(userID int64) *UserContext {
	uc, ok := s.contexts[userID]
	if !ok {
		uc = &UserContext{View: ViewInvited, Filter: domain.FilterNone, Page: 1}
		s.contexts[userID] = uc
	}
	return uc
}

// SetInvitedView switches to the invited view with the given filter.
func (s *UserContextStore) SetInvitedView(userID int64, filter domain.VoteFilter) {
	s.mu.Lock()
	defer s.mu.Unlock()
	uc := s.get(userID)
	uc.View = ViewInvited
	uc.Filter = filter
	uc.Page = 1
}

// SetParticipantsView switches to the participants view at the given page.
func (s *UserContextStore) SetParticipantsView(userID int64, page int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	uc := s.get(userID)
	uc.View = ViewParticipants
	uc.Page = page
	if uc.Page < 1 {
		uc.Page = 1
	}
}

// ClearFilter drops the vote filter but keeps the current view.
func (s *UserContextStore) ClearFilter(userID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	uc := s.get(userID)
	uc.Filter = domain.FilterNone
	uc.Page = 1
}

// SetPage moves the user to the given page of their current view.
func (s *UserContextStore) SetPage(userID int64, page int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	uc := s.get(userID)
	uc.Page = page
	if uc.Page < 1 {
		uc.Page = 1
	}
}

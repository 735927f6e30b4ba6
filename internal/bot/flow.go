package bot

import (
	"context"
	"sync"

	"github.com/ad/telegram-meeting-bot/internal/domain"
)

// Flow is one multi-step dialog bound to a single user. HandleInput
// consumes the next message; done reports whether the flow finished.
type Flow interface {
	// Kind returns the locale key of the flow's display name.
	Kind() string
	// Prompt returns the message shown when the flow starts.
	Prompt() *Reply
	HandleInput(ctx context.Context, text string) (reply *Reply, done bool, err error)
}

// Skipper is implemented by flows that support /skip on optional steps.
type Skipper interface {
	Skip(ctx context.Context) (reply *Reply, done bool, err error)
}

// ListRefresher is implemented by flows that mutate a list the user was
// looking at; the engine re-renders that list after the flow finishes.
type ListRefresher interface {
	RefreshesList() bool
}

// FlowRegistry holds at most one active flow per user. Dialog state is
// deliberately memory-only; a restart drops half-finished dialogs
// instead of resuming them with stale prompts.
type FlowRegistry struct {
	mu    sync.Mutex
	flows map[int64]Flow
}

// NewFlowRegistry creates an empty registry.
func NewFlowRegistry() *FlowRegistry {
	return &FlowRegistry{flows: make(map[int64]Flow)}
}

// Start registers the flow for the user. Returns domain.ErrFlowActive
// when the user already has one; the caller decides how to report the
// conflict.
func (r *FlowRegistry) Start(userID int64, f Flow) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.flows[userID]; ok {
		return domain.ErrFlowActive
	}
	r.flows[userID] = f
	return nil
}

// Active returns the user's current flow or nil.
func (r *FlowRegistry) Active(userID int64) Flow {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.flows[userID]
}

// Finish removes the user's flow, returning it (nil when none existed).
func (r *FlowRegistry) Finish(userID int64) Flow {
	r.mu.Lock()
	defer r.mu.Unlock()
	f := r.flows[userID]
	delete(r.flows, userID)
	return f
}

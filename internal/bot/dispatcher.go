package bot

import (
	"context"

	"github.com/ad/telegram-meeting-bot/internal/domain"
)

// HandlerFunc processes one resolved command.
type HandlerFunc func(ctx context.Context, ev *Event, cmd Command) (*Reply, error)

// CommandDispatcher routes resolved commands to registered handlers.
type CommandDispatcher struct {
	handlers map[CommandID]HandlerFunc
	logger   domain.Logger
}

// NewCommandDispatcher creates an empty dispatcher.
func NewCommandDispatcher(logger domain.Logger) *CommandDispatcher {
	return &CommandDispatcher{
		handlers: make(map[CommandID]HandlerFunc),
		logger:   logger,
	}
}

// Register binds a handler to a command ID, replacing any previous one.
func (d *CommandDispatcher) Register(id CommandID, fn HandlerFunc) {
	d.handlers[id] = fn
}

// Dispatch runs the handler for the command. The second return value is
// false when no handler is registered.
func (d *CommandDispatcher) Dispatch(ctx context.Context, ev *Event, cmd Command) (*Reply, bool, error) {
	fn, ok := d.handlers[cmd.ID]
	if !ok {
		d.logger.Debug("no handler for command", "command", cmd.ID, "user_id", ev.SenderID)
		return nil, false, nil
	}
	reply, err := fn(ctx, ev, cmd)
	return reply, true, err
}

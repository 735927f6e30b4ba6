package bot

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/ad/telegram-meeting-bot/internal/domain"
	"github.com/ad/telegram-meeting-bot/internal/locale"
)

// Engine orchestrates event handling: authorization, the active-flow
// short-circuit, command resolution and dispatch. Events from the same
// user are serialized with a per-user lock so flow state and list
// context never race; different users proceed in parallel.
type Engine struct {
	contexts     *UserContextStore
	flows        *FlowRegistry
	resolver     *CommandResolver
	dispatcher   *CommandDispatcher
	auth         domain.Authorizer
	users        domain.UserRepository
	meetings     domain.MeetingRepository
	invitees     domain.InviteeRepository
	participants domain.ParticipantRepository
	votes        domain.VoteRepository
	invited      *InvitedHandler
	parts        *ParticipantsHandler
	loc          locale.Localizer
	logger       domain.Logger
	now          func() time.Time

	mu        sync.Mutex
	userLocks map[int64]*sync.Mutex
}

// NewEngine wires the engine and registers all command handlers.
func NewEngine(
	contexts *UserContextStore,
	flows *FlowRegistry,
	auth domain.Authorizer,
	users domain.UserRepository,
	meetings domain.MeetingRepository,
	invitees domain.InviteeRepository,
	participants domain.ParticipantRepository,
	votes domain.VoteRepository,
	loc locale.Localizer,
	perPage int,
	logger domain.Logger,
) *Engine {
	e := &Engine{
		contexts:     contexts,
		flows:        flows,
		resolver:     NewCommandResolver(contexts, logger),
		dispatcher:   NewCommandDispatcher(logger),
		auth:         auth,
		users:        users,
		meetings:     meetings,
		invitees:     invitees,
		participants: participants,
		votes:        votes,
		invited:      NewInvitedHandler(meetings, invitees, votes, contexts, loc, perPage, logger),
		parts:        NewParticipantsHandler(participants, contexts, loc, perPage, logger),
		loc:          loc,
		logger:       logger,
		now:          time.Now,
		userLocks:    make(map[int64]*sync.Mutex),
	}

	e.dispatcher.Register(CmdStart, e.handleStart)
	e.dispatcher.Register(CmdHelp, e.handleHelp)
	e.dispatcher.Register(CmdMeeting, e.handleMeeting)
	e.dispatcher.Register(CmdMeetingMenu, e.handleMeetingMenu)
	e.dispatcher.Register(CmdInvited, e.handleListView)
	e.dispatcher.Register(CmdVoted, e.handleListView)
	e.dispatcher.Register(CmdNotVoted, e.handleListView)
	e.dispatcher.Register(CmdAll, e.handleListView)
	e.dispatcher.Register(CmdParticipants, e.handleListView)
	e.dispatcher.Register(CmdPage, e.handleListView)
	e.dispatcher.Register(CmdAttendance, e.handleAttendance)
	e.dispatcher.Register(CmdCreateMeeting, e.handleCreateMeeting)
	e.dispatcher.Register(CmdCancel, e.handleCancelWithoutFlow)
	e.dispatcher.Register(CmdSkip, e.handleSkipWithoutFlow)

	return e
}

func (e *Engine) userLock(userID int64) *sync.Mutex {
	e.mu.Lock()
	defer e.mu.Unlock()
	l, ok := e.userLocks[userID]
	if !ok {
		l = &sync.Mutex{}
		e.userLocks[userID] = l
	}
	return l
}

// HandleEvent processes one incoming event and returns the replies to
// send. Every path produces at least one reply.
func (e *Engine) HandleEvent(ctx context.Context, ev *Event) []*Reply {
	lock := e.userLock(ev.SenderID)
	lock.Lock()
	defer lock.Unlock()

	if err := e.users.UpsertUser(ctx, &domain.ChatUser{
		ID:       ev.SenderID,
		Username: ev.Username,
		FullName: ev.FullName,
	}); err != nil {
		e.logger.Warn("failed to upsert user profile", "user_id", ev.SenderID, "error", err)
	}

	if ev.Kind == EventCallback {
		return e.handleCallback(ctx, ev)
	}
	return e.handleMessage(ctx, ev)
}

func (e *Engine) handleMessage(ctx context.Context, ev *Event) []*Reply {
	text := strings.TrimSpace(ev.Text)

	if flow := e.flows.Active(ev.SenderID); flow != nil {
		// Cancel is always recognized, everything else feeds the flow.
		// Commands match case-insensitively like the resolver; the flow
		// input itself keeps its original case.
		if isCommand(strings.ToLower(text), "/cancel") {
			e.flows.Finish(ev.SenderID)
			e.logger.Info("flow cancelled", "user_id", ev.SenderID, "flow", flow.Kind())
			replies := []*Reply{NewReply(e.loc.MustLocalizeWithTemplate(locale.FlowCancelled, e.loc.MustLocalize(flow.Kind())))}
			return e.appendListRefresh(ctx, ev.SenderID, flow, replies)
		}

		if isCommand(strings.ToLower(text), "/skip") {
			s, ok := flow.(Skipper)
			if !ok {
				return []*Reply{NewReply(e.loc.MustLocalize(locale.SkipOnlyOptional))}
			}
			reply, done, err := s.Skip(ctx)
			return e.flowOutcome(ctx, ev.SenderID, flow, reply, done, err)
		}

		reply, done, err := flow.HandleInput(ctx, text)
		return e.flowOutcome(ctx, ev.SenderID, flow, reply, done, err)
	}

	cmd := e.resolver.Resolve(ev.SenderID, text)
	reply, handled, err := e.dispatcher.Dispatch(ctx, ev, cmd)
	if err != nil {
		e.logger.Error("command handler failed", "user_id", ev.SenderID, "command", cmd.ID, "error", err)
		if reply == nil {
			reply = NewReply(e.loc.MustLocalize(locale.ErrorGeneric))
		}
	}
	if !handled || reply == nil {
		reply = e.helpReply(ctx, ev.SenderID)
	}
	return []*Reply{reply}
}

// flowOutcome finishes a completed flow and appends the list re-render
// for flows that changed the list the user was looking at.
func (e *Engine) flowOutcome(ctx context.Context, userID int64, flow Flow, reply *Reply, done bool, err error) []*Reply {
	if err != nil {
		e.logger.Error("flow input failed", "user_id", userID, "flow", flow.Kind(), "error", err)
		if reply == nil {
			reply = NewReply(e.loc.MustLocalize(locale.ErrorGeneric))
		}
	}
	replies := []*Reply{reply}
	if !done {
		return replies
	}
	e.flows.Finish(userID)
	return e.appendListRefresh(ctx, userID, flow, replies)
}

func (e *Engine) appendListRefresh(ctx context.Context, userID int64, flow Flow, replies []*Reply) []*Reply {
	lr, ok := flow.(ListRefresher)
	if !ok || !lr.RefreshesList() {
		return replies
	}
	if view := e.renderCurrentView(ctx, userID); view != nil {
		replies = append(replies, view)
	}
	return replies
}

func (e *Engine) renderCurrentView(ctx context.Context, userID int64) *Reply {
	var reply *Reply
	var err error
	if e.contexts.Get(userID).View == ViewParticipants {
		reply, err = e.parts.Render(ctx, userID)
	} else {
		reply, err = e.invited.Render(ctx, userID)
	}
	if err != nil {
		e.logger.Error("failed to render list view", "user_id", userID, "error", err)
		return NewReply(e.loc.MustLocalize(locale.ErrorGeneric))
	}
	return reply
}

func (e *Engine) isOrganizer(ctx context.Context, userID int64) bool {
	ok, err := e.auth.IsOrganizer(ctx, userID, 0)
	if err != nil {
		e.logger.Error("organizer check failed", "user_id", userID, "error", err)
		return false
	}
	return ok
}

func (e *Engine) denied(userID int64) *Reply {
	e.logger.Warn("unauthorized organizer command attempt", "user_id", userID)
	return NewReply(e.loc.MustLocalize(locale.ErrorNotPermitted))
}

func (e *Engine) helpReply(ctx context.Context, userID int64) *Reply {
	text := e.loc.MustLocalize(locale.HelpTitle) + "\n\n" + e.loc.MustLocalize(locale.HelpCommands)
	if e.isOrganizer(ctx, userID) {
		text += "\n" + e.loc.MustLocalize(locale.HelpOrganizer)
	}
	return NewReply(text)
}

func (e *Engine) handleStart(ctx context.Context, ev *Event, _ Command) (*Reply, error) {
	greeting := e.loc.MustLocalize(locale.GreetingAnonymous)
	if ev.FullName != "" {
		greeting = e.loc.MustLocalizeWithTemplate(locale.Greeting, ev.FullName)
	}
	help := e.helpReply(ctx, ev.SenderID)
	return NewReply(greeting + "\n\n" + help.Text), nil
}

func (e *Engine) handleHelp(ctx context.Context, ev *Event, _ Command) (*Reply, error) {
	return e.helpReply(ctx, ev.SenderID), nil
}

func (e *Engine) handleMeeting(ctx context.Context, ev *Event, _ Command) (*Reply, error) {
	meeting, err := e.meetings.ActiveMeeting(ctx)
	if err == domain.ErrNoActiveMeeting {
		if e.isOrganizer(ctx, ev.SenderID) {
			return NewReply(e.loc.MustLocalize(locale.MeetingNone)), nil
		}
		return NewReply(e.loc.MustLocalize(locale.MeetingNoneForUser)), nil
	}
	if err != nil {
		return nil, err
	}

	lines := []string{
		e.loc.MustLocalizeWithTemplate(locale.MeetingTopicLine, meeting.Topic),
		e.loc.MustLocalizeWithTemplate(locale.MeetingWhenLine, meeting.Date, meeting.Time),
	}
	if meeting.Place != "" {
		lines = append(lines, e.loc.MustLocalizeWithTemplate(locale.MeetingPlaceLine, meeting.Place))
	}
	if meeting.Link != "" {
		lines = append(lines, e.loc.MustLocalizeWithTemplate(locale.MeetingLinkLine, meeting.Link))
	}

	reply := NewReply(strings.Join(lines, "\n") + "\n\n" + e.loc.MustLocalize(locale.AttendanceQuestion))
	reply.Buttons = voteButtons(e.loc)
	return reply, nil
}

func (e *Engine) handleMeetingMenu(ctx context.Context, ev *Event, _ Command) (*Reply, error) {
	if !e.isOrganizer(ctx, ev.SenderID) {
		return e.denied(ev.SenderID), nil
	}
	reply := NewReply(e.loc.MustLocalize(locale.MeetingMenuTitle))
	reply.Buttons = [][]Button{{
		{Label: e.loc.MustLocalize(locale.MeetingMenuCreate), Data: "meeting_create"},
		{Label: e.loc.MustLocalize(locale.MeetingMenuEdit), Data: "meeting_edit"},
		{Label: e.loc.MustLocalize(locale.MeetingMenuReschedule), Data: "meeting_move"},
	}}
	return reply, nil
}

// handleListView serves every command that renders a list: the resolver
// has already updated the user's context, so rendering the current view
// is all that is left.
func (e *Engine) handleListView(ctx context.Context, ev *Event, _ Command) (*Reply, error) {
	if !e.isOrganizer(ctx, ev.SenderID) {
		return e.denied(ev.SenderID), nil
	}
	return e.renderCurrentView(ctx, ev.SenderID), nil
}

func (e *Engine) handleAttendance(ctx context.Context, ev *Event, _ Command) (*Reply, error) {
	_, err := e.meetings.ActiveMeeting(ctx)
	if err == domain.ErrNoActiveMeeting {
		return NewReply(e.loc.MustLocalize(locale.MeetingNoneForUser)), nil
	}
	if err != nil {
		return nil, err
	}
	reply := NewReply(e.loc.MustLocalize(locale.AttendanceQuestion))
	reply.Buttons = voteButtons(e.loc)
	return reply, nil
}

func (e *Engine) handleCreateMeeting(ctx context.Context, ev *Event, _ Command) (*Reply, error) {
	if !e.isOrganizer(ctx, ev.SenderID) {
		return e.denied(ev.SenderID), nil
	}
	return e.startFlow(ev.SenderID, newCreateMeetingFlow(e.meetings, e.loc, e.now, ev.SenderID)), nil
}

func (e *Engine) handleCancelWithoutFlow(ctx context.Context, ev *Event, _ Command) (*Reply, error) {
	return NewReply(e.loc.MustLocalize(locale.FlowNoneToCancel)), nil
}

func (e *Engine) handleSkipWithoutFlow(ctx context.Context, ev *Event, _ Command) (*Reply, error) {
	return NewReply(e.loc.MustLocalize(locale.SkipOnlyOptional)), nil
}

// startFlow registers the flow and returns its opening prompt, or the
// conflict message naming the dialog already in progress.
func (e *Engine) startFlow(userID int64, f Flow) *Reply {
	if err := e.flows.Start(userID, f); err != nil {
		active := e.flows.Active(userID)
		e.logger.Info("flow start rejected", "user_id", userID, "active", active.Kind(), "requested", f.Kind())
		return NewReply(e.loc.MustLocalizeWithTemplate(locale.FlowConflict, e.loc.MustLocalize(active.Kind())))
	}
	e.logger.Info("flow started", "user_id", userID, "flow", f.Kind())
	return f.Prompt()
}

func (e *Engine) handleCallback(ctx context.Context, ev *Event) []*Reply {
	switch ev.Data {
	case "vote:yes":
		return []*Reply{e.recordVote(ctx, ev, domain.VoteYes)}
	case "vote:no":
		return []*Reply{e.recordVote(ctx, ev, domain.VoteNo)}
	}

	if !e.isOrganizer(ctx, ev.SenderID) {
		return []*Reply{e.denied(ev.SenderID)}
	}

	// Flow-start callbacks honor the active dialog before any repository
	// access, same as messages.
	if flow := e.flows.Active(ev.SenderID); flow != nil {
		return []*Reply{NewReply(e.loc.MustLocalizeWithTemplate(locale.FlowConflict, e.loc.MustLocalize(flow.Kind())))}
	}

	switch ev.Data {
	case "invited_add", "invited_delete", "invited_search":
		meeting, err := e.meetings.ActiveMeeting(ctx)
		if err == domain.ErrNoActiveMeeting {
			return []*Reply{NewReply(e.loc.MustLocalize(locale.MeetingNone))}
		}
		if err != nil {
			e.logger.Error("failed to load active meeting", "error", err)
			return []*Reply{NewReply(e.loc.MustLocalize(locale.ErrorGeneric))}
		}
		var f Flow
		switch ev.Data {
		case "invited_add":
			f = &addInviteesFlow{meetingID: meeting.ID, invitees: e.invitees, loc: e.loc}
		case "invited_delete":
			f = &deleteInviteeFlow{meetingID: meeting.ID, invitees: e.invitees, loc: e.loc}
		default:
			f = &searchInviteesFlow{meetingID: meeting.ID, invitees: e.invitees, votes: e.votes, loc: e.loc}
		}
		return []*Reply{e.startFlow(ev.SenderID, f)}

	case "participants_add":
		return []*Reply{e.startFlow(ev.SenderID, &addParticipantsFlow{participants: e.participants, loc: e.loc})}
	case "participants_delete":
		return []*Reply{e.startFlow(ev.SenderID, &deleteParticipantFlow{participants: e.participants, loc: e.loc})}
	case "participants_search":
		return []*Reply{e.startFlow(ev.SenderID, &searchParticipantsFlow{participants: e.participants, loc: e.loc})}

	case "meeting_create":
		return []*Reply{e.startFlow(ev.SenderID, newCreateMeetingFlow(e.meetings, e.loc, e.now, ev.SenderID))}

	case "meeting_edit", "meeting_move":
		meeting, err := e.meetings.ActiveMeeting(ctx)
		if err == domain.ErrNoActiveMeeting {
			return []*Reply{NewReply(e.loc.MustLocalize(locale.MeetingNone))}
		}
		if err != nil {
			e.logger.Error("failed to load active meeting", "error", err)
			return []*Reply{NewReply(e.loc.MustLocalize(locale.ErrorGeneric))}
		}
		var f Flow
		if ev.Data == "meeting_edit" {
			f = newEditMeetingFlow(e.meetings, e.loc, e.now, meeting)
		} else {
			f = newRescheduleMeetingFlow(e.meetings, e.loc, e.now, meeting, ev.SenderID)
		}
		return []*Reply{e.startFlow(ev.SenderID, f)}
	}

	e.logger.Debug("unknown callback data", "user_id", ev.SenderID, "data", ev.Data)
	return []*Reply{e.helpReply(ctx, ev.SenderID)}
}

func (e *Engine) recordVote(ctx context.Context, ev *Event, answer domain.VoteAnswer) *Reply {
	meeting, err := e.meetings.ActiveMeeting(ctx)
	if err == domain.ErrNoActiveMeeting {
		return NewReply(e.loc.MustLocalize(locale.MeetingNoneForUser))
	}
	if err != nil {
		e.logger.Error("failed to load active meeting", "error", err)
		return NewReply(e.loc.MustLocalize(locale.VoteSaveError))
	}

	if err := e.votes.RecordVote(ctx, meeting.ID, ev.SenderID, answer); err != nil {
		e.logger.Error("failed to record vote", "user_id", ev.SenderID, "meeting_id", meeting.ID, "error", err)
		return NewReply(e.loc.MustLocalize(locale.VoteSaveError))
	}

	answerKey := locale.VoteYesAnswer
	if answer == domain.VoteNo {
		answerKey = locale.VoteNoAnswer
	}
	e.logger.Info("vote recorded", "user_id", ev.SenderID, "meeting_id", meeting.ID, "answer", string(answer))
	return NewReply(e.loc.MustLocalizeWithTemplate(locale.VoteSaved, e.loc.MustLocalize(answerKey)))
}

func voteButtons(loc locale.Localizer) [][]Button {
	return [][]Button{{
		{Label: loc.MustLocalize(locale.VoteYesButton), Data: "vote:yes"},
		{Label: loc.MustLocalize(locale.VoteNoButton), Data: "vote:no"},
	}}
}

// isCommand matches a command keyword, tolerating a "@botname" suffix.
func isCommand(text, keyword string) bool {
	if text == keyword {
		return true
	}
	return strings.HasPrefix(text, keyword+"@")
}

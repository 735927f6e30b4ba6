package bot

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/ad/telegram-meeting-bot/internal/domain"
)

// CommandID identifies a resolved command.
type CommandID int

const (
	CmdUnknown CommandID = iota
	CmdStart
	CmdHelp
	CmdMeeting
	CmdMeetingMenu
	CmdInvited
	CmdParticipants
	CmdVoted
	CmdNotVoted
	CmdAll
	CmdAttendance
	CmdCreateMeeting
	CmdCancel
	CmdSkip
	CmdPage
)

// Command is the outcome of resolution. Page is set for CmdPage and for
// list commands carrying an inline page suffix.
type Command struct {
	ID   CommandID
	Page int
}

// keywords maps exact command text to its ID. Resolution order is
// keywords first, then page-suffixed list commands, then bare digits.
var keywords = map[string]CommandID{
	"/start":          CmdStart,
	"/help":           CmdHelp,
	"/meeting":        CmdMeeting,
	"/meeting_menu":   CmdMeetingMenu,
	"/invited":        CmdInvited,
	"/participants":   CmdParticipants,
	"/voted":          CmdVoted,
	"/not_voted":      CmdNotVoted,
	"/all":            CmdAll,
	"/attendance":     CmdAttendance,
	"/create_meeting": CmdCreateMeeting,
	"/cancel":         CmdCancel,
	"/skip":           CmdSkip,
}

var (
	participantsPageRe = regexp.MustCompile(`^/participants(\d+)$`)
	invitedPageRe      = regexp.MustCompile(`^/invited(\d+)$`)
	bareDigitsRe       = regexp.MustCompile(`^/?(\d+)$`)
)

// CommandResolver turns raw message text into a Command, mutating the
// user's list context as a side effect so that a later render of the
// view reflects the command. Bare digits are resolved against whatever
// view the user is currently in.
type CommandResolver struct {
	contexts *UserContextStore
	logger   domain.Logger
}

// NewCommandResolver creates a resolver over the given context store.
func NewCommandResolver(contexts *UserContextStore, logger domain.Logger) *CommandResolver {
	return &CommandResolver{contexts: contexts, logger: logger}
}

// Resolve maps text to a command and applies its context side effects.
func (r *CommandResolver) Resolve(userID int64, text string) Command {
	text = strings.ToLower(strings.TrimSpace(text))
	// Strip a "@botname" suffix from group-style commands
	if at := strings.IndexByte(text, '@'); at > 0 && strings.HasPrefix(text, "/") {
		text = text[:at]
	}

	if id, ok := keywords[text]; ok {
		switch id {
		case CmdInvited:
			r.contexts.SetInvitedView(userID, domain.FilterNone)
		case CmdVoted:
			r.contexts.SetInvitedView(userID, domain.FilterVoted)
		case CmdNotVoted:
			r.contexts.SetInvitedView(userID, domain.FilterNotVoted)
		case CmdAll:
			r.contexts.ClearFilter(userID)
		case CmdParticipants:
			r.contexts.SetParticipantsView(userID, 1)
		}
		r.logger.Debug("command resolved", "user_id", userID, "text", text)
		return Command{ID: id}
	}

	if m := participantsPageRe.FindStringSubmatch(text); m != nil {
		page, _ := strconv.Atoi(m[1])
		r.contexts.SetParticipantsView(userID, page)
		return Command{ID: CmdParticipants, Page: page}
	}

	if m := invitedPageRe.FindStringSubmatch(text); m != nil {
		page, _ := strconv.Atoi(m[1])
		r.contexts.SetInvitedView(userID, domain.FilterNone)
		r.contexts.SetPage(userID, page)
		return Command{ID: CmdInvited, Page: page}
	}

	if m := bareDigitsRe.FindStringSubmatch(text); m != nil {
		page, _ := strconv.Atoi(m[1])
		r.contexts.SetPage(userID, page)
		r.logger.Debug("page resolved against active view",
			"user_id", userID, "page", page, "view", r.contexts.Get(userID).View)
		return Command{ID: CmdPage, Page: page}
	}

	return Command{ID: CmdUnknown}
}

package bot

import (
	"context"
	"fmt"
	"strings"

	"github.com/ad/telegram-meeting-bot/internal/domain"
	"github.com/ad/telegram-meeting-bot/internal/locale"
)

// Vote status icons shown next to invitee names.
const (
	iconVotedYes = "✅"
	iconVotedNo  = "❌"
	iconNoVote   = "⏳"
)

func voteIcon(answer domain.VoteAnswer) string {
	switch answer {
	case domain.VoteYes:
		return iconVotedYes
	case domain.VoteNo:
		return iconVotedNo
	default:
		return iconNoVote
	}
}

// pagesFooter renders "1 /2 /3 /all" with the current page unprefixed,
// so every other entry reads as the command that jumps to it.
func pagesFooter(loc locale.Localizer, current, total int) string {
	if total <= 1 {
		return ""
	}
	parts := make([]string, 0, total+1)
	for i := 1; i <= total; i++ {
		if i == current {
			parts = append(parts, fmt.Sprintf("%d", i))
		} else {
			parts = append(parts, fmt.Sprintf("/%d", i))
		}
	}
	parts = append(parts, "/all")
	return loc.MustLocalizeWithTemplate(locale.ListPagesLine, strings.Join(parts, " "))
}

// InvitedHandler renders the invitee list view: filtered by vote status,
// paginated, with vote icons resolved by name matching.
type InvitedHandler struct {
	meetings domain.MeetingRepository
	invitees domain.InviteeRepository
	votes    domain.VoteRepository
	contexts *UserContextStore
	loc      locale.Localizer
	perPage  int
	logger   domain.Logger
}

// NewInvitedHandler creates a new InvitedHandler.
func NewInvitedHandler(
	meetings domain.MeetingRepository,
	invitees domain.InviteeRepository,
	votes domain.VoteRepository,
	contexts *UserContextStore,
	loc locale.Localizer,
	perPage int,
	logger domain.Logger,
) *InvitedHandler {
	return &InvitedHandler{
		meetings: meetings,
		invitees: invitees,
		votes:    votes,
		contexts: contexts,
		loc:      loc,
		perPage:  perPage,
		logger:   logger,
	}
}

// Render builds the list reply for the user's current filter and page.
// The stored page is clamped to the real page range as a side effect.
func (h *InvitedHandler) Render(ctx context.Context, userID int64) (*Reply, error) {
	meeting, err := h.meetings.ActiveMeeting(ctx)
	if err == domain.ErrNoActiveMeeting {
		return NewReply(h.loc.MustLocalize(locale.MeetingNone)), nil
	}
	if err != nil {
		return nil, err
	}

	invitees, err := h.invitees.ListInvitees(ctx, meeting.ID)
	if err != nil {
		return nil, err
	}
	votes, err := h.votes.ListVotes(ctx, meeting.ID)
	if err != nil {
		return nil, err
	}
	domain.AttachVotes(invitees, votes)

	uc := h.contexts.Get(userID)
	filtered := domain.FilterInvitees(invitees, uc.Filter)
	pageItems, page, totalPages := domain.Paginate(filtered, uc.Page, h.perPage)
	if page != uc.Page {
		h.contexts.SetPage(userID, page)
	}

	var b strings.Builder

	switch uc.Filter {
	case domain.FilterVoted:
		b.WriteString(h.loc.MustLocalizeWithTemplate(locale.InvitedFilteredTitle,
			h.loc.MustLocalize(locale.FilterVotedLabel), meeting.DateTimeDisplay()))
	case domain.FilterNotVoted:
		b.WriteString(h.loc.MustLocalizeWithTemplate(locale.InvitedFilteredTitle,
			h.loc.MustLocalize(locale.FilterNotVotedLabel), meeting.DateTimeDisplay()))
	default:
		b.WriteString(h.loc.MustLocalizeWithTemplate(locale.InvitedTitleWithDate, meeting.DateTimeDisplay()))
	}
	b.WriteString("\n\n")

	if len(pageItems) == 0 {
		b.WriteString(h.loc.MustLocalize(locale.ListEmpty))
	} else {
		offset := (page - 1) * h.perPage
		for i, inv := range pageItems {
			b.WriteString(fmt.Sprintf("%d. %s %s — %s\n", offset+i+1, voteIcon(inv.Answer), inv.FullName, inv.Contact()))
		}
	}
	b.WriteString("\n")

	switch uc.Filter {
	case domain.FilterVoted:
		b.WriteString(h.loc.MustLocalizeWithTemplate(locale.InvitedVotedCount, fmt.Sprintf("%d", len(filtered))))
	case domain.FilterNotVoted:
		b.WriteString(h.loc.MustLocalizeWithTemplate(locale.InvitedNotVotedCount, fmt.Sprintf("%d", len(filtered))))
	default:
		b.WriteString(h.loc.MustLocalizeWithTemplate(locale.InvitedCount, fmt.Sprintf("%d", len(invitees))))
	}

	if footer := pagesFooter(h.loc, page, totalPages); footer != "" {
		b.WriteString("\n\n")
		b.WriteString(footer)
	}

	b.WriteString("\n\n")
	hints := make([]string, 0, 3)
	if uc.Filter != domain.FilterNone {
		hints = append(hints, h.loc.MustLocalize(locale.FilterHintAll))
	}
	if uc.Filter != domain.FilterVoted {
		hints = append(hints, h.loc.MustLocalize(locale.FilterHintVoted))
	}
	if uc.Filter != domain.FilterNotVoted {
		hints = append(hints, h.loc.MustLocalize(locale.FilterHintNotVoted))
	}
	b.WriteString(strings.Join(hints, "\n"))
	b.WriteString("\n")
	b.WriteString(h.loc.MustLocalize(locale.HelpHint))

	reply := NewReply(b.String())
	reply.Buttons = [][]Button{{
		{Label: h.loc.MustLocalize(locale.ButtonAdd), Data: "invited_add"},
		{Label: h.loc.MustLocalize(locale.ButtonDelete), Data: "invited_delete"},
		{Label: h.loc.MustLocalize(locale.ButtonSearch), Data: "invited_search"},
	}}
	return reply, nil
}

package bot

import (
	"context"
	"fmt"
	"strings"

	"github.com/ad/telegram-meeting-bot/internal/domain"
	"github.com/ad/telegram-meeting-bot/internal/locale"
)

// lineReasonKey maps parser diagnostic tokens to locale keys.
func lineReasonKey(reason string) string {
	switch reason {
	case domain.ReasonEmptyName:
		return locale.LineEmptyName
	case domain.ReasonNoContact:
		return locale.LineNoContact
	case domain.ReasonBadEmail:
		return locale.LineBadEmail
	default:
		return locale.LineUnrecognized
	}
}

// bulkSaveReport renders the outcome of a bulk paste: the saved counts
// plus one warning per rejected line, numbered as in the original text.
func bulkSaveReport(loc locale.Localizer, added, updated int, lines []domain.ParsedLine) string {
	var b strings.Builder
	b.WriteString(loc.MustLocalize(locale.AddSavedTitle))
	b.WriteString("\n")
	b.WriteString(loc.MustLocalizeWithTemplate(locale.AddAddedCount, fmt.Sprintf("%d", added)))
	if updated > 0 {
		b.WriteString("\n")
		b.WriteString(loc.MustLocalizeWithTemplate(locale.AddUpdatedCount, fmt.Sprintf("%d", updated)))
	}
	for _, l := range lines {
		if l.Valid {
			continue
		}
		b.WriteString("\n")
		b.WriteString(loc.MustLocalizeWithTemplate(locale.AddRejectedLine,
			fmt.Sprintf("%d", l.LineNumber),
			loc.MustLocalize(lineReasonKey(l.Reason)),
		))
	}
	return b.String()
}

// addInviteesFlow accepts a bulk "name | email | phone" paste for the
// active meeting. Valid lines commit even when others fail; with no
// valid lines at all the flow stays active and re-prompts.
type addInviteesFlow struct {
	meetingID int64
	invitees  domain.InviteeRepository
	loc       locale.Localizer
}

func (f *addInviteesFlow) Kind() string { return locale.FlowNameAddInvitee }

func (f *addInviteesFlow) RefreshesList() bool { return true }

func (f *addInviteesFlow) Prompt() *Reply {
	return NewReply(f.loc.MustLocalize(locale.AddInviteesPrompt) + "\n\n" + f.loc.MustLocalize(locale.CancelHint))
}

func (f *addInviteesFlow) HandleInput(ctx context.Context, text string) (*Reply, bool, error) {
	lines := domain.ParseInviteeList(text)
	rows := domain.ValidRows(lines)
	if len(rows) == 0 {
		return NewReply(f.loc.MustLocalize(locale.AddNoValidRows)), false, nil
	}

	added, updated, err := f.invitees.AddInvitees(ctx, f.meetingID, rows)
	if err != nil {
		return NewReply(f.loc.MustLocalize(locale.ErrorSaveFailed)), false, err
	}

	return NewReply(bulkSaveReport(f.loc, added, updated, lines)), true, nil
}

// deleteInviteeFlow removes one invitee by email.
type deleteInviteeFlow struct {
	meetingID int64
	invitees  domain.InviteeRepository
	loc       locale.Localizer
}

func (f *deleteInviteeFlow) Kind() string { return locale.FlowNameDeleteInvitee }

func (f *deleteInviteeFlow) RefreshesList() bool { return true }

func (f *deleteInviteeFlow) Prompt() *Reply {
	return NewReply(f.loc.MustLocalize(locale.DeleteInviteePrompt) + "\n\n" + f.loc.MustLocalize(locale.CancelHint))
}

func (f *deleteInviteeFlow) HandleInput(ctx context.Context, text string) (*Reply, bool, error) {
	email := strings.TrimSpace(text)
	if email == "" {
		return NewReply(f.loc.MustLocalize(locale.DeleteEmptyEmail)), false, nil
	}
	if !strings.Contains(email, "@") {
		return NewReply(f.loc.MustLocalize(locale.DeleteBadEmail)), false, nil
	}

	err := f.invitees.DeleteInvitee(ctx, f.meetingID, email)
	switch {
	case err == nil:
		return NewReply(f.loc.MustLocalize(locale.DeleteInviteeDone)), true, nil
	case err == domain.ErrNotFound:
		return NewReply(f.loc.MustLocalize(locale.DeleteNotFound)), true, nil
	default:
		return NewReply(f.loc.MustLocalize(locale.ErrorSaveFailed)), false, err
	}
}

// searchInviteesFlow finds invitees by name or email substring. Matches
// carry the same vote icons as the list view.
type searchInviteesFlow struct {
	meetingID int64
	invitees  domain.InviteeRepository
	votes     domain.VoteRepository
	loc       locale.Localizer
}

func (f *searchInviteesFlow) Kind() string { return locale.FlowNameSearchInvitee }

func (f *searchInviteesFlow) Prompt() *Reply {
	return NewReply(f.loc.MustLocalize(locale.SearchPrompt) + "\n\n" + f.loc.MustLocalize(locale.CancelHint))
}

func (f *searchInviteesFlow) HandleInput(ctx context.Context, text string) (*Reply, bool, error) {
	query := strings.TrimSpace(text)
	if query == "" {
		return NewReply(f.loc.MustLocalize(locale.SearchEmptyQuery)), false, nil
	}

	found, err := f.invitees.SearchInvitees(ctx, f.meetingID, query)
	if err != nil {
		return NewReply(f.loc.MustLocalize(locale.ErrorGeneric)), true, err
	}
	if len(found) == 0 {
		return NewReply(f.loc.MustLocalizeWithTemplate(locale.SearchNoResults, query)), true, nil
	}

	votes, err := f.votes.ListVotes(ctx, f.meetingID)
	if err != nil {
		return NewReply(f.loc.MustLocalize(locale.ErrorGeneric)), true, err
	}
	domain.AttachVotes(found, votes)

	var b strings.Builder
	b.WriteString(f.loc.MustLocalizeWithTemplate(locale.SearchResultsTitle, fmt.Sprintf("%d", len(found))))
	for i, inv := range found {
		b.WriteString(fmt.Sprintf("\n%d. %s %s — %s", i+1, voteIcon(inv.Answer), inv.FullName, inv.Contact()))
	}
	return NewReply(b.String()), true, nil
}

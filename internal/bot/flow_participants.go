package bot

import (
	"context"
	"fmt"
	"strings"

	"github.com/ad/telegram-meeting-bot/internal/domain"
	"github.com/ad/telegram-meeting-bot/internal/locale"
)

// addParticipantsFlow accepts a bulk paste into the permanent
// participant list. Rows are upserted one by one so a later failure
// keeps the rows already saved.
type addParticipantsFlow struct {
	participants domain.ParticipantRepository
	loc          locale.Localizer
}

func (f *addParticipantsFlow) Kind() string { return locale.FlowNameAddParticipant }

func (f *addParticipantsFlow) RefreshesList() bool { return true }

func (f *addParticipantsFlow) Prompt() *Reply {
	return NewReply(f.loc.MustLocalize(locale.AddParticipantsPrompt) + "\n\n" + f.loc.MustLocalize(locale.CancelHint))
}

func (f *addParticipantsFlow) HandleInput(ctx context.Context, text string) (*Reply, bool, error) {
	lines := domain.ParseInviteeList(text)
	rows := domain.ValidRows(lines)
	if len(rows) == 0 {
		return NewReply(f.loc.MustLocalize(locale.AddNoValidRows)), false, nil
	}

	var added, updated int
	for _, row := range rows {
		isNew, err := f.participants.SaveParticipant(ctx, &domain.Participant{
			FullName: row.FullName,
			Email:    row.Email,
			Phone:    row.Phone,
		})
		if err != nil {
			return NewReply(f.loc.MustLocalize(locale.ErrorSaveFailed)), false, err
		}
		if isNew {
			added++
		} else {
			updated++
		}
	}

	return NewReply(bulkSaveReport(f.loc, added, updated, lines)), true, nil
}

// deleteParticipantFlow removes one participant by email.
type deleteParticipantFlow struct {
	participants domain.ParticipantRepository
	loc          locale.Localizer
}

func (f *deleteParticipantFlow) Kind() string { return locale.FlowNameDeleteParticipant }

func (f *deleteParticipantFlow) RefreshesList() bool { return true }

func (f *deleteParticipantFlow) Prompt() *Reply {
	return NewReply(f.loc.MustLocalize(locale.DeleteParticipantPrompt) + "\n\n" + f.loc.MustLocalize(locale.CancelHint))
}

func (f *deleteParticipantFlow) HandleInput(ctx context.Context, text string) (*Reply, bool, error) {
	email := strings.TrimSpace(text)
	if email == "" {
		return NewReply(f.loc.MustLocalize(locale.DeleteEmptyEmail)), false, nil
	}
	if !strings.Contains(email, "@") {
		return NewReply(f.loc.MustLocalize(locale.DeleteBadEmail)), false, nil
	}

	err := f.participants.DeleteParticipant(ctx, email)
	switch {
	case err == nil:
		return NewReply(f.loc.MustLocalize(locale.DeleteParticipantDone)), true, nil
	case err == domain.ErrNotFound:
		return NewReply(f.loc.MustLocalize(locale.DeleteNotFound)), true, nil
	default:
		return NewReply(f.loc.MustLocalize(locale.ErrorSaveFailed)), false, err
	}
}

// searchParticipantsFlow finds participants by name or email substring.
type searchParticipantsFlow struct {
	participants domain.ParticipantRepository
	loc          locale.Localizer
}

func (f *searchParticipantsFlow) Kind() string { return locale.FlowNameSearchParticipant }

func (f *searchParticipantsFlow) Prompt() *Reply {
	return NewReply(f.loc.MustLocalize(locale.SearchPrompt) + "\n\n" + f.loc.MustLocalize(locale.CancelHint))
}

func (f *searchParticipantsFlow) HandleInput(ctx context.Context, text string) (*Reply, bool, error) {
	query := strings.TrimSpace(text)
	if query == "" {
		return NewReply(f.loc.MustLocalize(locale.SearchEmptyQuery)), false, nil
	}

	found, err := f.participants.SearchParticipants(ctx, query)
	if err != nil {
		return NewReply(f.loc.MustLocalize(locale.ErrorGeneric)), true, err
	}
	if len(found) == 0 {
		return NewReply(f.loc.MustLocalizeWithTemplate(locale.SearchNoResults, query)), true, nil
	}

	var b strings.Builder
	b.WriteString(f.loc.MustLocalizeWithTemplate(locale.SearchResultsTitle, fmt.Sprintf("%d", len(found))))
	for i, p := range found {
		b.WriteString(fmt.Sprintf("\n%d. %s — %s", i+1, p.FullName, p.Contact()))
	}
	return NewReply(b.String()), true, nil
}

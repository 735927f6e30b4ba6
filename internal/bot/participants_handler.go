package bot

import (
	"context"
	"fmt"
	"strings"

	"github.com/ad/telegram-meeting-bot/internal/domain"
	"github.com/ad/telegram-meeting-bot/internal/locale"
)

// ParticipantsHandler renders the permanent participant list view.
type ParticipantsHandler struct {
	participants domain.ParticipantRepository
	contexts     *UserContextStore
	loc          locale.Localizer
	perPage      int
	logger       domain.Logger
}

// NewParticipantsHandler creates a new ParticipantsHandler.
func NewParticipantsHandler(
	participants domain.ParticipantRepository,
	contexts *UserContextStore,
	loc locale.Localizer,
	perPage int,
	logger domain.Logger,
) *ParticipantsHandler {
	return &ParticipantsHandler{
		participants: participants,
		contexts:     contexts,
		loc:          loc,
		perPage:      perPage,
		logger:       logger,
	}
}

// Render builds the list reply for the user's current page, clamping the
// stored page to the real range.
func (h *ParticipantsHandler) Render(ctx context.Context, userID int64) (*Reply, error) {
	participants, err := h.participants.ListParticipants(ctx)
	if err != nil {
		return nil, err
	}

	uc := h.contexts.Get(userID)
	pageItems, page, totalPages := domain.Paginate(participants, uc.Page, h.perPage)
	if page != uc.Page {
		h.contexts.SetPage(userID, page)
	}

	var b strings.Builder
	b.WriteString(h.loc.MustLocalize(locale.ParticipantsTitle))
	b.WriteString("\n\n")

	if len(pageItems) == 0 {
		b.WriteString(h.loc.MustLocalize(locale.ListEmpty))
	} else {
		offset := (page - 1) * h.perPage
		for i, p := range pageItems {
			b.WriteString(fmt.Sprintf("%d. %s — %s\n", offset+i+1, p.FullName, p.Contact()))
		}
	}
	b.WriteString("\n")
	b.WriteString(h.loc.MustLocalizeWithTemplate(locale.ParticipantsCount, fmt.Sprintf("%d", len(participants))))

	if footer := pagesFooter(h.loc, page, totalPages); footer != "" {
		b.WriteString("\n\n")
		b.WriteString(footer)
	}

	b.WriteString("\n\n")
	b.WriteString(h.loc.MustLocalize(locale.HelpHint))

	reply := NewReply(b.String())
	reply.Buttons = [][]Button{{
		{Label: h.loc.MustLocalize(locale.ButtonAdd), Data: "participants_add"},
		{Label: h.loc.MustLocalize(locale.ButtonDelete), Data: "participants_delete"},
		{Label: h.loc.MustLocalize(locale.ButtonSearch), Data: "participants_search"},
	}}
	return reply, nil
}

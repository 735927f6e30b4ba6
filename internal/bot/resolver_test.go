package bot

import (
	"testing"

	"github.com/ad/telegram-meeting-bot/internal/domain"
	"github.com/ad/telegram-meeting-bot/internal/logger"
)

func newTestResolver() (*CommandResolver, *UserContextStore) {
	contexts := NewUserContextStore()
	return NewCommandResolver(contexts, logger.New(logger.ERROR)), contexts
}

func TestResolveKeywords(t *testing.T) {
	r, contexts := newTestResolver()

	cases := []struct {
		text     string
		wantID   CommandID
		wantView View
	}{
		{"/invited", CmdInvited, ViewInvited},
		{"/voted", CmdVoted, ViewInvited},
		{"/not_voted", CmdNotVoted, ViewInvited},
		{"/participants", CmdParticipants, ViewParticipants},
	}

	for _, tc := range cases {
		cmd := r.Resolve(1, tc.text)
		if cmd.ID != tc.wantID {
			t.Fatalf("Resolve(%q) = %v, want %v", tc.text, cmd.ID, tc.wantID)
		}
		uc := contexts.Get(1)
		if uc.View != tc.wantView {
			t.Fatalf("after %q view = %v, want %v", tc.text, uc.View, tc.wantView)
		}
		if uc.Page != 1 {
			t.Fatalf("after %q page = %d, want 1", tc.text, uc.Page)
		}
	}
}

func TestResolveFilterSurvivesParticipantsSwitch(t *testing.T) {
	r, contexts := newTestResolver()

	r.Resolve(1, "/voted")
	r.Resolve(1, "/participants")
	// Filter is an invited-view concern; switching views leaves it alone
	if got := contexts.Get(1).Filter; got != domain.FilterVoted {
		t.Fatalf("filter after view switch = %v, want voted", got)
	}

	r.Resolve(1, "/all")
	if got := contexts.Get(1).Filter; got != domain.FilterNone {
		t.Fatalf("filter after /all = %v, want none", got)
	}
	// /all keeps the current view
	if got := contexts.Get(1).View; got != ViewParticipants {
		t.Fatalf("view after /all = %v, want participants", got)
	}
}

func TestResolvePageSuffix(t *testing.T) {
	r, contexts := newTestResolver()

	cmd := r.Resolve(1, "/participants3")
	if cmd.ID != CmdParticipants || cmd.Page != 3 {
		t.Fatalf("Resolve(/participants3) = %+v", cmd)
	}
	uc := contexts.Get(1)
	if uc.View != ViewParticipants || uc.Page != 3 {
		t.Fatalf("context after /participants3 = %+v", uc)
	}

	cmd = r.Resolve(1, "/invited2")
	if cmd.ID != CmdInvited || cmd.Page != 2 {
		t.Fatalf("Resolve(/invited2) = %+v", cmd)
	}
	uc = contexts.Get(1)
	if uc.View != ViewInvited || uc.Page != 2 || uc.Filter != domain.FilterNone {
		t.Fatalf("context after /invited2 = %+v", uc)
	}
}

func TestResolveBareDigitsAgainstActiveView(t *testing.T) {
	r, contexts := newTestResolver()

	r.Resolve(1, "/invited")
	cmd := r.Resolve(1, "/5")
	if cmd.ID != CmdPage || cmd.Page != 5 {
		t.Fatalf("Resolve(/5) = %+v", cmd)
	}
	if uc := contexts.Get(1); uc.View != ViewInvited || uc.Page != 5 {
		t.Fatalf("context after /5 in invited view = %+v", uc)
	}

	r.Resolve(1, "/participants")
	cmd = r.Resolve(1, "2")
	if cmd.ID != CmdPage || cmd.Page != 2 {
		t.Fatalf("Resolve(2) = %+v", cmd)
	}
	if uc := contexts.Get(1); uc.View != ViewParticipants || uc.Page != 2 {
		t.Fatalf("context after 2 in participants view = %+v", uc)
	}
}

func TestResolveUnknown(t *testing.T) {
	r, _ := newTestResolver()

	for _, text := range []string{"", "привет", "/nonexistent", "/invitedX", "5x"} {
		if cmd := r.Resolve(1, text); cmd.ID != CmdUnknown {
			t.Fatalf("Resolve(%q) = %v, want CmdUnknown", text, cmd.ID)
		}
	}
}

func TestResolveBotNameSuffix(t *testing.T) {
	r, _ := newTestResolver()

	if cmd := r.Resolve(1, "/help@meeting_bot"); cmd.ID != CmdHelp {
		t.Fatalf("Resolve with bot suffix = %v, want CmdHelp", cmd.ID)
	}
	if cmd := r.Resolve(1, "/HELP"); cmd.ID != CmdHelp {
		t.Fatalf("Resolve with upper case = %v, want CmdHelp", cmd.ID)
	}
}

func TestUserContextIsolation(t *testing.T) {
	r, contexts := newTestResolver()

	r.Resolve(1, "/voted")
	r.Resolve(2, "/participants")

	if uc := contexts.Get(1); uc.View != ViewInvited || uc.Filter != domain.FilterVoted {
		t.Fatalf("user 1 context = %+v", uc)
	}
	if uc := contexts.Get(2); uc.View != ViewParticipants {
		t.Fatalf("user 2 context = %+v", uc)
	}
}

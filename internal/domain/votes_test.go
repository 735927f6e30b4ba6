package domain

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func TestAttachVotesByName(t *testing.T) {
	invitees := []*Invitee{
		{FullName: "Иванов Иван Иванович", Email: "ivanov@mail.ru"},
		{FullName: "Петров Пётр", Email: "petrov@mail.ru"},
		{FullName: "Сидорова Анна", Email: "sidorova@mail.ru"},
	}
	votes := []*Vote{
		{UserID: 1, FullName: "иванов  иван  иванович", Answer: VoteYes},
		{UserID: 2, FullName: "Петров Пётр", Answer: VoteNo},
	}

	AttachVotes(invitees, votes)

	if invitees[0].Answer != VoteYes {
		t.Errorf("expected yes for normalized name match, got %q", invitees[0].Answer)
	}
	if invitees[1].Answer != VoteNo {
		t.Errorf("expected no for exact name match, got %q", invitees[1].Answer)
	}
	if invitees[2].Answer != VoteNone {
		t.Errorf("expected no answer for non-voter, got %q", invitees[2].Answer)
	}
}

func TestAttachVotesPartialName(t *testing.T) {
	invitees := []*Invitee{
		{FullName: "Иванов Иван", Email: "ivanov@mail.ru"},
	}
	votes := []*Vote{
		{UserID: 1, FullName: "Иванов Иван Иванович", Answer: VoteYes},
	}

	AttachVotes(invitees, votes)

	if invitees[0].Answer != VoteYes {
		t.Errorf("expected partial name to match, got %q", invitees[0].Answer)
	}
}

func TestAttachVotesByUsernameEmailLocalPart(t *testing.T) {
	invitees := []*Invitee{
		{FullName: "Совсем Другое Имя", Email: "ivanov@mail.ru"},
	}
	votes := []*Vote{
		{UserID: 1, Username: "@ivanov", FullName: "Vanya", Answer: VoteNo},
	}

	AttachVotes(invitees, votes)

	if invitees[0].Answer != VoteNo {
		t.Errorf("expected username to match email local part, got %q", invitees[0].Answer)
	}
}

func TestProperty_FilterPartition(t *testing.T) {
	properties := gopter.NewProperties(gopter.DefaultTestParameters())

	properties.Property("voted and not-voted filters partition the list", prop.ForAll(
		func(answers []int8) bool {
			invitees := make([]*Invitee, len(answers))
			for i, a := range answers {
				inv := &Invitee{FullName: "x"}
				switch a % 3 {
				case 1:
					inv.Answer = VoteYes
				case 2:
					inv.Answer = VoteNo
				}
				invitees[i] = inv
			}

			voted := FilterInvitees(invitees, FilterVoted)
			notVoted := FilterInvitees(invitees, FilterNotVoted)
			all := FilterInvitees(invitees, FilterNone)

			if len(voted)+len(notVoted) != len(invitees) || len(all) != len(invitees) {
				return false
			}
			for _, inv := range voted {
				if inv.Answer == VoteNone {
					return false
				}
			}
			for _, inv := range notVoted {
				if inv.Answer != VoteNone {
					return false
				}
			}
			return true
		},
		gen.SliceOf(gen.Int8Range(0, 2)),
	))

	properties.TestingRun(t)
}

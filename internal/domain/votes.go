package domain

import "strings"

// NormalizeFullName collapses whitespace and case for name matching.
func NormalizeFullName(name string) string {
	return strings.ToLower(strings.Join(strings.Fields(name), " "))
}

// AttachVotes fills Invitee.Answer by matching votes against invitee
// rows. A vote matches by the voter's full name (normalized, with a
// substring fallback for partial names) or by the email local part
// matching the voter's username. Chat events carry no email, so name
// matching is the primary link.
func AttachVotes(invitees []*Invitee, votes []*Vote) {
	if len(invitees) == 0 || len(votes) == 0 {
		return
	}

	byName := make(map[string]VoteAnswer, len(votes))
	byUsername := make(map[string]VoteAnswer, len(votes))
	for _, v := range votes {
		if n := NormalizeFullName(v.FullName); n != "" {
			byName[n] = v.Answer
		}
		if u := strings.ToLower(strings.TrimPrefix(v.Username, "@")); u != "" {
			byUsername[u] = v.Answer
		}
	}

	for _, inv := range invitees {
		name := NormalizeFullName(inv.FullName)
		if answer, ok := byName[name]; ok {
			inv.Answer = answer
			continue
		}
		local := emailLocalPart(inv.Email)
		if answer, ok := byUsername[local]; ok && local != "" {
			inv.Answer = answer
			continue
		}
		// Partial name: "Иванов Иван" should match "Иванов Иван Иванович".
		if name != "" {
			for votedName, answer := range byName {
				if strings.Contains(votedName, name) || strings.Contains(name, votedName) {
					inv.Answer = answer
					break
				}
			}
		}
	}
}

// FilterInvitees partitions the list by vote status. FilterNone returns
// the input unchanged.
func FilterInvitees(invitees []*Invitee, filter VoteFilter) []*Invitee {
	if filter == FilterNone {
		return invitees
	}
	out := make([]*Invitee, 0, len(invitees))
	for _, inv := range invitees {
		voted := inv.Answer != VoteNone
		if (filter == FilterVoted) == voted {
			out = append(out, inv)
		}
	}
	return out
}

func emailLocalPart(email string) string {
	email = strings.ToLower(strings.TrimSpace(email))
	if at := strings.IndexByte(email, '@'); at > 0 {
		return email[:at]
	}
	return ""
}

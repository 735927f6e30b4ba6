package bot

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ad/telegram-meeting-bot/internal/domain"
	"github.com/ad/telegram-meeting-bot/internal/locale"
)

type meetingFlowMode int

const (
	meetingCreate meetingFlowMode = iota
	meetingEdit
	meetingReschedule
)

type meetingStep int

const (
	stepTopic meetingStep = iota
	stepDate
	stepTime
	stepPlace
	stepLink
)

// Field limits for free-text meeting fields.
const (
	maxTopicLen = 200
	maxPlaceLen = 200
	maxLinkLen  = 500
)

// meetingFlow drives the create, edit and reschedule dialogs over the
// same step sequence. Rescheduling only asks for the new date and time;
// the rest of the draft is copied from the meeting being moved.
type meetingFlow struct {
	mode     meetingFlowMode
	step     meetingStep
	draft    domain.Meeting
	oldID    int64
	meetings domain.MeetingRepository
	loc      locale.Localizer
	now      func() time.Time
}

func newCreateMeetingFlow(meetings domain.MeetingRepository, loc locale.Localizer, now func() time.Time, createdBy int64) *meetingFlow {
	return &meetingFlow{
		mode:     meetingCreate,
		step:     stepTopic,
		draft:    domain.Meeting{CreatedBy: createdBy},
		meetings: meetings,
		loc:      loc,
		now:      now,
	}
}

func newEditMeetingFlow(meetings domain.MeetingRepository, loc locale.Localizer, now func() time.Time, current *domain.Meeting) *meetingFlow {
	return &meetingFlow{
		mode:     meetingEdit,
		step:     stepTopic,
		draft:    *current,
		meetings: meetings,
		loc:      loc,
		now:      now,
	}
}

func newRescheduleMeetingFlow(meetings domain.MeetingRepository, loc locale.Localizer, now func() time.Time, current *domain.Meeting, movedBy int64) *meetingFlow {
	draft := *current
	draft.ID = 0
	draft.CreatedBy = movedBy
	draft.CreatedAt = time.Time{}
	return &meetingFlow{
		mode:     meetingReschedule,
		step:     stepDate,
		draft:    draft,
		oldID:    current.ID,
		meetings: meetings,
		loc:      loc,
		now:      now,
	}
}

func (f *meetingFlow) Kind() string {
	switch f.mode {
	case meetingEdit:
		return locale.FlowNameEditMeeting
	case meetingReschedule:
		return locale.FlowNameRescheduleMeeting
	default:
		return locale.FlowNameCreateMeeting
	}
}

func (f *meetingFlow) Prompt() *Reply {
	var title string
	switch f.mode {
	case meetingEdit:
		title = f.loc.MustLocalize(locale.MeetingEditTitle)
	case meetingReschedule:
		title = f.loc.MustLocalize(locale.MeetingMoveTitle)
	default:
		title = f.loc.MustLocalize(locale.MeetingCreateTitle)
	}
	return NewReply(title + "\n\n" + f.stepText())
}

// stepText renders the label and hint of the current step.
func (f *meetingFlow) stepText() string {
	var label, hint string
	switch f.step {
	case stepTopic:
		label, hint = locale.StepTopicLabel, locale.StepTopicHint
	case stepDate:
		label, hint = locale.StepDateLabel, locale.StepDateHint
	case stepTime:
		label, hint = locale.StepTimeLabel, locale.StepTimeHint
	case stepPlace:
		label, hint = locale.StepPlaceLabel, locale.StepPlaceHint
	case stepLink:
		label, hint = locale.StepLinkLabel, locale.StepLinkHint
	}

	text := f.loc.MustLocalize(label) + "\n" + f.loc.MustLocalize(hint)
	if f.step == stepPlace || f.step == stepLink {
		text += "\n" + f.loc.MustLocalize(locale.SkipHint)
	}
	return text + "\n" + f.loc.MustLocalize(locale.CancelHint)
}

func (f *meetingFlow) HandleInput(ctx context.Context, text string) (*Reply, bool, error) {
	value := strings.TrimSpace(text)

	switch f.step {
	case stepTopic:
		if value == "" {
			return NewReply(f.loc.MustLocalize(locale.ErrTopicEmpty)), false, nil
		}
		if len([]rune(value)) > maxTopicLen {
			return NewReply(f.loc.MustLocalizeWithTemplate(locale.ErrTopicTooLong, fmt.Sprintf("%d", maxTopicLen))), false, nil
		}
		f.draft.Topic = value
		f.step = stepDate

	case stepDate:
		normalized, reason := domain.ValidateMeetingDate(value, f.now())
		if reason != "" {
			return NewReply(f.loc.MustLocalize(dateReasonKey(reason))), false, nil
		}
		f.draft.Date = normalized
		f.step = stepTime

	case stepTime:
		normalized, reason := domain.ValidateMeetingTime(value)
		if reason != "" {
			return NewReply(f.loc.MustLocalize(timeReasonKey(reason))), false, nil
		}
		f.draft.Time = normalized
		if f.mode == meetingReschedule {
			return f.finish(ctx)
		}
		f.step = stepPlace

	case stepPlace:
		if len([]rune(value)) > maxPlaceLen {
			return NewReply(f.loc.MustLocalizeWithTemplate(locale.ErrPlaceTooLong, fmt.Sprintf("%d", maxPlaceLen))), false, nil
		}
		f.draft.Place = value
		f.step = stepLink

	case stepLink:
		if len([]rune(value)) > maxLinkLen {
			return NewReply(f.loc.MustLocalizeWithTemplate(locale.ErrLinkTooLong, fmt.Sprintf("%d", maxLinkLen))), false, nil
		}
		f.draft.Link = value
		return f.finish(ctx)
	}

	return NewReply(f.stepText()), false, nil
}

// Skip advances past an optional field. On required steps it only
// reminds the user that /skip does not apply.
func (f *meetingFlow) Skip(ctx context.Context) (*Reply, bool, error) {
	switch f.step {
	case stepPlace:
		f.draft.Place = ""
		f.step = stepLink
		return NewReply(f.stepText()), false, nil
	case stepLink:
		f.draft.Link = ""
		return f.finish(ctx)
	default:
		return NewReply(f.loc.MustLocalize(locale.SkipOnlyOptional)), false, nil
	}
}

func (f *meetingFlow) finish(ctx context.Context) (*Reply, bool, error) {
	switch f.mode {
	case meetingEdit:
		if err := f.meetings.UpdateMeeting(ctx, &f.draft); err != nil {
			return NewReply(f.loc.MustLocalize(locale.ErrorSaveFailed)), false, err
		}
		text := f.loc.MustLocalize(locale.MeetingUpdatedTitle) + "\n\n" + f.summary() +
			"\n\n" + f.loc.MustLocalize(locale.MeetingSeeInvitedHint)
		return NewReply(text), true, nil

	case meetingReschedule:
		moved, err := f.meetings.RescheduleMeeting(ctx, f.oldID, &f.draft)
		if err != nil {
			return NewReply(f.loc.MustLocalize(locale.ErrorSaveFailed)), false, err
		}
		text := f.loc.MustLocalize(locale.MeetingUpdatedTitle) + "\n\n" + f.summary()
		if moved > 0 {
			text += "\n\n" + f.loc.MustLocalizeWithTemplate(locale.MeetingMovedInvitees, fmt.Sprintf("%d", moved))
		}
		text += "\n\n" + f.loc.MustLocalize(locale.MeetingSeeInvitedHint)
		return NewReply(text), true, nil

	default:
		if err := f.meetings.CreateMeeting(ctx, &f.draft); err != nil {
			return NewReply(f.loc.MustLocalize(locale.ErrorSaveFailed)), false, err
		}
		text := f.loc.MustLocalize(locale.MeetingCreatedTitle) + "\n\n" + f.summary() +
			"\n\n" + f.loc.MustLocalize(locale.MeetingSeeInvitedHint)
		return NewReply(text), true, nil
	}
}

// summary renders the draft's field lines, skipping empty optionals.
func (f *meetingFlow) summary() string {
	lines := []string{
		f.loc.MustLocalize(locale.MeetingDataTitle),
		f.loc.MustLocalizeWithTemplate(locale.MeetingTopicLine, f.draft.Topic),
		f.loc.MustLocalizeWithTemplate(locale.MeetingWhenLine, f.draft.Date, f.draft.Time),
	}
	if f.draft.Place != "" {
		lines = append(lines, f.loc.MustLocalizeWithTemplate(locale.MeetingPlaceLine, f.draft.Place))
	}
	if f.draft.Link != "" {
		lines = append(lines, f.loc.MustLocalizeWithTemplate(locale.MeetingLinkLine, f.draft.Link))
	}
	return strings.Join(lines, "\n")
}

func dateReasonKey(reason string) string {
	switch reason {
	case domain.ReasonEmptyValue:
		return locale.ErrValueEmpty
	case domain.ReasonDateInPast:
		return locale.ErrDateInPast
	case domain.ReasonDateTooFar:
		return locale.ErrDateTooFar
	default:
		return locale.ErrDateFormat
	}
}

func timeReasonKey(reason string) string {
	switch reason {
	case domain.ReasonEmptyValue:
		return locale.ErrValueEmpty
	case domain.ReasonBadHours:
		return locale.ErrTimeHours
	case domain.ReasonBadMinutes:
		return locale.ErrTimeMinutes
	default:
		return locale.ErrTimeFormat
	}
}

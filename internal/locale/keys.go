package locale

// Message key constants for localization
// All user-facing messages should use these constants to ensure consistency

const (
	// Greeting and help
	Greeting          = "Greeting"
	GreetingAnonymous = "GreetingAnonymous"
	HelpTitle         = "HelpTitle"
	HelpCommands      = "HelpCommands"
	HelpOrganizer     = "HelpOrganizer"

	// Generic errors
	ErrorGeneric      = "ErrorGeneric"
	ErrorNotPermitted = "ErrorNotPermitted"
	ErrorSaveFailed   = "ErrorSaveFailed"

	// Meeting info
	MeetingNone        = "MeetingNone"
	MeetingNoneForUser = "MeetingNoneForUser"
	MeetingTopicLine   = "MeetingTopicLine"
	MeetingWhenLine    = "MeetingWhenLine"
	MeetingPlaceLine   = "MeetingPlaceLine"
	MeetingLinkLine    = "MeetingLinkLine"

	// Meeting menu
	MeetingMenuTitle      = "MeetingMenuTitle"
	MeetingMenuCreate     = "MeetingMenuCreate"
	MeetingMenuEdit       = "MeetingMenuEdit"
	MeetingMenuReschedule = "MeetingMenuReschedule"

	// Attendance voting
	AttendanceQuestion = "AttendanceQuestion"
	VoteYesButton      = "VoteYesButton"
	VoteNoButton       = "VoteNoButton"
	VoteYesAnswer      = "VoteYesAnswer"
	VoteNoAnswer       = "VoteNoAnswer"
	VoteSaved          = "VoteSaved"
	VoteSaveError      = "VoteSaveError"

	// Invitee list
	InvitedTitleWithDate = "InvitedTitleWithDate"
	InvitedFilteredTitle = "InvitedFilteredTitle"
	FilterVotedLabel     = "FilterVotedLabel"
	FilterNotVotedLabel  = "FilterNotVotedLabel"
	InvitedCount         = "InvitedCount"
	InvitedVotedCount    = "InvitedVotedCount"
	InvitedNotVotedCount = "InvitedNotVotedCount"
	ListEmpty            = "ListEmpty"
	ListPagesLine        = "ListPagesLine"
	FilterHintAll        = "FilterHintAll"
	FilterHintVoted      = "FilterHintVoted"
	FilterHintNotVoted   = "FilterHintNotVoted"
	HelpHint             = "HelpHint"

	// Participant list
	ParticipantsTitle = "ParticipantsTitle"
	ParticipantsCount = "ParticipantsCount"

	// List action buttons
	ButtonAdd    = "ButtonAdd"
	ButtonDelete = "ButtonDelete"
	ButtonSearch = "ButtonSearch"

	// Flow lifecycle
	FlowConflict     = "FlowConflict"
	FlowCancelled    = "FlowCancelled"
	FlowNoneToCancel = "FlowNoneToCancel"
	CancelHint       = "CancelHint"
	SkipHint         = "SkipHint"
	SkipOnlyOptional = "SkipOnlyOptional"

	// Flow display names
	FlowNameAddInvitee        = "FlowNameAddInvitee"
	FlowNameDeleteInvitee     = "FlowNameDeleteInvitee"
	FlowNameSearchInvitee     = "FlowNameSearchInvitee"
	FlowNameAddParticipant    = "FlowNameAddParticipant"
	FlowNameDeleteParticipant = "FlowNameDeleteParticipant"
	FlowNameSearchParticipant = "FlowNameSearchParticipant"
	FlowNameCreateMeeting     = "FlowNameCreateMeeting"
	FlowNameEditMeeting       = "FlowNameEditMeeting"
	FlowNameRescheduleMeeting = "FlowNameRescheduleMeeting"

	// Bulk add flows
	AddInviteesPrompt     = "AddInviteesPrompt"
	AddParticipantsPrompt = "AddParticipantsPrompt"
	AddSavedTitle         = "AddSavedTitle"
	AddAddedCount         = "AddAddedCount"
	AddUpdatedCount       = "AddUpdatedCount"
	AddNoValidRows        = "AddNoValidRows"
	AddRejectedLine       = "AddRejectedLine"

	// Per-line parse diagnostics
	LineUnrecognized = "LineUnrecognized"
	LineEmptyName    = "LineEmptyName"
	LineNoContact    = "LineNoContact"
	LineBadEmail     = "LineBadEmail"

	// Delete flows
	DeleteInviteePrompt     = "DeleteInviteePrompt"
	DeleteParticipantPrompt = "DeleteParticipantPrompt"
	DeleteEmptyEmail        = "DeleteEmptyEmail"
	DeleteBadEmail          = "DeleteBadEmail"
	DeleteInviteeDone       = "DeleteInviteeDone"
	DeleteParticipantDone   = "DeleteParticipantDone"
	DeleteNotFound          = "DeleteNotFound"

	// Search flows
	SearchPrompt       = "SearchPrompt"
	SearchEmptyQuery   = "SearchEmptyQuery"
	SearchNoResults    = "SearchNoResults"
	SearchResultsTitle = "SearchResultsTitle"

	// Meeting flows
	MeetingCreateTitle    = "MeetingCreateTitle"
	MeetingEditTitle      = "MeetingEditTitle"
	MeetingMoveTitle      = "MeetingMoveTitle"
	MeetingDataTitle      = "MeetingDataTitle"
	MeetingCreatedTitle   = "MeetingCreatedTitle"
	MeetingUpdatedTitle   = "MeetingUpdatedTitle"
	MeetingMovedInvitees  = "MeetingMovedInvitees"
	MeetingSeeInvitedHint = "MeetingSeeInvitedHint"

	// Meeting flow steps
	StepTopicLabel = "StepTopicLabel"
	StepTopicHint  = "StepTopicHint"
	StepDateLabel  = "StepDateLabel"
	StepDateHint   = "StepDateHint"
	StepTimeLabel  = "StepTimeLabel"
	StepTimeHint   = "StepTimeHint"
	StepPlaceLabel = "StepPlaceLabel"
	StepPlaceHint  = "StepPlaceHint"
	StepLinkLabel  = "StepLinkLabel"
	StepLinkHint   = "StepLinkHint"

	// Meeting field validation
	ErrTopicEmpty   = "ErrTopicEmpty"
	ErrTopicTooLong = "ErrTopicTooLong"
	ErrPlaceTooLong = "ErrPlaceTooLong"
	ErrLinkTooLong  = "ErrLinkTooLong"
	ErrValueEmpty   = "ErrValueEmpty"
	ErrDateFormat   = "ErrDateFormat"
	ErrDateInPast   = "ErrDateInPast"
	ErrDateTooFar   = "ErrDateTooFar"
	ErrTimeFormat   = "ErrTimeFormat"
	ErrTimeHours    = "ErrTimeHours"
	ErrTimeMinutes  = "ErrTimeMinutes"
)

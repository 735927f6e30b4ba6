package bot

// EventKind distinguishes plain messages from inline button presses.
type EventKind int

const (
	EventMessage EventKind = iota
	EventCallback
)

// Event is one normalized incoming chat event. The transport adapter
// builds these from Telegram updates; tests build them directly.
type Event struct {
	Kind     EventKind
	SenderID int64
	ChatID   int64
	Text     string // message text
	Data     string // callback data
	Username string
	FullName string
}

// Button is one inline keyboard button.
type Button struct {
	Label string
	Data  string
}

// Reply is one outgoing message with an optional inline keyboard.
type Reply struct {
	Text    string
	Buttons [][]Button
}

// NewReply builds a text-only reply.
func NewReply(text string) *Reply {
	return &Reply{Text: text}
}

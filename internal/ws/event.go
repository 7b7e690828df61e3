package ws

// Event types carried on the wire and through the hub.
const (
	EventTypeChatMessage = "chat_message"
	EventTypeError       = "error"
)

// InEvent is the only inbound frame: {"message": string}. Message is a
// pointer so a missing key can be told apart from an empty string.
type InEvent struct {
	Message *string `json:"message"`
}

// ChatMessageEvent is the outbound chat frame, delivered verbatim to every
// member of the channel's room, sender included.
type ChatMessageEvent struct {
	Message string `json:"message"`
	Author  string `json:"author"`
}

// ErrorEvent is sent back to a single client when its own frame could not
// be processed. Other members of the room never see it.
type ErrorEvent struct {
	Type  string `json:"type"`
	Error string `json:"error"`
}

func NewErrorEvent(message string) ErrorEvent {
	return ErrorEvent{Type: EventTypeError, Error: message}
}

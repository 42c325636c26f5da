package chat

// Role identifies who authored a message.
type Role string

const (
	RoleUser Role = "user"
	RoleBot  Role = "bot"
)

// Message is one entry in the conversation. Messages are never mutated
// after they are appended.
type Message struct {
	Role Role
	Text string
}

const (
	Greeting      = "Hi there! How can I assist you today?"
	FallbackReply = "No response from server."
	ErrorReply    = "Error connecting to server."
)

func UserMessage(text string) Message { return Message{Role: RoleUser, Text: text} }
func BotMessage(text string) Message  { return Message{Role: RoleBot, Text: text} }

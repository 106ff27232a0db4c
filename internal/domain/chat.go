package domain

import "time"

// Message roles in a conversation transcript
const (
	RoleUser = "user"
	RoleAI   = "ai"
)

// CardWidget is the structured recommendation unit rendered inside a chat
// transcript alongside free text.
type CardWidget struct {
	Card       Card     `json:"card"`
	MatchScore int      `json:"matchScore"`
	Reasons    []string `json:"reasons"`
}

// Message is a single transcript entry: user input, advisor text, or a card
// widget attached to an advisor message.
type Message struct {
	ID        string      `json:"id"`
	Role      string      `json:"role"`
	Content   string      `json:"content"`
	Widget    *CardWidget `json:"cardWidget,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

// ChatTurn is one prior exchange entry sent to the advisor as history.
type ChatTurn struct {
	Role string // "user" or "model"
	Text string
}

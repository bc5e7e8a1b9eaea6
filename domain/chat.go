package domain

// ChatRole is the author of a chat message.
type ChatRole string

const (
	RoleUser  ChatRole = "user"
	RoleModel ChatRole = "model"
)

// ChatMessage is one turn of the assistant conversation. Timestamp is unix
// milliseconds, zero when unknown. Chat history lives only in the local
// store; it is never mirrored remotely.
type ChatMessage struct {
	Role      ChatRole `json:"role"`
	Text      string   `json:"text"`
	Timestamp int64    `json:"timestamp,omitempty"`
}

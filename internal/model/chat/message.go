package chat

import "time"

// Role identifies who produced a transcript message.
type Role string

const (
	RoleUser Role = "user"
	RoleBot  Role = "bot"
)

// Message is one immutable transcript entry. Content holds the raw text
// as received; HTML holds the sanitized markup the view layer displays.
type Message struct {
	ID        string    `json:"id"`
	Role      Role      `json:"role"`
	Content   string    `json:"content"`
	HTML      string    `json:"html"`
	CreatedAt time.Time `json:"createdAt"`
}

// DisplayTime renders the creation time the way the transcript shows it,
// as a 12-hour hour:minute string.
func (m Message) DisplayTime() string {
	return m.CreatedAt.Format("3:04 PM")
}

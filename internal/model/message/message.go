package message

import (
	"strings"
	"time"
)

// Message is one persisted turn in the conversation log.
type Message struct {
	ID     string    `json:"id"`
	Date   time.Time `json:"date"`
	Text   string    `json:"text"`
	Sender string    `json:"sender"`
}

// Role classifies who produced a message.
type Role string

const (
	RoleUser Role = "user"
	RoleBot  Role = "bot"
)

// ClassifyRole derives the role from the sender name. A sender whose
// trimmed name equals the reserved bot name (case-insensitive) is the bot;
// everyone else is a user.
func ClassifyRole(sender, botName string) Role {
	if strings.EqualFold(strings.TrimSpace(sender), strings.TrimSpace(botName)) {
		return RoleBot
	}
	return RoleUser
}

package message

import "time"

// HistoryEntry is the in-memory conversational view of a Message, shaped the
// way the chat front end consumes it.
type HistoryEntry struct {
	ID   string    `json:"id"`
	Type Role      `json:"type"`
	Name string    `json:"name"`
	Text string    `json:"text"`
	TS   time.Time `json:"ts"`
}

// NewHistoryEntry maps a persisted message into the view shape.
func NewHistoryEntry(msg Message, botName string) HistoryEntry {
	return HistoryEntry{
		ID:   msg.ID,
		Type: ClassifyRole(msg.Sender, botName),
		Name: msg.Sender,
		Text: msg.Text,
		TS:   msg.Date,
	}
}

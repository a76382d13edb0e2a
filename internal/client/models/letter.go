package models

// Letter is a single message between two profiles. The server enforces at
// most one outstanding letter per ordered (sender, recipient) pair.
//
// A letter is unread while read_at is absent; read_at is set exactly once
// on first read. sender_username/sender_name are enrichment fields the
// inbox endpoint may or may not include.
type Letter struct {
	ID             string       `json:"_id"`
	SenderID       string       `json:"sender_id"`
	SenderUsername string       `json:"sender_username"`
	SenderName     string       `json:"sender_name"`
	RecipientID    string       `json:"recipient_id"`
	Body           string       `json:"letter"`
	CreatedAt      OptionalTime `json:"created_at"`
	ReadAt         OptionalTime `json:"read_at"`
}

// Read reports whether the letter has been marked read.
func (l Letter) Read() bool {
	return l.ReadAt.Valid
}

// SenderLabel returns the best available display string for the sender.
func (l Letter) SenderLabel() string {
	switch {
	case l.SenderUsername != "":
		return "@" + l.SenderUsername
	case l.SenderName != "":
		return l.SenderName
	case l.SenderID != "":
		return l.SenderID
	default:
		return "Unknown"
	}
}

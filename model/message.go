package model

import "time"

type Message struct {
	ID         string    `json:"id"`
	ItemID     string    `json:"item_id"`
	SenderID   string    `json:"sender_id"`
	ReceiverID string    `json:"receiver_id"`
	Content    string    `json:"content"`
	IsRead     bool      `json:"is_read"`
	CreatedAt  time.Time `json:"created_at"`
}

// ConversationRow is one fetched inbox row: a message joined with the
// referenced item's current name and both parties' usernames. A join
// miss (deleted item or deleted account) leaves the name empty.
type ConversationRow struct {
	MessageID    string
	ItemID       string
	ItemName     string
	SenderID     string
	SenderName   string
	ReceiverID   string
	ReceiverName string
	Content      string
	CreatedAt    time.Time
}

package model

import "time"

// ThreadKey identifies one conversation: all messages between the
// viewer and one counterparty about one item. The item name is
// resolved by join at query time, so renaming an item changes the
// displayed name without splitting the thread.
type ThreadKey struct {
	ItemID       string `json:"item_id"`
	Counterparty string `json:"counterparty"`
	ItemName     string `json:"item_name"`
}

type ThreadMessage struct {
	Sender  string    `json:"sender"`
	Content string    `json:"content"`
	SentAt  time.Time `json:"sent_at"`
}

// UnreadCount is a tagged count. Available=false means the lookup
// failed and the count is unknown, which is not the same as zero.
type UnreadCount struct {
	Count     int  `json:"count"`
	Available bool `json:"available"`
}

type Thread struct {
	Key      ThreadKey       `json:"key"`
	Messages []ThreadMessage `json:"messages"`
	Unread   UnreadCount     `json:"unread"`
}

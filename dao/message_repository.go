package dao

import (
	"context"
	"database/sql"

	"yu-marketplace-backend/model"
)

type MessageRepository struct {
	db *sql.DB
}

func NewMessageRepository(db *sql.DB) *MessageRepository {
	return &MessageRepository{db: db}
}

func (r *MessageRepository) Insert(ctx context.Context, msg *model.Message) error {
	query := `INSERT INTO messages (id, item_id, sender_id, receiver_id, content, is_read, created_at) VALUES (?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query, msg.ID, msg.ItemID, msg.SenderID, msg.ReceiverID, msg.Content, msg.IsRead, msg.CreatedAt)
	return err
}

const conversationColumns = `m.id, m.item_id, COALESCE(i.name, ''), m.sender_id, COALESCE(s.username, ''), m.receiver_id, COALESCE(rc.username, ''), m.content, m.created_at`

const conversationJoins = ` FROM messages m
              LEFT JOIN items i ON m.item_id = i.id
              LEFT JOIN users s ON m.sender_id = s.id
              LEFT JOIN users rc ON m.receiver_id = rc.id`

// ListConversations fetches every message the user sent or received,
// with the item name and both usernames resolved. The ordering is the
// one thread assembly relies on: item, then send time.
func (r *MessageRepository) ListConversations(ctx context.Context, userID string) ([]model.ConversationRow, error) {
	query := `SELECT ` + conversationColumns + conversationJoins + `
              WHERE m.sender_id = ? OR m.receiver_id = ?
              ORDER BY m.item_id ASC, m.created_at ASC, m.id ASC`
	rows, err := r.db.QueryContext(ctx, query, userID, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectConversationRows(rows)
}

// ListByItemForUser fetches the chronological messages involving the
// user about one item, for the item detail page.
func (r *MessageRepository) ListByItemForUser(ctx context.Context, itemID, userID string) ([]model.ConversationRow, error) {
	query := `SELECT ` + conversationColumns + conversationJoins + `
              WHERE m.item_id = ? AND (m.sender_id = ? OR m.receiver_id = ?)
              ORDER BY m.created_at ASC, m.id ASC`
	rows, err := r.db.QueryContext(ctx, query, itemID, userID, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectConversationRows(rows)
}

// CountUnread counts the not-yet-read messages the viewer received
// from one counterparty about one item.
func (r *MessageRepository) CountUnread(ctx context.Context, viewerID, itemID, senderID string) (int, error) {
	query := `SELECT COUNT(*) FROM messages WHERE item_id = ? AND receiver_id = ? AND sender_id = ? AND is_read = FALSE`
	var n int
	if err := r.db.QueryRowContext(ctx, query, itemID, viewerID, senderID).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

// MarkAllRead flips every unread message addressed to the viewer to
// read, as one statement. Read flags never go back.
func (r *MessageRepository) MarkAllRead(ctx context.Context, viewerID string) error {
	query := `UPDATE messages SET is_read = TRUE WHERE receiver_id = ? AND is_read = FALSE`
	_, err := r.db.ExecContext(ctx, query, viewerID)
	return err
}

// CountReceivedByItem returns, per item, how many messages the user
// has received in total. Items with no messages have no entry.
func (r *MessageRepository) CountReceivedByItem(ctx context.Context, receiverID string) (map[string]int, error) {
	query := `SELECT item_id, COUNT(*) FROM messages WHERE receiver_id = ? GROUP BY item_id`
	rows, err := r.db.QueryContext(ctx, query, receiverID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var itemID string
		var n int
		if err := rows.Scan(&itemID, &n); err != nil {
			return nil, err
		}
		counts[itemID] = n
	}
	return counts, rows.Err()
}

func collectConversationRows(rows *sql.Rows) ([]model.ConversationRow, error) {
	var out []model.ConversationRow
	for rows.Next() {
		var row model.ConversationRow
		if err := rows.Scan(&row.MessageID, &row.ItemID, &row.ItemName, &row.SenderID, &row.SenderName, &row.ReceiverID, &row.ReceiverName, &row.Content, &row.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

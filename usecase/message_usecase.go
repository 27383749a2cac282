package usecase

import (
	"context"
	"log"
	"time"

	"yu-marketplace-backend/model"
	"yu-marketplace-backend/pkg/apperr"
)

type MessageStore interface {
	Insert(ctx context.Context, msg *model.Message) error
	ListConversations(ctx context.Context, userID string) ([]model.ConversationRow, error)
	ListByItemForUser(ctx context.Context, itemID, userID string) ([]model.ConversationRow, error)
	CountUnread(ctx context.Context, viewerID, itemID, senderID string) (int, error)
	MarkAllRead(ctx context.Context, viewerID string) error
	CountReceivedByItem(ctx context.Context, receiverID string) (map[string]int, error)
}

// ItemFinder is the slice of the item repository messaging needs.
type ItemFinder interface {
	GetByID(ctx context.Context, id string) (*model.Item, error)
	ListBySeller(ctx context.Context, sellerID string) ([]model.Item, error)
}

type MessageUsecase struct {
	msgRepo MessageStore
	items   ItemFinder
}

func NewMessageUsecase(msgRepo MessageStore, items ItemFinder) *MessageUsecase {
	return &MessageUsecase{msgRepo: msgRepo, items: items}
}

// Send delivers a message about an item. The receiver is whoever the
// listing names as seller at this moment; a later seller change does
// not touch messages already sent. Content may be empty, and there is
// no idempotency: sending twice stores two rows.
func (u *MessageUsecase) Send(ctx context.Context, sender *model.User, itemID, content string) (*model.Message, error) {
	item, err := u.items.GetByID(ctx, itemID)
	if err != nil {
		return nil, apperr.Store("looking up item", err)
	}
	if item == nil {
		return nil, apperr.NotFound("item not found")
	}

	msg := &model.Message{
		ID:         newULID(),
		ItemID:     item.ID,
		SenderID:   sender.ID,
		ReceiverID: item.SellerID,
		Content:    content,
		IsRead:     false,
		CreatedAt:  time.Now(),
	}
	if err := u.msgRepo.Insert(ctx, msg); err != nil {
		return nil, apperr.Store("sending message", err)
	}
	return msg, nil
}

// Inbox assembles the viewer's conversations into threads keyed by
// (item, counterparty, item name), each with the unread count as it
// stood when the request began. Viewing consumes the unread state:
// the final bulk mark means these counts are only valid for this one
// render.
func (u *MessageUsecase) Inbox(ctx context.Context, viewer *model.User) ([]model.Thread, error) {
	rows, err := u.msgRepo.ListConversations(ctx, viewer.ID)
	if err != nil {
		return nil, apperr.Store("loading conversations", err)
	}

	var threads []model.Thread
	index := make(map[model.ThreadKey]int)
	counterpartyID := make(map[model.ThreadKey]string)

	for _, row := range rows {
		if row.ItemName == "" || row.SenderName == "" || row.ReceiverName == "" {
			// Orphaned row: the item or a party no longer resolves.
			// It stays in storage but is left out of the inbox.
			log.Printf("inbox: skipping orphaned message %s (item %s)", row.MessageID, row.ItemID)
			continue
		}

		otherName, otherID := row.SenderName, row.SenderID
		if row.SenderID == viewer.ID {
			otherName, otherID = row.ReceiverName, row.ReceiverID
		}

		key := model.ThreadKey{ItemID: row.ItemID, Counterparty: otherName, ItemName: row.ItemName}
		i, ok := index[key]
		if !ok {
			i = len(threads)
			index[key] = i
			counterpartyID[key] = otherID
			threads = append(threads, model.Thread{Key: key})
		}
		threads[i].Messages = append(threads[i].Messages, model.ThreadMessage{
			Sender:  row.SenderName,
			Content: row.Content,
			SentAt:  row.CreatedAt,
		})
	}

	// Unread is recomputed from the store per thread rather than
	// derived from the rows above. A failed lookup renders the thread
	// with an unavailable count, never a silent zero.
	for i := range threads {
		key := threads[i].Key
		n, err := u.msgRepo.CountUnread(ctx, viewer.ID, key.ItemID, counterpartyID[key])
		if err != nil {
			log.Printf("inbox: unread count unavailable for item %s: %v", key.ItemID, err)
			threads[i].Unread = model.UnreadCount{Available: false}
			continue
		}
		threads[i].Unread = model.UnreadCount{Count: n, Available: true}
	}

	if err := u.msgRepo.MarkAllRead(ctx, viewer.ID); err != nil {
		return nil, apperr.Store("marking messages read", err)
	}
	return threads, nil
}

// ItemThread returns the chronological messages involving the viewer
// about one item, for the item detail page. Unlike the inbox this
// does not touch read flags.
func (u *MessageUsecase) ItemThread(ctx context.Context, viewer *model.User, itemID string) ([]model.ThreadMessage, error) {
	rows, err := u.msgRepo.ListByItemForUser(ctx, itemID, viewer.ID)
	if err != nil {
		return nil, apperr.Store("loading messages", err)
	}

	msgs := make([]model.ThreadMessage, 0, len(rows))
	for _, row := range rows {
		if row.SenderName == "" {
			continue
		}
		msgs = append(msgs, model.ThreadMessage{
			Sender:  row.SenderName,
			Content: row.Content,
			SentAt:  row.CreatedAt,
		})
	}
	return msgs, nil
}

// DashboardItem is one owned listing with its total received-message
// count, unread or not.
type DashboardItem struct {
	Item         model.Item `json:"item"`
	MessageCount int        `json:"message_count"`
}

// Dashboard lists the seller's items newest first, each annotated
// with how many messages it has drawn. Items nobody asked about show
// a count of zero.
func (u *MessageUsecase) Dashboard(ctx context.Context, seller *model.User) ([]DashboardItem, error) {
	items, err := u.items.ListBySeller(ctx, seller.ID)
	if err != nil {
		return nil, apperr.Store("listing items", err)
	}
	counts, err := u.msgRepo.CountReceivedByItem(ctx, seller.ID)
	if err != nil {
		return nil, apperr.Store("counting messages", err)
	}

	out := make([]DashboardItem, 0, len(items))
	for _, item := range items {
		out = append(out, DashboardItem{Item: item, MessageCount: counts[item.ID]})
	}
	return out, nil
}

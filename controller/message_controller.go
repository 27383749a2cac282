package controller

import (
	"net/http"

	"yu-marketplace-backend/middleware"
	"yu-marketplace-backend/model"
	"yu-marketplace-backend/usecase"
)

type MessageController struct {
	usecase *usecase.MessageUsecase
}

func NewMessageController(uc *usecase.MessageUsecase) *MessageController {
	return &MessageController{usecase: uc}
}

// Inbox returns the viewer's threads with their unread counts. As in
// the original, viewing the inbox marks everything addressed to the
// viewer as read; the counts reflect the state before this visit.
func (c *MessageController) Inbox(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	viewer := middleware.CurrentUser(r.Context())

	threads, err := c.usecase.Inbox(r.Context(), viewer)
	if err != nil {
		writeError(w, err)
		return
	}
	if threads == nil {
		threads = []model.Thread{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"threads": threads})
}

// Send handles POST /messages/{item_id}. The receiver is resolved
// from the item's current seller.
func (c *MessageController) Send(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}
	itemID := pathID(r.URL.Path)
	if itemID == "" || itemID == "messages" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "missing item id"})
		return
	}
	sender := middleware.CurrentUser(r.Context())

	var req struct {
		Content string `json:"content"`
	}
	if err := decodeBody(r, &req, func(r *http.Request) {
		req.Content = r.FormValue("content")
	}); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	msg, err := c.usecase.Send(r.Context(), sender, itemID, req.Content)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{
		"message": "Message sent.",
		"sent":    msg,
	})
}

// Dashboard lists the seller's own items with their message counts.
func (c *MessageController) Dashboard(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	seller := middleware.CurrentUser(r.Context())

	items, err := c.usecase.Dashboard(r.Context(), seller)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": items})
}

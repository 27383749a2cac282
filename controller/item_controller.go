package controller

import (
	"net/http"
	"strconv"
	"strings"

	"yu-marketplace-backend/middleware"
	"yu-marketplace-backend/pkg/apperr"
	"yu-marketplace-backend/pkg/upload"
	"yu-marketplace-backend/usecase"
)

type ItemController struct {
	items    *usecase.ItemUsecase
	messages *usecase.MessageUsecase
	uploads  *upload.Store
}

func NewItemController(items *usecase.ItemUsecase, messages *usecase.MessageUsecase, uploads *upload.Store) *ItemController {
	return &ItemController{items: items, messages: messages, uploads: uploads}
}

// HandleItems serves /items: GET browses the catalog, POST creates a
// listing.
func (c *ItemController) HandleItems(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		c.browse(w, r)
	case http.MethodPost:
		c.create(w, r)
	default:
		methodNotAllowed(w)
	}
}

func (c *ItemController) browse(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, _ := strconv.Atoi(q.Get("page"))

	result, err := c.items.Browse(r.Context(), q.Get("category"), q.Get("search"), q.Get("sort"), page)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (c *ItemController) create(w http.ResponseWriter, r *http.Request) {
	seller := middleware.CurrentUser(r.Context())

	in, err := c.decodeItemInput(r)
	if err != nil {
		writeError(w, err)
		return
	}

	item, err := c.items.Create(r.Context(), seller, in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{
		"message": "Item uploaded successfully!",
		"item":    item,
	})
}

// decodeItemInput accepts multipart (with an optional image file),
// form, or JSON bodies.
func (c *ItemController) decodeItemInput(r *http.Request) (usecase.ItemInput, error) {
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		if err := r.ParseMultipartForm(10 << 20); err != nil {
			return usecase.ItemInput{}, apperr.Validation("invalid multipart body")
		}
		in, err := itemInputFromForm(r)
		if err != nil {
			return in, err
		}
		// Image is optional; absence is not an error.
		file, header, err := r.FormFile("image")
		if err == nil {
			defer file.Close()
			url, err := c.uploads.Save(header.Filename, file)
			if err != nil {
				return in, apperr.Validation(err.Error())
			}
			in.ImageURL = url
		}
		return in, nil
	}

	var in usecase.ItemInput
	var formErr error
	if err := decodeBody(r, &in, func(r *http.Request) {
		in, formErr = itemInputFromForm(r)
	}); err != nil {
		return in, apperr.Validation("invalid request body")
	}
	if formErr != nil {
		return in, formErr
	}
	return in, nil
}

func itemInputFromForm(r *http.Request) (usecase.ItemInput, error) {
	in := usecase.ItemInput{
		Name:        r.FormValue("name"),
		Category:    r.FormValue("category"),
		Location:    r.FormValue("location"),
		Description: r.FormValue("description"),
		ImageURL:    r.FormValue("image_url"),
	}
	if raw := r.FormValue("price"); raw != "" {
		price, err := strconv.Atoi(raw)
		if err != nil {
			return in, apperr.Validation("price must be a number")
		}
		in.Price = price
	}
	return in, nil
}

// HandleItemDetail serves /items/{id}: GET returns the item plus the
// viewer's message thread for it, PUT edits, DELETE removes.
func (c *ItemController) HandleItemDetail(w http.ResponseWriter, r *http.Request) {
	id := pathID(r.URL.Path)
	if id == "" || id == "items" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "missing item id"})
		return
	}
	user := middleware.CurrentUser(r.Context())

	switch r.Method {
	case http.MethodGet:
		item, err := c.items.Get(r.Context(), id)
		if err != nil {
			writeError(w, err)
			return
		}
		thread, err := c.messages.ItemThread(r.Context(), user, id)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"item":     item,
			"messages": thread,
		})

	case http.MethodPut:
		in, err := c.decodeItemInput(r)
		if err != nil {
			writeError(w, err)
			return
		}
		item, err := c.items.Update(r.Context(), user, id, in)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"message": "Item updated successfully!",
			"item":    item,
		})

	case http.MethodDelete:
		if err := c.items.Delete(r.Context(), user, id); err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"message": "Item deleted successfully!"})

	default:
		methodNotAllowed(w)
	}
}

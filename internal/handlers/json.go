package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/kheyer/RESTful-App/models"
)

// Serialized shapes. Timestamps and everything owner-sensitive beyond
// the numeric owner id stay out of the projections.

type categoryJSON struct {
	ID     uint       `json:"id"`
	Name   string     `json:"name"`
	UserID uint       `json:"user_id"`
	Items  []itemJSON `json:"Items,omitempty"`
}

type itemJSON struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	UserID      uint   `json:"user_id"`
	Picture     string `json:"picture"`
	CategoryID  uint   `json:"category_id"`
}

func serializeCategory(c models.Category) categoryJSON {
	return categoryJSON{ID: c.ID, Name: c.Name, UserID: c.UserID}
}

func serializeItem(i models.Item) itemJSON {
	return itemJSON{
		ID:          i.ID,
		Name:        i.Name,
		Description: i.Description,
		UserID:      i.UserID,
		Picture:     i.Picture,
		CategoryID:  i.CategoryID,
	}
}

func serializeItems(items []models.Item) []itemJSON {
	out := make([]itemJSON, 0, len(items))
	for _, i := range items {
		out = append(out, serializeItem(i))
	}
	return out
}

// AllJSON returns every category with its items nested. Items are
// included only when the category has any.
func (h *Handler) AllJSON(w http.ResponseWriter, r *http.Request) {
	categories, err := h.store.Categories(r.Context())
	if err != nil {
		jsonError(w, http.StatusInternalServerError, err.Error())
		return
	}

	out := make([]categoryJSON, 0, len(categories))
	for _, c := range categories {
		cj := serializeCategory(c)
		items, err := h.store.ItemsByCategory(r.Context(), c.ID)
		if err != nil {
			jsonError(w, http.StatusInternalServerError, err.Error())
			return
		}
		if len(items) > 0 {
			cj.Items = serializeItems(items)
		}
		out = append(out, cj)
	}

	writeJSON(w, map[string]any{"Category": out})
}

// CategoriesJSON returns the flat category list.
func (h *Handler) CategoriesJSON(w http.ResponseWriter, r *http.Request) {
	categories, err := h.store.Categories(r.Context())
	if err != nil {
		jsonError(w, http.StatusInternalServerError, err.Error())
		return
	}
	out := make([]categoryJSON, 0, len(categories))
	for _, c := range categories {
		out = append(out, serializeCategory(c))
	}
	writeJSON(w, map[string]any{"categories": out})
}

// CategoryItemsJSON returns the items of one category. An unknown
// category answers 404 with a JSON error body.
func (h *Handler) CategoryItemsJSON(w http.ResponseWriter, r *http.Request) {
	category, err := h.store.CategoryByName(r.Context(), chi.URLParam(r, "category"))
	if err != nil {
		jsonError(w, http.StatusNotFound, "category not found")
		return
	}
	items, err := h.store.ItemsByCategory(r.Context(), category.ID)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, map[string]any{"items": serializeItems(items)})
}

// ItemJSON returns a single serialized item, wrapped in a one-element
// list.
func (h *Handler) ItemJSON(w http.ResponseWriter, r *http.Request) {
	item, err := h.store.ItemByName(r.Context(), chi.URLParam(r, "item"))
	if err != nil {
		jsonError(w, http.StatusNotFound, "item not found")
		return
	}
	writeJSON(w, map[string]any{"item": []itemJSON{serializeItem(*item)}})
}

package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"github.com/kheyer/RESTful-App/internal/apperror"
	"github.com/kheyer/RESTful-App/internal/auth"
	"github.com/kheyer/RESTful-App/models"
)

// ShowAllItems renders every item alphabetically. Public.
func (h *Handler) ShowAllItems(w http.ResponseWriter, r *http.Request) {
	sess := h.sessions.Load(r)
	items, err := h.store.Items(r.Context())
	if err != nil {
		h.serverError(w, err)
		return
	}
	categories, err := h.store.Categories(r.Context())
	if err != nil {
		h.serverError(w, err)
		return
	}
	h.renderPage(w, r, sess, "items_all.html", map[string]any{
		"Items":      items,
		"Categories": categories,
	})
}

// ShowItem renders a single item. Public.
func (h *Handler) ShowItem(w http.ResponseWriter, r *http.Request) {
	sess := h.sessions.Load(r)
	item, err := h.store.ItemByName(r.Context(), chi.URLParam(r, "item"))
	if err != nil {
		http.Redirect(w, r, "/catalog/"+url.PathEscape(chi.URLParam(r, "category"))+"/", http.StatusFound)
		return
	}
	categories, err := h.store.Categories(r.Context())
	if err != nil {
		h.serverError(w, err)
		return
	}
	h.renderPage(w, r, sess, "items.html", map[string]any{
		"Item":       item,
		"Category":   chi.URLParam(r, "category"),
		"Categories": categories,
	})
}

// AddItem renders the form on GET and creates the item on POST. The
// item lands in the category named by the form.
func (h *Handler) AddItem(w http.ResponseWriter, r *http.Request) {
	sess := h.sessions.Load(r)
	categories, err := h.store.Categories(r.Context())
	if err != nil {
		h.serverError(w, err)
		return
	}

	if r.Method != http.MethodPost {
		h.renderPage(w, r, sess, "additem.html", map[string]any{"Categories": categories})
		return
	}

	category, err := h.store.CategoryByName(r.Context(), r.PostFormValue("category"))
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			h.flashRedirect(w, r, sess, apperror.Message(err), "/catalog/")
			return
		}
		h.serverError(w, err)
		return
	}

	userID, _ := sess.UserID()
	item := &models.Item{
		Name:        r.PostFormValue("name"),
		Description: r.PostFormValue("description"),
		Picture:     r.PostFormValue("picture"),
		CategoryID:  category.ID,
		UserID:      userID,
	}
	if err := h.store.CreateItem(r.Context(), item); err != nil {
		if errors.Is(err, apperror.ErrDuplicateName) {
			h.flashRedirect(w, r, sess, fmt.Sprintf("Item '%s' already exists", item.Name), "/catalog/")
			return
		}
		h.serverError(w, err)
		return
	}

	h.flashRedirect(w, r, sess,
		fmt.Sprintf("Item %s added to Category %s", item.Name, category.Name),
		"/catalog/"+url.PathEscape(category.Name)+"/")
}

// EditItem applies a partial-field update: each field changes only when
// a non-empty replacement arrives. Owner only.
func (h *Handler) EditItem(w http.ResponseWriter, r *http.Request) {
	sess := h.sessions.Load(r)
	item, err := h.store.ItemByName(r.Context(), chi.URLParam(r, "item"))
	if err != nil {
		http.Redirect(w, r, "/catalog/", http.StatusFound)
		return
	}

	if err := auth.CheckOwner(r.Context(), h.resolver, sess, item.UserID, "edit", "item"); err != nil {
		h.ownershipFailure(w, r, sess, err)
		return
	}

	categories, err := h.store.Categories(r.Context())
	if err != nil {
		h.serverError(w, err)
		return
	}

	if r.Method != http.MethodPost {
		h.renderPage(w, r, sess, "edititem.html", map[string]any{
			"Item":       item,
			"Categories": categories,
		})
		return
	}

	if name := r.PostFormValue("name"); name != "" {
		item.Name = name
	}
	if description := r.PostFormValue("description"); description != "" {
		item.Description = description
	}
	if picture := r.PostFormValue("picture"); picture != "" {
		item.Picture = picture
	}
	if categoryName := r.PostFormValue("category"); categoryName != "" {
		category, err := h.store.CategoryByName(r.Context(), categoryName)
		if err != nil {
			if errors.Is(err, apperror.ErrNotFound) {
				h.flashRedirect(w, r, sess, apperror.Message(err), "/catalog/")
				return
			}
			h.serverError(w, err)
			return
		}
		item.CategoryID = category.ID
	}

	if err := h.store.UpdateItem(r.Context(), item); err != nil {
		if errors.Is(err, apperror.ErrDuplicateName) {
			h.flashRedirect(w, r, sess, fmt.Sprintf("Item '%s' already exists", item.Name), "/catalog/")
			return
		}
		h.serverError(w, err)
		return
	}

	category, err := h.store.CategoryByID(r.Context(), item.CategoryID)
	if err != nil {
		h.serverError(w, err)
		return
	}

	h.flashRedirect(w, r, sess,
		fmt.Sprintf("Item %s Successfully Edited", item.Name),
		"/catalog/"+url.PathEscape(category.Name)+"/items/"+url.PathEscape(item.Name)+"/")
}

// DeleteItem shows a confirmation on GET and deletes on POST. Owner
// only.
func (h *Handler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	sess := h.sessions.Load(r)
	item, err := h.store.ItemByName(r.Context(), chi.URLParam(r, "item"))
	if err != nil {
		http.Redirect(w, r, "/catalog/", http.StatusFound)
		return
	}

	if err := auth.CheckOwner(r.Context(), h.resolver, sess, item.UserID, "delete", "item"); err != nil {
		h.ownershipFailure(w, r, sess, err)
		return
	}

	if r.Method != http.MethodPost {
		h.renderPage(w, r, sess, "deleteitem.html", map[string]any{"Item": item})
		return
	}

	if err := h.store.DeleteItem(r.Context(), item.ID); err != nil {
		h.serverError(w, err)
		return
	}

	h.flashRedirect(w, r, sess,
		fmt.Sprintf("Deleted item %s", item.Name),
		"/catalog/"+url.PathEscape(chi.URLParam(r, "category"))+"/")
}

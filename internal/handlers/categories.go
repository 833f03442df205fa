package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"github.com/kheyer/RESTful-App/internal/apperror"
	"github.com/kheyer/RESTful-App/internal/auth"
	"github.com/kheyer/RESTful-App/internal/session"
	"github.com/kheyer/RESTful-App/models"
)

// ShowCatalog renders the category listing. Public.
func (h *Handler) ShowCatalog(w http.ResponseWriter, r *http.Request) {
	sess := h.sessions.Load(r)
	categories, err := h.store.Categories(r.Context())
	if err != nil {
		h.serverError(w, err)
		return
	}
	h.renderPage(w, r, sess, "catalog.html", map[string]any{
		"Categories": categories,
	})
}

// ShowCategory renders one category with its items. Public. The literal
// segment "items" is reserved for the all-items view.
func (h *Handler) ShowCategory(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "category")
	if name == "items" {
		http.Redirect(w, r, "/catalog/items", http.StatusFound)
		return
	}

	sess := h.sessions.Load(r)
	category, err := h.store.CategoryByName(r.Context(), name)
	if err != nil {
		// Invalid category names go back to the main page.
		http.Redirect(w, r, "/catalog/", http.StatusFound)
		return
	}

	categories, err := h.store.Categories(r.Context())
	if err != nil {
		h.serverError(w, err)
		return
	}
	items, err := h.store.ItemsByCategory(r.Context(), category.ID)
	if err != nil {
		h.serverError(w, err)
		return
	}

	h.renderPage(w, r, sess, "categories.html", map[string]any{
		"Category":   category,
		"Categories": categories,
		"Items":      items,
		"Count":      len(items),
	})
}

// AddCategory renders the form on GET and creates the category on POST.
func (h *Handler) AddCategory(w http.ResponseWriter, r *http.Request) {
	sess := h.sessions.Load(r)
	if r.Method != http.MethodPost {
		h.renderPage(w, r, sess, "addcategory.html", nil)
		return
	}

	userID, _ := sess.UserID()
	name := r.PostFormValue("name")

	category := &models.Category{Name: name, UserID: userID}
	if err := h.store.CreateCategory(r.Context(), category); err != nil {
		if errors.Is(err, apperror.ErrDuplicateName) {
			h.flashRedirect(w, r, sess, fmt.Sprintf("Category '%s' already exists", name), "/catalog/")
			return
		}
		h.serverError(w, err)
		return
	}

	h.flashRedirect(w, r, sess, "Category Added Successfully", "/catalog/")
}

// EditCategory renames a category. Owner only.
func (h *Handler) EditCategory(w http.ResponseWriter, r *http.Request) {
	sess := h.sessions.Load(r)
	category, err := h.store.CategoryByName(r.Context(), chi.URLParam(r, "category"))
	if err != nil {
		http.Redirect(w, r, "/catalog/", http.StatusFound)
		return
	}

	if err := auth.CheckOwner(r.Context(), h.resolver, sess, category.UserID, "edit", "Category"); err != nil {
		h.ownershipFailure(w, r, sess, err)
		return
	}

	if r.Method != http.MethodPost {
		h.renderPage(w, r, sess, "editcategory.html", map[string]any{"Category": category})
		return
	}

	oldName := category.Name
	if name := r.PostFormValue("name"); name != "" {
		if err := h.store.RenameCategory(r.Context(), category.ID, name); err != nil {
			if errors.Is(err, apperror.ErrDuplicateName) {
				h.flashRedirect(w, r, sess, fmt.Sprintf("Category Name %s is Already Taken", name), "/catalog/")
				return
			}
			h.serverError(w, err)
			return
		}
		category.Name = name
	}

	h.flashRedirect(w, r, sess,
		fmt.Sprintf("Category %s Edited to %s", oldName, category.Name),
		"/catalog/"+url.PathEscape(category.Name)+"/")
}

// DeleteCategory shows a confirmation on GET and deletes the category
// and all of its items on POST. Owner only.
func (h *Handler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	sess := h.sessions.Load(r)
	category, err := h.store.CategoryByName(r.Context(), chi.URLParam(r, "category"))
	if err != nil {
		http.Redirect(w, r, "/catalog/", http.StatusFound)
		return
	}

	if err := auth.CheckOwner(r.Context(), h.resolver, sess, category.UserID, "delete", "Category"); err != nil {
		h.ownershipFailure(w, r, sess, err)
		return
	}

	if r.Method != http.MethodPost {
		h.renderPage(w, r, sess, "deletecategory.html", map[string]any{"Category": category})
		return
	}

	if err := h.store.DeleteCategory(r.Context(), category.ID); err != nil {
		h.serverError(w, err)
		return
	}

	h.flashRedirect(w, r, sess, fmt.Sprintf("Category %s Deleted! ", category.Name), "/catalog/")
}

// ownershipFailure flashes the violation notice and redirects to the
// catalog listing. Anything other than a NotOwner error is a fault.
func (h *Handler) ownershipFailure(w http.ResponseWriter, r *http.Request, sess *session.Session, err error) {
	if errors.Is(err, apperror.ErrNotOwner) {
		h.flashRedirect(w, r, sess, apperror.Message(err), "/catalog/")
		return
	}
	h.serverError(w, err)
}

func (h *Handler) serverError(w http.ResponseWriter, err error) {
	h.logger.Error("request failed", "error", err.Error())
	http.Error(w, "Internal Server Error", http.StatusInternalServerError)
}

// Package handlers implements the catalog workflow: category and item
// CRUD, the read-only JSON projections, and the login routes.
package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/kheyer/RESTful-App/internal/auth"
	"github.com/kheyer/RESTful-App/internal/identity"
	"github.com/kheyer/RESTful-App/internal/oauth"
	"github.com/kheyer/RESTful-App/internal/repository"
	"github.com/kheyer/RESTful-App/internal/session"
	"github.com/kheyer/RESTful-App/internal/storage"
	"github.com/kheyer/RESTful-App/internal/view"
)

type Handler struct {
	store    repository.Catalog
	resolver *identity.Resolver
	sessions *session.Manager
	bridge   *oauth.Bridge
	render   *view.Renderer
	uploader *storage.Uploader // nil when object storage is not configured
	logger   *slog.Logger
}

func New(store repository.Catalog, resolver *identity.Resolver, sessions *session.Manager,
	bridge *oauth.Bridge, render *view.Renderer, uploader *storage.Uploader, logger *slog.Logger) *Handler {
	return &Handler{
		store:    store,
		resolver: resolver,
		sessions: sessions,
		bridge:   bridge,
		render:   render,
		uploader: uploader,
		logger:   logger,
	}
}

// Routes registers the full HTTP surface.
func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.ShowCatalog)
	r.Get("/login", h.Login)
	r.Post("/oauth/callback", h.OAuthCallback)
	r.Get("/oauth/disconnect", h.Disconnect)

	r.Route("/catalog", func(r chi.Router) {
		r.Get("/", h.ShowCatalog)
		r.Get("/JSON", h.AllJSON)
		r.Get("/categories/JSON", h.CategoriesJSON)
		r.Get("/items", h.ShowAllItems)

		r.Group(func(r chi.Router) {
			r.Use(auth.RequireUser(h.sessions))
			r.Get("/addcategory", h.AddCategory)
			r.Post("/addcategory", h.AddCategory)
			r.Get("/add", h.AddItem)
			r.Post("/add", h.AddItem)
			if h.uploader != nil {
				r.Post("/upload", h.UploadPicture)
			}
		})

		r.Route("/{category}", func(r chi.Router) {
			r.Get("/", h.ShowCategory)
			r.Get("/items", h.ShowCategory)
			r.Get("/items/JSON", h.CategoryItemsJSON)

			r.Group(func(r chi.Router) {
				r.Use(auth.RequireUser(h.sessions))
				r.Get("/edit", h.EditCategory)
				r.Post("/edit", h.EditCategory)
				r.Get("/delete", h.DeleteCategory)
				r.Post("/delete", h.DeleteCategory)
			})

			r.Route("/items/{item}", func(r chi.Router) {
				r.Get("/", h.ShowItem)
				r.Get("/JSON", h.ItemJSON)

				r.Group(func(r chi.Router) {
					r.Use(auth.RequireUser(h.sessions))
					r.Get("/edit", h.EditItem)
					r.Post("/edit", h.EditItem)
					r.Get("/delete", h.DeleteItem)
					r.Post("/delete", h.DeleteItem)
				})
			})
		})
	})
}

// page is the payload every HTML template receives. Flashes are drained
// from the session when the page is built.
type page struct {
	LoggedIn bool
	Username string
	Picture  string
	Flashes  []string
	Data     map[string]any
}

// renderPage drains flashes, persists the session, and renders tmpl.
func (h *Handler) renderPage(w http.ResponseWriter, r *http.Request, sess *session.Session, tmpl string, data map[string]any) {
	_, loggedIn := sess.UserID()
	p := page{
		LoggedIn: loggedIn,
		Username: sess.Username(),
		Picture:  sess.Picture(),
		Flashes:  sess.Flashes(),
		Data:     data,
	}
	if err := sess.Save(r, w); err != nil {
		h.logger.Error("failed to save session", slog.String("error", err.Error()))
	}
	h.render.Render(w, tmpl, p)
}

// flashRedirect queues a notice and sends the browser to target.
func (h *Handler) flashRedirect(w http.ResponseWriter, r *http.Request, sess *session.Session, msg, target string) {
	sess.Flash(msg)
	if err := sess.Save(r, w); err != nil {
		h.logger.Error("failed to save session", slog.String("error", err.Error()))
	}
	http.Redirect(w, r, target, http.StatusFound)
}

// jsonMessage writes a bare JSON string body, the way the login
// endpoints respond.
func jsonMessage(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(msg)
}

// jsonError writes a JSON error object.
func jsonError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

func writeJSON(w http.ResponseWriter, payload any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(payload)
}

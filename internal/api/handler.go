package api

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/cargohub/cargohub/internal/auth"
	"github.com/cargohub/cargohub/internal/platform/httpx"
	"github.com/cargohub/cargohub/internal/shared"
)

// Handler mounts every registered resource under one router group and
// enforces the caller's per-resource access on each request.
type Handler struct {
	logger    *slog.Logger
	provider  *auth.Provider
	resources []Resource
}

// NewHandler builds the handler for the given resources.
func NewHandler(logger *slog.Logger, provider *auth.Provider, resources ...Resource) *Handler {
	return &Handler{logger: logger, provider: provider, resources: resources}
}

// MountRoutes registers the routes of every resource.
func (h *Handler) MountRoutes(r chi.Router) {
	for _, res := range h.resources {
		h.mount(r, res)
	}
}

func (h *Handler) mount(r chi.Router, res Resource) {
	name := res.Name()
	r.Route("/"+name, func(r chi.Router) {
		r.Get("/", h.handleList(name, res))
		r.Post("/", h.handleCreate(name, res))
		r.Route("/{id}", func(r chi.Router) {
			if c, ok := res.(Committer); ok {
				r.Put("/commit", h.handleCommit(name, c))
			}
			if ir, ok := res.(ItemsReplacer); ok {
				r.Put("/items", h.handleReplaceItems(name, ir))
			}
			r.Get("/", h.handleGet(name, res))
			r.Put("/", h.handleUpdate(name, res))
			r.Delete("/", h.handleDelete(name, res))
			if rr, ok := res.(RelationResolver); ok {
				r.Get("/{relation}", h.handleRelation(name, rr))
			}
		})
	})
}

// authorize writes a Forbidden response and returns false when the
// caller may not use the method on the resource.
func (h *Handler) authorize(w http.ResponseWriter, r *http.Request, resource, method string) bool {
	user, ok := auth.FromContext(r.Context())
	if !ok {
		httpx.RespondError(w, shared.ErrUnauthorized)
		return false
	}
	if !h.provider.HasAccess(user, resource, method) {
		h.logger.Warn("access denied", "app", user.App, "resource", resource, "method", method)
		httpx.RespondError(w, shared.ErrForbidden)
		return false
	}
	return true
}

func pathID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, shared.NewValidationError(map[string]string{"id": "must be a positive integer"})
	}
	return id, nil
}

func (h *Handler) respond(w http.ResponseWriter, status int, data any, err error) {
	if err != nil {
		h.logError(err)
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, status, data)
}

func (h *Handler) logError(err error) {
	// Expected rejections are visible in the response; only unexpected
	// failures are worth a log line.
	switch {
	case shared.IsDomainError(err):
	default:
		h.logger.Error("request failed", "error", err)
	}
}

func (h *Handler) handleList(name string, res Resource) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !h.authorize(w, r, name, "get") {
			return
		}
		data, err := res.List(r.Context())
		h.respond(w, http.StatusOK, data, err)
	}
}

func (h *Handler) handleGet(name string, res Resource) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !h.authorize(w, r, name, "get") {
			return
		}
		id, err := pathID(r)
		if err != nil {
			httpx.RespondError(w, err)
			return
		}
		data, err := res.Get(r.Context(), id)
		h.respond(w, http.StatusOK, data, err)
	}
}

func (h *Handler) handleCreate(name string, res Resource) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !h.authorize(w, r, name, "post") {
			return
		}
		data, err := res.Create(r.Context(), r.Body)
		h.respond(w, http.StatusCreated, data, err)
	}
}

func (h *Handler) handleUpdate(name string, res Resource) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !h.authorize(w, r, name, "put") {
			return
		}
		id, err := pathID(r)
		if err != nil {
			httpx.RespondError(w, err)
			return
		}
		data, err := res.Update(r.Context(), id, r.Body)
		h.respond(w, http.StatusOK, data, err)
	}
}

func (h *Handler) handleDelete(name string, res Resource) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !h.authorize(w, r, name, "delete") {
			return
		}
		id, err := pathID(r)
		if err != nil {
			httpx.RespondError(w, err)
			return
		}
		dryRun := r.URL.Query().Get("dry_run") == "true"
		data, err := res.Delete(r.Context(), id, dryRun)
		h.respond(w, http.StatusOK, data, err)
	}
}

func (h *Handler) handleRelation(name string, res RelationResolver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !h.authorize(w, r, name, "get") {
			return
		}
		id, err := pathID(r)
		if err != nil {
			httpx.RespondError(w, err)
			return
		}
		data, err := res.Relation(r.Context(), id, chi.URLParam(r, "relation"))
		h.respond(w, http.StatusOK, data, err)
	}
}

func (h *Handler) handleCommit(name string, res Committer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !h.authorize(w, r, name, "put") {
			return
		}
		id, err := pathID(r)
		if err != nil {
			httpx.RespondError(w, err)
			return
		}
		data, err := res.Commit(r.Context(), id)
		h.respond(w, http.StatusOK, data, err)
	}
}

func (h *Handler) handleReplaceItems(name string, res ItemsReplacer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !h.authorize(w, r, name, "put") {
			return
		}
		id, err := pathID(r)
		if err != nil {
			httpx.RespondError(w, err)
			return
		}
		data, err := res.ReplaceItems(r.Context(), id, r.Body)
		h.respond(w, http.StatusOK, data, err)
	}
}

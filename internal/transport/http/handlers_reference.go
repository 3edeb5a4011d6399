package httptransport

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"domainfolio/internal/category"
	"domainfolio/internal/registrar"
	dErrors "domainfolio/pkg/domain-errors"
	"domainfolio/pkg/httputil"
	"domainfolio/pkg/sentinel"
)

// RegistrarDirectory is the read-only registrar reference surface.
type RegistrarDirectory interface {
	List(ctx context.Context) ([]registrar.Registrar, error)
	FindByID(ctx context.Context, id uuid.UUID) (registrar.Registrar, error)
	AccountsByRegistrar(ctx context.Context, registrarID uuid.UUID) ([]registrar.Account, error)
}

// CategoryDirectory is the read-only category reference surface.
type CategoryDirectory interface {
	List(ctx context.Context) ([]category.Category, error)
}

// ReferenceHandler serves the registrar and category reference endpoints.
type ReferenceHandler struct {
	registrars RegistrarDirectory
	categories CategoryDirectory
}

func NewReferenceHandler(registrars RegistrarDirectory, categories CategoryDirectory) *ReferenceHandler {
	return &ReferenceHandler{registrars: registrars, categories: categories}
}

func (h *ReferenceHandler) Register(r chi.Router) {
	r.Get("/registrars", h.handleListRegistrars)
	r.Get("/registrars/{id}/accounts", h.handleListAccounts)
	r.Get("/categories", h.handleListCategories)
}

func (h *ReferenceHandler) handleListRegistrars(w http.ResponseWriter, r *http.Request) {
	registrars, err := h.registrars.List(r.Context())
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeInternal, "failed to load registrars"))
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]any{"registrars": registrars})
}

func (h *ReferenceHandler) handleListAccounts(w http.ResponseWriter, r *http.Request) {
	raw := chi.URLParam(r, "id")
	id, err := uuid.Parse(raw)
	if err != nil {
		httputil.WriteError(w, dErrors.Newf(dErrors.CodeBadRequest, "invalid registrar id %q", raw))
		return
	}
	if _, err := h.registrars.FindByID(r.Context(), id); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			httputil.WriteError(w, dErrors.New(dErrors.CodeNotFound, "registrar not found"))
			return
		}
		httputil.WriteError(w, dErrors.New(dErrors.CodeInternal, "failed to load registrar"))
		return
	}
	accounts, err := h.registrars.AccountsByRegistrar(r.Context(), id)
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeInternal, "failed to load accounts"))
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]any{"accounts": accounts})
}

func (h *ReferenceHandler) handleListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.categories.List(r.Context())
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeInternal, "failed to load categories"))
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]any{"categories": categories})
}

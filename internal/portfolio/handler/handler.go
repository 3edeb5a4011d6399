// Package handler is the thin HTTP layer over the portfolio service. It
// parses and validates requests, delegates to the service, and translates
// coded errors into the shared JSON envelope.
package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"domainfolio/internal/audit"
	"domainfolio/internal/portfolio/models"
	"domainfolio/internal/portfolio/query"
	"domainfolio/internal/portfolio/service"
	dErrors "domainfolio/pkg/domain-errors"
	"domainfolio/pkg/httputil"
)

// Service is the portfolio surface the handler delegates to.
type Service interface {
	List(ctx context.Context, f query.Filter, s query.Sort) ([]models.Domain, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Domain, error)
	Add(ctx context.Context, req service.AddDomain) (*models.Domain, error)
	Update(ctx context.Context, id uuid.UUID, upd service.UpdateDomain) (*models.Domain, error)
	SoftDelete(ctx context.Context, id uuid.UUID) (*models.Domain, error)
	Restore(ctx context.Context, id uuid.UUID) (*models.Domain, error)
	PermanentlyDelete(ctx context.Context, id uuid.UUID) error
	MarkSold(ctx context.Context, id uuid.UUID, sale models.SaleDetails) (*models.SoldDomain, error)
	ListSold(ctx context.Context) ([]models.SoldDomain, error)
	RefreshWhois(ctx context.Context, ids []uuid.UUID) ([]service.RefreshResult, error)
}

// AuditReader exposes the per-domain audit trail.
type AuditReader interface {
	ListByDomain(ctx context.Context, domainID uuid.UUID) ([]audit.Event, error)
}

// Handler handles the /domains routes.
type Handler struct {
	portfolio Service
	auditLog  AuditReader
	logger    *slog.Logger
}

// New creates a portfolio Handler. auditLog may be nil; the audit endpoint
// then returns empty trails.
func New(portfolio Service, auditLog AuditReader, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{portfolio: portfolio, auditLog: auditLog, logger: logger}
}

// Register mounts the portfolio routes on r.
func (h *Handler) Register(r chi.Router) {
	r.Route("/domains", func(r chi.Router) {
		r.Get("/", h.handleList)
		r.Post("/", h.handleAdd)
		r.Get("/sold", h.handleListSold)
		r.Post("/refresh", h.handleRefresh)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", h.handleGet)
			r.Patch("/", h.handleUpdate)
			r.Delete("/", h.handleSoftDelete)
			r.Post("/restore", h.handleRestore)
			r.Delete("/purge", h.handlePurge)
			r.Post("/sell", h.handleSell)
			r.Get("/audit", h.handleAuditTrail)
		})
	})
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	f, s, err := parseListQuery(r.URL.Query())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	domains, err := h.portfolio.List(r.Context(), f, s)
	if err != nil {
		h.logError(r, "list domains", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, listResponse{Domains: domains, Count: len(domains)})
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	d, err := h.portfolio.Get(r.Context(), id)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, d)
}

func (h *Handler) handleAdd(w http.ResponseWriter, r *http.Request) {
	var req addDomainRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}
	add, err := req.toService()
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	d, err := h.portfolio.Add(r.Context(), add)
	if err != nil {
		h.logError(r, "add domain", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, d)
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	var req updateDomainRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}
	upd, err := req.toService()
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	d, err := h.portfolio.Update(r.Context(), id, upd)
	if err != nil {
		h.logError(r, "update domain", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, d)
}

func (h *Handler) handleSoftDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	d, err := h.portfolio.SoftDelete(r.Context(), id)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, d)
}

func (h *Handler) handleRestore(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	d, err := h.portfolio.Restore(r.Context(), id)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, d)
}

func (h *Handler) handlePurge(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	if err := h.portfolio.PermanentlyDelete(r.Context(), id); err != nil {
		httputil.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleSell(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	var req sellDomainRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}
	sale, err := req.toModel()
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	sold, err := h.portfolio.MarkSold(r.Context(), id, sale)
	if err != nil {
		h.logError(r, "mark domain sold", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, sold)
}

func (h *Handler) handleListSold(w http.ResponseWriter, r *http.Request) {
	sold, err := h.portfolio.ListSold(r.Context())
	if err != nil {
		h.logError(r, "list sold domains", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, soldListResponse{Domains: sold, Count: len(sold)})
}

func (h *Handler) handleRefresh(w http.ResponseWriter, r *http.Request) {
	var req refreshRequest
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
			return
		}
	}
	ids, err := parseUUIDList(req.DomainIDs, "domain_ids")
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	results, err := h.portfolio.RefreshWhois(r.Context(), ids)
	if err != nil {
		h.logError(r, "refresh whois", err)
		httputil.WriteError(w, err)
		return
	}
	status := http.StatusOK
	if service.Failed(results) {
		// Partial failure: per-item errors are in the body.
		status = http.StatusMultiStatus
	}
	httputil.WriteJSON(w, status, refreshResponse{Results: results})
}

func (h *Handler) handleAuditTrail(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	if h.auditLog == nil {
		httputil.WriteJSON(w, http.StatusOK, auditResponse{Events: nil})
		return
	}
	events, err := h.auditLog.ListByDomain(r.Context(), id)
	if err != nil {
		h.logError(r, "list audit trail", err)
		httputil.WriteError(w, dErrors.New(dErrors.CodeInternal, "failed to load audit trail"))
		return
	}
	httputil.WriteJSON(w, http.StatusOK, auditResponse{Events: events})
}

func (h *Handler) pathID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	raw := chi.URLParam(r, "id")
	id, err := uuid.Parse(raw)
	if err != nil {
		httputil.WriteError(w, dErrors.Newf(dErrors.CodeBadRequest, "invalid domain id %q", raw))
		return uuid.Nil, false
	}
	return id, true
}

func (h *Handler) logError(r *http.Request, op string, err error) {
	if dErrors.CodeOf(err) != dErrors.CodeInternal {
		return
	}
	h.logger.ErrorContext(r.Context(), "portfolio operation failed",
		"op", op,
		"error", err.Error(),
	)
}

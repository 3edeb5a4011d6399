package httptransport

import (
	"net/http"
	"strings"

	"github.com/asaskevich/govalidator"
	"github.com/go-chi/chi/v5"

	"domainfolio/internal/whois"
	dErrors "domainfolio/pkg/domain-errors"
	"domainfolio/pkg/httputil"
)

// WhoisHandler exposes direct WHOIS lookups and availability checks.
type WhoisHandler struct {
	client whois.Client
}

func NewWhoisHandler(client whois.Client) *WhoisHandler {
	return &WhoisHandler{client: client}
}

func (h *WhoisHandler) Register(r chi.Router) {
	r.Get("/whois/{name}", h.handleLookup)
	r.Get("/whois/{name}/availability", h.handleAvailability)
}

func (h *WhoisHandler) handleLookup(w http.ResponseWriter, r *http.Request) {
	name, err := domainParam(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	rec, err := h.client.Fetch(r.Context(), name)
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeInternal, "whois lookup failed"))
		return
	}
	httputil.WriteJSON(w, http.StatusOK, rec)
}

func (h *WhoisHandler) handleAvailability(w http.ResponseWriter, r *http.Request) {
	name, err := domainParam(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	available, err := h.client.CheckAvailability(r.Context(), name)
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeInternal, "availability check failed"))
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]any{
		"domain":    name,
		"available": available,
	})
}

func domainParam(r *http.Request) (string, error) {
	name := strings.ToLower(strings.TrimSpace(chi.URLParam(r, "name")))
	if !govalidator.IsDNSName(name) || !strings.Contains(name, ".") {
		return "", dErrors.Newf(dErrors.CodeValidation, "invalid domain name %q", name)
	}
	return name, nil
}

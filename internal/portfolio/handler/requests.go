package handler

import (
	"net/url"
	"strings"
	"time"

	"github.com/asaskevich/govalidator"
	"github.com/google/uuid"

	"domainfolio/internal/portfolio/models"
	"domainfolio/internal/portfolio/query"
	"domainfolio/internal/portfolio/service"
	dErrors "domainfolio/pkg/domain-errors"
)

// Dates are accepted as calendar dates or full RFC 3339 timestamps.
var dateLayouts = []string{"2006-01-02", time.RFC3339}

type addDomainRequest struct {
	Name               string   `json:"name"`
	RegistrationDate   string   `json:"registration_date,omitempty"`
	ExpirationDate     string   `json:"expiration_date,omitempty"`
	RegistrarAccountID string   `json:"registrar_account_id,omitempty"`
	CategoryIDs        []string `json:"category_ids,omitempty"`
	Price              float64  `json:"price,omitempty"`
	Currency           string   `json:"currency,omitempty"`
}

func (r *addDomainRequest) toService() (service.AddDomain, error) {
	name := strings.ToLower(strings.TrimSpace(r.Name))
	if !govalidator.IsDNSName(name) || !strings.Contains(name, ".") {
		return service.AddDomain{}, dErrors.New(dErrors.CodeValidation, "invalid domain name")
	}

	out := service.AddDomain{Name: name, Price: r.Price, Currency: r.Currency}

	var err error
	if out.RegistrationDate, err = parseOptionalDate(r.RegistrationDate, "registration_date"); err != nil {
		return service.AddDomain{}, err
	}
	if out.ExpirationDate, err = parseOptionalDate(r.ExpirationDate, "expiration_date"); err != nil {
		return service.AddDomain{}, err
	}
	if out.RegistrarAccountID, err = parseOptionalUUID(r.RegistrarAccountID, "registrar_account_id"); err != nil {
		return service.AddDomain{}, err
	}
	if out.CategoryIDs, err = parseUUIDList(r.CategoryIDs, "category_ids"); err != nil {
		return service.AddDomain{}, err
	}
	return out, nil
}

type updateDomainRequest struct {
	Name               *string   `json:"name,omitempty"`
	RegistrationDate   *string   `json:"registration_date,omitempty"`
	ExpirationDate     *string   `json:"expiration_date,omitempty"`
	Status             *string   `json:"status,omitempty"`
	RegistrarAccountID *string   `json:"registrar_account_id,omitempty"`
	CategoryIDs        *[]string `json:"category_ids,omitempty"`
	Price              *float64  `json:"price,omitempty"`
	Currency           *string   `json:"currency,omitempty"`
}

func (r *updateDomainRequest) toService() (service.UpdateDomain, error) {
	out := service.UpdateDomain{Name: r.Name, Price: r.Price, Currency: r.Currency}

	if r.RegistrationDate != nil {
		t, err := parseDate(*r.RegistrationDate, "registration_date")
		if err != nil {
			return service.UpdateDomain{}, err
		}
		out.RegistrationDate = &t
	}
	if r.ExpirationDate != nil {
		t, err := parseDate(*r.ExpirationDate, "expiration_date")
		if err != nil {
			return service.UpdateDomain{}, err
		}
		out.ExpirationDate = &t
	}
	if r.Status != nil {
		st := models.Status(*r.Status)
		if !st.Valid() {
			return service.UpdateDomain{}, dErrors.Newf(dErrors.CodeValidation, "unknown status %q", *r.Status)
		}
		out.Status = &st
	}
	if r.RegistrarAccountID != nil {
		id, err := parseOptionalUUID(*r.RegistrarAccountID, "registrar_account_id")
		if err != nil {
			return service.UpdateDomain{}, err
		}
		out.RegistrarAccountID = &id
	}
	if r.CategoryIDs != nil {
		ids, err := parseUUIDList(*r.CategoryIDs, "category_ids")
		if err != nil {
			return service.UpdateDomain{}, err
		}
		out.CategoryIDs = &ids
	}
	return out, nil
}

type sellDomainRequest struct {
	SaleDate      string  `json:"sale_date,omitempty"`
	SalePrice     float64 `json:"sale_price"`
	PurchasePrice float64 `json:"purchase_price"`
	Buyer         string  `json:"buyer,omitempty"`
	SaleNotes     string  `json:"sale_notes,omitempty"`
	Marketplace   string  `json:"marketplace,omitempty"`
}

func (r *sellDomainRequest) toModel() (models.SaleDetails, error) {
	saleDate, err := parseOptionalDate(r.SaleDate, "sale_date")
	if err != nil {
		return models.SaleDetails{}, err
	}
	return models.SaleDetails{
		SaleDate:      saleDate,
		SalePrice:     r.SalePrice,
		PurchasePrice: r.PurchasePrice,
		Buyer:         r.Buyer,
		SaleNotes:     r.SaleNotes,
		Marketplace:   r.Marketplace,
	}, nil
}

type refreshRequest struct {
	DomainIDs []string `json:"domain_ids,omitempty"`
}

// parseListQuery maps query parameters onto the filter/sort specification.
func parseListQuery(values url.Values) (query.Filter, query.Sort, error) {
	f := query.Filter{
		Search:       values.Get("search"),
		ExcludeTrash: values.Get("exclude_trash") == "true",
	}
	if st := values.Get("status"); st != "" {
		status := models.Status(st)
		if !status.Valid() {
			return f, query.Sort{}, dErrors.Newf(dErrors.CodeValidation, "unknown status %q", st)
		}
		f.Status = status
	}
	var err error
	if f.RegistrarAccountID, err = parseOptionalUUID(values.Get("registrar_account_id"), "registrar_account_id"); err != nil {
		return f, query.Sort{}, err
	}
	if f.RegistrarID, err = parseOptionalUUID(values.Get("registrar_id"), "registrar_id"); err != nil {
		return f, query.Sort{}, err
	}
	if f.CategoryID, err = parseOptionalUUID(values.Get("category_id"), "category_id"); err != nil {
		return f, query.Sort{}, err
	}

	s := query.Sort{Field: values.Get("sort_by"), Order: query.Asc}
	if order := values.Get("sort_order"); order != "" {
		switch query.Order(order) {
		case query.Asc, query.Desc:
			s.Order = query.Order(order)
		default:
			return f, s, dErrors.Newf(dErrors.CodeValidation, "sort_order must be asc or desc")
		}
	}
	return f, s, nil
}

func parseDate(v, field string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return t, nil
		}
	}
	return time.Time{}, dErrors.Newf(dErrors.CodeValidation, "invalid %s: %q", field, v)
}

func parseOptionalDate(v, field string) (time.Time, error) {
	if strings.TrimSpace(v) == "" {
		return time.Time{}, nil
	}
	return parseDate(v, field)
}

func parseOptionalUUID(v, field string) (uuid.UUID, error) {
	if strings.TrimSpace(v) == "" {
		return uuid.Nil, nil
	}
	id, err := uuid.Parse(v)
	if err != nil {
		return uuid.Nil, dErrors.Newf(dErrors.CodeValidation, "invalid %s: %q", field, v)
	}
	return id, nil
}

func parseUUIDList(values []string, field string) ([]uuid.UUID, error) {
	if len(values) == 0 {
		return nil, nil
	}
	out := make([]uuid.UUID, 0, len(values))
	for _, v := range values {
		id, err := uuid.Parse(v)
		if err != nil {
			return nil, dErrors.Newf(dErrors.CodeValidation, "invalid %s entry: %q", field, v)
		}
		out = append(out, id)
	}
	return out, nil
}

package models

import (
	"time"

	dErrors "domainfolio/pkg/domain-errors"
)

// SaleDetails carries the user-supplied fields of a sale.
type SaleDetails struct {
	SaleDate      time.Time `json:"sale_date"`
	SalePrice     float64   `json:"sale_price"`
	PurchasePrice float64   `json:"purchase_price"`
	Buyer         string    `json:"buyer,omitempty"`
	SaleNotes     string    `json:"sale_notes,omitempty"`
	Marketplace   string    `json:"marketplace,omitempty"`
}

// SoldDomain is a domain record frozen at sale time plus the sale fields.
// ROI is computed once when the sale is recorded and never rederived.
type SoldDomain struct {
	Domain
	SaleDetails
	ROI float64 `json:"roi"`
}

// ComputeROI returns the return on investment as a percentage. A zero or
// negative purchase price has no meaningful ROI and is rejected rather than
// producing Inf/NaN.
func ComputeROI(salePrice, purchasePrice float64) (float64, error) {
	if purchasePrice <= 0 {
		return 0, dErrors.New(dErrors.CodeValidation, "purchase price must be greater than zero")
	}
	return (salePrice - purchasePrice) / purchasePrice * 100, nil
}

// MarkSold freezes the domain into a SoldDomain as of now. Call CanMarkSold
// first; the caller is responsible for removing the original record from
// the active list so sold domains never linger there.
func (d *Domain) MarkSold(sale SaleDetails, now time.Time) (*SoldDomain, error) {
	roi, err := ComputeROI(sale.SalePrice, sale.PurchasePrice)
	if err != nil {
		return nil, err
	}
	if sale.SaleDate.IsZero() {
		sale.SaleDate = now
	}
	frozen := *d
	frozen.Status = StatusSold
	frozen.UpdatedAt = now
	return &SoldDomain{Domain: frozen, SaleDetails: sale, ROI: roi}, nil
}

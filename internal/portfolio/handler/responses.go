package handler

import (
	"domainfolio/internal/audit"
	"domainfolio/internal/portfolio/models"
	"domainfolio/internal/portfolio/service"
)

type listResponse struct {
	Domains []models.Domain `json:"domains"`
	Count   int             `json:"count"`
}

type soldListResponse struct {
	Domains []models.SoldDomain `json:"domains"`
	Count   int                 `json:"count"`
}

type refreshResponse struct {
	Results []service.RefreshResult `json:"results"`
}

type auditResponse struct {
	Events []audit.Event `json:"events"`
}

package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	DomainsCreated  prometheus.Counter
	DomainsSold     prometheus.Counter
	DomainsPurged   prometheus.Counter
	WhoisFetches    *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
}

// New creates and registers all Prometheus metrics.
func New() *Metrics {
	return &Metrics{
		DomainsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "domainfolio_domains_created_total",
			Help: "Total number of domains added to the portfolio",
		}),
		DomainsSold: promauto.NewCounter(prometheus.CounterOpts{
			Name: "domainfolio_domains_sold_total",
			Help: "Total number of domains marked sold",
		}),
		DomainsPurged: promauto.NewCounter(prometheus.CounterOpts{
			Name: "domainfolio_domains_purged_total",
			Help: "Total number of domains permanently deleted",
		}),
		WhoisFetches: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "domainfolio_whois_fetches_total",
			Help: "WHOIS fetches by result",
		}, []string{"result"}),
		RequestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "domainfolio_http_request_duration_seconds",
			Help:    "HTTP request latency by route and status",
			Buckets: prometheus.DefBuckets,
		}, []string{"route", "method", "status"}),
	}
}

// ObserveWhoisFetch records one WHOIS fetch outcome.
func (m *Metrics) ObserveWhoisFetch(ok bool) {
	result := "ok"
	if !ok {
		result = "error"
	}
	m.WhoisFetches.WithLabelValues(result).Inc()
}

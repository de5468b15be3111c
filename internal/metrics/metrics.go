// Package metrics exposes the service's Prometheus instruments. Collectors
// are registered on the default registry and served on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Claim race outcomes, used as the result label of DeliveryClaimsTotal.
const (
	ClaimResultWon      = "won"
	ClaimResultConflict = "conflict"
	ClaimResultNotFound = "not_found"
)

var (
	// OrdersCreatedTotal counts successfully created orders.
	OrdersCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "terabia_orders_created_total",
		Help: "Number of orders created.",
	})

	// OrderNumberRetriesTotal counts order-number allocation attempts that hit
	// a uniqueness conflict and were retried.
	OrderNumberRetriesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "terabia_order_number_retries_total",
		Help: "Number of order-number allocation retries.",
	})

	// DeliveryClaimsTotal counts delivery claim attempts by outcome.
	DeliveryClaimsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "terabia_delivery_claims_total",
		Help: "Number of delivery claim attempts by result.",
	}, []string{"result"})

	// SellerStatsRequestsTotal counts seller statistics computations by cache
	// outcome (hit or miss).
	SellerStatsRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "terabia_seller_stats_requests_total",
		Help: "Number of seller stats requests by cache outcome.",
	}, []string{"cache"})
)

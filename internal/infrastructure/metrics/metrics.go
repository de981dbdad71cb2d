package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// EngineMetrics aggregates the prometheus instruments of the coordination
// engine.
type EngineMetrics struct {
	OffersCreatedTotal   prometheus.CounterVec
	OffersSettledTotal   prometheus.CounterVec
	OffersRejectedTotal  prometheus.CounterVec
	OffersCancelledTotal prometheus.CounterVec

	EscrowHoldsOpen prometheus.Gauge

	DisputesRaisedTotal prometheus.CounterVec
	DisputesClosedTotal prometheus.CounterVec

	OperationDuration prometheus.HistogramVec

	EngineErrorsTotal prometheus.CounterVec
}

func NewEngineMetrics() *EngineMetrics {
	return &EngineMetrics{
		OffersCreatedTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "offers_created_total",
				Help: "Offers recorded in OFFERED state",
			},
			[]string{"asset_kind"},
		),

		OffersSettledTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "offers_settled_total",
				Help: "Offers accepted and settled",
			},
			[]string{"asset_kind"},
		),

		OffersRejectedTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "offers_rejected_total",
				Help: "Offers rejected by the investor",
			},
			[]string{"asset_kind"},
		),

		OffersCancelledTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "offers_cancelled_total",
				Help: "Offers cancelled by the issuer",
			},
			[]string{"asset_kind"},
		),

		EscrowHoldsOpen: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "escrow_holds_open",
				Help: "Custody holds currently outstanding",
			},
		),

		DisputesRaisedTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "disputes_raised_total",
				Help: "Disputes recorded in RAISED state",
			},
			[]string{"linked"},
		),

		DisputesClosedTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "disputes_closed_total",
				Help: "Disputes moved to a moderator-decided status",
			},
			[]string{"status"},
		),

		OperationDuration: *promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "engine_operation_duration_seconds",
				Help:    "Latency of engine state transitions",
				Buckets: prometheus.ExponentialBuckets(0.001, 2, 12),
			},
			[]string{"operation"},
		),

		EngineErrorsTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "engine_errors_total",
				Help: "Failed engine operations by error class",
			},
			[]string{"operation", "class"},
		),
	}
}

func (m *EngineMetrics) RecordOfferCreated(assetKind string, escrowed bool) {
	m.OffersCreatedTotal.WithLabelValues(assetKind).Inc()
	if escrowed {
		m.EscrowHoldsOpen.Inc()
	}
}

func (m *EngineMetrics) RecordOfferClosed(assetKind, status string, escrowed bool) {
	switch status {
	case "ACCEPTED":
		m.OffersSettledTotal.WithLabelValues(assetKind).Inc()
	case "REJECTED":
		m.OffersRejectedTotal.WithLabelValues(assetKind).Inc()
	case "CANCELLED":
		m.OffersCancelledTotal.WithLabelValues(assetKind).Inc()
	}
	if escrowed {
		m.EscrowHoldsOpen.Dec()
	}
}

func (m *EngineMetrics) RecordDisputeRaised(linkedToOffer bool) {
	linked := "false"
	if linkedToOffer {
		linked = "true"
	}
	m.DisputesRaisedTotal.WithLabelValues(linked).Inc()
}

func (m *EngineMetrics) RecordDisputeClosed(status string) {
	m.DisputesClosedTotal.WithLabelValues(status).Inc()
}

func (m *EngineMetrics) RecordOperationDuration(operation string, seconds float64) {
	m.OperationDuration.WithLabelValues(operation).Observe(seconds)
}

func (m *EngineMetrics) RecordError(operation, class string) {
	m.EngineErrorsTotal.WithLabelValues(operation, class).Inc()
}

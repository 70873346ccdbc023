package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// AuctionMetrics holds the metric vectors for the four state machines.
// A nil *AuctionMetrics is valid and records nothing, so tests can pass nil.
type AuctionMetrics struct {
	BidsPlacedTotal         prometheus.CounterVec
	BidPlacementDuration    prometheus.HistogramVec
	AuctionsSettledTotal    prometheus.CounterVec
	SettlementSweepDuration prometheus.HistogramVec
	EscrowTransitionsTotal  prometheus.CounterVec
	DisputesOpenedTotal     prometheus.CounterVec
	DisputesResolvedTotal   prometheus.CounterVec
	DisputeMessagesTotal    prometheus.Counter
	ErrorsTotal             prometheus.CounterVec
}

func NewAuctionMetrics() *AuctionMetrics {
	return &AuctionMetrics{
		BidsPlacedTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "auction_bids_placed_total",
				Help: "Bids by outcome (accepted, outbid, rejected)",
			},
			[]string{"outcome"},
		),

		BidPlacementDuration: *promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "auction_bid_placement_duration_seconds",
				Help:    "Bid placement latency including the cache advance",
				Buckets: prometheus.ExponentialBuckets(0.001, 2, 12),
			},
			[]string{"outcome"},
		),

		AuctionsSettledTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "auction_settlements_total",
				Help: "Auction-end outcomes (settled, unsold, error)",
			},
			[]string{"result"},
		),

		SettlementSweepDuration: *promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "auction_settlement_sweep_duration_seconds",
				Help:    "Duration of one expired-auction sweep pass",
				Buckets: prometheus.ExponentialBuckets(0.01, 2, 10),
			},
			[]string{},
		),

		EscrowTransitionsTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "escrow_transitions_total",
				Help: "Escrow custody transitions by action and outcome",
			},
			[]string{"action", "outcome"},
		),

		DisputesOpenedTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "disputes_opened_total",
				Help: "Disputes opened by reason",
			},
			[]string{"reason"},
		),

		DisputesResolvedTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "disputes_resolved_total",
				Help: "Disputes resolved by terminal status",
			},
			[]string{"status"},
		),

		DisputeMessagesTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "dispute_messages_total",
				Help: "Messages appended to dispute threads",
			},
		),

		ErrorsTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "auction_errors_total",
				Help: "Unexpected internal failures by operation",
			},
			[]string{"operation"},
		),
	}
}

func (m *AuctionMetrics) RecordBid(outcome string, seconds float64) {
	if m == nil {
		return
	}
	m.BidsPlacedTotal.WithLabelValues(outcome).Inc()
	m.BidPlacementDuration.WithLabelValues(outcome).Observe(seconds)
}

func (m *AuctionMetrics) RecordSettlement(result string) {
	if m == nil {
		return
	}
	m.AuctionsSettledTotal.WithLabelValues(result).Inc()
}

func (m *AuctionMetrics) RecordSweep(seconds float64) {
	if m == nil {
		return
	}
	m.SettlementSweepDuration.WithLabelValues().Observe(seconds)
}

func (m *AuctionMetrics) RecordEscrowTransition(action, outcome string) {
	if m == nil {
		return
	}
	m.EscrowTransitionsTotal.WithLabelValues(action, outcome).Inc()
}

func (m *AuctionMetrics) RecordDisputeOpened(reason string) {
	if m == nil {
		return
	}
	m.DisputesOpenedTotal.WithLabelValues(reason).Inc()
}

func (m *AuctionMetrics) RecordDisputeResolved(status string) {
	if m == nil {
		return
	}
	m.DisputesResolvedTotal.WithLabelValues(status).Inc()
}

func (m *AuctionMetrics) RecordDisputeMessage() {
	if m == nil {
		return
	}
	m.DisputeMessagesTotal.Inc()
}

func (m *AuctionMetrics) RecordError(operation string) {
	if m == nil {
		return
	}
	m.ErrorsTotal.WithLabelValues(operation).Inc()
}

package background

import (
	"context"
	"log/slog"
	"time"

	"github.com/tradeyard/tradeyard-auction-service/internal/config"
)

type SettlementSweeper interface {
	SweepEndedAuctions(batchSize int) (int, error)
}

type DisputeEscalator interface {
	EscalateOverdueDisputes(responseTimeout time.Duration) (int, error)
}

// BackgroundTasks runs the two periodic sweeps: settling ended auctions and
// escalating disputes whose awaited party went silent.
type BackgroundTasks struct {
	settlement SettlementSweeper
	disputes   DisputeEscalator
	rules      config.AuctionRules
}

func NewBackgroundTasks(settlement SettlementSweeper, disputes DisputeEscalator, rules config.AuctionRules) *BackgroundTasks {
	return &BackgroundTasks{
		settlement: settlement,
		disputes:   disputes,
		rules:      rules,
	}
}

func (bt *BackgroundTasks) StartAll(ctx context.Context) {
	go bt.runAuctionSweep(ctx)
	go bt.runDisputeEscalation(ctx)
}

func (bt *BackgroundTasks) runAuctionSweep(ctx context.Context) {
	ticker := time.NewTicker(bt.rules.SweepInterval)
	defer ticker.Stop()

	slog.Info("auction sweep started", "interval", bt.rules.SweepInterval.String())
	for {
		select {
		case <-ctx.Done():
			slog.Info("auction sweep stopped")
			return
		case <-ticker.C:
			settled, err := bt.settlement.SweepEndedAuctions(bt.rules.SweepBatchSize)
			if err != nil {
				slog.Error("auction sweep failed", "error", err.Error())
				continue
			}
			if settled > 0 {
				slog.Info("auction sweep settled items", "count", settled)
			}
		}
	}
}

func (bt *BackgroundTasks) runDisputeEscalation(ctx context.Context) {
	ticker := time.NewTicker(bt.rules.EscalationInterval)
	defer ticker.Stop()

	slog.Info("dispute escalation sweep started", "interval", bt.rules.EscalationInterval.String())
	for {
		select {
		case <-ctx.Done():
			slog.Info("dispute escalation sweep stopped")
			return
		case <-ticker.C:
			escalated, err := bt.disputes.EscalateOverdueDisputes(bt.rules.DisputeResponseTimeout)
			if err != nil {
				slog.Error("dispute escalation sweep failed", "error", err.Error())
				continue
			}
			if escalated > 0 {
				slog.Info("disputes escalated to admin review", "count", escalated)
			}
		}
	}
}

package usecase

import (
	"log/slog"
	"time"
)

// SweepEndedAuctions settles every active item whose closing time has passed,
// up to batchSize per pass. One failed item does not stop the sweep.
func (uc *DefaultSettlementUsecase) SweepEndedAuctions(batchSize int) (int, error) {
	started := time.Now()

	items, err := uc.itemRepo.FindEndedActiveItems(batchSize)
	if err != nil {
		return 0, err
	}

	settled := 0
	for _, item := range items {
		if _, err := uc.ProcessAuctionEnd(item.ID); err != nil {
			slog.Error("failed to settle ended auction", "item_id", item.ID, "error", err.Error())
			uc.metrics.RecordError("auction_sweep")
			continue
		}
		settled++
	}

	uc.metrics.RecordSweep(time.Since(started).Seconds())
	return settled, nil
}

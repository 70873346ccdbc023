package usecase

import (
	"encoding/json"

	"github.com/tradeyard/tradeyard-auction-service/internal/domain"
)

// RepairAuctionCache rebuilds the item's cached auction fields from the bid
// history. Arbiter-only: this is the reconciliation tool, not a user path.
func (uc *DefaultBidUsecase) RepairAuctionCache(actor domain.Actor, itemID string) (*domain.Item, error) {
	if !actor.IsArbiter() {
		return nil, &domain.IneligibleActorError{ActorID: actor.ID, Reason: "cache repair requires arbiter role"}
	}

	item, err := uc.bidRepo.RecomputeAuctionCache(itemID)
	if err != nil {
		return nil, err
	}

	detail, _ := json.Marshal(map[string]interface{}{
		"current_bid_amount": item.CurrentBidAmount.StringFixed(2),
		"bid_count":          item.BidCount,
	})
	if err := uc.auditRepo.Append(&domain.AuditEntry{
		ActorID:    actor.ID,
		Action:     domain.ActionCacheRepaired,
		EntityType: domain.EntityItem,
		EntityID:   itemID,
		Detail:     string(detail),
	}); err != nil {
		return nil, err
	}

	return item, nil
}

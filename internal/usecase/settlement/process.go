package usecase

import (
	"encoding/json"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/tradeyard/tradeyard-auction-service/internal/domain"
)

// ProcessAuctionEnd settles a single ended auction: a winning bid becomes a
// PENDING transaction with a PENDING escrow record; a zero-bid auction is
// closed unsold. Deactivating the item is the idempotency gate, so concurrent
// invocations produce at most one transaction. Returns (nil, nil) when
// another caller already settled the item.
func (uc *DefaultSettlementUsecase) ProcessAuctionEnd(itemID string) (*domain.Transaction, error) {
	item, err := uc.itemRepo.GetItemByID(itemID)
	if err != nil {
		return nil, err
	}

	if !item.IsActive {
		return nil, nil
	}
	if item.EndsAt.After(time.Now()) {
		return nil, &domain.StateConflictError{
			Code:   domain.ConflictAuctionStillOpen,
			Reason: "auction has not reached its closing time",
		}
	}

	if item.BidCount == 0 {
		entry := &domain.AuditEntry{
			ActorID:    "system",
			Action:     domain.ActionAuctionUnsold,
			EntityType: domain.EntityItem,
			EntityID:   item.ID,
		}
		closed, err := uc.txRepo.CloseUnsold(item.ID, entry)
		if err != nil {
			uc.metrics.RecordSettlement("error")
			return nil, err
		}
		if !closed {
			return nil, nil
		}
		uc.metrics.RecordSettlement("unsold")
		uc.notify(domain.AuctionEvent{
			Type:     domain.EventAuctionUnsold,
			ItemID:   item.ID,
			SellerID: item.SellerID,
		})
		return nil, nil
	}

	winning, err := uc.bidRepo.GetBidByID(item.CurrentBidID)
	if err != nil {
		uc.metrics.RecordSettlement("error")
		return nil, err
	}

	now := time.Now()
	txn := &domain.Transaction{
		ID:           uuid.New().String(),
		ItemID:       item.ID,
		BuyerID:      winning.BidderID,
		SellerID:     item.SellerID,
		Amount:       winning.Amount,
		Status:       domain.TransactionPending,
		EscrowStatus: domain.EscrowPending,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	escrow := &domain.EscrowRecord{
		ID:            uuid.New().String(),
		TransactionID: txn.ID,
		Amount:        winning.Amount,
		Status:        domain.EscrowPending,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	detail, _ := json.Marshal(map[string]string{
		"winning_bid_id": winning.ID,
		"buyer_id":       winning.BidderID,
		"amount":         winning.Amount.StringFixed(2),
	})
	entry := &domain.AuditEntry{
		ActorID:    "system",
		Action:     domain.ActionAuctionSettled,
		EntityType: domain.EntityTransaction,
		EntityID:   txn.ID,
		Detail:     string(detail),
	}

	settled, err := uc.txRepo.SettleAuction(item.ID, txn, escrow, entry)
	if err != nil {
		uc.metrics.RecordSettlement("error")
		return nil, err
	}
	if !settled {
		slog.Info("auction already settled by another worker", "item_id", item.ID)
		return nil, nil
	}

	uc.metrics.RecordSettlement("settled")
	uc.notify(domain.AuctionEvent{
		Type:          domain.EventAuctionSettled,
		ItemID:        item.ID,
		TransactionID: txn.ID,
		SellerID:      txn.SellerID,
		BuyerID:       txn.BuyerID,
		Amount:        txn.Amount.StringFixed(2),
	})

	return txn, nil
}

func (uc *DefaultSettlementUsecase) notify(event domain.AuctionEvent) {
	go func() {
		if err := uc.publisher.PublishAuctionEvent(event); err != nil {
			slog.Error("failed to publish auction event", "type", event.Type, "item_id", event.ItemID, "error", err.Error())
		}
	}()
}

package usecase

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/tradeyard/tradeyard-auction-service/internal/domain"
	biddto "github.com/tradeyard/tradeyard-auction-service/internal/usecase/dto/bid"
)

// PlaceBid validates every precondition against a snapshot of the item, then
// hands the insert-and-advance to the repository as one atomic unit. A lost
// race comes back as a StateConflictError carrying the amount that beat us,
// so the caller can decide to rebid higher.
func (uc *DefaultBidUsecase) PlaceBid(input *biddto.PlaceBidInput) (*biddto.PlaceBidOutput, error) {
	started := time.Now()

	if !input.Amount.IsPositive() {
		uc.metrics.RecordBid("rejected", time.Since(started).Seconds())
		return nil, &domain.ValidationError{Field: "amount", Reason: "must be positive"}
	}

	item, err := uc.itemRepo.GetItemByID(input.ItemID)
	if err != nil {
		return nil, err
	}

	if item.SellerID == input.Actor.ID {
		uc.metrics.RecordBid("rejected", time.Since(started).Seconds())
		return nil, &domain.IneligibleActorError{ActorID: input.Actor.ID, Reason: "seller may not bid on own item"}
	}
	if !item.IsActive {
		uc.metrics.RecordBid("rejected", time.Since(started).Seconds())
		return nil, &domain.StateConflictError{
			Code:          domain.ConflictAuctionClosed,
			Reason:        "auction is no longer active",
			CurrentAmount: item.CurrentBidAmount,
		}
	}
	if !item.EndsAt.After(time.Now()) {
		uc.metrics.RecordBid("rejected", time.Since(started).Seconds())
		return nil, &domain.StateConflictError{
			Code:          domain.ConflictAuctionEnded,
			Reason:        "auction closing time has passed",
			CurrentAmount: item.CurrentBidAmount,
		}
	}

	// Floor: current highest + increment, or starting price + increment when
	// no bids exist yet, so every accepted bid is a strict improvement.
	floor := item.StartingPrice
	if item.BidCount > 0 {
		floor = item.CurrentBidAmount
	}
	floor = floor.Add(uc.minIncrement)
	if input.Amount.LessThan(floor) {
		uc.metrics.RecordBid("rejected", time.Since(started).Seconds())
		return nil, &domain.StateConflictError{
			Code:          domain.ConflictBidTooLow,
			Reason:        fmt.Sprintf("bid must be at least %s", floor.StringFixed(2)),
			CurrentAmount: item.CurrentBidAmount,
		}
	}

	previousBidID := item.CurrentBidID

	bid := &domain.Bid{
		ItemID:    item.ID,
		BidderID:  input.Actor.ID,
		Amount:    input.Amount,
		CreatedAt: time.Now(),
	}
	detail, _ := json.Marshal(map[string]string{
		"amount": input.Amount.StringFixed(2),
	})
	entry := &domain.AuditEntry{
		ActorID:    input.Actor.ID,
		Action:     domain.ActionBidPlaced,
		EntityType: domain.EntityItem,
		EntityID:   item.ID,
		Detail:     string(detail),
	}

	err = uc.bidRepo.PlaceBid(bid, domain.AuctionSnapshot{
		BidCount:         item.BidCount,
		CurrentBidAmount: item.CurrentBidAmount,
	}, entry)
	if err != nil {
		if errors.Is(err, domain.ErrBidRaceLost) {
			current, rerr := uc.itemRepo.GetItemByID(input.ItemID)
			if rerr != nil {
				return nil, rerr
			}
			uc.metrics.RecordBid("outbid", time.Since(started).Seconds())
			return nil, &domain.StateConflictError{
				Code:          domain.ConflictOutbid,
				Reason:        fmt.Sprintf("outbid: current highest is %s", current.CurrentBidAmount.StringFixed(2)),
				CurrentAmount: current.CurrentBidAmount,
			}
		}
		return nil, err
	}

	uc.metrics.RecordBid("accepted", time.Since(started).Seconds())
	uc.notifyBidAccepted(item, bid, previousBidID)

	return &biddto.PlaceBidOutput{
		Bid:           bid,
		CurrentAmount: bid.Amount,
		BidCount:      item.BidCount + 1,
	}, nil
}

func (uc *DefaultBidUsecase) notifyBidAccepted(item *domain.Item, bid *domain.Bid, previousBidID string) {
	go func() {
		if err := uc.publisher.PublishAuctionEvent(domain.AuctionEvent{
			Type:     domain.EventBidAccepted,
			ItemID:   item.ID,
			BidID:    bid.ID,
			SellerID: item.SellerID,
			BuyerID:  bid.BidderID,
			Amount:   bid.Amount.StringFixed(2),
		}); err != nil {
			slog.Error("failed to publish auction event", "stage", "bid_accepted", "item_id", item.ID, "error", err.Error())
		}

		if previousBidID == "" {
			return
		}
		previous, err := uc.bidRepo.GetBidByID(previousBidID)
		if err != nil {
			slog.Error("failed to load outbid bid", "bid_id", previousBidID, "error", err.Error())
			return
		}
		if err := uc.publisher.PublishAuctionEvent(domain.AuctionEvent{
			Type:     domain.EventBidOutbid,
			ItemID:   item.ID,
			BidID:    previous.ID,
			SellerID: item.SellerID,
			BuyerID:  previous.BidderID,
			Amount:   bid.Amount.StringFixed(2),
		}); err != nil {
			slog.Error("failed to publish auction event", "stage", "bid_outbid", "item_id", item.ID, "error", err.Error())
		}
	}()
}

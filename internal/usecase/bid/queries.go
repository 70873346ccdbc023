package usecase

import (
	"log/slog"

	biddto "github.com/tradeyard/tradeyard-auction-service/internal/usecase/dto/bid"
)

// GetItemBids lists an item's bids newest-first, joined with the bidders'
// display identities. A profile-service failure degrades to an empty display
// name; the read never fails because of it.
func (uc *DefaultBidUsecase) GetItemBids(input *biddto.GetItemBidsInput) (*biddto.GetItemBidsOutput, error) {
	if input.Page < 1 {
		input.Page = 1
	}
	if input.Limit < 1 || input.Limit > 100 {
		input.Limit = 20
	}

	if _, err := uc.itemRepo.GetItemByID(input.ItemID); err != nil {
		return nil, err
	}

	bids, total, err := uc.bidRepo.GetItemBids(input.ItemID, input.Page, input.Limit)
	if err != nil {
		return nil, err
	}

	names := make(map[string]string)
	views := make([]biddto.BidView, len(bids))
	for i, bid := range bids {
		name, ok := names[bid.BidderID]
		if !ok {
			resolved, err := uc.profiles.GetDisplayName(bid.BidderID)
			if err != nil {
				slog.Warn("failed to resolve bidder display name", "bidder_id", bid.BidderID, "error", err.Error())
				resolved = ""
			}
			names[bid.BidderID] = resolved
			name = resolved
		}
		views[i] = biddto.BidView{
			ID:         bid.ID,
			BidderID:   bid.BidderID,
			BidderName: name,
			Amount:     bid.Amount,
			CreatedAt:  bid.CreatedAt,
		}
	}

	totalPages := total / input.Limit
	if total%input.Limit != 0 {
		totalPages++
	}

	return &biddto.GetItemBidsOutput{
		Bids: views,
		Pagination: biddto.Pagination{
			CurrentPage:  int32(input.Page),
			TotalPages:   int32(totalPages),
			TotalItems:   int32(total),
			ItemsPerPage: int32(input.Limit),
		},
	}, nil
}

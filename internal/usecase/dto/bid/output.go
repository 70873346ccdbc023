package biddto

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/tradeyard/tradeyard-auction-service/internal/domain"
)

type PlaceBidOutput struct {
	Bid           *domain.Bid
	CurrentAmount decimal.Decimal
	BidCount      int32
}

// BidView joins a bid with the bidder's display identity.
type BidView struct {
	ID         string
	BidderID   string
	BidderName string
	Amount     decimal.Decimal
	CreatedAt  time.Time
}

type Pagination struct {
	CurrentPage  int32
	TotalPages   int32
	TotalItems   int32
	ItemsPerPage int32
}

type GetItemBidsOutput struct {
	Bids       []BidView
	Pagination Pagination
}

package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Bid is immutable once written. The bid rows are the ground truth for an
// item's auction state; the item's cached fields are a derived projection.
type Bid struct {
	ID        string
	ItemID    string
	BidderID  string
	Amount    decimal.Decimal
	CreatedAt time.Time
}

// AuctionSnapshot is the observed state of the item's highest-bid cell at
// the moment the bidder decided to bid. PlaceBid commits only if the row
// still matches it.
type AuctionSnapshot struct {
	BidCount         int32
	CurrentBidAmount decimal.Decimal
}

type BidRepository interface {
	// PlaceBid inserts the bid and advances the item's cached highest-bid
	// pointer, amount and count as one atomic unit. Returns ErrBidRaceLost
	// when the snapshot no longer matches the item row.
	PlaceBid(bid *Bid, expected AuctionSnapshot, entry *AuditEntry) error
	GetBidByID(bidID string) (*Bid, error)
	GetItemBids(itemID string, page, limit int64) ([]*Bid, int64, error)
	// RecomputeAuctionCache rebuilds the item's cached auction fields by
	// replaying the bid set. Used as a consistency-repair routine and as a
	// test oracle.
	RecomputeAuctionCache(itemID string) (*Item, error)
}

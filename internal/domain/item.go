package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Item is the auction view of a catalog listing. The catalog service owns
// the row; this service reads it and mutates only the auction fields
// (current_bid_amount, current_bid_id, bid_count, is_active).
type Item struct {
	ID               string
	SellerID         string
	Title            string
	StartingPrice    decimal.Decimal
	CurrentBidAmount decimal.Decimal
	CurrentBidID     string
	BidCount         int32
	IsActive         bool
	EndsAt           time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

type ItemRepository interface {
	CreateItem(item *Item) error
	GetItemByID(itemID string) (*Item, error)
	FindEndedActiveItems(limit int) ([]*Item, error)
}

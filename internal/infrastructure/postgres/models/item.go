package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type ItemModel struct {
	ID               string          `gorm:"primaryKey;type:uuid"`
	SellerID         string          `gorm:"type:uuid;index;not null"`
	Title            string
	StartingPrice    decimal.Decimal `gorm:"type:numeric(20,2)"`
	CurrentBidAmount decimal.Decimal `gorm:"type:numeric(20,2)"`
	CurrentBidID     *string         `gorm:"type:uuid"`
	BidCount         int32           `gorm:"not null;default:0"`
	IsActive         bool            `gorm:"index:idx_active_ends"`
	EndsAt           time.Time       `gorm:"index:idx_active_ends"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type BidModel struct {
	ID        string          `gorm:"primaryKey;type:uuid"`
	ItemID    string          `gorm:"type:uuid;index;not null"`
	BidderID  string          `gorm:"type:uuid;not null"`
	Amount    decimal.Decimal `gorm:"type:numeric(20,2);not null"`
	Item      ItemModel       `gorm:"foreignKey:ItemID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;"`
	CreatedAt time.Time       `gorm:"index"`
}

package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type TransactionModel struct {
	ID           string          `gorm:"primaryKey;type:uuid"`
	ItemID       string          `gorm:"type:uuid;uniqueIndex;not null"`
	BuyerID      string          `gorm:"type:uuid;index;not null"`
	SellerID     string          `gorm:"type:uuid;index;not null"`
	Amount       decimal.Decimal `gorm:"type:numeric(20,2);not null"`
	Status       string          `gorm:"index;not null"`
	EscrowStatus string          `gorm:"not null"`
	Item         ItemModel       `gorm:"foreignKey:ItemID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type EscrowRecordModel struct {
	ID            string           `gorm:"primaryKey;type:uuid"`
	TransactionID string           `gorm:"type:uuid;uniqueIndex;not null"`
	Amount        decimal.Decimal  `gorm:"type:numeric(20,2);not null"`
	Status        string           `gorm:"index;not null"`
	Transaction   TransactionModel `gorm:"foreignKey:TransactionID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;"`
	FundedAt      *time.Time
	ReleasedAt    *time.Time
	RefundedAt    *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

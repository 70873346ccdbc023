package models

import "time"

type DisputeModel struct {
	ID            string           `gorm:"primaryKey"`
	TransactionID string           `gorm:"type:uuid;uniqueIndex;not null"`
	CreatorID     string           `gorm:"type:uuid;not null"`
	Reason        string           `gorm:"not null"`
	Description   string
	Status        string           `gorm:"index:idx_dispute_status_updated"`
	Resolution    string
	ResolvedBy    string
	Transaction   TransactionModel `gorm:"foreignKey:TransactionID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;"`
	ResolvedAt    *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time        `gorm:"index:idx_dispute_status_updated"`
}

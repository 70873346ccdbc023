package models

import "time"

type DisputeMessageModel struct {
	ID            string       `gorm:"primaryKey"`
	DisputeID     string       `gorm:"index;not null"`
	AuthorID      string       `gorm:"type:uuid;not null"`
	Text          string       `gorm:"not null"`
	AttachmentURL string
	Dispute       DisputeModel `gorm:"foreignKey:DisputeID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;"`
	CreatedAt     time.Time
}

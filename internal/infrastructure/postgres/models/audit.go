package models

import "time"

type AuditEntryModel struct {
	ID         string    `gorm:"primaryKey;type:uuid"`
	ActorID    string    `gorm:"not null"`
	Action     string    `gorm:"not null"`
	EntityType string    `gorm:"index:idx_audit_entity;not null"`
	EntityID   string    `gorm:"index:idx_audit_entity;not null"`
	Detail     string
	CreatedAt  time.Time `gorm:"index"`
}

func (AuditEntryModel) TableName() string {
	return "audit_trail"
}

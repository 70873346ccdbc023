package mappers

import (
	"github.com/tradeyard/tradeyard-auction-service/internal/domain"
	"github.com/tradeyard/tradeyard-auction-service/internal/infrastructure/postgres/models"
)

func ToDomainAuditEntry(model *models.AuditEntryModel) *domain.AuditEntry {
	return &domain.AuditEntry{
		ID:         model.ID,
		ActorID:    model.ActorID,
		Action:     model.Action,
		EntityType: model.EntityType,
		EntityID:   model.EntityID,
		Detail:     model.Detail,
		CreatedAt:  model.CreatedAt,
	}
}

func ToGORMAuditEntry(entry *domain.AuditEntry) *models.AuditEntryModel {
	return &models.AuditEntryModel{
		ID:         entry.ID,
		ActorID:    entry.ActorID,
		Action:     entry.Action,
		EntityType: entry.EntityType,
		EntityID:   entry.EntityID,
		Detail:     entry.Detail,
		CreatedAt:  entry.CreatedAt,
	}
}

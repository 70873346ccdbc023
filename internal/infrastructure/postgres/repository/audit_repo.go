package repository

import (
	"time"

	"github.com/google/uuid"
	"github.com/tradeyard/tradeyard-auction-service/internal/domain"
	"github.com/tradeyard/tradeyard-auction-service/internal/infrastructure/postgres/mappers"
	"github.com/tradeyard/tradeyard-auction-service/internal/infrastructure/postgres/models"
	"gorm.io/gorm"
)

type DefaultAuditRepository struct {
	db *gorm.DB
}

func NewDefaultAuditRepository(db *gorm.DB) *DefaultAuditRepository {
	return &DefaultAuditRepository{db: db}
}

// newAuditModel assigns identity and timestamp at write time so repositories
// can persist entries inside their own transactions.
func newAuditModel(entry *domain.AuditEntry) *models.AuditEntryModel {
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}
	return mappers.ToGORMAuditEntry(entry)
}

func (r *DefaultAuditRepository) Append(entry *domain.AuditEntry) error {
	return r.db.Create(newAuditModel(entry)).Error
}

func (r *DefaultAuditRepository) ListByEntity(entityType, entityID string, page, limit int64) ([]*domain.AuditEntry, int64, error) {
	query := r.db.Model(&models.AuditEntryModel{}).
		Where("entity_type = ? AND entity_id = ?", entityType, entityID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	var entryModels []models.AuditEntryModel
	if err := query.
		Order("created_at ASC").
		Offset(int(offset)).
		Limit(int(limit)).
		Find(&entryModels).Error; err != nil {
		return nil, 0, err
	}

	entries := make([]*domain.AuditEntry, len(entryModels))
	for i, entryModel := range entryModels {
		entries[i] = mappers.ToDomainAuditEntry(&entryModel)
	}

	return entries, total, nil
}

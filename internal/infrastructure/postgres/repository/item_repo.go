package repository

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/tradeyard/tradeyard-auction-service/internal/domain"
	"github.com/tradeyard/tradeyard-auction-service/internal/infrastructure/postgres/mappers"
	"github.com/tradeyard/tradeyard-auction-service/internal/infrastructure/postgres/models"
	"gorm.io/gorm"
)

type DefaultItemRepository struct {
	db *gorm.DB
}

func NewDefaultItemRepository(db *gorm.DB) *DefaultItemRepository {
	return &DefaultItemRepository{db: db}
}

func (r *DefaultItemRepository) CreateItem(item *domain.Item) error {
	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	itemModel := mappers.ToGORMItem(item)
	if err := r.db.Create(itemModel).Error; err != nil {
		return err
	}
	return nil
}

func (r *DefaultItemRepository) GetItemByID(itemID string) (*domain.Item, error) {
	var itemModel models.ItemModel
	if err := r.db.First(&itemModel, "id = ?", itemID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return mappers.ToDomainItem(&itemModel), nil
}

func (r *DefaultItemRepository) FindEndedActiveItems(limit int) ([]*domain.Item, error) {
	var itemModels []models.ItemModel
	if err := r.db.Model(&models.ItemModel{}).
		Where("is_active = ?", true).
		Where("ends_at <= ?", time.Now()).
		Order("ends_at ASC").
		Limit(limit).
		Find(&itemModels).Error; err != nil {
		return nil, err
	}

	items := make([]*domain.Item, len(itemModels))
	for i, itemModel := range itemModels {
		items[i] = mappers.ToDomainItem(&itemModel)
	}

	return items, nil
}

package mappers

import (
	"github.com/tradeyard/tradeyard-auction-service/internal/domain"
	"github.com/tradeyard/tradeyard-auction-service/internal/infrastructure/postgres/models"
)

func ToDomainItem(model *models.ItemModel) *domain.Item {
	currentBidID := ""
	if model.CurrentBidID != nil {
		currentBidID = *model.CurrentBidID
	}
	return &domain.Item{
		ID:               model.ID,
		SellerID:         model.SellerID,
		Title:            model.Title,
		StartingPrice:    model.StartingPrice,
		CurrentBidAmount: model.CurrentBidAmount,
		CurrentBidID:     currentBidID,
		BidCount:         model.BidCount,
		IsActive:         model.IsActive,
		EndsAt:           model.EndsAt,
		CreatedAt:        model.CreatedAt,
		UpdatedAt:        model.UpdatedAt,
	}
}

func ToGORMItem(item *domain.Item) *models.ItemModel {
	var currentBidID *string
	if item.CurrentBidID != "" {
		currentBidID = &item.CurrentBidID
	}
	return &models.ItemModel{
		ID:               item.ID,
		SellerID:         item.SellerID,
		Title:            item.Title,
		StartingPrice:    item.StartingPrice,
		CurrentBidAmount: item.CurrentBidAmount,
		CurrentBidID:     currentBidID,
		BidCount:         item.BidCount,
		IsActive:         item.IsActive,
		EndsAt:           item.EndsAt,
		CreatedAt:        item.CreatedAt,
		UpdatedAt:        item.UpdatedAt,
	}
}

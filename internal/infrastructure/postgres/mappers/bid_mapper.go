package mappers

import (
	"github.com/tradeyard/tradeyard-auction-service/internal/domain"
	"github.com/tradeyard/tradeyard-auction-service/internal/infrastructure/postgres/models"
)

func ToDomainBid(model *models.BidModel) *domain.Bid {
	return &domain.Bid{
		ID:        model.ID,
		ItemID:    model.ItemID,
		BidderID:  model.BidderID,
		Amount:    model.Amount,
		CreatedAt: model.CreatedAt,
	}
}

func ToGORMBid(bid *domain.Bid) *models.BidModel {
	return &models.BidModel{
		ID:        bid.ID,
		ItemID:    bid.ItemID,
		BidderID:  bid.BidderID,
		Amount:    bid.Amount,
		CreatedAt: bid.CreatedAt,
	}
}

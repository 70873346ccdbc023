package usecase

import (
	"github.com/tradeyard/tradeyard-auction-service/internal/domain"
	"github.com/tradeyard/tradeyard-auction-service/internal/infrastructure/metrics"
)

type SettlementUsecase interface {
	ProcessAuctionEnd(itemID string) (*domain.Transaction, error)
	SweepEndedAuctions(batchSize int) (int, error)
}

type DefaultSettlementUsecase struct {
	itemRepo  domain.ItemRepository
	bidRepo   domain.BidRepository
	txRepo    domain.TransactionRepository
	publisher domain.EventPublisher
	metrics   *metrics.AuctionMetrics
}

func NewDefaultSettlementUsecase(
	itemRepo domain.ItemRepository,
	bidRepo domain.BidRepository,
	txRepo domain.TransactionRepository,
	publisher domain.EventPublisher,
	auctionMetrics *metrics.AuctionMetrics,
) *DefaultSettlementUsecase {
	return &DefaultSettlementUsecase{
		itemRepo:  itemRepo,
		bidRepo:   bidRepo,
		txRepo:    txRepo,
		publisher: publisher,
		metrics:   auctionMetrics,
	}
}

package usecase

import (
	"github.com/shopspring/decimal"
	"github.com/tradeyard/tradeyard-auction-service/internal/domain"
	"github.com/tradeyard/tradeyard-auction-service/internal/infrastructure/metrics"
	biddto "github.com/tradeyard/tradeyard-auction-service/internal/usecase/dto/bid"
)

type BidUsecase interface {
	PlaceBid(input *biddto.PlaceBidInput) (*biddto.PlaceBidOutput, error)
	GetItemBids(input *biddto.GetItemBidsInput) (*biddto.GetItemBidsOutput, error)
	RepairAuctionCache(actor domain.Actor, itemID string) (*domain.Item, error)
}

type DefaultBidUsecase struct {
	bidRepo      domain.BidRepository
	itemRepo     domain.ItemRepository
	auditRepo    domain.AuditRepository
	profiles     domain.ProfileProvider
	publisher    domain.EventPublisher
	metrics      *metrics.AuctionMetrics
	minIncrement decimal.Decimal
}

func NewDefaultBidUsecase(
	bidRepo domain.BidRepository,
	itemRepo domain.ItemRepository,
	auditRepo domain.AuditRepository,
	profiles domain.ProfileProvider,
	publisher domain.EventPublisher,
	auctionMetrics *metrics.AuctionMetrics,
	minIncrement decimal.Decimal,
) *DefaultBidUsecase {
	return &DefaultBidUsecase{
		bidRepo:      bidRepo,
		itemRepo:     itemRepo,
		auditRepo:    auditRepo,
		profiles:     profiles,
		publisher:    publisher,
		metrics:      auctionMetrics,
		minIncrement: minIncrement,
	}
}

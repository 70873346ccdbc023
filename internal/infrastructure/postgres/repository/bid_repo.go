package repository

import (
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tradeyard/tradeyard-auction-service/internal/domain"
	"github.com/tradeyard/tradeyard-auction-service/internal/infrastructure/postgres/mappers"
	"github.com/tradeyard/tradeyard-auction-service/internal/infrastructure/postgres/models"
	"gorm.io/gorm"
)

type DefaultBidRepository struct {
	db *gorm.DB
}

func NewDefaultBidRepository(db *gorm.DB) *DefaultBidRepository {
	return &DefaultBidRepository{db: db}
}

// PlaceBid inserts the bid row and advances the item's cached highest-bid
// cell as one atomic unit. The advance is a compare-and-swap conditioned on
// the snapshot the bidder observed: bid_count is the version token, the
// cached amount double-checks it. A concurrent winner makes the CAS touch
// zero rows, the whole transaction rolls back and ErrBidRaceLost is
// returned; the cache is never blindly overwritten.
func (r *DefaultBidRepository) PlaceBid(bid *domain.Bid, expected domain.AuctionSnapshot, entry *domain.AuditEntry) error {
	if bid.ID == "" {
		bid.ID = uuid.New().String()
	}
	return r.db.Transaction(func(tx *gorm.DB) error {
		bidModel := mappers.ToGORMBid(bid)
		if err := tx.Create(bidModel).Error; err != nil {
			return err
		}

		res := tx.Model(&models.ItemModel{}).
			Where("id = ? AND is_active = ? AND bid_count = ? AND current_bid_amount = ?",
				bid.ItemID, true, expected.BidCount, expected.CurrentBidAmount).
			Updates(map[string]interface{}{
				"current_bid_amount": bid.Amount,
				"current_bid_id":     bidModel.ID,
				"bid_count":          gorm.Expr("bid_count + 1"),
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return domain.ErrBidRaceLost
		}

		return tx.Create(newAuditModel(entry)).Error
	})
}

func (r *DefaultBidRepository) GetBidByID(bidID string) (*domain.Bid, error) {
	var bidModel models.BidModel
	if err := r.db.First(&bidModel, "id = ?", bidID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return mappers.ToDomainBid(&bidModel), nil
}

func (r *DefaultBidRepository) GetItemBids(itemID string, page, limit int64) ([]*domain.Bid, int64, error) {
	query := r.db.Model(&models.BidModel{}).Where("item_id = ?", itemID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	var bidModels []models.BidModel
	if err := query.
		Order("created_at DESC").
		Offset(int(offset)).
		Limit(int(limit)).
		Find(&bidModels).Error; err != nil {
		return nil, 0, err
	}

	bids := make([]*domain.Bid, len(bidModels))
	for i, bidModel := range bidModels {
		bids[i] = mappers.ToDomainBid(&bidModel)
	}

	return bids, total, nil
}

// RecomputeAuctionCache replays the item's bid set and rewrites the cached
// amount, pointer and count from scratch. The bid rows are the ground truth;
// this is the repair routine for audits and the oracle used in tests.
func (r *DefaultBidRepository) RecomputeAuctionCache(itemID string) (*domain.Item, error) {
	var itemModel models.ItemModel
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&itemModel, "id = ?", itemID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrNotFound
			}
			return err
		}

		var count int64
		if err := tx.Model(&models.BidModel{}).Where("item_id = ?", itemID).Count(&count).Error; err != nil {
			return err
		}

		var highest models.BidModel
		var currentBidID *string
		currentAmount := decimal.Zero
		if count > 0 {
			if err := tx.Where("item_id = ?", itemID).
				Order("amount DESC, created_at DESC").
				First(&highest).Error; err != nil {
				return err
			}
			currentBidID = &highest.ID
			currentAmount = highest.Amount
		}

		if err := tx.Model(&models.ItemModel{}).
			Where("id = ?", itemID).
			Updates(map[string]interface{}{
				"current_bid_amount": currentAmount,
				"current_bid_id":     currentBidID,
				"bid_count":          count,
			}).Error; err != nil {
			return err
		}

		return tx.First(&itemModel, "id = ?", itemID).Error
	})
	if err != nil {
		return nil, err
	}
	return mappers.ToDomainItem(&itemModel), nil
}

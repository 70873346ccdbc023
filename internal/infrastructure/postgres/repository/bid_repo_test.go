package repository

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tradeyard/tradeyard-auction-service/internal/domain"
	"github.com/tradeyard/tradeyard-auction-service/internal/infrastructure/postgres/models"
)

func placeBid(t *testing.T, repo *DefaultBidRepository, item *domain.Item, amount string, snapshot domain.AuctionSnapshot) (*domain.Bid, error) {
	t.Helper()
	bid := &domain.Bid{
		ItemID:    item.ID,
		BidderID:  uuid.New().String(),
		Amount:    mustDecimal(t, amount),
		CreatedAt: time.Now(),
	}
	entry := &domain.AuditEntry{
		ActorID:    bid.BidderID,
		Action:     domain.ActionBidPlaced,
		EntityType: domain.EntityItem,
		EntityID:   item.ID,
	}
	return bid, repo.PlaceBid(bid, snapshot, entry)
}

func TestPlaceBid_AdvancesCache(t *testing.T) {
	db := openTestDB(t)
	bidRepo := NewDefaultBidRepository(db)
	itemRepo := NewDefaultItemRepository(db)

	item := seedItem(t, db, "100.00", time.Now().Add(time.Hour))

	bid, err := placeBid(t, bidRepo, item, "100.01", domain.AuctionSnapshot{
		BidCount:         0,
		CurrentBidAmount: item.CurrentBidAmount,
	})
	require.NoError(t, err)

	got, err := itemRepo.GetItemByID(item.ID)
	require.NoError(t, err)
	assert.True(t, got.CurrentBidAmount.Equal(mustDecimal(t, "100.01")))
	assert.Equal(t, bid.ID, got.CurrentBidID)
	assert.Equal(t, int32(1), got.BidCount)
}

func TestPlaceBid_StaleSnapshotLosesRace(t *testing.T) {
	db := openTestDB(t)
	bidRepo := NewDefaultBidRepository(db)
	itemRepo := NewDefaultItemRepository(db)

	item := seedItem(t, db, "100.00", time.Now().Add(time.Hour))
	stale := domain.AuctionSnapshot{BidCount: 0, CurrentBidAmount: item.CurrentBidAmount}

	_, err := placeBid(t, bidRepo, item, "100.01", stale)
	require.NoError(t, err)

	// Second bidder commits against the same snapshot the first one already
	// advanced past.
	_, err = placeBid(t, bidRepo, item, "105.00", stale)
	require.ErrorIs(t, err, domain.ErrBidRaceLost)

	// The loser's transaction rolled back entirely: no orphan bid row, cache
	// untouched.
	got, err := itemRepo.GetItemByID(item.ID)
	require.NoError(t, err)
	assert.True(t, got.CurrentBidAmount.Equal(mustDecimal(t, "100.01")))
	assert.Equal(t, int32(1), got.BidCount)

	var bidRows int64
	require.NoError(t, db.Model(&models.BidModel{}).Where("item_id = ?", item.ID).Count(&bidRows).Error)
	assert.Equal(t, int64(1), bidRows)
}

func TestPlaceBid_InactiveItemLosesRace(t *testing.T) {
	db := openTestDB(t)
	bidRepo := NewDefaultBidRepository(db)

	item := seedItem(t, db, "50.00", time.Now().Add(time.Hour))
	require.NoError(t, db.Model(&models.ItemModel{}).Where("id = ?", item.ID).Update("is_active", false).Error)

	_, err := placeBid(t, bidRepo, item, "55.00", domain.AuctionSnapshot{
		BidCount:         0,
		CurrentBidAmount: item.CurrentBidAmount,
	})
	require.ErrorIs(t, err, domain.ErrBidRaceLost)
}

func TestGetItemBids_NewestFirstPaginated(t *testing.T) {
	db := openTestDB(t)
	bidRepo := NewDefaultBidRepository(db)

	item := seedItem(t, db, "10.00", time.Now().Add(time.Hour))

	amounts := []string{"10.01", "11.00", "12.00"}
	current := item.CurrentBidAmount
	for i, amount := range amounts {
		bid := &domain.Bid{
			ItemID:    item.ID,
			BidderID:  uuid.New().String(),
			Amount:    mustDecimal(t, amount),
			CreatedAt: time.Now().Add(time.Duration(i) * time.Second),
		}
		entry := &domain.AuditEntry{ActorID: bid.BidderID, Action: domain.ActionBidPlaced, EntityType: domain.EntityItem, EntityID: item.ID}
		require.NoError(t, bidRepo.PlaceBid(bid, domain.AuctionSnapshot{BidCount: int32(i), CurrentBidAmount: current}, entry))
		current = bid.Amount
	}

	bids, total, err := bidRepo.GetItemBids(item.ID, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, bids, 2)
	assert.True(t, bids[0].Amount.Equal(mustDecimal(t, "12.00")))
	assert.True(t, bids[1].Amount.Equal(mustDecimal(t, "11.00")))

	bids, _, err = bidRepo.GetItemBids(item.ID, 2, 2)
	require.NoError(t, err)
	require.Len(t, bids, 1)
	assert.True(t, bids[0].Amount.Equal(mustDecimal(t, "10.01")))
}

func TestRecomputeAuctionCache_RepairsCorruptedCache(t *testing.T) {
	db := openTestDB(t)
	bidRepo := NewDefaultBidRepository(db)

	item := seedItem(t, db, "20.00", time.Now().Add(time.Hour))

	first, err := placeBid(t, bidRepo, item, "20.01", domain.AuctionSnapshot{BidCount: 0, CurrentBidAmount: item.CurrentBidAmount})
	require.NoError(t, err)
	second, err := placeBid(t, bidRepo, item, "25.00", domain.AuctionSnapshot{BidCount: 1, CurrentBidAmount: first.Amount})
	require.NoError(t, err)

	// Corrupt the cached cell directly; the bid rows stay the ground truth.
	require.NoError(t, db.Model(&models.ItemModel{}).Where("id = ?", item.ID).Updates(map[string]interface{}{
		"current_bid_amount": "1.00",
		"current_bid_id":     nil,
		"bid_count":          99,
	}).Error)

	repaired, err := bidRepo.RecomputeAuctionCache(item.ID)
	require.NoError(t, err)
	assert.True(t, repaired.CurrentBidAmount.Equal(mustDecimal(t, "25.00")))
	assert.Equal(t, second.ID, repaired.CurrentBidID)
	assert.Equal(t, int32(2), repaired.BidCount)
}

func TestRecomputeAuctionCache_NoBids(t *testing.T) {
	db := openTestDB(t)
	bidRepo := NewDefaultBidRepository(db)

	item := seedItem(t, db, "20.00", time.Now().Add(time.Hour))

	repaired, err := bidRepo.RecomputeAuctionCache(item.ID)
	require.NoError(t, err)
	assert.True(t, repaired.CurrentBidAmount.IsZero())
	assert.Empty(t, repaired.CurrentBidID)
	assert.Equal(t, int32(0), repaired.BidCount)
}

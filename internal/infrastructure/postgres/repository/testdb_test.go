package repository

import (
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"github.com/tradeyard/tradeyard-auction-service/internal/domain"
	"github.com/tradeyard/tradeyard-auction-service/internal/infrastructure/postgres/models"
	"gorm.io/gorm"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	// The in-memory database lives per connection.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.ItemModel{},
		&models.BidModel{},
		&models.TransactionModel{},
		&models.EscrowRecordModel{},
		&models.DisputeModel{},
		&models.DisputeMessageModel{},
		&models.AuditEntryModel{},
	))
	return db
}

func seedItem(t *testing.T, db *gorm.DB, startingPrice string, endsAt time.Time) *domain.Item {
	t.Helper()

	price, err := decimal.NewFromString(startingPrice)
	require.NoError(t, err)

	item := &domain.Item{
		ID:               uuid.New().String(),
		SellerID:         uuid.New().String(),
		Title:            "vintage camera",
		StartingPrice:    price,
		CurrentBidAmount: decimal.Zero,
		IsActive:         true,
		EndsAt:           endsAt,
		CreatedAt:        time.Now(),
		UpdatedAt:        time.Now(),
	}
	require.NoError(t, NewDefaultItemRepository(db).CreateItem(item))
	return item
}

func seedSettledTransaction(t *testing.T, db *gorm.DB, amount string) *domain.Transaction {
	t.Helper()

	item := seedItem(t, db, amount, time.Now().Add(-time.Minute))
	amt, err := decimal.NewFromString(amount)
	require.NoError(t, err)

	txn := &domain.Transaction{
		ID:           uuid.New().String(),
		ItemID:       item.ID,
		BuyerID:      uuid.New().String(),
		SellerID:     item.SellerID,
		Amount:       amt,
		Status:       domain.TransactionPending,
		EscrowStatus: domain.EscrowPending,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
	escrow := &domain.EscrowRecord{
		TransactionID: txn.ID,
		Amount:        amt,
		Status:        domain.EscrowPending,
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	}
	entry := &domain.AuditEntry{
		ActorID:    "system",
		Action:     domain.ActionAuctionSettled,
		EntityType: domain.EntityTransaction,
		EntityID:   txn.ID,
	}

	settled, err := NewDefaultTransactionRepository(db).SettleAuction(item.ID, txn, escrow, entry)
	require.NoError(t, err)
	require.True(t, settled)
	return txn
}

func mustDecimal(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	require.NoError(t, err)
	return d
}

package postgres

import (
	"log"

	"github.com/tradeyard/tradeyard-auction-service/internal/config"
	"github.com/tradeyard/tradeyard-auction-service/internal/infrastructure/postgres/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func MustInitDB(cfg *config.AuctionConfig) *gorm.DB {
	dsn := cfg.AuctionDB.Dsn
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatalf("failed to init db: %v\n", err.Error())
	}

	db.AutoMigrate(
		&models.ItemModel{},
		&models.BidModel{},
		&models.TransactionModel{},
		&models.EscrowRecordModel{},
		&models.DisputeModel{},
		&models.DisputeMessageModel{},
		&models.AuditEntryModel{},
	)

	return db
}

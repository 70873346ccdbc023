package repository

import (
	"errors"

	"github.com/google/uuid"
	"github.com/tradeyard/tradeyard-auction-service/internal/domain"
	"github.com/tradeyard/tradeyard-auction-service/internal/infrastructure/postgres/mappers"
	"github.com/tradeyard/tradeyard-auction-service/internal/infrastructure/postgres/models"
	"gorm.io/gorm"
)

type DefaultTransactionRepository struct {
	db *gorm.DB
}

func NewDefaultTransactionRepository(db *gorm.DB) *DefaultTransactionRepository {
	return &DefaultTransactionRepository{db: db}
}

func (r *DefaultTransactionRepository) GetTransactionByID(transactionID string) (*domain.Transaction, error) {
	var txnModel models.TransactionModel
	if err := r.db.First(&txnModel, "id = ?", transactionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return mappers.ToDomainTransaction(&txnModel), nil
}

func (r *DefaultTransactionRepository) GetTransactionByItemID(itemID string) (*domain.Transaction, error) {
	var txnModel models.TransactionModel
	if err := r.db.First(&txnModel, "item_id = ?", itemID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return mappers.ToDomainTransaction(&txnModel), nil
}

// SettleAuction converts the winning bid into a transaction. The item's
// active flag is the idempotency guard: the deactivating update touches zero
// rows when the item was already settled, and the whole unit is skipped
// without error so a scheduler can safely retry. Transaction, escrow record
// and audit entry commit together or not at all.
func (r *DefaultTransactionRepository) SettleAuction(itemID string, txn *domain.Transaction, escrow *domain.EscrowRecord, entry *domain.AuditEntry) (bool, error) {
	if txn.ID == "" {
		txn.ID = uuid.New().String()
	}
	escrow.TransactionID = txn.ID
	if escrow.ID == "" {
		escrow.ID = uuid.New().String()
	}
	entry.EntityID = txn.ID

	settled := false
	err := r.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.ItemModel{}).
			Where("id = ? AND is_active = ?", itemID, true).
			Update("is_active", false)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return nil // already settled
		}

		if err := tx.Create(mappers.ToGORMTransaction(txn)).Error; err != nil {
			return err
		}
		if err := tx.Create(mappers.ToGORMEscrow(escrow)).Error; err != nil {
			return err
		}
		if err := tx.Create(newAuditModel(entry)).Error; err != nil {
			return err
		}

		settled = true
		return nil
	})
	return settled, err
}

// CloseUnsold deactivates a zero-bid item, guarded the same way.
func (r *DefaultTransactionRepository) CloseUnsold(itemID string, entry *domain.AuditEntry) (bool, error) {
	closed := false
	err := r.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.ItemModel{}).
			Where("id = ? AND is_active = ?", itemID, true).
			Update("is_active", false)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return nil
		}

		if err := tx.Create(newAuditModel(entry)).Error; err != nil {
			return err
		}

		closed = true
		return nil
	})
	return closed, err
}

package repository

import (
	"errors"
	"fmt"
	"time"

	"github.com/tradeyard/tradeyard-auction-service/internal/domain"
	"github.com/tradeyard/tradeyard-auction-service/internal/infrastructure/postgres/mappers"
	"github.com/tradeyard/tradeyard-auction-service/internal/infrastructure/postgres/models"
	"gorm.io/gorm"
)

type DefaultEscrowRepository struct {
	db *gorm.DB
}

func NewDefaultEscrowRepository(db *gorm.DB) *DefaultEscrowRepository {
	return &DefaultEscrowRepository{db: db}
}

func (r *DefaultEscrowRepository) GetEscrowByTransactionID(transactionID string) (*domain.EscrowRecord, error) {
	var escrowModel models.EscrowRecordModel
	if err := r.db.First(&escrowModel, "transaction_id = ?", transactionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return mappers.ToDomainEscrow(&escrowModel), nil
}

// ProcessEscrowTransition applies one guarded custody move. The status
// update is conditioned on the current status being in FromStatuses, so two
// racing arbiters cannot both release, and released/refunded stay terminal:
// no FromStatuses set ever contains them. When FromTransactionStatuses is
// set the transaction update is guarded the same way, which keeps a racing
// dispute overlay from being overwritten.
func (r *DefaultEscrowRepository) ProcessEscrowTransition(t *domain.EscrowTransition, entry *domain.AuditEntry) error {
	fromStatuses := make([]string, len(t.FromStatuses))
	for i, s := range t.FromStatuses {
		fromStatuses[i] = string(s)
	}

	return r.db.Transaction(func(tx *gorm.DB) error {
		now := time.Now()
		updates := map[string]interface{}{
			"status":     string(t.ToStatus),
			"updated_at": now,
		}
		switch t.ToStatus {
		case domain.EscrowFunded:
			updates["funded_at"] = now
		case domain.EscrowReleased:
			updates["released_at"] = now
		case domain.EscrowRefunded:
			updates["refunded_at"] = now
		}

		res := tx.Model(&models.EscrowRecordModel{}).
			Where("transaction_id = ? AND status IN ?", t.TransactionID, fromStatuses).
			Updates(updates)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return &domain.StateConflictError{
				Code:   domain.ConflictEscrowTransition,
				Reason: fmt.Sprintf("escrow for transaction %s is not in %v", t.TransactionID, t.FromStatuses),
			}
		}

		txnQuery := tx.Model(&models.TransactionModel{}).Where("id = ?", t.TransactionID)
		if len(t.FromTransactionStatuses) > 0 {
			txnStatuses := make([]string, len(t.FromTransactionStatuses))
			for i, s := range t.FromTransactionStatuses {
				txnStatuses[i] = string(s)
			}
			txnQuery = txnQuery.Where("status IN ?", txnStatuses)
		}
		txnRes := txnQuery.Updates(map[string]interface{}{
			"status":        string(t.NewTransactionStatus),
			"escrow_status": string(t.NewTransactionEscrowStatus),
			"updated_at":    now,
		})
		if txnRes.Error != nil {
			return txnRes.Error
		}
		if len(t.FromTransactionStatuses) > 0 && txnRes.RowsAffected == 0 {
			return &domain.StateConflictError{
				Code:   domain.ConflictEscrowTransition,
				Reason: fmt.Sprintf("transaction %s is not in %v", t.TransactionID, t.FromTransactionStatuses),
			}
		}

		return tx.Create(newAuditModel(entry)).Error
	})
}

package repository

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/tradeyard/tradeyard-auction-service/internal/domain"
	"github.com/tradeyard/tradeyard-auction-service/internal/infrastructure/postgres/mappers"
	"github.com/tradeyard/tradeyard-auction-service/internal/infrastructure/postgres/models"
	"gorm.io/gorm"
)

type DefaultDisputeRepository struct {
	db *gorm.DB
}

func NewDefaultDisputeRepository(db *gorm.DB) *DefaultDisputeRepository {
	return &DefaultDisputeRepository{db: db}
}

func nonTerminalStatusStrings() []string {
	statuses := make([]string, len(domain.NonTerminalDisputeStatuses))
	for i, s := range domain.NonTerminalDisputeStatuses {
		statuses[i] = string(s)
	}
	return statuses
}

// CreateDispute inserts the dispute and overlays the transaction with the
// DISPUTED status in one DB transaction. The unique index on transaction_id
// backs the one-dispute-per-transaction invariant against races that slip
// past the usecase's status check, and the overlay update is conditioned on
// the transaction still being PROCESSING, so a dispute can only ever land on
// a funded escrow even when a release commits between the caller's read and
// this write.
func (r *DefaultDisputeRepository) CreateDispute(dispute *domain.Dispute, entry *domain.AuditEntry) error {
	disputeModel := mappers.ToGORMDispute(dispute)
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(disputeModel).Error; err != nil {
			return err
		}

		res := tx.Model(&models.TransactionModel{}).
			Where("id = ? AND status = ?", dispute.TransactionID, string(domain.TransactionProcessing)).
			Updates(map[string]interface{}{
				"status":        string(domain.TransactionDisputed),
				"escrow_status": string(domain.EscrowDisputed),
				"updated_at":    time.Now(),
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return &domain.StateConflictError{
				Code:   domain.ConflictNotDisputable,
				Reason: fmt.Sprintf("transaction %s is not holding funded escrow", dispute.TransactionID),
			}
		}

		return tx.Create(newAuditModel(entry)).Error
	})
	if err != nil {
		if isUniqueViolation(err) {
			return &domain.StateConflictError{
				Code:   domain.ConflictDisputeExists,
				Reason: fmt.Sprintf("transaction %s already has a dispute", dispute.TransactionID),
			}
		}
		return err
	}
	return nil
}

// isUniqueViolation matches both the postgres duplicate-key error and
// gorm's translated variant.
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate key") || strings.Contains(msg, "UNIQUE constraint")
}

func (r *DefaultDisputeRepository) GetDisputeByID(disputeID string) (*domain.Dispute, error) {
	var disputeModel models.DisputeModel
	if err := r.db.First(&disputeModel, "id = ?", disputeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return mappers.ToDomainDispute(&disputeModel), nil
}

func (r *DefaultDisputeRepository) GetDisputeByTransactionID(transactionID string) (*domain.Dispute, error) {
	var disputeModel models.DisputeModel
	if err := r.db.First(&disputeModel, "transaction_id = ?", transactionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return mappers.ToDomainDispute(&disputeModel), nil
}

// AddDisputeMessage appends the message under the terminal-state guard: the
// timestamp bump is conditioned on a non-terminal status, so a message racing
// a resolution cannot land after closure.
func (r *DefaultDisputeRepository) AddDisputeMessage(msg *domain.DisputeMessage) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.DisputeModel{}).
			Where("id = ? AND status IN ?", msg.DisputeID, nonTerminalStatusStrings()).
			Update("updated_at", time.Now())
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return &domain.StateConflictError{
				Code:   domain.ConflictDisputeClosed,
				Reason: fmt.Sprintf("dispute %s is closed", msg.DisputeID),
			}
		}

		return tx.Create(mappers.ToGORMDisputeMessage(msg)).Error
	})
}

func (r *DefaultDisputeRepository) ListDisputeMessages(disputeID string, page, limit int64) ([]*domain.DisputeMessage, int64, error) {
	query := r.db.Model(&models.DisputeMessageModel{}).Where("dispute_id = ?", disputeID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	var msgModels []models.DisputeMessageModel
	if err := query.
		Order("created_at ASC").
		Offset(int(offset)).
		Limit(int(limit)).
		Find(&msgModels).Error; err != nil {
		return nil, 0, err
	}

	msgs := make([]*domain.DisputeMessage, len(msgModels))
	for i, msgModel := range msgModels {
		msgs[i] = mappers.ToDomainDisputeMessage(&msgModel)
	}

	return msgs, total, nil
}

func (r *DefaultDisputeRepository) UpdateDisputeStatus(disputeID string, from []domain.DisputeStatus, to domain.DisputeStatus, entry *domain.AuditEntry) error {
	fromStatuses := make([]string, len(from))
	for i, s := range from {
		fromStatuses[i] = string(s)
	}

	return r.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.DisputeModel{}).
			Where("id = ? AND status IN ?", disputeID, fromStatuses).
			Updates(map[string]interface{}{
				"status":     string(to),
				"updated_at": time.Now(),
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return &domain.StateConflictError{
				Code:   domain.ConflictDisputeClosed,
				Reason: fmt.Sprintf("dispute %s is not in %v", disputeID, from),
			}
		}

		return tx.Create(newAuditModel(entry)).Error
	})
}

// ResolveDispute is the terminal write: dispute status and resolution
// fields, the escrow transition (unless amicable) and the transaction status
// commit in one DB transaction. Each guarded update doubles as the race
// barrier, so a dispute cannot be resolved twice and a released escrow
// cannot be refunded.
func (r *DefaultDisputeRepository) ResolveDispute(res *domain.DisputeResolution, entry *domain.AuditEntry) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var disputeModel models.DisputeModel
		if err := tx.First(&disputeModel, "id = ?", res.DisputeID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrNotFound
			}
			return err
		}

		now := time.Now()
		upd := tx.Model(&models.DisputeModel{}).
			Where("id = ? AND status IN ?", res.DisputeID, nonTerminalStatusStrings()).
			Updates(map[string]interface{}{
				"status":      string(res.NewStatus),
				"resolution":  res.Resolution,
				"resolved_by": res.ResolvedBy,
				"resolved_at": now,
				"updated_at":  now,
			})
		if upd.Error != nil {
			return upd.Error
		}
		if upd.RowsAffected == 0 {
			return &domain.StateConflictError{
				Code:   domain.ConflictDisputeClosed,
				Reason: fmt.Sprintf("dispute %s is already closed", res.DisputeID),
			}
		}

		if res.EscrowTo != "" {
			fromStatuses := make([]string, len(res.EscrowFromStatuses))
			for i, s := range res.EscrowFromStatuses {
				fromStatuses[i] = string(s)
			}
			updates := map[string]interface{}{
				"status":     string(res.EscrowTo),
				"updated_at": now,
			}
			switch res.EscrowTo {
			case domain.EscrowReleased:
				updates["released_at"] = now
			case domain.EscrowRefunded:
				updates["refunded_at"] = now
			}
			escrowUpd := tx.Model(&models.EscrowRecordModel{}).
				Where("transaction_id = ? AND status IN ?", disputeModel.TransactionID, fromStatuses).
				Updates(updates)
			if escrowUpd.Error != nil {
				return escrowUpd.Error
			}
			if escrowUpd.RowsAffected == 0 {
				return &domain.StateConflictError{
					Code:   domain.ConflictEscrowTransition,
					Reason: fmt.Sprintf("escrow for transaction %s is not in %v", disputeModel.TransactionID, res.EscrowFromStatuses),
				}
			}
		}

		newEscrowStatus := res.EscrowTo
		if newEscrowStatus == "" {
			var escrowModel models.EscrowRecordModel
			if err := tx.First(&escrowModel, "transaction_id = ?", disputeModel.TransactionID).Error; err != nil {
				return err
			}
			newEscrowStatus = domain.EscrowStatus(escrowModel.Status)
		}
		if err := tx.Model(&models.TransactionModel{}).
			Where("id = ?", disputeModel.TransactionID).
			Updates(map[string]interface{}{
				"status":        string(res.NewTransactionStatus),
				"escrow_status": string(newEscrowStatus),
				"updated_at":    now,
			}).Error; err != nil {
			return err
		}

		return tx.Create(newAuditModel(entry)).Error
	})
}

func (r *DefaultDisputeRepository) FindOverdueDisputes(cutoff time.Time) ([]*domain.Dispute, error) {
	var disputeModels []models.DisputeModel
	if err := r.db.Model(&models.DisputeModel{}).
		Where("status IN ?", []string{
			string(domain.DisputeAwaitingSellerResponse),
			string(domain.DisputeAwaitingBuyerResponse),
		}).
		Where("updated_at < ?", cutoff).
		Find(&disputeModels).Error; err != nil {
		return nil, err
	}

	disputes := make([]*domain.Dispute, len(disputeModels))
	for i, disputeModel := range disputeModels {
		disputes[i] = mappers.ToDomainDispute(&disputeModel)
	}

	return disputes, nil
}

func (r *DefaultDisputeRepository) GetDisputes(filter domain.GetDisputesFilter) ([]*domain.Dispute, int64, error) {
	query := r.db.Model(&models.DisputeModel{}).
		Joins("JOIN transaction_models ON transaction_models.id = dispute_models.transaction_id")

	if filter.TransactionID != nil {
		query = query.Where("dispute_models.transaction_id = ?", *filter.TransactionID)
	}
	if filter.PartyID != nil {
		query = query.Where("transaction_models.buyer_id = ? OR transaction_models.seller_id = ?", *filter.PartyID, *filter.PartyID)
	}
	if filter.Status != nil {
		query = query.Where("dispute_models.status = ?", string(*filter.Status))
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count failed: %w", err)
	}

	offset := (filter.Page - 1) * filter.Limit
	query = query.Order("dispute_models.created_at DESC").Offset(offset).Limit(filter.Limit)

	var disputeModels []models.DisputeModel
	if err := query.Find(&disputeModels).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to find dispute models: %w", err)
	}

	disputes := make([]*domain.Dispute, len(disputeModels))
	for i, disputeModel := range disputeModels {
		disputes[i] = mappers.ToDomainDispute(&disputeModel)
	}

	return disputes, total, nil
}

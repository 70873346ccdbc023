package usecase

import (
	"github.com/tradeyard/tradeyard-auction-service/internal/domain"
)

// ReleaseEscrow pays the seller out of custody. Arbiter-only. Blocked while a
// dispute overlays the transaction: a disputed escrow may only move through
// dispute resolution or refund.
func (uc *DefaultEscrowUsecase) ReleaseEscrow(transactionID string, actor domain.Actor) (*domain.EscrowRecord, error) {
	if !actor.IsArbiter() {
		return nil, &domain.IneligibleActorError{ActorID: actor.ID, Reason: "escrow release requires arbiter role"}
	}

	txn, err := uc.txRepo.GetTransactionByID(transactionID)
	if err != nil {
		return nil, err
	}
	if txn.Status == domain.TransactionDisputed {
		return nil, &domain.StateConflictError{
			Code:   domain.ConflictDisputeOpen,
			Reason: "transaction is disputed; resolve the dispute instead",
		}
	}

	record, err := uc.applyTransition(&domain.EscrowTransition{
		TransactionID:              transactionID,
		FromStatuses:               []domain.EscrowStatus{domain.EscrowFunded},
		FromTransactionStatuses:    []domain.TransactionStatus{domain.TransactionProcessing},
		ToStatus:                   domain.EscrowReleased,
		NewTransactionStatus:       domain.TransactionCompleted,
		NewTransactionEscrowStatus: domain.EscrowReleased,
		Actor:                      actor,
		Action:                     domain.ActionEscrowReleased,
	}, "release", map[string]string{"amount": txn.Amount.StringFixed(2)})
	if err != nil {
		return nil, err
	}

	uc.notify(domain.EventEscrowReleased, transactionID, txn)
	return record, nil
}

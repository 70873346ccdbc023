package usecase

import (
	"github.com/tradeyard/tradeyard-auction-service/internal/domain"
)

// RefundEscrow returns the funds to the buyer. Arbiter-only. Allowed while a
// dispute is pending: the escrow record still holds FUNDED under the dispute
// overlay, so the same precondition covers both cases.
func (uc *DefaultEscrowUsecase) RefundEscrow(transactionID string, actor domain.Actor) (*domain.EscrowRecord, error) {
	if !actor.IsArbiter() {
		return nil, &domain.IneligibleActorError{ActorID: actor.ID, Reason: "escrow refund requires arbiter role"}
	}

	txn, err := uc.txRepo.GetTransactionByID(transactionID)
	if err != nil {
		return nil, err
	}

	record, err := uc.applyTransition(&domain.EscrowTransition{
		TransactionID:              transactionID,
		FromStatuses:               []domain.EscrowStatus{domain.EscrowFunded},
		FromTransactionStatuses:    []domain.TransactionStatus{domain.TransactionProcessing, domain.TransactionDisputed},
		ToStatus:                   domain.EscrowRefunded,
		NewTransactionStatus:       domain.TransactionCancelled,
		NewTransactionEscrowStatus: domain.EscrowRefunded,
		Actor:                      actor,
		Action:                     domain.ActionEscrowRefunded,
	}, "refund", map[string]string{"amount": txn.Amount.StringFixed(2)})
	if err != nil {
		return nil, err
	}

	uc.notify(domain.EventEscrowRefunded, transactionID, txn)
	return record, nil
}

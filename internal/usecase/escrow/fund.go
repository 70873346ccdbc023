package usecase

import (
	"github.com/tradeyard/tradeyard-auction-service/internal/domain"
)

// FundEscrow records the buyer's payment into custody. Only the buyer of the
// transaction may fund; the guarded transition takes PENDING -> FUNDED and
// moves the transaction to PROCESSING.
func (uc *DefaultEscrowUsecase) FundEscrow(transactionID string, actor domain.Actor) (*domain.EscrowRecord, error) {
	txn, err := uc.txRepo.GetTransactionByID(transactionID)
	if err != nil {
		return nil, err
	}
	if txn.BuyerID != actor.ID {
		return nil, &domain.IneligibleActorError{ActorID: actor.ID, Reason: "only the buyer may fund escrow"}
	}

	record, err := uc.applyTransition(&domain.EscrowTransition{
		TransactionID:              transactionID,
		FromStatuses:               []domain.EscrowStatus{domain.EscrowPending},
		FromTransactionStatuses:    []domain.TransactionStatus{domain.TransactionPending},
		ToStatus:                   domain.EscrowFunded,
		NewTransactionStatus:       domain.TransactionProcessing,
		NewTransactionEscrowStatus: domain.EscrowFunded,
		Actor:                      actor,
		Action:                     domain.ActionEscrowFunded,
	}, "fund", map[string]string{"amount": txn.Amount.StringFixed(2)})
	if err != nil {
		return nil, err
	}

	uc.notify(domain.EventEscrowFunded, transactionID, txn)
	return record, nil
}

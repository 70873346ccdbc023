package usecase

import (
	"encoding/json"
	"log/slog"

	"github.com/tradeyard/tradeyard-auction-service/internal/domain"
	"github.com/tradeyard/tradeyard-auction-service/internal/infrastructure/metrics"
)

type EscrowUsecase interface {
	FundEscrow(transactionID string, actor domain.Actor) (*domain.EscrowRecord, error)
	ReleaseEscrow(transactionID string, actor domain.Actor) (*domain.EscrowRecord, error)
	RefundEscrow(transactionID string, actor domain.Actor) (*domain.EscrowRecord, error)
	GetEscrow(transactionID string, actor domain.Actor) (*domain.EscrowRecord, error)
	GetTransaction(transactionID string, actor domain.Actor) (*domain.Transaction, error)
}

type DefaultEscrowUsecase struct {
	escrowRepo domain.EscrowRepository
	txRepo     domain.TransactionRepository
	publisher  domain.EventPublisher
	metrics    *metrics.AuctionMetrics
}

func NewDefaultEscrowUsecase(
	escrowRepo domain.EscrowRepository,
	txRepo domain.TransactionRepository,
	publisher domain.EventPublisher,
	auctionMetrics *metrics.AuctionMetrics,
) *DefaultEscrowUsecase {
	return &DefaultEscrowUsecase{
		escrowRepo: escrowRepo,
		txRepo:     txRepo,
		publisher:  publisher,
		metrics:    auctionMetrics,
	}
}

// GetEscrow returns the escrow record to a transaction party or an arbiter.
func (uc *DefaultEscrowUsecase) GetEscrow(transactionID string, actor domain.Actor) (*domain.EscrowRecord, error) {
	txn, err := uc.txRepo.GetTransactionByID(transactionID)
	if err != nil {
		return nil, err
	}
	if !txn.IsParty(actor.ID) && !actor.IsArbiter() {
		return nil, &domain.IneligibleActorError{ActorID: actor.ID, Reason: "not a party to the transaction"}
	}
	return uc.escrowRepo.GetEscrowByTransactionID(transactionID)
}

// GetTransaction returns the transaction to one of its parties or an arbiter.
func (uc *DefaultEscrowUsecase) GetTransaction(transactionID string, actor domain.Actor) (*domain.Transaction, error) {
	txn, err := uc.txRepo.GetTransactionByID(transactionID)
	if err != nil {
		return nil, err
	}
	if !txn.IsParty(actor.ID) && !actor.IsArbiter() {
		return nil, &domain.IneligibleActorError{ActorID: actor.ID, Reason: "not a party to the transaction"}
	}
	return txn, nil
}

func (uc *DefaultEscrowUsecase) applyTransition(t *domain.EscrowTransition, action string, detail map[string]string) (*domain.EscrowRecord, error) {
	payload, _ := json.Marshal(detail)
	entry := &domain.AuditEntry{
		ActorID:    t.Actor.ID,
		Action:     t.Action,
		EntityType: domain.EntityTransaction,
		EntityID:   t.TransactionID,
		Detail:     string(payload),
	}

	if err := uc.escrowRepo.ProcessEscrowTransition(t, entry); err != nil {
		uc.metrics.RecordEscrowTransition(action, "conflict")
		return nil, err
	}
	uc.metrics.RecordEscrowTransition(action, "applied")

	record, err := uc.escrowRepo.GetEscrowByTransactionID(t.TransactionID)
	if err != nil {
		return nil, err
	}
	return record, nil
}

func (uc *DefaultEscrowUsecase) notify(eventType, transactionID string, txn *domain.Transaction) {
	go func() {
		if err := uc.publisher.PublishAuctionEvent(domain.AuctionEvent{
			Type:          eventType,
			ItemID:        txn.ItemID,
			TransactionID: transactionID,
			SellerID:      txn.SellerID,
			BuyerID:       txn.BuyerID,
			Amount:        txn.Amount.StringFixed(2),
		}); err != nil {
			slog.Error("failed to publish auction event", "type", eventType, "transaction_id", transactionID, "error", err.Error())
		}
	}()
}

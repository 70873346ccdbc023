package usecase

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/tradeyard/tradeyard-auction-service/internal/domain"
	disputedto "github.com/tradeyard/tradeyard-auction-service/internal/usecase/dto/dispute"
)

// OpenDispute opens the single dispute a transaction may carry. The opener
// must be a party, and the escrow must currently hold funds: before funding
// there is nothing in custody to argue over, and after release or refund the
// money has already moved. The dispute starts in the status that puts the
// other party on the clock. The transaction flips to DISPUTED in the same DB
// transaction as the insert.
func (uc *DefaultDisputeUsecase) OpenDispute(input *disputedto.OpenDisputeInput) (*domain.Dispute, error) {
	if !input.Reason.Valid() {
		return nil, &domain.ValidationError{Field: "reason", Reason: "unknown dispute reason"}
	}
	if input.Description == "" {
		return nil, &domain.ValidationError{Field: "description", Reason: "must not be empty"}
	}

	txn, err := uc.txRepo.GetTransactionByID(input.TransactionID)
	if err != nil {
		return nil, err
	}
	if !txn.IsParty(input.Actor.ID) {
		return nil, &domain.IneligibleActorError{ActorID: input.Actor.ID, Reason: "not a party to the transaction"}
	}
	switch txn.Status {
	case domain.TransactionProcessing:
	case domain.TransactionDisputed:
		return nil, &domain.StateConflictError{
			Code:   domain.ConflictDisputeExists,
			Reason: fmt.Sprintf("transaction %s already has a dispute", txn.ID),
		}
	default:
		return nil, &domain.StateConflictError{
			Code:   domain.ConflictNotDisputable,
			Reason: fmt.Sprintf("transaction %s is not holding funded escrow", txn.ID),
		}
	}

	status := domain.DisputeAwaitingSellerResponse
	if input.Actor.ID == txn.SellerID {
		status = domain.DisputeAwaitingBuyerResponse
	}

	now := time.Now()
	dispute := &domain.Dispute{
		ID:            uc.newID(),
		TransactionID: txn.ID,
		CreatorID:     input.Actor.ID,
		Reason:        input.Reason,
		Description:   input.Description,
		Status:        status,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	detail, _ := json.Marshal(map[string]string{
		"dispute_id": dispute.ID,
		"reason":     string(input.Reason),
	})
	entry := &domain.AuditEntry{
		ActorID:    input.Actor.ID,
		Action:     domain.ActionDisputeOpened,
		EntityType: domain.EntityDispute,
		EntityID:   dispute.ID,
		Detail:     string(detail),
	}

	if err := uc.disputeRepo.CreateDispute(dispute, entry); err != nil {
		return nil, err
	}

	uc.metrics.RecordDisputeOpened(string(input.Reason))
	uc.notify(domain.DisputeEvent{
		Type:          domain.EventDisputeOpened,
		DisputeID:     dispute.ID,
		TransactionID: txn.ID,
		ActorID:       input.Actor.ID,
		Reason:        string(input.Reason),
		Status:        string(dispute.Status),
	})

	return dispute, nil
}

func (uc *DefaultDisputeUsecase) notify(event domain.DisputeEvent) {
	go func() {
		if err := uc.publisher.PublishDisputeEvent(event); err != nil {
			slog.Error("failed to publish dispute event", "type", event.Type, "dispute_id", event.DisputeID, "error", err.Error())
		}
	}()
}

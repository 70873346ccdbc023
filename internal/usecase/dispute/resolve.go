package usecase

import (
	"encoding/json"
	"fmt"

	"github.com/tradeyard/tradeyard-auction-service/internal/domain"
	disputedto "github.com/tradeyard/tradeyard-auction-service/internal/usecase/dto/dispute"
)

// ResolveDispute applies the arbiter's terminal decision. Release pays the
// seller and completes the transaction, refund returns the buyer's funds and
// cancels it, amicable leaves the escrow where it stands and puts the
// transaction back to PROCESSING. Dispute, escrow and transaction move in one
// DB transaction.
func (uc *DefaultDisputeUsecase) ResolveDispute(input *disputedto.ResolveDisputeInput) (*domain.Dispute, error) {
	if !input.Actor.IsArbiter() {
		return nil, &domain.IneligibleActorError{ActorID: input.Actor.ID, Reason: "dispute resolution requires arbiter role"}
	}
	if input.Resolution == "" {
		return nil, &domain.ValidationError{Field: "resolution", Reason: "must not be empty"}
	}

	dispute, err := uc.disputeRepo.GetDisputeByID(input.DisputeID)
	if err != nil {
		return nil, err
	}

	res := &domain.DisputeResolution{
		DisputeID:  dispute.ID,
		Resolution: input.Resolution,
		ResolvedBy: input.Actor.ID,
	}
	switch input.Action {
	case domain.ResolutionRelease:
		res.NewStatus = domain.DisputeResolvedFavorSeller
		res.EscrowFromStatuses = []domain.EscrowStatus{domain.EscrowFunded}
		res.EscrowTo = domain.EscrowReleased
		res.NewTransactionStatus = domain.TransactionCompleted
	case domain.ResolutionRefund:
		res.NewStatus = domain.DisputeResolvedFavorBuyer
		res.EscrowFromStatuses = []domain.EscrowStatus{domain.EscrowFunded}
		res.EscrowTo = domain.EscrowRefunded
		res.NewTransactionStatus = domain.TransactionCancelled
	case domain.ResolutionAmicable:
		res.NewStatus = domain.DisputeResolvedAmicably
		res.NewTransactionStatus = domain.TransactionProcessing
	default:
		return nil, &domain.ValidationError{Field: "action", Reason: fmt.Sprintf("unknown resolution action %d", input.Action)}
	}

	detail, _ := json.Marshal(map[string]string{
		"status":     string(res.NewStatus),
		"resolution": input.Resolution,
	})
	entry := &domain.AuditEntry{
		ActorID:    input.Actor.ID,
		Action:     domain.ActionDisputeResolved,
		EntityType: domain.EntityDispute,
		EntityID:   dispute.ID,
		Detail:     string(detail),
	}

	if err := uc.disputeRepo.ResolveDispute(res, entry); err != nil {
		return nil, err
	}

	resolved, err := uc.disputeRepo.GetDisputeByID(dispute.ID)
	if err != nil {
		return nil, err
	}

	uc.metrics.RecordDisputeResolved(string(resolved.Status))
	uc.notify(domain.DisputeEvent{
		Type:          domain.EventDisputeResolved,
		DisputeID:     resolved.ID,
		TransactionID: resolved.TransactionID,
		ActorID:       input.Actor.ID,
		Status:        string(resolved.Status),
	})

	return resolved, nil
}

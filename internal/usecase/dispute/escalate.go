package usecase

import (
	"errors"
	"time"

	"github.com/tradeyard/tradeyard-auction-service/internal/domain"
)

// EscalateDispute moves a non-terminal dispute to UNDER_ADMIN_REVIEW. Parties
// escalate when talks stall; arbiters may pull a case in directly.
func (uc *DefaultDisputeUsecase) EscalateDispute(disputeID string, actor domain.Actor) (*domain.Dispute, error) {
	dispute, err := uc.disputeRepo.GetDisputeByID(disputeID)
	if err != nil {
		return nil, err
	}
	allowed, err := uc.canView(dispute, actor)
	if err != nil {
		return nil, err
	}
	if !allowed {
		return nil, &domain.IneligibleActorError{ActorID: actor.ID, Reason: "not a participant in the dispute"}
	}

	entry := &domain.AuditEntry{
		ActorID:    actor.ID,
		Action:     domain.ActionDisputeEscalated,
		EntityType: domain.EntityDispute,
		EntityID:   dispute.ID,
	}
	if err := uc.disputeRepo.UpdateDisputeStatus(
		dispute.ID,
		[]domain.DisputeStatus{domain.DisputeOpen, domain.DisputeAwaitingSellerResponse, domain.DisputeAwaitingBuyerResponse},
		domain.DisputeUnderAdminReview,
		entry,
	); err != nil {
		return nil, err
	}

	dispute.Status = domain.DisputeUnderAdminReview
	uc.notify(domain.DisputeEvent{
		Type:          domain.EventDisputeEscalated,
		DisputeID:     dispute.ID,
		TransactionID: dispute.TransactionID,
		ActorID:       actor.ID,
		Status:        string(dispute.Status),
	})

	return dispute, nil
}

// EscalateOverdueDisputes pulls every dispute whose awaited party has been
// silent longer than responseTimeout into admin review. Called by the
// background sweep; one failed dispute does not stop the pass.
func (uc *DefaultDisputeUsecase) EscalateOverdueDisputes(responseTimeout time.Duration) (int, error) {
	cutoff := time.Now().Add(-responseTimeout)
	overdue, err := uc.disputeRepo.FindOverdueDisputes(cutoff)
	if err != nil {
		return 0, err
	}

	escalated := 0
	for _, dispute := range overdue {
		entry := &domain.AuditEntry{
			ActorID:    "system",
			Action:     domain.ActionDisputeEscalated,
			EntityType: domain.EntityDispute,
			EntityID:   dispute.ID,
		}
		if err := uc.disputeRepo.UpdateDisputeStatus(
			dispute.ID,
			[]domain.DisputeStatus{domain.DisputeAwaitingSellerResponse, domain.DisputeAwaitingBuyerResponse},
			domain.DisputeUnderAdminReview,
			entry,
		); err != nil {
			// A conflict just means the dispute moved on since the query.
			var conflict *domain.StateConflictError
			if !errors.As(err, &conflict) {
				uc.metrics.RecordError("dispute_escalation")
			}
			continue
		}
		escalated++
		uc.notify(domain.DisputeEvent{
			Type:          domain.EventDisputeEscalated,
			DisputeID:     dispute.ID,
			TransactionID: dispute.TransactionID,
			ActorID:       "system",
			Status:        string(domain.DisputeUnderAdminReview),
		})
	}

	return escalated, nil
}

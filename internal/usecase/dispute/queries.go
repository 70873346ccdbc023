package usecase

import (
	"github.com/tradeyard/tradeyard-auction-service/internal/domain"
	disputedto "github.com/tradeyard/tradeyard-auction-service/internal/usecase/dto/dispute"
)

func (uc *DefaultDisputeUsecase) GetDispute(disputeID string, actor domain.Actor) (*domain.Dispute, error) {
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
	return dispute, nil
}

// GetDisputes lists disputes. Arbiters see everything; a regular user's query
// is forced to their own disputes regardless of the requested filter.
func (uc *DefaultDisputeUsecase) GetDisputes(actor domain.Actor, input *disputedto.GetDisputesInput) (*disputedto.GetDisputesOutput, error) {
	if input.Page < 1 {
		input.Page = 1
	}
	if input.Limit < 1 || input.Limit > 100 {
		input.Limit = 20
	}

	filter := domain.GetDisputesFilter{
		TransactionID: input.TransactionID,
		Status:        input.Status,
		Page:          int(input.Page),
		Limit:         int(input.Limit),
	}
	if actor.IsArbiter() {
		filter.PartyID = input.PartyID
	} else {
		partyID := actor.ID
		filter.PartyID = &partyID
	}

	disputes, total, err := uc.disputeRepo.GetDisputes(filter)
	if err != nil {
		return nil, err
	}

	totalPages := total / input.Limit
	if total%input.Limit != 0 {
		totalPages++
	}

	return &disputedto.GetDisputesOutput{
		Disputes: disputes,
		Pagination: disputedto.Pagination{
			CurrentPage:  int32(input.Page),
			TotalPages:   int32(totalPages),
			TotalItems:   int32(total),
			ItemsPerPage: int32(input.Limit),
		},
	}, nil
}

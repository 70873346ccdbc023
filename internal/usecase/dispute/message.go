package usecase

import (
	"time"

	"github.com/tradeyard/tradeyard-auction-service/internal/domain"
	disputedto "github.com/tradeyard/tradeyard-auction-service/internal/usecase/dto/dispute"
)

// AddMessage appends to the dispute thread. Parties and arbiters may write;
// the repository rejects the append once the dispute is terminal.
func (uc *DefaultDisputeUsecase) AddMessage(input *disputedto.AddMessageInput) (*domain.DisputeMessage, error) {
	if input.Text == "" {
		return nil, &domain.ValidationError{Field: "text", Reason: "must not be empty"}
	}

	dispute, err := uc.disputeRepo.GetDisputeByID(input.DisputeID)
	if err != nil {
		return nil, err
	}
	allowed, err := uc.canView(dispute, input.Actor)
	if err != nil {
		return nil, err
	}
	if !allowed {
		return nil, &domain.IneligibleActorError{ActorID: input.Actor.ID, Reason: "not a participant in the dispute"}
	}

	msg := &domain.DisputeMessage{
		ID:            uc.newID(),
		DisputeID:     dispute.ID,
		AuthorID:      input.Actor.ID,
		Text:          input.Text,
		AttachmentURL: input.AttachmentURL,
		CreatedAt:     time.Now(),
	}
	if err := uc.disputeRepo.AddDisputeMessage(msg); err != nil {
		return nil, err
	}

	uc.metrics.RecordDisputeMessage()
	uc.notify(domain.DisputeEvent{
		Type:          domain.EventDisputeMessageAdded,
		DisputeID:     dispute.ID,
		TransactionID: dispute.TransactionID,
		ActorID:       input.Actor.ID,
		Status:        string(dispute.Status),
	})

	return msg, nil
}

func (uc *DefaultDisputeUsecase) ListMessages(input *disputedto.ListMessagesInput) (*disputedto.ListMessagesOutput, error) {
	if input.Page < 1 {
		input.Page = 1
	}
	if input.Limit < 1 || input.Limit > 100 {
		input.Limit = 50
	}

	dispute, err := uc.disputeRepo.GetDisputeByID(input.DisputeID)
	if err != nil {
		return nil, err
	}
	allowed, err := uc.canView(dispute, input.Actor)
	if err != nil {
		return nil, err
	}
	if !allowed {
		return nil, &domain.IneligibleActorError{ActorID: input.Actor.ID, Reason: "not a participant in the dispute"}
	}

	messages, total, err := uc.disputeRepo.ListDisputeMessages(dispute.ID, input.Page, input.Limit)
	if err != nil {
		return nil, err
	}

	totalPages := total / input.Limit
	if total%input.Limit != 0 {
		totalPages++
	}

	return &disputedto.ListMessagesOutput{
		Messages: messages,
		Pagination: disputedto.Pagination{
			CurrentPage:  int32(input.Page),
			TotalPages:   int32(totalPages),
			TotalItems:   int32(total),
			ItemsPerPage: int32(input.Limit),
		},
	}, nil
}

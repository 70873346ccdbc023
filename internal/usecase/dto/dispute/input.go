package disputedto

import "github.com/tradeyard/tradeyard-auction-service/internal/domain"

type OpenDisputeInput struct {
	TransactionID string
	Actor         domain.Actor
	Reason        domain.DisputeReason
	Description   string
}

type AddMessageInput struct {
	DisputeID     string
	Actor         domain.Actor
	Text          string
	AttachmentURL string
}

type ResolveDisputeInput struct {
	DisputeID  string
	Actor      domain.Actor
	Resolution string
	Action     domain.ResolutionAction
}

type GetDisputesInput struct {
	TransactionID *string
	PartyID       *string
	Status        *domain.DisputeStatus
	Page          int64
	Limit         int64
}

type ListMessagesInput struct {
	DisputeID string
	Actor     domain.Actor
	Page      int64
	Limit     int64
}

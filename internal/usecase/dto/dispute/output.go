package disputedto

import "github.com/tradeyard/tradeyard-auction-service/internal/domain"

type Pagination struct {
	CurrentPage  int32
	TotalPages   int32
	TotalItems   int32
	ItemsPerPage int32
}

type GetDisputesOutput struct {
	Disputes   []*domain.Dispute
	Pagination Pagination
}

type ListMessagesOutput struct {
	Messages   []*domain.DisputeMessage
	Pagination Pagination
}

package usecase

import (
	"time"

	"github.com/jaevor/go-nanoid"
	"github.com/tradeyard/tradeyard-auction-service/internal/domain"
	"github.com/tradeyard/tradeyard-auction-service/internal/infrastructure/metrics"
	disputedto "github.com/tradeyard/tradeyard-auction-service/internal/usecase/dto/dispute"
)

type DisputeUsecase interface {
	OpenDispute(input *disputedto.OpenDisputeInput) (*domain.Dispute, error)
	AddMessage(input *disputedto.AddMessageInput) (*domain.DisputeMessage, error)
	ListMessages(input *disputedto.ListMessagesInput) (*disputedto.ListMessagesOutput, error)
	EscalateDispute(disputeID string, actor domain.Actor) (*domain.Dispute, error)
	ResolveDispute(input *disputedto.ResolveDisputeInput) (*domain.Dispute, error)
	GetDispute(disputeID string, actor domain.Actor) (*domain.Dispute, error)
	GetDisputes(actor domain.Actor, input *disputedto.GetDisputesInput) (*disputedto.GetDisputesOutput, error)
	EscalateOverdueDisputes(responseTimeout time.Duration) (int, error)
}

type DefaultDisputeUsecase struct {
	disputeRepo domain.DisputeRepository
	txRepo      domain.TransactionRepository
	escrowRepo  domain.EscrowRepository
	publisher   domain.EventPublisher
	metrics     *metrics.AuctionMetrics
	newID       func() string
}

func NewDefaultDisputeUsecase(
	disputeRepo domain.DisputeRepository,
	txRepo domain.TransactionRepository,
	escrowRepo domain.EscrowRepository,
	publisher domain.EventPublisher,
	auctionMetrics *metrics.AuctionMetrics,
) *DefaultDisputeUsecase {
	newID, err := nanoid.Standard(21)
	if err != nil {
		panic(err)
	}
	return &DefaultDisputeUsecase{
		disputeRepo: disputeRepo,
		txRepo:      txRepo,
		escrowRepo:  escrowRepo,
		publisher:   publisher,
		metrics:     auctionMetrics,
		newID:       newID,
	}
}

// canView - parties to the underlying transaction and arbiters.
func (uc *DefaultDisputeUsecase) canView(dispute *domain.Dispute, actor domain.Actor) (bool, error) {
	if actor.IsArbiter() {
		return true, nil
	}
	txn, err := uc.txRepo.GetTransactionByID(dispute.TransactionID)
	if err != nil {
		return false, err
	}
	return txn.IsParty(actor.ID), nil
}

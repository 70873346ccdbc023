package usecase

import (
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tradeyard/tradeyard-auction-service/internal/domain"
	"github.com/tradeyard/tradeyard-auction-service/internal/infrastructure/postgres/models"
	"github.com/tradeyard/tradeyard-auction-service/internal/infrastructure/postgres/repository"
	disputedto "github.com/tradeyard/tradeyard-auction-service/internal/usecase/dto/dispute"
	"gorm.io/gorm"
)

type noopPublisher struct{}

func (noopPublisher) PublishAuctionEvent(domain.AuctionEvent) error { return nil }
func (noopPublisher) PublishDisputeEvent(domain.DisputeEvent) error { return nil }

type disputeTestEnv struct {
	db         *gorm.DB
	uc         *DefaultDisputeUsecase
	txRepo     domain.TransactionRepository
	escrowRepo domain.EscrowRepository
}

func newDisputeTestEnv(t *testing.T) *disputeTestEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(
		&models.ItemModel{},
		&models.TransactionModel{},
		&models.EscrowRecordModel{},
		&models.DisputeModel{},
		&models.DisputeMessageModel{},
		&models.AuditEntryModel{},
	))

	disputeRepo := repository.NewDefaultDisputeRepository(db)
	txRepo := repository.NewDefaultTransactionRepository(db)
	escrowRepo := repository.NewDefaultEscrowRepository(db)
	uc := NewDefaultDisputeUsecase(disputeRepo, txRepo, escrowRepo, noopPublisher{}, nil)
	return &disputeTestEnv{db: db, uc: uc, txRepo: txRepo, escrowRepo: escrowRepo}
}

// seedSettledTransaction settles an item into a PENDING transaction with
// unfunded escrow.
func (env *disputeTestEnv) seedSettledTransaction(t *testing.T) *domain.Transaction {
	t.Helper()

	item := &domain.Item{
		ID:            uuid.New().String(),
		SellerID:      uuid.New().String(),
		StartingPrice: decimal.RequireFromString("100.00"),
		IsActive:      true,
		EndsAt:        time.Now().Add(-time.Minute),
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	}
	require.NoError(t, repository.NewDefaultItemRepository(env.db).CreateItem(item))

	txn := &domain.Transaction{
		ItemID:       item.ID,
		BuyerID:      uuid.New().String(),
		SellerID:     item.SellerID,
		Amount:       decimal.RequireFromString("101.00"),
		Status:       domain.TransactionPending,
		EscrowStatus: domain.EscrowPending,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
	escrow := &domain.EscrowRecord{Amount: txn.Amount, Status: domain.EscrowPending, CreatedAt: time.Now(), UpdatedAt: time.Now()}
	settled, err := env.txRepo.SettleAuction(item.ID, txn, escrow,
		&domain.AuditEntry{ActorID: "system", Action: domain.ActionAuctionSettled, EntityType: domain.EntityTransaction})
	require.NoError(t, err)
	require.True(t, settled)
	return txn
}

// seedFundedTransaction settles an item and funds its escrow so a dispute can
// overlay it.
func (env *disputeTestEnv) seedFundedTransaction(t *testing.T) *domain.Transaction {
	t.Helper()

	txn := env.seedSettledTransaction(t)
	require.NoError(t, env.escrowRepo.ProcessEscrowTransition(&domain.EscrowTransition{
		TransactionID:              txn.ID,
		FromStatuses:               []domain.EscrowStatus{domain.EscrowPending},
		FromTransactionStatuses:    []domain.TransactionStatus{domain.TransactionPending},
		ToStatus:                   domain.EscrowFunded,
		NewTransactionStatus:       domain.TransactionProcessing,
		NewTransactionEscrowStatus: domain.EscrowFunded,
		Action:                     domain.ActionEscrowFunded,
	}, &domain.AuditEntry{ActorID: txn.BuyerID, Action: domain.ActionEscrowFunded, EntityType: domain.EntityTransaction, EntityID: txn.ID}))

	return txn
}

func TestOpenDispute_PartyOnlyAndStatusByOpener(t *testing.T) {
	env := newDisputeTestEnv(t)
	txn := env.seedFundedTransaction(t)

	_, err := env.uc.OpenDispute(&disputedto.OpenDisputeInput{
		TransactionID: txn.ID,
		Actor:         domain.Actor{ID: uuid.New().String(), Role: domain.RoleUser},
		Reason:        domain.ReasonItemNotReceived,
		Description:   "never arrived",
	})
	var ineligibleErr *domain.IneligibleActorError
	require.ErrorAs(t, err, &ineligibleErr)

	dispute, err := env.uc.OpenDispute(&disputedto.OpenDisputeInput{
		TransactionID: txn.ID,
		Actor:         domain.Actor{ID: txn.BuyerID, Role: domain.RoleUser},
		Reason:        domain.ReasonItemNotReceived,
		Description:   "never arrived",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.DisputeAwaitingSellerResponse, dispute.Status)

	got, err := env.txRepo.GetTransactionByID(txn.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.TransactionDisputed, got.Status)
}

func TestOpenDispute_SecondDisputeConflicts(t *testing.T) {
	env := newDisputeTestEnv(t)
	txn := env.seedFundedTransaction(t)
	buyer := domain.Actor{ID: txn.BuyerID, Role: domain.RoleUser}

	_, err := env.uc.OpenDispute(&disputedto.OpenDisputeInput{TransactionID: txn.ID, Actor: buyer, Reason: domain.ReasonOther, Description: "first"})
	require.NoError(t, err)

	_, err = env.uc.OpenDispute(&disputedto.OpenDisputeInput{TransactionID: txn.ID, Actor: buyer, Reason: domain.ReasonOther, Description: "second"})
	var conflict *domain.StateConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, domain.ConflictDisputeExists, conflict.Code)
}

func TestOpenDispute_UnfundedEscrowRejected(t *testing.T) {
	env := newDisputeTestEnv(t)
	txn := env.seedSettledTransaction(t)

	_, err := env.uc.OpenDispute(&disputedto.OpenDisputeInput{
		TransactionID: txn.ID,
		Actor:         domain.Actor{ID: txn.BuyerID, Role: domain.RoleUser},
		Reason:        domain.ReasonItemNotReceived,
		Description:   "nothing to argue over yet",
	})
	var conflict *domain.StateConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, domain.ConflictNotDisputable, conflict.Code)

	// The rejected open leaves no overlay behind.
	got, err := env.txRepo.GetTransactionByID(txn.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.TransactionPending, got.Status)
}

func TestOpenDispute_ReleasedEscrowRejected(t *testing.T) {
	env := newDisputeTestEnv(t)
	txn := env.seedFundedTransaction(t)

	require.NoError(t, env.escrowRepo.ProcessEscrowTransition(&domain.EscrowTransition{
		TransactionID:              txn.ID,
		FromStatuses:               []domain.EscrowStatus{domain.EscrowFunded},
		ToStatus:                   domain.EscrowReleased,
		NewTransactionStatus:       domain.TransactionCompleted,
		NewTransactionEscrowStatus: domain.EscrowReleased,
		Action:                     domain.ActionEscrowReleased,
	}, &domain.AuditEntry{ActorID: "arbiter-1", Action: domain.ActionEscrowReleased, EntityType: domain.EntityTransaction, EntityID: txn.ID}))

	_, err := env.uc.OpenDispute(&disputedto.OpenDisputeInput{
		TransactionID: txn.ID,
		Actor:         domain.Actor{ID: txn.BuyerID, Role: domain.RoleUser},
		Reason:        domain.ReasonItemNotAsDescribed,
		Description:   "too late, seller was paid",
	})
	var conflict *domain.StateConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, domain.ConflictNotDisputable, conflict.Code)

	// The completed transaction keeps its terminal state.
	got, err := env.txRepo.GetTransactionByID(txn.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.TransactionCompleted, got.Status)
	assert.Equal(t, domain.EscrowReleased, got.EscrowStatus)
}

func TestOpenDispute_UnknownReasonRejected(t *testing.T) {
	env := newDisputeTestEnv(t)
	txn := env.seedFundedTransaction(t)

	_, err := env.uc.OpenDispute(&disputedto.OpenDisputeInput{
		TransactionID: txn.ID,
		Actor:         domain.Actor{ID: txn.BuyerID, Role: domain.RoleUser},
		Reason:        domain.DisputeReason("buyer_remorse"),
		Description:   "changed my mind",
	})
	var validationErr *domain.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "reason", validationErr.Field)
}

func TestAddAndListMessages(t *testing.T) {
	env := newDisputeTestEnv(t)
	txn := env.seedFundedTransaction(t)
	buyer := domain.Actor{ID: txn.BuyerID, Role: domain.RoleUser}
	seller := domain.Actor{ID: txn.SellerID, Role: domain.RoleUser}

	dispute, err := env.uc.OpenDispute(&disputedto.OpenDisputeInput{TransactionID: txn.ID, Actor: buyer, Reason: domain.ReasonItemNotReceived, Description: "never arrived"})
	require.NoError(t, err)

	_, err = env.uc.AddMessage(&disputedto.AddMessageInput{DisputeID: dispute.ID, Actor: buyer, Text: "tracking shows nothing"})
	require.NoError(t, err)
	_, err = env.uc.AddMessage(&disputedto.AddMessageInput{DisputeID: dispute.ID, Actor: seller, Text: "shipped last monday", AttachmentURL: "https://files.example/receipt.pdf"})
	require.NoError(t, err)

	// Strangers stay out.
	_, err = env.uc.AddMessage(&disputedto.AddMessageInput{DisputeID: dispute.ID, Actor: domain.Actor{ID: uuid.New().String(), Role: domain.RoleUser}, Text: "me too"})
	var ineligibleErr *domain.IneligibleActorError
	require.ErrorAs(t, err, &ineligibleErr)

	out, err := env.uc.ListMessages(&disputedto.ListMessagesInput{DisputeID: dispute.ID, Actor: seller, Page: 1, Limit: 50})
	require.NoError(t, err)
	require.Len(t, out.Messages, 2)
	assert.Equal(t, "tracking shows nothing", out.Messages[0].Text)
	assert.Equal(t, "shipped last monday", out.Messages[1].Text)
}

func TestResolveDispute_ReleaseFavorsSeller(t *testing.T) {
	env := newDisputeTestEnv(t)
	txn := env.seedFundedTransaction(t)
	buyer := domain.Actor{ID: txn.BuyerID, Role: domain.RoleUser}
	arbiter := domain.Actor{ID: "arbiter-1", Role: domain.RoleArbiter}

	dispute, err := env.uc.OpenDispute(&disputedto.OpenDisputeInput{TransactionID: txn.ID, Actor: buyer, Reason: domain.ReasonItemNotAsDescribed, Description: "wrong color"})
	require.NoError(t, err)

	_, err = env.uc.ResolveDispute(&disputedto.ResolveDisputeInput{DisputeID: dispute.ID, Actor: buyer, Resolution: "x", Action: domain.ResolutionRelease})
	var ineligibleErr *domain.IneligibleActorError
	require.ErrorAs(t, err, &ineligibleErr)

	resolved, err := env.uc.ResolveDispute(&disputedto.ResolveDisputeInput{
		DisputeID:  dispute.ID,
		Actor:      arbiter,
		Resolution: "listing photos match the delivered item",
		Action:     domain.ResolutionRelease,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.DisputeResolvedFavorSeller, resolved.Status)

	record, err := env.escrowRepo.GetEscrowByTransactionID(txn.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.EscrowReleased, record.Status)

	got, err := env.txRepo.GetTransactionByID(txn.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.TransactionCompleted, got.Status)
}

func TestResolveDispute_AmicableKeepsEscrowFunded(t *testing.T) {
	env := newDisputeTestEnv(t)
	txn := env.seedFundedTransaction(t)
	buyer := domain.Actor{ID: txn.BuyerID, Role: domain.RoleUser}
	arbiter := domain.Actor{ID: "arbiter-1", Role: domain.RoleArbiter}

	dispute, err := env.uc.OpenDispute(&disputedto.OpenDisputeInput{TransactionID: txn.ID, Actor: buyer, Reason: domain.ReasonOther, Description: "misunderstanding"})
	require.NoError(t, err)

	resolved, err := env.uc.ResolveDispute(&disputedto.ResolveDisputeInput{
		DisputeID:  dispute.ID,
		Actor:      arbiter,
		Resolution: "parties settled it themselves",
		Action:     domain.ResolutionAmicable,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.DisputeResolvedAmicably, resolved.Status)

	record, err := env.escrowRepo.GetEscrowByTransactionID(txn.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.EscrowFunded, record.Status)

	got, err := env.txRepo.GetTransactionByID(txn.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.TransactionProcessing, got.Status)
	assert.Equal(t, domain.EscrowFunded, got.EscrowStatus)
}

func TestEscalateDispute(t *testing.T) {
	env := newDisputeTestEnv(t)
	txn := env.seedFundedTransaction(t)
	buyer := domain.Actor{ID: txn.BuyerID, Role: domain.RoleUser}

	dispute, err := env.uc.OpenDispute(&disputedto.OpenDisputeInput{TransactionID: txn.ID, Actor: buyer, Reason: domain.ReasonPaymentIssue, Description: "charged twice"})
	require.NoError(t, err)

	escalated, err := env.uc.EscalateDispute(dispute.ID, buyer)
	require.NoError(t, err)
	assert.Equal(t, domain.DisputeUnderAdminReview, escalated.Status)

	// Already under review: the guard rejects a repeat.
	_, err = env.uc.EscalateDispute(dispute.ID, buyer)
	var conflict *domain.StateConflictError
	require.ErrorAs(t, err, &conflict)
}

func TestEscalateOverdueDisputes(t *testing.T) {
	env := newDisputeTestEnv(t)
	txn := env.seedFundedTransaction(t)
	buyer := domain.Actor{ID: txn.BuyerID, Role: domain.RoleUser}

	dispute, err := env.uc.OpenDispute(&disputedto.OpenDisputeInput{TransactionID: txn.ID, Actor: buyer, Reason: domain.ReasonItemNotReceived, Description: "silence from seller"})
	require.NoError(t, err)

	// Nothing overdue yet.
	escalated, err := env.uc.EscalateOverdueDisputes(time.Hour)
	require.NoError(t, err)
	assert.Equal(t, 0, escalated)

	require.NoError(t, env.db.Model(&models.DisputeModel{}).Where("id = ?", dispute.ID).Update("updated_at", time.Now().Add(-2*time.Hour)).Error)

	escalated, err = env.uc.EscalateOverdueDisputes(time.Hour)
	require.NoError(t, err)
	assert.Equal(t, 1, escalated)

	got, err := env.uc.GetDispute(dispute.ID, buyer)
	require.NoError(t, err)
	assert.Equal(t, domain.DisputeUnderAdminReview, got.Status)
}

func TestGetDisputes_UserScopedToOwn(t *testing.T) {
	env := newDisputeTestEnv(t)

	first := env.seedFundedTransaction(t)
	second := env.seedFundedTransaction(t)

	_, err := env.uc.OpenDispute(&disputedto.OpenDisputeInput{TransactionID: first.ID, Actor: domain.Actor{ID: first.BuyerID, Role: domain.RoleUser}, Reason: domain.ReasonOther, Description: "a"})
	require.NoError(t, err)
	_, err = env.uc.OpenDispute(&disputedto.OpenDisputeInput{TransactionID: second.ID, Actor: domain.Actor{ID: second.BuyerID, Role: domain.RoleUser}, Reason: domain.ReasonOther, Description: "b"})
	require.NoError(t, err)

	// A regular user sees only disputes on their own transactions, whatever
	// filter they send.
	out, err := env.uc.GetDisputes(domain.Actor{ID: first.BuyerID, Role: domain.RoleUser}, &disputedto.GetDisputesInput{Page: 1, Limit: 10})
	require.NoError(t, err)
	require.Len(t, out.Disputes, 1)
	assert.Equal(t, first.ID, out.Disputes[0].TransactionID)

	out, err = env.uc.GetDisputes(domain.Actor{ID: "arbiter-1", Role: domain.RoleArbiter}, &disputedto.GetDisputesInput{Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Len(t, out.Disputes, 2)
}

package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tradeyard/tradeyard-auction-service/internal/domain"
	"github.com/tradeyard/tradeyard-auction-service/internal/infrastructure/postgres/models"
)

func fundTransition(txnID string) *domain.EscrowTransition {
	return &domain.EscrowTransition{
		TransactionID:              txnID,
		FromStatuses:               []domain.EscrowStatus{domain.EscrowPending},
		ToStatus:                   domain.EscrowFunded,
		NewTransactionStatus:       domain.TransactionProcessing,
		NewTransactionEscrowStatus: domain.EscrowFunded,
		Action:                     domain.ActionEscrowFunded,
	}
}

func releaseTransition(txnID string) *domain.EscrowTransition {
	return &domain.EscrowTransition{
		TransactionID:              txnID,
		FromStatuses:               []domain.EscrowStatus{domain.EscrowFunded},
		ToStatus:                   domain.EscrowReleased,
		NewTransactionStatus:       domain.TransactionCompleted,
		NewTransactionEscrowStatus: domain.EscrowReleased,
		Action:                     domain.ActionEscrowReleased,
	}
}

func auditFor(txnID, action string) *domain.AuditEntry {
	return &domain.AuditEntry{ActorID: "arbiter-1", Action: action, EntityType: domain.EntityTransaction, EntityID: txnID}
}

func TestProcessEscrowTransition_FundThenRelease(t *testing.T) {
	db := openTestDB(t)
	escrowRepo := NewDefaultEscrowRepository(db)
	txRepo := NewDefaultTransactionRepository(db)

	txn := seedSettledTransaction(t, db, "101.00")

	require.NoError(t, escrowRepo.ProcessEscrowTransition(fundTransition(txn.ID), auditFor(txn.ID, domain.ActionEscrowFunded)))

	record, err := escrowRepo.GetEscrowByTransactionID(txn.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.EscrowFunded, record.Status)
	assert.NotNil(t, record.FundedAt)

	gotTxn, err := txRepo.GetTransactionByID(txn.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.TransactionProcessing, gotTxn.Status)
	assert.Equal(t, domain.EscrowFunded, gotTxn.EscrowStatus)

	require.NoError(t, escrowRepo.ProcessEscrowTransition(releaseTransition(txn.ID), auditFor(txn.ID, domain.ActionEscrowReleased)))

	record, err = escrowRepo.GetEscrowByTransactionID(txn.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.EscrowReleased, record.Status)
	assert.NotNil(t, record.ReleasedAt)

	gotTxn, err = txRepo.GetTransactionByID(txn.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.TransactionCompleted, gotTxn.Status)
}

func TestProcessEscrowTransition_ReleaseBeforeFundConflicts(t *testing.T) {
	db := openTestDB(t)
	escrowRepo := NewDefaultEscrowRepository(db)

	txn := seedSettledTransaction(t, db, "101.00")

	err := escrowRepo.ProcessEscrowTransition(releaseTransition(txn.ID), auditFor(txn.ID, domain.ActionEscrowReleased))
	var conflict *domain.StateConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, domain.ConflictEscrowTransition, conflict.Code)
}

func TestProcessEscrowTransition_TransactionGuardRollsBack(t *testing.T) {
	db := openTestDB(t)
	escrowRepo := NewDefaultEscrowRepository(db)

	txn := seedSettledTransaction(t, db, "101.00")
	require.NoError(t, escrowRepo.ProcessEscrowTransition(fundTransition(txn.ID), auditFor(txn.ID, domain.ActionEscrowFunded)))

	// A dispute overlay lands after the caller read the transaction.
	require.NoError(t, db.Model(&models.TransactionModel{}).Where("id = ?", txn.ID).
		Update("status", string(domain.TransactionDisputed)).Error)

	release := releaseTransition(txn.ID)
	release.FromTransactionStatuses = []domain.TransactionStatus{domain.TransactionProcessing}
	err := escrowRepo.ProcessEscrowTransition(release, auditFor(txn.ID, domain.ActionEscrowReleased))

	var conflict *domain.StateConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, domain.ConflictEscrowTransition, conflict.Code)

	// The escrow move rolled back together with the failed guard.
	record, err := escrowRepo.GetEscrowByTransactionID(txn.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.EscrowFunded, record.Status)
}

func TestProcessEscrowTransition_TerminalIsFinal(t *testing.T) {
	db := openTestDB(t)
	escrowRepo := NewDefaultEscrowRepository(db)

	txn := seedSettledTransaction(t, db, "101.00")
	require.NoError(t, escrowRepo.ProcessEscrowTransition(fundTransition(txn.ID), auditFor(txn.ID, domain.ActionEscrowFunded)))
	require.NoError(t, escrowRepo.ProcessEscrowTransition(releaseTransition(txn.ID), auditFor(txn.ID, domain.ActionEscrowReleased)))

	// Released and refunded are mutually exclusive and terminal: every
	// further move fails, including a repeat release and a late refund.
	var conflict *domain.StateConflictError

	err := escrowRepo.ProcessEscrowTransition(releaseTransition(txn.ID), auditFor(txn.ID, domain.ActionEscrowReleased))
	require.ErrorAs(t, err, &conflict)

	refund := &domain.EscrowTransition{
		TransactionID:              txn.ID,
		FromStatuses:               []domain.EscrowStatus{domain.EscrowFunded},
		ToStatus:                   domain.EscrowRefunded,
		NewTransactionStatus:       domain.TransactionCancelled,
		NewTransactionEscrowStatus: domain.EscrowRefunded,
		Action:                     domain.ActionEscrowRefunded,
	}
	err = escrowRepo.ProcessEscrowTransition(refund, auditFor(txn.ID, domain.ActionEscrowRefunded))
	require.ErrorAs(t, err, &conflict)

	err = escrowRepo.ProcessEscrowTransition(fundTransition(txn.ID), auditFor(txn.ID, domain.ActionEscrowFunded))
	require.ErrorAs(t, err, &conflict)
}

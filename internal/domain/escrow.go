package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type EscrowStatus string

const (
	EscrowPending  EscrowStatus = "PENDING"
	EscrowFunded   EscrowStatus = "FUNDED"
	EscrowReleased EscrowStatus = "RELEASED"
	EscrowRefunded EscrowStatus = "REFUNDED"
	// EscrowDisputed appears only on the transaction's escrow_status mirror
	// while a dispute overlays a funded escrow. The escrow record itself
	// keeps its custody truth (FUNDED) until a terminal transition.
	EscrowDisputed EscrowStatus = "DISPUTED"
)

// Terminal reports whether no transition may leave the status.
func (s EscrowStatus) Terminal() bool {
	return s == EscrowReleased || s == EscrowRefunded
}

type EscrowRecord struct {
	ID            string
	TransactionID string
	Amount        decimal.Decimal
	Status        EscrowStatus
	FundedAt      *time.Time
	ReleasedAt    *time.Time
	RefundedAt    *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// EscrowTransition describes one guarded custody move. FromStatuses is the
// precondition on the escrow record: the update commits only if the record
// currently holds one of them. FromTransactionStatuses, when set, additionally
// guards the transaction row, so a transition cannot overwrite a dispute
// overlay that landed after the caller's read. Either guard failing rolls the
// whole move back as a state conflict.
type EscrowTransition struct {
	TransactionID              string
	FromStatuses               []EscrowStatus
	FromTransactionStatuses    []TransactionStatus
	ToStatus                   EscrowStatus
	NewTransactionStatus       TransactionStatus
	NewTransactionEscrowStatus EscrowStatus
	Actor                      Actor
	Action                     string
}

type EscrowRepository interface {
	GetEscrowByTransactionID(transactionID string) (*EscrowRecord, error)
	// ProcessEscrowTransition applies the guarded status change, the
	// transaction status update and the audit entry in one DB transaction.
	ProcessEscrowTransition(t *EscrowTransition, entry *AuditEntry) error
}

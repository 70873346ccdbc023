package domain

import "time"

type DisputeStatus string

const (
	DisputeOpen                   DisputeStatus = "OPEN"
	DisputeAwaitingSellerResponse DisputeStatus = "AWAITING_SELLER_RESPONSE"
	DisputeAwaitingBuyerResponse  DisputeStatus = "AWAITING_BUYER_RESPONSE"
	DisputeUnderAdminReview       DisputeStatus = "UNDER_ADMIN_REVIEW"
	DisputeResolvedFavorBuyer     DisputeStatus = "RESOLVED_FAVOR_BUYER"
	DisputeResolvedFavorSeller    DisputeStatus = "RESOLVED_FAVOR_SELLER"
	DisputeResolvedAmicably       DisputeStatus = "RESOLVED_AMICABLY"
	DisputeClosedWithdrawn        DisputeStatus = "CLOSED_WITHDRAWN"
	DisputeClosedOther            DisputeStatus = "CLOSED_OTHER"
)

// Terminal statuses are final: no further messages or status changes.
func (s DisputeStatus) Terminal() bool {
	switch s {
	case DisputeResolvedFavorBuyer, DisputeResolvedFavorSeller, DisputeResolvedAmicably,
		DisputeClosedWithdrawn, DisputeClosedOther:
		return true
	}
	return false
}

// NonTerminalDisputeStatuses is the precondition set for every dispute
// transition guard.
var NonTerminalDisputeStatuses = []DisputeStatus{
	DisputeOpen,
	DisputeAwaitingSellerResponse,
	DisputeAwaitingBuyerResponse,
	DisputeUnderAdminReview,
}

type DisputeReason string

const (
	ReasonItemNotReceived     DisputeReason = "item_not_received"
	ReasonItemNotAsDescribed  DisputeReason = "item_not_as_described"
	ReasonPaymentIssue        DisputeReason = "payment_issue"
	ReasonUnauthorizedCharge  DisputeReason = "unauthorized_charge"
	ReasonOther               DisputeReason = "other"
)

func (r DisputeReason) Valid() bool {
	switch r {
	case ReasonItemNotReceived, ReasonItemNotAsDescribed, ReasonPaymentIssue,
		ReasonUnauthorizedCharge, ReasonOther:
		return true
	}
	return false
}

// ResolutionAction is the arbiter's decision. Exhaustive: every switch over
// it handles all three values.
type ResolutionAction int

const (
	ResolutionRelease ResolutionAction = iota
	ResolutionRefund
	ResolutionAmicable
)

// Dispute is tied to exactly one transaction and mutated only through its
// defined transitions.
type Dispute struct {
	ID            string
	TransactionID string
	CreatorID     string
	Reason        DisputeReason
	Description   string
	Status        DisputeStatus
	Resolution    string
	ResolvedBy    string
	ResolvedAt    *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// DisputeMessage rows accumulate until the dispute reaches a terminal state.
type DisputeMessage struct {
	ID            string
	DisputeID     string
	AuthorID      string
	Text          string
	AttachmentURL string
	CreatedAt     time.Time
}

// DisputeResolution is the terminal write applied by the arbiter: dispute
// status plus, unless the resolution is amicable, the matching escrow and
// transaction transitions, all in one DB transaction.
type DisputeResolution struct {
	DisputeID            string
	NewStatus            DisputeStatus
	Resolution           string
	ResolvedBy           string
	EscrowFromStatuses   []EscrowStatus
	EscrowTo             EscrowStatus // empty: no escrow movement (amicable)
	NewTransactionStatus TransactionStatus
}

type GetDisputesFilter struct {
	TransactionID *string
	PartyID       *string
	Status        *DisputeStatus
	Page          int
	Limit         int
}

type DisputeRepository interface {
	// CreateDispute inserts the dispute and flips the transaction to
	// DISPUTED (escrow mirror included) in one DB transaction. Reports a
	// state conflict when the transaction already has a dispute.
	CreateDispute(dispute *Dispute, entry *AuditEntry) error
	GetDisputeByID(disputeID string) (*Dispute, error)
	GetDisputeByTransactionID(transactionID string) (*Dispute, error)
	// AddDisputeMessage appends the message and bumps the dispute's update
	// timestamp; fails with a DisputeClosed conflict in terminal states.
	AddDisputeMessage(msg *DisputeMessage) error
	ListDisputeMessages(disputeID string, page, limit int64) ([]*DisputeMessage, int64, error)
	// UpdateDisputeStatus is a guarded move: commits only if the dispute
	// currently holds one of the from statuses.
	UpdateDisputeStatus(disputeID string, from []DisputeStatus, to DisputeStatus, entry *AuditEntry) error
	// ResolveDispute applies the terminal dispute status, the escrow
	// transition and the transaction status in one DB transaction.
	ResolveDispute(res *DisputeResolution, entry *AuditEntry) error
	FindOverdueDisputes(cutoff time.Time) ([]*Dispute, error)
	GetDisputes(filter GetDisputesFilter) ([]*Dispute, int64, error)
}

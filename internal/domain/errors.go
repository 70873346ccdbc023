package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	ErrNotFound = errors.New("not found")

	// ErrBidRaceLost is the repository-level signal that another bid advanced
	// the item's highest-bid cell between snapshot and commit. The usecase
	// re-reads the item and converts it into a StateConflictError carrying
	// the now-current amount.
	ErrBidRaceLost = errors.New("bid race lost")
)

// ValidationError - malformed input: non-positive amount, empty required text.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Reason)
}

// IneligibleActorError - the caller exists but may not perform the operation:
// seller bidding on own item, non-party touching a dispute, non-arbiter
// attempting a privileged transition.
type IneligibleActorError struct {
	ActorID string
	Reason  string
}

func (e *IneligibleActorError) Error() string {
	return fmt.Sprintf("actor %s is not eligible: %s", e.ActorID, e.Reason)
}

// StateConflictError - the operation is well-formed but the entity is not in
// a state that admits it. Expected and frequent under concurrency (lost bid
// races), so it carries enough detail for the caller to retry and is never
// logged as a system error. CurrentAmount is set for bid conflicts.
type StateConflictError struct {
	Code          string
	Reason        string
	CurrentAmount decimal.Decimal
}

func (e *StateConflictError) Error() string {
	return fmt.Sprintf("state conflict [%s]: %s", e.Code, e.Reason)
}

const (
	ConflictAuctionClosed    = "AuctionClosed"
	ConflictAuctionEnded     = "AuctionEnded"
	ConflictAuctionStillOpen = "AuctionStillOpen"
	ConflictBidTooLow        = "BidTooLow"
	ConflictOutbid           = "Outbid"
	ConflictEscrowTransition = "EscrowTransition"
	ConflictNotDisputable    = "NotDisputable"
	ConflictDisputeExists    = "DisputeExists"
	ConflictDisputeClosed    = "DisputeClosed"
	ConflictDisputeOpen      = "DisputeOpen"
)

package domain

import "time"

// AuditEntry is one append-only record of a state-changing action. Entries
// are written inside the same DB transaction as the transition they record
// and are read back as dispute evidence.
type AuditEntry struct {
	ID         string
	ActorID    string
	Action     string
	EntityType string
	EntityID   string
	Detail     string // JSON payload
	CreatedAt  time.Time
}

const (
	EntityItem        = "item"
	EntityTransaction = "transaction"
	EntityDispute     = "dispute"
)

const (
	ActionBidPlaced        = "bid_placed"
	ActionAuctionSettled   = "auction_settled"
	ActionAuctionUnsold    = "auction_unsold"
	ActionCacheRepaired    = "auction_cache_repaired"
	ActionEscrowFunded     = "escrow_funded"
	ActionEscrowReleased   = "escrow_released"
	ActionEscrowRefunded   = "escrow_refunded"
	ActionDisputeOpened    = "dispute_opened"
	ActionDisputeEscalated = "dispute_escalated"
	ActionDisputeResolved  = "dispute_resolved"
)

type AuditRepository interface {
	Append(entry *AuditEntry) error
	ListByEntity(entityType, entityID string, page, limit int64) ([]*AuditEntry, int64, error)
}

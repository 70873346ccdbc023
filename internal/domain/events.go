package domain

type Message struct {
	Key   []byte
	Value []byte
}

// AuctionEvent feeds the notification sink. Delivery is fire-and-forget:
// a failed publish is logged and never aborts the primary transition.
type AuctionEvent struct {
	Type          string `json:"type"`
	ItemID        string `json:"item_id"`
	BidID         string `json:"bid_id,omitempty"`
	TransactionID string `json:"transaction_id,omitempty"`
	SellerID      string `json:"seller_id,omitempty"`
	BuyerID       string `json:"buyer_id,omitempty"`
	Amount        string `json:"amount,omitempty"`
}

type DisputeEvent struct {
	Type          string `json:"type"`
	DisputeID     string `json:"dispute_id"`
	TransactionID string `json:"transaction_id"`
	ActorID       string `json:"actor_id,omitempty"`
	Reason        string `json:"reason,omitempty"`
	Status        string `json:"status"`
}

const (
	EventBidAccepted    = "bid_accepted"
	EventBidOutbid      = "bid_outbid"
	EventAuctionSettled = "auction_settled"
	EventAuctionUnsold  = "auction_unsold"
	EventEscrowFunded   = "escrow_funded"
	EventEscrowReleased = "escrow_released"
	EventEscrowRefunded = "escrow_refunded"

	EventDisputeOpened       = "dispute_opened"
	EventDisputeMessageAdded = "dispute_message_added"
	EventDisputeEscalated    = "dispute_escalated"
	EventDisputeResolved     = "dispute_resolved"
)

type EventPublisher interface {
	PublishAuctionEvent(event AuctionEvent) error
	PublishDisputeEvent(event DisputeEvent) error
}

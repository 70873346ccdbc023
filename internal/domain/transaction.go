package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type TransactionStatus string

const (
	TransactionPending    TransactionStatus = "PENDING"
	TransactionProcessing TransactionStatus = "PROCESSING"
	TransactionCompleted  TransactionStatus = "COMPLETED"
	TransactionDisputed   TransactionStatus = "DISPUTED"
	TransactionCancelled  TransactionStatus = "CANCELLED"
)

// Transaction is created exactly once per settled sale, together with its
// escrow record.
type Transaction struct {
	ID           string
	ItemID       string
	BuyerID      string
	SellerID     string
	Amount       decimal.Decimal
	Status       TransactionStatus
	EscrowStatus EscrowStatus
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (t *Transaction) IsParty(userID string) bool {
	return t.BuyerID == userID || t.SellerID == userID
}

type TransactionRepository interface {
	GetTransactionByID(transactionID string) (*Transaction, error)
	GetTransactionByItemID(itemID string) (*Transaction, error)
	// SettleAuction deactivates the item and creates the transaction and its
	// escrow record in one DB transaction. Returns false without error when
	// the item was already inactive (the settlement already happened).
	SettleAuction(itemID string, txn *Transaction, escrow *EscrowRecord, entry *AuditEntry) (bool, error)
	// CloseUnsold deactivates a zero-bid item. Returns false without error
	// when the item was already inactive.
	CloseUnsold(itemID string, entry *AuditEntry) (bool, error)
}

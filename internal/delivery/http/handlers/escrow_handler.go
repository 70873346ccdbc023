package handlers

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/tradeyard/tradeyard-auction-service/internal/delivery/http/middleware"
	"github.com/tradeyard/tradeyard-auction-service/internal/domain"
)

type EscrowUsecase interface {
	FundEscrow(transactionID string, actor domain.Actor) (*domain.EscrowRecord, error)
	ReleaseEscrow(transactionID string, actor domain.Actor) (*domain.EscrowRecord, error)
	RefundEscrow(transactionID string, actor domain.Actor) (*domain.EscrowRecord, error)
	GetEscrow(transactionID string, actor domain.Actor) (*domain.EscrowRecord, error)
	GetTransaction(transactionID string, actor domain.Actor) (*domain.Transaction, error)
}

type EscrowHandler struct {
	uc EscrowUsecase
}

func NewEscrowHandler(uc EscrowUsecase) *EscrowHandler {
	return &EscrowHandler{uc: uc}
}

type escrowResponse struct {
	ID            string     `json:"id"`
	TransactionID string     `json:"transaction_id"`
	Amount        string     `json:"amount"`
	Status        string     `json:"status"`
	FundedAt      *time.Time `json:"funded_at,omitempty"`
	ReleasedAt    *time.Time `json:"released_at,omitempty"`
	RefundedAt    *time.Time `json:"refunded_at,omitempty"`
}

func toEscrowResponse(record *domain.EscrowRecord) escrowResponse {
	return escrowResponse{
		ID:            record.ID,
		TransactionID: record.TransactionID,
		Amount:        record.Amount.StringFixed(2),
		Status:        string(record.Status),
		FundedAt:      record.FundedAt,
		ReleasedAt:    record.ReleasedAt,
		RefundedAt:    record.RefundedAt,
	}
}

// GetTransaction GET /api/v1/transactions/:id
func (h *EscrowHandler) GetTransaction(c echo.Context) error {
	txn, err := h.uc.GetTransaction(c.Param("id"), middleware.ActorFromContext(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, transactionResponse{
		ID:           txn.ID,
		ItemID:       txn.ItemID,
		BuyerID:      txn.BuyerID,
		SellerID:     txn.SellerID,
		Amount:       txn.Amount.StringFixed(2),
		Status:       string(txn.Status),
		EscrowStatus: string(txn.EscrowStatus),
		CreatedAt:    txn.CreatedAt,
	})
}

// GetEscrow GET /api/v1/transactions/:id/escrow
func (h *EscrowHandler) GetEscrow(c echo.Context) error {
	record, err := h.uc.GetEscrow(c.Param("id"), middleware.ActorFromContext(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, toEscrowResponse(record))
}

// Fund POST /api/v1/transactions/:id/escrow/fund
func (h *EscrowHandler) Fund(c echo.Context) error {
	record, err := h.uc.FundEscrow(c.Param("id"), middleware.ActorFromContext(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, toEscrowResponse(record))
}

// Release POST /api/v1/transactions/:id/escrow/release
func (h *EscrowHandler) Release(c echo.Context) error {
	record, err := h.uc.ReleaseEscrow(c.Param("id"), middleware.ActorFromContext(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, toEscrowResponse(record))
}

// Refund POST /api/v1/transactions/:id/escrow/refund
func (h *EscrowHandler) Refund(c echo.Context) error {
	record, err := h.uc.RefundEscrow(c.Param("id"), middleware.ActorFromContext(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, toEscrowResponse(record))
}

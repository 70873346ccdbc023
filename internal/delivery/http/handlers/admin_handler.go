package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/tradeyard/tradeyard-auction-service/internal/delivery/http/middleware"
	"github.com/tradeyard/tradeyard-auction-service/internal/domain"
)

type SettlementUsecase interface {
	ProcessAuctionEnd(itemID string) (*domain.Transaction, error)
}

type CacheRepairer interface {
	RepairAuctionCache(actor domain.Actor, itemID string) (*domain.Item, error)
}

// AdminHandler carries the arbiter-facing operational endpoints: forcing a
// settlement, repairing an item's auction cache and reading audit evidence.
type AdminHandler struct {
	settlement SettlementUsecase
	repairer   CacheRepairer
	auditRepo  domain.AuditRepository
}

func NewAdminHandler(settlement SettlementUsecase, repairer CacheRepairer, auditRepo domain.AuditRepository) *AdminHandler {
	return &AdminHandler{settlement: settlement, repairer: repairer, auditRepo: auditRepo}
}

type transactionResponse struct {
	ID           string    `json:"id"`
	ItemID       string    `json:"item_id"`
	BuyerID      string    `json:"buyer_id"`
	SellerID     string    `json:"seller_id"`
	Amount       string    `json:"amount"`
	Status       string    `json:"status"`
	EscrowStatus string    `json:"escrow_status"`
	CreatedAt    time.Time `json:"created_at"`
}

// SettleItem POST /api/v1/admin/items/:id/settle
func (h *AdminHandler) SettleItem(c echo.Context) error {
	actor := middleware.ActorFromContext(c)
	if !actor.IsArbiter() {
		return writeError(c, &domain.IneligibleActorError{ActorID: actor.ID, Reason: "forced settlement requires arbiter role"})
	}

	txn, err := h.settlement.ProcessAuctionEnd(c.Param("id"))
	if err != nil {
		return writeError(c, err)
	}
	if txn == nil {
		return c.JSON(http.StatusOK, map[string]string{"result": "no transaction created"})
	}
	return c.JSON(http.StatusCreated, transactionResponse{
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

type itemResponse struct {
	ID               string `json:"id"`
	CurrentBidAmount string `json:"current_bid_amount"`
	CurrentBidID     string `json:"current_bid_id,omitempty"`
	BidCount         int32  `json:"bid_count"`
	IsActive         bool   `json:"is_active"`
}

// RepairItemCache POST /api/v1/admin/items/:id/repair-cache
func (h *AdminHandler) RepairItemCache(c echo.Context) error {
	item, err := h.repairer.RepairAuctionCache(middleware.ActorFromContext(c), c.Param("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, itemResponse{
		ID:               item.ID,
		CurrentBidAmount: item.CurrentBidAmount.StringFixed(2),
		CurrentBidID:     item.CurrentBidID,
		BidCount:         item.BidCount,
		IsActive:         item.IsActive,
	})
}

type auditEntryResponse struct {
	ID         string    `json:"id"`
	ActorID    string    `json:"actor_id"`
	Action     string    `json:"action"`
	EntityType string    `json:"entity_type"`
	EntityID   string    `json:"entity_id"`
	Detail     string    `json:"detail,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

type auditTrailResponse struct {
	Entries    []auditEntryResponse `json:"entries"`
	Pagination paginationResponse   `json:"pagination"`
}

// GetAuditTrail GET /api/v1/admin/audit/:entity_type/:entity_id
//
// The evidence read used during dispute review: the ordered action history of
// an item, transaction or dispute.
func (h *AdminHandler) GetAuditTrail(c echo.Context) error {
	actor := middleware.ActorFromContext(c)
	if !actor.IsArbiter() {
		return writeError(c, &domain.IneligibleActorError{ActorID: actor.ID, Reason: "audit trail requires arbiter role"})
	}

	page, _ := strconv.ParseInt(c.QueryParam("page"), 10, 64)
	limit, _ := strconv.ParseInt(c.QueryParam("limit"), 10, 64)
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 200 {
		limit = 50
	}

	entries, total, err := h.auditRepo.ListByEntity(c.Param("entity_type"), c.Param("entity_id"), page, limit)
	if err != nil {
		return writeError(c, err)
	}

	out := make([]auditEntryResponse, len(entries))
	for i, e := range entries {
		out[i] = auditEntryResponse{
			ID:         e.ID,
			ActorID:    e.ActorID,
			Action:     e.Action,
			EntityType: e.EntityType,
			EntityID:   e.EntityID,
			Detail:     e.Detail,
			CreatedAt:  e.CreatedAt,
		}
	}

	totalPages := total / limit
	if total%limit != 0 {
		totalPages++
	}
	return c.JSON(http.StatusOK, auditTrailResponse{
		Entries: out,
		Pagination: paginationResponse{
			CurrentPage:  int32(page),
			TotalPages:   int32(totalPages),
			TotalItems:   int32(total),
			ItemsPerPage: int32(limit),
		},
	})
}

package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/tradeyard/tradeyard-auction-service/internal/delivery/http/middleware"
	"github.com/tradeyard/tradeyard-auction-service/internal/domain"
	biddto "github.com/tradeyard/tradeyard-auction-service/internal/usecase/dto/bid"
)

type BidUsecase interface {
	PlaceBid(input *biddto.PlaceBidInput) (*biddto.PlaceBidOutput, error)
	GetItemBids(input *biddto.GetItemBidsInput) (*biddto.GetItemBidsOutput, error)
}

type BidHandler struct {
	uc BidUsecase
}

func NewBidHandler(uc BidUsecase) *BidHandler {
	return &BidHandler{uc: uc}
}

type placeBidRequest struct {
	Amount string `json:"amount"`
}

type bidResponse struct {
	ID        string    `json:"id"`
	ItemID    string    `json:"item_id"`
	BidderID  string    `json:"bidder_id"`
	Amount    string    `json:"amount"`
	CreatedAt time.Time `json:"created_at"`
}

type placeBidResponse struct {
	Bid           bidResponse `json:"bid"`
	CurrentAmount string      `json:"current_amount"`
	BidCount      int32       `json:"bid_count"`
}

// PlaceBid POST /api/v1/items/:id/bids
func (h *BidHandler) PlaceBid(c echo.Context) error {
	var req placeBidRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "malformed request body"})
	}
	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		return writeError(c, &domain.ValidationError{Field: "amount", Reason: "not a valid decimal"})
	}

	out, err := h.uc.PlaceBid(&biddto.PlaceBidInput{
		ItemID: c.Param("id"),
		Actor:  middleware.ActorFromContext(c),
		Amount: amount,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusCreated, placeBidResponse{
		Bid: bidResponse{
			ID:        out.Bid.ID,
			ItemID:    out.Bid.ItemID,
			BidderID:  out.Bid.BidderID,
			Amount:    out.Bid.Amount.StringFixed(2),
			CreatedAt: out.Bid.CreatedAt,
		},
		CurrentAmount: out.CurrentAmount.StringFixed(2),
		BidCount:      out.BidCount,
	})
}

type bidViewResponse struct {
	ID         string    `json:"id"`
	BidderID   string    `json:"bidder_id"`
	BidderName string    `json:"bidder_name,omitempty"`
	Amount     string    `json:"amount"`
	CreatedAt  time.Time `json:"created_at"`
}

type paginationResponse struct {
	CurrentPage  int32 `json:"current_page"`
	TotalPages   int32 `json:"total_pages"`
	TotalItems   int32 `json:"total_items"`
	ItemsPerPage int32 `json:"items_per_page"`
}

type listBidsResponse struct {
	Bids       []bidViewResponse  `json:"bids"`
	Pagination paginationResponse `json:"pagination"`
}

// ListBids GET /api/v1/items/:id/bids
func (h *BidHandler) ListBids(c echo.Context) error {
	page, _ := strconv.ParseInt(c.QueryParam("page"), 10, 64)
	limit, _ := strconv.ParseInt(c.QueryParam("limit"), 10, 64)

	out, err := h.uc.GetItemBids(&biddto.GetItemBidsInput{
		ItemID: c.Param("id"),
		Page:   page,
		Limit:  limit,
	})
	if err != nil {
		return writeError(c, err)
	}

	bids := make([]bidViewResponse, len(out.Bids))
	for i, b := range out.Bids {
		bids[i] = bidViewResponse{
			ID:         b.ID,
			BidderID:   b.BidderID,
			BidderName: b.BidderName,
			Amount:     b.Amount.StringFixed(2),
			CreatedAt:  b.CreatedAt,
		}
	}

	return c.JSON(http.StatusOK, listBidsResponse{
		Bids: bids,
		Pagination: paginationResponse{
			CurrentPage:  out.Pagination.CurrentPage,
			TotalPages:   out.Pagination.TotalPages,
			TotalItems:   out.Pagination.TotalItems,
			ItemsPerPage: out.Pagination.ItemsPerPage,
		},
	})
}

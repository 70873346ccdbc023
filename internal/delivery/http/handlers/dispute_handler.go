package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/tradeyard/tradeyard-auction-service/internal/delivery/http/middleware"
	"github.com/tradeyard/tradeyard-auction-service/internal/domain"
	disputedto "github.com/tradeyard/tradeyard-auction-service/internal/usecase/dto/dispute"
)

type DisputeUsecase interface {
	OpenDispute(input *disputedto.OpenDisputeInput) (*domain.Dispute, error)
	AddMessage(input *disputedto.AddMessageInput) (*domain.DisputeMessage, error)
	ListMessages(input *disputedto.ListMessagesInput) (*disputedto.ListMessagesOutput, error)
	EscalateDispute(disputeID string, actor domain.Actor) (*domain.Dispute, error)
	ResolveDispute(input *disputedto.ResolveDisputeInput) (*domain.Dispute, error)
	GetDispute(disputeID string, actor domain.Actor) (*domain.Dispute, error)
	GetDisputes(actor domain.Actor, input *disputedto.GetDisputesInput) (*disputedto.GetDisputesOutput, error)
}

type DisputeHandler struct {
	uc DisputeUsecase
}

func NewDisputeHandler(uc DisputeUsecase) *DisputeHandler {
	return &DisputeHandler{uc: uc}
}

type disputeResponse struct {
	ID            string     `json:"id"`
	TransactionID string     `json:"transaction_id"`
	CreatorID     string     `json:"creator_id"`
	Reason        string     `json:"reason"`
	Description   string     `json:"description"`
	Status        string     `json:"status"`
	Resolution    string     `json:"resolution,omitempty"`
	ResolvedBy    string     `json:"resolved_by,omitempty"`
	ResolvedAt    *time.Time `json:"resolved_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

func toDisputeResponse(d *domain.Dispute) disputeResponse {
	return disputeResponse{
		ID:            d.ID,
		TransactionID: d.TransactionID,
		CreatorID:     d.CreatorID,
		Reason:        string(d.Reason),
		Description:   d.Description,
		Status:        string(d.Status),
		Resolution:    d.Resolution,
		ResolvedBy:    d.ResolvedBy,
		ResolvedAt:    d.ResolvedAt,
		CreatedAt:     d.CreatedAt,
		UpdatedAt:     d.UpdatedAt,
	}
}

type openDisputeRequest struct {
	TransactionID string `json:"transaction_id"`
	Reason        string `json:"reason"`
	Description   string `json:"description"`
}

// Open POST /api/v1/disputes
func (h *DisputeHandler) Open(c echo.Context) error {
	var req openDisputeRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "malformed request body"})
	}

	dispute, err := h.uc.OpenDispute(&disputedto.OpenDisputeInput{
		TransactionID: req.TransactionID,
		Actor:         middleware.ActorFromContext(c),
		Reason:        domain.DisputeReason(req.Reason),
		Description:   req.Description,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, toDisputeResponse(dispute))
}

// Get GET /api/v1/disputes/:id
func (h *DisputeHandler) Get(c echo.Context) error {
	dispute, err := h.uc.GetDispute(c.Param("id"), middleware.ActorFromContext(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, toDisputeResponse(dispute))
}

type listDisputesResponse struct {
	Disputes   []disputeResponse  `json:"disputes"`
	Pagination paginationResponse `json:"pagination"`
}

// List GET /api/v1/disputes
func (h *DisputeHandler) List(c echo.Context) error {
	page, _ := strconv.ParseInt(c.QueryParam("page"), 10, 64)
	limit, _ := strconv.ParseInt(c.QueryParam("limit"), 10, 64)

	input := &disputedto.GetDisputesInput{Page: page, Limit: limit}
	if v := c.QueryParam("transaction_id"); v != "" {
		input.TransactionID = &v
	}
	if v := c.QueryParam("party_id"); v != "" {
		input.PartyID = &v
	}
	if v := c.QueryParam("status"); v != "" {
		status := domain.DisputeStatus(v)
		input.Status = &status
	}

	out, err := h.uc.GetDisputes(middleware.ActorFromContext(c), input)
	if err != nil {
		return writeError(c, err)
	}

	disputes := make([]disputeResponse, len(out.Disputes))
	for i, d := range out.Disputes {
		disputes[i] = toDisputeResponse(d)
	}
	return c.JSON(http.StatusOK, listDisputesResponse{
		Disputes: disputes,
		Pagination: paginationResponse{
			CurrentPage:  out.Pagination.CurrentPage,
			TotalPages:   out.Pagination.TotalPages,
			TotalItems:   out.Pagination.TotalItems,
			ItemsPerPage: out.Pagination.ItemsPerPage,
		},
	})
}

type addMessageRequest struct {
	Text          string `json:"text"`
	AttachmentURL string `json:"attachment_url"`
}

type messageResponse struct {
	ID            string    `json:"id"`
	DisputeID     string    `json:"dispute_id"`
	AuthorID      string    `json:"author_id"`
	Text          string    `json:"text"`
	AttachmentURL string    `json:"attachment_url,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

func toMessageResponse(m *domain.DisputeMessage) messageResponse {
	return messageResponse{
		ID:            m.ID,
		DisputeID:     m.DisputeID,
		AuthorID:      m.AuthorID,
		Text:          m.Text,
		AttachmentURL: m.AttachmentURL,
		CreatedAt:     m.CreatedAt,
	}
}

// AddMessage POST /api/v1/disputes/:id/messages
func (h *DisputeHandler) AddMessage(c echo.Context) error {
	var req addMessageRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "malformed request body"})
	}

	msg, err := h.uc.AddMessage(&disputedto.AddMessageInput{
		DisputeID:     c.Param("id"),
		Actor:         middleware.ActorFromContext(c),
		Text:          req.Text,
		AttachmentURL: req.AttachmentURL,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, toMessageResponse(msg))
}

type listMessagesResponse struct {
	Messages   []messageResponse  `json:"messages"`
	Pagination paginationResponse `json:"pagination"`
}

// ListMessages GET /api/v1/disputes/:id/messages
func (h *DisputeHandler) ListMessages(c echo.Context) error {
	page, _ := strconv.ParseInt(c.QueryParam("page"), 10, 64)
	limit, _ := strconv.ParseInt(c.QueryParam("limit"), 10, 64)

	out, err := h.uc.ListMessages(&disputedto.ListMessagesInput{
		DisputeID: c.Param("id"),
		Actor:     middleware.ActorFromContext(c),
		Page:      page,
		Limit:     limit,
	})
	if err != nil {
		return writeError(c, err)
	}

	messages := make([]messageResponse, len(out.Messages))
	for i, m := range out.Messages {
		messages[i] = toMessageResponse(m)
	}
	return c.JSON(http.StatusOK, listMessagesResponse{
		Messages: messages,
		Pagination: paginationResponse{
			CurrentPage:  out.Pagination.CurrentPage,
			TotalPages:   out.Pagination.TotalPages,
			TotalItems:   out.Pagination.TotalItems,
			ItemsPerPage: out.Pagination.ItemsPerPage,
		},
	})
}

// Escalate POST /api/v1/disputes/:id/escalate
func (h *DisputeHandler) Escalate(c echo.Context) error {
	dispute, err := h.uc.EscalateDispute(c.Param("id"), middleware.ActorFromContext(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, toDisputeResponse(dispute))
}

type resolveDisputeRequest struct {
	Action     string `json:"action"` // release, refund, amicable
	Resolution string `json:"resolution"`
}

// Resolve POST /api/v1/disputes/:id/resolve
func (h *DisputeHandler) Resolve(c echo.Context) error {
	var req resolveDisputeRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "malformed request body"})
	}

	var action domain.ResolutionAction
	switch req.Action {
	case "release":
		action = domain.ResolutionRelease
	case "refund":
		action = domain.ResolutionRefund
	case "amicable":
		action = domain.ResolutionAmicable
	default:
		return writeError(c, &domain.ValidationError{Field: "action", Reason: "must be release, refund or amicable"})
	}

	dispute, err := h.uc.ResolveDispute(&disputedto.ResolveDisputeInput{
		DisputeID:  c.Param("id"),
		Actor:      middleware.ActorFromContext(c),
		Resolution: req.Resolution,
		Action:     action,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, toDisputeResponse(dispute))
}

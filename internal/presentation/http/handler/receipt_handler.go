package handler

import (
	"github.com/atlantichotel/frontdesk-api/internal/application/service"
	"github.com/atlantichotel/frontdesk-api/internal/domain/entity"
	"github.com/atlantichotel/frontdesk-api/internal/presentation/http/dto/request"
	"github.com/atlantichotel/frontdesk-api/internal/presentation/http/dto/response"
	"github.com/atlantichotel/frontdesk-api/pkg/pagination"
	"github.com/gin-gonic/gin"
)

// ReceiptHandler handles receipt-related HTTP requests
type ReceiptHandler struct {
	receiptService *service.ReceiptService
}

// NewReceiptHandler creates a new receipt handler
func NewReceiptHandler(receiptService *service.ReceiptService) *ReceiptHandler {
	return &ReceiptHandler{receiptService: receiptService}
}

// Create issues a receipt and checks the guest in
// @Summary Create receipt
// @Tags receipts
// @Accept json
// @Produce json
// @Param Idempotency-Key header string false "Replay protection for retried submissions"
// @Param request body request.CreateReceiptRequest true "Receipt data"
// @Success 201 {object} response.APIResponse
// @Success 202 {object} response.APIResponse
// @Failure 422 {object} response.APIResponse
// @Router /receipts [post]
func (h *ReceiptHandler) Create(c *gin.Context) {
	var req request.CreateReceiptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	input := &service.CreateReceiptInput{
		CustomerName:         req.CustomerName,
		GuestNames:           req.GuestNames,
		RoomNumber:           req.RoomNumber,
		Amount:               req.Amount,
		NumberOfDays:         req.NumberOfDays,
		DailyRate:            req.DailyRate,
		PaymentMode:          req.PaymentMode,
		CompanyName:          req.CompanyName,
		ReceptionistName:     staffName(c, req.ReceptionistName),
		Location:             req.Location,
		Date:                 req.Date,
		CheckInDate:          req.CheckInDate,
		IsExtension:          req.IsExtension,
		OriginalReceiptID:    req.OriginalReceiptID,
		PaymentForDates:      req.PaymentForDates,
		IncludeTax:           req.IncludeTax,
		IncludeServiceCharge: req.IncludeServiceCharge,
	}
	for _, d := range req.RoomDetails {
		input.RoomDetails = append(input.RoomDetails, service.RoomDetailInput{
			RoomNumber:   d.RoomNumber,
			NumberOfDays: d.NumberOfDays,
			DailyRate:    d.DailyRate,
			Subtotal:     d.Subtotal,
			GuestName:    d.GuestName,
		})
	}

	receipt, err := h.receiptService.Create(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	if !receipt.Synced {
		response.Accepted(c, "Receipt saved offline and queued for sync", receipt)
		return
	}
	response.Created(c, "Receipt created successfully", receipt)
}

// List returns receipts, newest first, optionally filtered by branch and
// a free-text search
func (h *ReceiptHandler) List(c *gin.Context) {
	var filter request.ReceiptFilterRequest
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	var (
		receipts []entity.Receipt
		err      error
	)
	switch {
	case filter.Search != "":
		receipts, err = h.receiptService.Search(c.Request.Context(), filter.Location, filter.Search)
	case filter.Location != "":
		receipts, err = h.receiptService.ListByLocation(c.Request.Context(), filter.Location)
	default:
		receipts, err = h.receiptService.ListAll(c.Request.Context())
	}
	if err != nil {
		response.Error(c, err)
		return
	}

	result := pagination.Paginate(receipts, &pagination.PaginationParams{Page: filter.Page, PerPage: filter.PerPage})
	response.SuccessWithPagination(c, 200, "Receipts retrieved successfully", result)
}

// Get returns one receipt
func (h *ReceiptHandler) Get(c *gin.Context) {
	receipt, err := h.receiptService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Receipt retrieved successfully", receipt)
}

// Pull merges receipts written by other desks
func (h *ReceiptHandler) Pull(c *gin.Context) {
	added, err := h.receiptService.PullRemote(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Remote receipts merged", gin.H{"added": added})
}

// Checkout frees a room and closes the guest's receipts
// @Summary Guest checkout
// @Tags receipts
// @Accept json
// @Produce json
// @Param request body request.GuestCheckoutRequest true "Room to check out"
// @Success 200 {object} response.APIResponse
// @Failure 409 {object} response.APIResponse
// @Router /receipts/checkout [post]
func (h *ReceiptHandler) Checkout(c *gin.Context) {
	var req request.GuestCheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	result, err := h.receiptService.CheckOutGuest(c.Request.Context(), req.Location, req.RoomNumber)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Guest checked out successfully", result)
}

// MarkCheckedOut closes a named guest's receipts for a room without
// touching the room itself
func (h *ReceiptHandler) MarkCheckedOut(c *gin.Context) {
	var req request.MarkCheckedOutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	ids, err := h.receiptService.MarkCheckedOut(c.Request.Context(), req.Location, req.RoomNumber, req.GuestName)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Receipts marked as checked out", gin.H{"checkedOutReceipts": ids})
}

package handler

import (
	"github.com/atlantichotel/frontdesk-api/internal/application/service"
	"github.com/atlantichotel/frontdesk-api/internal/domain/entity"
	"github.com/atlantichotel/frontdesk-api/internal/presentation/http/dto/request"
	"github.com/atlantichotel/frontdesk-api/internal/presentation/http/dto/response"
	"github.com/gin-gonic/gin"
)

// InvoiceHandler handles invoice generation
type InvoiceHandler struct {
	invoiceService *service.InvoiceService
}

// NewInvoiceHandler creates a new invoice handler
func NewInvoiceHandler(invoiceService *service.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{invoiceService: invoiceService}
}

// Generate aggregates receipts, restaurant bills and manual charges for
// a guest's rooms
// @Summary Generate invoice
// @Tags invoices
// @Accept json
// @Produce json
// @Param request body request.GenerateInvoiceRequest true "Rooms and guest"
// @Success 200 {object} response.APIResponse
// @Failure 404 {object} response.APIResponse
// @Router /invoices [post]
func (h *InvoiceHandler) Generate(c *gin.Context) {
	var req request.GenerateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	charges := make([]entity.AdditionalCharge, 0, len(req.AdditionalCharges))
	for _, ch := range req.AdditionalCharges {
		charges = append(charges, entity.AdditionalCharge{Description: ch.Description, Amount: ch.Amount})
	}

	invoice, err := h.invoiceService.Generate(c.Request.Context(), &service.InvoiceRequest{
		Location:          req.Location,
		RoomNumbers:       req.RoomNumbers,
		GuestName:         req.GuestName,
		AdditionalCharges: charges,
		IssueDate:         req.IssueDate,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Invoice generated successfully", invoice)
}

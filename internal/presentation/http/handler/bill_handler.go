package handler

import (
	"github.com/atlantichotel/frontdesk-api/internal/application/service"
	"github.com/atlantichotel/frontdesk-api/internal/presentation/http/dto/request"
	"github.com/atlantichotel/frontdesk-api/internal/presentation/http/dto/response"
	"github.com/atlantichotel/frontdesk-api/pkg/pagination"
	"github.com/gin-gonic/gin"
)

// BillHandler handles restaurant bill HTTP requests
type BillHandler struct {
	billService *service.BillService
}

// NewBillHandler creates a new bill handler
func NewBillHandler(billService *service.BillService) *BillHandler {
	return &BillHandler{billService: billService}
}

// Create records a restaurant bill
// @Summary Create bill
// @Tags bills
// @Accept json
// @Produce json
// @Param request body request.CreateBillRequest true "Bill data"
// @Success 201 {object} response.APIResponse
// @Success 202 {object} response.APIResponse
// @Failure 422 {object} response.APIResponse
// @Router /bills [post]
func (h *BillHandler) Create(c *gin.Context) {
	var req request.CreateBillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	input := &service.CreateBillInput{
		CustomerName: req.CustomerName,
		RoomNumber:   req.RoomNumber,
		RoomLocation: req.RoomLocation,
		GuestName:    req.GuestName,
		StaffName:    staffName(c, req.StaffName),
		IncludeTax:   req.IncludeTax,
	}
	for _, item := range req.Items {
		input.Items = append(input.Items, service.BillItemInput{
			MenuItemID:   item.MenuItemID,
			Name:         item.Name,
			Quantity:     item.Quantity,
			PricePerUnit: item.PricePerUnit,
		})
	}

	bill, err := h.billService.Create(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	if !bill.Synced {
		response.Accepted(c, "Bill saved offline and queued for sync", bill)
		return
	}
	response.Created(c, "Bill created successfully", bill)
}

func (h *BillHandler) List(c *gin.Context) {
	var params pagination.PaginationParams
	if err := c.ShouldBindQuery(&params); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	bills, err := h.billService.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithPagination(c, 200, "Bills retrieved successfully", pagination.Paginate(bills, &params))
}

func (h *BillHandler) Get(c *gin.Context) {
	bill, err := h.billService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Bill retrieved successfully", bill)
}

// ForRoom returns the bills charged to a room, optionally for one guest
func (h *BillHandler) ForRoom(c *gin.Context) {
	var req request.RoomBillsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "room_number and location are required")
		return
	}

	bills, err := h.billService.FetchForRoom(c.Request.Context(), req.RoomNumber, req.Location, req.GuestName)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Bills retrieved successfully", bills)
}

package handler

import (
	"github.com/atlantichotel/frontdesk-api/internal/application/service"
	"github.com/atlantichotel/frontdesk-api/internal/presentation/http/dto/request"
	"github.com/atlantichotel/frontdesk-api/internal/presentation/http/dto/response"
	"github.com/gin-gonic/gin"
)

// BankAccountHandler handles the invoice transfer account
type BankAccountHandler struct {
	bankAccountService *service.BankAccountService
}

// NewBankAccountHandler creates a new bank account handler
func NewBankAccountHandler(bankAccountService *service.BankAccountService) *BankAccountHandler {
	return &BankAccountHandler{bankAccountService: bankAccountService}
}

func (h *BankAccountHandler) Get(c *gin.Context) {
	account, err := h.bankAccountService.Get(c.Request.Context(), c.Query("location"))
	if err != nil {
		response.Error(c, err)
		return
	}
	if account == nil {
		response.NotFound(c, "No bank account configured")
		return
	}
	response.OK(c, "Bank account retrieved successfully", account)
}

func (h *BankAccountHandler) Create(c *gin.Context) {
	var req request.BankAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	account, err := h.bankAccountService.Create(c.Request.Context(), &service.BankAccountInput{
		BankName:      req.BankName,
		AccountNumber: req.AccountNumber,
		AccountName:   req.AccountName,
		Location:      req.Location,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Bank account created successfully", account)
}

func (h *BankAccountHandler) Update(c *gin.Context) {
	var req request.BankAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	account, err := h.bankAccountService.Update(c.Request.Context(), c.Param("id"), &service.BankAccountInput{
		BankName:      req.BankName,
		AccountNumber: req.AccountNumber,
		AccountName:   req.AccountName,
		Location:      req.Location,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Bank account updated successfully", account)
}

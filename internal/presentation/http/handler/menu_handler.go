package handler

import (
	"github.com/atlantichotel/frontdesk-api/internal/application/service"
	"github.com/atlantichotel/frontdesk-api/internal/presentation/http/dto/request"
	"github.com/atlantichotel/frontdesk-api/internal/presentation/http/dto/response"
	"github.com/gin-gonic/gin"
)

// MenuHandler handles restaurant menu HTTP requests
type MenuHandler struct {
	menuService *service.MenuService
}

// NewMenuHandler creates a new menu handler
func NewMenuHandler(menuService *service.MenuService) *MenuHandler {
	return &MenuHandler{menuService: menuService}
}

// List returns available items in a category; "All" or no category
// returns every available item
func (h *MenuHandler) List(c *gin.Context) {
	items, err := h.menuService.List(c.Request.Context(), c.DefaultQuery("category", service.MenuCategoryAll))
	if err != nil {
		response.Error(c, err)
		return
	}

	lastSync, _ := h.menuService.LastSync(c.Request.Context())
	response.OK(c, "Menu retrieved successfully", gin.H{
		"items":    items,
		"lastSync": lastSync,
	})
}

func (h *MenuHandler) Categories(c *gin.Context) {
	categories, err := h.menuService.Categories(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Categories retrieved successfully", categories)
}

func (h *MenuHandler) Refresh(c *gin.Context) {
	items, err := h.menuService.Refresh(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Menu refreshed", items)
}

func menuInput(req *request.MenuItemRequest) *service.MenuItemInput {
	available := true
	if req.Available != nil {
		available = *req.Available
	}
	return &service.MenuItemInput{
		Name:        req.Name,
		Category:    req.Category,
		Price:       req.Price,
		Available:   available,
		Description: req.Description,
	}
}

func (h *MenuHandler) Create(c *gin.Context) {
	var req request.MenuItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	item, err := h.menuService.Create(c.Request.Context(), menuInput(&req))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Menu item created successfully", item)
}

func (h *MenuHandler) Update(c *gin.Context) {
	var req request.MenuItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	item, err := h.menuService.Update(c.Request.Context(), c.Param("id"), menuInput(&req))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Menu item updated successfully", item)
}

func (h *MenuHandler) SetAvailability(c *gin.Context) {
	var req request.MenuAvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	item, err := h.menuService.SetAvailability(c.Request.Context(), c.Param("id"), *req.Available)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Menu item updated successfully", item)
}

func (h *MenuHandler) Delete(c *gin.Context) {
	if err := h.menuService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

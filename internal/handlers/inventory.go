// internal/handlers/inventory.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/stocklane/catalog-admin/internal/services"
	"github.com/stocklane/catalog-admin/internal/utils"
)

type InventoryHandler struct {
	inventoryService *services.InventoryService
}

func NewInventoryHandler(inventoryService *services.InventoryService) *InventoryHandler {
	return &InventoryHandler{
		inventoryService: inventoryService,
	}
}

// GET /inventory
func (h *InventoryHandler) List(c *gin.Context) {
	payload, err := h.inventoryService.List(c.Request.Context())
	if err != nil {
		utils.ServerErrorResponse(c)
		return
	}
	c.Data(http.StatusOK, "application/json; charset=utf-8", payload)
}

// GET /inventory/:id
func (h *InventoryHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid ID")
		return
	}

	payload, err := h.inventoryService.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, services.ErrInventoryNotFound) {
			utils.NotFoundResponse(c, "Inventory not found")
			return
		}
		utils.ServerErrorResponse(c)
		return
	}
	c.Data(http.StatusOK, "application/json; charset=utf-8", payload)
}

// POST /inventory (Master only)
func (h *InventoryHandler) Create(c *gin.Context) {
	var req services.InventoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body")
		return
	}
	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.BadRequestResponse(c, validationErrors[0].Message)
		return
	}

	record, err := h.inventoryService.Create(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrProductNotFound):
			utils.BadRequestResponse(c, "Product not found")
		case errors.Is(err, services.ErrInventoryExists):
			utils.BadRequestResponse(c, err.Error())
		default:
			utils.ServerErrorResponse(c)
		}
		return
	}

	utils.CreatedResponse(c, record)
}

// PUT /inventory/:id (Master only)
func (h *InventoryHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid ID")
		return
	}

	var req services.InventoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body")
		return
	}
	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.BadRequestResponse(c, validationErrors[0].Message)
		return
	}

	record, err := h.inventoryService.Update(c.Request.Context(), id, &req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrProductNotFound):
			utils.BadRequestResponse(c, "Product not found")
		case errors.Is(err, services.ErrInventoryExists):
			utils.BadRequestResponse(c, err.Error())
		case errors.Is(err, services.ErrInventoryNotFound):
			utils.NotFoundResponse(c, "Inventory not found")
		default:
			utils.ServerErrorResponse(c)
		}
		return
	}

	utils.SuccessResponse(c, record)
}

// DELETE /inventory/:id (Master only)
func (h *InventoryHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid ID")
		return
	}

	if err := h.inventoryService.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, services.ErrInventoryNotFound) {
			utils.NotFoundResponse(c, "Inventory not found")
			return
		}
		utils.ServerErrorResponse(c)
		return
	}

	utils.SuccessResponse(c, gin.H{"message": "Inventory deleted"})
}

// internal/handlers/product.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/stocklane/catalog-admin/internal/services"
	"github.com/stocklane/catalog-admin/internal/utils"
)

type ProductHandler struct {
	productService *services.ProductService
}

func NewProductHandler(productService *services.ProductService) *ProductHandler {
	return &ProductHandler{
		productService: productService,
	}
}

// GET /products
func (h *ProductHandler) List(c *gin.Context) {
	payload, err := h.productService.List(c.Request.Context())
	if err != nil {
		utils.ServerErrorResponse(c)
		return
	}
	c.Data(http.StatusOK, "application/json; charset=utf-8", payload)
}

// POST /products (Master only)
func (h *ProductHandler) Create(c *gin.Context) {
	var req services.ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body")
		return
	}
	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.BadRequestResponse(c, validationErrors[0].Message)
		return
	}

	product, err := h.productService.Create(c.Request.Context(), &req)
	if err != nil {
		if err.Error() == "Invalid category IDs" {
			utils.BadRequestResponse(c, err.Error())
			return
		}
		utils.ServerErrorResponse(c)
		return
	}

	utils.CreatedResponse(c, product)
}

// PUT /products/:id (Master only)
func (h *ProductHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid ID")
		return
	}

	var req services.ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body")
		return
	}
	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.BadRequestResponse(c, validationErrors[0].Message)
		return
	}

	product, err := h.productService.Update(c.Request.Context(), id, &req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrProductNotFound):
			utils.NotFoundResponse(c, "Product not found")
		case err.Error() == "Invalid category IDs":
			utils.BadRequestResponse(c, err.Error())
		default:
			utils.ServerErrorResponse(c)
		}
		return
	}

	utils.SuccessResponse(c, product)
}

// DELETE /products/:id (Master only)
func (h *ProductHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid ID")
		return
	}

	if err := h.productService.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, services.ErrProductNotFound) {
			utils.NotFoundResponse(c, "Product not found")
			return
		}
		utils.ServerErrorResponse(c)
		return
	}

	utils.SuccessResponse(c, gin.H{"message": "Product deleted"})
}

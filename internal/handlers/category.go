// internal/handlers/category.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/stocklane/catalog-admin/internal/services"
	"github.com/stocklane/catalog-admin/internal/utils"
)

type CategoryHandler struct {
	categoryService *services.CategoryService
}

func NewCategoryHandler(categoryService *services.CategoryService) *CategoryHandler {
	return &CategoryHandler{
		categoryService: categoryService,
	}
}

// GET /categories
func (h *CategoryHandler) List(c *gin.Context) {
	payload, err := h.categoryService.List(c.Request.Context())
	if err != nil {
		utils.ServerErrorResponse(c)
		return
	}
	c.Data(http.StatusOK, "application/json; charset=utf-8", payload)
}

// GET /categories/:id
func (h *CategoryHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid ID")
		return
	}

	payload, err := h.categoryService.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, services.ErrCategoryNotFound) {
			utils.NotFoundResponse(c, "Category not found")
			return
		}
		utils.ServerErrorResponse(c)
		return
	}
	c.Data(http.StatusOK, "application/json; charset=utf-8", payload)
}

// POST /categories (Master only)
func (h *CategoryHandler) Create(c *gin.Context) {
	var req services.CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body")
		return
	}
	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.BadRequestResponse(c, validationErrors[0].Message)
		return
	}

	category, err := h.categoryService.Create(c.Request.Context(), &req)
	if err != nil {
		if err.Error() == "Invalid product IDs" {
			utils.BadRequestResponse(c, err.Error())
			return
		}
		utils.ServerErrorResponse(c)
		return
	}

	utils.CreatedResponse(c, category)
}

// PUT /categories/:id (Master only)
func (h *CategoryHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid ID")
		return
	}

	var req services.CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body")
		return
	}
	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.BadRequestResponse(c, validationErrors[0].Message)
		return
	}

	category, err := h.categoryService.Update(c.Request.Context(), id, &req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrCategoryNotFound):
			utils.NotFoundResponse(c, "Category not found")
		case err.Error() == "Invalid product IDs":
			utils.BadRequestResponse(c, err.Error())
		default:
			utils.ServerErrorResponse(c)
		}
		return
	}

	utils.SuccessResponse(c, category)
}

// DELETE /categories/:id (Master only)
func (h *CategoryHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid ID")
		return
	}

	if err := h.categoryService.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, services.ErrCategoryNotFound) {
			utils.NotFoundResponse(c, "Category not found")
			return
		}
		utils.ServerErrorResponse(c)
		return
	}

	utils.SuccessResponse(c, gin.H{"message": "Category deleted"})
}

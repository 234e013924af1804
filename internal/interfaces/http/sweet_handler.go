package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/sweetshop/sweet-shop-api/internal/application/dto"
	"github.com/sweetshop/sweet-shop-api/internal/application/usecase"
	"github.com/sweetshop/sweet-shop-api/internal/domain"
)

// SweetHandler handles catalog reads (public) and CRUD (admin).
type SweetHandler struct {
	uc *usecase.SweetUseCase
}

// NewSweetHandler builds the handler.
func NewSweetHandler(uc *usecase.SweetUseCase) *SweetHandler {
	return &SweetHandler{uc: uc}
}

// List godoc
// @Summary      List sweets
// @Description  Filters are optional and combine with AND: name substring, exact category, inclusive price bounds.
// @Tags         sweets
// @Produce      json
// @Param        name       query  string  false  "Name substring (case-insensitive)"
// @Param        category   query  string  false  "Exact category"
// @Param        min_price  query  number  false  "Minimum price (inclusive)"
// @Param        max_price  query  number  false  "Maximum price (inclusive)"
// @Success      200  {object}  dto.SweetListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/sweets [get]
func (h *SweetHandler) List(c *fiber.Ctx) error {
	in := dto.SweetFilterRequest{
		Name:     c.Query("name"),
		Category: c.Query("category"),
	}
	if raw := c.Query("min_price"); raw != "" {
		p, err := decimal.NewFromString(raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "min_price must be a number"})
		}
		in.MinPrice = &p
	}
	if raw := c.Query("max_price"); raw != "" {
		p, err := decimal.NewFromString(raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "max_price must be a number"})
		}
		in.MaxPrice = &p
	}
	out, err := h.uc.List(c.Context(), in)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// Categories godoc
// @Summary      List categories currently present
// @Tags         sweets
// @Produce      json
// @Success      200  {object}  dto.CategoryListResponse
// @Router       /api/sweets/categories [get]
func (h *SweetHandler) Categories(c *fiber.Ctx) error {
	out, err := h.uc.Categories(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Get one sweet
// @Tags         sweets
// @Produce      json
// @Param        id  path  string  true  "Sweet ID"
// @Success      200  {object}  dto.SweetResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sweets/{id} [get]
func (h *SweetHandler) GetByID(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id is required"})
	}
	out, err := h.uc.GetByID(c.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "sweet not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Create a sweet
// @Tags         sweets
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateSweetRequest  true  "Sweet data"
// @Success      201  {object}  dto.SweetResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/sweets [post]
func (h *SweetHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateSweetRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid request body"})
	}
	out, err := h.uc.Create(c.Context(), in)
	if err != nil {
		var vErr *domain.ValidationError
		if errors.As(err, &vErr) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "invalid input", Errors: vErr.Violations})
		}
		if errors.Is(err, domain.ErrDuplicate) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: "sweet already exists"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update godoc
// @Summary      Update a sweet's descriptive fields
// @Description  Stock is not editable here; use restock.
// @Tags         sweets
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                  true  "Sweet ID"
// @Param        body  body  dto.UpdateSweetRequest  true  "Fields to change"
// @Success      200  {object}  dto.SweetResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sweets/{id} [put]
func (h *SweetHandler) Update(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id is required"})
	}
	var in dto.UpdateSweetRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid request body"})
	}
	out, err := h.uc.Update(c.Context(), id, in)
	if err != nil {
		var vErr *domain.ValidationError
		if errors.As(err, &vErr) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "invalid input", Errors: vErr.Violations})
		}
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "sweet not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Delete a sweet
// @Tags         sweets
// @Security     Bearer
// @Param        id  path  string  true  "Sweet ID"
// @Success      204  "No Content"
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sweets/{id} [delete]
func (h *SweetHandler) Delete(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id is required"})
	}
	if err := h.uc.Delete(c.Context(), id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "sweet not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

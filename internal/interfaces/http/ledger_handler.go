package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/sweetshop/sweet-shop-api/internal/application/dto"
	"github.com/sweetshop/sweet-shop-api/internal/application/ledger"
	"github.com/sweetshop/sweet-shop-api/internal/domain"
)

// LedgerHandler handles stock mutations: purchase (any authenticated user)
// and restock (admin).
type LedgerHandler struct {
	ledger *ledger.Ledger
}

// NewLedgerHandler builds the handler.
func NewLedgerHandler(l *ledger.Ledger) *LedgerHandler {
	return &LedgerHandler{ledger: l}
}

// Purchase godoc
// @Summary      Purchase a quantity of a sweet
// @Tags         ledger
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string               true  "Sweet ID"
// @Param        body  body  dto.PurchaseRequest  true  "Quantity to buy"
// @Success      201  {object}  dto.PurchaseResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/sweets/{id}/purchase [post]
func (h *LedgerHandler) Purchase(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "authentication required"})
	}
	sweetID := c.Params("id")
	if sweetID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id is required"})
	}
	var in dto.PurchaseRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid request body"})
	}
	out, err := h.ledger.Purchase(c.Context(), userID, sweetID, in.Quantity)
	if err != nil {
		return h.mapError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Restock godoc
// @Summary      Add stock to a sweet
// @Tags         ledger
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string              true  "Sweet ID"
// @Param        body  body  dto.RestockRequest  true  "Quantity to add"
// @Success      200  {object}  dto.RestockResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/sweets/{id}/restock [post]
func (h *LedgerHandler) Restock(c *fiber.Ctx) error {
	sweetID := c.Params("id")
	if sweetID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id is required"})
	}
	var in dto.RestockRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid request body"})
	}
	out, err := h.ledger.Restock(c.Context(), sweetID, in.Quantity)
	if err != nil {
		return h.mapError(c, err)
	}
	return c.JSON(out)
}

// ListPurchases godoc
// @Summary      List the caller's purchases, newest first
// @Tags         ledger
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Page size (max 100)"
// @Param        offset  query  int  false  "Rows to skip"
// @Success      200  {object}  dto.PurchaseListResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/purchases [get]
func (h *LedgerHandler) ListPurchases(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "authentication required"})
	}
	page := dto.PageRequest{
		Limit:  c.QueryInt("limit", 20),
		Offset: c.QueryInt("offset", 0),
	}
	out, err := h.ledger.ListPurchases(c.Context(), userID, page)
	if err != nil {
		return h.mapError(c, err)
	}
	return c.JSON(out)
}

func (h *LedgerHandler) mapError(c *fiber.Ctx, err error) error {
	var vErr *domain.ValidationError
	switch {
	case errors.As(err, &vErr):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "invalid input", Errors: vErr.Violations})
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "sweet not found"})
	case errors.Is(err, domain.ErrInsufficientStock):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: "not enough stock available"})
	case errors.Is(err, domain.ErrStorageUnavailable):
		return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{Code: "STORAGE_UNAVAILABLE", Message: "storage temporarily unavailable, retry later"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}

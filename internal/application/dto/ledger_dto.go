package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// PurchaseRequest body for POST /api/sweets/:id/purchase.
type PurchaseRequest struct {
	Quantity int64 `json:"quantity"`
}

// PurchaseResponse confirmation of a completed purchase. PurchaseID is the
// reference the buyer keeps.
type PurchaseResponse struct {
	PurchaseID string          `json:"purchase_id"`
	SweetID    string          `json:"sweet_id"`
	Quantity   int64           `json:"quantity"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
	Total      decimal.Decimal `json:"total"`
	CreatedAt  time.Time       `json:"created_at"`
}

// PurchaseListResponse purchase history for a user.
type PurchaseListResponse struct {
	Items []PurchaseResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}

// RestockRequest body for POST /api/sweets/:id/restock.
type RestockRequest struct {
	Quantity int64 `json:"quantity"`
}

// RestockResponse reports the stock level after the restock.
type RestockResponse struct {
	SweetID  string `json:"sweet_id"`
	Quantity int64  `json:"quantity"`
}

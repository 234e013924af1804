package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Purchase records a successful stock decrement. ID doubles as the purchase
// reference handed back to the buyer.
type Purchase struct {
	ID        string
	SweetID   string
	UserID    string
	Quantity  int64
	UnitPrice decimal.Decimal
	Total     decimal.Decimal
	CreatedAt time.Time
}

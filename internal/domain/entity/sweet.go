package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Known categories. Stored as plain text so new ones can be added without a
// migration; the form layer offers these as the default choices.
var Categories = []string{"Chocolate", "Candy", "Pastry", "Ice Cream", "Cake", "Cookie"}

// Sweet is a catalog product. Quantity is the only field mutated by the
// inventory ledger (purchase/restock); admin edits never touch it directly.
type Sweet struct {
	ID          string
	Name        string
	Category    string
	Price       decimal.Decimal // sale price, > 0
	Quantity    int64           // on-hand stock, never negative
	Description string
	ImageURL    string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

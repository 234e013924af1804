package dto

import (
	"net/url"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sweetshop/sweet-shop-api/internal/domain"
)

// Field length bounds for sweets.
const (
	maxNameLen        = 100
	maxDescriptionLen = 500
)

// CreateSweetRequest input to create a sweet. Quantity is the initial stock;
// after creation only purchase/restock move it.
type CreateSweetRequest struct {
	Name        string          `json:"name"`
	Category    string          `json:"category"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int64           `json:"quantity"`
	Description string          `json:"description"`
	ImageURL    string          `json:"image_url"`
}

// Validate checks the declarative field constraints and returns every
// violation found, not just the first.
func (r CreateSweetRequest) Validate() []domain.FieldViolation {
	var out []domain.FieldViolation
	if r.Name == "" {
		out = append(out, domain.FieldViolation{Field: "name", Message: "name is required"})
	} else if len(r.Name) > maxNameLen {
		out = append(out, domain.FieldViolation{Field: "name", Message: "name must be at most 100 characters"})
	}
	if r.Category == "" {
		out = append(out, domain.FieldViolation{Field: "category", Message: "category is required"})
	}
	if !r.Price.IsPositive() {
		out = append(out, domain.FieldViolation{Field: "price", Message: "price must be greater than 0"})
	}
	if r.Quantity < 0 {
		out = append(out, domain.FieldViolation{Field: "quantity", Message: "quantity cannot be negative"})
	}
	if len(r.Description) > maxDescriptionLen {
		out = append(out, domain.FieldViolation{Field: "description", Message: "description must be at most 500 characters"})
	}
	if r.ImageURL != "" && !isValidURL(r.ImageURL) {
		out = append(out, domain.FieldViolation{Field: "image_url", Message: "image_url must be a valid http(s) URL"})
	}
	return out
}

// UpdateSweetRequest partial update; nil fields are left unchanged.
// Quantity is deliberately absent: stock moves only through the ledger.
type UpdateSweetRequest struct {
	Name        *string          `json:"name"`
	Category    *string          `json:"category"`
	Price       *decimal.Decimal `json:"price"`
	Description *string          `json:"description"`
	ImageURL    *string          `json:"image_url"`
}

// Validate checks the constraints of the fields that are present.
func (r UpdateSweetRequest) Validate() []domain.FieldViolation {
	var out []domain.FieldViolation
	if r.Name != nil {
		if *r.Name == "" {
			out = append(out, domain.FieldViolation{Field: "name", Message: "name cannot be empty"})
		} else if len(*r.Name) > maxNameLen {
			out = append(out, domain.FieldViolation{Field: "name", Message: "name must be at most 100 characters"})
		}
	}
	if r.Category != nil && *r.Category == "" {
		out = append(out, domain.FieldViolation{Field: "category", Message: "category cannot be empty"})
	}
	if r.Price != nil && !r.Price.IsPositive() {
		out = append(out, domain.FieldViolation{Field: "price", Message: "price must be greater than 0"})
	}
	if r.Description != nil && len(*r.Description) > maxDescriptionLen {
		out = append(out, domain.FieldViolation{Field: "description", Message: "description must be at most 500 characters"})
	}
	if r.ImageURL != nil && *r.ImageURL != "" && !isValidURL(*r.ImageURL) {
		out = append(out, domain.FieldViolation{Field: "image_url", Message: "image_url must be a valid http(s) URL"})
	}
	return out
}

func isValidURL(s string) bool {
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// SweetFilterRequest search filters; all are optional and combine with AND.
type SweetFilterRequest struct {
	Name     string           `query:"name"`
	Category string           `query:"category"`
	MinPrice *decimal.Decimal `query:"min_price"`
	MaxPrice *decimal.Decimal `query:"max_price"`
}

// SweetResponse output for a sweet.
type SweetResponse struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Category    string          `json:"category"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int64           `json:"quantity"`
	Description string          `json:"description,omitempty"`
	ImageURL    string          `json:"image_url,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// SweetListResponse catalog listing.
type SweetListResponse struct {
	Items []SweetResponse `json:"items"`
}

// CategoryListResponse distinct categories currently present.
type CategoryListResponse struct {
	Categories []string `json:"categories"`
}

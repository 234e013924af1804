package dto

import "github.com/sweetshop/sweet-shop-api/internal/domain"

// PageRequest pagination for listings.
type PageRequest struct {
	Limit  int `query:"limit"`
	Offset int `query:"offset"`
}

// DefaultPage applies defaults when Limit/Offset are zero.
func (p *PageRequest) DefaultPage() {
	if p.Limit <= 0 {
		p.Limit = 20
	}
	if p.Limit > 100 {
		p.Limit = 100
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
}

// PageResponse page metadata in responses.
type PageResponse struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}

// ErrorResponse HTTP error body. Errors carries field-level violations on
// validation failures.
type ErrorResponse struct {
	Code    string                  `json:"code"`
	Message string                  `json:"message"`
	Errors  []domain.FieldViolation `json:"errors,omitempty"`
}

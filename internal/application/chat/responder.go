package chat

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/sweetshop/sweet-shop-api/internal/domain"
	"github.com/sweetshop/sweet-shop-api/internal/domain/entity"
	"github.com/sweetshop/sweet-shop-api/internal/domain/repository"
)

// CatalogReader is the read-only slice of the sweet repository the responder
// needs; replies always reflect the live catalog.
type CatalogReader interface {
	List(ctx context.Context, filter repository.SweetFilter) ([]*entity.Sweet, error)
}

// Responder maps a free-text message to one reply through an ordered rule
// list; the first matching rule wins. It keeps no state between calls and
// sits outside the ledger's transactional boundary.
type Responder struct {
	catalog CatalogReader
	rules   []rule
}

type rule struct {
	matches func(msg string) bool
	reply   func(msg string, sweets []*entity.Sweet) string
}

// NewResponder builds the responder with the fixed rule priority:
// greeting, festival, dietary, price, recommendation, purchase, listing.
func NewResponder(catalog CatalogReader) *Responder {
	r := &Responder{catalog: catalog}
	r.rules = []rule{
		{
			matches: containsAny("hello", "hi"),
			reply: func(string, []*entity.Sweet) string {
				return "Hello! Welcome to our sweet shop. What can I help you with today?"
			},
		},
		{
			matches: containsAny("diwali", "festival"),
			reply:   festivalReply,
		},
		{
			matches: containsAny("sugar-free", "diabetic"),
			reply: func(string, []*entity.Sweet) string {
				return "We have sugar-free options like our fresh fruits in pastries. Would you like recommendations?"
			},
		},
		{
			matches: containsAny("price", "cost"),
			reply:   priceReply,
		},
		{
			matches: containsAny("recommend", "suggest"),
			reply:   recommendReply,
		},
		{
			matches: containsAny("buy", "purchase", "order"),
			reply:   purchaseReply,
		},
		{
			matches: containsAny("list", "available", "menu"),
			reply:   listingReply,
		},
	}
	return r
}

// Reply answers one message. Only the catalog read can fail; every message
// gets a reply (the last rule is an implicit fallback).
func (r *Responder) Reply(ctx context.Context, message string) (string, error) {
	msg := strings.ToLower(strings.TrimSpace(message))
	if msg == "" {
		return "", domain.NewValidationError(domain.FieldViolation{
			Field: "message", Message: "message is required",
		})
	}
	sweets, err := r.catalog.List(ctx, repository.SweetFilter{})
	if err != nil {
		return "", err
	}
	for _, rule := range r.rules {
		if rule.matches(msg) {
			return rule.reply(msg, sweets), nil
		}
	}
	return "I'm here to help with sweet recommendations and purchases. " +
		"Ask me about our sweets, prices, or recommendations for occasions!", nil
}

func containsAny(keywords ...string) func(string) bool {
	return func(msg string) bool {
		for _, kw := range keywords {
			if strings.Contains(msg, kw) {
				return true
			}
		}
		return false
	}
}

// findNamed returns the first sweet whose name appears in the message.
func findNamed(msg string, sweets []*entity.Sweet) *entity.Sweet {
	for _, s := range sweets {
		if strings.Contains(msg, strings.ToLower(s.Name)) {
			return s
		}
	}
	return nil
}

func money(d decimal.Decimal) string {
	return "$" + d.StringFixed(2)
}

func festivalReply(_ string, sweets []*entity.Sweet) string {
	names := make([]string, 0, 3)
	for _, s := range sweets {
		if s.Category == "Cake" || s.Category == "Chocolate" || s.Category == "Cookie" {
			names = append(names, s.Name)
			if len(names) == 3 {
				break
			}
		}
	}
	if len(names) == 0 {
		return "For festivals I recommend our cakes, chocolates and cookies. Which one interests you?"
	}
	return "For festivals like Diwali, I recommend our festive sweets: " +
		strings.Join(names, ", ") + ". Which one interests you?"
}

func priceReply(msg string, sweets []*entity.Sweet) string {
	if s := findNamed(msg, sweets); s != nil {
		return s.Name + " costs " + money(s.Price) + "."
	}
	if len(sweets) == 0 {
		return "Our catalog is empty right now, please check back soon!"
	}
	min, max := sweets[0].Price, sweets[0].Price
	for _, s := range sweets[1:] {
		if s.Price.LessThan(min) {
			min = s.Price
		}
		if s.Price.GreaterThan(max) {
			max = s.Price
		}
	}
	return "Our sweets range from " + money(min) + " to " + money(max) +
		". Which sweet are you interested in?"
}

func recommendReply(msg string, sweets []*entity.Sweet) string {
	switch {
	case strings.Contains(msg, "birthday"):
		if s := firstInCategory(sweets, "Cake"); s != nil {
			return "For birthdays, our " + s.Name + " would be perfect!"
		}
		return "For birthdays, our cakes would be perfect!"
	case strings.Contains(msg, "wedding"):
		return "For weddings, try our elegant pastries or cakes."
	}
	if len(sweets) > 0 {
		return "I recommend trying our " + sweets[0].Name + ". What occasion is this for?"
	}
	return "Tell me the occasion and I'll recommend something sweet!"
}

func purchaseReply(msg string, sweets []*entity.Sweet) string {
	if s := findNamed(msg, sweets); s != nil {
		return "Great choice! " + s.Name + " is " + money(s.Price) +
			". How many would you like? Please use our app to complete the purchase."
	}
	return "I'd be happy to help you purchase! Which sweet would you like?"
}

func listingReply(_ string, sweets []*entity.Sweet) string {
	if len(sweets) == 0 {
		return "Our catalog is empty right now, please check back soon!"
	}
	parts := make([]string, 0, len(sweets))
	for _, s := range sweets {
		parts = append(parts, s.Name+" ("+money(s.Price)+")")
	}
	return "We have: " + strings.Join(parts, ", ") + ". What interests you?"
}

func firstInCategory(sweets []*entity.Sweet, category string) *entity.Sweet {
	for _, s := range sweets {
		if s.Category == category {
			return s
		}
	}
	return nil
}

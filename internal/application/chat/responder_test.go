package chat_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sweetshop/sweet-shop-api/internal/application/chat"
	"github.com/sweetshop/sweet-shop-api/internal/domain"
	"github.com/sweetshop/sweet-shop-api/internal/domain/entity"
	"github.com/sweetshop/sweet-shop-api/internal/domain/repository"
)

type staticCatalog struct {
	sweets []*entity.Sweet
	err    error
}

func (c staticCatalog) List(context.Context, repository.SweetFilter) ([]*entity.Sweet, error) {
	return c.sweets, c.err
}

func fixtureSweets() []*entity.Sweet {
	mk := func(name, category, price string) *entity.Sweet {
		return &entity.Sweet{Name: name, Category: category, Price: decimal.RequireFromString(price)}
	}
	return []*entity.Sweet{
		mk("Chocolate Truffle", "Chocolate", "5.99"),
		mk("Strawberry Lollipop", "Candy", "2.49"),
		mk("Red Velvet Cake", "Cake", "15.99"),
		mk("Oatmeal Cookie", "Cookie", "1.99"),
		mk("Croissant", "Pastry", "2.99"),
	}
}

func newResponder() *chat.Responder {
	return chat.NewResponder(staticCatalog{sweets: fixtureSweets()})
}

func reply(t *testing.T, r *chat.Responder, msg string) string {
	t.Helper()
	out, err := r.Reply(context.Background(), msg)
	require.NoError(t, err)
	return out
}

func TestReply_Greeting(t *testing.T) {
	r := newResponder()
	assert.Contains(t, reply(t, r, "Hello there"), "Welcome to our sweet shop")
	assert.Contains(t, reply(t, r, "hi"), "Welcome to our sweet shop")
}

func TestReply_Festival(t *testing.T) {
	r := newResponder()
	out := reply(t, r, "what do you have for diwali?")
	assert.Contains(t, out, "festive sweets")
	assert.Contains(t, out, "Chocolate Truffle")
	assert.Contains(t, out, "Red Velvet Cake")
	assert.Contains(t, out, "Oatmeal Cookie")
}

func TestReply_Dietary(t *testing.T) {
	r := newResponder()
	assert.Contains(t, reply(t, r, "anything sugar-free?"), "sugar-free options")
	assert.Contains(t, reply(t, r, "I am diabetic"), "sugar-free options")
}

func TestReply_PriceForNamedSweet(t *testing.T) {
	r := newResponder()
	out := reply(t, r, "what is the price of the chocolate truffle?")
	assert.Equal(t, "Chocolate Truffle costs $5.99.", out)
}

func TestReply_PriceRangeWhenNoSweetNamed(t *testing.T) {
	r := newResponder()
	out := reply(t, r, "how much do your sweets cost?")
	assert.Contains(t, out, "$1.99")
	assert.Contains(t, out, "$15.99")
}

func TestReply_RecommendBirthday(t *testing.T) {
	r := newResponder()
	out := reply(t, r, "can you recommend something for a birthday?")
	assert.Contains(t, out, "Red Velvet Cake")
}

func TestReply_RecommendWedding(t *testing.T) {
	r := newResponder()
	assert.Contains(t, reply(t, r, "suggest something for a wedding"), "weddings")
}

func TestReply_RecommendGeneric(t *testing.T) {
	r := newResponder()
	out := reply(t, r, "recommend me something")
	assert.Contains(t, out, "Chocolate Truffle")
}

func TestReply_PurchaseIntent(t *testing.T) {
	r := newResponder()
	out := reply(t, r, "I want to buy a croissant")
	assert.Contains(t, out, "Croissant")
	assert.Contains(t, out, "$2.99")

	assert.Contains(t, reply(t, r, "I want to order"), "Which sweet would you like?")
}

func TestReply_Listing(t *testing.T) {
	r := newResponder()
	out := reply(t, r, "show me the menu")
	assert.Contains(t, out, "We have:")
	assert.Contains(t, out, "Croissant ($2.99)")
	assert.Contains(t, out, "Red Velvet Cake ($15.99)")
}

func TestReply_Fallback(t *testing.T) {
	r := newResponder()
	out := reply(t, r, "what's the weather like?")
	assert.Contains(t, out, "I'm here to help")
}

// Earlier rules win when a message matches several. "hi, how much does the
// red velvet cake cost?" matches greeting and price; greeting is first.
func TestReply_RulePriority(t *testing.T) {
	r := newResponder()
	out := reply(t, r, "hi, how much does the red velvet cake cost?")
	assert.Contains(t, out, "Welcome to our sweet shop")

	// Price outranks purchase intent.
	out = reply(t, r, "what does it cost to buy an oatmeal cookie?")
	assert.Equal(t, "Oatmeal Cookie costs $1.99.", out)
}

func TestReply_EmptyMessage(t *testing.T) {
	r := newResponder()
	for _, msg := range []string{"", "   ", "\t\n"} {
		_, err := r.Reply(context.Background(), msg)
		assert.ErrorIs(t, err, domain.ErrInvalidInput, "message %q must be rejected", msg)
	}
}

func TestReply_EmptyCatalog(t *testing.T) {
	r := chat.NewResponder(staticCatalog{})
	assert.Contains(t, reply(t, r, "menu please"), "catalog is empty")
	assert.Contains(t, reply(t, r, "price?"), "catalog is empty")
}

func TestReply_CatalogError(t *testing.T) {
	boom := errors.New("db down")
	r := chat.NewResponder(staticCatalog{err: boom})
	_, err := r.Reply(context.Background(), "hello")
	assert.ErrorIs(t, err, boom)
}

package redis

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/sweetshop/sweet-shop-api/internal/domain/repository"
)

func dec(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func TestFilterHash_Deterministic(t *testing.T) {
	f := repository.SweetFilter{Name: "truffle", Category: "Chocolate", MinPrice: dec("1"), MaxPrice: dec("10")}
	assert.Equal(t, filterHash(f), filterHash(f))
	assert.Equal(t, filterHash(f), filterHash(repository.SweetFilter{
		Name: "truffle", Category: "Chocolate", MinPrice: dec("1"), MaxPrice: dec("10"),
	}))
}

// Field content must not bleed across field boundaries: a separator character
// inside a name may not produce the same key as a name+category split.
func TestFilterHash_FieldBoundaries(t *testing.T) {
	pairs := [][2]repository.SweetFilter{
		{{Name: "a|"}, {Name: "a", Category: "|"}},
		{{Name: "a;"}, {Name: "a", Category: ";"}},
		{{Name: "ab"}, {Name: "a", Category: "b"}},
		{{Category: "1"}, {MinPrice: dec("1")}},
		{{MinPrice: dec("1")}, {MaxPrice: dec("1")}},
		{{}, {MinPrice: dec("0")}},
	}
	for _, p := range pairs {
		assert.NotEqual(t, filterHash(p[0]), filterHash(p[1]), "filters %+v and %+v must key differently", p[0], p[1])
	}
}

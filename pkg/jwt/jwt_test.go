package jwt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sweetshop/sweet-shop-api/pkg/jwt"
)

func TestGenerateAndParse(t *testing.T) {
	token, err := jwt.Generate("secret", "user-1", "admin", "sweet-shop-api", 15)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	userID, role, err := jwt.Parse("secret", token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", userID)
	assert.Equal(t, "admin", role)
}

func TestParse_WrongSecret(t *testing.T) {
	token, err := jwt.Generate("secret", "user-1", "customer", "sweet-shop-api", 15)
	require.NoError(t, err)

	_, _, err = jwt.Parse("other-secret", token)
	assert.Error(t, err)
}

func TestParse_ExpiredToken(t *testing.T) {
	token, err := jwt.Generate("secret", "user-1", "customer", "sweet-shop-api", -1)
	require.NoError(t, err)

	_, _, err = jwt.Parse("secret", token)
	assert.Error(t, err)
}

func TestParse_Garbage(t *testing.T) {
	_, _, err := jwt.Parse("secret", "not.a.token")
	assert.Error(t, err)
}

func TestEmptySecret(t *testing.T) {
	_, err := jwt.Generate("", "user-1", "admin", "sweet-shop-api", 15)
	assert.Error(t, err)

	_, _, err = jwt.Parse("", "whatever")
	assert.Error(t, err)
}

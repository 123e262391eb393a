package jwt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func TestGenerateAndValidate(t *testing.T) {
	token, err := GenerateAccessToken(42, UserTypeEmployee, "Vikram Singh", 1, testSecret, 60)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ValidateAccessToken(token, testSecret)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, UserTypeEmployee, claims.UserType)
	assert.Equal(t, "Vikram Singh", claims.Name)
	assert.Equal(t, uint(1), claims.BranchID)
	assert.Equal(t, "bankdesk", claims.Issuer)
	assert.Equal(t, "employee:42", claims.Subject)
}

func TestCustomerTokenHasNoBranch(t *testing.T) {
	token, err := GenerateAccessToken(7, UserTypeCustomer, "Aarav Sharma", 0, testSecret, 60)
	require.NoError(t, err)

	claims, err := ValidateAccessToken(token, testSecret)
	require.NoError(t, err)
	assert.Equal(t, UserTypeCustomer, claims.UserType)
	assert.Zero(t, claims.BranchID)
}

func TestValidateWrongSecret(t *testing.T) {
	token, err := GenerateAccessToken(1, UserTypeCustomer, "x", 0, testSecret, 60)
	require.NoError(t, err)

	_, err = ValidateAccessToken(token, "other-secret")
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestValidateExpiredToken(t *testing.T) {
	token, err := GenerateAccessToken(1, UserTypeCustomer, "x", 0, testSecret, -1)
	require.NoError(t, err)

	_, err = ValidateAccessToken(token, testSecret)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestValidateGarbage(t *testing.T) {
	_, err := ValidateAccessToken("not.a.token", testSecret)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

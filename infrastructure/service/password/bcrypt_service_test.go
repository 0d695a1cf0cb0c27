package password

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"golang.org/x/crypto/bcrypt"
)

func TestBcryptPasswordService_HashAndVerify(t *testing.T) {
	service := NewBcryptPasswordService(bcrypt.MinCost)

	hash, err := service.HashPassword("hunter22")
	require.NoError(t, err)
	assert.NotEqual(t, "hunter22", hash)

	valid, err := service.VerifyPassword("hunter22", hash)
	require.NoError(t, err)
	assert.True(t, valid)

	valid, err = service.VerifyPassword("wrong", hash)
	require.NoError(t, err)
	assert.False(t, valid)
}

func TestBcryptPasswordService_EmptyInputs(t *testing.T) {
	service := NewBcryptPasswordService(bcrypt.MinCost)

	_, err := service.HashPassword("")
	assert.Error(t, err)

	_, err = service.VerifyPassword("", "some-hash")
	assert.Error(t, err)

	_, err = service.VerifyPassword("hunter22", "")
	assert.Error(t, err)
}

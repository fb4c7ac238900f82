package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCipherRoundTrip(t *testing.T) {
	c, err := NewCipher(strings.Repeat("k", 32))
	require.NoError(t, err)

	encrypted, err := c.Encrypt([]byte("JBSWY3DPEHPK3PXP"))
	require.NoError(t, err)
	assert.NotContains(t, encrypted, "JBSWY3DPEHPK3PXP")

	plain, err := c.Decrypt(encrypted)
	require.NoError(t, err)
	assert.Equal(t, "JBSWY3DPEHPK3PXP", string(plain))
}

func TestCipherWrongKey(t *testing.T) {
	c1, err := NewCipher(strings.Repeat("a", 32))
	require.NoError(t, err)
	c2, err := NewCipher(strings.Repeat("b", 32))
	require.NoError(t, err)

	encrypted, err := c1.Encrypt([]byte("secret"))
	require.NoError(t, err)

	_, err = c2.Decrypt(encrypted)
	assert.Error(t, err)
}

func TestCipherKeyLength(t *testing.T) {
	_, err := NewCipher("short")
	assert.Error(t, err)
}

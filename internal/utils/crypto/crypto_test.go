package crypto

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncryptDecryptRoundTrip(t *testing.T) {
	secret := "test-secret"
	plaintext := "sk-very-secret-api-key-123456"

	encrypted, err := EncryptString(secret, plaintext)
	require.NoError(t, err)
	assert.NotEqual(t, plaintext, encrypted)

	decrypted, err := DecryptString(secret, encrypted)
	require.NoError(t, err)
	assert.Equal(t, plaintext, decrypted)
}

func TestEncryptProducesDistinctCiphertexts(t *testing.T) {
	secret := "test-secret"
	a, err := EncryptString(secret, "same input")
	require.NoError(t, err)
	b, err := EncryptString(secret, "same input")
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestDecryptWithWrongSecretFails(t *testing.T) {
	encrypted, err := EncryptString("right-secret", "payload")
	require.NoError(t, err)

	_, err = DecryptString("wrong-secret", encrypted)
	assert.Error(t, err)
}

func TestDecryptGarbageFails(t *testing.T) {
	_, err := DecryptString("secret", "not base64 at all!!!")
	assert.Error(t, err)
}

func TestMaskKey(t *testing.T) {
	tests := []struct {
		name string
		key  string
		want string
	}{
		{"normal key", "sk-abcdef1234", "****1234"},
		{"short key", "abc", "****"},
		{"empty", "", "****"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MaskKey(tt.key))
		})
	}
}

package crypto

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundTrip(t *testing.T) {
	for _, key := range []string{
		strings.Repeat("ab", 32),
		"c2hvcnQgcGFzc3BocmFzZQ==",
		"not base64 at all!",
	} {
		svc, err := New(key)
		require.NoError(t, err)
		require.True(t, svc.Configured())

		sealed, err := svc.EncryptString("9988")
		require.NoError(t, err)
		assert.NotEqual(t, []byte("9988"), sealed)

		plain, err := svc.DecryptString(sealed)
		require.NoError(t, err)
		assert.Equal(t, "9988", plain)
	}
}

func TestEncryptUsesFreshNonce(t *testing.T) {
	svc, err := New("passphrase")
	require.NoError(t, err)

	a, err := svc.EncryptString("1950")
	require.NoError(t, err)
	b, err := svc.EncryptString("1950")
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestWithoutKeyPassesThrough(t *testing.T) {
	svc, err := New("")
	require.NoError(t, err)
	assert.False(t, svc.Configured())

	sealed, err := svc.EncryptString("9988")
	require.NoError(t, err)
	assert.Equal(t, []byte("9988"), sealed)

	empty, err := svc.EncryptString("")
	require.NoError(t, err)
	assert.Nil(t, empty)
}

func TestDecryptWithoutKeyRejectsSealedValues(t *testing.T) {
	keyed, err := New("passphrase")
	require.NoError(t, err)
	sealed, err := keyed.EncryptString("9988")
	require.NoError(t, err)

	plain, err := New("")
	require.NoError(t, err)
	_, err = plain.DecryptString(sealed)
	assert.ErrorIs(t, err, ErrKeyRequired)

	got, err := plain.DecryptString([]byte("9988"))
	require.NoError(t, err)
	assert.Equal(t, "9988", got)
}

func TestDecryptRejectsTamperedData(t *testing.T) {
	svc, err := New("passphrase")
	require.NoError(t, err)

	_, err = svc.Decrypt([]byte{1, 2, 3})
	assert.ErrorIs(t, err, ErrCiphertextTooShort)

	sealed, err := svc.EncryptString("9988")
	require.NoError(t, err)
	sealed[len(sealed)-1] ^= 0xff
	_, err = svc.Decrypt(sealed)
	assert.Error(t, err)
}

func TestDifferentKeysDoNotDecrypt(t *testing.T) {
	a, err := New("first key")
	require.NoError(t, err)
	b, err := New("second key")
	require.NoError(t, err)

	sealed, err := a.EncryptString("1950")
	require.NoError(t, err)
	_, err = b.DecryptString(sealed)
	assert.Error(t, err)
}

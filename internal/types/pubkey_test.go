package types

import (
	"testing"

	"github.com/mr-tron/base58"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPubkeyBase58(t *testing.T) {
	var p Pubkey
	for i := range p {
		p[i] = byte(i * 7)
	}

	parsed, err := TryPubkeyFromBase58(p.String())
	require.NoError(t, err)
	assert.Equal(t, p, parsed)
	assert.False(t, parsed.IsZero())
	assert.True(t, Pubkey{}.IsZero())
}

func TestTryPubkeyFromBase58_Invalid(t *testing.T) {
	t.Run("bad alphabet", func(t *testing.T) {
		_, err := TryPubkeyFromBase58("0OIl")
		assert.Error(t, err)
	})

	t.Run("wrong length", func(t *testing.T) {
		_, err := TryPubkeyFromBase58(base58.Encode([]byte{1, 2, 3}))
		assert.Error(t, err)
	})
}

func TestPubkeyFromBase58_Panics(t *testing.T) {
	assert.Panics(t, func() {
		PubkeyFromBase58("not-a-key")
	})
	assert.NotPanics(t, func() {
		PubkeyFromBase58("11111111111111111111111111111111")
	})
}

package pipeline

import (
	"math/rand"
	"testing"

	"gov-ix-sol/internal/codec"
	"gov-ix-sol/internal/logic/adapter"
	"gov-ix-sol/internal/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func filled(b byte) types.Pubkey {
	var p types.Pubkey
	for i := range p {
		p[i] = b
	}
	return p
}

// 每次调用 Data() 返回不同内容，用来模拟 schema 与原生值不一致
type unstableNative struct {
	adapter.Instruction
	calls int
}

func (u *unstableNative) Data() []byte {
	u.calls++
	return []byte{byte(u.calls)}
}

func TestEncode_Scenario(t *testing.T) {
	ix := &adapter.Instruction{
		Program:  filled(0x01),
		Accounts: []adapter.Meta{{Pubkey: filled(0x02), IsSigner: true, IsWritable: false}},
		Payload:  []byte{0xAA, 0xBB},
	}

	out, err := Encode(ix)
	require.NoError(t, err)
	assert.Len(t, out.Binary, 76)
	assert.Equal(t, codec.ToText(out.Binary), out.Text)

	decoded, err := Decode(out.Text)
	require.NoError(t, err)
	assert.True(t, adapter.Equal(ix, decoded))

	rec, err := DecodeRecord(out.Text)
	require.NoError(t, err)
	assert.True(t, out.Record.Equal(rec))
}

func TestEncode_Empty(t *testing.T) {
	ix := &adapter.Instruction{Program: filled(0x05)}

	out, err := Encode(ix)
	require.NoError(t, err)
	assert.Len(t, out.Binary, 40)
	assert.NoError(t, Verify(out.Text, ix))
}

func TestEncode_RandomRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(99))
	for i := 0; i < 50; i++ {
		ix := &adapter.Instruction{}
		rng.Read(ix.Program[:])
		for j := rng.Intn(10); j > 0; j-- {
			var p types.Pubkey
			rng.Read(p[:])
			ix.Accounts = append(ix.Accounts, adapter.Meta{Pubkey: p, IsSigner: rng.Intn(2) == 0, IsWritable: rng.Intn(2) == 0})
		}
		ix.Payload = make([]byte, rng.Intn(200))
		rng.Read(ix.Payload)

		out, err := Encode(ix)
		require.NoError(t, err)

		back, err := Decode(out.Text)
		require.NoError(t, err)
		require.True(t, adapter.Equal(ix, back), "iteration %d", i)
	}
}

func TestEncode_RoundTripMismatch(t *testing.T) {
	n := &unstableNative{Instruction: adapter.Instruction{Program: filled(0x03)}}

	out, err := Encode(n)
	assert.Nil(t, out)
	assert.ErrorIs(t, err, ErrRoundTripMismatch)
}

func TestVerify(t *testing.T) {
	ix := &adapter.Instruction{
		Program:  filled(0x01),
		Accounts: []adapter.Meta{{Pubkey: filled(0x02), IsWritable: true}},
		Payload:  []byte{1},
	}
	out, err := Encode(ix)
	require.NoError(t, err)

	t.Run("matching", func(t *testing.T) {
		assert.NoError(t, Verify(out.Text, ix))
	})

	t.Run("different expectation", func(t *testing.T) {
		other := adapter.ToNative(out.Record)
		other.Accounts[0].IsWritable = false
		assert.ErrorIs(t, Verify(out.Text, other), ErrRoundTripMismatch)
	})

	t.Run("corrupted text", func(t *testing.T) {
		err := Verify(out.Text+"=", ix)
		assert.ErrorIs(t, err, ErrRoundTripMismatch)
		assert.ErrorIs(t, err, codec.ErrInvalidEncoding)
	})
}

func TestDecode_Errors(t *testing.T) {
	ix := &adapter.Instruction{Program: filled(0x01), Payload: []byte{1, 2, 3}}
	out, err := Encode(ix)
	require.NoError(t, err)

	_, err = Decode(codec.ToText(out.Binary[:len(out.Binary)-1]))
	assert.ErrorIs(t, err, codec.ErrTruncatedInput)

	_, err = Decode(codec.ToText(append(append([]byte{}, out.Binary...), 0)))
	assert.ErrorIs(t, err, codec.ErrTrailingBytes)

	_, err = Decode("not base64!")
	assert.ErrorIs(t, err, codec.ErrInvalidEncoding)
}

package codec

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestText_RoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for n := 0; n < 64; n++ {
		data := make([]byte, n)
		rng.Read(data)

		text := ToText(data)
		assert.NotContains(t, text, "=")
		assert.NotContains(t, text, "\n")

		got, err := FromText(text)
		require.NoError(t, err)
		assert.Equal(t, data, got)
	}
}

func TestText_Empty(t *testing.T) {
	assert.Equal(t, "", ToText(nil))
	got, err := FromText("")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestText_KnownVector(t *testing.T) {
	assert.Equal(t, "qrs", ToText([]byte{0xAA, 0xBB}))
	assert.Equal(t, "AQID", ToText([]byte{1, 2, 3}))
	assert.Equal(t, "AQ", ToText([]byte{1}))
}

func TestFromText_Invalid(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"padding char", "AQ=="},
		{"url alphabet", "-_-_"},
		{"whitespace", "AQ ID"},
		{"line break", "AQID\nAQID"},
		{"carriage return", "AQID\r"},
		{"impossible length", "AQIDB"},
		{"non canonical trailing bits", "AR"},
		{"non ascii", strings.Repeat("é", 2)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FromText(tt.in)
			assert.ErrorIs(t, err, ErrInvalidEncoding)
		})
	}
}

package main

import (
	"bytes"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gov-ix-sol/internal/config"
	"gov-ix-sol/internal/consts"
	"gov-ix-sol/internal/logic/pipeline"
	"gov-ix-sol/internal/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func randomKey(rng *rand.Rand) types.Pubkey {
	var p types.Pubkey
	rng.Read(p[:])
	return p
}

func encodedText(t *testing.T, output string) string {
	line := strings.TrimSpace(output)
	require.True(t, strings.HasPrefix(line, "Encoded ix: "), "unexpected output %q", output)
	return strings.TrimPrefix(line, "Encoded ix: ")
}

func TestRun_UpgradeThenDecode(t *testing.T) {
	rng := rand.New(rand.NewSource(21))
	program, buffer, authority := randomKey(rng), randomKey(rng), randomKey(rng)

	var out bytes.Buffer
	err := run(config.Default(), &out, []string{"upgrade",
		"-program", program.String(),
		"-buffer", buffer.String(),
		"-authority", authority.String(),
	})
	require.NoError(t, err)

	text := encodedText(t, out.String())
	ix, err := pipeline.Decode(text)
	require.NoError(t, err)
	assert.Equal(t, consts.BPFLoaderUpgradeable, ix.Program)
	require.Len(t, ix.Accounts, 7)
	assert.Equal(t, authority, ix.Accounts[3].Pubkey) // spill 默认等于 authority
	assert.Equal(t, authority, ix.Accounts[6].Pubkey)

	var printed bytes.Buffer
	require.NoError(t, run(config.Default(), &printed, []string{"decode", text}))
	assert.Contains(t, printed.String(), "program: "+consts.BPFLoaderUpgradeableStr)
	assert.Contains(t, printed.String(), "accounts: 7")
	assert.Contains(t, printed.String(), "data: 03000000")
}

func TestRun_SetAuthority(t *testing.T) {
	rng := rand.New(rand.NewSource(22))
	program, current := randomKey(rng), randomKey(rng)

	var out bytes.Buffer
	require.NoError(t, run(config.Default(), &out, []string{"set-authority",
		"-program", program.String(),
		"-current", current.String(),
	}))

	ix, err := pipeline.Decode(encodedText(t, out.String()))
	require.NoError(t, err)
	assert.Len(t, ix.Accounts, 2)
	assert.Equal(t, []byte{4, 0, 0, 0}, ix.Payload)
}

func TestRun_Manifest(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ix.yaml")
	doc := "program_id: " + consts.BPFLoaderUpgradeableStr + "\n" +
		"accounts:\n  - pubkey: " + consts.SysvarRentStr + "\n    writable: true\n" +
		"data_hex: \"aabb\"\n"
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	var out bytes.Buffer
	require.NoError(t, run(config.Default(), &out, []string{"manifest", "-file", path}))

	ix, err := pipeline.Decode(encodedText(t, out.String()))
	require.NoError(t, err)
	assert.Equal(t, []byte{0xAA, 0xBB}, ix.Payload)
	assert.True(t, ix.Accounts[0].IsWritable)
}

func TestRun_UsageErrors(t *testing.T) {
	tests := [][]string{
		{"bogus"},
		{"upgrade", "-program", consts.SysvarRentStr},
		{"set-authority", "-program", "nope", "-current", consts.SysvarRentStr},
		{"manifest"},
		{"decode"},
	}
	for _, args := range tests {
		t.Run(strings.Join(args, " "), func(t *testing.T) {
			var out bytes.Buffer
			err := run(config.Default(), &out, args)
			assert.ErrorIs(t, err, errUsage)
			assert.Empty(t, out.String())
		})
	}
}

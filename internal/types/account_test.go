package types

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccountIDRoundTrip(t *testing.T) {
	raw, err := hex.DecodeString("b5f762798a53d543a014caf8b297cff8f2f937e8")
	require.NoError(t, err)

	var id AccountID
	copy(id[:], raw)

	addr := id.String()
	require.Equal(t, byte('r'), addr[0])

	parsed, err := ParseAccountID(addr)
	require.NoError(t, err)
	assert.Equal(t, id, parsed)

	fromHex, err := ParseAccountID(hex.EncodeToString(raw))
	require.NoError(t, err)
	assert.Equal(t, id, fromHex)
}

func TestParseAccountIDRejectsGarbage(t *testing.T) {
	_, err := ParseAccountID("not-an-address")
	require.Error(t, err)
}

func TestAccountIDText(t *testing.T) {
	id := AccountID{1, 2, 3}
	text, err := id.MarshalText()
	require.NoError(t, err)

	var back AccountID
	require.NoError(t, back.UnmarshalText(text))
	assert.Equal(t, id, back)
	assert.False(t, back.IsZero())
	assert.True(t, AccountID{}.IsZero())
}

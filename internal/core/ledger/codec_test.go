package ledger

import (
	"testing"

	"github.com/LeJamon/goBondedMarkets/internal/core/ledger/entry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeEntryTagsType(t *testing.T) {
	m := &Mint{ID: mintID, Authority: authority, Decimals: 6, Supply: 42}

	data, err := EncodeEntry(entry.TypeMint, m)
	require.NoError(t, err)

	typ, err := EntryType(data)
	require.NoError(t, err)
	assert.Equal(t, entry.TypeMint, typ)

	var got Mint
	require.NoError(t, DecodeEntry(data, entry.TypeMint, &got))
	assert.Equal(t, *m, got)

	err = DecodeEntry(data, entry.TypeTokenAccount, &TokenAccount{})
	require.ErrorIs(t, err, ErrEntryType)
}

func TestEntryTypeTooShort(t *testing.T) {
	_, err := EntryType([]byte{0x00})
	require.ErrorIs(t, err, ErrEntryType)
}

package keylet

import (
	"strings"
	"testing"

	"github.com/LeJamon/goBondedMarkets/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testProgram = types.AccountID{0x42, 0x42}

func TestFindProgramAddressIsDeterministic(t *testing.T) {
	mint := types.AccountID{9, 9, 9}

	a, err := MarketAddress(testProgram, mint)
	require.NoError(t, err)
	b, err := MarketAddress(testProgram, mint)
	require.NoError(t, err)

	assert.Equal(t, a.Address, b.Address)
	assert.Equal(t, a.Bump, b.Bump)
}

func TestFindProgramAddressPicksHighestOffCurveBump(t *testing.T) {
	mint := types.AccountID{1, 2, 3, 4}
	pda, err := TreasuryAddress(testProgram, mint)
	require.NoError(t, err)

	for bump := 255; bump > int(pda.Bump); bump-- {
		_, err := CreateProgramAddress(testProgram, pda.Seeds, uint8(bump))
		require.ErrorIs(t, err, ErrOnCurve, "bump %d should have been on curve", bump)
	}

	addr, err := CreateProgramAddress(testProgram, pda.Seeds, pda.Bump)
	require.NoError(t, err)
	assert.Equal(t, pda.Address, addr)
}

func TestDomainTagsSeparateAddresses(t *testing.T) {
	mint := types.AccountID{5}

	market, err := MarketAddress(testProgram, mint)
	require.NoError(t, err)
	treasury, err := TreasuryAddress(testProgram, mint)
	require.NoError(t, err)
	authority, err := MarketAuthority(testProgram, mint)
	require.NoError(t, err)

	assert.NotEqual(t, market.Address, treasury.Address)
	assert.NotEqual(t, market.Address, authority.Address)
	assert.NotEqual(t, treasury.Address, authority.Address)
}

func TestProgramIdentityMatters(t *testing.T) {
	mint := types.AccountID{5}
	other := types.AccountID{0x43}

	a, err := MarketAuthority(testProgram, mint)
	require.NoError(t, err)
	b, err := MarketAuthority(other, mint)
	require.NoError(t, err)

	assert.NotEqual(t, a.Address, b.Address)
}

func TestAuthorizes(t *testing.T) {
	mint := types.AccountID{8}
	auth, err := MarketAuthority(testProgram, mint)
	require.NoError(t, err)

	assert.True(t, auth.Authorizes(auth.Address))
	assert.False(t, auth.Authorizes(types.AccountID{1}))

	forged := auth
	forged.Bump--
	assert.False(t, forged.Authorizes(auth.Address))

	wrongSeeds := auth
	wrongSeeds.Seeds = [][]byte{[]byte(SeedTreasury), mint[:]}
	assert.False(t, wrongSeeds.Authorizes(auth.Address))
}

func TestAttributionAddress(t *testing.T) {
	a, err := AttributionAddress(testProgram, "moonbase")
	require.NoError(t, err)
	b, err := AttributionAddress(testProgram, "moonbase2")
	require.NoError(t, err)
	assert.NotEqual(t, a.Address, b.Address)

	_, err = AttributionAddress(testProgram, strings.Repeat("x", MaxSeedLength+1))
	require.ErrorIs(t, err, ErrMaxSeedLength)
}

func TestSeedLimits(t *testing.T) {
	seeds := make([][]byte, MaxSeeds+1)
	_, err := FindProgramAddress(testProgram, seeds...)
	require.ErrorIs(t, err, ErrTooManySeeds)
}

func TestNoViableBumpIsSurfaced(t *testing.T) {
	alwaysOnCurve := func([32]byte) bool { return true }
	_, err := findProgramAddress(testProgram, [][]byte{[]byte(SeedMarket)}, alwaysOnCurve)
	require.ErrorIs(t, err, ErrNoViableBump)
}

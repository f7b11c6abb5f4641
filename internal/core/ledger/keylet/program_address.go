package keylet

import (
	"errors"
	"fmt"

	ids "github.com/LeJamon/goBondedMarkets/internal/crypto"
	crypto "github.com/LeJamon/goBondedMarkets/internal/crypto/common"
	"github.com/LeJamon/goBondedMarkets/internal/types"
	"github.com/decred/dcrd/dcrec/secp256k1/v4"
)

// Domain tags for market sub-accounts.
const (
	SeedMarket          = "market"
	SeedAttribution     = "attribution"
	SeedTreasury        = "treasury"
	SeedMarketAuthority = "market_auth"
)

const (
	// MaxSeeds is the maximum number of seeds in one derivation.
	MaxSeeds = 16

	// MaxSeedLength is the maximum length of a single seed.
	MaxSeedLength = 32

	pdaMarker = "ProgramDerivedAddress"

	// compressed-key prefix used both for the curve test and the identity hash
	evenKeyPrefix = 0x02
)

var (
	// ErrNoViableBump is returned when every bump yields a curve point.
	ErrNoViableBump = errors.New("no viable bump for program address")

	// ErrOnCurve is returned by CreateProgramAddress when the candidate is a
	// valid public key and therefore cannot be program-owned.
	ErrOnCurve = errors.New("program address candidate is on curve")

	// ErrMaxSeedLength is returned when a seed is longer than MaxSeedLength.
	ErrMaxSeedLength = errors.New("seed exceeds maximum length")

	// ErrTooManySeeds is returned when more than MaxSeeds seeds are given.
	ErrTooManySeeds = errors.New("too many seeds")
)

// ProgramAddress is a program-derived identity together with the seed
// material that proves it. It never carries a secret: authority is shown by
// re-deriving the address.
type ProgramAddress struct {
	Program types.AccountID
	Seeds   [][]byte
	Bump    uint8
	Address types.AccountID
}

// CreateProgramAddress derives the identity for an explicit bump.
func CreateProgramAddress(program types.AccountID, seeds [][]byte, bump uint8) (types.AccountID, error) {
	if err := checkSeeds(seeds); err != nil {
		return types.AccountID{}, err
	}
	candidate := programCandidate(program, seeds, bump)
	if isOnCurve(candidate) {
		return types.AccountID{}, ErrOnCurve
	}
	return identityOf(candidate), nil
}

// FindProgramAddress searches bumps from 255 down and returns the first
// candidate that is off the secp256k1 curve.
func FindProgramAddress(program types.AccountID, seeds ...[]byte) (ProgramAddress, error) {
	return findProgramAddress(program, seeds, isOnCurve)
}

func findProgramAddress(program types.AccountID, seeds [][]byte, onCurve func([32]byte) bool) (ProgramAddress, error) {
	if err := checkSeeds(seeds); err != nil {
		return ProgramAddress{}, err
	}
	for bump := 255; bump >= 0; bump-- {
		candidate := programCandidate(program, seeds, uint8(bump))
		if onCurve(candidate) {
			continue
		}
		return ProgramAddress{
			Program: program,
			Seeds:   copySeeds(seeds),
			Bump:    uint8(bump),
			Address: identityOf(candidate),
		}, nil
	}
	return ProgramAddress{}, ErrNoViableBump
}

// Authorizes reports whether this seed material derives id. It lets a
// ProgramAddress act as the signer for ledger operations.
func (p ProgramAddress) Authorizes(id types.AccountID) bool {
	derived, err := CreateProgramAddress(p.Program, p.Seeds, p.Bump)
	if err != nil {
		return false
	}
	return derived == id
}

// String renders the address and bump.
func (p ProgramAddress) String() string {
	return fmt.Sprintf("%s/%d", p.Address, p.Bump)
}

// MarketAddress derives the market record address for a target mint.
func MarketAddress(program, targetMint types.AccountID) (ProgramAddress, error) {
	return FindProgramAddress(program, []byte(SeedMarket), targetMint[:])
}

// AttributionAddress derives the name record address for a market name.
func AttributionAddress(program types.AccountID, name string) (ProgramAddress, error) {
	return FindProgramAddress(program, []byte(SeedAttribution), []byte(name))
}

// TreasuryAddress derives the escrow account address for a target mint.
func TreasuryAddress(program, targetMint types.AccountID) (ProgramAddress, error) {
	return FindProgramAddress(program, []byte(SeedTreasury), targetMint[:])
}

// MarketAuthority derives the mint and escrow authority for a target mint.
func MarketAuthority(program, targetMint types.AccountID) (ProgramAddress, error) {
	return FindProgramAddress(program, []byte(SeedMarketAuthority), targetMint[:])
}

// Every seed is length-prefixed so that no two seed lists hash the same bytes.
func programCandidate(program types.AccountID, seeds [][]byte, bump uint8) [32]byte {
	parts := make([][]byte, 0, 2*len(seeds)+3)
	for _, s := range seeds {
		parts = append(parts, []byte{byte(len(s))}, s)
	}
	parts = append(parts, []byte{bump}, program[:], []byte(pdaMarker))
	return crypto.Sha512Half(parts...)
}

func identityOf(candidate [32]byte) types.AccountID {
	key := make([]byte, 0, 33)
	key = append(key, evenKeyPrefix)
	key = append(key, candidate[:]...)
	return types.AccountID(ids.CalcAccountID(key))
}

func isOnCurve(candidate [32]byte) bool {
	key := make([]byte, 0, 33)
	key = append(key, evenKeyPrefix)
	key = append(key, candidate[:]...)
	_, err := secp256k1.ParsePubKey(key)
	return err == nil
}

func checkSeeds(seeds [][]byte) error {
	if len(seeds) > MaxSeeds {
		return ErrTooManySeeds
	}
	for _, s := range seeds {
		if len(s) > MaxSeedLength {
			return fmt.Errorf("%w: %d > %d", ErrMaxSeedLength, len(s), MaxSeedLength)
		}
	}
	return nil
}

func copySeeds(seeds [][]byte) [][]byte {
	out := make([][]byte, len(seeds))
	for i, s := range seeds {
		out[i] = append([]byte(nil), s...)
	}
	return out
}

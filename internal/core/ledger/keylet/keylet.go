package keylet

import (
	"encoding/binary"
	"fmt"

	"github.com/LeJamon/goBondedMarkets/internal/core/ledger/entry"
	crypto "github.com/LeJamon/goBondedMarkets/internal/crypto/common"
	ids "github.com/LeJamon/goBondedMarkets/internal/crypto"
	"github.com/LeJamon/goBondedMarkets/internal/types"
)

// Space identifiers for keylet generation
const (
	spaceMint        uint16 = 'M' // Token mint
	spaceTokenAcct   uint16 = 't' // Token account
	spaceAssociated  uint16 = 'a' // Associated token account identity
	spaceMarket      uint16 = 'm' // Market record
	spaceAttribution uint16 = 'n' // Market name record
)

// KeySize is the length of a serialized keylet: 2-byte type followed by the key.
const KeySize = 2 + 32

// Keylet represents an addressable location in the ledger state.
// It combines a type identifier with a 256-bit key.
type Keylet struct {
	Type entry.Type
	Key  [32]byte
}

// indexHash computes a keylet key by hashing the space and provided data.
func indexHash(space uint16, data ...[]byte) [32]byte {
	spaceBytes := make([]byte, 2)
	binary.BigEndian.PutUint16(spaceBytes, space)

	inputs := make([][]byte, 0, len(data)+1)
	inputs = append(inputs, spaceBytes)
	inputs = append(inputs, data...)

	return crypto.Sha512Half(inputs...)
}

// Bytes returns the storage key for the keylet.
func (k Keylet) Bytes() []byte {
	out := make([]byte, KeySize)
	binary.BigEndian.PutUint16(out, uint16(k.Type))
	copy(out[2:], k.Key[:])
	return out
}

// String renders the keylet for logs.
func (k Keylet) String() string {
	return fmt.Sprintf("%s:%X", k.Type, k.Key[:8])
}

// FromBytes parses a storage key produced by Bytes.
func FromBytes(b []byte) (Keylet, error) {
	if len(b) != KeySize {
		return Keylet{}, fmt.Errorf("keylet: expected %d bytes, got %d", KeySize, len(b))
	}
	var k Keylet
	k.Type = entry.Type(binary.BigEndian.Uint16(b))
	copy(k.Key[:], b[2:])
	return k, nil
}

// Mint returns the keylet for a token mint.
func Mint(id types.AccountID) Keylet {
	return Keylet{
		Type: entry.TypeMint,
		Key:  indexHash(spaceMint, id[:]),
	}
}

// TokenAccount returns the keylet for a token account.
func TokenAccount(id types.AccountID) Keylet {
	return Keylet{
		Type: entry.TypeTokenAccount,
		Key:  indexHash(spaceTokenAcct, id[:]),
	}
}

// Market returns the keylet for the market record stored at a derived address.
func Market(address types.AccountID) Keylet {
	return Keylet{
		Type: entry.TypeMarket,
		Key:  indexHash(spaceMarket, address[:]),
	}
}

// Attribution returns the keylet for the name record stored at a derived address.
func Attribution(address types.AccountID) Keylet {
	return Keylet{
		Type: entry.TypeAttribution,
		Key:  indexHash(spaceAttribution, address[:]),
	}
}

// AssociatedTokenAccountID returns the canonical token account identity for
// an owner and mint pair.
func AssociatedTokenAccountID(owner, mint types.AccountID) types.AccountID {
	h := indexHash(spaceAssociated, owner[:], mint[:])
	return types.AccountID(ids.CalcAccountID(h[:]))
}

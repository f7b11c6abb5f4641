// Package types holds identities shared by the ledger and the market engine.
package types

import (
	"encoding/hex"
	"fmt"

	addresscodec "github.com/Peersyst/xrpl-go/address-codec"
)

// AccountIDSize is the size of an AccountID in bytes.
const AccountIDSize = 20

// AccountID identifies any ledger object: wallets, mints, token accounts and
// program-derived records.
type AccountID [AccountIDSize]byte

// IsZero reports whether the identity is unset.
func (id AccountID) IsZero() bool {
	return id == AccountID{}
}

// String returns the classic address form ("r...").
// Falls back to hex if encoding fails, which only happens for malformed input.
func (id AccountID) String() string {
	addr, err := addresscodec.EncodeAccountIDToClassicAddress(id[:])
	if err != nil {
		return hex.EncodeToString(id[:])
	}
	return addr
}

// MarshalText implements encoding.TextMarshaler.
func (id AccountID) MarshalText() ([]byte, error) {
	addr, err := addresscodec.EncodeAccountIDToClassicAddress(id[:])
	if err != nil {
		return nil, err
	}
	return []byte(addr), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (id *AccountID) UnmarshalText(text []byte) error {
	parsed, err := ParseAccountID(string(text))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

// ParseAccountID decodes a classic address or a 40-character hex identity.
func ParseAccountID(s string) (AccountID, error) {
	var id AccountID
	if len(s) == 2*AccountIDSize {
		if raw, err := hex.DecodeString(s); err == nil {
			copy(id[:], raw)
			return id, nil
		}
	}
	_, raw, err := addresscodec.DecodeClassicAddressToAccountID(s)
	if err != nil {
		return id, fmt.Errorf("invalid account %q: %w", s, err)
	}
	if len(raw) != AccountIDSize {
		return id, fmt.Errorf("invalid account %q: decoded %d bytes", s, len(raw))
	}
	copy(id[:], raw)
	return id, nil
}

// MustParseAccountID is ParseAccountID for constants and tests.
func MustParseAccountID(s string) AccountID {
	id, err := ParseAccountID(s)
	if err != nil {
		panic(err)
	}
	return id
}

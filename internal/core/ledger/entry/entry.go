package entry

import (
	"fmt"
)

// Type represents a ledger entry type
type Type uint16

// All known ledger entry types
const (
	// Token objects owned by the ledger service
	TypeMint         Type = 0x004d // Token mints (authority, decimals, supply)
	TypeTokenAccount Type = 0x0074 // Token holdings

	// Program-owned records
	TypeMarket      Type = 0x006d // Bonded market state
	TypeAttribution Type = 0x0061 // Market name registry
)

// String returns the string representation of the Type
func (t Type) String() string {
	switch t {
	case TypeMint:
		return "Mint"
	case TypeTokenAccount:
		return "TokenAccount"
	case TypeMarket:
		return "Market"
	case TypeAttribution:
		return "MarketAttribution"
	default:
		return fmt.Sprintf("Unknown(0x%04x)", uint16(t))
	}
}

// IsProgramOwned reports whether entries of this type are written by the
// market program rather than the token ledger itself.
func (t Type) IsProgramOwned() bool {
	return t == TypeMarket || t == TypeAttribution
}

package testing

import (
	"crypto/sha512"
	"fmt"

	"github.com/LeJamon/goBondedMarkets/internal/core/ledger"
	"github.com/LeJamon/goBondedMarkets/internal/crypto"
	"github.com/LeJamon/goBondedMarkets/internal/types"
	"github.com/btcsuite/btcd/btcec/v2"
)

// Account represents a test account with keypair and identity.
type Account struct {
	// Name is a human-readable identifier for the account (used for debugging).
	Name string

	// PrivateKey is the secp256k1 key derived from Name.
	PrivateKey *btcec.PrivateKey

	// PublicKey is the 33-byte compressed public key.
	PublicKey []byte

	// ID is the account identity derived from PublicKey.
	ID types.AccountID
}

// NewAccount creates a test account with a keypair derived from the name.
// Using the same name always produces the same account.
func NewAccount(name string) *Account {
	hash := sha512.Sum512([]byte(name))
	priv, pub := btcec.PrivKeyFromBytes(hash[:32])
	compressed := pub.SerializeCompressed()
	return &Account{
		Name:       name,
		PrivateKey: priv,
		PublicKey:  compressed,
		ID:         types.AccountID(crypto.CalcAccountID(compressed)),
	}
}

// Address returns the classic address of the account.
func (a *Account) Address() string {
	return a.ID.String()
}

// Signer returns a ledger signer that authorizes this account.
func (a *Account) Signer() ledger.Signer {
	return ledger.Wallet(a.ID)
}

// String returns a debug representation of the account.
func (a *Account) String() string {
	return fmt.Sprintf("%s (%s)", a.Name, a.ID)
}

package ledger

import (
	"github.com/LeJamon/goBondedMarkets/internal/types"
)

// Mint is a token definition. Only Authority may issue new units.
type Mint struct {
	ID        types.AccountID `codec:"id"`
	Authority types.AccountID `codec:"authority"`
	Decimals  uint8           `codec:"decimals"`
	Supply    uint64          `codec:"supply"`
}

// TokenAccount holds a balance of one mint on behalf of Owner.
type TokenAccount struct {
	ID      types.AccountID `codec:"id"`
	Owner   types.AccountID `codec:"owner"`
	Mint    types.AccountID `codec:"mint"`
	Balance uint64          `codec:"balance"`
}

// Signer proves control over an account identity.
type Signer interface {
	Authorizes(id types.AccountID) bool
}

// Wallet is a key-holding identity. It authorizes only itself.
type Wallet types.AccountID

// Authorizes implements Signer.
func (w Wallet) Authorizes(id types.AccountID) bool {
	return types.AccountID(w) == id
}

// ID returns the wallet's account identity.
func (w Wallet) ID() types.AccountID {
	return types.AccountID(w)
}

func addChecked(a, b uint64) (uint64, error) {
	sum := a + b
	if sum < a {
		return 0, ErrOverflow
	}
	return sum, nil
}

package market

import (
	"fmt"

	"github.com/LeJamon/goBondedMarkets/internal/core/curve"
	"github.com/LeJamon/goBondedMarkets/internal/core/ledger"
	"github.com/LeJamon/goBondedMarkets/internal/core/tx"
)

// snapshot captures the quantities the market invariants relate.
type snapshot struct {
	burned      uint64
	curveSupply uint64
	escrow      uint64
}

func takeSnapshot(l ledger.Accounts, m *Market) (snapshot, error) {
	s, err := CurveSupply(l, m)
	if err != nil {
		return snapshot{}, err
	}
	escrow, err := Escrow(l, m)
	if err != nil {
		return snapshot{}, err
	}
	return snapshot{burned: m.AmountBurned, curveSupply: s, escrow: escrow}, nil
}

// expectation describes how one operation must move the snapshot.
type expectation struct {
	supplyDelta int8 // -1, 0 or +1 times amount
	amount      uint64
	escrowIn    uint64
	escrowOut   uint64
}

// checkInvariants verifies the transition before -> after of m against
// want and that the treasury can still redeem every circulating token.
func checkInvariants(c curve.Curve, before, after snapshot, want expectation) error {
	if after.burned < before.burned {
		return fmt.Errorf("amount burned decreased from %d to %d", before.burned, after.burned)
	}

	wantSupply := before.curveSupply
	switch want.supplyDelta {
	case 1:
		wantSupply += want.amount
	case -1:
		wantSupply -= want.amount
	}
	if after.curveSupply != wantSupply {
		return fmt.Errorf("curve supply %d, want %d", after.curveSupply, wantSupply)
	}

	wantEscrow := before.escrow + want.escrowIn - want.escrowOut
	if after.escrow != wantEscrow {
		return fmt.Errorf("escrow %d, want %d", after.escrow, wantEscrow)
	}

	owed, err := c.Refund(after.burned, after.curveSupply)
	if err != nil {
		return err
	}
	if after.escrow < owed {
		return fmt.Errorf("escrow %d cannot redeem circulating supply worth %d", after.escrow, owed)
	}
	return nil
}

// verify runs checkInvariants and converts a violation to a result.
func verify(ctx *tx.ApplyContext, c curve.Curve, m *Market, before snapshot, want expectation) (snapshot, tx.Result) {
	after, err := takeSnapshot(ctx.Ledger, m)
	if err != nil {
		return snapshot{}, ctx.FailWith(tx.TefINTERNAL, err)
	}
	if err := checkInvariants(c, before, after, want); err != nil {
		return snapshot{}, ctx.FailWith(tx.TecINVARIANT_FAILED, fmt.Errorf("market %s: %w", m.Name, err))
	}
	return after, tx.TesSUCCESS
}

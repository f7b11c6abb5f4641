package tx

import "fmt"

// Result represents a transaction result code
type Result int

// Transaction result codes. Values in the tes/tec/tef/tem families keep the
// numbering of the ledger result table they come from; codes specific to
// bonded markets are allocated at the end of their family.
const (
	// tesSUCCESS
	TesSUCCESS Result = 0

	// tec codes: the transaction was well formed but could not be applied
	// against current state. Every effect is rolled back.
	TecUNFUNDED_PAYMENT   Result = 104
	TecUNFUNDED           Result = 129
	TecNO_ENTRY           Result = 140
	TecOVERSIZE           Result = 145
	TecINVARIANT_FAILED   Result = 147
	TecDUPLICATE          Result = 149
	TecINSUFFICIENT_FUNDS Result = 159

	// tef codes: the ledger or the program itself misbehaved
	TefFAILURE  Result = -199
	TefBAD_AUTH Result = -196
	TefINTERNAL Result = -192

	// tem codes: malformed, rejected before any ledger access
	TemMALFORMED       Result = -299
	TemBAD_AMOUNT      Result = -298
	TemINVALID         Result = -277
	TemUNKNOWN         Result = -264
	TemARRAY_EMPTY     Result = -253
	TemARRAY_TOO_LARGE Result = -252
	TemBAD_CURVE       Result = -251
	TemBAD_NAME        Result = -250
)

// String returns the string representation of the result code
func (r Result) String() string {
	switch r {
	case TesSUCCESS:
		return "tesSUCCESS"
	case TecUNFUNDED_PAYMENT:
		return "tecUNFUNDED_PAYMENT"
	case TecUNFUNDED:
		return "tecUNFUNDED"
	case TecNO_ENTRY:
		return "tecNO_ENTRY"
	case TecOVERSIZE:
		return "tecOVERSIZE"
	case TecINVARIANT_FAILED:
		return "tecINVARIANT_FAILED"
	case TecDUPLICATE:
		return "tecDUPLICATE"
	case TecINSUFFICIENT_FUNDS:
		return "tecINSUFFICIENT_FUNDS"
	case TefFAILURE:
		return "tefFAILURE"
	case TefBAD_AUTH:
		return "tefBAD_AUTH"
	case TefINTERNAL:
		return "tefINTERNAL"
	case TemMALFORMED:
		return "temMALFORMED"
	case TemBAD_AMOUNT:
		return "temBAD_AMOUNT"
	case TemINVALID:
		return "temINVALID"
	case TemUNKNOWN:
		return "temUNKNOWN"
	case TemARRAY_EMPTY:
		return "temARRAY_EMPTY"
	case TemARRAY_TOO_LARGE:
		return "temARRAY_TOO_LARGE"
	case TemBAD_CURVE:
		return "temBAD_CURVE"
	case TemBAD_NAME:
		return "temBAD_NAME"
	default:
		return fmt.Sprintf("Unknown(%d)", r)
	}
}

// IsSuccess returns true if the result indicates success
func (r Result) IsSuccess() bool {
	return r == TesSUCCESS
}

// IsTec returns true if this is a tec (claimed cost) code
func (r Result) IsTec() bool {
	return r >= 100 && r < 200
}

// IsTef returns true if this is a tef (failure) code
func (r Result) IsTef() bool {
	return r >= -199 && r <= -100
}

// IsTem returns true if this is a tem (malformed) code
func (r Result) IsTem() bool {
	return r >= -299 && r <= -200
}

// Message returns a human-readable message for the result
func (r Result) Message() string {
	switch r {
	case TesSUCCESS:
		return "The transaction was applied."
	case TecUNFUNDED_PAYMENT:
		return "Insufficient base balance to pay the curve cost."
	case TecUNFUNDED:
		return "Market escrow cannot cover the refund."
	case TecNO_ENTRY:
		return "No such market, mint, or token account."
	case TecOVERSIZE:
		return "Amount exceeds the representable range."
	case TecINVARIANT_FAILED:
		return "Market invariant check failed; nothing was applied."
	case TecDUPLICATE:
		return "Market or name already exists."
	case TecINSUFFICIENT_FUNDS:
		return "Insufficient target balance."
	case TefBAD_AUTH:
		return "Signer is not authorized for this account or mint."
	case TefINTERNAL:
		return "Internal error."
	case TemMALFORMED:
		return "Malformed transaction."
	case TemBAD_AMOUNT:
		return "Amount must be positive."
	case TemINVALID:
		return "The transaction is ill-formed."
	case TemUNKNOWN:
		return "Unknown transaction type."
	case TemARRAY_EMPTY:
		return "Batch contains no transactions."
	case TemARRAY_TOO_LARGE:
		return "Batch contains too many transactions."
	case TemBAD_CURVE:
		return "Unsupported curve."
	case TemBAD_NAME:
		return "Market name is empty or too long."
	default:
		return r.String()
	}
}

package tx

import (
	"errors"
	"fmt"

	"github.com/LeJamon/goBondedMarkets/internal/core/curve"
	"github.com/LeJamon/goBondedMarkets/internal/core/ledger"
)

// Error families a caller can match with errors.Is on ApplyResult.Err().
var (
	ErrValidation          = errors.New("validation error")
	ErrUnsupportedCurve    = errors.New("unsupported curve")
	ErrStateConflict       = errors.New("state conflict")
	ErrInsufficientFunds   = errors.New("insufficient funds")
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrInsufficientEscrow  = errors.New("insufficient escrow")
	ErrUnauthorized        = errors.New("unauthorized")
	ErrInvariantViolation  = errors.New("invariant violation")
	ErrNotFound            = errors.New("not found")
	ErrOverflow            = errors.New("amount overflow")
	ErrInternal            = errors.New("internal error")
)

// ErrUnknownTransactionType is returned when a transaction type is unknown
var ErrUnknownTransactionType = errors.New("unknown transaction type")

// ResultError carries a non-success Result together with its cause.
// It unwraps to the family sentinel for the code and to the cause, so both
// errors.Is(err, tx.ErrUnauthorized) and errors.Is(err, ledger.ErrUnauthorized)
// hold for a rejected mint.
type ResultError struct {
	Result Result
	Cause  error
}

// NewResultError returns a ResultError for code. cause may be nil.
func NewResultError(code Result, cause error) *ResultError {
	return &ResultError{Result: code, Cause: cause}
}

// Errorf returns a ResultError for code with a formatted cause.
func Errorf(code Result, format string, args ...any) *ResultError {
	return &ResultError{Result: code, Cause: fmt.Errorf(format, args...)}
}

func (e *ResultError) Error() string {
	if e.Cause == nil {
		return e.Result.String()
	}
	return e.Result.String() + ": " + e.Cause.Error()
}

func (e *ResultError) Unwrap() []error {
	errs := make([]error, 0, 3)
	errs = append(errs, familyOf(e.Result)...)
	if e.Cause != nil {
		errs = append(errs, e.Cause)
	}
	return errs
}

func familyOf(r Result) []error {
	switch r {
	case TemBAD_CURVE:
		return []error{ErrValidation, ErrUnsupportedCurve}
	case TecDUPLICATE:
		return []error{ErrStateConflict}
	case TecUNFUNDED_PAYMENT:
		return []error{ErrInsufficientFunds}
	case TecINSUFFICIENT_FUNDS:
		return []error{ErrInsufficientBalance}
	case TecUNFUNDED:
		return []error{ErrInsufficientEscrow}
	case TecNO_ENTRY:
		return []error{ErrNotFound}
	case TecOVERSIZE:
		return []error{ErrOverflow}
	case TecINVARIANT_FAILED:
		return []error{ErrInvariantViolation}
	case TefBAD_AUTH:
		return []error{ErrUnauthorized}
	}
	switch {
	case r.IsTem():
		return []error{ErrValidation}
	case r.IsTef():
		return []error{ErrInternal}
	}
	return nil
}

// ResultFor maps an error raised while applying a transaction to its code.
func ResultFor(err error) Result {
	var re *ResultError
	switch {
	case err == nil:
		return TesSUCCESS
	case errors.As(err, &re):
		return re.Result
	case errors.Is(err, ledger.ErrInsufficientFunds):
		return TecUNFUNDED_PAYMENT
	case errors.Is(err, ledger.ErrInsufficientBalance):
		return TecINSUFFICIENT_FUNDS
	case errors.Is(err, ledger.ErrUnauthorized):
		return TefBAD_AUTH
	case errors.Is(err, ledger.ErrAccountNotFound),
		errors.Is(err, ledger.ErrMintNotFound),
		errors.Is(err, ledger.ErrRecordNotFound),
		errors.Is(err, ledger.ErrMintMismatch):
		return TecNO_ENTRY
	case errors.Is(err, ledger.ErrAlreadyExists):
		return TecDUPLICATE
	case errors.Is(err, ledger.ErrOverflow), errors.Is(err, curve.ErrOverflow):
		return TecOVERSIZE
	case errors.Is(err, curve.ErrUnsupported):
		return TemBAD_CURVE
	default:
		return TefINTERNAL
	}
}

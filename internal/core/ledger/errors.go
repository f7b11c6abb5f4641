package ledger

import "errors"

var (
	// ErrInsufficientFunds is returned when a transfer source holds less than the amount.
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrInsufficientBalance is returned when a burn exceeds the holder's balance.
	ErrInsufficientBalance = errors.New("insufficient balance")

	// ErrUnauthorized is returned when the signer does not control the account or mint.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrAccountNotFound is returned for a missing token account.
	ErrAccountNotFound = errors.New("token account not found")

	// ErrMintNotFound is returned for a missing mint.
	ErrMintNotFound = errors.New("mint not found")

	// ErrRecordNotFound is returned for a missing program record.
	ErrRecordNotFound = errors.New("record not found")

	// ErrAlreadyExists is returned when creating an entry that is already present.
	ErrAlreadyExists = errors.New("entry already exists")

	// ErrMintMismatch is returned when a token account belongs to a different mint.
	ErrMintMismatch = errors.New("token account mint mismatch")

	// ErrOverflow is returned when a balance or supply would exceed 64 bits.
	ErrOverflow = errors.New("amount overflows uint64")

	// ErrEntryType is returned when stored bytes carry an unexpected entry type.
	ErrEntryType = errors.New("unexpected ledger entry type")

	// ErrReadOnly is returned for writes attempted inside Service.View.
	ErrReadOnly = errors.New("ledger view is read-only")
)

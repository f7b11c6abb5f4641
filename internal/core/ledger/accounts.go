package ledger

import (
	"fmt"

	"github.com/LeJamon/goBondedMarkets/internal/core/ledger/keylet"
	"github.com/LeJamon/goBondedMarkets/internal/types"
)

//go:generate mockgen -destination=mock/mock_accounts.go -package=mock github.com/LeJamon/goBondedMarkets/internal/core/ledger Accounts

// Accounts is the account-service surface available inside one unit of work.
// Every mutation is buffered and becomes visible to other units of work only
// when the enclosing Service.Transact commits.
type Accounts interface {
	CreateMint(id, authority types.AccountID, decimals uint8) error
	Mint(id types.AccountID) (*Mint, error)
	CreateTokenAccount(id, owner, mint types.AccountID) error
	EnsureAssociatedTokenAccount(owner, mint types.AccountID) (types.AccountID, error)
	TokenAccount(id types.AccountID) (*TokenAccount, error)
	AccountExists(id types.AccountID) (bool, error)

	Transfer(from, to types.AccountID, amount uint64, signer Signer) error
	MintTo(mint, to types.AccountID, amount uint64, signer Signer) error
	Burn(mint, from types.AccountID, amount uint64, signer Signer) error

	Balance(account types.AccountID) (uint64, error)
	Supply(mint types.AccountID) (uint64, error)

	Record(k keylet.Keylet, v any) error
	RecordExists(k keylet.Keylet) (bool, error)
	InsertRecord(k keylet.Keylet, v any) error
	UpdateRecord(k keylet.Keylet, v any) error
}

// AssociatedTokenAccount returns the canonical token account for owner and mint.
func AssociatedTokenAccount(owner, mint types.AccountID) types.AccountID {
	return keylet.AssociatedTokenAccountID(owner, mint)
}

type sandbox struct {
	table    *ApplyStateTable
	readOnly bool
}

var _ Accounts = (*sandbox)(nil)

func (s *sandbox) writable() error {
	if s.readOnly {
		return ErrReadOnly
	}
	return nil
}

func (s *sandbox) load(k keylet.Keylet, v any, missing error) error {
	data, err := s.table.Read(k)
	if err != nil {
		return err
	}
	if data == nil {
		return missing
	}
	return DecodeEntry(data, k.Type, v)
}

func (s *sandbox) insert(k keylet.Keylet, v any) error {
	if err := s.writable(); err != nil {
		return err
	}
	data, err := EncodeEntry(k.Type, v)
	if err != nil {
		return err
	}
	return s.table.Insert(k, data)
}

func (s *sandbox) update(k keylet.Keylet, v any) error {
	if err := s.writable(); err != nil {
		return err
	}
	data, err := EncodeEntry(k.Type, v)
	if err != nil {
		return err
	}
	return s.table.Update(k, data)
}

func (s *sandbox) CreateMint(id, authority types.AccountID, decimals uint8) error {
	k := keylet.Mint(id)
	exists, err := s.table.Exists(k)
	if err != nil {
		return err
	}
	if exists {
		return fmt.Errorf("%w: mint %s", ErrAlreadyExists, id)
	}
	return s.insert(k, &Mint{ID: id, Authority: authority, Decimals: decimals})
}

func (s *sandbox) Mint(id types.AccountID) (*Mint, error) {
	var m Mint
	if err := s.load(keylet.Mint(id), &m, fmt.Errorf("%w: %s", ErrMintNotFound, id)); err != nil {
		return nil, err
	}
	return &m, nil
}

func (s *sandbox) CreateTokenAccount(id, owner, mint types.AccountID) error {
	if _, err := s.Mint(mint); err != nil {
		return err
	}
	k := keylet.TokenAccount(id)
	exists, err := s.table.Exists(k)
	if err != nil {
		return err
	}
	if exists {
		return fmt.Errorf("%w: token account %s", ErrAlreadyExists, id)
	}
	return s.insert(k, &TokenAccount{ID: id, Owner: owner, Mint: mint})
}

func (s *sandbox) EnsureAssociatedTokenAccount(owner, mint types.AccountID) (types.AccountID, error) {
	id := AssociatedTokenAccount(owner, mint)
	exists, err := s.AccountExists(id)
	if err != nil || exists {
		return id, err
	}
	return id, s.CreateTokenAccount(id, owner, mint)
}

func (s *sandbox) TokenAccount(id types.AccountID) (*TokenAccount, error) {
	var a TokenAccount
	if err := s.load(keylet.TokenAccount(id), &a, fmt.Errorf("%w: %s", ErrAccountNotFound, id)); err != nil {
		return nil, err
	}
	return &a, nil
}

func (s *sandbox) AccountExists(id types.AccountID) (bool, error) {
	return s.table.Exists(keylet.TokenAccount(id))
}

func (s *sandbox) Transfer(from, to types.AccountID, amount uint64, signer Signer) error {
	src, err := s.TokenAccount(from)
	if err != nil {
		return err
	}
	dst, err := s.TokenAccount(to)
	if err != nil {
		return err
	}
	if src.Mint != dst.Mint {
		return fmt.Errorf("%w: %s holds %s, %s holds %s", ErrMintMismatch, from, src.Mint, to, dst.Mint)
	}
	if signer == nil || !signer.Authorizes(src.Owner) {
		return fmt.Errorf("%w: transfer from %s", ErrUnauthorized, from)
	}
	if src.Balance < amount {
		return fmt.Errorf("%w: %s holds %d, needs %d", ErrInsufficientFunds, from, src.Balance, amount)
	}
	if from == to || amount == 0 {
		return nil
	}

	newDst, err := addChecked(dst.Balance, amount)
	if err != nil {
		return err
	}
	src.Balance -= amount
	dst.Balance = newDst

	if err := s.update(keylet.TokenAccount(from), src); err != nil {
		return err
	}
	return s.update(keylet.TokenAccount(to), dst)
}

func (s *sandbox) MintTo(mint, to types.AccountID, amount uint64, signer Signer) error {
	m, err := s.Mint(mint)
	if err != nil {
		return err
	}
	dst, err := s.TokenAccount(to)
	if err != nil {
		return err
	}
	if dst.Mint != mint {
		return fmt.Errorf("%w: %s holds %s", ErrMintMismatch, to, dst.Mint)
	}
	if signer == nil || !signer.Authorizes(m.Authority) {
		return fmt.Errorf("%w: mint authority of %s", ErrUnauthorized, mint)
	}

	supply, err := addChecked(m.Supply, amount)
	if err != nil {
		return err
	}
	balance, err := addChecked(dst.Balance, amount)
	if err != nil {
		return err
	}
	m.Supply, dst.Balance = supply, balance

	if err := s.update(keylet.Mint(mint), m); err != nil {
		return err
	}
	return s.update(keylet.TokenAccount(to), dst)
}

func (s *sandbox) Burn(mint, from types.AccountID, amount uint64, signer Signer) error {
	m, err := s.Mint(mint)
	if err != nil {
		return err
	}
	src, err := s.TokenAccount(from)
	if err != nil {
		return err
	}
	if src.Mint != mint {
		return fmt.Errorf("%w: %s holds %s", ErrMintMismatch, from, src.Mint)
	}
	if signer == nil || !(signer.Authorizes(src.Owner) || signer.Authorizes(m.Authority)) {
		return fmt.Errorf("%w: burn from %s", ErrUnauthorized, from)
	}
	if src.Balance < amount {
		return fmt.Errorf("%w: %s holds %d, burning %d", ErrInsufficientBalance, from, src.Balance, amount)
	}
	if m.Supply < amount {
		return fmt.Errorf("mint %s supply %d below burn %d", mint, m.Supply, amount)
	}

	src.Balance -= amount
	m.Supply -= amount

	if err := s.update(keylet.Mint(mint), m); err != nil {
		return err
	}
	return s.update(keylet.TokenAccount(from), src)
}

func (s *sandbox) Balance(account types.AccountID) (uint64, error) {
	a, err := s.TokenAccount(account)
	if err != nil {
		return 0, err
	}
	return a.Balance, nil
}

func (s *sandbox) Supply(mint types.AccountID) (uint64, error) {
	m, err := s.Mint(mint)
	if err != nil {
		return 0, err
	}
	return m.Supply, nil
}

func (s *sandbox) Record(k keylet.Keylet, v any) error {
	if !k.Type.IsProgramOwned() {
		return fmt.Errorf("%w: %s is not a program record", ErrEntryType, k.Type)
	}
	return s.load(k, v, fmt.Errorf("%w: %s", ErrRecordNotFound, k))
}

func (s *sandbox) RecordExists(k keylet.Keylet) (bool, error) {
	return s.table.Exists(k)
}

func (s *sandbox) InsertRecord(k keylet.Keylet, v any) error {
	if !k.Type.IsProgramOwned() {
		return fmt.Errorf("%w: %s is not a program record", ErrEntryType, k.Type)
	}
	return s.insert(k, v)
}

func (s *sandbox) UpdateRecord(k keylet.Keylet, v any) error {
	if !k.Type.IsProgramOwned() {
		return fmt.Errorf("%w: %s is not a program record", ErrEntryType, k.Type)
	}
	return s.update(k, v)
}


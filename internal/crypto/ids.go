package crypto

import (
	"crypto/sha256"

	crypto "github.com/LeJamon/goBondedMarkets/internal/crypto/common"
	"github.com/decred/dcrd/crypto/ripemd160"
)

// AccountIDSize is the size of an account identity in bytes.
const AccountIDSize = 20

// CalcAccountID computes an account identity as RIPEMD160(SHA256(key)).
//
// Wallet identities hash a compressed secp256k1 public key. Program-derived
// identities hash a 33-byte string that is guaranteed not to be a public
// key, so the same function serves both without any private key ever
// corresponding to a program-derived identity.
func CalcAccountID(key []byte) [AccountIDSize]byte {
	sha256Hash := sha256.Sum256(key)

	hasher := ripemd160.New()
	hasher.Write(sha256Hash[:])
	sum := hasher.Sum(nil)

	var result [AccountIDSize]byte
	copy(result[:], sum)
	return result
}

// CalcProgramID derives the identity of a program from its configured name.
func CalcProgramID(name string) [AccountIDSize]byte {
	seed := crypto.Sha512Half([]byte("program"), []byte(name))
	return CalcAccountID(seed[:])
}

// AccountIDFromBytes creates an account identity from a byte slice.
// Returns the zero identity if the slice is not exactly 20 bytes.
func AccountIDFromBytes(b []byte) [AccountIDSize]byte {
	var result [AccountIDSize]byte
	if len(b) == AccountIDSize {
		copy(result[:], b)
	}
	return result
}

// IsZeroAccountID reports whether the identity is all zeros.
func IsZeroAccountID(id [AccountIDSize]byte) bool {
	for _, b := range id {
		if b != 0 {
			return false
		}
	}
	return true
}

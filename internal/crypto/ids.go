package crypto

import (
	"crypto/sha256"

	"github.com/decred/dcrd/crypto/ripemd160"
)

// AccountIDSize is the size of an account ID in bytes.
const AccountIDSize = 20

// CalcAccountID computes the account ID from a public key as
// RIPEMD160(SHA256(publicKey)). The whole serialized key, prefix included,
// is hashed.
func CalcAccountID(publicKey []byte) [AccountIDSize]byte {
	sha256Hash := sha256.Sum256(publicKey)

	ripemd160Hasher := ripemd160.New()
	ripemd160Hasher.Write(sha256Hash[:])
	ripemd160Hash := ripemd160Hasher.Sum(nil)

	var result [AccountIDSize]byte
	copy(result[:], ripemd160Hash)
	return result
}

// DerivedAccountID computes the ID of an account that has no key pair and is
// controlled only by the protocol. It hashes a label and the seed material the
// same way as CalcAccountID so derived and key-owned ids share one space.
func DerivedAccountID(label string, seed []byte) [AccountIDSize]byte {
	material := make([]byte, 0, len(label)+1+len(seed))
	material = append(material, label...)
	material = append(material, 0)
	material = append(material, seed...)
	return CalcAccountID(material)
}

// IsZeroAccountID returns true if the account ID is all zeros.
func IsZeroAccountID(id [AccountIDSize]byte) bool {
	return id == [AccountIDSize]byte{}
}

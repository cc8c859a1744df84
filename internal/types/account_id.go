// Package types holds identifiers shared by every layer of the node.
package types

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/mr-tron/base58"
)

// AccountIDSize is the length of an account id in bytes.
const AccountIDSize = 20

// addressVersion is prepended to the id before base58 encoding.
const addressVersion byte = 0x17

var (
	ErrInvalidAddress  = errors.New("invalid address")
	ErrInvalidChecksum = errors.New("invalid address checksum")
)

// AccountID identifies an account, an asset or a collection. Accounts are
// derived from a public key, assets and collections from their creation
// transaction, protocol accounts from a keylet.
type AccountID [AccountIDSize]byte

// ZeroAccount is the unset id.
var ZeroAccount AccountID

// IsZero reports whether the id is unset.
func (a AccountID) IsZero() bool {
	return a == ZeroAccount
}

// Bytes returns a copy of the raw id.
func (a AccountID) Bytes() []byte {
	out := make([]byte, AccountIDSize)
	copy(out, a[:])
	return out
}

// Hex returns the upper case hex form.
func (a AccountID) Hex() string {
	return strings.ToUpper(hex.EncodeToString(a[:]))
}

// String returns the base58check address form.
func (a AccountID) String() string {
	payload := make([]byte, 0, 1+AccountIDSize+4)
	payload = append(payload, addressVersion)
	payload = append(payload, a[:]...)
	payload = append(payload, checksum(payload)...)
	return base58.Encode(payload)
}

// MarshalText encodes the id as an address.
func (a AccountID) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalText accepts an address or a 40 character hex id.
func (a *AccountID) UnmarshalText(text []byte) error {
	id, err := ParseAccountID(string(text))
	if err != nil {
		return err
	}
	*a = id
	return nil
}

// ParseAccountID decodes an address or a 40 character hex id.
func ParseAccountID(s string) (AccountID, error) {
	var id AccountID
	if len(s) == 2*AccountIDSize {
		if raw, err := hex.DecodeString(s); err == nil {
			copy(id[:], raw)
			return id, nil
		}
	}

	raw, err := base58.Decode(s)
	if err != nil {
		return id, fmt.Errorf("%w: %q", ErrInvalidAddress, s)
	}
	if len(raw) != 1+AccountIDSize+4 || raw[0] != addressVersion {
		return id, fmt.Errorf("%w: %q", ErrInvalidAddress, s)
	}
	body, sum := raw[:1+AccountIDSize], raw[1+AccountIDSize:]
	if !bytes.Equal(checksum(body), sum) {
		return id, fmt.Errorf("%w: %q", ErrInvalidChecksum, s)
	}
	copy(id[:], body[1:])
	return id, nil
}

// MustParseAccountID is ParseAccountID for constants and tests.
func MustParseAccountID(s string) AccountID {
	id, err := ParseAccountID(s)
	if err != nil {
		panic(err)
	}
	return id
}

func checksum(payload []byte) []byte {
	first := sha256.Sum256(payload)
	second := sha256.Sum256(first[:])
	return second[:4]
}

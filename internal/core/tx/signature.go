package tx

import (
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/ugorji/go/codec"

	"github.com/LeJamon/goAuctiond/internal/crypto"
	common "github.com/LeJamon/goAuctiond/internal/crypto/common"
	"github.com/LeJamon/goAuctiond/internal/crypto/secp256k1"
)

var (
	ErrNotSigned      = errors.New("transaction is not signed")
	ErrSignerMismatch = errors.New("signing key does not belong to account")
)

// Hash prefixes keep transaction ids and signing digests in separate domains.
var (
	prefixTransactionID = []byte{'T', 'X', 'N', 0}
	prefixTxSign        = []byte{'S', 'T', 'X', 0}
)

var txHandle = func() *codec.MsgpackHandle {
	h := &codec.MsgpackHandle{}
	h.WriteExt = true
	h.Canonical = true
	return h
}()

func encodeTransaction(tx Transaction) ([]byte, error) {
	var out []byte
	if err := codec.NewEncoderBytes(&out, txHandle).Encode(tx); err != nil {
		return nil, fmt.Errorf("encode %s: %w", tx.TxType(), err)
	}
	return out, nil
}

// TransactionHash returns the id of a transaction, signature included.
func TransactionHash(tx Transaction) ([32]byte, error) {
	data, err := encodeTransaction(tx)
	if err != nil {
		return [32]byte{}, err
	}
	return common.Sha512Half(prefixTransactionID, data), nil
}

// SigningHash returns the digest a signer signs: the transaction without
// its signature.
func SigningHash(tx Transaction) ([32]byte, error) {
	c := tx.GetCommon()
	sig := c.TxnSignature
	c.TxnSignature = ""
	defer func() { c.TxnSignature = sig }()

	data, err := encodeTransaction(tx)
	if err != nil {
		return [32]byte{}, err
	}
	return common.Sha512Half(prefixTxSign, data), nil
}

// Sign attaches the public key and a signature made with kp. The
// transaction Account must already be set to kp's account.
func Sign(tx Transaction, kp *secp256k1.KeyPair) error {
	c := tx.GetCommon()
	if c.Account != kp.AccountID() {
		return ErrSignerMismatch
	}
	c.SigningPubKey = kp.PublicKeyHex()
	digest, err := SigningHash(tx)
	if err != nil {
		return err
	}
	c.TxnSignature = strings.ToUpper(hex.EncodeToString(kp.Sign(digest)))
	return nil
}

// VerifySignature checks that the attached key belongs to Account and that
// the signature covers the transaction.
func VerifySignature(tx Transaction) error {
	c := tx.GetCommon()
	if !c.IsSigned() {
		return ErrNotSigned
	}
	pub, err := hex.DecodeString(c.SigningPubKey)
	if err != nil {
		return fmt.Errorf("%w: %v", secp256k1.ErrInvalidPublicKey, err)
	}
	if crypto.CalcAccountID(pub) != c.Account {
		return ErrSignerMismatch
	}
	sig, err := hex.DecodeString(c.TxnSignature)
	if err != nil {
		return fmt.Errorf("%w: %v", secp256k1.ErrInvalidSignature, err)
	}
	digest, err := SigningHash(tx)
	if err != nil {
		return err
	}
	return secp256k1.Verify(pub, digest, sig)
}

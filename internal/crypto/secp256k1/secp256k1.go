// Package secp256k1 signs and verifies transaction digests with secp256k1
// keys. Keys are derived deterministically from a passphrase so that test
// accounts and operator wallets can be recreated from a single secret.
package secp256k1

import (
	"encoding/binary"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/ecdsa"

	"github.com/LeJamon/goAuctiond/internal/crypto"
	common "github.com/LeJamon/goAuctiond/internal/crypto/common"
)

var (
	ErrInvalidPrivateKey = errors.New("invalid private key format")
	ErrInvalidPublicKey  = errors.New("invalid public key format")
	ErrInvalidSignature  = errors.New("invalid signature format")
)

// KeyPair is a secp256k1 private key with its compressed public key.
type KeyPair struct {
	priv *btcec.PrivateKey
	pub  *btcec.PublicKey
}

// DeriveKeyPair derives a key pair from secret bytes. The scalar is
// Sha512Half(secret || counter) for the first counter that yields a valid
// key in [1, N).
func DeriveKeyPair(secret []byte) (*KeyPair, error) {
	if len(secret) == 0 {
		return nil, ErrInvalidPrivateKey
	}
	var counter [4]byte
	for i := uint32(0); i < 1<<16; i++ {
		binary.BigEndian.PutUint32(counter[:], i)
		candidate := common.Sha512Half(secret, counter[:])

		var scalar btcec.ModNScalar
		if overflow := scalar.SetByteSlice(candidate[:]); overflow || scalar.IsZero() {
			continue
		}
		priv, pub := btcec.PrivKeyFromBytes(candidate[:])
		return &KeyPair{priv: priv, pub: pub}, nil
	}
	return nil, ErrInvalidPrivateKey
}

// KeyPairFromPassphrase derives a key pair from a human readable passphrase.
func KeyPairFromPassphrase(passphrase string) (*KeyPair, error) {
	return DeriveKeyPair([]byte(passphrase))
}

// KeyPairFromHex parses a 32 byte private key in hex.
func KeyPairFromHex(privateKeyHex string) (*KeyPair, error) {
	raw, err := hex.DecodeString(privateKeyHex)
	if err != nil || len(raw) != 32 {
		return nil, ErrInvalidPrivateKey
	}
	priv, pub := btcec.PrivKeyFromBytes(raw)
	return &KeyPair{priv: priv, pub: pub}, nil
}

// PublicKey returns the 33 byte compressed public key.
func (k *KeyPair) PublicKey() []byte {
	return k.pub.SerializeCompressed()
}

// PublicKeyHex returns the compressed public key as upper case hex.
func (k *KeyPair) PublicKeyHex() string {
	return strings.ToUpper(hex.EncodeToString(k.PublicKey()))
}

// PrivateKeyHex returns the private scalar as upper case hex.
func (k *KeyPair) PrivateKeyHex() string {
	return strings.ToUpper(hex.EncodeToString(k.priv.Serialize()))
}

// AccountID returns RIPEMD160(SHA256(pubkey)).
func (k *KeyPair) AccountID() [crypto.AccountIDSize]byte {
	return crypto.CalcAccountID(k.PublicKey())
}

// Sign signs a 32 byte digest and returns the DER signature.
func (k *KeyPair) Sign(digest [32]byte) []byte {
	return ecdsa.Sign(k.priv, digest[:]).Serialize()
}

// Verify checks a DER signature over digest against a compressed public key.
func Verify(publicKey []byte, digest [32]byte, signature []byte) error {
	pub, err := btcec.ParsePubKey(publicKey)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidPublicKey, err)
	}
	sig, err := ecdsa.ParseDERSignature(signature)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidSignature, err)
	}
	if !sig.Verify(digest[:], pub) {
		return ErrInvalidSignature
	}
	return nil
}

// Package identity derives ledger account identities from secp256k1 keys.
package identity

import (
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/btcutil/base58"

	"github.com/goodnatureofminers/fiatramps-backend/internal/model"
)

// Version is the base58check version byte of ledger identities.
const Version byte = 0x2a

const hashLength = 20

// ErrInvalidIdentity is returned when a string is not a ledger identity.
var ErrInvalidIdentity = errors.New("invalid ledger identity")

// Keypair is a freshly generated identity with its signing key.
type Keypair struct {
	Account    model.AccountID
	PrivateKey *btcec.PrivateKey
}

// PrivateKeyHex renders the private key for operator output.
func (k Keypair) PrivateKeyHex() string {
	return hex.EncodeToString(k.PrivateKey.Serialize())
}

// KeyProvider synthesizes identities from random secp256k1 keypairs.
type KeyProvider struct{}

// NewKeyProvider returns a KeyProvider.
func NewKeyProvider() *KeyProvider {
	return &KeyProvider{}
}

// Generate creates a keypair and derives its account.
func (p *KeyProvider) Generate() (Keypair, error) {
	priv, err := btcec.NewPrivateKey()
	if err != nil {
		return Keypair{}, fmt.Errorf("generate private key: %w", err)
	}
	return Keypair{
		Account:    FromPublicKey(priv.PubKey()),
		PrivateKey: priv,
	}, nil
}

// New returns a fresh account identity, discarding the key.
func (p *KeyProvider) New() (model.AccountID, error) {
	kp, err := p.Generate()
	if err != nil {
		return "", err
	}
	return kp.Account, nil
}

// FromPublicKey derives the account identity of pub.
func FromPublicKey(pub *btcec.PublicKey) model.AccountID {
	return encode(btcutil.Hash160(pub.SerializeCompressed()))
}

// SystemAccount derives a deterministic keyless account from seed, used for escrow.
func SystemAccount(seed string) model.AccountID {
	return encode(btcutil.Hash160([]byte(seed)))
}

// Decode validates s as a ledger identity.
func Decode(s string) (model.AccountID, error) {
	payload, version, err := base58.CheckDecode(s)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidIdentity, err)
	}
	if version != Version {
		return "", fmt.Errorf("%w: unexpected version %#x", ErrInvalidIdentity, version)
	}
	if len(payload) != hashLength {
		return "", fmt.Errorf("%w: payload length %d", ErrInvalidIdentity, len(payload))
	}
	return model.AccountID(s), nil
}

func encode(hash []byte) model.AccountID {
	return model.AccountID(base58.CheckEncode(hash, Version))
}

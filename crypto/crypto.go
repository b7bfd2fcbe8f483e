// Package crypto signature schemes used by covenant predicates
//
// Keys and signatures are opaque byte strings, they are only ever
// interpreted by the Scheme that verifies them.
package crypto

import (
	"bytes"
	"encoding/hex"

	"github.com/Laisky/errors/v2"
)

// PublicKey opaque fixed-length public key
type PublicKey []byte

// String hex encoded key
func (k PublicKey) String() string {
	return hex.EncodeToString(k)
}

// Equal whether two keys are byte-identical
func (k PublicKey) Equal(other PublicKey) bool {
	return bytes.Equal(k, other)
}

// Clone copy key
func (k PublicKey) Clone() PublicKey {
	if k == nil {
		return nil
	}

	return append(PublicKey{}, k...)
}

// MarshalText encode key as hex
func (k PublicKey) MarshalText() ([]byte, error) {
	return []byte(hex.EncodeToString(k)), nil
}

// UnmarshalText decode hex key
func (k *PublicKey) UnmarshalText(text []byte) error {
	b, err := hex.DecodeString(string(text))
	if err != nil {
		return errors.Wrap(err, "decode public key")
	}

	*k = b
	return nil
}

// Signature opaque signature, bound to one message and one key at verification time
type Signature []byte

// String hex encoded signature
func (s Signature) String() string {
	return hex.EncodeToString(s)
}

// MarshalText encode signature as hex
func (s Signature) MarshalText() ([]byte, error) {
	return []byte(hex.EncodeToString(s)), nil
}

// UnmarshalText decode hex signature
func (s *Signature) UnmarshalText(text []byte) error {
	b, err := hex.DecodeString(string(text))
	if err != nil {
		return errors.Wrap(err, "decode signature")
	}

	*s = b
	return nil
}

// SchemeName name of signature scheme
type SchemeName string

func (n SchemeName) String() string {
	return string(n)
}

const (
	// SchemeSecp256k1Schnorr EC-Schnorr-DCRv0 over secp256k1, 33 bytes compressed keys
	SchemeSecp256k1Schnorr SchemeName = "secp256k1-schnorr"
	// SchemeEd25519Schnorr schnorr over edwards25519
	SchemeEd25519Schnorr SchemeName = "ed25519-schnorr"
)

// Scheme verify signatures of one algorithm
type Scheme interface {
	// Name of scheme
	Name() SchemeName
	// PublicKeySize fixed length of public keys
	PublicKeySize() int
	// MessageSize fixed length of signed messages, 0 if any length is accepted
	MessageSize() int
	// Verify whether sig is a valid signature of msg by pubkey,
	// any malformed input is reported as false
	Verify(pubkey PublicKey, msg []byte, sig Signature) bool
}

// Signer produce signatures
type Signer interface {
	PublicKey() PublicKey
	Sign(msg []byte) (Signature, error)
}

// SchemeByName get scheme by name
func SchemeByName(name SchemeName) (Scheme, error) {
	switch name {
	case SchemeSecp256k1Schnorr, "":
		return Secp256k1Schnorr, nil
	case SchemeEd25519Schnorr:
		return Ed25519Schnorr, nil
	default:
		return nil, errors.Errorf("unknown signature scheme %q", name)
	}
}

// CheckPublicKey check key length against scheme
func CheckPublicKey(scheme Scheme, pubkey PublicKey) error {
	if len(pubkey) != scheme.PublicKeySize() {
		return errors.Errorf("%s public key must be %d bytes, got %d",
			scheme.Name(), scheme.PublicKeySize(), len(pubkey))
	}

	return nil
}

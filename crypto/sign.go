package crypto

import (
	"github.com/Laisky/errors/v2"
	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/decred/dcrd/dcrec/secp256k1/v4/schnorr"
	"go.dedis.ch/kyber/v3"
	"go.dedis.ch/kyber/v3/group/edwards25519"
	kschnorr "go.dedis.ch/kyber/v3/sign/schnorr"
	dediskey "go.dedis.ch/kyber/v3/util/key"
)

// MessageSize secp256k1 schnorr only signs 32 bytes digests
const MessageSize = 32

var (
	// Secp256k1Schnorr decred schnorr signatures over secp256k1
	Secp256k1Schnorr Scheme = secp256k1Schnorr{}
	// Ed25519Schnorr kyber schnorr signatures over edwards25519
	Ed25519Schnorr Scheme = ed25519Schnorr{
		suite: edwards25519.NewBlakeSHA256Ed25519(),
	}
)

type secp256k1Schnorr struct{}

func (secp256k1Schnorr) Name() SchemeName {
	return SchemeSecp256k1Schnorr
}

func (secp256k1Schnorr) PublicKeySize() int {
	return secp256k1.PubKeyBytesLenCompressed
}

func (secp256k1Schnorr) MessageSize() int {
	return MessageSize
}

func (s secp256k1Schnorr) Verify(pubkey PublicKey, msg []byte, sig Signature) bool {
	if len(pubkey) != s.PublicKeySize() || len(msg) != MessageSize {
		return false
	}

	pub, err := secp256k1.ParsePubKey(pubkey)
	if err != nil {
		return false
	}

	parsed, err := schnorr.ParseSignature(sig)
	if err != nil {
		return false
	}

	return parsed.Verify(msg, pub)
}

// Secp256k1Signer sign by secp256k1 private key
type Secp256k1Signer struct {
	prikey *secp256k1.PrivateKey
}

// NewSecp256k1Signer new signer from 32 bytes private key
func NewSecp256k1Signer(prikey []byte) (*Secp256k1Signer, error) {
	if len(prikey) != secp256k1.PrivKeyBytesLen {
		return nil, errors.Errorf("private key must be %d bytes, got %d",
			secp256k1.PrivKeyBytesLen, len(prikey))
	}

	return &Secp256k1Signer{prikey: secp256k1.PrivKeyFromBytes(prikey)}, nil
}

// GenerateSecp256k1Signer new signer with random private key
func GenerateSecp256k1Signer() (*Secp256k1Signer, error) {
	prikey, err := secp256k1.GeneratePrivateKey()
	if err != nil {
		return nil, errors.Wrap(err, "generate secp256k1 private key")
	}

	return &Secp256k1Signer{prikey: prikey}, nil
}

// PublicKey compressed public key
func (s *Secp256k1Signer) PublicKey() PublicKey {
	return s.prikey.PubKey().SerializeCompressed()
}

// Sign sign 32 bytes digest
func (s *Secp256k1Signer) Sign(msg []byte) (Signature, error) {
	if len(msg) != MessageSize {
		return nil, errors.Errorf("message must be %d bytes digest, got %d", MessageSize, len(msg))
	}

	sig, err := schnorr.Sign(s.prikey, msg)
	if err != nil {
		return nil, errors.Wrap(err, "schnorr sign")
	}

	return sig.Serialize(), nil
}

type ed25519Schnorr struct {
	suite *edwards25519.SuiteEd25519
}

func (ed25519Schnorr) Name() SchemeName {
	return SchemeEd25519Schnorr
}

func (s ed25519Schnorr) PublicKeySize() int {
	return s.suite.PointLen()
}

func (ed25519Schnorr) MessageSize() int {
	return 0
}

func (s ed25519Schnorr) Verify(pubkey PublicKey, msg []byte, sig Signature) bool {
	if len(pubkey) != s.PublicKeySize() {
		return false
	}

	pub := s.suite.Point()
	if err := pub.UnmarshalBinary(pubkey); err != nil {
		return false
	}

	return kschnorr.Verify(s.suite, pub, msg, sig) == nil
}

// Ed25519Signer sign by kyber schnorr over edwards25519
type Ed25519Signer struct {
	suite  *edwards25519.SuiteEd25519
	prikey kyber.Scalar
	pubkey kyber.Point
}

// GenerateEd25519Signer new signer with random key pair
func GenerateEd25519Signer() (*Ed25519Signer, error) {
	suite := edwards25519.NewBlakeSHA256Ed25519()
	pair := dediskey.NewKeyPair(suite)
	return &Ed25519Signer{
		suite:  suite,
		prikey: pair.Private,
		pubkey: pair.Public,
	}, nil
}

// PublicKey marshaled point
func (s *Ed25519Signer) PublicKey() PublicKey {
	b, err := s.pubkey.MarshalBinary()
	if err != nil {
		// edwards25519 points always marshal
		panic(err)
	}

	return b
}

// Sign sign message
func (s *Ed25519Signer) Sign(msg []byte) (Signature, error) {
	sig, err := kschnorr.Sign(s.suite, s.prikey, msg)
	if err != nil {
		return nil, errors.Wrap(err, "schnorr sign")
	}

	return sig, nil
}

package recovery

import (
	"bytes"
	"encoding/binary"

	"github.com/Laisky/errors/v2"
	"github.com/Laisky/zap"
	"github.com/decred/dcrd/chaincfg/chainhash"

	gcovenant "github.com/Laisky/go-covenant"
	"github.com/Laisky/go-covenant/commitment"
	gcrypto "github.com/Laisky/go-covenant/crypto"
	"github.com/Laisky/go-covenant/crypto/threshold"
	"github.com/Laisky/go-covenant/log"
)

// CodeID identifies this covenant program in locking scripts
var CodeID = []byte("social-recovery/v1")

const rotationTag = "social-recovery/rotate"

// ExecutionContext what the spending transaction exposes to one contract instance
//
// scoped to this instance only: its own input coin and the digest over
// the outputs it cares about. Never mutated by the predicates.
type ExecutionContext struct {
	// CoinValue value of the input being spent
	CoinValue uint64
	// SigHash transaction digest signed for this input
	SigHash []byte
	// DeclaredOutputCommitment digest over the outputs in this instance's scope
	DeclaredOutputCommitment chainhash.Hash
}

func (ctx ExecutionContext) validate(scheme gcrypto.Scheme) error {
	if len(ctx.SigHash) == 0 {
		return errors.Wrap(gcovenant.ErrPreconditionViolation, "empty sighash")
	}
	if size := scheme.MessageSize(); size != 0 && len(ctx.SigHash) != size {
		return errors.Wrapf(gcovenant.ErrPreconditionViolation,
			"%s sighash must be %d bytes, got %d", scheme.Name(), size, len(ctx.SigHash))
	}

	return nil
}

// RotationRequest arguments of RotateKey
type RotationRequest struct {
	NewSigningPubKey gcrypto.PublicKey
	// GuardianSigs exactly GuardianThreshold signatures over RotationDigest,
	// in the same relative order as their guardians
	GuardianSigs []gcrypto.Signature
	// SuccessorValue value of the continuing output
	SuccessorValue uint64
}

// Contract one generation of a social recovery covenant
type Contract struct {
	scheme     gcrypto.Scheme
	guardians  GuardianSet
	verifier   *threshold.Verifier
	policy     commitment.LockingPolicy
	state      commitment.ContractState
	value      uint64
	generation uint64
	logger     log.Logger
}

// Option contract option
type Option func(*Contract) error

// WithLogger set logger
func WithLogger(logger log.Logger) Option {
	return func(c *Contract) error {
		if logger == nil {
			return errors.New("logger should not be nil")
		}

		c.logger = logger
		return nil
	}
}

// WithHashType set digest used by commitments and rotation messages
func WithHashType(hashType gcovenant.HashType) Option {
	return func(c *Contract) error {
		c.policy.HashType = hashType
		return nil
	}
}

// WithSigCache verify signatures through cache
func WithSigCache(cache *gcrypto.SigCache) Option {
	return func(c *Contract) error {
		if cache == nil {
			return errors.New("cache should not be nil")
		}

		c.scheme = cache.Wrap(c.scheme)
		return nil
	}
}

// WithGeneration restore a contract at a later generation
func WithGeneration(generation uint64) Option {
	return func(c *Contract) error {
		c.generation = generation
		return nil
	}
}

// New create contract locking value under signingKey, guarded by guardians
func New(scheme gcrypto.Scheme,
	signingKey gcrypto.PublicKey,
	guardians []gcrypto.PublicKey,
	value uint64,
	opts ...Option) (*Contract, error) {
	if scheme == nil {
		return nil, errors.Wrap(gcovenant.ErrPreconditionViolation, "scheme should not be nil")
	}

	gs, err := NewGuardianSet(scheme, guardians)
	if err != nil {
		return nil, errors.Wrap(err, "guardian set")
	}

	if err = gcrypto.CheckPublicKey(scheme, signingKey); err != nil {
		return nil, errors.Wrapf(gcovenant.ErrPreconditionViolation, "signing key: %v", err)
	}

	c := &Contract{
		scheme:    scheme,
		guardians: gs,
		policy: commitment.LockingPolicy{
			CodeID:         CodeID,
			GuardianDigest: gs.Digest(),
			Threshold:      GuardianThreshold,
			HashType:       gcovenant.HashTypeSha256,
		},
		state:  commitment.ContractState{SigningPubKey: signingKey.Clone()},
		value:  value,
		logger: log.Shared.Named("recovery"),
	}
	for _, optf := range opts {
		if err = optf(c); err != nil {
			return nil, errors.Wrap(err, "apply option")
		}
	}

	if c.policy.HashType == "" {
		c.policy.HashType = gcovenant.HashTypeSha256
	}
	if err = c.policy.Validate(); err != nil {
		return nil, errors.Wrap(err, "locking policy")
	}

	if c.verifier, err = threshold.NewVerifier(c.scheme, gs.Keys(), GuardianThreshold); err != nil {
		return nil, errors.Wrap(err, "new threshold verifier")
	}

	return c, nil
}

// State current state
func (c *Contract) State() commitment.ContractState {
	return c.state.Clone()
}

// Value value locked by this generation
func (c *Contract) Value() uint64 {
	return c.value
}

// Generation number of rotations since creation
func (c *Contract) Generation() uint64 {
	return c.generation
}

// Guardians guardian set
func (c *Contract) Guardians() GuardianSet {
	return c.guardians
}

// Policy locking policy shared by every generation
func (c *Contract) Policy() commitment.LockingPolicy {
	return c.policy
}

// Scheme signature scheme
func (c *Contract) Scheme() gcrypto.Scheme {
	return c.scheme
}

// Unlock spend the coin with a signature of the current signing key over ctx.SigHash
//
// a nil error accepts the spend, the contract ends with it.
func (c *Contract) Unlock(ctx ExecutionContext, sig gcrypto.Signature) error {
	if err := c.unlock(ctx, sig); err != nil {
		c.logger.Debug("reject unlock",
			zap.Uint64("generation", c.generation),
			zap.Error(err))
		return err
	}

	c.logger.Debug("accept unlock", zap.Uint64("generation", c.generation))
	return nil
}

func (c *Contract) unlock(ctx ExecutionContext, sig gcrypto.Signature) error {
	if err := ctx.validate(c.scheme); err != nil {
		return err
	}

	if !c.scheme.Verify(c.state.SigningPubKey, ctx.SigHash, sig) {
		return errors.Wrap(gcovenant.ErrAuthorizationFailure, "signature check failed")
	}

	return nil
}

// RotationDigest message guardians sign to move the coin under newKey
func (c *Contract) RotationDigest(sigHash []byte, newKey gcrypto.PublicKey) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(rotationTag)
	for _, field := range [][]byte{sigHash, newKey} {
		var n [4]byte
		binary.LittleEndian.PutUint32(n[:], uint32(len(field)))
		buf.Write(n[:])
		buf.Write(field)
	}

	digest, err := gcovenant.DoubleHash(c.policy.HashType, &buf)
	if err != nil {
		return nil, errors.Wrap(err, "hash rotation message")
	}

	return digest, nil
}

// ExpectedCommitment commitment a rotation to newKey must declare for coinValue
func (c *Contract) ExpectedCommitment(coinValue uint64, newKey gcrypto.PublicKey) (chainhash.Hash, error) {
	return c.policy.Commit(coinValue, commitment.ContractState{SigningPubKey: newKey})
}

// RotateKey move the coin to a new generation locked under req.NewSigningPubKey
//
// checks run in order and stop at the first failure:
//  1. GuardianThreshold guardians signed RotationDigest
//  2. ctx.CoinValue == Value() == req.SuccessorValue
//  3. ctx.DeclaredOutputCommitment commits to exactly (ctx.CoinValue, new state)
//
// on success returns the successor, the receiver is never modified.
func (c *Contract) RotateKey(ctx ExecutionContext, req RotationRequest) (*Contract, error) {
	successor, err := c.rotateKey(ctx, req)
	if err != nil {
		c.logger.Debug("reject key rotation",
			zap.Uint64("generation", c.generation),
			zap.Error(err))
		return nil, err
	}

	c.logger.Debug("accept key rotation",
		zap.Uint64("generation", successor.generation),
		zap.String("signing_pubkey", successor.state.SigningPubKey.String()))
	return successor, nil
}

func (c *Contract) rotateKey(ctx ExecutionContext, req RotationRequest) (*Contract, error) {
	if err := ctx.validate(c.scheme); err != nil {
		return nil, err
	}

	if err := gcrypto.CheckPublicKey(c.scheme, req.NewSigningPubKey); err != nil {
		return nil, errors.Wrapf(gcovenant.ErrPreconditionViolation, "new signing key: %v", err)
	}

	msg, err := c.RotationDigest(ctx.SigHash, req.NewSigningPubKey)
	if err != nil {
		return nil, err
	}

	if _, err = c.verifier.VerifyDetailed(msg, req.GuardianSigs); err != nil {
		return nil, errors.Wrap(err, "guardian threshold not reached")
	}

	if ctx.CoinValue != c.value {
		return nil, errors.Wrapf(gcovenant.ErrConservationViolation,
			"input value %d, contract locks %d", ctx.CoinValue, c.value)
	}
	if ctx.CoinValue != req.SuccessorValue {
		return nil, errors.Wrapf(gcovenant.ErrConservationViolation,
			"input value %d, successor value %d", ctx.CoinValue, req.SuccessorValue)
	}

	next := commitment.ContractState{SigningPubKey: req.NewSigningPubKey.Clone()}
	if !c.policy.VerifyCommitment(ctx.DeclaredOutputCommitment, ctx.CoinValue, next) {
		return nil, errors.Wrap(gcovenant.ErrCommitmentMismatch, "declared output commitment mismatch")
	}

	successor := *c
	successor.state = next
	successor.value = ctx.CoinValue
	successor.generation = c.generation + 1
	return &successor, nil
}

package recovery

import (
	"github.com/Laisky/errors/v2"
	"github.com/decred/dcrd/chaincfg/chainhash"

	gcovenant "github.com/Laisky/go-covenant"
	gcrypto "github.com/Laisky/go-covenant/crypto"
)

const (
	// NGuardians size of every guardian set
	NGuardians = 5
	// GuardianThreshold guardian signatures required to rotate the signing key
	GuardianThreshold = 3
)

// GuardianSet ordered, fixed-size set of guardian keys
type GuardianSet struct {
	keys [NGuardians]gcrypto.PublicKey
}

// NewGuardianSet validate keys once, length and key sizes are never rechecked
//
// duplicated keys are rejected, one guardian must never count twice.
func NewGuardianSet(scheme gcrypto.Scheme, keys []gcrypto.PublicKey) (GuardianSet, error) {
	var gs GuardianSet
	if len(keys) != NGuardians {
		return gs, errors.Wrapf(gcovenant.ErrPreconditionViolation,
			"need %d guardians, got %d", NGuardians, len(keys))
	}

	for i, k := range keys {
		if err := gcrypto.CheckPublicKey(scheme, k); err != nil {
			return gs, errors.Wrapf(gcovenant.ErrPreconditionViolation, "guardian %d: %v", i, err)
		}

		for j := 0; j < i; j++ {
			if gs.keys[j].Equal(k) {
				return gs, errors.Wrapf(gcovenant.ErrPreconditionViolation,
					"guardian %d duplicates guardian %d", i, j)
			}
		}

		gs.keys[i] = k.Clone()
	}

	return gs, nil
}

// Keys copy of guardian keys in order
func (g GuardianSet) Keys() []gcrypto.PublicKey {
	keys := make([]gcrypto.PublicKey, 0, NGuardians)
	for _, k := range g.keys {
		keys = append(keys, k.Clone())
	}

	return keys
}

// Digest commits to the guardians and their order
func (g GuardianSet) Digest() chainhash.Hash {
	var buf []byte
	for _, k := range g.keys {
		buf = append(buf, byte(len(k)))
		buf = append(buf, k...)
	}

	return chainhash.HashH(buf)
}

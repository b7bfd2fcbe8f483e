package threshold

import (
	"github.com/Laisky/errors/v2"

	gcovenant "github.com/Laisky/go-covenant"
	gcrypto "github.com/Laisky/go-covenant/crypto"
)

// Verifier check T-of-N signatures
//
// immutable after construction, safe for concurrent use.
type Verifier struct {
	scheme    gcrypto.Scheme
	keys      []gcrypto.PublicKey
	threshold int
}

// NewVerifier new verifier requiring threshold of keys
func NewVerifier(scheme gcrypto.Scheme, keys []gcrypto.PublicKey, threshold int) (*Verifier, error) {
	switch {
	case scheme == nil:
		return nil, errors.Wrap(gcovenant.ErrPreconditionViolation, "scheme should not be nil")
	case len(keys) == 0:
		return nil, errors.Wrap(gcovenant.ErrPreconditionViolation, "keys should not be empty")
	case threshold < 1 || threshold > len(keys):
		return nil, errors.Wrapf(gcovenant.ErrPreconditionViolation,
			"threshold should be in [1, %d], got %d", len(keys), threshold)
	}

	v := &Verifier{
		scheme:    scheme,
		threshold: threshold,
	}
	for i, k := range keys {
		if err := gcrypto.CheckPublicKey(scheme, k); err != nil {
			return nil, errors.Wrapf(gcovenant.ErrPreconditionViolation, "keys[%d]: %v", i, err)
		}

		v.keys = append(v.keys, k.Clone())
	}

	return v, nil
}

// Threshold number of signatures required
func (v *Verifier) Threshold() int {
	return v.threshold
}

// Total number of keys
func (v *Verifier) Total() int {
	return len(v.keys)
}

// Verify whether sigs authorize msg
func (v *Verifier) Verify(msg []byte, sigs []gcrypto.Signature) bool {
	_, err := v.VerifyDetailed(msg, sigs)
	return err == nil
}

// VerifyDetailed check sigs and return the indexes of the keys they matched
//
// returns ErrPreconditionViolation if len(sigs) != threshold,
// ErrAuthorizationFailure if any signature matches no remaining key.
func (v *Verifier) VerifyDetailed(msg []byte, sigs []gcrypto.Signature) (matched []int, err error) {
	if len(sigs) != v.threshold {
		return nil, errors.Wrapf(gcovenant.ErrPreconditionViolation,
			"need exactly %d signatures, got %d", v.threshold, len(sigs))
	}

	next := 0
	for i, sig := range sigs {
		found := false
		// remaining keys must still be able to cover the remaining signatures
		for ; len(v.keys)-next >= len(sigs)-i; next++ {
			if v.scheme.Verify(v.keys[next], msg, sig) {
				matched = append(matched, next)
				next++
				found = true
				break
			}
		}

		if !found {
			return matched, errors.Wrapf(gcovenant.ErrAuthorizationFailure,
				"signature %d matches no remaining key", i)
		}
	}

	return matched, nil
}

// Verify whether at least threshold of keys signed msg, see Verifier.Verify
func Verify(scheme gcrypto.Scheme, msg []byte, sigs []gcrypto.Signature,
	keys []gcrypto.PublicKey, threshold int) bool {
	v, err := NewVerifier(scheme, keys, threshold)
	if err != nil {
		return false
	}

	return v.Verify(msg, sigs)
}

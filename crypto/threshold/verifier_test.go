package threshold

import (
	"crypto/sha256"
	"testing"

	"github.com/stretchr/testify/require"

	gcovenant "github.com/Laisky/go-covenant"
	gcrypto "github.com/Laisky/go-covenant/crypto"
)

const (
	testTotal     = 5
	testThreshold = 3
)

func newTestGuardians(t *testing.T) ([]*gcrypto.Secp256k1Signer, []gcrypto.PublicKey) {
	t.Helper()

	var (
		signers []*gcrypto.Secp256k1Signer
		keys    []gcrypto.PublicKey
	)
	for i := 0; i < testTotal; i++ {
		s, err := gcrypto.GenerateSecp256k1Signer()
		require.NoError(t, err)
		signers = append(signers, s)
		keys = append(keys, s.PublicKey())
	}

	return signers, keys
}

func signBy(t *testing.T, signers []*gcrypto.Secp256k1Signer, msg []byte, idx ...int) []gcrypto.Signature {
	t.Helper()

	var sigs []gcrypto.Signature
	for _, i := range idx {
		sig, err := signers[i].Sign(msg)
		require.NoError(t, err)
		sigs = append(sigs, sig)
	}

	return sigs
}

func TestNewVerifier(t *testing.T) {
	t.Parallel()

	_, keys := newTestGuardians(t)

	_, err := NewVerifier(nil, keys, testThreshold)
	require.ErrorIs(t, err, gcovenant.ErrPreconditionViolation)
	_, err = NewVerifier(gcrypto.Secp256k1Schnorr, nil, testThreshold)
	require.ErrorIs(t, err, gcovenant.ErrPreconditionViolation)
	_, err = NewVerifier(gcrypto.Secp256k1Schnorr, keys, 0)
	require.ErrorIs(t, err, gcovenant.ErrPreconditionViolation)
	_, err = NewVerifier(gcrypto.Secp256k1Schnorr, keys, testTotal+1)
	require.ErrorIs(t, err, gcovenant.ErrPreconditionViolation)

	badKeys := append([]gcrypto.PublicKey{}, keys...)
	badKeys[2] = badKeys[2][:10]
	_, err = NewVerifier(gcrypto.Secp256k1Schnorr, badKeys, testThreshold)
	require.ErrorIs(t, err, gcovenant.ErrPreconditionViolation)

	v, err := NewVerifier(gcrypto.Secp256k1Schnorr, keys, testThreshold)
	require.NoError(t, err)
	require.Equal(t, testThreshold, v.Threshold())
	require.Equal(t, testTotal, v.Total())

	// verifier owns its keys
	keys[0][1] ^= 0xff
	require.False(t, v.keys[0].Equal(keys[0]))
}

func TestVerifyOrderedSubsets(t *testing.T) {
	t.Parallel()

	signers, keys := newTestGuardians(t)
	msg := sha256.Sum256([]byte("rotate to key B"))
	v, err := NewVerifier(gcrypto.Secp256k1Schnorr, keys, testThreshold)
	require.NoError(t, err)

	for a := 0; a < testTotal; a++ {
		for b := a + 1; b < testTotal; b++ {
			for c := b + 1; c < testTotal; c++ {
				sigs := signBy(t, signers, msg[:], a, b, c)
				matched, err := v.VerifyDetailed(msg[:], sigs)
				require.NoError(t, err, "%d,%d,%d", a, b, c)
				require.Equal(t, []int{a, b, c}, matched)

				require.True(t, Verify(gcrypto.Secp256k1Schnorr, msg[:], sigs, keys, testThreshold))
			}
		}
	}
}

func TestVerifyRejects(t *testing.T) {
	t.Parallel()

	signers, keys := newTestGuardians(t)
	msg := sha256.Sum256([]byte("rotate to key B"))
	other := sha256.Sum256([]byte("rotate to key C"))
	v, err := NewVerifier(gcrypto.Secp256k1Schnorr, keys, testThreshold)
	require.NoError(t, err)

	t.Run("out of order", func(t *testing.T) {
		t.Parallel()
		for _, idx := range [][]int{{2, 1, 3}, {4, 0, 1}, {0, 3, 2}} {
			_, err := v.VerifyDetailed(msg[:], signBy(t, signers, msg[:], idx...))
			require.ErrorIs(t, err, gcovenant.ErrAuthorizationFailure, "%v", idx)
		}
	})

	t.Run("too few", func(t *testing.T) {
		t.Parallel()
		_, err := v.VerifyDetailed(msg[:], signBy(t, signers, msg[:], 0, 1))
		require.ErrorIs(t, err, gcovenant.ErrPreconditionViolation)
		require.False(t, v.Verify(msg[:], nil))
	})

	t.Run("too many", func(t *testing.T) {
		t.Parallel()
		require.False(t, v.Verify(msg[:], signBy(t, signers, msg[:], 0, 1, 2, 3)))
	})

	t.Run("duplicate signer", func(t *testing.T) {
		t.Parallel()
		_, err := v.VerifyDetailed(msg[:], signBy(t, signers, msg[:], 1, 1, 2))
		require.ErrorIs(t, err, gcovenant.ErrAuthorizationFailure)
	})

	t.Run("one bad signature", func(t *testing.T) {
		t.Parallel()
		sigs := signBy(t, signers, msg[:], 0, 1, 2)
		sigs[1] = signBy(t, signers, other[:], 1)[0]
		_, err := v.VerifyDetailed(msg[:], sigs)
		require.ErrorIs(t, err, gcovenant.ErrAuthorizationFailure)
	})

	t.Run("outsider", func(t *testing.T) {
		t.Parallel()
		outsider, err := gcrypto.GenerateSecp256k1Signer()
		require.NoError(t, err)
		sigs := signBy(t, signers, msg[:], 0, 1)
		sig, err := outsider.Sign(msg[:])
		require.NoError(t, err)
		require.False(t, v.Verify(msg[:], append(sigs, sig)))
	})

	t.Run("wrong message", func(t *testing.T) {
		t.Parallel()
		require.False(t, v.Verify(other[:], signBy(t, signers, msg[:], 0, 2, 4)))
	})
}

func TestVerifyInvalidParameters(t *testing.T) {
	t.Parallel()

	signers, keys := newTestGuardians(t)
	msg := sha256.Sum256([]byte("x"))
	sigs := signBy(t, signers, msg[:], 0, 1, 2)
	require.False(t, Verify(gcrypto.Secp256k1Schnorr, msg[:], sigs, keys, 0))
	require.False(t, Verify(gcrypto.Ed25519Schnorr, msg[:], sigs, keys, testThreshold))
}

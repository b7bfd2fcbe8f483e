package recovery

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	gcovenant "github.com/Laisky/go-covenant"
)

func TestVerifyBatch(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	g := newFixture(t)

	rotateCtx, rotateReq := f.rotation(t, f.contract, f.next.PublicKey(), testValue, 0, 1, 2)
	badCtx, badReq := g.rotation(t, g.contract, g.next.PublicKey(), 999, 0, 1, 2)
	unlockSig, err := g.owner.Sign(g.sigHash)
	require.NoError(t, err)

	spends := []Spend{
		{Contract: f.contract, Context: rotateCtx, Rotation: &rotateReq},
		{Contract: g.contract, Context: ExecutionContext{CoinValue: testValue, SigHash: g.sigHash}, UnlockSig: unlockSig},
		{Contract: g.contract, Context: badCtx, Rotation: &badReq},
		{Contract: nil},
		{Contract: f.contract, Context: rotateCtx, Rotation: &rotateReq, UnlockSig: unlockSig},
	}

	results, err := VerifyBatch(context.Background(), spends, 2)
	require.NoError(t, err)
	require.Len(t, results, len(spends))

	require.NoError(t, results[0].Err)
	require.NotNil(t, results[0].Successor)
	require.True(t, results[0].Successor.State().SigningPubKey.Equal(f.next.PublicKey()))

	require.NoError(t, results[1].Err)
	require.Nil(t, results[1].Successor)

	require.ErrorIs(t, results[2].Err, gcovenant.ErrConservationViolation)
	require.Error(t, results[3].Err)
	require.Error(t, results[4].Err)

	err = FirstRejection(results)
	require.ErrorIs(t, err, gcovenant.ErrConservationViolation)
	require.ErrorContains(t, err, "spend 2")

	require.NoError(t, FirstRejection(results[:2]))
}

func TestVerifyBatchCanceled(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	sig, err := f.owner.Sign(f.sigHash)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = VerifyBatch(ctx, []Spend{
		{Contract: f.contract, Context: ExecutionContext{CoinValue: testValue, SigHash: f.sigHash}, UnlockSig: sig},
	}, 0)
	require.ErrorIs(t, err, context.Canceled)
}

package recovery

import (
	"context"

	"github.com/Laisky/errors/v2"
	"golang.org/x/sync/errgroup"

	gcrypto "github.com/Laisky/go-covenant/crypto"
)

// Spend one contract instance consumed by a composite transaction
//
// exactly one of UnlockSig and Rotation should be set.
type Spend struct {
	Contract  *Contract
	Context   ExecutionContext
	UnlockSig gcrypto.Signature
	Rotation  *RotationRequest
}

// SpendResult verdict of one Spend
type SpendResult struct {
	// Successor next generation, only set by an accepted rotation
	Successor *Contract
	// Err nil means accepted
	Err error
}

// Verify run the predicate selected by the spend
func (s Spend) Verify() SpendResult {
	switch {
	case s.Contract == nil:
		return SpendResult{Err: errors.New("contract should not be nil")}
	case s.Rotation != nil && s.UnlockSig != nil:
		return SpendResult{Err: errors.New("spend should either unlock or rotate")}
	case s.Rotation != nil:
		successor, err := s.Contract.RotateKey(s.Context, *s.Rotation)
		return SpendResult{Successor: successor, Err: err}
	default:
		return SpendResult{Err: s.Contract.Unlock(s.Context, s.UnlockSig)}
	}
}

// VerifyBatch verify independent instances concurrently
//
// every instance only sees its own scoped ExecutionContext, so there is no
// ordering between them. results keep the order of spends. The returned
// error is only set if ctx is done before every spend was verified.
func VerifyBatch(ctx context.Context, spends []Spend, workers int) ([]SpendResult, error) {
	results := make([]SpendResult, len(spends))
	pool, gctx := errgroup.WithContext(ctx)
	if workers > 0 {
		pool.SetLimit(workers)
	}

	for i := range spends {
		i := i
		pool.Go(func() error {
			if err := gctx.Err(); err != nil {
				return errors.Wrapf(err, "spend %d not verified", i)
			}

			results[i] = spends[i].Verify()
			return nil
		})
	}

	if err := pool.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}

// FirstRejection the first rejected spend, a composite transaction is only
// valid if every instance accepts
func FirstRejection(results []SpendResult) error {
	for i, r := range results {
		if r.Err != nil {
			return errors.Wrapf(r.Err, "spend %d", i)
		}
	}

	return nil
}

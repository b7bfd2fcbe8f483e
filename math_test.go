package covenant

import (
	"fmt"
	"math/big"
	"math/rand"
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/require"
)

const testPrime = 1000000007

func naiveModPow(base, exponent, modulus uint64) uint64 {
	if base%modulus == 0 {
		return 0
	}

	res := uint64(1) % modulus
	for i := uint64(0); i < exponent; i++ {
		res = res * (base % modulus) % modulus
	}

	return res
}

func TestModPowVectors(t *testing.T) {
	t.Parallel()

	for _, tc := range []struct {
		x, y, want uint64
	}{
		{2, 3, 8},
		{5, 0, 1},
		{10, 5, 100000},
		{0, 0, 0},
		{0, 17, 0},
		{testPrime, 3, 0},
		{testPrime + 2, 3, 8},
	} {
		got := ModPowUint64(tc.x, tc.y, testPrime)
		require.Equal(t, tc.want, got, "%d^%d", tc.x, tc.y)
	}
}

func TestModPowMatchesNaive(t *testing.T) {
	t.Parallel()

	rnd := rand.New(rand.NewSource(42))
	for i := 0; i < 500; i++ {
		base := uint64(rnd.Int31())
		exponent := uint64(rnd.Intn(300))
		modulus := uint64(rnd.Int31n(1<<31-1)) + 1

		require.Equal(t,
			naiveModPow(base, exponent, modulus),
			ModPowUint64(base, exponent, modulus),
			"%d^%d mod %d", base, exponent, modulus)
	}
}

func TestModPowEdgeCases(t *testing.T) {
	t.Parallel()

	t.Run("zero exponent", func(t *testing.T) {
		t.Parallel()
		for _, m := range []uint64{2, 7, testPrime} {
			for _, x := range []uint64{1, 3, m - 1, m + 1} {
				require.Equal(t, uint64(1), ModPowUint64(x, 0, m))
			}
		}
	})

	t.Run("zero base", func(t *testing.T) {
		t.Parallel()
		for _, m := range []uint64{2, 7, testPrime} {
			for _, y := range []uint64{0, 1, 2, 1 << 40} {
				require.Equal(t, uint64(0), ModPowUint64(0, y, m))
				require.Equal(t, uint64(0), ModPowUint64(m*3, y, m))
			}
		}
	})

	t.Run("modulus one", func(t *testing.T) {
		t.Parallel()
		require.Equal(t, uint64(0), ModPowUint64(5, 3, 1))
		require.Equal(t, uint64(0), ModPowUint64(5, 0, 1))
	})

	t.Run("result in range", func(t *testing.T) {
		t.Parallel()
		rnd := rand.New(rand.NewSource(7))
		for i := 0; i < 200; i++ {
			m := rnd.Uint64()%1000 + 1
			got := ModPowUint64(rnd.Uint64(), rnd.Uint64(), m)
			require.Less(t, got, m)
		}
	})
}

func TestModPowWideOperands(t *testing.T) {
	t.Parallel()

	// widest exponent accepted: 232 bits all set
	exponent := new(uint256.Int).Sub(
		new(uint256.Int).Lsh(uint256.NewInt(1), ModPowRounds),
		uint256.NewInt(1),
	)
	require.Equal(t, ModPowRounds, exponent.BitLen())

	modulus := uint256.MustFromBig(new(big.Int).SetBytes([]byte{
		0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff,
		0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff,
		0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xfe,
		0xff, 0xff, 0xfc, 0x2f,
	}))
	base := uint256.NewInt(0xdeadbeefcafe)

	want := new(big.Int).Exp(base.ToBig(), exponent.ToBig(), modulus.ToBig())
	got := ModPow(base, exponent, modulus)
	require.Equal(t, 0, want.Cmp(got.ToBig()))
}

func TestModPowPreconditions(t *testing.T) {
	t.Parallel()

	require.Panics(t, func() {
		ModPowUint64(2, 3, 0)
	})

	tooWide := new(uint256.Int).Lsh(uint256.NewInt(1), ModPowRounds)
	require.Panics(t, func() {
		ModPow(uint256.NewInt(2), tooWide, uint256.NewInt(testPrime))
	})

	require.Panics(t, func() {
		ModPow(nil, uint256.NewInt(1), uint256.NewInt(testPrime))
	})
}

func TestModExp(t *testing.T) {
	t.Parallel()

	_, err := NewModExp(uint256.NewInt(0))
	require.ErrorIs(t, err, ErrPreconditionViolation)

	me, err := NewModExp(uint256.NewInt(testPrime))
	require.NoError(t, err)
	require.Equal(t, uint64(testPrime), me.Modulus().Uint64())

	got, err := me.Exp(uint256.NewInt(10), uint256.NewInt(5))
	require.NoError(t, err)
	require.Equal(t, uint64(100000), got.Uint64())
	require.Equal(t, naiveModPow(10, 5, testPrime), got.Uint64())

	require.NoError(t, me.Verify(uint256.NewInt(2), uint256.NewInt(3), uint256.NewInt(8)))

	err = me.Verify(uint256.NewInt(2), uint256.NewInt(3), uint256.NewInt(9))
	require.ErrorIs(t, err, ErrAuthorizationFailure)
	require.True(t, IsRejection(err))

	tooWide := new(uint256.Int).Lsh(uint256.NewInt(1), ModPowRounds+1)
	_, err = me.Exp(uint256.NewInt(2), tooWide)
	require.ErrorIs(t, err, ErrPreconditionViolation)
}

func ExampleModPow() {
	got := ModPow(uint256.NewInt(2), uint256.NewInt(3), uint256.NewInt(testPrime))
	fmt.Println(got.Uint64())
	// Output: 8
}

func BenchmarkModPow(b *testing.B) {
	base := uint256.NewInt(0xdeadbeef)
	exponent := uint256.NewInt(65537)
	modulus := uint256.NewInt(testPrime)

	b.Run("uint256", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			ModPow(base, exponent, modulus)
		}
	})
	b.Run("math/big", func(b *testing.B) {
		x, y, m := base.ToBig(), exponent.ToBig(), modulus.ToBig()
		for i := 0; i < b.N; i++ {
			new(big.Int).Exp(x, y, m)
		}
	})
}

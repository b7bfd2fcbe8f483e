package covenant

import (
	"github.com/Laisky/errors/v2"
	"github.com/holiman/uint256"
)

// ModPowRounds number of square-and-multiply rounds ModPow always runs.
//
// Must exceed the bit length of any exponent passed in,
// exponents wider than this are rejected rather than truncated.
const ModPowRounds = 232

// ModPow calculate base^exponent mod modulus
//
// right-to-left square-and-multiply with exactly ModPowRounds rounds,
// running time does not depend on the magnitude of exponent,
// but every round still branches on the low bit of the remaining exponent.
//
// base ≡ 0 (mod modulus) always returns 0, so 0^0 mod m is 0 here.
//
// panic with ErrPreconditionViolation if modulus is zero
// or exponent is wider than ModPowRounds bits.
func ModPow(base, exponent, modulus *uint256.Int) *uint256.Int {
	if err := checkModPowArgs(base, exponent, modulus); err != nil {
		panic(err)
	}

	return modPow(base, exponent, modulus)
}

func checkModPowArgs(base, exponent, modulus *uint256.Int) error {
	switch {
	case base == nil || exponent == nil || modulus == nil:
		return errors.Wrap(ErrPreconditionViolation, "nil operand")
	case modulus.IsZero():
		return errors.Wrap(ErrPreconditionViolation, "modulus must be positive")
	case exponent.BitLen() > ModPowRounds:
		return errors.Wrapf(ErrPreconditionViolation,
			"exponent has %d bits, exceeds %d", exponent.BitLen(), ModPowRounds)
	}

	return nil
}

func modPow(base, exponent, modulus *uint256.Int) *uint256.Int {
	x := new(uint256.Int).Mod(base, modulus)
	if x.IsZero() {
		return new(uint256.Int)
	}

	res := uint256.NewInt(1)
	y := exponent.Clone()
	for i := 0; i < ModPowRounds; i++ {
		if y.Uint64()&1 == 1 {
			res = new(uint256.Int).MulMod(res, x, modulus)
		}

		x = new(uint256.Int).MulMod(x, x, modulus)
		y = new(uint256.Int).Rsh(y, 1)
	}

	return res
}

// ModPowUint64 ModPow on uint64 operands
func ModPowUint64(base, exponent, modulus uint64) uint64 {
	return ModPow(
		uint256.NewInt(base),
		uint256.NewInt(exponent),
		uint256.NewInt(modulus),
	).Uint64()
}

// ModExp modular exponentiation under a fixed public modulus
type ModExp struct {
	modulus *uint256.Int
}

// NewModExp new ModExp with modulus, modulus must be positive
func NewModExp(modulus *uint256.Int) (*ModExp, error) {
	if modulus == nil || modulus.IsZero() {
		return nil, errors.Wrap(ErrPreconditionViolation, "modulus must be positive")
	}

	return &ModExp{modulus: modulus.Clone()}, nil
}

// Modulus return a copy of the modulus
func (m *ModExp) Modulus() *uint256.Int {
	return m.modulus.Clone()
}

// Exp calculate x^y mod M
func (m *ModExp) Exp(x, y *uint256.Int) (*uint256.Int, error) {
	if err := checkModPowArgs(x, y, m.modulus); err != nil {
		return nil, err
	}

	return modPow(x, y, m.modulus), nil
}

// Verify check that z == x^y mod M
func (m *ModExp) Verify(x, y, z *uint256.Int) error {
	got, err := m.Exp(x, y)
	if err != nil {
		return errors.Wrap(err, "calculate x^y")
	}

	if z == nil || !got.Eq(z) {
		return errors.Wrap(ErrAuthorizationFailure, "invalid result")
	}

	return nil
}

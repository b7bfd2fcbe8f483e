// Package covenant verifies spending conditions of locked coins.
//
// The root package carries the primitives shared by every predicate:
// the fixed-round modular exponentiation used by modular-arithmetic
// signature schemes, the digest helpers and the rejection taxonomy.
//
// Subpackages:
//
//   - crypto: signature schemes and the signature verification cache
//   - crypto/threshold: guardian T-of-N signature check
//   - commitment: canonical (value, state) output encoding and its digest
//   - recovery: the social recovery covenant (unlock / rotate key)
//
// Every predicate is pure and synchronous. A rejected spend is reported
// as an error wrapping one of ErrPreconditionViolation, ErrAuthorizationFailure,
// ErrCommitmentMismatch or ErrConservationViolation.
package covenant

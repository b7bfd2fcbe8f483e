// Package threshold T-of-N signature check over a fixed, ordered key set
//
// Unlike a threshold cryptosystem there is no shared secret: every signer
// holds an independent key pair, and a message is authorized once at least
// T of the N designated keys produced a valid signature over it.
//
// Signatures are matched the way a multisig script matches them: each
// signature is tried against the remaining keys in order, and a key that
// was skipped can never be matched later. Callers must therefore supply
// signatures in the same relative order as their keys appear in the set.
package threshold

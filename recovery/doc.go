// Package recovery social recovery covenant
//
// A coin is locked under a signing key and a fixed set of five guardians.
// The owner spends it with a single signature (Unlock). If the signing key
// is lost, any three guardians may move the coin to a new generation of the
// same covenant locked under a new signing key (RotateKey); the value, the
// guardians and the threshold are carried forward unchanged.
//
// Contract values are immutable. RotateKey returns the successor contract
// and leaves its receiver untouched; committing the successor is up to the
// transaction layer.
package recovery

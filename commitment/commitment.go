// Package commitment canonical encoding of a continuing covenant output
//
// A rotation must leave exactly one output that re-locks the same value
// under the new state. The spending transaction exposes a digest over the
// outputs in this covenant's scope, which must equal Commit of that output.
//
// Output layout:
//
//	value          uint64, little endian
//	script version uint16, little endian
//	locking script varbytes
//
// The locking script is the policy descriptor followed by the state:
//
//	<code id> <guardian digest> <threshold> OP_RETURN <state>
package commitment

import (
	"bytes"
	"encoding/binary"

	"github.com/Laisky/errors/v2"
	"github.com/decred/dcrd/chaincfg/chainhash"
	"github.com/decred/dcrd/txscript/v4"
	"github.com/decred/dcrd/wire"

	gcovenant "github.com/Laisky/go-covenant"
)

// ScriptVersion version of the locking script
const ScriptVersion uint16 = 0

// LockingPolicy everything besides the state that locks a covenant output
//
// two outputs with the same value and state but different policies
// never share a commitment.
type LockingPolicy struct {
	// CodeID identifies the covenant program
	CodeID []byte
	// GuardianDigest digest of the immutable guardian set
	GuardianDigest chainhash.Hash
	// Threshold guardian signatures required for rotation
	Threshold int
	// HashType digest applied twice over the serialized output,
	// sha256 if empty
	HashType gcovenant.HashType
}

func (p LockingPolicy) hashType() gcovenant.HashType {
	if p.HashType == "" {
		return gcovenant.HashTypeSha256
	}

	return p.HashType
}

// Validate check policy
func (p LockingPolicy) Validate() error {
	switch {
	case len(p.CodeID) == 0:
		return errors.Wrap(gcovenant.ErrPreconditionViolation, "empty code id")
	case p.Threshold < 1:
		return errors.Wrapf(gcovenant.ErrPreconditionViolation, "invalid threshold %d", p.Threshold)
	}

	return CheckHashType(p.hashType())
}

// CheckHashType whether hashType can produce commitments
func CheckHashType(hashType gcovenant.HashType) error {
	switch hashType {
	case gcovenant.HashTypeSha256, gcovenant.HashTypeBlake256:
		return nil
	default:
		return errors.Wrapf(gcovenant.ErrPreconditionViolation,
			"hash %q cannot produce a %d bytes commitment", hashType, chainhash.HashSize)
	}
}

// LockingScript build locking script carrying state
func (p LockingPolicy) LockingScript(state ContractState) ([]byte, error) {
	stateBlob, err := state.MarshalBinary()
	if err != nil {
		return nil, errors.Wrap(gcovenant.ErrPreconditionViolation, err.Error())
	}

	script, err := txscript.NewScriptBuilder().
		AddData(p.CodeID).
		AddData(p.GuardianDigest[:]).
		AddInt64(int64(p.Threshold)).
		AddOp(txscript.OP_RETURN).
		AddData(stateBlob).
		Script()
	if err != nil {
		return nil, errors.Wrap(err, "build locking script")
	}

	return script, nil
}

// Serialize canonical bytes of the output locking coinValue under state
func (p LockingPolicy) Serialize(coinValue uint64, state ContractState) ([]byte, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	script, err := p.LockingScript(state)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	var head [10]byte
	binary.LittleEndian.PutUint64(head[:8], coinValue)
	binary.LittleEndian.PutUint16(head[8:], ScriptVersion)
	buf.Write(head[:])
	if err = wire.WriteVarBytes(&buf, wire.ProtocolVersion, script); err != nil {
		return nil, errors.Wrap(err, "write locking script")
	}

	return buf.Bytes(), nil
}

// Commit digest of the output locking coinValue under state
func (p LockingPolicy) Commit(coinValue uint64, state ContractState) (chainhash.Hash, error) {
	raw, err := p.Serialize(coinValue, state)
	if err != nil {
		return chainhash.Hash{}, err
	}

	digest, err := gcovenant.DoubleHash(p.hashType(), bytes.NewReader(raw))
	if err != nil {
		return chainhash.Hash{}, errors.Wrap(err, "hash output")
	}

	h, err := chainhash.NewHash(digest)
	if err != nil {
		return chainhash.Hash{}, errors.Wrap(err, "digest size")
	}

	return *h, nil
}

// VerifyCommitment whether expected is exactly the commitment of (coinValue, state)
func (p LockingPolicy) VerifyCommitment(expected chainhash.Hash, coinValue uint64, state ContractState) bool {
	got, err := p.Commit(coinValue, state)
	if err != nil {
		return false
	}

	return got.IsEqual(&expected)
}

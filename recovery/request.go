package recovery

import (
	"encoding/hex"

	"github.com/Laisky/errors/v2"
	"github.com/decred/dcrd/chaincfg/chainhash"
	jsoniter "github.com/json-iterator/go"

	gcovenant "github.com/Laisky/go-covenant"
	gcrypto "github.com/Laisky/go-covenant/crypto"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// HexBytes bytes encoded as hex in json
type HexBytes []byte

// MarshalText encode as hex
func (b HexBytes) MarshalText() ([]byte, error) {
	return []byte(hex.EncodeToString(b)), nil
}

// UnmarshalText decode hex
func (b *HexBytes) UnmarshalText(text []byte) error {
	raw, err := hex.DecodeString(string(text))
	if err != nil {
		return errors.Wrap(err, "decode hex")
	}

	*b = raw
	return nil
}

// ContractSpec persisted description of one contract generation
type ContractSpec struct {
	SigningPubKey gcrypto.PublicKey   `json:"signing_pubkey"`
	Guardians     []gcrypto.PublicKey `json:"guardians"`
	Value         uint64              `json:"value"`
	Generation    uint64              `json:"generation"`
}

// ContextSpec json form of ExecutionContext
type ContextSpec struct {
	CoinValue                uint64   `json:"coin_value"`
	SigHash                  HexBytes `json:"sighash"`
	DeclaredOutputCommitment HexBytes `json:"declared_output_commitment"`
}

// UnlockSpec arguments of Unlock
type UnlockSpec struct {
	Signature gcrypto.Signature `json:"signature"`
}

// RotateSpec arguments of RotateKey
type RotateSpec struct {
	NewSigningPubKey gcrypto.PublicKey   `json:"new_signing_pubkey"`
	GuardianSigs     []gcrypto.Signature `json:"guardian_sigs"`
	SuccessorValue   uint64              `json:"successor_value"`
}

// SpendRequest json document describing one spend
type SpendRequest struct {
	Scheme   gcrypto.SchemeName `json:"scheme,omitempty"`
	HashType gcovenant.HashType `json:"hash,omitempty"`
	Contract ContractSpec       `json:"contract"`
	Context  ContextSpec        `json:"context"`
	Unlock   *UnlockSpec        `json:"unlock,omitempty"`
	Rotate   *RotateSpec        `json:"rotate,omitempty"`
}

// ParseSpendRequest parse json spend request
func ParseSpendRequest(data []byte) (*SpendRequest, error) {
	req := new(SpendRequest)
	if err := json.Unmarshal(data, req); err != nil {
		return nil, errors.Wrap(err, "unmarshal spend request")
	}

	if (req.Unlock == nil) == (req.Rotate == nil) {
		return nil, errors.New("spend request should contain exactly one of unlock or rotate")
	}

	return req, nil
}

// Marshal encode request as json
func (r *SpendRequest) Marshal() ([]byte, error) {
	return json.MarshalIndent(r, "", "  ")
}

// Spend build contract and spend described by the request
func (r *SpendRequest) Spend(opts ...Option) (Spend, error) {
	scheme, err := gcrypto.SchemeByName(r.Scheme)
	if err != nil {
		return Spend{}, err
	}

	if r.HashType != "" {
		opts = append(opts, WithHashType(r.HashType))
	}

	c, err := r.Contract.Contract(scheme, opts...)
	if err != nil {
		return Spend{}, err
	}

	ctx := ExecutionContext{
		CoinValue: r.Context.CoinValue,
		SigHash:   r.Context.SigHash,
	}
	if len(r.Context.DeclaredOutputCommitment) != 0 {
		h, err := chainhash.NewHash(r.Context.DeclaredOutputCommitment)
		if err != nil {
			return Spend{}, errors.Wrap(err, "declared output commitment")
		}
		ctx.DeclaredOutputCommitment = *h
	}

	spend := Spend{Contract: c, Context: ctx}
	switch {
	case r.Unlock != nil:
		spend.UnlockSig = r.Unlock.Signature
	case r.Rotate != nil:
		spend.Rotation = &RotationRequest{
			NewSigningPubKey: r.Rotate.NewSigningPubKey,
			GuardianSigs:     r.Rotate.GuardianSigs,
			SuccessorValue:   r.Rotate.SuccessorValue,
		}
	}

	return spend, nil
}

// Spec describe contract for persistence
func (c *Contract) Spec() ContractSpec {
	return ContractSpec{
		SigningPubKey: c.state.SigningPubKey.Clone(),
		Guardians:     c.guardians.Keys(),
		Value:         c.value,
		Generation:    c.generation,
	}
}

// Contract restore the described contract generation
func (s ContractSpec) Contract(scheme gcrypto.Scheme, opts ...Option) (*Contract, error) {
	opts = append(opts, WithGeneration(s.Generation))
	c, err := New(scheme, s.SigningPubKey, s.Guardians, s.Value, opts...)
	if err != nil {
		return nil, errors.Wrap(err, "new contract")
	}

	return c, nil
}

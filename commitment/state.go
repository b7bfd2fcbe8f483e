package commitment

import (
	"github.com/Laisky/errors/v2"

	gcrypto "github.com/Laisky/go-covenant/crypto"
)

// ContractState the only mutable state of a covenant,
// replaced wholesale on rotation
type ContractState struct {
	SigningPubKey gcrypto.PublicKey `json:"signing_pubkey"`
}

// Equal whether two states are identical
func (s ContractState) Equal(other ContractState) bool {
	return s.SigningPubKey.Equal(other.SigningPubKey)
}

// Clone deep copy
func (s ContractState) Clone() ContractState {
	return ContractState{SigningPubKey: s.SigningPubKey.Clone()}
}

// MarshalBinary persisted layout, the raw signing key
func (s ContractState) MarshalBinary() ([]byte, error) {
	if len(s.SigningPubKey) == 0 {
		return nil, errors.New("empty signing key")
	}

	return s.SigningPubKey.Clone(), nil
}

// UnmarshalBinary parse persisted layout
func (s *ContractState) UnmarshalBinary(data []byte) error {
	if len(data) == 0 {
		return errors.New("empty state blob")
	}

	s.SigningPubKey = append(gcrypto.PublicKey{}, data...)
	return nil
}

// UnmarshalState parse persisted state and check its fixed size
func UnmarshalState(scheme gcrypto.Scheme, data []byte) (ContractState, error) {
	var s ContractState
	if err := gcrypto.CheckPublicKey(scheme, data); err != nil {
		return s, errors.Wrap(err, "state blob")
	}

	err := s.UnmarshalBinary(data)
	return s, err
}

package covenant

import (
	"bytes"
	"crypto/sha256"
	"crypto/sha512"
	"hash"
	"io"

	"github.com/Laisky/errors/v2"
	"github.com/cespare/xxhash"
	"github.com/decred/dcrd/crypto/blake256"
)

// HashTypeInterface hashs
type HashTypeInterface interface {
	String() string
	Hasher() (hash.Hash, error)
}

// HashType hashs
type HashType string

// String name of hash
func (h HashType) String() string {
	return string(h)
}

// Hasher new hasher by hash type
func (h HashType) Hasher() (hash.Hash, error) {
	switch h {
	case HashTypeSha256:
		return sha256.New(), nil
	case HashTypeSha512:
		return sha512.New(), nil
	case HashTypeBlake256:
		return blake256.New(), nil
	case HashTypeXxhash:
		return xxhash.New(), nil
	}

	return nil, errors.Errorf("unknown hasher %q", h.String())
}

// Cryptographic whether the hash is collision resistant,
// only cryptographic hashes may be used in commitments
func (h HashType) Cryptographic() bool {
	switch h {
	case HashTypeSha256, HashTypeSha512, HashTypeBlake256:
		return true
	default:
		return false
	}
}

const (
	// HashTypeSha256 Sha256
	HashTypeSha256 HashType = "sha256"
	// HashTypeSha512 Sha512
	HashTypeSha512 HashType = "sha512"
	// HashTypeBlake256 BLAKE-256, the decred flavour
	HashTypeBlake256 HashType = "blake256"
	// HashTypeXxhash Xxhash, non-cryptographic
	HashTypeXxhash HashType = "xxhash"
)

// Hash generate digest of content by hash
func Hash(hashType HashTypeInterface, content io.Reader) (digest []byte, err error) {
	hasher, err := hashType.Hasher()
	if err != nil {
		return nil, errors.Wrap(err, "get hasher")
	}

	if _, err = io.Copy(hasher, content); err != nil {
		return nil, errors.Wrap(err, "read from content")
	}

	return hasher.Sum(nil), nil
}

// DoubleHash apply hash twice, H(H(content))
//
// DoubleHash(HashTypeSha256, ...) is bitcoin's hash256.
func DoubleHash(hashType HashTypeInterface, content io.Reader) (digest []byte, err error) {
	first, err := Hash(hashType, content)
	if err != nil {
		return nil, errors.Wrap(err, "first round")
	}

	return Hash(hashType, bytes.NewReader(first))
}

// HashVerify verify content by digest
func HashVerify(hashType HashTypeInterface, content io.Reader, digest []byte) (err error) {
	got, err := Hash(hashType, content)
	if err != nil {
		return err
	}

	if !bytes.Equal(got, digest) {
		return errors.Errorf("digest not match")
	}

	return nil
}

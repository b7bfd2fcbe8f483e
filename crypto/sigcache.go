package crypto

import (
	"encoding/binary"

	"github.com/Laisky/errors/v2"
	"github.com/decred/dcrd/chaincfg/chainhash"
	lru "github.com/hashicorp/golang-lru/v2"
)

// SigCache remember signatures that already verified
//
// only valid signatures are cached, a miss always falls back to the scheme.
// Safe for concurrent use.
type SigCache struct {
	entries *lru.Cache[chainhash.Hash, struct{}]
}

// NewSigCache new cache holding at most size entries
func NewSigCache(size int) (*SigCache, error) {
	entries, err := lru.New[chainhash.Hash, struct{}](size)
	if err != nil {
		return nil, errors.Wrap(err, "new lru")
	}

	return &SigCache{entries: entries}, nil
}

// Len number of cached signatures
func (c *SigCache) Len() int {
	return c.entries.Len()
}

// Wrap return scheme whose positive verifications go through the cache
func (c *SigCache) Wrap(scheme Scheme) Scheme {
	return &cachedScheme{Scheme: scheme, cache: c}
}

func sigCacheKey(name SchemeName, pubkey PublicKey, msg []byte, sig Signature) chainhash.Hash {
	var buf []byte
	for _, field := range [][]byte{[]byte(name), pubkey, msg, sig} {
		buf = binary.LittleEndian.AppendUint32(buf, uint32(len(field)))
		buf = append(buf, field...)
	}

	return chainhash.HashH(buf)
}

type cachedScheme struct {
	Scheme
	cache *SigCache
}

func (s *cachedScheme) Verify(pubkey PublicKey, msg []byte, sig Signature) bool {
	key := sigCacheKey(s.Name(), pubkey, msg, sig)
	if _, ok := s.cache.entries.Get(key); ok {
		return true
	}

	if !s.Scheme.Verify(pubkey, msg, sig) {
		return false
	}

	s.cache.entries.Add(key, struct{}{})
	return true
}

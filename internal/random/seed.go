// Package random provides seed generation and seeded generators.
//
// Entropy comes from crypto/rand; generators are math/rand/v2 PCG sources so
// a given seed always yields the same stream.
package random

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/randomtoy/tarotteller/internal/domain"
)

// pcgIncrement is the fixed second PCG state word. Only the seed varies.
const pcgIncrement = 0x9e3779b97f4a7c15

// NewSeed generates a random seed using crypto/rand.
func NewSeed() (int64, error) {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("read random seed: %w", err)
	}

	return int64(binary.LittleEndian.Uint64(b[:])), nil
}

// MustSeed is NewSeed falling back to the wall clock when crypto/rand fails.
func MustSeed() int64 {
	seed, err := NewSeed()
	if err != nil {
		return time.Now().UnixNano()
	}
	return seed
}

// New returns a generator whose stream is fully determined by seed.
func New(seed int64) *rand.Rand {
	return rand.New(rand.NewPCG(uint64(seed), pcgIncrement))
}

// Factory builds an RNG from a seed. Deck and orientation streams take one so
// tests can substitute scripted generators.
type Factory func(seed int64) domain.RNG

// DefaultFactory wraps New.
func DefaultFactory(seed int64) domain.RNG { return New(seed) }

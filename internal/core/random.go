package core

import (
	crand "crypto/rand"
	"fmt"
	"math/big"
	"math/rand/v2"
	"strings"
)

// Rand is the source of uniform draws used by the assembler.
// *math/rand/v2.Rand satisfies it.
type Rand interface {
	// IntN returns a uniform integer in [0, n). It panics if n <= 0.
	IntN(n int) int
}

const (
	RandomSourcePCG    = "pcg"
	RandomSourceCrypto = "crypto"
)

// NewSeededRand returns a deterministic PCG generator for the seed.
func NewSeededRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// NewRand builds a Rand by source name. A zero seed for the PCG source
// draws a fresh seed, so only non-zero seeds give repeatable batches.
func NewRand(source string, seed int64) (Rand, error) {
	switch strings.ToLower(source) {
	case "", RandomSourcePCG:
		s := uint64(seed)
		if seed == 0 {
			s = rand.Uint64()
		}
		return NewSeededRand(s), nil
	case RandomSourceCrypto:
		return CryptoRand{}, nil
	default:
		return nil, fmt.Errorf("unknown random source %q (use %s or %s)", source, RandomSourcePCG, RandomSourceCrypto)
	}
}

// CryptoRand draws from crypto/rand. It cannot be seeded.
type CryptoRand struct{}

func (CryptoRand) IntN(n int) int {
	if n <= 0 {
		panic("core: CryptoRand.IntN called with non-positive n")
	}
	v, err := crand.Int(crand.Reader, big.NewInt(int64(n)))
	if err != nil {
		panic(fmt.Sprintf("core: crypto/rand failed: %v", err))
	}
	return int(v.Int64())
}

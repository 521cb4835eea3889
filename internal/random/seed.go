// Package random provides cryptographic seed generation helpers.
//
// It uses crypto/rand to generate high-entropy seeds suitable for
// initializing pseudo-random number generators in deterministic systems.
package random

import (
	crand "crypto/rand"
	"encoding/binary"
	"errors"
	"fmt"
)

// RngAlgoMathRandV1 identifies the math/rand source seeded with an int64.
const RngAlgoMathRandV1 = "math_rand_v1"

// SeedSource records where the seed of a roll came from.
type SeedSource string

const (
	// SeedSourceClient marks a seed supplied by the caller, for replays.
	SeedSourceClient SeedSource = "CLIENT"
	// SeedSourceServer marks a seed generated for the request.
	SeedSourceServer SeedSource = "SERVER"
	// SeedSourceNone marks a deterministic roll that used no seed.
	SeedSourceNone SeedSource = "NONE"
)

// ErrSeedGenerator is returned when ResolveSeed is given no generator and
// needs one.
var ErrSeedGenerator = errors.New("seed generator is required")

// NewSeed generates a random seed using crypto/rand.
func NewSeed() (int64, error) {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("read random seed: %w", err)
	}

	return int64(binary.LittleEndian.Uint64(b[:])), nil
}

// ResolveSeed returns the client seed when one was requested and otherwise a
// fresh seed from generate.
func ResolveSeed(requested *int64, generate func() (int64, error)) (int64, SeedSource, error) {
	if requested != nil {
		return *requested, SeedSourceClient, nil
	}
	if generate == nil {
		return 0, "", ErrSeedGenerator
	}
	seed, err := generate()
	if err != nil {
		return 0, "", err
	}
	return seed, SeedSourceServer, nil
}

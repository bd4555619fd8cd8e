package generator

import (
	"crypto/sha256"
	"encoding/hex"
	"math/rand"
	"strconv"
	"time"
)

// Inclusive bounds for the generated age column.
const (
	ageMin = 18
	ageMax = 60
)

// rowSource produces id/name/age records from a single seeded random source.
// Rows do not depend on previously produced rows; the rng is the only shared
// state, so a source must not be used from multiple goroutines.
type rowSource struct {
	rng    *rand.Rand
	names  []string
	raw    [32]byte
	record [3]string
}

// newRowSource creates a row source. A zero seed picks a time-based one;
// reusing a non-zero seed with the same name table reproduces identical rows.
func newRowSource(seed int64, names []string) *rowSource {
	if seed == 0 {
		seed = time.Now().UnixNano() + int64(rand.Intn(65536))
	}
	return &rowSource{
		rng:   rand.New(rand.NewSource(seed)),
		names: names,
	}
}

// nextID hashes 32 random bytes and hex-encodes the 256-bit digest into a
// 64-character lowercase token. The hash adds no randomness; it is only a
// convenient fixed-length token generator with negligible collision
// probability, not a security mechanism.
func (s *rowSource) nextID() string {
	s.rng.Read(s.raw[:])
	sum := sha256.Sum256(s.raw[:])
	return hex.EncodeToString(sum[:])
}

// nextName picks uniformly from the name table with replacement, degrading to
// an empty string when the table is empty.
func (s *rowSource) nextName() string {
	if len(s.names) == 0 {
		return ""
	}
	return s.names[s.rng.Intn(len(s.names))]
}

func (s *rowSource) nextAge() int {
	return ageMin + s.rng.Intn(ageMax-ageMin+1)
}

// nextRecord returns the next row as id, name, age fields. The returned slice
// is reused across calls.
func (s *rowSource) nextRecord() []string {
	s.record[0] = s.nextID()
	s.record[1] = s.nextName()
	s.record[2] = strconv.Itoa(s.nextAge())
	return s.record[:]
}

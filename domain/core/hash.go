package core

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"math"
	"slices"
)

// Hash represents a cryptographic hash
type Hash string

// NewHash creates a new hash from data
func NewHash(data []byte) Hash {
	sum := sha256.Sum256(data)
	return Hash(hex.EncodeToString(sum[:]))
}

// String returns the string representation
func (h Hash) String() string {
	return string(h)
}

// IsEmpty checks if the hash is empty
func (h Hash) IsEmpty() bool {
	return h == ""
}

// Short returns the first 12 hex digits
func (h Hash) Short() string {
	if len(h) <= 12 {
		return string(h)
	}
	return string(h[:12])
}

// DatasetHash fingerprints a sample. Two samples holding the same values in
// any order share a hash.
type DatasetHash Hash

func (h DatasetHash) String() string { return Hash(h).String() }
func (h DatasetHash) Short() string  { return Hash(h).Short() }

// ComputeDatasetHash hashes the IEEE-754 bits of values in ascending order
func ComputeDatasetHash(values []float64) DatasetHash {
	sorted := slices.Clone(values)
	slices.Sort(sorted)

	data := make([]byte, 8*len(sorted))
	for i, v := range sorted {
		if v == 0 {
			v = 0 // fold -0 into +0
		}
		binary.BigEndian.PutUint64(data[8*i:], math.Float64bits(v))
	}
	return DatasetHash(NewHash(data))
}

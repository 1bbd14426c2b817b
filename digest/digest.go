// Package digest fingerprints array payloads and external data files.
//
// Fingerprints are computed over the native-order bytes of an array, which is
// exactly the content of an uncompressed external binary file. Two arrays of the
// same element type have equal fingerprints only if their elements are equal,
// so fingerprints are a cheap way to compare datasets across encodings.
package digest

import (
	"encoding/hex"
	"fmt"
	"hash"
	"io"
	"os"

	"github.com/cespare/xxhash/v2"
	"github.com/spaolacci/murmur3"
	"github.com/zeebo/blake3"

	"github.com/arloliu/kvsml/array"
	"github.com/arloliu/kvsml/errs"
)

type Algorithm uint8

const (
	XXHash64 Algorithm = 0x1 // XXHash64 is the default, fastest fingerprint.
	BLAKE3   Algorithm = 0x2 // BLAKE3 is a cryptographic 256-bit digest.
	Murmur3  Algorithm = 0x3 // Murmur3 is the 128-bit x64 murmur3 variant.
)

func (a Algorithm) String() string {
	switch a {
	case XXHash64:
		return "xxhash"
	case BLAKE3:
		return "blake3"
	case Murmur3:
		return "murmur3"
	default:
		return "unknown"
	}
}

// ParseAlgorithm accepts the names produced by Algorithm.String.
func ParseAlgorithm(name string) (Algorithm, error) {
	switch name {
	case "", "xxhash":
		return XXHash64, nil
	case "blake3":
		return BLAKE3, nil
	case "murmur3":
		return Murmur3, nil
	default:
		return 0, fmt.Errorf("unknown digest algorithm %q", name)
	}
}

// New returns a fresh hash.Hash for the algorithm.
func (a Algorithm) New() (hash.Hash, error) {
	switch a {
	case XXHash64:
		return xxhash.New(), nil
	case BLAKE3:
		return blake3.New(), nil
	case Murmur3:
		return murmur3.New128(), nil
	default:
		return nil, fmt.Errorf("unknown digest algorithm %d", a)
	}
}

// ID computes the xxHash64 of the given string.
func ID(data string) uint64 {
	return xxhash.Sum64String(data)
}

// Sum returns the hex digest of data.
func Sum(alg Algorithm, data []byte) (string, error) {
	h, err := alg.New()
	if err != nil {
		return "", err
	}
	_, _ = h.Write(data)

	return hex.EncodeToString(h.Sum(nil)), nil
}

// Array returns the hex digest of the array's native-order bytes.
func Array(alg Algorithm, a array.AnyArray) (string, error) {
	return Sum(alg, a.Bytes())
}

// File returns the hex digest of a file's content.
func File(alg Algorithm, path string) (string, error) {
	h, err := alg.New()
	if err != nil {
		return "", err
	}

	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("%w: %w", errs.ErrIO, err)
	}
	defer f.Close()

	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("%w: read %s: %w", errs.ErrIO, path, err)
	}

	return hex.EncodeToString(h.Sum(nil)), nil
}

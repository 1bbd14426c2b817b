// Package compress provides the optional compression codecs applied to external
// binary array files.
//
// A KVSML external binary file is, by default, a raw memory dump of the array.
// When a writer is configured with a compression other than
// format.CompressionNone, the dump is compressed before it is written and the
// `compression` attribute records the algorithm. Readers decompress before the
// binary decode, so the element-count contract is unchanged.
//
// Supported algorithms:
//   - None: raw dump, byte-for-byte identical to the in-memory array
//   - Zstd: best ratio, the usual choice for archived volumes
//   - S2: fast with a good ratio
//   - LZ4: fastest decompression (LZ4 frame format)
//
// All codecs are stateless values and safe for concurrent use. Encoders and
// decoders that carry internal state are pooled.
//
// Build with `-tags gozstd` and cgo enabled to use the cgo zstd binding instead
// of the pure Go implementation.
package compress

// Package errs defines the sentinel errors shared by every kvsml package.
//
// Errors returned by the codec, tag and object layers wrap one of these values
// with the offending tag or attribute name, so callers branch with errors.Is:
//
//	obj, err := kvsml.ReadPointObject(path)
//	if errors.Is(err, errs.ErrFileNotFound) {
//	    // an external data file referenced by the document is missing
//	}
package errs

import "errors"

var (
	// ErrMissingAttribute is returned when a required attribute is absent,
	// e.g. `format` or `type` on an element that carries a `file` attribute.
	ErrMissingAttribute = errors.New("missing attribute")
	// ErrMissingTag is returned when a mandatory child element is absent.
	ErrMissingTag = errors.New("missing tag")
	// ErrFileNotFound is returned when an external data file does not exist.
	ErrFileNotFound = errors.New("external file not found")
	// ErrIO covers every other file failure, including short binary reads.
	ErrIO = errors.New("i/o error")
	// ErrMalformedArray is returned when fewer values are available than declared,
	// or when an element has no text where inline values were expected.
	ErrMalformedArray = errors.New("malformed array")
	// ErrUnknownType is returned for a type name outside the fixed table.
	ErrUnknownType = errors.New("unknown element type")
	// ErrUnknownFormat is returned for a `format` value other than ascii or binary.
	ErrUnknownFormat = errors.New("unknown data format")
	// ErrUnknownCompression is returned for an unsupported `compression` value.
	ErrUnknownCompression = errors.New("unknown compression")
	// ErrInvalidAttribute is returned when an attribute value cannot be parsed.
	ErrInvalidAttribute = errors.New("invalid attribute value")
	// ErrInvalidObject is returned when an object's arrays disagree with its counts.
	ErrInvalidObject = errors.New("invalid object")
	// ErrUnsupportedObject is returned for a document holding an unknown object type.
	ErrUnsupportedObject = errors.New("unsupported object type")
	// ErrMalformedDocument is returned when a document cannot be parsed as KVSML.
	ErrMalformedDocument = errors.New("malformed document")
)

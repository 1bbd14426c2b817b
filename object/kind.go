// Package object holds the in-memory visualization objects stored in KVSML
// documents.
//
// Objects are plain data. They keep no reference to the document they were
// read from; the kvsml package converts between objects and documents.
package object

import (
	"fmt"

	"github.com/arloliu/kvsml/errs"
)

// Kind identifies the object type stored in a document.
type Kind uint8

const (
	KindUnknown            Kind = 0x0
	KindPoint              Kind = 0x1
	KindLine               Kind = 0x2
	KindPolygon            Kind = 0x3
	KindStructuredVolume   Kind = 0x4
	KindUnstructuredVolume Kind = 0x5
	KindImage              Kind = 0x6
	KindTransferFunction   Kind = 0x7
)

var kindNames = [...]string{
	KindUnknown:            "unknown",
	KindPoint:              "PointObject",
	KindLine:               "LineObject",
	KindPolygon:            "PolygonObject",
	KindStructuredVolume:   "StructuredVolumeObject",
	KindUnstructuredVolume: "UnstructuredVolumeObject",
	KindImage:              "ImageObject",
	KindTransferFunction:   "TransferFunction",
}

// Kinds lists every supported object kind.
var Kinds = []Kind{
	KindPoint, KindLine, KindPolygon, KindStructuredVolume,
	KindUnstructuredVolume, KindImage, KindTransferFunction,
}

// String returns the element name of the kind, e.g. "PointObject".
func (k Kind) String() string {
	if k > KindTransferFunction {
		return kindNames[KindUnknown]
	}

	return kindNames[k]
}

// ParseKind maps an element name or an Object `type` attribute to its kind.
func ParseKind(name string) (Kind, error) {
	for _, k := range Kinds {
		if kindNames[k] == name {
			return k, nil
		}
	}

	return KindUnknown, fmt.Errorf("%w: %q", errs.ErrUnsupportedObject, name)
}

// Object is implemented by every object type of this package.
type Object interface {
	Kind() Kind
	// Validate checks array lengths against the counts they imply.
	Validate() error
}

func invalid(k Kind, format string, args ...any) error {
	return fmt.Errorf("%w: %s: %s", errs.ErrInvalidObject, k, fmt.Sprintf(format, args...))
}

// checkRecords verifies that an optional per-record array holds no values,
// one shared record (when single is set) or exactly nrecords records.
func checkRecords(k Kind, name string, length, perRecord, nrecords int, single bool) error {
	switch {
	case length == 0:
		return nil
	case single && length == perRecord:
		return nil
	case length == perRecord*nrecords:
		return nil
	default:
		return invalid(k, "%s holds %d values, want %d", name, length, perRecord*nrecords)
	}
}

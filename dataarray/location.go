package dataarray

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/arloliu/kvsml/errs"
	"github.com/arloliu/kvsml/format"
	"github.com/arloliu/kvsml/xmltree"
)

// Element and attribute names of the array encoding.
const (
	TagDataArray = "DataArray"
	TagDataValue = "DataValue"

	AttrType        = "type"
	AttrFormat      = "format"
	AttrFile        = "file"
	AttrCompression = "compression"
)

// Source tells where the bytes of an array live.
type Source uint8

const (
	SourceInline   Source = 0x1 // SourceInline means the values are the element's text.
	SourceExternal Source = 0x2 // SourceExternal means the values are in a sibling file.
)

func (s Source) String() string {
	switch s {
	case SourceInline:
		return "inline"
	case SourceExternal:
		return "external"
	default:
		return "unknown"
	}
}

// Location describes where one array's values are stored. It is built fresh
// for every decode and never kept.
type Location struct {
	Source Source
	// Name is the element name, used in error messages.
	Name string
	// Text is the element's character data; only meaningful for inline sources.
	Text string
	// Path is the absolute path of the external file.
	Path string
	// Format is EncodingExternalAscii or EncodingExternalBinary for external sources.
	Format format.Encoding
	// Type is the declared element type. It is TypeUnknown for an inline
	// array without a `type` attribute.
	Type format.ElementType
	// Compression applies to external binary files only.
	Compression format.CompressionType
}

// IsExternal reports whether the values live in a separate file.
func (l Location) IsExternal() bool {
	return l.Source == SourceExternal
}

// Locate inspects the attributes of an array element.
//
// Without a `file` attribute the array is inline. With one, `format` and
// `type` are mandatory and the file is resolved against the directory of the
// document at documentPath. An absolute `file` value is used as is.
//
// Returns ErrMissingAttribute, ErrUnknownFormat, ErrUnknownType or
// ErrUnknownCompression for malformed elements.
func Locate(documentPath string, node *xmltree.Node) (Location, error) {
	loc := Location{
		Source:      SourceInline,
		Name:        node.Name,
		Text:        node.Text,
		Type:        format.TypeUnknown,
		Compression: format.CompressionNone,
	}

	if name, ok := node.Attr(AttrType); ok {
		typ, err := format.ParseElementType(name)
		if err != nil {
			return Location{}, fmt.Errorf("<%s>: %w", node.Name, err)
		}
		loc.Type = typ
	}

	file, ok := node.Attr(AttrFile)
	if !ok {
		return loc, nil
	}

	formatValue, ok := node.Attr(AttrFormat)
	if !ok {
		return Location{}, fmt.Errorf("%w: <%s file=%q> has no %q", errs.ErrMissingAttribute, node.Name, file, AttrFormat)
	}
	if !node.HasAttr(AttrType) {
		return Location{}, fmt.Errorf("%w: <%s file=%q> has no %q", errs.ErrMissingAttribute, node.Name, file, AttrType)
	}

	enc, err := format.ParseDataFormat(formatValue)
	if err != nil {
		return Location{}, fmt.Errorf("<%s>: %w", node.Name, err)
	}

	if value, ok := node.Attr(AttrCompression); ok {
		comp, err := format.ParseCompressionType(value)
		if err != nil {
			return Location{}, fmt.Errorf("<%s>: %w", node.Name, err)
		}
		if comp != format.CompressionNone && enc != format.EncodingExternalBinary {
			return Location{}, fmt.Errorf("%w: <%s> compression %q requires binary format", errs.ErrInvalidAttribute, node.Name, value)
		}
		loc.Compression = comp
	}

	loc.Source = SourceExternal
	loc.Format = enc
	loc.Path = resolvePath(documentPath, file)

	return loc, nil
}

func resolvePath(documentPath, file string) string {
	if filepath.IsAbs(file) {
		return file
	}

	return filepath.Join(filepath.Dir(documentPath), file)
}

// ExternalFileName derives the sibling data file for a role:
// <dir>/<basename-without-extension>_<baseTag>.dat.
func ExternalFileName(documentPath, baseTag string) string {
	base := filepath.Base(documentPath)
	stem := strings.TrimSuffix(base, filepath.Ext(base))

	return filepath.Join(filepath.Dir(documentPath), stem+"_"+baseTag+".dat")
}

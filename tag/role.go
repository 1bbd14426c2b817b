// Package tag maps the semantic roles of a KVSML document (coordinates,
// colors, connections, field values, ...) onto the array codec.
//
// Every role is described by a Role value. One generic Read and one generic
// Write serve all of them:
//
//	coords, err := tag.Read(doc.Path, vertex, tag.Coord, nvertices)
//	err = tag.Write(vertex, tag.Coord, coords, format.EncodingExternalBinary, doc.Path)
package tag

import (
	"github.com/arloliu/kvsml/array"
	"github.com/arloliu/kvsml/format"
)

// Role describes one kind of array element.
type Role struct {
	// Name is the element name, e.g. "Coord".
	Name string
	// ElementsPerRecord is the number of scalars in one record: 3 for an RGB
	// color or a 3D coordinate, 1 for a size or an opacity.
	ElementsPerRecord int
	// Default is returned by Read when the element is absent. It may be empty.
	Default array.AnyArray
	// BaseTag names the external data file: <document>_<BaseTag>.dat.
	BaseTag string
	// Type is the element type values are decoded into. TypeUnknown keeps the
	// type declared by the document.
	Type format.ElementType
}

// WithBaseTag returns a copy of r writing to a different external file, e.g.
// "value_1" for the second field of a document.
func (r Role) WithBaseTag(baseTag string) Role {
	r.BaseTag = baseTag
	return r
}

// IsDynamic reports whether r keeps the declared on-disk element type.
func (r Role) IsDynamic() bool {
	return !r.Type.Valid()
}

// Predefined roles with a fixed record size.
var (
	Coord = Role{Name: "Coord", ElementsPerRecord: 3, BaseTag: "coord", Type: format.TypeFloat32}
	Color = Role{
		Name: "Color", ElementsPerRecord: 3, BaseTag: "color", Type: format.TypeUInt8,
		Default: array.Of[uint8](255, 255, 255).Any(),
	}
	Normal = Role{Name: "Normal", ElementsPerRecord: 3, BaseTag: "normal", Type: format.TypeFloat32}
	Size   = Role{
		Name: "Size", ElementsPerRecord: 1, BaseTag: "size", Type: format.TypeFloat32,
		Default: array.Of[float32](1).Any(),
	}
	Opacity = Role{
		Name: "Opacity", ElementsPerRecord: 1, BaseTag: "opacity", Type: format.TypeUInt8,
		Default: array.Of[uint8](255).Any(),
	}
	ColorMap   = Role{Name: "ColorMap", ElementsPerRecord: 3, BaseTag: "colormap", Type: format.TypeUInt8}
	OpacityMap = Role{Name: "OpacityMap", ElementsPerRecord: 1, BaseTag: "opacitymap", Type: format.TypeFloat32}
)

// Connection returns the role of a connectivity array with n vertex or node
// indices per record.
func Connection(n int) Role {
	return Role{Name: "Connection", ElementsPerRecord: n, BaseTag: "connect", Type: format.TypeUInt32}
}

// Value returns the role of a field with veclen components per node. Values
// keep the element type written in the document.
func Value(veclen int) Role {
	return Role{Name: "Value", ElementsPerRecord: veclen, BaseTag: "value", Type: format.TypeUnknown}
}

// Pixel returns the role of image data with bpp bytes per pixel.
func Pixel(bpp int) Role {
	return Role{Name: "Pixel", ElementsPerRecord: bpp, BaseTag: "pixel", Type: format.TypeUInt8}
}

package object

import (
	"fmt"

	"github.com/arloliu/kvsml/errs"
)

type (
	LineType    uint8
	ColorType   uint8
	NormalType  uint8
	PolygonType uint8
	GridType    uint8
	CellType    uint8
	PixelType   uint8
)

const (
	LineStrip    LineType = 0x1 // LineStrip connects the vertices in order.
	LineUniline  LineType = 0x2 // LineUniline visits the vertices in the order of its connection.
	LinePolyline LineType = 0x3 // LinePolyline holds several strips, each a first and last vertex index.
	LineSegment  LineType = 0x4 // LineSegment holds independent two-vertex segments.
)

const (
	ColorPerVertex  ColorType = 0x1
	ColorPerLine    ColorType = 0x2
	ColorPerPolygon ColorType = 0x3
)

const (
	NormalPerVertex  NormalType = 0x1
	NormalPerPolygon NormalType = 0x2
)

const (
	Triangle   PolygonType = 0x1
	Quadrangle PolygonType = 0x2
)

const (
	GridUniform     GridType = 0x1 // GridUniform needs no coordinates.
	GridRectilinear GridType = 0x2 // GridRectilinear stores one coordinate per grid line on each axis.
	GridCurvilinear GridType = 0x3 // GridCurvilinear stores a 3D coordinate per node.
)

const (
	CellTetrahedra          CellType = 0x1
	CellQuadraticTetrahedra CellType = 0x2
	CellHexahedra           CellType = 0x3
	CellQuadraticHexahedra  CellType = 0x4
	CellPyramid             CellType = 0x5
	CellPrism               CellType = 0x6
	CellPoint               CellType = 0x7
)

const (
	PixelGray8   PixelType = 0x1
	PixelColor24 PixelType = 0x2
)

type enumName[E ~uint8] struct {
	value E
	name  string
}

func nameOf[E ~uint8](table []enumName[E], v E) string {
	for _, e := range table {
		if e.value == v {
			return e.name
		}
	}

	return "unknown"
}

func parseName[E ~uint8](table []enumName[E], attr, name string) (E, error) {
	for _, e := range table {
		if e.name == name {
			return e.value, nil
		}
	}

	return 0, fmt.Errorf("%w: %s %q", errs.ErrInvalidAttribute, attr, name)
}

var lineTypes = []enumName[LineType]{
	{LineStrip, "strip"}, {LineUniline, "uniline"}, {LinePolyline, "polyline"}, {LineSegment, "segment"},
}

var colorTypes = []enumName[ColorType]{
	{ColorPerVertex, "vertex"}, {ColorPerLine, "line"}, {ColorPerPolygon, "polygon"},
}

var normalTypes = []enumName[NormalType]{
	{NormalPerVertex, "vertex"}, {NormalPerPolygon, "polygon"},
}

var polygonTypes = []enumName[PolygonType]{
	{Triangle, "triangle"}, {Quadrangle, "quadrangle"},
}

var gridTypes = []enumName[GridType]{
	{GridUniform, "uniform"}, {GridRectilinear, "rectilinear"}, {GridCurvilinear, "curvilinear"},
}

var cellTypes = []enumName[CellType]{
	{CellTetrahedra, "tetrahedra"},
	{CellQuadraticTetrahedra, "quadratic tetrahedra"},
	{CellHexahedra, "hexahedra"},
	{CellQuadraticHexahedra, "quadratic hexahedra"},
	{CellPyramid, "pyramid"},
	{CellPrism, "prism"},
	{CellPoint, "point"},
}

var pixelTypes = []enumName[PixelType]{
	{PixelGray8, "gray"}, {PixelColor24, "color"},
}

func (t LineType) String() string    { return nameOf(lineTypes, t) }
func (t ColorType) String() string   { return nameOf(colorTypes, t) }
func (t NormalType) String() string  { return nameOf(normalTypes, t) }
func (t PolygonType) String() string { return nameOf(polygonTypes, t) }
func (t GridType) String() string    { return nameOf(gridTypes, t) }
func (t CellType) String() string    { return nameOf(cellTypes, t) }
func (t PixelType) String() string   { return nameOf(pixelTypes, t) }

// ParseLineType parses a `line_type` attribute.
func ParseLineType(s string) (LineType, error) { return parseName(lineTypes, "line_type", s) }

// ParseColorType parses a `color_type` attribute.
func ParseColorType(s string) (ColorType, error) { return parseName(colorTypes, "color_type", s) }

// ParseNormalType parses a `normal_type` attribute.
func ParseNormalType(s string) (NormalType, error) { return parseName(normalTypes, "normal_type", s) }

// ParsePolygonType parses a `polygon_type` attribute.
func ParsePolygonType(s string) (PolygonType, error) {
	return parseName(polygonTypes, "polygon_type", s)
}

// ParseGridType parses a `grid_type` attribute.
func ParseGridType(s string) (GridType, error) { return parseName(gridTypes, "grid_type", s) }

// ParseCellType parses a `cell_type` attribute.
func ParseCellType(s string) (CellType, error) { return parseName(cellTypes, "cell_type", s) }

// ParsePixelType parses a `pixel_type` attribute.
func ParsePixelType(s string) (PixelType, error) { return parseName(pixelTypes, "pixel_type", s) }

// NodesPerPolygon returns 3 for triangles and 4 for quadrangles.
func (t PolygonType) NodesPerPolygon() int {
	if t == Quadrangle {
		return 4
	}

	return 3
}

// NodesPerCell returns the number of node indices in one cell.
func (t CellType) NodesPerCell() int {
	switch t {
	case CellTetrahedra:
		return 4
	case CellQuadraticTetrahedra:
		return 10
	case CellHexahedra:
		return 8
	case CellQuadraticHexahedra:
		return 20
	case CellPyramid:
		return 5
	case CellPrism:
		return 6
	case CellPoint:
		return 1
	default:
		return 0
	}
}

// BytesPerPixel returns 1 for gray images and 3 for RGB images.
func (t PixelType) BytesPerPixel() int {
	switch t {
	case PixelGray8:
		return 1
	case PixelColor24:
		return 3
	default:
		return 0
	}
}

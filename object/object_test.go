package object

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/kvsml/array"
	"github.com/arloliu/kvsml/errs"
)

func TestKind(t *testing.T) {
	for _, k := range Kinds {
		parsed, err := ParseKind(k.String())
		require.NoError(t, err)
		require.Equal(t, k, parsed)
	}

	_, err := ParseKind("TetraObject")
	require.ErrorIs(t, err, errs.ErrUnsupportedObject)
	require.Equal(t, "unknown", Kind(0x42).String())
}

func TestEnums(t *testing.T) {
	lt, err := ParseLineType("polyline")
	require.NoError(t, err)
	require.Equal(t, LinePolyline, lt)
	require.Equal(t, "polyline", lt.String())

	ct, err := ParseCellType("quadratic hexahedra")
	require.NoError(t, err)
	require.Equal(t, 20, ct.NodesPerCell())

	pt, err := ParsePolygonType("quadrangle")
	require.NoError(t, err)
	require.Equal(t, 4, pt.NodesPerPolygon())

	px, err := ParsePixelType("color")
	require.NoError(t, err)
	require.Equal(t, 3, px.BytesPerPixel())

	_, err = ParseGridType("spherical")
	require.ErrorIs(t, err, errs.ErrInvalidAttribute)
	require.Contains(t, err.Error(), "grid_type")

	require.Equal(t, "unknown", CellType(0).String())
}

func TestPointObject_Validate(t *testing.T) {
	o := &PointObject{Coords: array.Of[float32](0, 0, 0, 1, 1, 1)}
	require.NoError(t, o.Validate())
	require.Equal(t, 2, o.NumberOfVertices())

	o.Colors = array.Of[uint8](255, 0, 0)
	require.NoError(t, o.Validate(), "one shared color")

	o.Colors = array.Of[uint8](255, 0, 0, 0)
	require.ErrorIs(t, o.Validate(), errs.ErrInvalidObject)

	o.Colors = array.Array[uint8]{}
	o.Normals = array.Of[float32](0, 0, 1)
	require.ErrorIs(t, o.Validate(), errs.ErrInvalidObject, "normals are per vertex only")

	o.Normals = array.Array[float32]{}
	o.Coords = array.Of[float32](0, 0)
	require.ErrorIs(t, o.Validate(), errs.ErrInvalidObject)
}

func TestLineObject_Counts(t *testing.T) {
	coords := array.New[float32](3 * 6)

	strip := &LineObject{LineType: LineStrip, ColorType: ColorPerLine, Coords: coords}
	require.Equal(t, 5, strip.NumberOfSegments())
	require.Equal(t, 0, strip.NumberOfLines())
	strip.Colors = array.New[uint8](15)
	require.NoError(t, strip.Validate())

	poly := &LineObject{
		LineType: LinePolyline, ColorType: ColorPerVertex, Coords: coords,
		Connections: array.Of[uint32](0, 2, 3, 5),
	}
	require.Equal(t, 2, poly.NumberOfLines())
	require.Equal(t, 4, poly.NumberOfSegments())
	require.NoError(t, poly.Validate())

	seg := &LineObject{
		LineType: LineSegment, ColorType: ColorPerVertex, Coords: coords,
		Connections: array.Of[uint32](0, 1, 2),
	}
	require.ErrorIs(t, seg.Validate(), errs.ErrInvalidObject)

	seg.Connections = array.Of[uint32](0, 6)
	require.ErrorIs(t, seg.Validate(), errs.ErrInvalidObject, "index out of range")

	uni := &LineObject{
		LineType: LineUniline, ColorType: ColorPerVertex, Coords: coords,
		Connections: array.Of[uint32](5, 4, 3),
	}
	require.Equal(t, 3, uni.NumberOfLines())
	require.Equal(t, 2, uni.NumberOfSegments())
	require.NoError(t, uni.Validate())

	strip.Connections = array.Of[uint32](0, 1)
	require.ErrorIs(t, strip.Validate(), errs.ErrInvalidObject)
}

func TestPolygonObject_Validate(t *testing.T) {
	quad := &PolygonObject{
		PolygonType: Quadrangle,
		ColorType:   ColorPerPolygon,
		NormalType:  NormalPerPolygon,
		Coords:      array.New[float32](3 * 6),
		Connections: array.Of[uint32](0, 1, 2, 3, 2, 3, 4, 5),
		Colors:      array.New[uint8](6),
		Normals:     array.New[float32](6),
		Opacities:   array.Of[uint8](128),
	}
	require.Equal(t, 2, quad.NumberOfPolygons())
	require.NoError(t, quad.Validate())

	soup := &PolygonObject{
		PolygonType: Triangle, ColorType: ColorPerVertex, NormalType: NormalPerVertex,
		Coords: array.New[float32](3 * 7),
	}
	require.ErrorIs(t, soup.Validate(), errs.ErrInvalidObject)

	soup.Coords = array.New[float32](3 * 6)
	require.Equal(t, 2, soup.NumberOfPolygons())
	require.NoError(t, soup.Validate())

	soup.ColorType = ColorPerLine
	require.ErrorIs(t, soup.Validate(), errs.ErrInvalidObject)
}

func TestStructuredVolumeObject_Validate(t *testing.T) {
	o := &StructuredVolumeObject{
		GridType:   GridUniform,
		Resolution: [3]int{4, 3, 2},
		Veclen:     1,
		Values:     array.New[float32](24).Any(),
	}
	require.Equal(t, 24, o.NumberOfNodes())
	require.NoError(t, o.Validate())

	o.GridType = GridRectilinear
	require.ErrorIs(t, o.Validate(), errs.ErrInvalidObject)
	o.Coords = array.New[float32](9)
	require.NoError(t, o.Validate())

	o.GridType = GridCurvilinear
	require.ErrorIs(t, o.Validate(), errs.ErrInvalidObject)
	o.Coords = array.New[float32](72)
	require.NoError(t, o.Validate())

	o.Veclen = 3
	require.ErrorIs(t, o.Validate(), errs.ErrInvalidObject)
}

func TestUnstructuredVolumeObject_Validate(t *testing.T) {
	o := &UnstructuredVolumeObject{
		CellType:    CellTetrahedra,
		Veclen:      1,
		Coords:      array.New[float32](3 * 5),
		Values:      array.Of[float64](1, 2, 3, 4, 5).Any(),
		Connections: array.Of[uint32](0, 1, 2, 3, 1, 2, 3, 4),
	}
	require.Equal(t, 2, o.NumberOfCells())
	require.Equal(t, 5, o.NumberOfNodes())
	require.NoError(t, o.Validate())

	o.CellType = CellPyramid
	require.ErrorIs(t, o.Validate(), errs.ErrInvalidObject)

	o.CellType = CellType(0)
	require.ErrorIs(t, o.Validate(), errs.ErrInvalidObject)
}

func TestRangeOf(t *testing.T) {
	r := RangeOf(array.Of[int16](-3, 9, 4).Any())
	require.True(t, r.Set)
	require.Equal(t, -3.0, r.Min)
	require.Equal(t, 9.0, r.Max)

	require.False(t, RangeOf(array.AnyArray{}).Set)
}

func TestImageAndTransferFunction(t *testing.T) {
	img := &ImageObject{Width: 4, Height: 2, PixelType: PixelColor24, Pixels: array.New[uint8](24)}
	require.NoError(t, img.Validate())
	img.PixelType = PixelGray8
	require.ErrorIs(t, img.Validate(), errs.ErrInvalidObject)

	tf := NewTransferFunction(256)
	require.NoError(t, tf.Validate())
	require.Equal(t, uint8(255), tf.Colors.At(255*3))
	require.Equal(t, float32(1), tf.Opacities.At(255))
	require.Equal(t, float32(0), tf.Opacities.At(0))

	require.ErrorIs(t, NewTransferFunction(0).Validate(), errs.ErrInvalidObject)
}

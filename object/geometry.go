package object

import "github.com/arloliu/kvsml/array"

// PointObject is a cloud of points.
//
// Colors, Normals and Sizes are optional. Colors and Sizes may also hold a
// single record shared by every vertex.
type PointObject struct {
	Coords  array.Array[float32]
	Colors  array.Array[uint8]
	Normals array.Array[float32]
	Sizes   array.Array[float32]
}

func (o *PointObject) Kind() Kind { return KindPoint }

// NumberOfVertices returns Coords.Len() / 3.
func (o *PointObject) NumberOfVertices() int {
	return o.Coords.Len() / 3
}

func (o *PointObject) Validate() error {
	if o.Coords.Len()%3 != 0 {
		return invalid(o.Kind(), "coords hold %d values, not a multiple of 3", o.Coords.Len())
	}
	n := o.NumberOfVertices()
	if err := checkRecords(o.Kind(), "colors", o.Colors.Len(), 3, n, true); err != nil {
		return err
	}
	if err := checkRecords(o.Kind(), "normals", o.Normals.Len(), 3, n, false); err != nil {
		return err
	}

	return checkRecords(o.Kind(), "sizes", o.Sizes.Len(), 1, n, true)
}

// LineObject is a set of lines over shared vertices.
//
// The connection layout depends on LineType:
//   - strip: no connection, the vertices are joined in order;
//   - uniline: one vertex index per record, in visiting order;
//   - polyline: first and last vertex index of every line;
//   - segment: both vertex indices of every segment.
type LineObject struct {
	LineType    LineType
	ColorType   ColorType
	Coords      array.Array[float32]
	Colors      array.Array[uint8]
	Sizes       array.Array[float32]
	Connections array.Array[uint32]
}

func (o *LineObject) Kind() Kind { return KindLine }

func (o *LineObject) NumberOfVertices() int {
	return o.Coords.Len() / 3
}

// ConnectionsPerLine returns the number of indices in one connection record,
// 0 for strips.
func (o *LineObject) ConnectionsPerLine() int {
	switch o.LineType {
	case LineUniline:
		return 1
	case LinePolyline, LineSegment:
		return 2
	default:
		return 0
	}
}

// NumberOfLines returns the number of connection records.
func (o *LineObject) NumberOfLines() int {
	if per := o.ConnectionsPerLine(); per > 0 {
		return o.Connections.Len() / per
	}

	return 0
}

// NumberOfSegments returns the number of drawn two-vertex segments, the record
// count of per-line colors.
func (o *LineObject) NumberOfSegments() int {
	switch o.LineType {
	case LineStrip:
		return max(o.NumberOfVertices()-1, 0)
	case LineUniline:
		return max(o.Connections.Len()-1, 0)
	case LineSegment:
		return o.NumberOfLines()
	case LinePolyline:
		total := 0
		conn := o.Connections.Values()
		for i := 0; i+1 < len(conn); i += 2 {
			if conn[i+1] > conn[i] {
				total += int(conn[i+1] - conn[i])
			}
		}

		return total
	default:
		return 0
	}
}

// ColorRecords returns how many color records ColorType implies.
func (o *LineObject) ColorRecords() int {
	if o.ColorType == ColorPerLine {
		return o.NumberOfSegments()
	}

	return o.NumberOfVertices()
}

func (o *LineObject) Validate() error {
	if o.Coords.Len()%3 != 0 {
		return invalid(o.Kind(), "coords hold %d values, not a multiple of 3", o.Coords.Len())
	}
	if o.ColorType != ColorPerVertex && o.ColorType != ColorPerLine {
		return invalid(o.Kind(), "color type %s", o.ColorType)
	}

	switch o.LineType {
	case LineStrip:
		if o.Connections.Len() != 0 {
			return invalid(o.Kind(), "strip lines take no connections")
		}
	case LineUniline, LinePolyline, LineSegment:
		if o.Connections.Len()%o.ConnectionsPerLine() != 0 {
			return invalid(o.Kind(), "%s connections hold %d indices", o.LineType, o.Connections.Len())
		}
		if err := checkIndices(o.Kind(), o.Connections, o.NumberOfVertices()); err != nil {
			return err
		}
	default:
		return invalid(o.Kind(), "line type %s", o.LineType)
	}

	n := o.NumberOfVertices()
	if err := checkRecords(o.Kind(), "colors", o.Colors.Len(), 3, o.ColorRecords(), true); err != nil {
		return err
	}

	return checkRecords(o.Kind(), "sizes", o.Sizes.Len(), 1, n, true)
}

// PolygonObject is a triangle or quadrangle mesh.
//
// Without connections the vertices are taken in order, NodesPerPolygon at a
// time. Opacities are per polygon.
type PolygonObject struct {
	PolygonType PolygonType
	ColorType   ColorType
	NormalType  NormalType
	Coords      array.Array[float32]
	Colors      array.Array[uint8]
	Normals     array.Array[float32]
	Connections array.Array[uint32]
	Opacities   array.Array[uint8]
}

func (o *PolygonObject) Kind() Kind { return KindPolygon }

func (o *PolygonObject) NumberOfVertices() int {
	return o.Coords.Len() / 3
}

// NumberOfPolygons counts connection records, or vertex groups when there
// are no connections.
func (o *PolygonObject) NumberOfPolygons() int {
	per := o.PolygonType.NodesPerPolygon()
	if o.Connections.Len() > 0 {
		return o.Connections.Len() / per
	}

	return o.NumberOfVertices() / per
}

func (o *PolygonObject) ColorRecords() int {
	if o.ColorType == ColorPerPolygon {
		return o.NumberOfPolygons()
	}

	return o.NumberOfVertices()
}

func (o *PolygonObject) NormalRecords() int {
	if o.NormalType == NormalPerPolygon {
		return o.NumberOfPolygons()
	}

	return o.NumberOfVertices()
}

func (o *PolygonObject) Validate() error {
	if o.PolygonType != Triangle && o.PolygonType != Quadrangle {
		return invalid(o.Kind(), "polygon type %s", o.PolygonType)
	}
	if o.ColorType != ColorPerVertex && o.ColorType != ColorPerPolygon {
		return invalid(o.Kind(), "color type %s", o.ColorType)
	}
	if o.NormalType != NormalPerVertex && o.NormalType != NormalPerPolygon {
		return invalid(o.Kind(), "normal type %s", o.NormalType)
	}
	if o.Coords.Len()%3 != 0 {
		return invalid(o.Kind(), "coords hold %d values, not a multiple of 3", o.Coords.Len())
	}

	per := o.PolygonType.NodesPerPolygon()
	if o.Connections.Len()%per != 0 {
		return invalid(o.Kind(), "%s connections hold %d indices", o.PolygonType, o.Connections.Len())
	}
	if o.Connections.Len() == 0 && o.NumberOfVertices()%per != 0 {
		return invalid(o.Kind(), "%d vertices do not form whole %ss", o.NumberOfVertices(), o.PolygonType)
	}
	if err := checkIndices(o.Kind(), o.Connections, o.NumberOfVertices()); err != nil {
		return err
	}

	if err := checkRecords(o.Kind(), "colors", o.Colors.Len(), 3, o.ColorRecords(), true); err != nil {
		return err
	}
	if err := checkRecords(o.Kind(), "normals", o.Normals.Len(), 3, o.NormalRecords(), false); err != nil {
		return err
	}

	return checkRecords(o.Kind(), "opacities", o.Opacities.Len(), 1, o.NumberOfPolygons(), true)
}

func checkIndices(k Kind, conn array.Array[uint32], nvertices int) error {
	for i, idx := range conn.Values() {
		if int(idx) >= nvertices {
			return invalid(k, "connection %d refers to vertex %d of %d", i, idx, nvertices)
		}
	}

	return nil
}

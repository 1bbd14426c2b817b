package object

import (
	"math"

	"github.com/arloliu/kvsml/array"
)

// ValueRange is the optional min/max of a field.
type ValueRange struct {
	Min, Max float64
	Set      bool
}

// RangeOf computes the range of values. The range is unset for empty values.
func RangeOf(values array.AnyArray) ValueRange {
	lo, hi := values.MinMax()
	if math.IsNaN(lo) || math.IsNaN(hi) {
		return ValueRange{}
	}

	return ValueRange{Min: lo, Max: hi, Set: true}
}

// StructuredVolumeObject is a field sampled on a regular grid of
// Resolution[0] x Resolution[1] x Resolution[2] nodes.
//
// Values keep the element type they were written with. Coords depend on the
// grid type: none for uniform grids, Resolution[0]+Resolution[1]+Resolution[2]
// axis positions for rectilinear grids, three per node for curvilinear grids.
type StructuredVolumeObject struct {
	GridType   GridType
	Resolution [3]int
	Veclen     int
	Values     array.AnyArray
	Coords     array.Array[float32]
	Range      ValueRange
}

func (o *StructuredVolumeObject) Kind() Kind { return KindStructuredVolume }

// NumberOfNodes returns the product of the resolution.
func (o *StructuredVolumeObject) NumberOfNodes() int {
	return o.Resolution[0] * o.Resolution[1] * o.Resolution[2]
}

// CoordValues returns the number of coordinate values the grid type needs.
func (o *StructuredVolumeObject) CoordValues() int {
	switch o.GridType {
	case GridRectilinear:
		return o.Resolution[0] + o.Resolution[1] + o.Resolution[2]
	case GridCurvilinear:
		return 3 * o.NumberOfNodes()
	default:
		return 0
	}
}

func (o *StructuredVolumeObject) Validate() error {
	switch o.GridType {
	case GridUniform, GridRectilinear, GridCurvilinear:
	default:
		return invalid(o.Kind(), "grid type %s", o.GridType)
	}
	if o.Veclen <= 0 {
		return invalid(o.Kind(), "veclen %d", o.Veclen)
	}
	if want := o.Veclen * o.NumberOfNodes(); o.Values.Len() != want {
		return invalid(o.Kind(), "values hold %d elements, want %d", o.Values.Len(), want)
	}
	if want := o.CoordValues(); o.Coords.Len() != want {
		return invalid(o.Kind(), "%s grid needs %d coordinate values, got %d", o.GridType, want, o.Coords.Len())
	}

	return nil
}

// UnstructuredVolumeObject is a field on the nodes of a cell mesh.
type UnstructuredVolumeObject struct {
	CellType    CellType
	Veclen      int
	Coords      array.Array[float32]
	Values      array.AnyArray
	Connections array.Array[uint32]
	Range       ValueRange
}

func (o *UnstructuredVolumeObject) Kind() Kind { return KindUnstructuredVolume }

func (o *UnstructuredVolumeObject) NumberOfNodes() int {
	return o.Coords.Len() / 3
}

// NumberOfCells returns Connections.Len() / NodesPerCell.
func (o *UnstructuredVolumeObject) NumberOfCells() int {
	per := o.CellType.NodesPerCell()
	if per == 0 {
		return 0
	}

	return o.Connections.Len() / per
}

func (o *UnstructuredVolumeObject) Validate() error {
	per := o.CellType.NodesPerCell()
	if per == 0 {
		return invalid(o.Kind(), "cell type %s", o.CellType)
	}
	if o.Veclen <= 0 {
		return invalid(o.Kind(), "veclen %d", o.Veclen)
	}
	if o.Coords.Len()%3 != 0 {
		return invalid(o.Kind(), "coords hold %d values, not a multiple of 3", o.Coords.Len())
	}
	if want := o.Veclen * o.NumberOfNodes(); o.Values.Len() != want {
		return invalid(o.Kind(), "values hold %d elements, want %d", o.Values.Len(), want)
	}
	if o.Connections.Len()%per != 0 {
		return invalid(o.Kind(), "%s connections hold %d indices", o.CellType, o.Connections.Len())
	}

	return checkIndices(o.Kind(), o.Connections, o.NumberOfNodes())
}

package kvsml

import (
	"github.com/arloliu/kvsml/object"
	"github.com/arloliu/kvsml/tag"
)

const (
	tagNode = "Node"
	tagCell = "Cell"

	attrGridType   = "grid_type"
	attrResolution = "resolution"
	attrCellType   = "cell_type"
	attrNNodes     = "nnodes"
	attrNCells     = "ncells"
	attrVeclen     = "veclen"
)

// axisCoord stores rectilinear grid positions: one value per grid line.
var axisCoord = tag.Role{Name: tag.Coord.Name, ElementsPerRecord: 1, BaseTag: tag.Coord.BaseTag, Type: tag.Coord.Type}

// ReadStructuredVolumeObject reads a field on a regular grid.
//
//	<StructuredVolumeObject grid_type="uniform|rectilinear|curvilinear" resolution="X Y Z">
//	  <Node> <Value veclen="V" min_value="..." max_value="..."/> Coord? </Node>
//	</StructuredVolumeObject>
func ReadStructuredVolumeObject(path string, opts ...ReaderOption) (*object.StructuredVolumeObject, error) {
	r, err := openObject(path, object.KindStructuredVolume, opts...)
	if err != nil {
		return nil, err
	}

	obj := &object.StructuredVolumeObject{}
	if obj.GridType, err = enumAttr(r.body, attrGridType, object.ParseGridType); err != nil {
		return nil, err
	}
	res, err := tag.IntsAttr(r.body, attrResolution, 3)
	if err != nil {
		return nil, err
	}
	copy(obj.Resolution[:], res)

	node, err := tag.Child(r.body, tagNode)
	if err != nil {
		return nil, err
	}
	if obj.Values, obj.Veclen, obj.Range, err = readValues(r, node, obj.NumberOfNodes()); err != nil {
		return nil, err
	}

	switch obj.GridType { //nolint: exhaustive
	case object.GridRectilinear:
		obj.Coords, err = readRequired[float32](r, node, axisCoord, obj.CoordValues())
	case object.GridCurvilinear:
		obj.Coords, err = readRequired[float32](r, node, tag.Coord, obj.NumberOfNodes())
	}
	if err != nil {
		return nil, err
	}

	return obj, nil
}

// WriteStructuredVolumeObject writes obj to path. When obj.Range is unset the
// range is computed from the values.
func WriteStructuredVolumeObject(path string, obj *object.StructuredVolumeObject, opts ...WriterOption) error {
	w, err := newWriter(path, obj, opts...)
	if err != nil {
		return err
	}

	w.body.SetAttr(attrGridType, obj.GridType.String())
	tag.SetInts(w.body, attrResolution, obj.Resolution[:]...)

	node := w.body.AddChild(tagNode)
	if err := w.writeValues(node, obj.Veclen, obj.Values, obj.Range); err != nil {
		return err
	}

	switch obj.GridType { //nolint: exhaustive
	case object.GridRectilinear:
		_, err = w.write(node, axisCoord, obj.Coords.Any())
	case object.GridCurvilinear:
		_, err = w.write(node, tag.Coord, obj.Coords.Any())
	}
	if err != nil {
		return err
	}

	return w.save()
}

// ReadUnstructuredVolumeObject reads a field on a cell mesh.
//
//	<UnstructuredVolumeObject cell_type="tetrahedra|...">
//	  <Node nnodes="N"> <Value veclen="V"/> Coord </Node>
//	  <Cell ncells="M"> Connection </Cell>
//	</UnstructuredVolumeObject>
func ReadUnstructuredVolumeObject(path string, opts ...ReaderOption) (*object.UnstructuredVolumeObject, error) {
	r, err := openObject(path, object.KindUnstructuredVolume, opts...)
	if err != nil {
		return nil, err
	}

	obj := &object.UnstructuredVolumeObject{}
	if obj.CellType, err = enumAttr(r.body, attrCellType, object.ParseCellType); err != nil {
		return nil, err
	}

	node, err := tag.Child(r.body, tagNode)
	if err != nil {
		return nil, err
	}
	nnodes, err := tag.IntAttr(node, attrNNodes)
	if err != nil {
		return nil, err
	}
	if obj.Values, obj.Veclen, obj.Range, err = readValues(r, node, nnodes); err != nil {
		return nil, err
	}
	if obj.Coords, err = readRequired[float32](r, node, tag.Coord, nnodes); err != nil {
		return nil, err
	}

	cell, err := tag.Child(r.body, tagCell)
	if err != nil {
		return nil, err
	}
	ncells, err := tag.IntAttr(cell, attrNCells)
	if err != nil {
		return nil, err
	}
	if obj.Connections, err = readRequired[uint32](r, cell, tag.Connection(obj.CellType.NodesPerCell()), ncells); err != nil {
		return nil, err
	}

	return obj, nil
}

// WriteUnstructuredVolumeObject writes obj to path.
func WriteUnstructuredVolumeObject(path string, obj *object.UnstructuredVolumeObject, opts ...WriterOption) error {
	w, err := newWriter(path, obj, opts...)
	if err != nil {
		return err
	}

	w.body.SetAttr(attrCellType, obj.CellType.String())

	node := w.body.AddChild(tagNode)
	tag.SetInt(node, attrNNodes, obj.NumberOfNodes())
	if err := w.writeValues(node, obj.Veclen, obj.Values, obj.Range); err != nil {
		return err
	}
	if _, err := w.write(node, tag.Coord, obj.Coords.Any()); err != nil {
		return err
	}

	cell := w.body.AddChild(tagCell)
	tag.SetInt(cell, attrNCells, obj.NumberOfCells())
	if _, err := w.write(cell, tag.Connection(obj.CellType.NodesPerCell()), obj.Connections.Any()); err != nil {
		return err
	}

	return w.save()
}

package kvsml

import (
	"github.com/arloliu/kvsml/object"
	"github.com/arloliu/kvsml/tag"
)

const (
	tagVertex  = "Vertex"
	tagLine    = "Line"
	tagPolygon = "Polygon"

	attrNVertices   = "nvertices"
	attrNLines      = "nlines"
	attrNPolygons   = "npolygons"
	attrLineType    = "line_type"
	attrColorType   = "color_type"
	attrNormalType  = "normal_type"
	attrPolygonType = "polygon_type"
)

// ReadPointObject reads a point cloud.
//
//	<PointObject>
//	  <Vertex nvertices="N"> Coord Color? Normal? Size? </Vertex>
//	</PointObject>
func ReadPointObject(path string, opts ...ReaderOption) (*object.PointObject, error) {
	r, err := openObject(path, object.KindPoint, opts...)
	if err != nil {
		return nil, err
	}

	vertex, err := tag.Child(r.body, tagVertex)
	if err != nil {
		return nil, err
	}
	n, err := tag.IntAttr(vertex, attrNVertices)
	if err != nil {
		return nil, err
	}

	obj := &object.PointObject{}
	if obj.Coords, err = readRequired[float32](r, vertex, tag.Coord, n); err != nil {
		return nil, err
	}
	if obj.Colors, err = readAs[uint8](r, vertex, tag.Color, n); err != nil {
		return nil, err
	}
	if obj.Normals, err = readAs[float32](r, vertex, tag.Normal, n); err != nil {
		return nil, err
	}
	if obj.Sizes, err = readAs[float32](r, vertex, tag.Size, n); err != nil {
		return nil, err
	}

	return obj, nil
}

// WritePointObject writes obj to path. Optional arrays that are empty are
// omitted.
func WritePointObject(path string, obj *object.PointObject, opts ...WriterOption) error {
	w, err := newWriter(path, obj, opts...)
	if err != nil {
		return err
	}

	vertex := w.body.AddChild(tagVertex)
	tag.SetInt(vertex, attrNVertices, obj.NumberOfVertices())
	if _, err := w.write(vertex, tag.Coord, obj.Coords.Any()); err != nil {
		return err
	}
	if _, err := w.write(vertex, tag.Color, obj.Colors.Any()); err != nil {
		return err
	}
	if _, err := w.write(vertex, tag.Normal, obj.Normals.Any()); err != nil {
		return err
	}
	if _, err := w.write(vertex, tag.Size, obj.Sizes.Any()); err != nil {
		return err
	}

	return w.save()
}

// ReadLineObject reads a line set.
//
//	<LineObject line_type="..." color_type="vertex|line">
//	  <Vertex nvertices="N"> Coord Color? Size? </Vertex>
//	  <Line nlines="M"> Connection </Line>
//	</LineObject>
//
// Strip lines have no <Line> element.
func ReadLineObject(path string, opts ...ReaderOption) (*object.LineObject, error) {
	r, err := openObject(path, object.KindLine, opts...)
	if err != nil {
		return nil, err
	}

	obj := &object.LineObject{}
	if obj.LineType, err = enumAttr(r.body, attrLineType, object.ParseLineType); err != nil {
		return nil, err
	}
	if obj.ColorType, err = enumAttr(r.body, attrColorType, object.ParseColorType); err != nil {
		return nil, err
	}

	vertex, err := tag.Child(r.body, tagVertex)
	if err != nil {
		return nil, err
	}
	n, err := tag.IntAttr(vertex, attrNVertices)
	if err != nil {
		return nil, err
	}
	if obj.Coords, err = readRequired[float32](r, vertex, tag.Coord, n); err != nil {
		return nil, err
	}

	if per := obj.ConnectionsPerLine(); per > 0 {
		line, err := tag.Child(r.body, tagLine)
		if err != nil {
			return nil, err
		}
		nlines, err := tag.IntAttr(line, attrNLines)
		if err != nil {
			return nil, err
		}
		if obj.Connections, err = readRequired[uint32](r, line, tag.Connection(per), nlines); err != nil {
			return nil, err
		}
	}

	if obj.Colors, err = readAs[uint8](r, vertex, tag.Color, obj.ColorRecords()); err != nil {
		return nil, err
	}
	if obj.Sizes, err = readAs[float32](r, vertex, tag.Size, n); err != nil {
		return nil, err
	}

	return obj, nil
}

// WriteLineObject writes obj to path.
func WriteLineObject(path string, obj *object.LineObject, opts ...WriterOption) error {
	w, err := newWriter(path, obj, opts...)
	if err != nil {
		return err
	}

	w.body.SetAttr(attrLineType, obj.LineType.String())
	w.body.SetAttr(attrColorType, obj.ColorType.String())

	vertex := w.body.AddChild(tagVertex)
	tag.SetInt(vertex, attrNVertices, obj.NumberOfVertices())
	if _, err := w.write(vertex, tag.Coord, obj.Coords.Any()); err != nil {
		return err
	}
	if _, err := w.write(vertex, tag.Color, obj.Colors.Any()); err != nil {
		return err
	}
	if _, err := w.write(vertex, tag.Size, obj.Sizes.Any()); err != nil {
		return err
	}

	if per := obj.ConnectionsPerLine(); per > 0 {
		line := w.body.AddChild(tagLine)
		tag.SetInt(line, attrNLines, obj.NumberOfLines())
		if _, err := w.write(line, tag.Connection(per), obj.Connections.Any()); err != nil {
			return err
		}
	}

	return w.save()
}

// ReadPolygonObject reads a polygon mesh.
//
//	<PolygonObject polygon_type="triangle|quadrangle" color_type="vertex|polygon" normal_type="vertex|polygon">
//	  <Vertex nvertices="N"> Coord Color? Normal? </Vertex>
//	  <Polygon npolygons="M"> Connection? Opacity? </Polygon>
//	</PolygonObject>
//
// Without <Polygon> the vertices form the polygons in order.
func ReadPolygonObject(path string, opts ...ReaderOption) (*object.PolygonObject, error) {
	r, err := openObject(path, object.KindPolygon, opts...)
	if err != nil {
		return nil, err
	}

	obj := &object.PolygonObject{}
	if obj.PolygonType, err = enumAttr(r.body, attrPolygonType, object.ParsePolygonType); err != nil {
		return nil, err
	}
	if obj.ColorType, err = enumAttr(r.body, attrColorType, object.ParseColorType); err != nil {
		return nil, err
	}
	if obj.NormalType, err = enumAttr(r.body, attrNormalType, object.ParseNormalType); err != nil {
		return nil, err
	}

	vertex, err := tag.Child(r.body, tagVertex)
	if err != nil {
		return nil, err
	}
	n, err := tag.IntAttr(vertex, attrNVertices)
	if err != nil {
		return nil, err
	}
	if obj.Coords, err = readRequired[float32](r, vertex, tag.Coord, n); err != nil {
		return nil, err
	}

	per := obj.PolygonType.NodesPerPolygon()
	if polygon := r.body.Child(tagPolygon); polygon != nil {
		npolygons, err := tag.IntAttr(polygon, attrNPolygons)
		if err != nil {
			return nil, err
		}
		if obj.Connections, err = readAs[uint32](r, polygon, tag.Connection(per), npolygons); err != nil {
			return nil, err
		}
		if obj.Opacities, err = readAs[uint8](r, polygon, tag.Opacity, npolygons); err != nil {
			return nil, err
		}
	}

	if obj.Colors, err = readAs[uint8](r, vertex, tag.Color, obj.ColorRecords()); err != nil {
		return nil, err
	}
	if obj.Normals, err = readAs[float32](r, vertex, tag.Normal, obj.NormalRecords()); err != nil {
		return nil, err
	}

	return obj, nil
}

// WritePolygonObject writes obj to path. <Polygon> is written only when obj
// has connections or opacities.
func WritePolygonObject(path string, obj *object.PolygonObject, opts ...WriterOption) error {
	w, err := newWriter(path, obj, opts...)
	if err != nil {
		return err
	}

	w.body.SetAttr(attrPolygonType, obj.PolygonType.String())
	w.body.SetAttr(attrColorType, obj.ColorType.String())
	w.body.SetAttr(attrNormalType, obj.NormalType.String())

	vertex := w.body.AddChild(tagVertex)
	tag.SetInt(vertex, attrNVertices, obj.NumberOfVertices())
	if _, err := w.write(vertex, tag.Coord, obj.Coords.Any()); err != nil {
		return err
	}
	if _, err := w.write(vertex, tag.Color, obj.Colors.Any()); err != nil {
		return err
	}
	if _, err := w.write(vertex, tag.Normal, obj.Normals.Any()); err != nil {
		return err
	}

	if obj.Connections.Len() > 0 || obj.Opacities.Len() > 0 {
		polygon := w.body.AddChild(tagPolygon)
		tag.SetInt(polygon, attrNPolygons, obj.NumberOfPolygons())
		if _, err := w.write(polygon, tag.Connection(obj.PolygonType.NodesPerPolygon()), obj.Connections.Any()); err != nil {
			return err
		}
		if _, err := w.write(polygon, tag.Opacity, obj.Opacities.Any()); err != nil {
			return err
		}
	}

	return w.save()
}

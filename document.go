package kvsml

import (
	"fmt"

	"github.com/go-kit/log/level"

	"github.com/arloliu/kvsml/array"
	"github.com/arloliu/kvsml/errs"
	"github.com/arloliu/kvsml/object"
	"github.com/arloliu/kvsml/tag"
	"github.com/arloliu/kvsml/xmltree"
)

// Element and attribute names of the document skeleton.
const (
	TagRoot   = "KVSML"
	TagObject = "Object"

	AttrVersion = "version"
	AttrType    = "type"
)

// Detect reports the kind of object stored in the document at path.
func Detect(path string) (object.Kind, error) {
	doc, err := xmltree.Load(path)
	if err != nil {
		return object.KindUnknown, err
	}

	return detect(doc)
}

func detect(doc *xmltree.Document) (object.Kind, error) {
	if doc.Root.Name != TagRoot {
		return object.KindUnknown, fmt.Errorf("%w: %s: root element is <%s>, want <%s>",
			errs.ErrMalformedDocument, doc.Path, doc.Root.Name, TagRoot)
	}

	if doc.Root.Child(object.KindTransferFunction.String()) != nil {
		return object.KindTransferFunction, nil
	}

	obj, err := tag.Child(doc.Root, TagObject)
	if err != nil {
		return object.KindUnknown, err
	}
	name, err := tag.StringAttr(obj, AttrType)
	if err != nil {
		return object.KindUnknown, err
	}

	return object.ParseKind(name)
}

// reader holds the state of one Read call.
type reader struct {
	path string
	body *xmltree.Node
}

// openObject loads the document at path and returns the element holding an
// object of kind k.
func openObject(path string, k object.Kind, opts ...ReaderOption) (*reader, error) {
	cfg, err := NewReaderConfig(opts...)
	if err != nil {
		return nil, err
	}

	doc, err := xmltree.Load(path)
	if err != nil {
		return nil, err
	}

	found, err := detect(doc)
	if err != nil {
		return nil, err
	}
	if found != k {
		return nil, fmt.Errorf("%w: %s holds a %s, not a %s", errs.ErrUnsupportedObject, path, found, k)
	}

	parent := doc.Root
	if k != object.KindTransferFunction {
		parent = doc.Root.Child(TagObject)
	}
	body, err := tag.Child(parent, k.String())
	if err != nil {
		return nil, err
	}

	level.Debug(cfg.logger).Log("msg", "reading object", "kind", k, "path", path)

	return &reader{path: path, body: body}, nil
}

// readAs decodes a role whose element type is fixed by the role.
func readAs[T array.Number](r *reader, parent *xmltree.Node, role tag.Role, nrecords int) (array.Array[T], error) {
	data, err := tag.Read(r.path, parent, role, nrecords)
	if err != nil {
		return array.Array[T]{}, err
	}
	if typed, ok := array.As[T](data); ok {
		return typed, nil
	}

	return array.Convert[T](data), nil
}

// readRequired is readAs for roles that must be present.
func readRequired[T array.Number](r *reader, parent *xmltree.Node, role tag.Role, nrecords int) (array.Array[T], error) {
	if _, err := tag.Child(parent, role.Name); err != nil {
		return array.Array[T]{}, err
	}

	return readAs[T](r, parent, role, nrecords)
}

// readValues decodes a field, keeping its declared element type, and its
// optional min_value/max_value attributes.
func readValues(r *reader, parent *xmltree.Node, nnodes int) (array.AnyArray, int, object.ValueRange, error) {
	valueNode, err := tag.Child(parent, tag.Value(1).Name)
	if err != nil {
		return array.AnyArray{}, 0, object.ValueRange{}, err
	}

	veclen, err := tag.IntAttrOr(valueNode, attrVeclen, 1)
	if err != nil {
		return array.AnyArray{}, 0, object.ValueRange{}, err
	}

	values, err := tag.Read(r.path, parent, tag.Value(veclen), nnodes)
	if err != nil {
		return array.AnyArray{}, 0, object.ValueRange{}, err
	}

	var vr object.ValueRange
	minValue, hasMin, err := tag.FloatAttr(valueNode, attrMinValue)
	if err != nil {
		return array.AnyArray{}, 0, object.ValueRange{}, err
	}
	maxValue, hasMax, err := tag.FloatAttr(valueNode, attrMaxValue)
	if err != nil {
		return array.AnyArray{}, 0, object.ValueRange{}, err
	}
	if hasMin && hasMax {
		vr = object.ValueRange{Min: minValue, Max: maxValue, Set: true}
	}

	return values, veclen, vr, nil
}

// writer holds the state of one Write call.
type writer struct {
	path string
	doc  *xmltree.Document
	body *xmltree.Node
	cfg  *WriterConfig
}

// newWriter validates obj and builds the document skeleton around it.
func newWriter(path string, obj object.Object, opts ...WriterOption) (*writer, error) {
	cfg, err := NewWriterConfig(opts...)
	if err != nil {
		return nil, err
	}
	if err := obj.Validate(); err != nil {
		return nil, err
	}

	doc := xmltree.NewDocument(path, TagRoot)
	if cfg.version != "" {
		doc.Root.SetAttr(AttrVersion, cfg.version)
	}

	k := obj.Kind()
	parent := doc.Root
	if k != object.KindTransferFunction {
		parent = doc.Root.AddChild(TagObject)
		parent.SetAttr(AttrType, k.String())
	}

	return &writer{path: path, doc: doc, body: parent.AddChild(k.String()), cfg: cfg}, nil
}

// write stores data under parent with the configured encoding.
func (w *writer) write(parent *xmltree.Node, role tag.Role, data array.AnyArray) (*xmltree.Node, error) {
	return tag.Write(parent, role, data, w.cfg.encoding, w.path, w.cfg.encodeOptions()...)
}

// writeValues stores a field and its range.
func (w *writer) writeValues(parent *xmltree.Node, veclen int, values array.AnyArray, vr object.ValueRange) error {
	node, err := w.write(parent, tag.Value(veclen), values)
	if err != nil || node == nil {
		return err
	}

	tag.SetInt(node, attrVeclen, veclen)
	if !vr.Set {
		vr = object.RangeOf(values)
	}
	if vr.Set {
		tag.SetFloat(node, attrMinValue, vr.Min)
		tag.SetFloat(node, attrMaxValue, vr.Max)
	}

	return nil
}

func (w *writer) save() error {
	if err := w.doc.Save(); err != nil {
		return err
	}
	level.Debug(w.cfg.logger).Log("msg", "wrote document", "path", w.path, "encoding", w.cfg.encoding)

	return nil
}

// enumAttr parses a mandatory enum attribute of node.
func enumAttr[E any](node *xmltree.Node, name string, parse func(string) (E, error)) (E, error) {
	v, err := tag.StringAttr(node, name)
	if err != nil {
		var zero E
		return zero, err
	}

	e, err := parse(v)
	if err != nil {
		return e, fmt.Errorf("<%s>: %w", node.Name, err)
	}

	return e, nil
}

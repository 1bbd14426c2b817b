package tag

import (
	"fmt"

	"github.com/arloliu/kvsml/array"
	"github.com/arloliu/kvsml/dataarray"
	"github.com/arloliu/kvsml/errs"
	"github.com/arloliu/kvsml/format"
	"github.com/arloliu/kvsml/xmltree"
)

// fallbackType is used for dynamic roles whose array declares no type.
const fallbackType = format.TypeFloat32

// Read decodes the role element under parent.
//
// An absent element yields a copy of role.Default. A <DataValue> child holds
// one record; a <DataArray> child holds nrecords records. An element with
// neither fails with ErrMalformedArray.
func Read(documentPath string, parent *xmltree.Node, role Role, nrecords int) (array.AnyArray, error) {
	node := parent.Child(role.Name)
	if node == nil {
		return role.Default.Clone(), nil
	}

	var (
		arrayNode *xmltree.Node
		nelements int
	)
	if v := node.Child(dataarray.TagDataValue); v != nil {
		arrayNode, nelements = v, role.ElementsPerRecord
	} else if a := node.Child(dataarray.TagDataArray); a != nil {
		arrayNode, nelements = a, nrecords*role.ElementsPerRecord
	} else {
		return array.AnyArray{}, fmt.Errorf("<%s>: %w: neither <%s> nor <%s>",
			role.Name, errs.ErrMalformedArray, dataarray.TagDataValue, dataarray.TagDataArray)
	}

	loc, err := dataarray.Locate(documentPath, arrayNode)
	if err != nil {
		return array.AnyArray{}, fmt.Errorf("<%s>: %w", role.Name, err)
	}

	target := role.Type
	if role.IsDynamic() {
		target = loc.Type
		if !target.Valid() {
			target = fallbackType
		}
	}

	data, err := dataarray.Decode(loc, nelements, target)
	if err != nil {
		return array.AnyArray{}, fmt.Errorf("<%s>: %w", role.Name, err)
	}

	return data, nil
}

// Write appends the role element holding data to parent and returns it.
// Empty data writes nothing and returns nil. External encodings store the
// values next to the document at documentPath.
func Write(parent *xmltree.Node, role Role, data array.AnyArray, enc format.Encoding, documentPath string,
	opts ...dataarray.EncodeOption,
) (*xmltree.Node, error) {
	if data.IsEmpty() {
		return nil, nil //nolint: nilnil
	}

	node := parent.AddChild(role.Name)
	file := dataarray.ExternalFileName(documentPath, role.BaseTag)
	if err := dataarray.Encode(node, enc, data, role.ElementsPerRecord, file, opts...); err != nil {
		return nil, fmt.Errorf("<%s>: %w", role.Name, err)
	}

	return node, nil
}

package tag

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/arloliu/kvsml/errs"
	"github.com/arloliu/kvsml/xmltree"
)

// Child returns the first child element with the given name.
func Child(parent *xmltree.Node, name string) (*xmltree.Node, error) {
	c := parent.Child(name)
	if c == nil {
		return nil, fmt.Errorf("%w: <%s> has no <%s>", errs.ErrMissingTag, parent.Name, name)
	}

	return c, nil
}

// StringAttr returns a mandatory attribute.
func StringAttr(node *xmltree.Node, name string) (string, error) {
	v, ok := node.Attr(name)
	if !ok {
		return "", fmt.Errorf("%w: <%s> has no %q", errs.ErrMissingAttribute, node.Name, name)
	}

	return strings.TrimSpace(v), nil
}

// IntAttr returns a mandatory non-negative integer attribute.
func IntAttr(node *xmltree.Node, name string) (int, error) {
	v, err := StringAttr(node, name)
	if err != nil {
		return 0, err
	}

	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%w: <%s %s=%q>", errs.ErrInvalidAttribute, node.Name, name, v)
	}

	return n, nil
}

// IntAttrOr returns an optional non-negative integer attribute.
func IntAttrOr(node *xmltree.Node, name string, def int) (int, error) {
	if !node.HasAttr(name) {
		return def, nil
	}

	return IntAttr(node, name)
}

// FloatAttr returns an optional floating point attribute and whether it is set.
func FloatAttr(node *xmltree.Node, name string) (float64, bool, error) {
	v, ok := node.Attr(name)
	if !ok {
		return 0, false, nil
	}

	f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil {
		return 0, false, fmt.Errorf("%w: <%s %s=%q>", errs.ErrInvalidAttribute, node.Name, name, v)
	}

	return f, true, nil
}

// IntsAttr returns a mandatory attribute holding n whitespace separated
// non-negative integers, e.g. resolution="32 32 16".
func IntsAttr(node *xmltree.Node, name string, n int) ([]int, error) {
	v, err := StringAttr(node, name)
	if err != nil {
		return nil, err
	}

	fields := strings.Fields(v)
	if len(fields) != n {
		return nil, fmt.Errorf("%w: <%s %s=%q> needs %d values", errs.ErrInvalidAttribute, node.Name, name, v, n)
	}

	out := make([]int, n)
	for i, f := range fields {
		x, err := strconv.Atoi(f)
		if err != nil || x < 0 {
			return nil, fmt.Errorf("%w: <%s %s=%q>", errs.ErrInvalidAttribute, node.Name, name, v)
		}
		out[i] = x
	}

	return out, nil
}

// SetInt sets an integer attribute.
func SetInt(node *xmltree.Node, name string, v int) {
	node.SetAttr(name, strconv.Itoa(v))
}

// SetFloat sets a floating point attribute in shortest round-trip form.
func SetFloat(node *xmltree.Node, name string, v float64) {
	node.SetAttr(name, strconv.FormatFloat(v, 'g', -1, 64))
}

// SetInts sets an attribute holding space separated integers.
func SetInts(node *xmltree.Node, name string, values ...int) {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = strconv.Itoa(v)
	}
	node.SetAttr(name, strings.Join(parts, " "))
}

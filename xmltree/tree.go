// Package xmltree is the small XML element tree the KVSML layers read and build.
//
// A Document owns its nodes. Nodes are plain values linked by pointers and are
// only meant to be used while a document is being read or written; the object
// model never keeps them.
//
// Only elements, attributes and character data are modelled. Comments,
// processing instructions and namespaces are dropped on load.
package xmltree

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/arloliu/kvsml/errs"
)

// Node is one XML element.
type Node struct {
	Name     string
	Attrs    []xml.Attr
	Text     string
	Children []*Node
}

// NewNode returns an element with the given name.
func NewNode(name string) *Node {
	return &Node{Name: name}
}

// Attr returns the value of the named attribute.
func (n *Node) Attr(name string) (string, bool) {
	for _, a := range n.Attrs {
		if a.Name.Local == name {
			return a.Value, true
		}
	}

	return "", false
}

// HasAttr reports whether the named attribute is present.
func (n *Node) HasAttr(name string) bool {
	_, ok := n.Attr(name)
	return ok
}

// SetAttr sets or replaces an attribute, keeping insertion order.
func (n *Node) SetAttr(name, value string) {
	for i := range n.Attrs {
		if n.Attrs[i].Name.Local == name {
			n.Attrs[i].Value = value
			return
		}
	}
	n.Attrs = append(n.Attrs, xml.Attr{Name: xml.Name{Local: name}, Value: value})
}

// SetText replaces the character data of the element.
func (n *Node) SetText(text string) {
	n.Text = text
}

// Child returns the first child element with the given name, or nil.
func (n *Node) Child(name string) *Node {
	for _, c := range n.Children {
		if c.Name == name {
			return c
		}
	}

	return nil
}

// ChildrenNamed returns every child element with the given name.
func (n *Node) ChildrenNamed(name string) []*Node {
	var out []*Node
	for _, c := range n.Children {
		if c.Name == name {
			out = append(out, c)
		}
	}

	return out
}

// AddChild appends a new child element and returns it.
func (n *Node) AddChild(name string) *Node {
	c := NewNode(name)
	n.Children = append(n.Children, c)

	return c
}

// Document is an XML document bound to a file path. The path is used to
// resolve external data files relative to the document.
type Document struct {
	Path string
	Root *Node
}

// NewDocument returns an empty document with a root element.
func NewDocument(path, rootName string) *Document {
	return &Document{Path: path, Root: NewNode(rootName)}
}

// Dir returns the directory holding the document.
func (d *Document) Dir() string {
	return filepath.Dir(d.Path)
}

// Load reads and parses the document at path.
func Load(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", errs.ErrFileNotFound, path)
		}

		return nil, fmt.Errorf("%w: %w", errs.ErrIO, err)
	}
	defer f.Close()

	return Parse(f, path)
}

// Parse builds a document from r. path records where the document lives.
func Parse(r io.Reader, path string) (*Document, error) {
	dec := xml.NewDecoder(r)

	var (
		root  *Node
		stack []*Node
		text  []*strings.Builder
	)

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", errs.ErrMalformedDocument, path, err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			node := &Node{Name: t.Name.Local}
			for _, a := range t.Attr {
				if a.Name.Space == "xmlns" || a.Name.Local == "xmlns" {
					continue
				}
				node.Attrs = append(node.Attrs, xml.Attr{Name: xml.Name{Local: a.Name.Local}, Value: a.Value})
			}

			if len(stack) == 0 {
				if root != nil {
					return nil, fmt.Errorf("%w: %s: multiple root elements", errs.ErrMalformedDocument, path)
				}
				root = node
			} else {
				parent := stack[len(stack)-1]
				parent.Children = append(parent.Children, node)
			}
			stack = append(stack, node)
			text = append(text, &strings.Builder{})
		case xml.CharData:
			if len(text) > 0 {
				text[len(text)-1].Write(t)
			}
		case xml.EndElement:
			node := stack[len(stack)-1]
			node.Text = text[len(text)-1].String()
			stack = stack[:len(stack)-1]
			text = text[:len(text)-1]
		}
	}

	if root == nil {
		return nil, fmt.Errorf("%w: %s: no root element", errs.ErrMalformedDocument, path)
	}

	return &Document{Path: path, Root: root}, nil
}

// Save writes the document to its path.
func (d *Document) Save() error {
	var buf bytes.Buffer
	if err := d.Write(&buf); err != nil {
		return err
	}

	if err := os.WriteFile(d.Path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("%w: %w", errs.ErrIO, err)
	}

	return nil
}

// Write encodes the document with a declaration and two-space indentation.
func (d *Document) Write(w io.Writer) error {
	if d.Root == nil {
		return fmt.Errorf("%w: document has no root", errs.ErrMalformedDocument)
	}

	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}

	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := encodeNode(enc, d.Root); err != nil {
		return err
	}
	if err := enc.Flush(); err != nil {
		return err
	}
	_, err := io.WriteString(w, "\n")

	return err
}

func encodeNode(enc *xml.Encoder, n *Node) error {
	start := xml.StartElement{Name: xml.Name{Local: n.Name}, Attr: n.Attrs}
	if err := enc.EncodeToken(start); err != nil {
		return err
	}
	if text := strings.TrimSpace(n.Text); text != "" {
		if err := enc.EncodeToken(xml.CharData(text)); err != nil {
			return err
		}
	}
	for _, c := range n.Children {
		if err := encodeNode(enc, c); err != nil {
			return err
		}
	}

	return enc.EncodeToken(start.End())
}

package docfix

import (
	"bytes"
	"encoding/xml"
	"io"
	"strings"
)

// Attr is a single attribute on an Element. Name is the attribute exactly as
// written in the source (for example "w:before" or "cx"); Space and Local are
// the resolved namespace URI and local name used for lookups.
type Attr struct {
	Name  string
	Space string
	Local string
	Value string
}

// Element is a mutable node in a parsed XML part. Name is the qualified name
// exactly as written (for example "w:p"), so serialization reproduces the
// document's own prefixes. Space and Local are resolved from the xmlns
// declarations in scope at parse time.
//
// Text collects the character data directly inside the element. OOXML keeps
// text in leaf elements (w:t, a:t), so interleaving of text and child
// elements is not modeled; on serialization text is written before children.
type Element struct {
	Name     string
	Space    string
	Local    string
	Attrs    []Attr
	Children []*Element
	Text     string
}

// nsBinding records one xmlns declaration while parsing.
type nsBinding struct {
	prefix string
	uri    string
}

// rawName reconstructs a prefixed name from a raw (unresolved) xml.Name.
func rawName(n xml.Name) string {
	if n.Space == "" {
		return n.Local
	}
	return n.Space + ":" + n.Local
}

// splitPrefix splits a raw qualified name into prefix and local part.
func splitPrefix(name string) (prefix, local string) {
	if i := strings.IndexByte(name, ':'); i >= 0 {
		return name[:i], name[i+1:]
	}
	return "", name
}

// ParseXML parses an XML part into an Element tree. Parsing is lenient:
// strict well-formedness checks are relaxed, stray end tags are ignored, and
// unclosed elements are closed implicitly at end of input. An error is
// returned only when no root element can be recovered.
func ParseXML(data []byte) (*Element, error) {
	d := xml.NewDecoder(bytes.NewReader(data))
	d.Strict = false

	var (
		root     *Element
		stack    []*Element
		bindings []nsBinding
		marks    []int
	)

	resolve := func(prefix string) string {
		for i := len(bindings) - 1; i >= 0; i-- {
			if bindings[i].prefix == prefix {
				return bindings[i].uri
			}
		}
		if prefix == "xml" {
			return NSXML
		}
		return ""
	}

	for {
		tok, err := d.RawToken()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			marks = append(marks, len(bindings))
			for _, a := range t.Attr {
				switch {
				case a.Name.Space == "" && a.Name.Local == "xmlns":
					bindings = append(bindings, nsBinding{prefix: "", uri: a.Value})
				case a.Name.Space == "xmlns":
					bindings = append(bindings, nsBinding{prefix: a.Name.Local, uri: a.Value})
				}
			}

			el := &Element{
				Name:  rawName(t.Name),
				Local: t.Name.Local,
			}
			if t.Name.Space != "" {
				el.Space = resolve(t.Name.Space)
			} else {
				el.Space = resolve("")
			}
			for _, a := range t.Attr {
				attr := Attr{
					Name:  rawName(a.Name),
					Local: a.Name.Local,
					Value: a.Value,
				}
				switch {
				case a.Name.Space == "xmlns" || (a.Name.Space == "" && a.Name.Local == "xmlns"):
					attr.Space = NSXMLNS
				case a.Name.Space != "":
					attr.Space = resolve(a.Name.Space)
				}
				el.Attrs = append(el.Attrs, attr)
			}

			if len(stack) > 0 {
				parent := stack[len(stack)-1]
				parent.Children = append(parent.Children, el)
			} else if root == nil {
				root = el
			}
			stack = append(stack, el)

		case xml.EndElement:
			name := rawName(t.Name)
			// Find the matching open element; close anything above it.
			match := -1
			for i := len(stack) - 1; i >= 0; i-- {
				if stack[i].Name == name {
					match = i
					break
				}
			}
			if match < 0 {
				continue // stray end tag
			}
			stack = stack[:match]
			bindings = bindings[:marks[match]]
			marks = marks[:match]

		case xml.CharData:
			if len(stack) > 0 {
				cur := stack[len(stack)-1]
				cur.Text += string(t)
			}
		}
	}

	if root == nil {
		return nil, io.ErrUnexpectedEOF
	}
	return root, nil
}

// xmlDeclaration is the declaration emitted for every re-serialized part.
// Word requires standalone="yes" on its XML parts.
const xmlDeclaration = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` + "\n"

// SerializeXML renders the tree back to bytes with a UTF-8 declaration.
func SerializeXML(root *Element) []byte {
	var buf bytes.Buffer
	buf.WriteString(xmlDeclaration)
	root.appendXML(&buf)
	return buf.Bytes()
}

func (e *Element) appendXML(buf *bytes.Buffer) {
	buf.WriteByte('<')
	buf.WriteString(e.Name)
	for _, a := range e.Attrs {
		buf.WriteByte(' ')
		buf.WriteString(a.Name)
		buf.WriteString(`="`)
		xml.EscapeText(buf, []byte(a.Value)) //nolint:errcheck // bytes.Buffer writes cannot fail
		buf.WriteByte('"')
	}
	if len(e.Children) == 0 && e.Text == "" {
		buf.WriteString("/>")
		return
	}
	buf.WriteByte('>')
	if e.Text != "" {
		xml.EscapeText(buf, []byte(e.Text)) //nolint:errcheck
	}
	for _, c := range e.Children {
		c.appendXML(buf)
	}
	buf.WriteString("</")
	buf.WriteString(e.Name)
	buf.WriteByte('>')
}

// NewElement creates an element with a canonical OOXML prefix, resolving its
// namespace through the registry in ns.go.
func NewElement(prefix, local string) *Element {
	name := local
	if prefix != "" {
		name = prefix + ":" + local
	}
	return &Element{
		Name:  name,
		Space: namespaceByPrefix[prefix],
		Local: local,
	}
}

// Find returns the first direct child with the given namespace and local name.
func (e *Element) Find(space, local string) *Element {
	for _, c := range e.Children {
		if c.Space == space && c.Local == local {
			return c
		}
	}
	return nil
}

// FindAll returns every descendant (not including e itself) with the given
// namespace and local name, in document order.
func (e *Element) FindAll(space, local string) []*Element {
	var out []*Element
	for _, c := range e.Children {
		if c.Space == space && c.Local == local {
			out = append(out, c)
		}
		out = append(out, c.FindAll(space, local)...)
	}
	return out
}

// FindDescendant returns the first descendant with the given namespace and
// local name, or nil.
func (e *Element) FindDescendant(space, local string) *Element {
	for _, c := range e.Children {
		if c.Space == space && c.Local == local {
			return c
		}
		if d := c.FindDescendant(space, local); d != nil {
			return d
		}
	}
	return nil
}

// AttrValue looks up an attribute by its raw qualified name ("w:before",
// "cx"). The match is by resolved namespace and local name, so a document
// using an unconventional prefix for the same namespace still matches.
func (e *Element) AttrValue(name string) (string, bool) {
	space, local := resolveAttrName(name)
	for _, a := range e.Attrs {
		if a.Local == local && (a.Space == space || (a.Space == "" && space == "")) {
			return a.Value, true
		}
	}
	return "", false
}

// SetAttr sets an attribute by raw qualified name, updating an existing
// attribute with the same resolved name or appending a new one.
func (e *Element) SetAttr(name, value string) {
	space, local := resolveAttrName(name)
	for i := range e.Attrs {
		if e.Attrs[i].Local == local && e.Attrs[i].Space == space {
			e.Attrs[i].Value = value
			return
		}
	}
	e.Attrs = append(e.Attrs, Attr{Name: name, Space: space, Local: local, Value: value})
}

func resolveAttrName(name string) (space, local string) {
	prefix, local := splitPrefix(name)
	if prefix == "" {
		return "", local
	}
	return namespaceByPrefix[prefix], local
}

// AppendChild adds a child at the end of the element.
func (e *Element) AppendChild(c *Element) {
	e.Children = append(e.Children, c)
}

// InsertChildAt inserts a child at position i, clamped to the valid range.
func (e *Element) InsertChildAt(i int, c *Element) {
	if i < 0 {
		i = 0
	}
	if i > len(e.Children) {
		i = len(e.Children)
	}
	e.Children = append(e.Children, nil)
	copy(e.Children[i+1:], e.Children[i:])
	e.Children[i] = c
}

// RemoveChild removes a direct child, reporting whether it was present.
func (e *Element) RemoveChild(c *Element) bool {
	for i, cur := range e.Children {
		if cur == c {
			e.Children = append(e.Children[:i], e.Children[i+1:]...)
			return true
		}
	}
	return false
}

// ReplaceChild swaps old for new in place, reporting whether old was present.
func (e *Element) ReplaceChild(old, repl *Element) bool {
	for i, cur := range e.Children {
		if cur == old {
			e.Children[i] = repl
			return true
		}
	}
	return false
}

// Clone returns a deep copy of the element and its subtree.
func (e *Element) Clone() *Element {
	cp := &Element{
		Name:  e.Name,
		Space: e.Space,
		Local: e.Local,
		Text:  e.Text,
	}
	if len(e.Attrs) > 0 {
		cp.Attrs = make([]Attr, len(e.Attrs))
		copy(cp.Attrs, e.Attrs)
	}
	for _, c := range e.Children {
		cp.Children = append(cp.Children, c.Clone())
	}
	return cp
}

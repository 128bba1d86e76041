package docfix

import (
	"bytes"
	"strings"
	"testing"
)

func mustParse(t *testing.T, source string) *Element {
	t.Helper()
	root, err := ParseXML([]byte(source))
	if err != nil {
		t.Fatalf("ParseXML() error = %v", err)
	}
	return root
}

func TestParseXML_RoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{
			name:  "simple document",
			input: `<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body><w:p><w:r><w:t>Hello</w:t></w:r></w:p></w:body></w:document>`,
		},
		{
			name:  "self-closing elements",
			input: `<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body><w:p/><w:p/></w:body></w:document>`,
		},
		{
			name:  "attributes preserved in order",
			input: `<w:spacing xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main" w:before="120" w:after="120" w:line="240" w:lineRule="auto"/>`,
		},
		{
			name:  "multiple namespaces",
			input: `<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main" xmlns:wp="http://schemas.openxmlformats.org/drawingml/2006/wordprocessingDrawing"><w:body><w:p><w:r><w:drawing><wp:inline distT="0" distB="0"/></w:drawing></w:r></w:p></w:body></w:document>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := mustParse(t, tt.input)
			got := SerializeXML(root)
			want := xmlDeclaration + tt.input
			if string(got) != want {
				t.Errorf("round trip mismatch:\n got: %s\nwant: %s", got, want)
			}
		})
	}
}

func TestParseXML_NamespaceResolution(t *testing.T) {
	// The prefix is unconventional but binds the WordprocessingML URI, so
	// namespace-qualified lookups still work.
	root := mustParse(t, `<x:document xmlns:x="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><x:body><x:p><x:pPr><x:spacing x:before="200"/></x:pPr></x:p></x:body></x:document>`)

	body := root.FindDescendant(NSWordML, "body")
	if body == nil {
		t.Fatal("body not found under unconventional prefix")
	}
	spacing := body.FindDescendant(NSWordML, "spacing")
	if spacing == nil {
		t.Fatal("spacing not found under unconventional prefix")
	}
	if got, ok := spacing.AttrValue("w:before"); !ok || got != "200" {
		t.Errorf("AttrValue(w:before) = %q, %v; want 200, true", got, ok)
	}
	// Serialization keeps the document's own prefix.
	if !bytes.Contains(SerializeXML(root), []byte("<x:spacing")) {
		t.Error("serialization did not preserve the original prefix")
	}
}

func TestParseXML_Lenient(t *testing.T) {
	tests := []struct {
		name  string
		input string
		check func(t *testing.T, root *Element)
	}{
		{
			name:  "stray end tag ignored",
			input: `<doc><a/></b><c/></doc>`,
			check: func(t *testing.T, root *Element) {
				if len(root.Children) != 2 {
					t.Errorf("got %d children, want 2", len(root.Children))
				}
			},
		},
		{
			name:  "unclosed element closed at end of input",
			input: `<doc><a><b>text`,
			check: func(t *testing.T, root *Element) {
				a := root.Find("", "a")
				if a == nil {
					t.Fatal("unclosed child lost")
				}
				b := a.Find("", "b")
				if b == nil || b.Text != "text" {
					t.Errorf("nested unclosed element not recovered: %+v", b)
				}
			},
		},
		{
			name:  "mismatched end closes intervening elements",
			input: `<doc><a><b></a><c/></doc>`,
			check: func(t *testing.T, root *Element) {
				if len(root.Children) != 2 {
					t.Errorf("got %d root children, want 2", len(root.Children))
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root, err := ParseXML([]byte(tt.input))
			if err != nil {
				t.Fatalf("ParseXML() error = %v", err)
			}
			tt.check(t, root)
		})
	}
}

func TestParseXML_NoRoot(t *testing.T) {
	for _, input := range []string{"", "   ", "<?xml version=\"1.0\"?>"} {
		if _, err := ParseXML([]byte(input)); err == nil {
			t.Errorf("ParseXML(%q) expected error, got nil", input)
		}
	}
}

func TestSerializeXML_Escaping(t *testing.T) {
	el := NewElement("w", "t")
	el.Text = "a < b & c"
	el.SetAttr("val", `say "hi" & <go>`)

	got := string(SerializeXML(el))
	if !strings.Contains(got, "a &lt; b &amp; c") {
		t.Errorf("text not escaped: %s", got)
	}
	if strings.Contains(got, `<go>`) {
		t.Errorf("attribute value not escaped: %s", got)
	}
}

func TestElement_FindAll(t *testing.T) {
	root := mustParse(t, `<w:body xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:p/><w:tbl><w:tr><w:tc><w:p/></w:tc></w:tr></w:tbl><w:p/></w:body>`)

	paras := root.FindAll(NSWordML, "p")
	if len(paras) != 3 {
		t.Errorf("FindAll(p) found %d, want 3 (including nested)", len(paras))
	}
}

func TestElement_InsertChildAt(t *testing.T) {
	parent := NewElement("w", "p")
	parent.AppendChild(NewElement("w", "r"))

	pPr := NewElement("w", "pPr")
	parent.InsertChildAt(0, pPr)

	if parent.Children[0] != pPr {
		t.Error("InsertChildAt(0) did not place element first")
	}
	if len(parent.Children) != 2 {
		t.Errorf("got %d children, want 2", len(parent.Children))
	}

	// Out-of-range positions clamp.
	tail := NewElement("w", "r")
	parent.InsertChildAt(99, tail)
	if parent.Children[len(parent.Children)-1] != tail {
		t.Error("InsertChildAt beyond end did not append")
	}
}

func TestElement_ReplaceChild(t *testing.T) {
	parent := NewElement("w", "drawing")
	old := NewElement("wp", "anchor")
	parent.AppendChild(old)

	repl := NewElement("wp", "inline")
	if !parent.ReplaceChild(old, repl) {
		t.Fatal("ReplaceChild reported old element absent")
	}
	if parent.Children[0] != repl {
		t.Error("ReplaceChild did not swap in place")
	}
	if parent.ReplaceChild(old, repl) {
		t.Error("ReplaceChild matched an already-removed element")
	}
}

func TestElement_Clone(t *testing.T) {
	orig := mustParse(t, `<a:graphic xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main"><a:graphicData uri="pic"><a:blip embed="rId5"/></a:graphicData></a:graphic>`)

	cp := orig.Clone()
	cp.Children[0].SetAttr("uri", "changed")
	cp.Children[0].Children[0].Attrs[0].Value = "rId9"

	if v, _ := orig.Children[0].AttrValue("uri"); v != "pic" {
		t.Error("mutating the clone changed the original attribute")
	}
	if orig.Children[0].Children[0].Attrs[0].Value != "rId5" {
		t.Error("mutating the clone changed a nested original attribute")
	}
}

func TestElement_SetAttr(t *testing.T) {
	el := NewElement("w", "spacing")
	el.SetAttr("w:before", "600")
	el.SetAttr("w:before", "160")

	if len(el.Attrs) != 1 {
		t.Fatalf("got %d attributes, want 1 after update", len(el.Attrs))
	}
	if v, _ := el.AttrValue("w:before"); v != "160" {
		t.Errorf("AttrValue(w:before) = %q, want 160", v)
	}
}

package docfix

// patchDocument applies the enabled fixers to word/document.xml. The fixers
// are independent of each other, but they run in a fixed order so identical
// input always yields identical output: spacing, indentation, fonts, images,
// tables.
func patchDocument(data []byte, opts Options, log *patchLog) ([]byte, error) {
	root, err := ParseXML(data)
	if err != nil {
		return nil, NewParseError(documentPart, err)
	}

	body := root.FindDescendant(NSWordML, "body")
	if body == nil {
		// Nothing to patch; hand the part back untouched.
		return data, nil
	}

	if opts.FixSpacing || opts.FixMargins || opts.FixFonts {
		for _, para := range body.FindAll(NSWordML, "p") {
			pPr := para.Find(NSWordML, "pPr")
			if pPr == nil && opts.FixSpacing {
				pPr = NewElement("w", "pPr")
				para.InsertChildAt(0, pPr)
			}
			if pPr != nil {
				if opts.FixSpacing {
					fixParagraphSpacing(pPr)
				}
				if opts.FixMargins {
					fixIndentation(pPr)
				}
			}
			if opts.FixFonts {
				fixRunFonts(para)
			}
		}
	}

	if opts.FixImages {
		if fixFloatingImages(body, log) > 0 {
			// The rebuilt inline elements use the canonical wp: and a:
			// prefixes; make sure the root binds them.
			ensureNamespace(root, "wp", NSWPDrawing)
			ensureNamespace(root, "a", NSDrawingML)
		}
	}
	if opts.FixTables {
		fixTables(body)
	}

	return SerializeXML(root), nil
}

// ensureNamespace adds an xmlns declaration for prefix on the root if no
// declaration with that prefix exists yet.
func ensureNamespace(root *Element, prefix, uri string) {
	name := "xmlns:" + prefix
	for _, a := range root.Attrs {
		if a.Name == name {
			return
		}
	}
	root.Attrs = append(root.Attrs, Attr{Name: name, Space: NSXMLNS, Local: prefix, Value: uri})
}

// patchSettings removes legacy rendering-compatibility flags from
// word/settings.xml. When there is nothing to strip the original bytes pass
// through untouched.
func patchSettings(data []byte, _ Options, _ *patchLog) ([]byte, error) {
	root, err := ParseXML(data)
	if err != nil {
		return nil, NewParseError(settingsPart, err)
	}

	compat := root.Find(NSWordML, "compat")
	if compat == nil {
		return data, nil
	}

	changed := false
	for _, flag := range compatFlagDenylist {
		if el := compat.Find(NSWordML, flag); el != nil {
			compat.RemoveChild(el)
			changed = true
		}
	}
	if !changed {
		return data, nil
	}
	return SerializeXML(root), nil
}

// compatFlagDenylist names the compatibility modes that force legacy layout
// behavior Word Online cannot reproduce. Any other flag is retained.
var compatFlagDenylist = []string{
	"useWord2002TableStyleRules",
	"useWord97LineBreakRules",
	"useWord2003FootnoteLineBreakRules",
	"growAutofit",
}

// patchStyles substitutes unsafe fonts in word/styles.xml. This is a plain
// textual substitution rather than a tree edit: font references in style
// definitions appear under several shapes depending on the style type, and
// the replacement strings are full font-family names that occur nowhere else
// in the part.
func patchStyles(data []byte, _ Options, _ *patchLog) ([]byte, error) {
	return substituteStyleFonts(data), nil
}

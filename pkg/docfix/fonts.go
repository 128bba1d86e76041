package docfix

import "bytes"

// unsafeFonts maps fonts that are unavailable or broken in Word Online to
// safe equivalents. Fonts not listed here are never touched.
var unsafeFonts = map[string]string{
	"Calibri Light": "Calibri",
	"Cambria Math":  "Cambria",
	"Symbol":        "Arial",
	"Wingdings":     "Arial",
	"Wingdings 2":   "Arial",
	"Wingdings 3":   "Arial",
	"Webdings":      "Arial",
}

// styleFontSubstitutions is the subset applied textually to the styles part.
// Symbol-font substitution is left to the run-level fixer: symbol fonts carry
// private-use glyphs, and rewriting them at style scope would also affect
// runs the document-level pass deliberately skips.
var styleFontSubstitutions = map[string]string{
	"Calibri Light": "Calibri",
	"Cambria Math":  "Cambria",
}

// fixRunFonts substitutes unsafe fonts on every run-properties element in the
// paragraph. All font-role attributes of w:rFonts (ascii, hAnsi, cs,
// eastAsia, theme fallbacks) are checked by value.
func fixRunFonts(para *Element) {
	for _, rPr := range para.FindAll(NSWordML, "rPr") {
		rFonts := rPr.Find(NSWordML, "rFonts")
		if rFonts == nil {
			continue
		}
		for i := range rFonts.Attrs {
			if repl, ok := unsafeFonts[rFonts.Attrs[i].Value]; ok {
				rFonts.Attrs[i].Value = repl
			}
		}
	}
}

// substituteStyleFonts applies the style-level font substitutions to the raw
// bytes of the styles part.
func substituteStyleFonts(data []byte) []byte {
	for old, repl := range styleFontSubstitutions {
		data = bytes.ReplaceAll(data, []byte(old), []byte(repl))
	}
	return data
}

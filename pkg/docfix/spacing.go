package docfix

import "strconv"

// Spacing policy for Word Online / Teams rendering:
//   - space-before and space-after capped at 160 twips (about 8pt)
//   - exact / atLeast line heights above 480 become 1.15x relative spacing
//   - runaway relative ("auto") line heights capped at 2x
const (
	maxSpacingTwips     = 160
	maxFixedLineTwips   = 480
	relativeLineDefault = 276 // 1.15x in 240ths
	maxAutoLine         = 720
	cappedAutoLine      = 480 // 2x in 240ths
)

// maxIndentTwips is the largest indent left alone, 5cm either direction.
const maxIndentTwips = 2880

// fixParagraphSpacing normalizes the w:spacing child of a paragraph's
// properties, creating an empty one when absent so repeated runs behave
// identically. Values the source did not write as integers are never touched.
func fixParagraphSpacing(pPr *Element) {
	spacing := pPr.Find(NSWordML, "spacing")
	if spacing == nil {
		spacing = NewElement("w", "spacing")
		pPr.AppendChild(spacing)
	}

	clampSpacingAttr(spacing, "w:before")
	clampSpacingAttr(spacing, "w:after")

	line, ok := spacingInt(spacing, "w:line")
	if !ok {
		return
	}
	lineRule, _ := spacing.AttrValue("w:lineRule")

	switch lineRule {
	case "exact", "atLeast":
		if line > maxFixedLineTwips {
			spacing.SetAttr("w:line", strconv.Itoa(relativeLineDefault))
			spacing.SetAttr("w:lineRule", "auto")
		}
	case "auto":
		if line > maxAutoLine {
			spacing.SetAttr("w:line", strconv.Itoa(cappedAutoLine))
		}
	}
}

func clampSpacingAttr(spacing *Element, name string) {
	n, ok := spacingInt(spacing, name)
	if !ok {
		return
	}
	// The value is non-negative as written but may carry a sign; compare its
	// magnitude against the ceiling.
	if abs(n) > maxSpacingTwips {
		spacing.SetAttr(name, strconv.Itoa(maxSpacingTwips))
	}
}

func spacingInt(el *Element, name string) (int, bool) {
	val, ok := el.AttrValue(name)
	if !ok {
		return 0, false
	}
	return parseTwips(val)
}

// fixIndentation zeroes unusually large indents that push content out of the
// viewer's layout area. It only edits an existing w:ind element.
func fixIndentation(pPr *Element) {
	ind := pPr.Find(NSWordML, "ind")
	if ind == nil {
		return
	}
	for _, name := range []string{"w:left", "w:right", "w:hanging"} {
		if n, ok := spacingInt(ind, name); ok && abs(n) > maxIndentTwips {
			ind.SetAttr(name, "0")
		}
	}
}

// parseTwips reads a signed integer measurement. Anything the source did not
// express as an integer reports false and is left untouched by the fixers.
func parseTwips(s string) (int, bool) {
	if s == "" {
		return 0, false
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return n, true
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

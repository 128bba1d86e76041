package docfix

// Default drawing size used when an anchor carries no extent, in EMUs.
const (
	defaultExtentCx = "3000000"
	defaultExtentCy = "2000000"
)

// inlineTextGap is the left/right distance of a rebuilt inline drawing,
// 0.3cm in EMUs, the standard text-wrap gap.
const inlineTextGap = "114240"

// fixFloatingImages converts floating (anchored) drawings to inline so they
// keep their position in Word Online / Teams. The anchor's positioning
// metadata (wrap type, z-order, offsets) has no inline equivalent and is
// dropped; its extent, identity block, and graphic payload carry over.
//
// An anchor without a graphic payload cannot form a valid inline and is left
// untouched, recorded as a skip. Returns the number of converted drawings.
func fixFloatingImages(body *Element, log *patchLog) int {
	converted := 0
	for _, drawing := range body.FindAll(NSWordML, "drawing") {
		anchor := drawing.Find(NSWPDrawing, "anchor")
		if anchor == nil {
			continue
		}

		graphic := anchor.FindDescendant(NSDrawingML, "graphic")
		if graphic == nil {
			log.skip("wp:anchor", "no graphic payload")
			continue
		}

		cx, cy := defaultExtentCx, defaultExtentCy
		if extent := anchor.Find(NSWPDrawing, "extent"); extent != nil {
			if v, ok := extent.AttrValue("cx"); ok {
				cx = v
			}
			if v, ok := extent.AttrValue("cy"); ok {
				cy = v
			}
		}

		inline := NewElement("wp", "inline")
		inline.SetAttr("distT", "0")
		inline.SetAttr("distB", "0")
		inline.SetAttr("distL", inlineTextGap)
		inline.SetAttr("distR", inlineTextGap)

		extent := NewElement("wp", "extent")
		extent.SetAttr("cx", cx)
		extent.SetAttr("cy", cy)
		inline.AppendChild(extent)

		effectExtent := NewElement("wp", "effectExtent")
		for _, side := range []string{"l", "t", "r", "b"} {
			effectExtent.SetAttr(side, "0")
		}
		inline.AppendChild(effectExtent)

		if docPr := anchor.Find(NSWPDrawing, "docPr"); docPr != nil {
			inline.AppendChild(docPr.Clone())
		}

		framePr := NewElement("wp", "cNvGraphicFramePr")
		locks := NewElement("a", "graphicFrameLocks")
		locks.SetAttr("noChangeAspect", "1")
		framePr.AppendChild(locks)
		inline.AppendChild(framePr)

		inline.AppendChild(graphic.Clone())

		drawing.ReplaceChild(anchor, inline)
		converted++
	}
	return converted
}

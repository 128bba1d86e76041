package docfix

// defaultCellMarginTwips is the minimal cell padding inserted for tables that
// declare none; without it Teams renders cell content flush against borders.
const defaultCellMarginTwips = "80"

// fixTables ensures every table carries default cell margins. A table gains a
// w:tblPr as its first child if missing, and the tblPr gains a w:tblCellMar
// as its first child if missing. Existing margins are never modified.
func fixTables(body *Element) {
	for _, tbl := range body.FindAll(NSWordML, "tbl") {
		tblPr := tbl.Find(NSWordML, "tblPr")
		if tblPr == nil {
			tblPr = NewElement("w", "tblPr")
			tbl.InsertChildAt(0, tblPr)
		}

		if tblPr.Find(NSWordML, "tblCellMar") != nil {
			continue
		}

		cellMar := NewElement("w", "tblCellMar")
		for _, side := range []string{"top", "left", "bottom", "right"} {
			margin := NewElement("w", side)
			margin.SetAttr("w:w", defaultCellMarginTwips)
			margin.SetAttr("w:type", "dxa")
			cellMar.AppendChild(margin)
		}
		tblPr.InsertChildAt(0, cellMar)
	}
}

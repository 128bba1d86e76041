package docfix

import "testing"

func TestFixTables_InsertsCellMargins(t *testing.T) {
	body := mustParse(t, `<w:body `+wNS+`><w:tbl><w:tblPr><w:tblW w:w="0" w:type="auto"/></w:tblPr><w:tr><w:tc><w:p/></w:tc></w:tr></w:tbl></w:body>`)
	fixTables(body)

	tblPr := body.FindDescendant(NSWordML, "tblPr")
	cellMar := tblPr.Find(NSWordML, "tblCellMar")
	if cellMar == nil {
		t.Fatal("tblCellMar not inserted")
	}
	if tblPr.Children[0] != cellMar {
		t.Error("tblCellMar is not the first tblPr child")
	}

	for _, side := range []string{"top", "left", "bottom", "right"} {
		margin := cellMar.Find(NSWordML, side)
		if margin == nil {
			t.Fatalf("missing %s margin", side)
		}
		if w, _ := margin.AttrValue("w:w"); w != defaultCellMarginTwips {
			t.Errorf("%s margin w = %q, want %s", side, w, defaultCellMarginTwips)
		}
		if typ, _ := margin.AttrValue("w:type"); typ != "dxa" {
			t.Errorf("%s margin type = %q, want dxa", side, typ)
		}
	}
}

func TestFixTables_CreatesMissingTblPr(t *testing.T) {
	body := mustParse(t, `<w:body `+wNS+`><w:tbl><w:tr><w:tc><w:p/></w:tc></w:tr></w:tbl></w:body>`)
	fixTables(body)

	tbl := body.Find(NSWordML, "tbl")
	tblPr := tbl.Find(NSWordML, "tblPr")
	if tblPr == nil {
		t.Fatal("tblPr not created")
	}
	if tbl.Children[0] != tblPr {
		t.Error("created tblPr is not the first table child")
	}
	if tblPr.Find(NSWordML, "tblCellMar") == nil {
		t.Error("created tblPr has no cell margins")
	}
}

func TestFixTables_ExistingMarginsUntouched(t *testing.T) {
	source := `<w:body ` + wNS + `><w:tbl><w:tblPr><w:tblCellMar><w:left w:w="200" w:type="dxa"/></w:tblCellMar></w:tblPr><w:tr><w:tc><w:p/></w:tc></w:tr></w:tbl></w:body>`
	body := mustParse(t, source)
	fixTables(body)

	if string(SerializeXML(body)) != xmlDeclaration+source {
		t.Error("table with existing cell margins was modified")
	}
}

func TestFixTables_NestedTables(t *testing.T) {
	body := mustParse(t, `<w:body `+wNS+`><w:tbl><w:tr><w:tc><w:tbl><w:tr><w:tc><w:p/></w:tc></w:tr></w:tbl><w:p/></w:tc></w:tr></w:tbl></w:body>`)
	fixTables(body)

	tables := body.FindAll(NSWordML, "tbl")
	if len(tables) != 2 {
		t.Fatalf("found %d tables, want 2", len(tables))
	}
	for i, tbl := range tables {
		if tbl.FindDescendant(NSWordML, "tblCellMar") == nil {
			t.Errorf("table %d missing cell margins", i)
		}
	}
}

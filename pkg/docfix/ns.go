package docfix

// OOXML namespace URIs used by the fixers. These are fixed by the ECMA-376
// standard and never change at runtime.
const (
	// NSWordML is the main WordprocessingML namespace (prefix "w").
	NSWordML = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"
	// NSWPDrawing is the wordprocessing drawing namespace (prefix "wp").
	NSWPDrawing = "http://schemas.openxmlformats.org/drawingml/2006/wordprocessingDrawing"
	// NSDrawingML is the main DrawingML namespace (prefix "a").
	NSDrawingML = "http://schemas.openxmlformats.org/drawingml/2006/main"
	// NSPicture is the DrawingML picture namespace (prefix "pic").
	NSPicture = "http://schemas.openxmlformats.org/drawingml/2006/picture"
	// NSRelationships is the officeDocument relationships namespace (prefix "r").
	NSRelationships = "http://schemas.openxmlformats.org/officeDocument/2006/relationships"
	// NSMarkupCompat is the markup-compatibility namespace (prefix "mc").
	NSMarkupCompat = "http://schemas.openxmlformats.org/markup-compatibility/2006"
	// NSWordML2010 is the Word 2010 extension namespace (prefix "w14").
	NSWordML2010 = "http://schemas.microsoft.com/office/word/2010/wordml"
	// NSVML is the legacy VML namespace (prefix "v").
	NSVML = "urn:schemas-microsoft-com:vml"

	// NSXML is the reserved xml: namespace (xml:space etc.).
	NSXML = "http://www.w3.org/XML/1998/namespace"
	// NSXMLNS is the reserved namespace of xmlns declarations themselves.
	NSXMLNS = "http://www.w3.org/2000/xmlns/"
)

// namespaceByPrefix maps the canonical OOXML prefixes to their URIs. New
// elements and attributes created by the fixers resolve through this table;
// parsed content resolves through the document's own xmlns declarations.
var namespaceByPrefix = map[string]string{
	"w":   NSWordML,
	"wp":  NSWPDrawing,
	"a":   NSDrawingML,
	"pic": NSPicture,
	"r":   NSRelationships,
	"mc":  NSMarkupCompat,
	"w14": NSWordML2010,
	"v":   NSVML,
	"xml": NSXML,
}

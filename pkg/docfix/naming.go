package docfix

import (
	"path"
	"path/filepath"
	"regexp"
	"strings"
)

// fixedNameSuffix is inserted before the extension of a processed document.
const fixedNameSuffix = "_teams"

// fallbackFilename is used when nothing usable survives sanitization.
const fallbackFilename = "document.docx"

var unsafeFilenameChars = regexp.MustCompile(`[^\w\-. ]`)

// SanitizeFilename strips path components and dangerous characters from a
// client-supplied filename and caps its length.
func SanitizeFilename(name string) string {
	// Browsers may send either separator regardless of platform.
	name = path.Base(strings.ReplaceAll(name, `\`, "/"))
	name = unsafeFilenameChars.ReplaceAllString(name, "_")
	name = strings.TrimSpace(name)
	if len(name) > 100 {
		name = name[:100]
	}
	if name == "" || name == "." || name == ".." {
		return fallbackFilename
	}
	return name
}

// DerivedFilename builds the output name for a processed document: the
// sanitized input name with the fixed suffix inserted before the extension.
func DerivedFilename(name string) string {
	name = SanitizeFilename(name)
	ext := filepath.Ext(name)
	if strings.EqualFold(ext, ".docx") {
		return strings.TrimSuffix(name, ext) + fixedNameSuffix + ext
	}
	return name + fixedNameSuffix + ".docx"
}

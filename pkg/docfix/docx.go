package docfix

import (
	"archive/zip"
	"bytes"
	"io"
	"sort"
)

// Part names the archive rewriter patches.
const (
	documentPart = "word/document.xml"
	settingsPart = "word/settings.xml"
	stylesPart   = "word/styles.xml"
)

// zipSignature is the local-file-header magic every ZIP container starts with.
var zipSignature = []byte{'P', 'K', 0x03, 0x04}

// PackageReader provides random access to the parts of an OOXML package.
type PackageReader struct {
	reader *zip.Reader
	parts  map[string]*zip.File
}

// NewPackageReader opens the package for reading and verifies that the
// mandatory document part is present.
func NewPackageReader(r io.ReaderAt, size int64) (*PackageReader, error) {
	zipReader, err := zip.NewReader(r, size)
	if err != nil {
		return nil, NewMalformedPackageError("not a valid container", err)
	}

	pr := &PackageReader{
		reader: zipReader,
		parts:  make(map[string]*zip.File),
	}
	for _, file := range zipReader.File {
		pr.parts[file.Name] = file
	}

	if _, ok := pr.parts[documentPart]; !ok {
		return nil, NewMalformedPackageError("missing "+documentPart, nil)
	}

	return pr, nil
}

// NewPackageReaderBytes opens a package held in memory.
func NewPackageReaderBytes(data []byte) (*PackageReader, error) {
	return NewPackageReader(bytes.NewReader(data), int64(len(data)))
}

// HasPart reports whether the named part exists in the package.
func (pr *PackageReader) HasPart(name string) bool {
	_, ok := pr.parts[name]
	return ok
}

// Part reads the content of a named part.
func (pr *PackageReader) Part(name string) ([]byte, error) {
	file, ok := pr.parts[name]
	if !ok {
		return nil, NewMalformedPackageError("part "+name+" not found", nil)
	}

	rc, err := file.Open()
	if err != nil {
		return nil, NewMalformedPackageError("open "+name, err)
	}
	defer rc.Close()

	content, err := io.ReadAll(rc)
	if err != nil {
		return nil, NewMalformedPackageError("read "+name, err)
	}
	return content, nil
}

// PartNames returns the sorted names of all parts in the package.
func (pr *PackageReader) PartNames() []string {
	names := make([]string, 0, len(pr.parts))
	for name := range pr.parts {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// files returns the package entries in their original archive order.
func (pr *PackageReader) files() []*zip.File {
	return pr.reader.File
}

// IsPackage reports whether data looks like an OOXML word-processing package:
// ZIP signature first, then an openable container holding the mandatory
// document part. Used by boundaries to reject wrong-kind input before the
// engine runs.
func IsPackage(data []byte) bool {
	if len(data) < len(zipSignature) || !bytes.Equal(data[:len(zipSignature)], zipSignature) {
		return false
	}
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return false
	}
	for _, f := range zr.File {
		if f.Name == documentPart {
			return true
		}
	}
	return false
}

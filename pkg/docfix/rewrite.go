package docfix

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
)

// partPatcher rewrites the bytes of one targeted XML part.
type partPatcher func(data []byte, opts Options, log *patchLog) ([]byte, error)

// dispatchFor returns the patcher responsible for the named entry, if its
// fixes are enabled. The settings part has no dedicated option flag; its
// compat cleanup always runs.
func dispatchFor(name string, opts Options) (partPatcher, bool) {
	switch name {
	case documentPart:
		if opts.patchesDocument() {
			return patchDocument, true
		}
	case settingsPart:
		return patchSettings, true
	case stylesPart:
		if opts.FixFonts {
			return patchStyles, true
		}
	}
	return nil, false
}

// rewriteArchive produces a new package from the input: targeted parts go
// through their patcher, everything else is copied unchanged with its
// original entry metadata. Entry order follows the input for reproducible
// output. Any patcher failure aborts the rewrite; a half-patched document is
// never emitted.
func rewriteArchive(pr *PackageReader, opts Options, log *patchLog) ([]byte, error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	for _, file := range pr.files() {
		rc, err := file.Open()
		if err != nil {
			return nil, NewMalformedPackageError("open "+file.Name, err)
		}
		data, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return nil, NewMalformedPackageError("read "+file.Name, err)
		}

		if patcher, ok := dispatchFor(file.Name, opts); ok {
			log.part = file.Name
			data, err = patcher(data, opts, log)
			if err != nil {
				return nil, err
			}
		}

		// Copying the input header preserves the compression method and
		// timestamps; sizes and CRC are recomputed on write.
		header := file.FileHeader
		fw, err := zw.CreateHeader(&header)
		if err != nil {
			return nil, fmt.Errorf("create entry %s: %w", file.Name, err)
		}
		if _, err := fw.Write(data); err != nil {
			return nil, fmt.Errorf("write entry %s: %w", file.Name, err)
		}
	}

	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("close package: %w", err)
	}
	return buf.Bytes(), nil
}

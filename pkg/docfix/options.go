package docfix

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Options selects which fixes are applied. Each flag is independently
// togglable; all default to true.
type Options struct {
	// FixSpacing clamps excessive paragraph spacing and line heights.
	FixSpacing bool
	// FixMargins zeroes unusually large left/right/hanging indents.
	FixMargins bool
	// FixFonts substitutes fonts unavailable in Word Online.
	FixFonts bool
	// FixImages converts floating (anchored) drawings to inline.
	FixImages bool
	// FixTables inserts default cell margins into tables lacking them.
	FixTables bool
}

// DefaultOptions returns the options with every fix enabled.
func DefaultOptions() Options {
	return Options{
		FixSpacing: true,
		FixMargins: true,
		FixFonts:   true,
		FixImages:  true,
		FixTables:  true,
	}
}

// ParseOptionsJSON decodes a client-supplied options object, applying the
// defaults for every absent key. Empty input yields the defaults. The JSON
// keys match the upload form contract (fix_spacing, fix_margins, ...).
func ParseOptionsJSON(data []byte) (Options, error) {
	opts := DefaultOptions()
	if len(bytes.TrimSpace(data)) == 0 {
		return opts, nil
	}

	var raw struct {
		FixSpacing *bool `json:"fix_spacing"`
		FixMargins *bool `json:"fix_margins"`
		FixFonts   *bool `json:"fix_fonts"`
		FixImages  *bool `json:"fix_images"`
		FixTables  *bool `json:"fix_tables"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return DefaultOptions(), fmt.Errorf("parse options: %w", err)
	}

	if raw.FixSpacing != nil {
		opts.FixSpacing = *raw.FixSpacing
	}
	if raw.FixMargins != nil {
		opts.FixMargins = *raw.FixMargins
	}
	if raw.FixFonts != nil {
		opts.FixFonts = *raw.FixFonts
	}
	if raw.FixImages != nil {
		opts.FixImages = *raw.FixImages
	}
	if raw.FixTables != nil {
		opts.FixTables = *raw.FixTables
	}
	return opts, nil
}

// patchesDocument reports whether any fix touching word/document.xml is on.
func (o Options) patchesDocument() bool {
	return o.FixSpacing || o.FixMargins || o.FixFonts || o.FixImages || o.FixTables
}

// seehuhn.de/go/fontpack - a tool for packaging fonts into device bundles
// Copyright (C) 2025  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

// Package sfnt reads and writes font files in the sfnt container format.
// TrueType and OpenType fonts are read directly, WOFF and WOFF2 files are
// unpacked into their sfnt form on load.  The font is represented as the
// raw bytes of its tables, so that tables this library does not interpret
// survive a load/save round trip unchanged.  Tables with tags outside the
// recognised set are discarded on load; the set covers the tables of
// common TrueType, OpenType, AAT, variable and color fonts.
package sfnt

import (
	"bytes"
	"os"
)

// GlyphID is used to enumerate the glyphs in a font.  The first glyph has
// index 0 and is used to indicate a missing character.
type GlyphID uint16

// Font represents the tables of an sfnt font file.
//
// A Font is owned by a single goroutine at a time; the packaging pipeline
// processes one font to completion before opening the next.
type Font struct {
	// ScalerType is the type of font container, one of ScalerTypeTrueType,
	// ScalerTypeCFF or ScalerTypeApple.
	ScalerType uint32

	// Tables maps table names to the raw contents of each table.
	Tables map[string][]byte

	// SourcePath is the path the font was loaded from, if any.
	SourcePath string
}

const (
	// ScalerTypeTrueType identifies fonts with TrueType (glyf) outlines.
	ScalerTypeTrueType = 0x00010000

	// ScalerTypeCFF identifies fonts with CFF outlines.
	ScalerTypeCFF = 0x4F54544F // "OTTO"

	// ScalerTypeApple is used by Apple for TrueType fonts.
	ScalerTypeApple = 0x74727565 // "true"
)

// Has returns true if all the given tables are present in the font.
func (f *Font) Has(names ...string) bool {
	for _, name := range names {
		if _, ok := f.Tables[name]; !ok {
			return false
		}
	}
	return true
}

// TableBytes returns the raw contents of the named table.  If the table is
// not present, an *ErrNoTable error is returned.
func (f *Font) TableBytes(name string) ([]byte, error) {
	data, ok := f.Tables[name]
	if !ok {
		return nil, &ErrNoTable{Name: name}
	}
	return data, nil
}

// NumGlyphs returns the number of glyphs in the font, from the "maxp" table.
func (f *Font) NumGlyphs() (int, error) {
	maxp, err := f.TableBytes("maxp")
	if err != nil {
		return 0, err
	}
	if len(maxp) < 6 {
		return 0, &InvalidFontError{
			SubSystem: "sfnt/maxp",
			Reason:    "table too short",
		}
	}
	return int(maxp[4])<<8 | int(maxp[5]), nil
}

// IsGlyf returns true if the font contains TrueType glyph outlines.
func (f *Font) IsGlyf() bool {
	return f.Has("glyf", "loca")
}

// Save writes the font to a file.  The checksum adjustment in the "head"
// table is recomputed as part of serialization, so a checksum value read
// before Save is stale afterwards.
func (f *Font) Save(path string) error {
	buf := &bytes.Buffer{}
	_, err := Write(buf, f.ScalerType, f.Tables)
	if err != nil {
		return err
	}
	return os.WriteFile(path, buf.Bytes(), 0o644)
}

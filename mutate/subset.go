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

package mutate

import (
	"github.com/sirupsen/logrus"

	"seehuhn.de/go/fontpack/sfnt"
	"seehuhn.de/go/fontpack/sfnt/cmap"
	"seehuhn.de/go/fontpack/sfnt/glyf"
	"seehuhn.de/go/fontpack/sfnt/head"
)

// hintingTables only affect TrueType hint processing and are dropped when
// instructions are stripped.
var hintingTables = []string{"cvt ", "fpgm", "prep", "hdmx", "LTSH", "VDMX", "cvar"}

// Subset reduces the font's glyph outlines to those reachable from the
// code points mapped by its Unicode character maps.
//
// Glyph IDs are kept stable: glyphs outside the closure of the character
// set are replaced by empty outlines instead of being removed, so "cmap",
// "hmtx", "maxp" and all layout tables remain valid unchanged.  Retained
// glyphs have their hinting instructions stripped, and the hinting-only
// tables are removed.
//
// Fonts with CFF outlines are left alone; only the name sanitization step
// applies to them.
func Subset(f *sfnt.Font, log logrus.FieldLogger) error {
	log = ensureLogger(log)

	if !f.IsGlyf() {
		log.Debug("no TrueType outlines, skipping glyph subsetting")
		return nil
	}

	cmapData, err := f.TableBytes("cmap")
	if err != nil {
		return err
	}
	cmapTable, err := cmap.Decode(cmapData)
	if err != nil {
		return err
	}
	charset := cmapTable.Unicode()
	if len(charset) == 0 {
		log.Warn("font maps no Unicode code points, all outlines will be dropped")
	}

	headData, err := f.TableBytes("head")
	if err != nil {
		return err
	}
	if err := head.Validate(headData); err != nil {
		return err
	}

	glyfData, err := f.TableBytes("glyf")
	if err != nil {
		return err
	}
	locaData, err := f.TableBytes("loca")
	if err != nil {
		return err
	}
	glyphs, err := glyf.Decode(&glyf.Encoded{
		GlyfData:   glyfData,
		LocaData:   locaData,
		LocaFormat: head.IndexToLocFormat(headData),
	})
	if err != nil {
		return err
	}

	keep := closure(glyphs, charset)

	subset := make(glyf.Glyphs, len(glyphs))
	for gid := range glyphs {
		if !keep[sfnt.GlyphID(gid)] {
			continue
		}
		g, err := glyphs[gid].StripInstructions()
		if err != nil {
			return err
		}
		subset[gid] = g
	}

	enc := subset.Encode()
	f.Tables["glyf"] = enc.GlyfData
	f.Tables["loca"] = enc.LocaData
	head.SetIndexToLocFormat(headData, enc.LocaFormat)

	for _, name := range hintingTables {
		delete(f.Tables, name)
	}

	log.WithFields(logrus.Fields{
		"glyphs": len(glyphs),
		"kept":   len(keep),
	}).Info("subsetted glyph outlines")

	return nil
}

// closure returns the set of glyph IDs reachable from the character set:
// glyph 0, every directly mapped glyph, and, transitively, all components
// of composite glyphs.
func closure(glyphs glyf.Glyphs, charset map[rune]sfnt.GlyphID) map[sfnt.GlyphID]bool {
	keep := make(map[sfnt.GlyphID]bool)
	var todo []sfnt.GlyphID

	add := func(gid sfnt.GlyphID) {
		if int(gid) >= len(glyphs) || keep[gid] {
			return
		}
		keep[gid] = true
		todo = append(todo, gid)
	}

	add(0)
	for _, gid := range charset {
		add(gid)
	}
	for len(todo) > 0 {
		gid := todo[len(todo)-1]
		todo = todo[:len(todo)-1]
		for _, comp := range glyphs[gid].Components() {
			add(comp)
		}
	}
	return keep
}

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

// Package resolve picks display names for a font.
//
// The family and subfamily names come from the font's "name" table when
// possible.  Fonts without usable name records fall back to the sanitized
// base name of the source file, so resolution never fails.
package resolve

import (
	"path/filepath"
	"strings"

	"seehuhn.de/go/fontpack/sanitize"
	"seehuhn.de/go/fontpack/sfnt"
	"seehuhn.de/go/fontpack/sfnt/name"
)

// FamilyName returns the best family name of the font, or the sanitized
// source file name if the font has no usable family record.  Names taken
// from the name table are returned verbatim, so that the descriptor
// matches what the font actually carries.
func FamilyName(f *sfnt.Font) string {
	if t := nameTable(f); t != nil {
		if s := t.BestFamily(); s != "" {
			return s
		}
	}
	return Fallback(f.SourcePath)
}

// SubfamilyName returns the best subfamily name of the font, or the
// sanitized source file name if the font has no usable subfamily record.
func SubfamilyName(f *sfnt.Font) string {
	if t := nameTable(f); t != nil {
		if s := t.BestSubfamily(); s != "" {
			return s
		}
	}
	return Fallback(f.SourcePath)
}

// Fallback derives a name from a font file path: the base name without
// its extension, sanitized to letters, digits and spaces.
func Fallback(path string) string {
	base := filepath.Base(path)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	return sanitize.Name(base)
}

func nameTable(f *sfnt.Font) *name.Table {
	data, err := f.TableBytes("name")
	if err != nil {
		return nil
	}
	t, err := name.Decode(data)
	if err != nil {
		return nil
	}
	return t
}

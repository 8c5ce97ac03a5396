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

// Package cmap reads OpenType "cmap" tables.
// https://docs.microsoft.com/en-us/typography/opentype/spec/cmap
package cmap

import (
	"fmt"

	"seehuhn.de/go/fontpack/sfnt"
)

// Key identifies a cmap subtable by platform and encoding.
type Key struct {
	PlatformID uint16
	EncodingID uint16
}

// IsUnicode returns true if the subtable is known to map Unicode code
// points, following the convention used by fontTools: the Unicode platform,
// or the Windows platform with a symbol, BMP or full-repertoire encoding.
func (k Key) IsUnicode() bool {
	if k.PlatformID == 0 {
		return true
	}
	return k.PlatformID == 3 &&
		(k.EncodingID == 0 || k.EncodingID == 1 || k.EncodingID == 10)
}

// An Encoding is a single decoded cmap subtable.
type Encoding struct {
	Key
	Format  uint16
	Mapping map[rune]sfnt.GlyphID
}

// Table holds the decoded subtables of a cmap table, in directory order.
// Subtables with formats this package does not implement are omitted.
type Table []*Encoding

// Decode reads the subtables of a "cmap" table.
func Decode(data []byte) (Table, error) {
	if len(data) < 4 {
		return nil, errMalformedCmap
	}
	version := uint16(data[0])<<8 | uint16(data[1])
	if version != 0 {
		return nil, &sfnt.InvalidFontError{
			SubSystem: "sfnt/cmap",
			Reason:    fmt.Sprintf("unknown table version %d", version),
		}
	}
	numTables := int(data[2])<<8 | int(data[3])
	if len(data) < 4+8*numTables {
		return nil, errMalformedCmap
	}

	var table Table
	for i := 0; i < numTables; i++ {
		rec := data[4+8*i:]
		key := Key{
			PlatformID: uint16(rec[0])<<8 | uint16(rec[1]),
			EncodingID: uint16(rec[2])<<8 | uint16(rec[3]),
		}
		offset := uint32(rec[4])<<24 | uint32(rec[5])<<16 | uint32(rec[6])<<8 | uint32(rec[7])
		if uint64(offset)+2 > uint64(len(data)) {
			return nil, errMalformedCmap
		}

		sub := data[offset:]
		format := uint16(sub[0])<<8 | uint16(sub[1])
		var mapping map[rune]sfnt.GlyphID
		var err error
		switch format {
		case 0:
			mapping, err = decodeFormat0(sub)
		case 4:
			mapping, err = decodeFormat4(sub)
		case 6:
			mapping, err = decodeFormat6(sub)
		case 12:
			mapping, err = decodeFormat12(sub)
		default:
			continue
		}
		if err != nil {
			return nil, err
		}

		table = append(table, &Encoding{
			Key:     key,
			Format:  format,
			Mapping: mapping,
		})
	}

	return table, nil
}

// Unicode returns the union of all mappings from Unicode-flagged
// subtables.  When several subtables map the same code point, subtables
// later in the directory win.
func (t Table) Unicode() map[rune]sfnt.GlyphID {
	res := make(map[rune]sfnt.GlyphID)
	for _, enc := range t {
		if !enc.IsUnicode() {
			continue
		}
		for r, gid := range enc.Mapping {
			res[r] = gid
		}
	}
	return res
}

var errMalformedCmap = &sfnt.InvalidFontError{
	SubSystem: "sfnt/cmap",
	Reason:    "malformed cmap table",
}

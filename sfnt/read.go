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

package sfnt

import (
	"fmt"
	"os"
	"sort"
)

// Open loads a font from a file.
func Open(path string) (*Font, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	f, err := Parse(data)
	if err != nil {
		return nil, err
	}
	f.SourcePath = path
	return f, nil
}

// Parse decodes a font from the given data.  TTF, OTF, WOFF and WOFF2
// containers are recognised.
func Parse(data []byte) (*Font, error) {
	if len(data) < 4 {
		return nil, errMalformedHeader
	}

	tag := uint32(data[0])<<24 | uint32(data[1])<<16 | uint32(data[2])<<8 | uint32(data[3])
	switch tag {
	case woffSignature:
		return parseWOFF(data)
	case woff2Signature:
		return parseWOFF2(data)
	default:
		return parseDirectory(data)
	}
}

// parseDirectory reads the table directory of a raw sfnt font.
func parseDirectory(data []byte) (*Font, error) {
	if len(data) < 12 {
		return nil, errMalformedHeader
	}
	scalerType := uint32(data[0])<<24 | uint32(data[1])<<16 | uint32(data[2])<<8 | uint32(data[3])
	numTables := int(data[4])<<8 | int(data[5])

	if scalerType != ScalerTypeTrueType &&
		scalerType != ScalerTypeCFF &&
		scalerType != ScalerTypeApple {
		return nil, &NotSupportedError{
			SubSystem: "sfnt/header",
			Feature:   fmt.Sprintf("scaler type 0x%08x", scalerType),
		}
	}
	if numTables > 280 {
		// the largest value observed in the wild is around 30
		return nil, &InvalidFontError{
			SubSystem: "sfnt/header",
			Reason:    "too many tables",
		}
	}
	if len(data) < 12+16*numTables {
		return nil, errMalformedHeader
	}

	f := &Font{
		ScalerType: scalerType,
		Tables:     make(map[string][]byte),
	}
	type alloc struct {
		start uint32
		end   uint32
	}
	var coverage []alloc
	for i := 0; i < numTables; i++ {
		rec := data[12+16*i:]
		name := string(rec[:4])
		offset := uint32(rec[8])<<24 | uint32(rec[9])<<16 | uint32(rec[10])<<8 | uint32(rec[11])
		length := uint32(rec[12])<<24 | uint32(rec[13])<<16 | uint32(rec[14])<<8 | uint32(rec[15])
		if !isKnownTable[name] {
			continue
		}
		if offset < 12 || uint64(offset)+uint64(length) > uint64(len(data)) {
			return nil, &InvalidFontError{
				SubSystem: "sfnt/header",
				Reason:    "invalid offset for table " + name,
			}
		}
		f.Tables[name] = data[offset : offset+length]
		coverage = append(coverage, alloc{offset, offset + length})
	}
	if len(f.Tables) == 0 {
		return nil, &InvalidFontError{
			SubSystem: "sfnt/header",
			Reason:    "no tables found",
		}
	}

	sort.Slice(coverage, func(i, j int) bool {
		if coverage[i].start != coverage[j].start {
			return coverage[i].start < coverage[j].start
		}
		return coverage[i].end < coverage[j].end
	})
	for i := 1; i < len(coverage); i++ {
		if coverage[i-1].end > coverage[i].start {
			return nil, &InvalidFontError{
				SubSystem: "sfnt/header",
				Reason:    "overlapping tables",
			}
		}
	}

	return f, nil
}

var errMalformedHeader = &InvalidFontError{
	SubSystem: "sfnt/header",
	Reason:    "malformed font header",
}

var isKnownTable = map[string]bool{
	"BASE": true,
	"CBDT": true,
	"CBLC": true,
	"CFF ": true,
	"cmap": true,
	"COLR": true,
	"CPAL": true,
	"cvar": true,
	"cvt ": true,
	"DSIG": true,
	"EBDT": true,
	"EBLC": true,
	"EBSC": true,
	"feat": true,
	"FFTM": true,
	"fpgm": true,
	"fvar": true,
	"gasp": true,
	"GDEF": true,
	"glyf": true,
	"GPOS": true,
	"GSUB": true,
	"gvar": true,
	"hdmx": true,
	"head": true,
	"hhea": true,
	"hmtx": true,
	"HVAR": true,
	"kern": true,
	"loca": true,
	"LTSH": true,
	"maxp": true,
	"meta": true,
	"morx": true,
	"name": true,
	"OS/2": true,
	"post": true,
	"prep": true,
	"sbix": true,
	"STAT": true,
	"SVG ": true,
	"VDMX": true,
	"vhea": true,
	"vmtx": true,
	"VORG": true,
}

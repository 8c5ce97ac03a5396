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
	"bytes"
	"compress/zlib"
	"encoding/binary"
	"io"

	"github.com/dsnet/compress/brotli"
)

const (
	woffSignature  = 0x774F4646 // "wOFF"
	woff2Signature = 0x774F4632 // "wOF2"
)

// parseWOFF unpacks a WOFF file into its sfnt form.
// https://www.w3.org/TR/WOFF/
func parseWOFF(data []byte) (*Font, error) {
	if len(data) < 44 {
		return nil, errMalformedWOFF
	}
	flavor := binary.BigEndian.Uint32(data[4:])
	numTables := int(binary.BigEndian.Uint16(data[12:]))
	if len(data) < 44+20*numTables {
		return nil, errMalformedWOFF
	}

	if flavor != ScalerTypeTrueType &&
		flavor != ScalerTypeCFF &&
		flavor != ScalerTypeApple {
		return nil, &NotSupportedError{
			SubSystem: "sfnt/woff",
			Feature:   "non-sfnt flavor",
		}
	}

	f := &Font{
		ScalerType: flavor,
		Tables:     make(map[string][]byte),
	}
	for i := 0; i < numTables; i++ {
		entry := data[44+20*i:]
		name := string(entry[:4])
		offset := binary.BigEndian.Uint32(entry[4:])
		compLength := binary.BigEndian.Uint32(entry[8:])
		origLength := binary.BigEndian.Uint32(entry[12:])

		if uint64(offset)+uint64(compLength) > uint64(len(data)) ||
			compLength > origLength {
			return nil, errMalformedWOFF
		}
		body := data[offset : offset+compLength]
		if compLength < origLength {
			r, err := zlib.NewReader(bytes.NewReader(body))
			if err != nil {
				return nil, errMalformedWOFF
			}
			body, err = io.ReadAll(r)
			r.Close()
			if err != nil || uint32(len(body)) != origLength {
				return nil, errMalformedWOFF
			}
		}
		if !isKnownTable[name] {
			continue
		}
		f.Tables[name] = body
	}
	if len(f.Tables) == 0 {
		return nil, errMalformedWOFF
	}

	return f, nil
}

// woff2TableTags is the table of known tags from the WOFF2 specification.
// A directory entry refers to its tag by index into this list; index 63
// marks an explicit four-byte tag.
var woff2TableTags = []string{
	"cmap", "head", "hhea", "hmtx",
	"maxp", "name", "OS/2", "post",
	"cvt ", "fpgm", "glyf", "loca",
	"prep", "CFF ", "VORG", "EBDT",
	"EBLC", "gasp", "hdmx", "kern",
	"LTSH", "PCLT", "VDMX", "vhea",
	"vmtx", "BASE", "GDEF", "GPOS",
	"GSUB", "EBSC", "JSTF", "MATH",
	"CBDT", "CBLC", "COLR", "CPAL",
	"SVG ", "sbix", "acnt", "avar",
	"bdat", "bloc", "bsln", "cvar",
	"fdsc", "feat", "fmtx", "fvar",
	"gvar", "hsty", "just", "lcar",
	"mort", "morx", "opbd", "prop",
	"trak", "Zapf", "Silf", "Glat",
	"Gloc", "Feat", "Sill",
}

// parseWOFF2 unpacks a WOFF2 file into its sfnt form.  Only the null
// preprocessing transform is supported; fonts with transformed glyf, loca
// or hmtx tables are rejected.
// https://www.w3.org/TR/WOFF2/
func parseWOFF2(data []byte) (*Font, error) {
	if len(data) < 48 {
		return nil, errMalformedWOFF2
	}
	flavor := binary.BigEndian.Uint32(data[4:])
	numTables := int(binary.BigEndian.Uint16(data[12:]))
	totalCompressedSize := binary.BigEndian.Uint32(data[20:])

	if flavor == 0x74746366 { // "ttcf"
		return nil, &NotSupportedError{
			SubSystem: "sfnt/woff2",
			Feature:   "font collections",
		}
	}
	if flavor != ScalerTypeTrueType &&
		flavor != ScalerTypeCFF &&
		flavor != ScalerTypeApple {
		return nil, &NotSupportedError{
			SubSystem: "sfnt/woff2",
			Feature:   "non-sfnt flavor",
		}
	}

	type dirEntry struct {
		name       string
		origLength uint32
		dataLength uint32 // length of the table in the compressed stream
	}

	pos := 48
	entries := make([]dirEntry, 0, numTables)
	for i := 0; i < numTables; i++ {
		if pos >= len(data) {
			return nil, errMalformedWOFF2
		}
		flags := data[pos]
		pos++
		tagIndex := int(flags & 0x3F)
		transform := int(flags >> 6)

		var name string
		if tagIndex == 63 {
			if pos+4 > len(data) {
				return nil, errMalformedWOFF2
			}
			name = string(data[pos : pos+4])
			pos += 4
		} else {
			name = woff2TableTags[tagIndex]
		}

		origLength, n := readBase128(data[pos:])
		if n == 0 {
			return nil, errMalformedWOFF2
		}
		pos += n

		// The null transform is number 3 for glyf and loca, and number 0
		// for every other table.  Reconstructing transformed tables is not
		// implemented.
		transformed := false
		switch name {
		case "glyf", "loca":
			transformed = transform != 3
		default:
			transformed = transform != 0
		}
		if transformed {
			return nil, &NotSupportedError{
				SubSystem: "sfnt/woff2",
				Feature:   "transformed " + name + " table",
			}
		}

		entries = append(entries, dirEntry{
			name:       name,
			origLength: origLength,
			dataLength: origLength,
		})
	}

	if uint64(pos)+uint64(totalCompressedSize) > uint64(len(data)) {
		return nil, errMalformedWOFF2
	}
	r, err := brotli.NewReader(bytes.NewReader(data[pos:pos+int(totalCompressedSize)]), nil)
	if err != nil {
		return nil, errMalformedWOFF2
	}
	stream, err := io.ReadAll(r)
	r.Close()
	if err != nil {
		return nil, errMalformedWOFF2
	}

	f := &Font{
		ScalerType: flavor,
		Tables:     make(map[string][]byte),
	}
	var offset uint32
	for _, e := range entries {
		if uint64(offset)+uint64(e.dataLength) > uint64(len(stream)) {
			return nil, errMalformedWOFF2
		}
		body := stream[offset : offset+e.dataLength]
		offset += e.dataLength
		if !isKnownTable[e.name] {
			continue
		}
		f.Tables[e.name] = body
	}
	if len(f.Tables) == 0 {
		return nil, errMalformedWOFF2
	}

	return f, nil
}

// readBase128 decodes a WOFF2 UIntBase128 value.  It returns the value and
// the number of bytes consumed, or 0 bytes on error.
func readBase128(data []byte) (uint32, int) {
	var accum uint32
	for i := 0; i < 5 && i < len(data); i++ {
		b := data[i]
		if i == 0 && b == 0x80 { // leading zeros are forbidden
			return 0, 0
		}
		if accum&0xFE000000 != 0 { // would overflow
			return 0, 0
		}
		accum = accum<<7 | uint32(b&0x7F)
		if b&0x80 == 0 {
			return accum, i + 1
		}
	}
	return 0, 0
}

var errMalformedWOFF = &InvalidFontError{
	SubSystem: "sfnt/woff",
	Reason:    "malformed WOFF file",
}

var errMalformedWOFF2 = &InvalidFontError{
	SubSystem: "sfnt/woff2",
	Reason:    "malformed WOFF2 file",
}

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

// Package name reads and writes OpenType "name" tables.
//
// Unlike most readers, this package preserves the individual name records
// together with their platform, encoding and language IDs, so that a table
// can be modified record by record and written back without merging or
// dropping entries.
// https://docs.microsoft.com/en-us/typography/opentype/spec/name
package name

import (
	"sort"
	"unicode/utf16"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"

	"seehuhn.de/go/fontpack/sfnt"
)

var errMalformedNames = &sfnt.InvalidFontError{
	SubSystem: "sfnt/name",
	Reason:    "malformed name table",
}

// Name IDs used by this package.
const (
	IDFamily               = 1
	IDSubfamily            = 2
	IDTypographicFamily    = 16
	IDTypographicSubfamily = 17
	IDWWSFamily            = 21
	IDWWSSubfamily         = 22
)

// Platform, encoding and language IDs for the preferred triple used when
// synthesizing new records.
const (
	PlatformWindows    = 3
	EncodingUnicodeBMP = 1
	LanguageEnglishUS  = 0x409
)

// A Record is a single entry of the "name" table.
type Record struct {
	NameID     uint16
	PlatformID uint16
	EncodingID uint16
	LanguageID uint16

	// Value is the decoded string value.  It is only meaningful if
	// Decoded returns true.
	Value string

	raw []byte
}

// Decoded returns true if the record's string could be decoded.  Records
// using character encodings this package does not understand are carried
// through encode/decode verbatim, with Decoded reporting false.
func (r *Record) Decoded() bool {
	return r.raw == nil
}

// SetValue replaces the record's string value.
func (r *Record) SetValue(s string) {
	r.Value = s
	r.raw = nil
}

// Table is a decoded "name" table.
type Table struct {
	Records []*Record
}

// Decode extracts the records of a "name" table.
func Decode(data []byte) (*Table, error) {
	if len(data) < 6 {
		return nil, errMalformedNames
	}
	version := uint16(data[0])<<8 | uint16(data[1])
	numRec := int(data[2])<<8 | int(data[3])
	storageOffset := int(data[4])<<8 | int(data[5])

	if version > 1 {
		return nil, errMalformedNames
	}

	recBase := 6
	endOfHeader := recBase + 12*numRec
	if endOfHeader > len(data) {
		return nil, errMalformedNames
	}
	if version > 0 {
		// language tag records, not used by this package
		if endOfHeader+2 > len(data) {
			return nil, errMalformedNames
		}
		numLang := int(data[endOfHeader])<<8 | int(data[endOfHeader+1])
		endOfHeader += 2 + numLang*4
	}
	if storageOffset < endOfHeader || storageOffset > len(data) {
		return nil, errMalformedNames
	}

	table := &Table{}
	for i := 0; i < numRec; i++ {
		pos := recBase + i*12
		rec := &Record{
			PlatformID: uint16(data[pos])<<8 | uint16(data[pos+1]),
			EncodingID: uint16(data[pos+2])<<8 | uint16(data[pos+3]),
			LanguageID: uint16(data[pos+4])<<8 | uint16(data[pos+5]),
			NameID:     uint16(data[pos+6])<<8 | uint16(data[pos+7]),
		}
		nameLen := int(data[pos+8])<<8 | int(data[pos+9])
		nameOffset := int(data[pos+10])<<8 | int(data[pos+11])
		if storageOffset+nameOffset+nameLen > len(data) {
			return nil, errMalformedNames
		}
		nameBytes := data[storageOffset+nameOffset : storageOffset+nameOffset+nameLen]

		if val, ok := decodeString(rec.PlatformID, rec.EncodingID, nameBytes); ok {
			rec.Value = val
		} else {
			rec.raw = append([]byte(nil), nameBytes...)
		}
		table.Records = append(table.Records, rec)
	}

	return table, nil
}

// List returns all records with the given name ID, in table order.
func (t *Table) List(nameID uint16) []*Record {
	var res []*Record
	for _, rec := range t.Records {
		if rec.NameID == nameID {
			res = append(res, rec)
		}
	}
	return res
}

// Set changes the value of the record with the given IDs, adding a new
// record if no matching one exists.
func (t *Table) Set(value string, nameID, platformID, encodingID, languageID uint16) {
	for _, rec := range t.Records {
		if rec.NameID == nameID &&
			rec.PlatformID == platformID &&
			rec.EncodingID == encodingID &&
			rec.LanguageID == languageID {
			rec.SetValue(value)
			return
		}
	}
	t.Records = append(t.Records, &Record{
		NameID:     nameID,
		PlatformID: platformID,
		EncodingID: encodingID,
		LanguageID: languageID,
		Value:      value,
	})
}

// Encode converts the table into its binary form.  Records are sorted by
// platform, encoding, language and name IDs as required by the spec;
// identical strings share storage.
func (t *Table) Encode() []byte {
	records := make([]*Record, len(t.Records))
	copy(records, t.Records)
	sort.SliceStable(records, func(i, j int) bool {
		ri, rj := records[i], records[j]
		if ri.PlatformID != rj.PlatformID {
			return ri.PlatformID < rj.PlatformID
		}
		if ri.EncodingID != rj.EncodingID {
			return ri.EncodingID < rj.EncodingID
		}
		if ri.LanguageID != rj.LanguageID {
			return ri.LanguageID < rj.LanguageID
		}
		return ri.NameID < rj.NameID
	})

	b := newNameBuilder()
	type encoded struct {
		rec            *Record
		offset, length uint16
	}
	enc := make([]encoded, len(records))
	for i, rec := range records {
		var body []byte
		if rec.raw != nil {
			body = rec.raw
		} else {
			body = encodeString(rec.PlatformID, rec.Value)
		}
		offset, length := b.Add(body)
		enc[i] = encoded{rec, offset, length}
	}

	numRec := len(enc)
	startOfRecords := 6
	startOfStrings := startOfRecords + numRec*12
	res := make([]byte, startOfStrings+len(b.data))

	res[2] = byte(numRec >> 8)
	res[3] = byte(numRec)
	res[4] = byte(startOfStrings >> 8)
	res[5] = byte(startOfStrings)
	for i, e := range enc {
		base := startOfRecords + i*12
		res[base] = byte(e.rec.PlatformID >> 8)
		res[base+1] = byte(e.rec.PlatformID)
		res[base+2] = byte(e.rec.EncodingID >> 8)
		res[base+3] = byte(e.rec.EncodingID)
		res[base+4] = byte(e.rec.LanguageID >> 8)
		res[base+5] = byte(e.rec.LanguageID)
		res[base+6] = byte(e.rec.NameID >> 8)
		res[base+7] = byte(e.rec.NameID)
		res[base+8] = byte(e.length >> 8)
		res[base+9] = byte(e.length)
		res[base+10] = byte(e.offset >> 8)
		res[base+11] = byte(e.offset)
	}
	copy(res[startOfStrings:], b.data)

	return res
}

func decodeString(platformID, encodingID uint16, data []byte) (string, bool) {
	switch {
	case platformID == 0: // Unicode, all encodings are UTF-16BE
		return utf16Decode(data), true
	case platformID == 3 && (encodingID == 0 || encodingID == 1 || encodingID == 10):
		return utf16Decode(data), true
	case platformID == 1 && encodingID == 0: // Macintosh, Roman
		val, err := charmap.Macintosh.NewDecoder().Bytes(data)
		if err != nil {
			return "", false
		}
		return string(val), true
	default:
		return "", false
	}
}

func encodeString(platformID uint16, s string) []byte {
	if platformID == 1 {
		enc := encoding.ReplaceUnsupported(charmap.Macintosh.NewEncoder())
		body, _ := enc.Bytes([]byte(s))
		return body
	}
	return utf16Encode(s)
}

func utf16Encode(s string) []byte {
	rr := utf16.Encode([]rune(s))
	res := make([]byte, len(rr)*2)
	for i, r := range rr {
		res[i*2] = byte(r >> 8)
		res[i*2+1] = byte(r)
	}
	return res
}

func utf16Decode(buf []byte) string {
	var nameWords []uint16
	for i := 0; i+1 < len(buf); i += 2 {
		nameWords = append(nameWords, uint16(buf[i])<<8|uint16(buf[i+1]))
	}
	return string(utf16.Decode(nameWords))
}

type nameBuilder struct {
	data []byte
	idx  map[string]uint16
}

func newNameBuilder() *nameBuilder {
	return &nameBuilder{
		idx: make(map[string]uint16),
	}
}

func (nb *nameBuilder) Add(b []byte) (offs, length uint16) {
	key := string(b)
	if idx, ok := nb.idx[key]; ok {
		return idx, uint16(len(b))
	}
	idx := uint16(len(nb.data))
	nb.idx[key] = idx
	nb.data = append(nb.data, b...)
	return idx, uint16(len(b))
}

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
	"encoding/binary"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"seehuhn.de/go/fontpack/sfnt"
	"seehuhn.de/go/fontpack/sfnt/glyf"
	"seehuhn.de/go/fontpack/sfnt/head"
	"seehuhn.de/go/fontpack/sfnt/name"
)

func makeHead() []byte {
	data := make([]byte, head.Length)
	binary.BigEndian.PutUint32(data[0:4], 0x00010000)
	binary.BigEndian.PutUint32(data[12:16], 0x5F0F3CF5)
	binary.BigEndian.PutUint16(data[18:20], 1000)
	return data
}

// makeCmap builds a cmap with a single format 6 subtable for platform 3,
// encoding 1, mapping 'A'+i to gids[i].
func makeCmap(gids []uint16) []byte {
	subLen := 10 + 2*len(gids)
	data := make([]byte, 12+subLen)
	binary.BigEndian.PutUint16(data[2:4], 1)  // one subtable
	binary.BigEndian.PutUint16(data[4:6], 3)  // platform
	binary.BigEndian.PutUint16(data[6:8], 1)  // encoding
	binary.BigEndian.PutUint32(data[8:12], 12)

	sub := data[12:]
	binary.BigEndian.PutUint16(sub[0:2], 6)
	binary.BigEndian.PutUint16(sub[2:4], uint16(subLen))
	binary.BigEndian.PutUint16(sub[6:8], 'A')
	binary.BigEndian.PutUint16(sub[8:10], uint16(len(gids)))
	for i, gid := range gids {
		binary.BigEndian.PutUint16(sub[10+2*i:], gid)
	}
	return data
}

// simpleTail builds the tail of a one-contour glyph with two points.
func simpleTail(instructions []byte) []byte {
	var tail []byte
	tail = append(tail, 0x00, 0x01)
	tail = append(tail, byte(len(instructions)>>8), byte(len(instructions)))
	tail = append(tail, instructions...)
	tail = append(tail, 0x17, 0x17)
	tail = append(tail, 10, 20)
	tail = append(tail, 30, 40)
	return tail
}

func simpleGlyph(instructions []byte) *glyf.Glyph {
	return &glyf.Glyph{
		URx: 100, URy: 100,
		Data: glyf.SimpleGlyph{NumContours: 1, Tail: simpleTail(instructions)},
	}
}

// testFont builds a font with five glyphs:
//
//	0: empty
//	1: simple with instructions, mapped from 'A'
//	2: composite using glyph 3, mapped from 'B'
//	3: simple, only reachable through glyph 2
//	4: simple, unmapped
func testFont(t *testing.T) *sfnt.Font {
	t.Helper()

	composite := &glyf.Glyph{
		URx: 100, URy: 100,
		Data: glyf.CompositeGlyph{
			Components: []glyf.GlyphComponent{
				{Flags: 0x0001, GlyphIndex: 3, Args: []byte{0, 0, 0, 0}},
			},
		},
	}
	glyphs := glyf.Glyphs{
		nil,
		simpleGlyph([]byte{0xB0, 0x01}),
		composite,
		simpleGlyph(nil),
		simpleGlyph(nil),
	}
	enc := glyphs.Encode()

	headData := makeHead()
	head.SetIndexToLocFormat(headData, enc.LocaFormat)

	maxpData := make([]byte, 6)
	binary.BigEndian.PutUint32(maxpData[0:4], 0x00010000)
	binary.BigEndian.PutUint16(maxpData[4:6], uint16(len(glyphs)))

	nameTable := &name.Table{
		Records: []*name.Record{
			{NameID: name.IDFamily, PlatformID: 3, EncodingID: 1,
				LanguageID: 0x409, Value: "Test? Family!"},
			{NameID: name.IDSubfamily, PlatformID: 3, EncodingID: 1,
				LanguageID: 0x409, Value: "Regular"},
		},
	}

	return &sfnt.Font{
		ScalerType: sfnt.ScalerTypeTrueType,
		Tables: map[string][]byte{
			"head": headData,
			"maxp": maxpData,
			"cmap": makeCmap([]uint16{1, 2}),
			"glyf": enc.GlyfData,
			"loca": enc.LocaData,
			"name": nameTable.Encode(),
			"FFTM": {1, 2, 3, 4},
			"fpgm": {0xB0, 0x01},
			"prep": {0xB0, 0x01},
			"cvt ": {0, 1},
			"GSUB": {0, 1, 0, 0},
		},
	}
}

func decodeNames(t *testing.T, f *sfnt.Font) *name.Table {
	t.Helper()
	table, err := name.Decode(f.Tables["name"])
	if err != nil {
		t.Fatal(err)
	}
	return table
}

func TestSanitizeNamesRewritesRecords(t *testing.T) {
	f := testFont(t)
	if err := SanitizeNames(f, "fallback", nil); err != nil {
		t.Fatal(err)
	}

	table := decodeNames(t, f)
	fam := table.List(name.IDFamily)
	if len(fam) != 1 || fam[0].Value != "Test Family" {
		t.Errorf("family records = %v", fam)
	}
	sub := table.List(name.IDSubfamily)
	if len(sub) != 1 || sub[0].Value != "Regular" {
		t.Errorf("subfamily records = %v", sub)
	}
}

func TestSanitizeNamesKeepsTriples(t *testing.T) {
	f := testFont(t)
	nameTable := &name.Table{
		Records: []*name.Record{
			{NameID: name.IDFamily, PlatformID: 3, EncodingID: 1,
				LanguageID: 0x409, Value: "Fam-A"},
			{NameID: name.IDFamily, PlatformID: 1, EncodingID: 0,
				LanguageID: 0, Value: "Fam-B"},
		},
	}
	f.Tables["name"] = nameTable.Encode()

	if err := SanitizeNames(f, "fallback", nil); err != nil {
		t.Fatal(err)
	}

	table := decodeNames(t, f)
	fam := table.List(name.IDFamily)
	if len(fam) != 2 {
		t.Fatalf("got %d family records, want 2", len(fam))
	}
	// each record keeps its own triple and is sanitized independently
	byPlatform := map[uint16]string{}
	for _, rec := range fam {
		byPlatform[rec.PlatformID] = rec.Value
	}
	want := map[uint16]string{3: "FamA", 1: "FamB"}
	if d := cmp.Diff(want, byPlatform); d != "" {
		t.Errorf("family records (-want +got):\n%s", d)
	}
}

func TestSanitizeNamesSynthesizes(t *testing.T) {
	f := testFont(t)
	f.Tables["name"] = (&name.Table{}).Encode()

	if err := SanitizeNames(f, "My Font!!", nil); err != nil {
		t.Fatal(err)
	}

	table := decodeNames(t, f)
	for _, nameID := range []uint16{name.IDFamily, name.IDSubfamily} {
		recs := table.List(nameID)
		if len(recs) != 1 {
			t.Fatalf("nameID %d: got %d records, want 1", nameID, len(recs))
		}
		rec := recs[0]
		if rec.Value != "My Font" {
			t.Errorf("nameID %d: value = %q, want %q", nameID, rec.Value, "My Font")
		}
		if rec.PlatformID != name.PlatformWindows ||
			rec.EncodingID != name.EncodingUnicodeBMP ||
			rec.LanguageID != name.LanguageEnglishUS {
			t.Errorf("nameID %d: wrong triple (%d, %d, %#x)",
				nameID, rec.PlatformID, rec.EncodingID, rec.LanguageID)
		}
	}
}

func TestSanitizeNamesCrops(t *testing.T) {
	f := testFont(t)
	long := strings.Repeat("abcde ", 10) // 60 chars, none removed
	nameTable := &name.Table{
		Records: []*name.Record{
			{NameID: name.IDFamily, PlatformID: 3, EncodingID: 1,
				LanguageID: 0x409, Value: long},
		},
	}
	f.Tables["name"] = nameTable.Encode()

	if err := SanitizeNames(f, "fallback", nil); err != nil {
		t.Fatal(err)
	}

	table := decodeNames(t, f)
	got := table.List(name.IDFamily)[0].Value
	if len([]rune(got)) != MaxNameLength {
		t.Errorf("cropped value has %d runes, want %d", len([]rune(got)), MaxNameLength)
	}
	if !strings.HasPrefix(long, got) {
		t.Errorf("cropped value %q is not a prefix of the input", got)
	}
}

func TestSanitizeNamesMissingTable(t *testing.T) {
	f := testFont(t)
	delete(f.Tables, "name")
	err := SanitizeNames(f, "fallback", nil)
	if !sfnt.IsMissing(err) {
		t.Errorf("got %v, want *ErrNoTable", err)
	}
}

func TestSubsetClosure(t *testing.T) {
	f := testFont(t)
	if err := Subset(f, nil); err != nil {
		t.Fatal(err)
	}

	glyphs, err := glyf.Decode(&glyf.Encoded{
		GlyfData:   f.Tables["glyf"],
		LocaData:   f.Tables["loca"],
		LocaFormat: head.IndexToLocFormat(f.Tables["head"]),
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(glyphs) != 5 {
		t.Fatalf("got %d glyphs, want 5", len(glyphs))
	}

	// glyphs 1 and 2 are mapped, 3 is a component of 2, 4 is unreachable
	for _, gid := range []int{1, 2, 3} {
		if glyphs[gid] == nil {
			t.Errorf("glyph %d was dropped", gid)
		}
	}
	if glyphs[4] != nil {
		t.Error("unreachable glyph 4 was kept")
	}

	// component references are untouched, glyph IDs are stable
	if d := cmp.Diff([]sfnt.GlyphID{3}, glyphs[2].Components()); d != "" {
		t.Errorf("components changed (-want +got):\n%s", d)
	}
}

func TestSubsetStripsHinting(t *testing.T) {
	f := testFont(t)
	if err := Subset(f, nil); err != nil {
		t.Fatal(err)
	}

	for _, table := range []string{"fpgm", "prep", "cvt "} {
		if f.Has(table) {
			t.Errorf("hinting table %q survived subsetting", table)
		}
	}

	glyphs, err := glyf.Decode(&glyf.Encoded{
		GlyfData:   f.Tables["glyf"],
		LocaData:   f.Tables["loca"],
		LocaFormat: head.IndexToLocFormat(f.Tables["head"]),
	})
	if err != nil {
		t.Fatal(err)
	}
	want := glyf.SimpleGlyph{NumContours: 1, Tail: simpleTail(nil)}
	if d := cmp.Diff(want, glyphs[1].Data); d != "" {
		t.Errorf("instructions not stripped (-want +got):\n%s", d)
	}
}

func TestSubsetKeepsTables(t *testing.T) {
	f := testFont(t)
	wantFFTM := append([]byte(nil), f.Tables["FFTM"]...)
	wantGSUB := append([]byte(nil), f.Tables["GSUB"]...)
	wantCmap := append([]byte(nil), f.Tables["cmap"]...)

	if err := Subset(f, nil); err != nil {
		t.Fatal(err)
	}

	if d := cmp.Diff(wantFFTM, f.Tables["FFTM"]); d != "" {
		t.Errorf("FFTM changed (-want +got):\n%s", d)
	}
	if d := cmp.Diff(wantGSUB, f.Tables["GSUB"]); d != "" {
		t.Errorf("GSUB changed (-want +got):\n%s", d)
	}
	if d := cmp.Diff(wantCmap, f.Tables["cmap"]); d != "" {
		t.Errorf("cmap changed (-want +got):\n%s", d)
	}
}

func TestSubsetEmptyCharacterSet(t *testing.T) {
	f := testFont(t)
	f.Tables["cmap"] = makeCmap(nil)

	if err := Subset(f, nil); err != nil {
		t.Fatal(err)
	}

	glyphs, err := glyf.Decode(&glyf.Encoded{
		GlyfData:   f.Tables["glyf"],
		LocaData:   f.Tables["loca"],
		LocaFormat: head.IndexToLocFormat(f.Tables["head"]),
	})
	if err != nil {
		t.Fatal(err)
	}
	for gid, g := range glyphs {
		if g != nil {
			t.Errorf("glyph %d survived an empty character set", gid)
		}
	}
}

func TestSubsetSkipsCFF(t *testing.T) {
	f := &sfnt.Font{
		ScalerType: sfnt.ScalerTypeCFF,
		Tables: map[string][]byte{
			"head": makeHead(),
			"CFF ": {1, 2, 3},
			"cmap": makeCmap([]uint16{1}),
		},
	}
	before := append([]byte(nil), f.Tables["CFF "]...)

	if err := Subset(f, nil); err != nil {
		t.Fatal(err)
	}
	if d := cmp.Diff(before, f.Tables["CFF "]); d != "" {
		t.Errorf("CFF table changed (-want +got):\n%s", d)
	}
}

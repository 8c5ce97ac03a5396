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

package glyf

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"seehuhn.de/go/fontpack/sfnt"
)

// simpleTail builds the tail of a one-contour glyph with two points and
// the given instructions.
func simpleTail(instructions []byte) []byte {
	var tail []byte
	tail = append(tail, 0x00, 0x01) // endPtsOfContours = [1]
	tail = append(tail, byte(len(instructions)>>8), byte(len(instructions)))
	tail = append(tail, instructions...)
	// two points, both on-curve with short positive coordinates
	tail = append(tail, 0x17, 0x17) // ON_CURVE | X_SHORT | Y_SHORT | X_POSITIVE
	tail = append(tail, 10, 20)     // x deltas
	tail = append(tail, 30, 40)     // y deltas
	return tail
}

func testGlyphs() Glyphs {
	simple := &Glyph{
		LLx: 0, LLy: 0, URx: 100, URy: 100,
		Data: SimpleGlyph{NumContours: 1, Tail: simpleTail([]byte{0xB0, 0x01})},
	}
	composite := &Glyph{
		LLx: 0, LLy: 0, URx: 100, URy: 100,
		Data: CompositeGlyph{
			Components: []GlyphComponent{
				{Flags: 0x0001 | flagMoreComponents, GlyphIndex: 1, Args: []byte{0, 0, 0, 0}},
				{Flags: 0x0001, GlyphIndex: 3, Args: []byte{0, 10, 0, 0}},
			},
		},
	}
	plain := &Glyph{
		LLx: 0, LLy: 0, URx: 50, URy: 50,
		Data: SimpleGlyph{NumContours: 1, Tail: simpleTail(nil)},
	}
	return Glyphs{nil, simple, composite, plain}
}

func TestRoundTrip(t *testing.T) {
	in := testGlyphs()

	enc := in.Encode()
	out, err := Decode(enc)
	if err != nil {
		t.Fatal(err)
	}

	if d := cmp.Diff(in, out); d != "" {
		t.Errorf("glyphs changed in round trip (-want +got):\n%s", d)
	}
}

func TestEmptyGlyphStaysEmpty(t *testing.T) {
	in := Glyphs{nil, nil, nil}
	enc := in.Encode()
	if len(enc.GlyfData) != 0 {
		t.Errorf("empty glyphs produced %d bytes of outline data", len(enc.GlyfData))
	}
	out, err := Decode(enc)
	if err != nil {
		t.Fatal(err)
	}
	if len(out) != 3 {
		t.Fatalf("got %d glyphs, want 3", len(out))
	}
	for i, g := range out {
		if g != nil {
			t.Errorf("glyph %d is not empty", i)
		}
	}
}

func TestComponents(t *testing.T) {
	gg := testGlyphs()

	if got := gg[1].Components(); got != nil {
		t.Errorf("simple glyph has components %v", got)
	}
	want := []sfnt.GlyphID{1, 3}
	if d := cmp.Diff(want, gg[2].Components()); d != "" {
		t.Errorf("components mismatch (-want +got):\n%s", d)
	}
	var empty *Glyph
	if got := empty.Components(); got != nil {
		t.Errorf("empty glyph has components %v", got)
	}
}

func TestStripInstructionsSimple(t *testing.T) {
	g := testGlyphs()[1]

	stripped, err := g.StripInstructions()
	if err != nil {
		t.Fatal(err)
	}

	want := SimpleGlyph{NumContours: 1, Tail: simpleTail(nil)}
	if d := cmp.Diff(want, stripped.Data); d != "" {
		t.Errorf("stripped glyph mismatch (-want +got):\n%s", d)
	}

	// the original is unchanged
	if d := cmp.Diff(SimpleGlyph{NumContours: 1, Tail: simpleTail([]byte{0xB0, 0x01})}, g.Data); d != "" {
		t.Errorf("original glyph modified (-want +got):\n%s", d)
	}
}

func TestStripInstructionsComposite(t *testing.T) {
	g := &Glyph{
		Data: CompositeGlyph{
			Components: []GlyphComponent{
				{Flags: 0x0001 | flagWeHaveInstructions, GlyphIndex: 1, Args: []byte{0, 0, 0, 0}},
			},
			Instructions: []byte{0xB0, 0x01},
		},
	}

	stripped, err := g.StripInstructions()
	if err != nil {
		t.Fatal(err)
	}
	d := stripped.Data.(CompositeGlyph)
	if d.Instructions != nil {
		t.Error("instructions not removed")
	}
	if d.Components[0].Flags&flagWeHaveInstructions != 0 {
		t.Error("WE_HAVE_INSTRUCTIONS flag not cleared")
	}
}

func TestLocaFormatSelection(t *testing.T) {
	// a glyph large enough to force long loca offsets
	big := make([]byte, 0x20000)
	bigTail := simpleTail(nil)
	copy(big, bigTail)
	gg := Glyphs{
		{Data: SimpleGlyph{NumContours: 1, Tail: simpleTail(nil)}},
	}
	enc := gg.Encode()
	if enc.LocaFormat != 0 {
		t.Errorf("small font uses loca format %d, want 0", enc.LocaFormat)
	}

	gg = Glyphs{
		{Data: SimpleGlyph{NumContours: 1, Tail: big}},
	}
	enc = gg.Encode()
	if enc.LocaFormat != 1 {
		t.Errorf("large font uses loca format %d, want 1", enc.LocaFormat)
	}
}

func TestDecodeRejectsBadLoca(t *testing.T) {
	_, err := Decode(&Encoded{
		GlyfData:   nil,
		LocaData:   []byte{0x00, 0x10, 0x00, 0x00}, // offset beyond glyf data
		LocaFormat: 0,
	})
	if err == nil {
		t.Error("Decode accepted out-of-range loca offset")
	}

	_, err = Decode(&Encoded{LocaData: []byte{0, 0}, LocaFormat: 2})
	if !sfnt.IsUnsupported(err) {
		t.Errorf("got %v, want *NotSupportedError", err)
	}
}

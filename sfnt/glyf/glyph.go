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
	"seehuhn.de/go/fontpack/sfnt"
)

// Glyph represents a single glyph in a TrueType font.
type Glyph struct {
	LLx, LLy, URx, URy int16
	Data               interface{} // either SimpleGlyph or CompositeGlyph
}

// CompositeGlyph is a composite glyph.
type CompositeGlyph struct {
	Components   []GlyphComponent
	Instructions []byte
}

// GlyphComponent is a single component of a composite glyph.
type GlyphComponent struct {
	Flags      uint16
	GlyphIndex sfnt.GlyphID
	Args       []byte
}

// Note that decodeGlyph retains sub-slices of data.
func decodeGlyph(data []byte) (*Glyph, error) {
	if len(data) == 0 {
		return nil, nil
	} else if len(data) < 10 {
		return nil, &sfnt.InvalidFontError{
			SubSystem: "sfnt/glyf",
			Reason:    "incomplete glyph header",
		}
	}

	var glyphData interface{}
	numCont := int16(data[0])<<8 | int16(data[1])
	if numCont >= 0 {
		simple := SimpleGlyph{
			NumContours: numCont,
			Tail:        data[10:],
		}
		err := simple.removePadding()
		if err != nil {
			return nil, err
		}
		glyphData = simple
	} else {
		comp, err := decodeGlyphComposite(data[10:])
		if err != nil {
			return nil, err
		}
		glyphData = *comp
	}

	g := &Glyph{
		LLx:  int16(data[2])<<8 | int16(data[3]),
		LLy:  int16(data[4])<<8 | int16(data[5]),
		URx:  int16(data[6])<<8 | int16(data[7]),
		URy:  int16(data[8])<<8 | int16(data[9]),
		Data: glyphData,
	}
	return g, nil
}

func decodeGlyphComposite(data []byte) (*CompositeGlyph, error) {
	var components []GlyphComponent
	done := false
	weHaveInstructions := false
	for !done {
		if len(data) < 4 {
			return nil, errIncompleteGlyph
		}

		flags := uint16(data[0])<<8 | uint16(data[1])
		glyphIndex := uint16(data[2])<<8 | uint16(data[3])
		data = data[4:]

		if flags&flagWeHaveInstructions != 0 {
			weHaveInstructions = true
		}

		skip := 0
		if flags&0x0001 != 0 { // ARG_1_AND_2_ARE_WORDS
			skip += 4
		} else {
			skip += 2
		}
		if flags&0x0008 != 0 { // WE_HAVE_A_SCALE
			skip += 2
		} else if flags&0x0040 != 0 { // WE_HAVE_AN_X_AND_Y_SCALE
			skip += 4
		} else if flags&0x0080 != 0 { // WE_HAVE_A_TWO_BY_TWO
			skip += 8
		}
		if len(data) < skip {
			return nil, errIncompleteGlyph
		}
		args := data[:skip]
		data = data[skip:]

		components = append(components, GlyphComponent{
			Flags:      flags,
			GlyphIndex: sfnt.GlyphID(glyphIndex),
			Args:       args,
		})

		done = flags&flagMoreComponents == 0
	}

	if weHaveInstructions && len(data) >= 2 {
		L := int(data[0])<<8 | int(data[1])
		data = data[2:]
		if len(data) > L {
			data = data[:L]
		}
	} else {
		data = nil
	}

	res := &CompositeGlyph{
		Components:   components,
		Instructions: data,
	}
	return res, nil
}

func (g *Glyph) encodeLen() int {
	if g == nil {
		return 0
	}

	total := 10
	switch d := g.Data.(type) {
	case SimpleGlyph:
		total += len(d.Tail)
	case CompositeGlyph:
		for _, comp := range d.Components {
			total += 4 + len(comp.Args)
		}
		if d.Instructions != nil {
			total += 2 + len(d.Instructions)
		}
	default:
		panic("unexpected glyph type")
	}
	for total%glyfAlign != 0 {
		total++
	}
	return total
}

func (g *Glyph) append(buf []byte) []byte {
	if g == nil {
		return buf
	}

	var numContours int16
	switch g0 := g.Data.(type) {
	case SimpleGlyph:
		numContours = g0.NumContours
	case CompositeGlyph:
		numContours = -1
	default:
		panic("unexpected glyph type")
	}

	buf = append(buf,
		byte(numContours>>8),
		byte(numContours),
		byte(g.LLx>>8),
		byte(g.LLx),
		byte(g.LLy>>8),
		byte(g.LLy),
		byte(g.URx>>8),
		byte(g.URx),
		byte(g.URy>>8),
		byte(g.URy))

	switch d := g.Data.(type) {
	case SimpleGlyph:
		buf = append(buf, d.Tail...)
	case CompositeGlyph:
		for _, comp := range d.Components {
			buf = append(buf,
				byte(comp.Flags>>8), byte(comp.Flags),
				byte(comp.GlyphIndex>>8), byte(comp.GlyphIndex))
			buf = append(buf, comp.Args...)
		}
		if d.Instructions != nil {
			L := len(d.Instructions)
			buf = append(buf, byte(L>>8), byte(L))
			buf = append(buf, d.Instructions...)
		}
	default:
		panic("unexpected glyph type")
	}

	for len(buf)%glyfAlign != 0 {
		buf = append(buf, 0)
	}

	return buf
}

// Components returns the component glyph IDs of a composite glyph, or nil
// if the glyph is simple or empty.
func (g *Glyph) Components() []sfnt.GlyphID {
	if g == nil {
		return nil
	}
	switch d := g.Data.(type) {
	case SimpleGlyph:
		return nil
	case CompositeGlyph:
		res := make([]sfnt.GlyphID, len(d.Components))
		for i, comp := range d.Components {
			res[i] = comp.GlyphIndex
		}
		return res
	default:
		panic("unexpected glyph type")
	}
}

// StripInstructions returns a copy of the glyph with all TrueType hinting
// instructions removed.  For simple glyphs the instruction block becomes
// empty; for composite glyphs the WE_HAVE_INSTRUCTIONS flag is cleared on
// every component and the trailing instruction block is dropped.
func (g *Glyph) StripInstructions() (*Glyph, error) {
	if g == nil {
		return nil, nil
	}
	switch d := g.Data.(type) {
	case SimpleGlyph:
		d2, err := d.stripInstructions()
		if err != nil {
			return nil, err
		}
		return &Glyph{
			LLx:  g.LLx,
			LLy:  g.LLy,
			URx:  g.URx,
			URy:  g.URy,
			Data: d2,
		}, nil
	case CompositeGlyph:
		d2 := CompositeGlyph{
			Components: make([]GlyphComponent, len(d.Components)),
		}
		for i, c := range d.Components {
			d2.Components[i] = GlyphComponent{
				Flags:      c.Flags &^ flagWeHaveInstructions,
				GlyphIndex: c.GlyphIndex,
				Args:       c.Args,
			}
		}
		return &Glyph{
			LLx:  g.LLx,
			LLy:  g.LLy,
			URx:  g.URx,
			URy:  g.URy,
			Data: d2,
		}, nil
	default:
		panic("unexpected glyph type")
	}
}

const (
	flagWeHaveInstructions = 0x0100
	flagMoreComponents     = 0x0020
)

const glyfAlign = 2

var errIncompleteGlyph = &sfnt.InvalidFontError{
	SubSystem: "sfnt/glyf",
	Reason:    "incomplete glyph",
}

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

// SimpleGlyph is a simple glyph.  Tail holds the glyph description after
// the 10-byte header: the contour end points, the instructions, and the
// packed flag and coordinate arrays.
type SimpleGlyph struct {
	NumContours int16
	Tail        []byte
}

// outline describes the layout of a simple glyph's Tail.
type outline struct {
	instrStart int // offset of the instructionLength field
	instrEnd   int // offset of the first flag byte
	end        int // offset past the last coordinate byte
}

// measure parses the Tail far enough to locate the instruction block and
// the true end of the coordinate data.
func (glyph SimpleGlyph) measure() (*outline, error) {
	buf := glyph.Tail
	numContours := int(glyph.NumContours)
	if len(buf) < 2*numContours+2 {
		return nil, errInvalidGlyphData
	}

	numPoints := 0
	if numContours > 0 {
		last := int(buf[2*numContours-2])<<8 | int(buf[2*numContours-1])
		numPoints = last + 1
	}

	instrStart := 2 * numContours
	instrLen := int(buf[instrStart])<<8 | int(buf[instrStart+1])
	instrEnd := instrStart + 2 + instrLen
	if len(buf) < instrEnd {
		return nil, errInvalidGlyphData
	}

	// walk the flags to determine the coordinate array sizes
	pos := instrEnd
	xBytes := 0
	yBytes := 0
	i := 0
	for i < numPoints {
		if pos >= len(buf) {
			return nil, errInvalidGlyphData
		}
		flags := buf[pos]
		pos++
		repeat := 1
		if flags&0x08 != 0 { // REPEAT_FLAG
			if pos >= len(buf) {
				return nil, errInvalidGlyphData
			}
			repeat += int(buf[pos])
			pos++
		}
		if repeat > numPoints-i {
			repeat = numPoints - i
		}
		i += repeat

		var dx, dy int
		if flags&0x02 != 0 { // X_SHORT_VECTOR
			dx = 1
		} else if flags&0x10 == 0 {
			dx = 2
		}
		if flags&0x04 != 0 { // Y_SHORT_VECTOR
			dy = 1
		} else if flags&0x20 == 0 {
			dy = 2
		}
		xBytes += repeat * dx
		yBytes += repeat * dy
	}

	end := pos + xBytes + yBytes
	if end > len(buf) {
		return nil, errInvalidGlyphData
	}

	return &outline{
		instrStart: instrStart,
		instrEnd:   instrEnd,
		end:        end,
	}, nil
}

// removePadding trims alignment padding after the coordinate data, so that
// re-encoding the glyph does not accumulate stray bytes.
func (glyph *SimpleGlyph) removePadding() error {
	o, err := glyph.measure()
	if err != nil {
		return err
	}
	glyph.Tail = glyph.Tail[:o.end]
	return nil
}

// stripInstructions returns a copy of the glyph with an empty instruction
// block.
func (glyph SimpleGlyph) stripInstructions() (SimpleGlyph, error) {
	o, err := glyph.measure()
	if err != nil {
		return SimpleGlyph{}, err
	}

	tail := make([]byte, 0, len(glyph.Tail)-(o.instrEnd-o.instrStart-2))
	tail = append(tail, glyph.Tail[:o.instrStart]...)
	tail = append(tail, 0, 0)
	tail = append(tail, glyph.Tail[o.instrEnd:]...)

	return SimpleGlyph{
		NumContours: glyph.NumContours,
		Tail:        tail,
	}, nil
}

var errInvalidGlyphData = &sfnt.InvalidFontError{
	SubSystem: "sfnt/glyf",
	Reason:    "invalid glyph data",
}

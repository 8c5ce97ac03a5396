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

// Package descriptor encodes the binary font descriptor which the target
// platform's loader uses to validate and register a font.
//
// The layout is a fixed wire contract.  All integers are little-endian
// 32-bit values, and the family name block appears three times; the
// platform loader checks the duplicates, so the layout must be reproduced
// exactly.
package descriptor

import (
	"encoding/binary"
	"fmt"
	"os"

	"seehuhn.de/go/fontpack/sfnt"
	"seehuhn.de/go/fontpack/sfnt/head"
)

const (
	magic          = 0x34234291
	checksumSecret = 0x68796374
	hashSecret     = 0x687969bb
)

// An EncodingError indicates that a value required for the descriptor
// could not be read from the saved font file.
type EncodingError struct {
	Path   string
	Reason string
	Err    error
}

func (e *EncodingError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("descriptor: %s: %s: %v", e.Path, e.Reason, e.Err)
	}
	return fmt.Sprintf("descriptor: %s: %s", e.Path, e.Reason)
}

func (e *EncodingError) Unwrap() error {
	return e.Err
}

// Hash is the rolling hash used over the name strings in the descriptor:
// seeded at 0x1505, each byte b updates the state as h = h*0x21 + b,
// modulo 2^32.
func Hash(s []byte) uint32 {
	h := uint32(0x1505)
	for _, b := range s {
		h = h*0x21 + uint32(b)
	}
	return h
}

// Encode builds the descriptor for the given family and subfamily names
// and the checksum adjustment value of the saved font file.  The result is
// fully determined by its inputs.
func Encode(family, subfamily string, checksum uint32) []byte {
	fam := []byte(family)
	sub := []byte(subfamily)

	combined := 2*Hash(fam) + Hash(sub) + hashSecret

	buf := make([]byte, 0, 4+3*(4+len(fam))+4+len(sub)+12)
	buf = appendU32(buf, magic)
	buf = appendBlock(buf, fam)
	buf = appendBlock(buf, fam)
	buf = appendBlock(buf, sub)
	buf = appendU32(buf, checksum)
	buf = appendU32(buf, checksum+checksumSecret)
	buf = appendU32(buf, combined)
	buf = appendBlock(buf, fam)
	return buf
}

// FromFile builds the descriptor for a font file already written to disk.
//
// The checksum adjustment field is recomputed whenever a font is saved, so
// the value must come from the file itself; FromFile deliberately takes a
// path instead of an in-memory font to rule out stale reads.
func FromFile(path, family, subfamily string) ([]byte, error) {
	f, err := sfnt.Open(path)
	if err != nil {
		return nil, &EncodingError{Path: path, Reason: "cannot reopen font", Err: err}
	}
	headData, err := f.TableBytes("head")
	if err != nil {
		return nil, &EncodingError{Path: path, Reason: "cannot read head table", Err: err}
	}
	if err := head.Validate(headData); err != nil {
		return nil, &EncodingError{Path: path, Reason: "cannot read head table", Err: err}
	}
	return Encode(family, subfamily, head.CheckSumAdjustment(headData)), nil
}

// Write encodes the descriptor for a saved font file and writes it to
// outPath.
func Write(outPath, fontPath, family, subfamily string) error {
	blob, err := FromFile(fontPath, family, subfamily)
	if err != nil {
		return err
	}
	return os.WriteFile(outPath, blob, 0o644)
}

func appendU32(buf []byte, x uint32) []byte {
	return binary.LittleEndian.AppendUint32(buf, x)
}

func appendBlock(buf, s []byte) []byte {
	buf = appendU32(buf, uint32(len(s)))
	return append(buf, s...)
}

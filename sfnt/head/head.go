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

// Package head gives access to selected fields of the "head" table.
// The table is kept in its raw binary form and fields are patched in
// place, so that a load/save round trip leaves all other fields intact.
// https://docs.microsoft.com/en-us/typography/opentype/spec/head
package head

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// Length is the size of a version 1.0 head table in bytes.
const Length = 54

const magicNumber = 0x5F0F3CF5

// Validate checks the length, version and magic number of a head table.
func Validate(data []byte) error {
	if len(data) < Length {
		return errors.New("sfnt/head: table too short")
	}
	version := binary.BigEndian.Uint32(data)
	if version != 0x00010000 {
		return fmt.Errorf("sfnt/head: unsupported table version %08x", version)
	}
	if magic := binary.BigEndian.Uint32(data[12:]); magic != magicNumber {
		return fmt.Errorf("sfnt/head: invalid magic number %08x", magic)
	}
	return nil
}

// CheckSumAdjustment returns the checksum adjustment field.  The value is
// only meaningful for a font read back from a serialized file; it is made
// stale by any table mutation and recomputed on save.
func CheckSumAdjustment(data []byte) uint32 {
	return binary.BigEndian.Uint32(data[8:12])
}

// ClearChecksum zeros the checksum adjustment field of the head table.
func ClearChecksum(data []byte) {
	binary.BigEndian.PutUint32(data[8:12], 0)
}

// PatchChecksum updates the checksum adjustment field of the head table.
// The argument is the checksum of the entire font before patching.
func PatchChecksum(data []byte, checksum uint32) {
	binary.BigEndian.PutUint32(data[8:12], 0xB1B0AFBA-checksum)
}

// UnitsPerEm returns the number of font design units per em square.
func UnitsPerEm(data []byte) uint16 {
	return binary.BigEndian.Uint16(data[18:20])
}

// IndexToLocFormat returns 0 if the "loca" table uses short offsets and
// 1 if it uses long offsets.
func IndexToLocFormat(data []byte) int16 {
	return int16(binary.BigEndian.Uint16(data[50:52]))
}

// SetIndexToLocFormat updates the loca offset format field.
func SetIndexToLocFormat(data []byte, format int16) {
	binary.BigEndian.PutUint16(data[50:52], uint16(format))
}

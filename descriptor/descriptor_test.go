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

package descriptor

import (
	"bytes"
	"encoding/binary"
	"errors"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"seehuhn.de/go/fontpack/sfnt"
	"seehuhn.de/go/fontpack/sfnt/head"
)

func TestHashVectors(t *testing.T) {
	cases := []struct {
		in   []byte
		want uint32
	}{
		{nil, 0x1505},
		{[]byte{}, 0x1505},
		{[]byte("A"), 0x1505*0x21 + 65},
		{[]byte("AB"), (0x1505*0x21+65)*0x21 + 66},
	}
	for _, c := range cases {
		if got := Hash(c.in); got != c.want {
			t.Errorf("Hash(%q) = %#x, want %#x", c.in, got, c.want)
		}
	}
}

func TestEncodeLayout(t *testing.T) {
	family := "Fam"
	subfamily := "Sub"
	checksum := uint32(0x01020304)

	blob := Encode(family, subfamily, checksum)

	var want []byte
	u32 := func(x uint32) {
		want = binary.LittleEndian.AppendUint32(want, x)
	}
	block := func(s string) {
		u32(uint32(len(s)))
		want = append(want, s...)
	}
	u32(0x34234291)
	block(family)
	block(family)
	block(subfamily)
	u32(checksum)
	u32(checksum + 0x68796374)
	u32(2*Hash([]byte(family)) + Hash([]byte(subfamily)) + 0x687969bb)
	block(family)

	if d := cmp.Diff(want, blob); d != "" {
		t.Errorf("descriptor layout mismatch (-want +got):\n%s", d)
	}
}

func TestEncodeDeterministic(t *testing.T) {
	a := Encode("Family Name", "Bold Italic", 0xCAFEBABE)
	b := Encode("Family Name", "Bold Italic", 0xCAFEBABE)
	if !bytes.Equal(a, b) {
		t.Error("Encode is not deterministic")
	}
}

func TestEncodeChecksumOverflow(t *testing.T) {
	blob := Encode("", "", 0xFFFFFFFF)
	// the checksum+secret field wraps modulo 2^32
	got := binary.LittleEndian.Uint32(blob[4+4+4+4+4:])
	checksum := uint32(0xFFFFFFFF)
	want := checksum + 0x68796374
	if got != want {
		t.Errorf("checksum+secret = %#x, want %#x", got, want)
	}
}

// TestFromFileUsesSavedChecksum builds a font whose in-memory checksum
// adjustment is a sentinel value, saves it, and checks that the descriptor
// is derived from the recomputed post-save value, never the sentinel.
func TestFromFileUsesSavedChecksum(t *testing.T) {
	f := testFont()
	headData := f.Tables["head"]

	const sentinel = 0xDEADBEEF
	binary.BigEndian.PutUint32(headData[8:12], sentinel)
	preSave := head.CheckSumAdjustment(headData)

	dir := t.TempDir()
	path := filepath.Join(dir, "font.ttf")
	if err := f.Save(path); err != nil {
		t.Fatal(err)
	}

	saved, err := sfnt.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	postSave := head.CheckSumAdjustment(saved.Tables["head"])
	if postSave == preSave {
		t.Fatalf("checksum adjustment not recomputed on save")
	}

	blob, err := FromFile(path, "Fam", "Sub")
	if err != nil {
		t.Fatal(err)
	}
	if want := Encode("Fam", "Sub", postSave); !bytes.Equal(blob, want) {
		t.Error("descriptor does not use the post-save checksum")
	}
	if bad := Encode("Fam", "Sub", preSave); bytes.Equal(blob, bad) {
		t.Error("descriptor was built from the stale pre-save checksum")
	}
}

func TestFromFileMissingFile(t *testing.T) {
	_, err := FromFile(filepath.Join(t.TempDir(), "nope.ttf"), "a", "b")
	var encErr *EncodingError
	if !errors.As(err, &encErr) {
		t.Errorf("got %v, want *EncodingError", err)
	}
}

// testFont builds a minimal TrueType font with valid head and maxp tables.
func testFont() *sfnt.Font {
	headData := make([]byte, head.Length)
	binary.BigEndian.PutUint32(headData[0:4], 0x00010000)
	binary.BigEndian.PutUint32(headData[12:16], 0x5F0F3CF5)
	binary.BigEndian.PutUint16(headData[18:20], 1000)

	maxpData := make([]byte, 6)
	binary.BigEndian.PutUint32(maxpData[0:4], 0x00005000)
	binary.BigEndian.PutUint16(maxpData[4:6], 1)

	return &sfnt.Font{
		ScalerType: sfnt.ScalerTypeTrueType,
		Tables: map[string][]byte{
			"head": headData,
			"maxp": maxpData,
		},
	}
}

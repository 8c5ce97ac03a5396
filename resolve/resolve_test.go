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

package resolve

import (
	"testing"

	"seehuhn.de/go/fontpack/sfnt"
	"seehuhn.de/go/fontpack/sfnt/name"
)

func fontWithNames(records []*name.Record, path string) *sfnt.Font {
	table := &name.Table{Records: records}
	return &sfnt.Font{
		ScalerType: sfnt.ScalerTypeTrueType,
		Tables: map[string][]byte{
			"name": table.Encode(),
		},
		SourcePath: path,
	}
}

func TestFamilyName(t *testing.T) {
	f := fontWithNames([]*name.Record{
		{NameID: name.IDFamily, PlatformID: 3, EncodingID: 1,
			LanguageID: 0x409, Value: "Nice Family"},
	}, "dir/ignored.ttf")

	if got := FamilyName(f); got != "Nice Family" {
		t.Errorf("FamilyName = %q", got)
	}
}

// TestFamilyNameVerbatim checks that names coming from the name table are
// returned unmodified, including punctuation the sanitizer would strip.
func TestFamilyNameVerbatim(t *testing.T) {
	f := fontWithNames([]*name.Record{
		{NameID: name.IDFamily, PlatformID: 3, EncodingID: 1,
			LanguageID: 0x409, Value: "Sofia Pro"},
		{NameID: name.IDTypographicFamily, PlatformID: 3, EncodingID: 1,
			LanguageID: 0x409, Value: "Sofia-Pro"},
	}, "dir/ignored.ttf")

	if got := FamilyName(f); got != "Sofia-Pro" {
		t.Errorf("FamilyName = %q, want %q", got, "Sofia-Pro")
	}
}

func TestFallbackToFileName(t *testing.T) {
	f := fontWithNames(nil, "some/dir/My Font!!.ttf")

	if got := FamilyName(f); got != "My Font" {
		t.Errorf("FamilyName = %q", got)
	}
	if got := SubfamilyName(f); got != "My Font" {
		t.Errorf("SubfamilyName = %q", got)
	}
}

func TestFallbackWithoutNameTable(t *testing.T) {
	f := &sfnt.Font{
		Tables:     map[string][]byte{},
		SourcePath: "a/b/simple-font.woff2",
	}
	if got := FamilyName(f); got != "simplefont" {
		t.Errorf("FamilyName = %q", got)
	}
}

func TestFallback(t *testing.T) {
	cases := []struct {
		path, want string
	}{
		{"My Font!!.ttf", "My Font"},
		{"/abs/path/To Font.otf", "To Font"},
		{"noext", "noext"},
		{"###.ttf", ""},
	}
	for _, c := range cases {
		if got := Fallback(c.path); got != c.want {
			t.Errorf("Fallback(%q) = %q, want %q", c.path, got, c.want)
		}
	}
}

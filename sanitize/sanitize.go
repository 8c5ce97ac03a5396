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

// Package sanitize removes characters which are unsafe for use in font
// names, file names and generated resource files.
package sanitize

import (
	"strings"
	"unicode"
)

// Clean removes all characters from s which are neither (Unicode) letters
// or digits nor contained in allow.  The result of Clean is idempotent:
// Clean(Clean(s, allow), allow) == Clean(s, allow).
func Clean(s, allow string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || strings.ContainsRune(allow, r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Name sanitizes a human-readable font name, keeping spaces.
func Name(s string) string {
	return Clean(s, " ")
}

// FileName sanitizes a string for use as part of a file name.  Spaces,
// dots, dashes and underscores are kept.
func FileName(s string) string {
	return Clean(s, " ._-")
}

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

// Package mutate rewrites a font in place: it sanitizes the family and
// subfamily name records and subsets the glyph outlines to the code points
// actually mapped by the font's Unicode character maps.
//
// All operations work on the in-memory table set of an *sfnt.Font; nothing
// is written to disk.  Errors abort the run before any file exists, so a
// failed mutation never leaves a partial artifact behind.
package mutate

import (
	"io"

	"github.com/sirupsen/logrus"

	"seehuhn.de/go/fontpack/sanitize"
	"seehuhn.de/go/fontpack/sfnt"
	"seehuhn.de/go/fontpack/sfnt/name"
)

// MaxNameLength is the length limit, in runes, applied to sanitized name
// record values.
const MaxNameLength = 32

// SanitizeNames rewrites the family and subfamily records of the font's
// "name" table.  Every existing record is replaced by the sanitized,
// cropped form of its own previous value, keeping its platform, encoding
// and language IDs.  If a role has no records at all, a single record
// under the Windows/Unicode BMP/US English triple is synthesized from
// fallback, normally the source file name.
//
// Records are never deleted or merged.  A record whose value sanitizes to
// the empty string is logged as an anomaly but kept.
func SanitizeNames(f *sfnt.Font, fallback string, log logrus.FieldLogger) error {
	log = ensureLogger(log)

	data, err := f.TableBytes("name")
	if err != nil {
		return err
	}
	t, err := name.Decode(data)
	if err != nil {
		return err
	}

	for _, nameID := range []uint16{name.IDFamily, name.IDSubfamily} {
		records := t.List(nameID)
		if len(records) == 0 {
			val := crop(sanitize.Name(fallback))
			t.Set(val, nameID,
				name.PlatformWindows, name.EncodingUnicodeBMP, name.LanguageEnglishUS)
			log.WithFields(logrus.Fields{
				"nameID": nameID,
				"value":  val,
			}).Info("synthesized missing name record")
			continue
		}
		for _, rec := range records {
			if !rec.Decoded() {
				// encoding unknown to us, carried through verbatim
				continue
			}
			val := crop(sanitize.Name(rec.Value))
			if val == "" && rec.Value != "" {
				log.WithField("nameID", nameID).
					Warn("name record sanitized to empty string")
			}
			rec.SetValue(val)
		}
	}

	f.Tables["name"] = t.Encode()
	return nil
}

func crop(s string) string {
	rr := []rune(s)
	if len(rr) > MaxNameLength {
		rr = rr[:MaxNameLength]
	}
	return string(rr)
}

func ensureLogger(log logrus.FieldLogger) logrus.FieldLogger {
	if log != nil {
		return log
	}
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

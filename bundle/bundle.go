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

// Package bundle assembles the device-installable archive around a
// mutated font: it stages the template directory, fills in the font file,
// the binary descriptor and the name placeholders, and drives the
// external packaging and signing tools through an injected runner.
package bundle

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"

	"seehuhn.de/go/fontpack/descriptor"
	"seehuhn.de/go/fontpack/sanitize"
	"seehuhn.de/go/fontpack/sfnt"
)

// placeholder is the token replaced by the font name in the template's
// text resources.
const placeholder = "$$FONT_NAME$$"

// Readiness tracks which parts of the bundle have been filled in.
// Compilation must not start before all flags are set.
type Readiness struct {
	FontData bool
	FontXML  bool
	FontTTF  bool
	Manifest bool
	Strings  bool
}

// Complete returns true if every required part of the bundle is in place.
func (r *Readiness) Complete() bool {
	return r.FontData && r.FontXML && r.FontTTF && r.Manifest && r.Strings
}

// Bundle is a staged copy of the archive template, with fixed locations
// for the font, the descriptor and the text resources.
type Bundle struct {
	Root      Path
	Readiness Readiness

	log logrus.FieldLogger
}

// Path locates the well-known files inside a staged archive directory.
type Path string

// FontTTF returns the path of the font file inside the archive.
func (p Path) FontTTF() string { return filepath.Join(string(p), "assets", "font.ttf") }

// FontData returns the path of the binary descriptor inside the archive.
func (p Path) FontData() string { return filepath.Join(string(p), "assets", "font.dat") }

// FontXML returns the path of the font resource file inside the archive.
func (p Path) FontXML() string { return filepath.Join(string(p), "assets", "font.xml") }

// Manifest returns the path of the archive manifest.
func (p Path) Manifest() string { return filepath.Join(string(p), "AndroidManifest.xml") }

// Strings returns the path of the string resource file inside the archive.
func (p Path) Strings() string {
	return filepath.Join(string(p), "res", "values", "strings.xml")
}

// New returns a Bundle operating on a staged archive directory.
func New(root string, log logrus.FieldLogger) *Bundle {
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = l
	}
	return &Bundle{
		Root: Path(root),
		log:  log,
	}
}

// SetFontTTF writes the mutated font into the archive.  Serialization
// recomputes the head checksum adjustment, so the descriptor written by
// SetFontData afterwards sees the final value.
func (b *Bundle) SetFontTTF(f *sfnt.Font) error {
	if err := f.Save(b.Root.FontTTF()); err != nil {
		return err
	}
	b.Readiness.FontTTF = true
	return nil
}

// SetFontData encodes the binary descriptor from the font file written by
// SetFontTTF and stores it in the archive.  Calling SetFontData before
// SetFontTTF is an error, since the descriptor must be derived from the
// saved file.
func (b *Bundle) SetFontData(family, subfamily string) error {
	if !b.Readiness.FontTTF {
		return fmt.Errorf("bundle: font must be written before the descriptor")
	}
	err := descriptor.Write(b.Root.FontData(), b.Root.FontTTF(), family, subfamily)
	if err != nil {
		return err
	}
	b.Readiness.FontData = true
	return nil
}

// SetFontXML fills the font name into the font resource file.  The name
// is reduced to letters and digits first.
func (b *Bundle) SetFontXML(name string) error {
	err := b.replace(b.Root.FontXML(), sanitize.Clean(name, ""))
	if err != nil {
		return err
	}
	b.Readiness.FontXML = true
	return nil
}

// SetManifest fills the font name into the archive manifest.  The name is
// reduced to letters and digits first.
func (b *Bundle) SetManifest(name string) error {
	err := b.replace(b.Root.Manifest(), sanitize.Clean(name, ""))
	if err != nil {
		return err
	}
	b.Readiness.Manifest = true
	return nil
}

// SetStrings fills the font name into the string resource file.  The name
// is used verbatim, it is what the user will see.
func (b *Bundle) SetStrings(name string) error {
	err := b.replace(b.Root.Strings(), name)
	if err != nil {
		return err
	}
	b.Readiness.Strings = true
	return nil
}

// replace substitutes the placeholder in a template file.  A missing
// placeholder is logged but not an error, so that customized templates
// keep working.
func (b *Bundle) replace(path, value string) error {
	contents, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	text := string(contents)
	if !strings.Contains(text, placeholder) {
		b.log.WithFields(logrus.Fields{
			"file":        path,
			"placeholder": placeholder,
		}).Warn("placeholder not found in template file")
	}
	text = strings.ReplaceAll(text, placeholder, value)
	return os.WriteFile(path, []byte(text), 0o644)
}

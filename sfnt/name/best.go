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

package name

import (
	"sort"

	"golang.org/x/exp/maps"
	"golang.org/x/text/language"
)

// BestFamily returns the best available family name of the font: the WWS
// family if present, then the typographic family, then the legacy family.
func (t *Table) BestFamily() string {
	return t.Best(IDWWSFamily, IDTypographicFamily, IDFamily)
}

// BestSubfamily returns the best available subfamily name of the font.
func (t *Table) BestSubfamily() string {
	return t.Best(IDWWSSubfamily, IDTypographicSubfamily, IDSubfamily)
}

// Best returns the value of the first of the given name IDs for which a
// usable record exists.  For each ID, English records (Macintosh language
// 0 or Windows language 0x409) are preferred; otherwise the record whose
// language best matches English is chosen.  The empty string is returned
// if no record for any of the IDs can be decoded.
func (t *Table) Best(nameIDs ...uint16) string {
	for _, id := range nameIDs {
		if s := t.bestForID(id); s != "" {
			return s
		}
	}
	return ""
}

func (t *Table) bestForID(nameID uint16) string {
	var candidates []*Record
	for _, rec := range t.Records {
		if rec.NameID != nameID || !rec.Decoded() || rec.Value == "" {
			continue
		}
		if (rec.PlatformID == 1 && rec.LanguageID == 0) ||
			(rec.PlatformID == 3 && rec.LanguageID == LanguageEnglishUS) {
			return rec.Value
		}
		candidates = append(candidates, rec)
	}
	switch len(candidates) {
	case 0:
		return ""
	case 1:
		return candidates[0].Value
	}
	return chooseByLanguage(candidates)
}

// chooseByLanguage selects the candidate whose language tag best matches
// English, using deterministic ordering for ties and for records whose
// language ID is not in the BCP 47 tables.
func chooseByLanguage(candidates []*Record) string {
	byTag := make(map[string]string)
	for _, rec := range candidates {
		var key string
		switch rec.PlatformID {
		case 1:
			key = appleBCP[rec.LanguageID]
		case 3:
			key = msBCP[rec.LanguageID]
		}
		if key == "" {
			continue
		}
		if _, ok := byTag[key]; !ok {
			byTag[key] = rec.Value
		}
	}
	if len(byTag) == 0 {
		return candidates[0].Value
	}

	keys := maps.Keys(byTag)
	sort.Strings(keys)
	tags := make([]language.Tag, 0, len(keys))
	valid := keys[:0]
	for _, key := range keys {
		tag, err := language.Parse(key)
		if err != nil {
			continue
		}
		tags = append(tags, tag)
		valid = append(valid, key)
	}
	if len(tags) == 0 {
		return candidates[0].Value
	}

	matcher := language.NewMatcher(tags)
	_, index, _ := matcher.Match(language.AmericanEnglish, language.English)
	return byTag[valid[index]]
}

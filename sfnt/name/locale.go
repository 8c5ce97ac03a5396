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

// BCP 47 tags for the language IDs most commonly seen in name tables.
// IDs not listed here are still preserved in records, they just take no
// part in language matching.

// https://docs.microsoft.com/en-us/typography/opentype/spec/name#macintosh-language-ids
var appleBCP = map[uint16]string{
	0:  "en",      // English
	1:  "fr",      // French
	2:  "de",      // German
	3:  "it",      // Italian
	4:  "nl",      // Dutch
	5:  "sv",      // Swedish
	6:  "es",      // Spanish
	7:  "da",      // Danish
	8:  "pt",      // Portuguese
	9:  "no",      // Norwegian
	10: "he",      // Hebrew
	11: "ja",      // Japanese
	12: "ar",      // Arabic
	13: "fi",      // Finnish
	14: "el",      // Greek
	15: "is",      // Icelandic
	17: "tr",      // Turkish
	18: "hr",      // Croatian
	19: "zh-Hant", // Chinese (traditional)
	20: "ur",      // Urdu
	21: "hi",      // Hindi
	22: "th",      // Thai
	23: "ko",      // Korean
	24: "lt",      // Lithuanian
	25: "pl",      // Polish
	26: "hu",      // Hungarian
	27: "et",      // Estonian
	28: "lv",      // Latvian
	32: "ru",      // Russian
	33: "zh-Hans", // Chinese (simplified)
	36: "cs",      // Czech
	37: "ro",      // Romanian
	38: "sk",      // Slovak
	39: "sl",      // Slovenian
	45: "uk",      // Ukrainian
	67: "bn",      // Bengali
	81: "vi",      // Vietnamese
}

// https://docs.microsoft.com/en-us/typography/opentype/spec/name#windows-language-ids
var msBCP = map[uint16]string{
	0x0401: "ar-SA",   // Arabic, Saudi Arabia
	0x0402: "bg-BG",   // Bulgarian, Bulgaria
	0x0403: "ca-ES",   // Catalan, Catalan
	0x0404: "zh-TW",   // Chinese, Taiwan
	0x0405: "cs-CZ",   // Czech, Czech Republic
	0x0406: "da-DK",   // Danish, Denmark
	0x0407: "de-DE",   // German, Germany
	0x0408: "el-GR",   // Greek, Greece
	0x0409: "en-US",   // English, United States
	0x040a: "es-ES",   // Spanish (traditional sort), Spain
	0x040b: "fi-FI",   // Finnish, Finland
	0x040c: "fr-FR",   // French, France
	0x040d: "he-IL",   // Hebrew, Israel
	0x040e: "hu-HU",   // Hungarian, Hungary
	0x040f: "is-IS",   // Icelandic, Iceland
	0x0410: "it-IT",   // Italian, Italy
	0x0411: "ja-JP",   // Japanese, Japan
	0x0412: "ko-KR",   // Korean, Korea
	0x0413: "nl-NL",   // Dutch, Netherlands
	0x0414: "nb-NO",   // Norwegian (Bokmal), Norway
	0x0415: "pl-PL",   // Polish, Poland
	0x0416: "pt-BR",   // Portuguese, Brazil
	0x0418: "ro-RO",   // Romanian, Romania
	0x0419: "ru-RU",   // Russian, Russia
	0x041a: "hr-HR",   // Croatian, Croatia
	0x041b: "sk-SK",   // Slovak, Slovakia
	0x041c: "sq-AL",   // Albanian, Albania
	0x041d: "sv-SE",   // Swedish, Sweden
	0x041e: "th-TH",   // Thai, Thailand
	0x041f: "tr-TR",   // Turkish, Turkey
	0x0420: "ur-PK",   // Urdu, Pakistan
	0x0421: "id-ID",   // Indonesian, Indonesia
	0x0422: "uk-UA",   // Ukrainian, Ukraine
	0x0424: "sl-SI",   // Slovenian, Slovenia
	0x0425: "et-EE",   // Estonian, Estonia
	0x0426: "lv-LV",   // Latvian, Latvia
	0x0427: "lt-LT",   // Lithuanian, Lithuania
	0x042a: "vi-VN",   // Vietnamese, Vietnam
	0x042d: "eu-ES",   // Basque, Basque
	0x0439: "hi-IN",   // Hindi, India
	0x0445: "bn-IN",   // Bengali, India
	0x0804: "zh-CN",   // Chinese, People's Republic of China
	0x0809: "en-GB",   // English, United Kingdom
	0x080a: "es-MX",   // Spanish, Mexico
	0x0816: "pt-PT",   // Portuguese, Portugal
	0x0c04: "zh-HK",   // Chinese, Hong Kong S.A.R.
	0x0c09: "en-AU",   // English, Australia
	0x0c0c: "fr-CA",   // French, Canada
	0x1009: "en-CA",   // English, Canada
	0x1004: "zh-SG",   // Chinese, Singapore
	0x1409: "en-NZ",   // English, New Zealand
	0x1809: "en-IE",   // English, Ireland
}

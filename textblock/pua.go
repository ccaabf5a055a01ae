// seehuhn.de/go/pdfbarcode - add PDF417 barcodes to the pages of PDF files
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
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

package textblock

import (
	"strings"

	"seehuhn.de/go/postscript/type1/names"

	"seehuhn.de/go/pdf/font/pdfenc"
)

// Some producers map the Symbol font to U+F020-U+F0FF instead of real
// Unicode.  The low byte is the position in the Symbol encoding.
const (
	puaFirst = 0xF020
	puaLast  = 0xF0FF
)

// remapPUA replaces Symbol font private use code points by their Unicode
// equivalents.
func remapPUA(text string) string {
	if !strings.ContainsFunc(text, isSymbolPUA) {
		return text
	}

	var b strings.Builder
	for _, r := range text {
		if isSymbolPUA(r) {
			glyphName := pdfenc.Symbol.Encoding[r-0xF000]
			if glyphName != ".notdef" {
				if s := names.ToUnicode(glyphName, ""); s != "" {
					b.WriteString(s)
					continue
				}
			}
		}
		b.WriteRune(r)
	}
	return b.String()
}

func isSymbolPUA(r rune) bool {
	return r >= puaFirst && r <= puaLast
}

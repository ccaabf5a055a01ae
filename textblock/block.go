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

// Package textblock locates blocks of text on a PDF page.
//
// All coordinates in this package are page coordinates: the origin is the
// top-left corner of the visible page area, x grows to the right and y
// grows downwards, in units of PDF points.
package textblock

import (
	"cmp"
	"slices"
	"strings"
	"unicode/utf8"
)

// Block is a rectangular region of a page together with the text inside.
// Text may span several lines, separated by "\n".
type Block struct {
	Left, Top, Right, Bottom float64
	Text                     string
}

// Sort orders blocks by their top coordinate, and blocks with equal top
// coordinate by their left coordinate.  The sort is stable.
func Sort(blocks []Block) {
	slices.SortStableFunc(blocks, func(a, b Block) int {
		if c := cmp.Compare(a.Top, b.Top); c != 0 {
			return c
		}
		return cmp.Compare(a.Left, b.Left)
	})
}

// FirstLine returns the first line of text of the top-most, left-most
// block which contains non-whitespace text.  Leading and trailing white
// space is removed from the result.  If there is no such block, the second
// return value is false.
//
// The argument is not modified.
func FirstLine(blocks []Block) (string, bool) {
	sorted := slices.Clone(blocks)
	Sort(sorted)

	for _, b := range sorted {
		text := strings.TrimSpace(b.Text)
		if text == "" {
			continue
		}
		line, _, _ := cutLine(text)
		return strings.TrimSpace(line), true
	}
	return "", false
}

// cutLine splits s at the first line boundary.
func cutLine(s string) (before, after string, found bool) {
	i := strings.IndexFunc(s, isLineBreak)
	if i < 0 {
		return s, "", false
	}
	before = s[:i]
	after = s[i:]
	if strings.HasPrefix(after, "\r\n") {
		return before, after[2:], true
	}
	_, size := utf8.DecodeRuneInString(after)
	return before, after[size:], true
}

func isLineBreak(r rune) bool {
	switch r {
	case '\n', '\r', '\v', '\f', 0x1c, 0x1d, 0x1e, 0x85, 0x2028, 0x2029:
		return true
	}
	return false
}

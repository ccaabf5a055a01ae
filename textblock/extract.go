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
	"math"
	"strings"

	"golang.org/x/text/unicode/norm"

	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/postscript/cid"

	"seehuhn.de/go/pdf"
	"seehuhn.de/go/pdf/font"
	"seehuhn.de/go/pdf/font/textextract"
	"seehuhn.de/go/pdf/page"
	"seehuhn.de/go/pdf/reader"
)

// Glyph boxes are estimated from the font size, since the reader does not
// report glyph heights.  Ascent and descent are fractions of the font size.
const (
	ascent  = 0.8
	descent = 0.2
)

// Extract returns the text blocks of a page, in content stream order.
//
// The page dictionary must include all inherited attributes, as returned
// by [seehuhn.de/go/pdf/pagetree.Iterator].  The box is the visible area
// of the page in PDF user space, used to convert positions into page
// coordinates.
func Extract(r pdf.Getter, pageDict pdf.Dict, box rect.Rect) ([]Block, error) {
	x := pdf.NewExtractor(r)
	pg, err := pdf.Decode(pdf.CursorAt(x, nil), pageDict, page.Decode)
	if err != nil {
		return nil, err
	}

	e := newExtractor(x)
	err = e.reader.ProcessPage(pg)
	if err != nil {
		return nil, err
	}
	e.endLine()

	return groupLines(e.lines, box), nil
}

// line is a sequence of glyphs on a common baseline, in PDF user space.
type line struct {
	text strings.Builder
	bbox rect.Rect
	used bool // whether bbox is valid
}

type extractor struct {
	reader *reader.Reader

	lines []*line
	cur   *line

	glyphNames map[font.Instance]map[cid.CID]string
}

func newExtractor(x *pdf.Extractor) *extractor {
	e := &extractor{
		reader:     reader.New(x),
		glyphNames: make(map[font.Instance]map[cid.CID]string),
	}

	e.reader.ActualText = func(event reader.ActualTextEvent, text string) error {
		if event == reader.ActualTextBegin {
			e.addText(text)
		}
		return nil
	}

	e.reader.TextEvent = func(event reader.TextEvent, _ float64) {
		switch event {
		case reader.TextEventSpace:
			e.addSpace()
		case reader.TextEventNL:
			e.endLine()
		}
	}

	e.reader.Character = func(c font.Code) error {
		M := e.reader.State.GState.TextRenderingMatrix()
		size := math.Hypot(M[2], M[3])
		if size == 0 {
			return nil
		}
		adv := c.Width * math.Hypot(M[0], M[1])

		x0, y := M[4], M[5]
		e.addBox(rect.Rect{
			LLx: x0,
			LLy: y - descent*size,
			URx: x0 + adv,
			URy: y + ascent*size,
		})

		// the replacement text has already been added
		if e.reader.InActualText() {
			return nil
		}
		e.addText(e.glyphText(c))
		return nil
	}

	return e
}

func (e *extractor) glyphText(c font.Code) string {
	text := c.Text
	if text == "" {
		F := e.reader.State.GState.TextFont
		m, ok := e.glyphNames[F]
		if !ok {
			m = textextract.GlyphNameMapping(F)
			e.glyphNames[F] = m
		}
		text = m[c.CID]
	}
	return norm.NFKC.String(remapPUA(text))
}

func (e *extractor) currentLine() *line {
	if e.cur == nil {
		e.cur = &line{}
	}
	return e.cur
}

func (e *extractor) addBox(b rect.Rect) {
	l := e.currentLine()
	if !l.used {
		l.bbox = b
		l.used = true
		return
	}
	l.bbox.Extend(b)
}

func (e *extractor) addText(text string) {
	if text == "" {
		return
	}
	e.currentLine().text.WriteString(text)
}

func (e *extractor) addSpace() {
	l := e.currentLine()
	s := l.text.String()
	if s == "" || strings.HasSuffix(s, " ") {
		return
	}
	l.text.WriteByte(' ')
}

func (e *extractor) endLine() {
	if e.cur == nil {
		return
	}
	if e.cur.used {
		e.lines = append(e.lines, e.cur)
	}
	e.cur = nil
}

// groupLines merges consecutive lines into blocks and converts the
// coordinates to page space.  A line joins the preceding block if it starts
// below the block, at most one line height further down, and overlaps the
// block horizontally.
func groupLines(lines []*line, box rect.Rect) []Block {
	var blocks []Block
	var cur *Block
	for _, l := range lines {
		b := l.bbox
		lb := Block{
			Left:   b.LLx - box.LLx,
			Top:    box.URy - b.URy,
			Right:  b.URx - box.LLx,
			Bottom: box.URy - b.LLy,
			Text:   strings.TrimRight(l.text.String(), " "),
		}

		if cur != nil && follows(cur, &lb) {
			cur.Text += "\n" + lb.Text
			cur.Left = min(cur.Left, lb.Left)
			cur.Right = max(cur.Right, lb.Right)
			cur.Bottom = max(cur.Bottom, lb.Bottom)
			continue
		}

		blocks = append(blocks, lb)
		cur = &blocks[len(blocks)-1]
	}
	return blocks
}

func follows(b, l *Block) bool {
	height := l.Bottom - l.Top
	gap := l.Top - b.Bottom
	if gap < -0.5*height || gap > height {
		return false
	}
	return l.Left < b.Right && l.Right > b.Left
}

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

// Package compose decides what is drawn onto a page.
//
// Rectangles use page coordinates, as in package
// [seehuhn.de/go/pdfbarcode/textblock]: the origin is the top-left corner
// of the page and y grows downwards.  In a [rect.Rect], LLx and LLy give
// the top-left corner, URx and URy the bottom-right corner.
package compose

import (
	"fmt"
	"image"

	"seehuhn.de/go/geom/rect"

	"seehuhn.de/go/pdfbarcode"
	"seehuhn.de/go/pdfbarcode/encoder"
	"seehuhn.de/go/pdfbarcode/textblock"
)

// Page is a page which can be annotated.
type Page interface {
	// Size returns the width and height of the page, in PDF points.
	Size() (width, height float64)

	// TextBlocks returns the text blocks found on the page.
	TextBlocks() ([]textblock.Block, error)

	// FillRect draws an opaque white rectangle on top of the existing page
	// content.
	FillRect(r rect.Rect)

	// InsertImage draws img on top of the existing page content, scaled to
	// fill r.
	InsertImage(r rect.Rect, img image.Image)
}

// Encoder turns text into a barcode image.
type Encoder interface {
	Encode(data string) (image.Image, error)
}

var _ Encoder = (*encoder.Encoder)(nil)

// Outcome describes what [Composite] did with a page.
type Outcome int

const (
	// SkippedNoText means that no text was found and the page was left
	// unchanged.
	SkippedNoText Outcome = iota + 1

	// Annotated means that the page was masked (if the mask ratio is
	// positive) and a barcode was added.
	Annotated
)

func (o Outcome) String() string {
	switch o {
	case SkippedNoText:
		return "no text found"
	case Annotated:
		return "annotated"
	default:
		return fmt.Sprintf("Outcome(%d)", int(o))
	}
}

// Composite adds a barcode for the first line of text to the page.
//
// If the page has no text, the page is not modified and SkippedNoText is
// returned.  Otherwise the left maskRatio fraction of the page is covered
// by a white rectangle (if maskRatio > 0), and the barcode, rotated by 90
// degrees counter-clockwise, is placed as described in [Place].
//
// maskRatio must already be clamped to [0, 1].  Encoding errors are
// returned unchanged, and the page is not modified in this case.
func Composite(p Page, maskRatio float64, cfg pdfbarcode.Config, enc Encoder) (Outcome, error) {
	blocks, err := p.TextBlocks()
	if err != nil {
		return 0, err
	}
	line, ok := textblock.FirstLine(blocks)
	if !ok {
		return SkippedNoText, nil
	}

	img, err := enc.Encode(line)
	if err != nil {
		return 0, err
	}
	img = encoder.Rotate(img)

	width, height := p.Size()
	if maskRatio > 0 {
		p.FillRect(MaskRect(width, height, maskRatio))
	}

	b := img.Bounds()
	p.InsertImage(Place(width, height, b.Dx(), b.Dy(), cfg), img)

	return Annotated, nil
}

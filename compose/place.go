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

package compose

import (
	"seehuhn.de/go/geom/rect"

	"seehuhn.de/go/pdfbarcode"
)

// MaskRect returns the strip of the page covered by the mask: the full
// page height and the given fraction of the page width, starting at the
// left edge.  The ratio must already be clamped to [0, 1].
func MaskRect(pageWidth, pageHeight, ratio float64) rect.Rect {
	return rect.Rect{
		LLx: 0,
		LLy: 0,
		URx: pageWidth * ratio,
		URy: pageHeight,
	}
}

// Place returns the area of the page covered by a barcode image of
// imgWidth x imgHeight pixels.
//
// The image is scaled to cfg.WidthRatio of the page width, keeping its
// aspect ratio.  It starts cfg.LeftMargin from the left edge of the page
// and is centred vertically.
func Place(pageWidth, pageHeight float64, imgWidth, imgHeight int, cfg pdfbarcode.Config) rect.Rect {
	w := pageWidth * cfg.WidthRatio
	h := float64(imgHeight) * w / float64(imgWidth)
	x0 := cfg.LeftMargin
	y0 := (pageHeight - h) / 2
	return rect.Rect{
		LLx: x0,
		LLy: y0,
		URx: x0 + w,
		URy: y0 + h,
	}
}

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

package encoder

import (
	"image"

	"github.com/boombuler/barcode"
	"github.com/disintegration/imaging"
	xdraw "golang.org/x/image/draw"
)

const (
	// RowRatio is the height of a barcode row, in units of the module width.
	RowRatio = 3

	// QuietZone is the width of the white border around the symbol, in
	// pixels.
	QuietZone = 20
)

// Render draws the symbol into a new opaque RGB image.  Every module is
// scale pixels wide and RowRatio*scale pixels high, and the symbol is
// surrounded by a white border of [QuietZone] pixels.
func Render(bc barcode.Barcode, scale int) *image.NRGBA {
	scale = max(scale, 1)

	// bc is an image with one pixel per module.  The scalers only read
	// concrete image types, so the modules are copied into a Gray image
	// first.
	src := bc.Bounds()
	modules := image.NewGray(image.Rect(0, 0, src.Dx(), src.Dy()))
	xdraw.Draw(modules, modules.Bounds(), bc, src.Min, xdraw.Src)

	w := src.Dx() * scale
	h := src.Dy() * scale * RowRatio

	img := image.NewNRGBA(image.Rect(0, 0, w+2*QuietZone, h+2*QuietZone))
	xdraw.Draw(img, img.Bounds(), image.White, image.Point{}, xdraw.Src)

	dst := image.Rect(QuietZone, QuietZone, QuietZone+w, QuietZone+h)
	xdraw.NearestNeighbor.Scale(img, dst, modules, modules.Bounds(), xdraw.Src, nil)
	return img
}

// Rotate turns img by 90 degrees counter-clockwise.
// Width and height of the result are the height and width of img.
func Rotate(img image.Image) *image.NRGBA {
	return imaging.Rotate90(img)
}

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
	"image/color"
	"testing"
)

func TestRenderSize(t *testing.T) {
	bc, err := Symbol("ABC123", 4, 2)
	if err != nil {
		t.Fatal(err)
	}
	modules := bc.Bounds()

	for _, scale := range []int{1, 2, 4} {
		img := Render(bc, scale)
		want := image.Rect(0, 0,
			modules.Dx()*scale+2*QuietZone,
			modules.Dy()*scale*RowRatio+2*QuietZone)
		if img.Bounds() != want {
			t.Errorf("scale %d: bounds %v, want %v", scale, img.Bounds(), want)
		}
	}
}

func TestRenderPixels(t *testing.T) {
	const scale = 2
	bc, err := Symbol("ABC123", 3, 2)
	if err != nil {
		t.Fatal(err)
	}
	img := Render(bc, scale)

	// the quiet zone is white
	for _, p := range []image.Point{{0, 0}, {QuietZone - 1, QuietZone - 1}, {img.Bounds().Dx() - 1, img.Bounds().Dy() - 1}} {
		if got := img.NRGBAAt(p.X, p.Y); got != (color.NRGBA{255, 255, 255, 255}) {
			t.Errorf("pixel %v = %v, want white", p, got)
		}
	}

	// every module maps to a scale x (RowRatio*scale) block of pixels
	grid := bc.PixelGrid()
	for row, line := range grid {
		for col, black := range line {
			x := QuietZone + col*scale + scale - 1
			y := QuietZone + row*scale*RowRatio + scale*RowRatio - 1
			got := img.NRGBAAt(x, y)
			want := color.NRGBA{255, 255, 255, 255}
			if black {
				want = color.NRGBA{0, 0, 0, 255}
			}
			if got != want {
				t.Fatalf("module (%d,%d) at pixel (%d,%d) = %v, want %v", col, row, x, y, got, want)
			}
		}
	}

	// the start pattern begins with a bar
	if got := img.NRGBAAt(QuietZone, QuietZone); got.R != 0 {
		t.Errorf("first module is not black: %v", got)
	}
}

func TestRotate(t *testing.T) {
	bc, err := Symbol("ABC123", 4, 2)
	if err != nil {
		t.Fatal(err)
	}
	img := Render(bc, 4)
	rot := Rotate(img)

	b, r := img.Bounds(), rot.Bounds()
	if r.Dx() != b.Dy() || r.Dy() != b.Dx() {
		t.Fatalf("rotated %v to %v, want swapped dimensions", b, r)
	}

	// counter-clockwise: the top right corner moves to the top left, so
	// the last column of the source becomes the first row.
	w, h := b.Dx(), b.Dy()
	for _, p := range []image.Point{{0, 0}, {w - 1, 0}, {QuietZone, QuietZone}, {w - QuietZone - 1, h / 2}} {
		src := img.NRGBAAt(p.X, p.Y)
		dst := rot.NRGBAAt(p.Y, w-1-p.X)
		if src != dst {
			t.Errorf("source pixel %v = %v, rotated pixel = %v", p, src, dst)
		}
	}
}

func TestRenderScaleOne(t *testing.T) {
	bc, err := Symbol("INV-001", 2, 2)
	if err != nil {
		t.Fatal(err)
	}
	img := Render(bc, 1)
	grid := bc.PixelGrid()
	for row, line := range grid {
		for col, black := range line {
			for dy := range RowRatio {
				got := img.NRGBAAt(QuietZone+col, QuietZone+row*RowRatio+dy)
				if (got.R == 0) != black {
					t.Fatalf("module (%d,%d) line %d = %v, black=%t", col, row, dy, got, black)
				}
			}
		}
	}
}

// darkPixels counts the pixels of img with a red component below one half.
func darkPixels(img image.Image) int {
	n := 0
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, _, _, _ := img.At(x, y).RGBA()
			if r < 0x8000 {
				n++
			}
		}
	}
	return n
}

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

// Package pdfdoc holds a PDF document which is open for modification.
//
// Pages are not changed in place.  Instead, every [Page] records a list of
// overlays (white rectangles and images) which are drawn on top of the
// original page content when the document is saved.
package pdfdoc

import (
	"errors"
	"image"

	"seehuhn.de/go/geom/rect"

	"seehuhn.de/go/pdf"
	"seehuhn.de/go/pdf/pagetree"

	"seehuhn.de/go/pdfbarcode/compose"
	"seehuhn.de/go/pdfbarcode/textblock"
)

// Options control how a document is opened.
type Options struct {
	// Password is used to decrypt encrypted documents.
	Password string

	// Prompt, if set, is called once if the document is encrypted and
	// Password is not correct.  The function returns the password to try
	// next, or false to give up.
	Prompt func() (string, bool)
}

// Document is a PDF document together with the modifications made to
// its pages.
type Document struct {
	path  string
	r     *pdf.Reader
	pages []*Page
}

// Open opens the PDF file at path.
// The document must be closed after use.
func Open(path string, opt *Options) (*Document, error) {
	if opt == nil {
		opt = &Options{}
	}

	r, err := pdf.Open(path, &pdf.ReaderOptions{Password: opt.Password})
	var authErr *pdf.AuthenticationError
	if errors.As(err, &authErr) && opt.Prompt != nil {
		if passwd, ok := opt.Prompt(); ok {
			r, err = pdf.Open(path, &pdf.ReaderOptions{Password: passwd})
		}
	}
	if err != nil {
		return nil, &OpenError{Path: path, Err: err}
	}

	d := &Document{
		path: path,
		r:    r,
	}
	err = d.loadPages()
	if err != nil {
		r.Close()
		return nil, &OpenError{Path: path, Err: err}
	}
	return d, nil
}

func (d *Document) loadPages() error {
	c := pdf.NewCursor(d.r)

	it := pagetree.NewIterator(d.r)
	for ref, dict := range it.All() {
		box, err := pageBox(c, dict)
		if err != nil {
			return err
		}
		d.pages = append(d.pages, &Page{
			doc:    d,
			number: len(d.pages) + 1,
			ref:    ref,
			dict:   dict,
			box:    box,
		})
	}
	return it.Err
}

// pageBox returns the visible area of a page in PDF user space.
// This is the crop box, if present, and the media box otherwise.
func pageBox(c pdf.Cursor, dict pdf.Dict) (rect.Rect, error) {
	for _, key := range []pdf.Name{"CropBox", "MediaBox"} {
		box, err := c.Rectangle(dict[key])
		if pdf.IsReadError(err) {
			return rect.Rect{}, err
		}
		if box != nil && box.Dx() > 0 && box.Dy() > 0 {
			return rect.Rect{LLx: box.LLx, LLy: box.LLy, URx: box.URx, URy: box.URy}, nil
		}
	}
	return rect.Rect{}, &pdf.MalformedFileError{
		Err: errors.New("page without media box"),
	}
}

// Path returns the file name the document was opened from.
func (d *Document) Path() string {
	return d.path
}

// NumPages returns the number of pages in the document.
func (d *Document) NumPages() int {
	return len(d.pages)
}

// Pages returns the pages of the document, in document order.
// The returned slice must not be modified.
func (d *Document) Pages() []*Page {
	return d.pages
}

// Close releases the resources held by the document.
// Calling Close more than once has no effect.
func (d *Document) Close() error {
	if d.r == nil {
		return nil
	}
	err := d.r.Close()
	d.r = nil
	return err
}

// Page is a page of a [Document].
//
// Rectangles passed to the methods of Page use page coordinates: the origin
// is the top-left corner of the crop box and y grows downwards.
type Page struct {
	doc    *Document
	number int
	ref    pdf.Reference
	dict   pdf.Dict // with inherited attributes, without Parent
	box    rect.Rect

	overlays []overlay
}

var _ compose.Page = (*Page)(nil)

// overlay is drawn on top of the page content.  If img is nil, the
// rectangle is filled with white.
type overlay struct {
	r   rect.Rect
	img image.Image
}

// Number returns the 1-based page number.
func (p *Page) Number() int {
	return p.number
}

// Size returns the width and height of the page in PDF points.
func (p *Page) Size() (width, height float64) {
	return p.box.Dx(), p.box.Dy()
}

// TextBlocks returns the text blocks of the original page content.
// Overlays are not taken into account.
func (p *Page) TextBlocks() ([]textblock.Block, error) {
	if p.doc.r == nil {
		return nil, errClosed
	}
	return textblock.Extract(p.doc.r, p.dict, p.box)
}

// FillRect covers r with opaque white.
func (p *Page) FillRect(r rect.Rect) {
	p.overlays = append(p.overlays, overlay{r: r})
}

// InsertImage draws img, scaled to fill r.
func (p *Page) InsertImage(r rect.Rect, img image.Image) {
	p.overlays = append(p.overlays, overlay{r: r, img: img})
}

// Modified reports whether anything was drawn on the page.
func (p *Page) Modified() bool {
	return len(p.overlays) > 0
}

// toUser converts a rectangle from page coordinates to PDF user space.
func (p *Page) toUser(r rect.Rect) rect.Rect {
	return rect.Rect{
		LLx: p.box.LLx + r.LLx,
		LLy: p.box.URy - r.URy,
		URx: p.box.LLx + r.URx,
		URy: p.box.URy - r.LLy,
	}
}

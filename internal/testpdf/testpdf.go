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

// Package testpdf generates small PDF files for use in tests.
package testpdf

import (
	"bytes"
	"io"
	"os"

	"seehuhn.de/go/pdf"
	"seehuhn.de/go/pdf/document"
	"seehuhn.de/go/pdf/font/standard"
)

// PageSize is the size of all generated pages (A4).
var PageSize = document.A4

// FontSize is used for all text.
const FontSize = 12

// Text is a string shown at a given position on the page.  X and Y give
// the start of the baseline in PDF user space (origin bottom left).
type Text struct {
	X, Y float64
	Text string
}

// Page lists the text shown on a page.  A page without text items has an
// empty content stream.
type Page []Text

// Write writes a PDF file with one page per element of pages.
func Write(w io.Writer, v pdf.Version, opt *pdf.WriterOptions, pages ...Page) error {
	doc, err := document.WriteMultiPage(w, PageSize, v, opt)
	if err != nil {
		return err
	}

	F, err := standard.Helvetica.New()
	if err != nil {
		return err
	}

	for _, items := range pages {
		page := doc.AddPage()
		for _, item := range items {
			page.TextBegin()
			page.TextSetFont(F, FontSize)
			page.TextFirstLine(item.X, item.Y)
			page.TextShow(item.Text)
			page.TextEnd()
		}
		err = page.Close()
		if err != nil {
			return err
		}
	}

	return doc.Close()
}

// Create writes a PDF-1.7 file with the given pages to fileName.
func Create(fileName string, pages ...Page) error {
	return CreateWithOptions(fileName, nil, pages...)
}

// CreateWithOptions is like [Create], but allows to set writer options,
// e.g. for encryption.
func CreateWithOptions(fileName string, opt *pdf.WriterOptions, pages ...Page) error {
	fd, err := os.Create(fileName)
	if err != nil {
		return err
	}
	err = Write(fd, pdf.V1_7, opt, pages...)
	if err != nil {
		fd.Close()
		return err
	}
	return fd.Close()
}

// Reader writes a PDF-1.7 file with the given pages into memory and opens
// it for reading.
func Reader(pages ...Page) (*pdf.Reader, error) {
	buf := &bytes.Buffer{}
	err := Write(buf, pdf.V1_7, nil, pages...)
	if err != nil {
		return nil, err
	}
	data := buf.Bytes()
	return pdf.NewReader(bytes.NewReader(data), int64(len(data)), nil)
}

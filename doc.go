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

// Package pdfbarcode stamps each page of a PDF file with a PDF417 barcode
// which encodes the first line of text found on that page.
//
// The work is split over several packages:
//
//   - [seehuhn.de/go/pdfbarcode/encoder] turns a string into a barcode image,
//   - [seehuhn.de/go/pdfbarcode/textblock] finds the text blocks of a page,
//   - [seehuhn.de/go/pdfbarcode/compose] decides what to draw on a page,
//   - [seehuhn.de/go/pdfbarcode/pdfdoc] reads and writes the PDF file,
//   - [seehuhn.de/go/pdfbarcode/pipeline] ties everything together.
//
// This package only holds the [Config] shared by all of these.
// The command line tool is in tools/pdf-barcode.
package pdfbarcode

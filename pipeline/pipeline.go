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

// Package pipeline adds barcodes to all pages of a PDF file.
package pipeline

import (
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"seehuhn.de/go/pdfbarcode"
	"seehuhn.de/go/pdfbarcode/compose"
	"seehuhn.de/go/pdfbarcode/encoder"
	"seehuhn.de/go/pdfbarcode/pdfdoc"
)

// Run processes every page of the PDF file at inputPath and saves the
// result to [OutputPath].  One status line per page, followed by the
// name of the output file, is written to stdout.
//
// If the text of a page cannot be encoded, processing stops and no output
// file is written.  The returned error then matches
// [encoder.ErrEncodingFailed].
func Run(inputPath string, cfg pdfbarcode.Config, opt *pdfdoc.Options, stdout io.Writer) (string, error) {
	cfg = cfg.Effective()
	if err := cfg.Validate(); err != nil {
		return "", err
	}

	doc, err := pdfdoc.Open(inputPath, opt)
	if err != nil {
		return "", err
	}
	defer doc.Close()

	enc := encoder.New(cfg)
	ratio := FormatRatio(cfg.MaskRatio)
	for _, p := range doc.Pages() {
		outcome, err := compose.Composite(p, cfg.MaskRatio, cfg, enc)
		if err != nil {
			return "", fmt.Errorf("page %d: %w", p.Number(), err)
		}

		switch outcome {
		case compose.SkippedNoText:
			fmt.Fprintf(stdout, "Page %d: no text found\n", p.Number())
		case compose.Annotated:
			fmt.Fprintf(stdout, "Page %d: masked (%s) and barcode affixed\n", p.Number(), ratio)
		}
	}

	outPath := OutputPath(inputPath)
	err = doc.Save(outPath)
	if err != nil {
		return "", err
	}
	fmt.Fprintf(stdout, "\nSaved: %s\n", outPath)

	return outPath, doc.Close()
}

// OutputPath returns the name of the output file for the given input
// file.  The suffix "_updated" is inserted before the file name extension.
//
// Leading dots of the file name do not start an extension, so
// ".pdf" becomes ".pdf_updated".
func OutputPath(inputPath string) string {
	base := filepath.Base(inputPath)
	ext := filepath.Ext(base)
	if strings.Trim(strings.TrimSuffix(base, ext), ".") == "" {
		ext = ""
	}
	return strings.TrimSuffix(inputPath, ext) + "_updated" + ext
}

// FormatRatio formats a mask ratio for the status output.
// Whole numbers are shown with one decimal place, e.g. "1.0".
func FormatRatio(x float64) string {
	s := strconv.FormatFloat(x, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eEnN") {
		s += ".0"
	}
	return s
}

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

// Pdf-barcode adds a PDF417 barcode to every page of a PDF file.
//
// The barcode encodes the first line of text on the page and is placed
// vertically centred near the left edge, on top of a white strip which
// covers part of the page.  The result is written next to the input file,
// with "_updated" added to the file name.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"golang.org/x/term"

	"seehuhn.de/go/pdfbarcode"
	"seehuhn.de/go/pdfbarcode/pdfdoc"
	"seehuhn.de/go/pdfbarcode/pipeline"
	"seehuhn.de/go/pdfbarcode/tools/internal/buildinfo"
	"seehuhn.de/go/pdfbarcode/tools/internal/profile"
)

var (
	maskArg    = flag.Float64("mask", pdfbarcode.Default().MaskRatio, "fraction of the page width to cover with white, from the left edge")
	passwdArg  = flag.String("p", "", "PDF password")
	cpuprofile = flag.String("cpuprofile", "", "write cpu profile to `file`")
	memprofile = flag.String("memprofile", "", "write memory profile to `file`")
)

func main() {
	flag.CommandLine.SetOutput(os.Stdout)
	flag.Usage = func() { usage(os.Stdout) }
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(1)
	}

	if err := run(flag.Arg(0)); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func usage(w io.Writer) {
	fmt.Fprintf(w, "pdf-barcode - add PDF417 barcodes to the pages of a PDF file\n")
	fmt.Fprintf(w, "%s\n\n", buildinfo.Short("pdf-barcode"))
	fmt.Fprintf(w, "Usage:\n")
	fmt.Fprintf(w, "  pdf-barcode [options] <input.pdf>\n\n")
	fmt.Fprintf(w, "Arguments:\n")
	fmt.Fprintf(w, "  input.pdf  the PDF file to process; the output is written\n")
	fmt.Fprintf(w, "             to input_updated.pdf in the same directory\n\n")
	fmt.Fprintf(w, "Options:\n")
	out := flag.CommandLine.Output()
	flag.CommandLine.SetOutput(w)
	flag.PrintDefaults()
	flag.CommandLine.SetOutput(out)
	fmt.Fprintf(w, "\nExamples:\n")
	fmt.Fprintf(w, "  pdf-barcode invoice.pdf\n")
	fmt.Fprintf(w, "  pdf-barcode -mask 0 -p secret encrypted.pdf\n")
}

func run(fname string) (err error) {
	stop, err := profile.Start(*cpuprofile, *memprofile)
	if err != nil {
		return err
	}
	defer func() {
		if stopErr := stop(); err == nil {
			err = stopErr
		}
	}()

	cfg := pdfbarcode.Default()
	cfg.MaskRatio = *maskArg

	opt := &pdfdoc.Options{Password: *passwdArg}
	if term.IsTerminal(int(os.Stdin.Fd())) {
		opt.Prompt = readPassword
	}

	_, err = pipeline.Run(fname, cfg, opt, os.Stdout)
	return err
}

// readPassword asks for the document password on the terminal.
func readPassword() (string, bool) {
	fmt.Fprint(os.Stderr, "password: ")
	passwd, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", false
	}
	return string(passwd), true
}

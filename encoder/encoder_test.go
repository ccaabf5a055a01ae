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
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"seehuhn.de/go/pdfbarcode"
)

func TestEncodeShort(t *testing.T) {
	e := New(pdfbarcode.Default())

	res := e.Try("ABC123")
	if !res.OK() {
		t.Fatalf("encoding failed: %v", res.Attempts)
	}
	if res.Columns != 4 {
		t.Errorf("used %d columns, want the first candidate 4", res.Columns)
	}
	if len(res.Attempts) != 0 {
		t.Errorf("unexpected failed attempts: %v", res.Attempts)
	}

	if res.Symbol == nil || res.Symbol.Content() != "ABC123" {
		t.Errorf("wrong symbol: %v", res.Symbol)
	} else if md := res.Symbol.Metadata(); md.Dimensions != 2 {
		t.Errorf("symbol has %d dimensions, want 2", md.Dimensions)
	}

	b := res.Image.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		t.Errorf("empty image: %v", b)
	}

	img, err := e.Encode("ABC123")
	if err != nil {
		t.Fatal(err)
	}
	if img.Bounds() != b {
		t.Errorf("Encode and Try disagree: %v vs %v", img.Bounds(), b)
	}
}

func TestEncodeDrawsModules(t *testing.T) {
	cfg := pdfbarcode.Default()
	img, err := New(cfg).Encode("INV-001")
	if err != nil {
		t.Fatal(err)
	}

	bc, err := Symbol("INV-001", cfg.ColumnCandidates[0], cfg.SecurityLevel)
	if err != nil {
		t.Fatal(err)
	}
	black := 0
	for _, line := range bc.PixelGrid() {
		for _, isBlack := range line {
			if isBlack {
				black++
			}
		}
	}
	want := black * cfg.Scale * cfg.Scale * RowRatio
	if want == 0 {
		t.Fatal("symbol has no black modules")
	}

	if got := darkPixels(img); got != want {
		t.Errorf("encoded image %v has %d dark pixels, want %d", img.Bounds(), got, want)
	}
	rot := Rotate(img)
	if got := darkPixels(rot); got != want {
		t.Errorf("rotated image %v has %d dark pixels, want %d", rot.Bounds(), got, want)
	}
}

func TestEncodeFallback(t *testing.T) {
	// Choose a length which needs more than 90 rows with 4 columns,
	// but fits with 30.
	data := strings.Repeat("AB", 200) // about 200 code words
	cfg := pdfbarcode.Default()
	cfg.ColumnCandidates = []int{2, 30}

	res := New(cfg).Try(data)
	if !res.OK() {
		t.Fatalf("encoding failed: %v", res.Attempts)
	}
	if res.Columns != 30 {
		t.Errorf("used %d columns, want 30", res.Columns)
	}
	if len(res.Attempts) != 1 || res.Attempts[0].Columns != 2 {
		t.Errorf("unexpected attempts: %v", res.Attempts)
	}
}

func TestEncodeExhausted(t *testing.T) {
	data := strings.Repeat("A", 1000)
	e := New(pdfbarcode.Default())

	res := e.Try(data)
	if res.OK() {
		t.Fatalf("encoding %d bytes unexpectedly succeeded with %d columns", len(data), res.Columns)
	}
	var cols []int
	for _, a := range res.Attempts {
		cols = append(cols, a.Columns)
		if a.Err == nil {
			t.Errorf("attempt with %d columns has no error", a.Columns)
		}
	}
	if d := cmp.Diff([]int{4, 3, 2}, cols); d != "" {
		t.Errorf("unexpected candidates (-want +got):\n%s", d)
	}

	img, err := e.Encode(data)
	if img != nil {
		t.Error("expected no image")
	}
	if !errors.Is(err, ErrEncodingFailed) {
		t.Errorf("expected ErrEncodingFailed, got %v", err)
	}

	var encErr *Error
	if !errors.As(err, &encErr) {
		t.Fatalf("expected *Error, got %T", err)
	}
	if len(encErr.Attempts) != 3 {
		t.Errorf("got %d attempts, want 3", len(encErr.Attempts))
	}

	// the wrapped cause is the one from the last candidate
	var limErr *LimitError
	if !errors.As(err, &limErr) {
		t.Fatalf("expected *LimitError in chain, got %v", err)
	}
	if limErr.Columns != 2 {
		t.Errorf("cause is from %d columns, want 2", limErr.Columns)
	}
}

func TestSymbolErrors(t *testing.T) {
	cases := []struct {
		name    string
		data    string
		columns int
		check   func(error) bool
	}{
		{
			name:    "empty",
			data:    "",
			columns: 4,
			check:   func(err error) bool { return err == errEmpty },
		},
		{
			name:    "unencodable",
			data:    "\x01",
			columns: 4,
			check: func(err error) bool {
				var libErr *LibraryError
				return errors.As(err, &libErr)
			},
		},
		{
			name:    "bad columns",
			data:    "A",
			columns: 31,
			check: func(err error) bool {
				var limErr *LimitError
				return errors.As(err, &limErr) && limErr.What == "columns"
			},
		},
		{
			name:    "too few rows",
			data:    "A",
			columns: 30,
			check: func(err error) bool {
				var limErr *LimitError
				return errors.As(err, &limErr) && limErr.What == "rows"
			},
		},
		{
			name:    "too many code words",
			data:    strings.Repeat("A", 2000),
			columns: 30,
			check: func(err error) bool {
				var limErr *LimitError
				return errors.As(err, &limErr) && limErr.What == "code words"
			},
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			bc, err := Symbol(c.data, c.columns, 2)
			if bc != nil {
				t.Error("expected no symbol")
			}
			if err == nil || !c.check(err) {
				t.Errorf("unexpected error %v", err)
			}
		})
	}
}

func TestSymbolRows(t *testing.T) {
	bc, err := Symbol("INV-001", 4, 2)
	if err != nil {
		t.Fatal(err)
	}
	if bc.Columns != 4 {
		t.Errorf("Columns = %d, want 4", bc.Columns)
	}
	if bc.Rows < MinRows || bc.Rows > MaxRows {
		t.Errorf("Rows = %d out of range", bc.Rows)
	}
	if len(bc.CodeWords) != bc.Rows*bc.Columns {
		t.Errorf("%d code words do not fill %dx%d", len(bc.CodeWords), bc.Rows, bc.Columns)
	}
	if got := bc.Metadata().CodeKind; got != "Pdf417" {
		t.Errorf("CodeKind = %q", got)
	}
	if bc.Content() != "INV-001" {
		t.Errorf("Content = %q", bc.Content())
	}
}

func TestErrorMessage(t *testing.T) {
	err := &Error{
		Data: strings.Repeat("x", 100),
		Attempts: []Attempt{
			{Columns: 4, Err: errors.New("first")},
			{Columns: 3, Err: errors.New("last")},
		},
	}
	msg := err.Error()
	if !strings.Contains(msg, "4/3 columns") {
		t.Errorf("message %q does not list the candidates", msg)
	}
	if !strings.HasSuffix(msg, ": last") {
		t.Errorf("message %q does not end with the last cause", msg)
	}
	if strings.Contains(msg, strings.Repeat("x", 41)) {
		t.Errorf("message %q contains the full data", msg)
	}
}

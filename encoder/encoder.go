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

// Package encoder converts text into PDF417 barcode images.
//
// The symbol is generated with a fixed security level, trying a list of
// column counts in order until the data fits.
package encoder

import (
	"errors"
	"fmt"
	"image"
	"strconv"
	"strings"

	"github.com/boombuler/barcode"
	pdf417 "github.com/ruudk/golang-pdf417"

	"seehuhn.de/go/pdfbarcode"
)

// Limits of the PDF417 symbology.
const (
	MinRows      = 3
	MaxRows      = 90
	MinColumns   = 1
	MaxColumns   = 30
	MaxCodeWords = 928 // length descriptor, data, padding and error correction
)

// Encoder generates barcode images for a fixed configuration.
// An Encoder has no mutable state and can be reused.
type Encoder struct {
	scale   int
	level   int
	columns []int
}

// New returns an Encoder which uses the scale, security level and column
// candidates from cfg.
func New(cfg pdfbarcode.Config) *Encoder {
	return &Encoder{
		scale:   cfg.Scale,
		level:   cfg.SecurityLevel,
		columns: append([]int(nil), cfg.ColumnCandidates...),
	}
}

// Attempt records why encoding with a given column count failed.
type Attempt struct {
	Columns int
	Err     error
}

// Result is the outcome of [Encoder.Try].
//
// On success, Symbol is the generated symbol, Image is the rendered
// barcode and Columns is the column count which was used.  On failure,
// Symbol and Image are nil and Attempts lists one entry per candidate, in
// the order the candidates were tried.
type Result struct {
	Symbol   barcode.Barcode
	Image    *image.NRGBA
	Columns  int
	Attempts []Attempt
}

// OK reports whether a barcode was generated.
func (r *Result) OK() bool {
	return r.Image != nil
}

// Try attempts all column candidates in order and renders the first symbol
// which can be generated.
func (e *Encoder) Try(data string) *Result {
	res := &Result{}
	for _, cols := range e.columns {
		bc, err := Symbol(data, cols, e.level)
		if err != nil {
			res.Attempts = append(res.Attempts, Attempt{Columns: cols, Err: err})
			continue
		}
		res.Symbol = bc
		res.Image = Render(bc, e.scale)
		res.Columns = cols
		return res
	}
	return res
}

// Encode returns the barcode image for data.
// If none of the column candidates can hold the data, an [*Error] is
// returned.
func (e *Encoder) Encode(data string) (image.Image, error) {
	res := e.Try(data)
	if !res.OK() {
		return nil, &Error{Data: data, Attempts: res.Attempts}
	}
	return res.Image, nil
}

// Symbol generates the PDF417 symbol for data, using the given number of
// data columns and security level.
func Symbol(data string, columns, level int) (bc *pdf417.Barcode, err error) {
	if data == "" {
		return nil, errEmpty
	}
	if columns < MinColumns || columns > MaxColumns {
		return nil, &LimitError{Columns: columns, What: "columns", Value: columns, Min: MinColumns, Max: MaxColumns}
	}

	// The library signals unencodable input by panicking.
	defer func() {
		if r := recover(); r != nil {
			bc = nil
			err = &LibraryError{Columns: columns, Value: r}
		}
	}()

	// Check the size before the library builds the rows, since the row
	// code tables cannot represent oversized length descriptors.
	dataWords := len(pdf417.CreateDataEncoder().Encode(data))
	ecWords := 2 << level
	total := dataWords + 1 + ecWords
	rows := (total + columns - 1) / columns
	total = rows * columns
	if total > MaxCodeWords {
		return nil, &LimitError{Columns: columns, What: "code words", Value: total, Max: MaxCodeWords}
	}
	if rows < MinRows || rows > MaxRows {
		return nil, &LimitError{Columns: columns, What: "rows", Value: rows, Min: MinRows, Max: MaxRows}
	}

	bc = pdf417.Encode(data, columns, level)
	if bc.Rows != rows {
		return nil, fmt.Errorf("pdf417: unexpected row count %d (expected %d)", bc.Rows, rows)
	}
	return bc, nil
}

// ErrEncodingFailed is matched by [errors.Is] for all errors returned by
// [Encoder.Encode].
var ErrEncodingFailed = errors.New("PDF417 encoding failed")

var errEmpty = errors.New("no data to encode")

// Error is returned when none of the column candidates can be used.
type Error struct {
	Data     string
	Attempts []Attempt
}

func (err *Error) Error() string {
	data := err.Data
	if len(data) > 40 {
		data = data[:37] + "..."
	}

	cols := make([]string, len(err.Attempts))
	for i, a := range err.Attempts {
		cols[i] = strconv.Itoa(a.Columns)
	}

	msg := fmt.Sprintf("cannot encode %q as PDF417 with %s columns", data, strings.Join(cols, "/"))
	if cause := err.Unwrap(); cause != nil {
		msg += ": " + cause.Error()
	}
	return msg
}

// Unwrap returns the cause of the last failed attempt.
func (err *Error) Unwrap() error {
	if len(err.Attempts) == 0 {
		return nil
	}
	return err.Attempts[len(err.Attempts)-1].Err
}

// Is reports whether target is [ErrEncodingFailed].
func (err *Error) Is(target error) bool {
	return target == ErrEncodingFailed
}

// LimitError indicates that a symbol would exceed one of the limits of the
// PDF417 format.
type LimitError struct {
	Columns int
	What    string
	Value   int
	Min     int // zero if there is no lower limit
	Max     int
}

func (err *LimitError) Error() string {
	if err.Value > err.Max {
		return fmt.Sprintf("%d columns: %d %s exceeds the maximum of %d",
			err.Columns, err.Value, err.What, err.Max)
	}
	return fmt.Sprintf("%d columns: %d %s is below the minimum of %d",
		err.Columns, err.Value, err.What, err.Min)
}

// LibraryError wraps a panic raised by the symbol generator.
type LibraryError struct {
	Columns int
	Value   any
}

func (err *LibraryError) Error() string {
	return fmt.Sprintf("%d columns: pdf417: %v", err.Columns, err.Value)
}

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

package pdfdoc

import (
	"errors"
	"fmt"
)

var (
	// ErrOpen is matched by all errors returned by [Open].
	ErrOpen = errors.New("cannot open document")

	// ErrSave is matched by all errors returned by [Document.Save].
	ErrSave = errors.New("cannot save document")

	errClosed = errors.New("document is closed")
)

// OpenError is returned when a PDF file cannot be opened.
type OpenError struct {
	Path string
	Err  error
}

func (err *OpenError) Error() string {
	return fmt.Sprintf("%s: cannot open: %v", err.Path, err.Err)
}

func (err *OpenError) Unwrap() error {
	return err.Err
}

// Is allows to use errors.Is(err, ErrOpen).
func (err *OpenError) Is(target error) bool {
	return target == ErrOpen
}

// SaveError is returned when a document cannot be written.
type SaveError struct {
	Path string
	Err  error
}

func (err *SaveError) Error() string {
	return fmt.Sprintf("%s: cannot save: %v", err.Path, err.Err)
}

func (err *SaveError) Unwrap() error {
	return err.Err
}

// Is allows to use errors.Is(err, ErrSave).
func (err *SaveError) Is(target error) bool {
	return target == ErrSave
}

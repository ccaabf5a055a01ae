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

package pdfbarcode

import (
	"fmt"
	"math"
	"slices"
)

// Config holds the parameters which control how barcodes are generated
// and placed on the page.
//
// A Config is constructed once, usually via [Default], and is then passed
// by value to the encoder, the compositor and the pipeline driver.
type Config struct {
	// Scale is the width of a single barcode module, in pixels.
	// Rows are three times as high as a module is wide.
	Scale int

	// SecurityLevel is the PDF417 error correction level, in the range
	// 0 to 8.
	SecurityLevel int

	// ColumnCandidates lists the numbers of data columns to try, in order.
	// The first column count for which the text can be encoded is used.
	ColumnCandidates []int

	// LeftMargin is the distance between the left edge of the page and the
	// barcode, in PDF points.
	LeftMargin float64

	// WidthRatio is the width of the placed barcode, as a fraction of the
	// page width.
	WidthRatio float64

	// MaskRatio is the width of the white strip drawn over the left edge of
	// the page, as a fraction of the page width.  Values outside [0, 1] are
	// clamped before use.  If the ratio is zero, no mask is drawn.
	MaskRatio float64
}

// Default returns the standard configuration.
func Default() Config {
	return Config{
		Scale:            4,
		SecurityLevel:    2,
		ColumnCandidates: []int{4, 3, 2},
		LeftMargin:       10,
		WidthRatio:       0.09,
		MaskRatio:        0.20,
	}
}

// Effective returns a copy of the configuration with the mask ratio
// clamped to [0, 1].  The returned Config does not share the candidate
// slice with c.
func (c Config) Effective() Config {
	c.MaskRatio = ClampRatio(c.MaskRatio)
	c.ColumnCandidates = slices.Clone(c.ColumnCandidates)
	return c
}

// Validate checks that all fields have usable values.
// The mask ratio is not checked, since it is clamped instead.
func (c Config) Validate() error {
	if c.Scale < 1 {
		return &ConfigError{Field: "Scale", Reason: fmt.Sprintf("%d is less than 1", c.Scale)}
	}
	if c.SecurityLevel < 0 || c.SecurityLevel > 8 {
		return &ConfigError{Field: "SecurityLevel", Reason: fmt.Sprintf("%d is outside 0-8", c.SecurityLevel)}
	}
	if len(c.ColumnCandidates) == 0 {
		return &ConfigError{Field: "ColumnCandidates", Reason: "no column counts given"}
	}
	for _, cols := range c.ColumnCandidates {
		if cols < 1 || cols > 30 {
			return &ConfigError{Field: "ColumnCandidates", Reason: fmt.Sprintf("%d columns is outside 1-30", cols)}
		}
	}
	if !(c.WidthRatio > 0 && c.WidthRatio <= 1) {
		return &ConfigError{Field: "WidthRatio", Reason: fmt.Sprintf("%g is outside (0, 1]", c.WidthRatio)}
	}
	if !(c.LeftMargin >= 0) {
		return &ConfigError{Field: "LeftMargin", Reason: fmt.Sprintf("%g is negative", c.LeftMargin)}
	}
	return nil
}

// ClampRatio restricts x to the range [0, 1].
// NaN is mapped to 0.
func ClampRatio(x float64) float64 {
	if math.IsNaN(x) {
		return 0
	}
	return max(0, min(1, x))
}

// ConfigError is returned by [Config.Validate] for an unusable field.
type ConfigError struct {
	Field  string
	Reason string
}

func (err *ConfigError) Error() string {
	return "invalid " + err.Field + ": " + err.Reason
}

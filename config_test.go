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
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestClampRatio(t *testing.T) {
	cases := []struct {
		in, want float64
	}{
		{-1, 0},
		{0, 0},
		{0.5, 0.5},
		{1, 1},
		{2, 1},
		{math.Inf(1), 1},
		{math.Inf(-1), 0},
		{math.NaN(), 0},
	}
	for _, c := range cases {
		got := ClampRatio(c.in)
		if got != c.want {
			t.Errorf("ClampRatio(%g) = %g, want %g", c.in, got, c.want)
		}
	}
}

func TestDefault(t *testing.T) {
	want := Config{
		Scale:            4,
		SecurityLevel:    2,
		ColumnCandidates: []int{4, 3, 2},
		LeftMargin:       10,
		WidthRatio:       0.09,
		MaskRatio:        0.2,
	}
	if d := cmp.Diff(want, Default()); d != "" {
		t.Errorf("unexpected default config (-want +got):\n%s", d)
	}
	if err := Default().Validate(); err != nil {
		t.Errorf("default config is invalid: %v", err)
	}
}

func TestEffective(t *testing.T) {
	cfg := Default()
	cfg.MaskRatio = 2

	eff := cfg.Effective()
	if eff.MaskRatio != 1 {
		t.Errorf("MaskRatio = %g, want 1", eff.MaskRatio)
	}
	if cfg.MaskRatio != 2 {
		t.Errorf("original config was modified")
	}

	eff.ColumnCandidates[0] = 99
	if cfg.ColumnCandidates[0] != 4 {
		t.Errorf("Effective shares the candidate slice")
	}
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name   string
		modify func(*Config)
		field  string
	}{
		{"scale", func(c *Config) { c.Scale = 0 }, "Scale"},
		{"level low", func(c *Config) { c.SecurityLevel = -1 }, "SecurityLevel"},
		{"level high", func(c *Config) { c.SecurityLevel = 9 }, "SecurityLevel"},
		{"no columns", func(c *Config) { c.ColumnCandidates = nil }, "ColumnCandidates"},
		{"too many columns", func(c *Config) { c.ColumnCandidates = []int{4, 31} }, "ColumnCandidates"},
		{"zero width", func(c *Config) { c.WidthRatio = 0 }, "WidthRatio"},
		{"wide", func(c *Config) { c.WidthRatio = 1.5 }, "WidthRatio"},
		{"margin", func(c *Config) { c.LeftMargin = -1 }, "LeftMargin"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			cfg := Default()
			c.modify(&cfg)
			err := cfg.Validate()
			var cfgErr *ConfigError
			if !errors.As(err, &cfgErr) {
				t.Fatalf("expected *ConfigError, got %v", err)
			}
			if cfgErr.Field != c.field {
				t.Errorf("Field = %q, want %q", cfgErr.Field, c.field)
			}
		})
	}

	// the mask ratio is clamped, not rejected
	cfg := Default()
	cfg.MaskRatio = -3
	if err := cfg.Validate(); err != nil {
		t.Errorf("unexpected error for negative mask ratio: %v", err)
	}
}

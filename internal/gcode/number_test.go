package gcode

import (
	"math"
	"testing"
)

func TestParseNumberNoExponent(t *testing.T) {
	cases := []struct {
		in       string
		want     float64
		wantRest string
	}{
		{"12", 12, ""},
		{"12.5", 12.5, ""},
		{"-3.5F9000", -3.5, "F9000"},
		{".5", 0.5, ""},
		{"+2", 2, ""},
		{"12E5", 12, "E5"},
		{"nan", 0, ""},
		{"-inf", 0, ""},
		{"infinity rest", 0, " rest"},
	}
	for _, c := range cases {
		got, rest, ok := parseNumberNoExponent(c.in)
		if !ok {
			t.Errorf("parseNumberNoExponent(%q): expected success", c.in)
			continue
		}
		if rest != c.wantRest {
			t.Errorf("parseNumberNoExponent(%q): rest = %q, want %q", c.in, rest, c.wantRest)
		}
		if math.IsNaN(c.want) {
			continue
		}
		if c.in == "nan" {
			if !math.IsNaN(got) {
				t.Errorf("parseNumberNoExponent(%q): want NaN, got %v", c.in, got)
			}
			continue
		}
		if c.in == "-inf" {
			if got != math.Inf(-1) {
				t.Errorf("parseNumberNoExponent(%q): want -Inf, got %v", c.in, got)
			}
			continue
		}
		if c.in == "infinity rest" {
			if got != math.Inf(1) {
				t.Errorf("parseNumberNoExponent(%q): want +Inf, got %v", c.in, got)
			}
			continue
		}
		if got != c.want {
			t.Errorf("parseNumberNoExponent(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestParseNumberNoExponentRejectsGarbage(t *testing.T) {
	for _, in := range []string{"", "X5", "."} {
		if _, _, ok := parseNumberNoExponent(in); ok {
			t.Errorf("parseNumberNoExponent(%q): expected failure", in)
		}
	}
}

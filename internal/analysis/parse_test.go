package analysis

import (
	"math"
	"testing"
)

func TestParseNumeric(t *testing.T) {
	cases := []struct {
		in   string
		opt  Options
		want float64
		ok   bool
	}{
		{"42", Options{}, 42, true},
		{"-3.5", Options{}, -3.5, true},
		{"1,234.5", Options{}, 1234.5, true},
		{"1.234,5", Options{}, 1234.5, true},
		{"1 234", Options{}, 1234, true},
		{"45%", Options{}, 45, true},
		{"1,5", Options{}, 1.5, true},
		{"3,14", Options{DecimalSeparator: ','}, 3.14, true},
		{"1.234", Options{DecimalSeparator: ',', ThousandsSeparator: '.'}, 1234, true},
		{"abc", Options{}, 0, false},
		{"12abc", Options{}, 0, false},
	}
	for _, tc := range cases {
		got, ok := parseNumeric(tc.in, tc.opt)
		if ok != tc.ok {
			t.Errorf("parseNumeric(%q) ok = %v, want %v", tc.in, ok, tc.ok)
			continue
		}
		if ok && math.Abs(got-tc.want) > 1e-9 {
			t.Errorf("parseNumeric(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestParseTimeMaybe(t *testing.T) {
	for _, s := range []string{
		"2024-03-14",
		"2024/03/14",
		"14/03/2024",
		"2024-03-14 09:30",
		"2024-03-14T09:30:00Z",
	} {
		if _, ok := parseTimeMaybe(s); !ok {
			t.Errorf("parseTimeMaybe(%q) should parse", s)
		}
	}
	for _, s := range []string{"yesterday", "14 March", "2024-13-40", "12345"} {
		if _, ok := parseTimeMaybe(s); ok {
			t.Errorf("parseTimeMaybe(%q) should not parse", s)
		}
	}
}

func TestIsMissing(t *testing.T) {
	for _, s := range []string{"", "na", "NA", "n/a", "NaN", "null", "NULL", "none", "None", "-"} {
		if !isMissing(s) {
			t.Errorf("isMissing(%q) = false, want true", s)
		}
	}
	for _, s := range []string{"0", "x", "--", "nan%"} {
		if isMissing(s) {
			t.Errorf("isMissing(%q) = true, want false", s)
		}
	}
}

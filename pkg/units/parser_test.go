package units

import (
	"errors"
	"math"
	"testing"

	"github.com/OpenTraceLab/OpenTraceRF/pkg/smith"
)

func TestParseImpedance(t *testing.T) {
	cases := []struct {
		in   string
		want smith.Complex
	}{
		{"50", smith.C(50, 0)},
		{"-12.5", smith.C(-12.5, 0)},
		{"25-j10", smith.C(25, -10)},
		{"25 - j10", smith.C(25, -10)},
		{"25 + 10j", smith.C(25, 10)},
		{"j30", smith.C(0, 30)},
		{"-j30", smith.C(0, -30)},
		{"75 Ω", smith.C(75, 0)},
		{"75ohm", smith.C(75, 0)},
		{"75 Ohms", smith.C(75, 0)},
		{"1.5k", smith.C(1500, 0)},
		{"1+j2 kΩ", smith.C(1000, 2000)},
		{"100 mΩ", smith.C(0.1, 0)},
		{"1e2", smith.C(100, 0)},
		{".5", smith.C(0.5, 0)},
	}
	for _, tc := range cases {
		got, err := ParseImpedance(tc.in)
		if err != nil {
			t.Fatalf("ParseImpedance(%q) returned error: %v", tc.in, err)
		}
		if !got.EqualWithin(tc.want, 1e-12) {
			t.Fatalf("ParseImpedance(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestParseImpedanceErrors(t *testing.T) {
	cases := []struct {
		in   string
		want error
	}{
		{"", ErrEmpty},
		{"   ", ErrEmpty},
		{"abc", ErrSyntax},
		{"25 10", ErrSyntax},
		{"j10j", ErrSyntax},
		{"50 GHz", ErrUnit},
		{"50 +", ErrSyntax},
		{"1e308k", ErrSyntax},
		{"1e308 + 1e308", ErrSyntax},
	}
	for _, tc := range cases {
		_, err := ParseImpedance(tc.in)
		if !errors.Is(err, tc.want) {
			t.Fatalf("ParseImpedance(%q) error = %v, want %v", tc.in, err, tc.want)
		}
	}
}

func TestParseOhmsRejectsImaginary(t *testing.T) {
	if _, err := ParseOhms("10+j5"); !errors.Is(err, ErrSyntax) {
		t.Fatalf("ParseOhms with j error = %v, want ErrSyntax", err)
	}
	v, err := ParseOhms("-35.25")
	if err != nil {
		t.Fatalf("ParseOhms returned error: %v", err)
	}
	if v != -35.25 {
		t.Fatalf("ParseOhms = %v, want -35.25", v)
	}
}

func TestParseFrequencyGHz(t *testing.T) {
	cases := []struct {
		in   string
		want float64
	}{
		{"2.4", 2.4},
		{"2.4 GHz", 2.4},
		{"2400MHz", 2.4},
		{"2.4G", 2.4},
		{"2.4e9 Hz", 2.4},
		{"900 MHz", 0.9},
	}
	for _, tc := range cases {
		got, err := ParseFrequencyGHz(tc.in)
		if err != nil {
			t.Fatalf("ParseFrequencyGHz(%q) returned error: %v", tc.in, err)
		}
		if math.Abs(got-tc.want) > 1e-12 {
			t.Fatalf("ParseFrequencyGHz(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}

	if _, err := ParseFrequencyGHz("2.4 Ω"); !errors.Is(err, ErrUnit) {
		t.Fatalf("ParseFrequencyGHz with ohms error = %v, want ErrUnit", err)
	}
	if _, err := ParseFrequencyGHz(""); !errors.Is(err, ErrEmpty) {
		t.Fatalf("ParseFrequencyGHz(\"\") error = %v, want ErrEmpty", err)
	}
}

func TestNewParserExpressionTree(t *testing.T) {
	p, err := NewParser()
	if err != nil {
		t.Fatalf("NewParser returned error: %v", err)
	}
	expr, err := p.ParseString("25 - 10j kohm")
	if err != nil {
		t.Fatalf("ParseString returned error: %v", err)
	}
	if len(expr.Terms) != 2 {
		t.Fatalf("terms = %d, want 2", len(expr.Terms))
	}
	if expr.Terms[0].Imaginary() || !expr.Terms[1].Imaginary() {
		t.Fatalf("imaginary flags = %v/%v", expr.Terms[0].Imaginary(), expr.Terms[1].Imaginary())
	}
	if expr.Terms[1].Signed() != -10 {
		t.Fatalf("second term = %v, want -10", expr.Terms[1].Signed())
	}
	if expr.Unit != "kohm" {
		t.Fatalf("unit = %q, want kohm", expr.Unit)
	}
}

func TestParseComplex(t *testing.T) {
	got, err := ParseComplex("0.5-j0.25")
	if err != nil {
		t.Fatalf("ParseComplex returned error: %v", err)
	}
	if got != smith.C(0.5, -0.25) {
		t.Fatalf("ParseComplex = %v, want 0.5-j0.25", got)
	}
	if got, err := ParseComplex("-0.3"); err != nil || got != smith.C(-0.3, 0) {
		t.Fatalf("ParseComplex(-0.3) = %v, %v", got, err)
	}
	if _, err := ParseComplex("0.5 ohm"); !errors.Is(err, ErrUnit) {
		t.Fatalf("ParseComplex with unit error = %v, want ErrUnit", err)
	}
}

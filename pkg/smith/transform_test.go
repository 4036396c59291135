package smith

import (
	"errors"
	"math"
	"testing"
)

func TestImpedanceOfMatchedLoad(t *testing.T) {
	z, err := NewTransform(50).Impedance(C(0, 0))
	if err != nil {
		t.Fatalf("Impedance returned error: %v", err)
	}
	if z != C(50, 0) {
		t.Fatalf("Impedance(0) = %v, want 50+j0", z)
	}
}

func TestImpedanceKnownPoints(t *testing.T) {
	tr := NewTransform(50)
	cases := []struct {
		gamma Complex
		want  Complex
	}{
		{C(-1, 0), C(0, 0)},      // short
		{C(1.0/3, 0), C(100, 0)}, // 2 * Z0
		{C(-1.0/3, 0), C(25, 0)}, // Z0 / 2
		{C(0, 1), C(0, 50)},      // +j1 on the rim
		{C(0, -1), C(0, -50)},    // -j1 on the rim
		{C(0.2, 0.4), C(50, 50)}, // z = 1+j1
	}
	for _, tc := range cases {
		got, err := tr.Impedance(tc.gamma)
		if err != nil {
			t.Fatalf("Impedance(%v) returned error: %v", tc.gamma, err)
		}
		if !got.EqualWithin(tc.want, 1e-9) {
			t.Fatalf("Impedance(%v) = %v, want %v", tc.gamma, got, tc.want)
		}
	}
}

func TestImpedanceAtPoleIsSingular(t *testing.T) {
	z, err := NewTransform(50).Impedance(C(1, 0))
	if !errors.Is(err, ErrSingularTransform) {
		t.Fatalf("Impedance(1) error = %v, want ErrSingularTransform", err)
	}
	if z != (Complex{}) {
		t.Fatalf("Impedance(1) returned value %v alongside error", z)
	}
}

func TestGammaAtPoleIsSingular(t *testing.T) {
	_, err := NewTransform(50).Gamma(C(-50, 0))
	if !errors.Is(err, ErrSingularTransform) {
		t.Fatalf("Gamma(-Z0) error = %v, want ErrSingularTransform", err)
	}
}

func TestRoundTripInsideDisk(t *testing.T) {
	for _, z0 := range []float64{50, 75, 1} {
		tr := NewTransform(z0)
		for mag := 0.0; mag < 1; mag += 0.09 {
			for ang := -math.Pi; ang < math.Pi; ang += math.Pi / 7 {
				g := C(mag*math.Cos(ang), mag*math.Sin(ang))
				z, err := tr.Impedance(g)
				if err != nil {
					t.Fatalf("Impedance(%v) returned error: %v", g, err)
				}
				back, err := tr.Gamma(z)
				if err != nil {
					t.Fatalf("Gamma(%v) returned error: %v", z, err)
				}
				if !back.EqualWithin(g, 1e-9) {
					t.Fatalf("Z0=%g: Gamma(Impedance(%v)) = %v", z0, g, back)
				}
				again, err := tr.Impedance(back)
				if err != nil {
					t.Fatalf("Impedance(%v) returned error: %v", back, err)
				}
				if !again.EqualWithin(z, 1e-6) {
					t.Fatalf("Z0=%g: forward(inverse(forward(%v))) = %v, want %v", z0, g, again, z)
				}
			}
		}
	}
}

func TestNormalize(t *testing.T) {
	tr := NewTransform(50)
	if got := tr.Normalize(C(100, -25)); got != C(2, -0.5) {
		t.Fatalf("Normalize = %v, want 2-j0.5", got)
	}
	if got := tr.Denormalize(C(2, -0.5)); got != C(100, -25) {
		t.Fatalf("Denormalize = %v, want 100-j25", got)
	}
}

func TestVSWRAndReturnLoss(t *testing.T) {
	v, err := VSWR(C(1.0/3, 0))
	if err != nil {
		t.Fatalf("VSWR returned error: %v", err)
	}
	if math.Abs(v-2) > 1e-12 {
		t.Fatalf("VSWR = %v, want 2", v)
	}
	if _, err := VSWR(C(0, 1)); !errors.Is(err, ErrSingularTransform) {
		t.Fatalf("VSWR on rim error = %v, want ErrSingularTransform", err)
	}

	rl, err := ReturnLossDB(C(0.1, 0))
	if err != nil {
		t.Fatalf("ReturnLossDB returned error: %v", err)
	}
	if math.Abs(rl-20) > 1e-9 {
		t.Fatalf("ReturnLossDB = %v, want 20", rl)
	}
	if _, err := ReturnLossDB(C(0, 0)); !errors.Is(err, ErrNoReflection) {
		t.Fatalf("ReturnLossDB(0) error = %v, want ErrNoReflection", err)
	}
}

func TestFormatting(t *testing.T) {
	if got := FormatOhms(50); got != "50.00" {
		t.Fatalf("FormatOhms(50) = %q", got)
	}
	if got := FormatOhms(math.Copysign(0, -1)); got != "0.00" {
		t.Fatalf("FormatOhms(-0) = %q, want 0.00", got)
	}
	if got := FormatOhms(-0.001); got != "0.00" {
		t.Fatalf("FormatOhms(-0.001) = %q, want 0.00", got)
	}
	if got := FormatOhms(-12.345); got != "-12.35" && got != "-12.34" {
		t.Fatalf("FormatOhms(-12.345) = %q", got)
	}
	if got := FormatGamma(C(0.5, -0.25)); got != "0.500 + j-0.250" {
		t.Fatalf("FormatGamma = %q", got)
	}
}

func TestTransformRejectsNonFiniteInput(t *testing.T) {
	tr := NewTransform(50)
	if g, err := tr.Gamma(C(math.Inf(1), 0)); !errors.Is(err, ErrSingularTransform) {
		t.Fatalf("Gamma(+Inf) = %v, %v, want ErrSingularTransform", g, err)
	}
	if z, err := tr.Impedance(C(math.NaN(), 0)); !errors.Is(err, ErrSingularTransform) {
		t.Fatalf("Impedance(NaN) = %v, %v, want ErrSingularTransform", z, err)
	}
}

func TestFormatAngle(t *testing.T) {
	cases := []struct {
		g    Complex
		want string
	}{
		{C(0.5, math.Copysign(0, -1)), "0.0°"},
		{C(0, 0.5), "90.0°"},
		{C(-0.5, 0), "180.0°"},
		{C(0.3, -0.3), "-45.0°"},
	}
	for _, tc := range cases {
		if got := FormatAngle(tc.g); got != tc.want {
			t.Fatalf("FormatAngle(%v) = %q, want %q", tc.g, got, tc.want)
		}
	}
}

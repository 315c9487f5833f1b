package astrosim

import (
	"math"
	"testing"

	"github.com/gonum/matrix/mat64"
)

func TestR1R2R3(t *testing.T) {
	x := math.Pi / 3.0
	s, c := math.Sincos(x)
	r1 := R1(x)
	r2 := R2(x)
	r3 := R3(x)
	// Test items equal to 1.
	if r1.At(0, 0) != r2.At(1, 1) || r1.At(0, 0) != r3.At(2, 2) || r3.At(2, 2) != 1 {
		t.Fatal("expected R1.At(0, 0) = R2.At(1, 1) = R3.At(2, 2) = 1\n")
	}
	// Test items equal to 0.
	if r1.At(0, 1) != r1.At(0, 2) || r1.At(1, 0) != r1.At(2, 0) || r1.At(0, 1) != 0 {
		t.Fatal("misplaced zeros in R1\n")
	}
	if r2.At(0, 1) != r2.At(1, 2) || r2.At(1, 0) != r2.At(1, 2) || r2.At(1, 2) != 0 {
		t.Fatal("misplaced zeros in R2\n")
	}
	if r3.At(2, 0) != r3.At(2, 1) || r3.At(0, 2) != r3.At(1, 2) || r3.At(1, 2) != 0 {
		t.Fatal("misplaced zeros in R3\n")
	}
	// Test R1.
	if r1.At(1, 1) != r1.At(2, 2) || r1.At(2, 2) != c {
		t.Fatal("expected R1 cosines misplaced\n")
	}
	if r1.At(2, 1) != -r1.At(1, 2) || r1.At(1, 2) != s {
		t.Fatal("expected R1 sines misplaced\n")
	}
	// Test R2.
	if r2.At(0, 0) != r2.At(2, 2) || r2.At(2, 2) != c {
		t.Fatal("expected R2 cosines misplaced\n")
	}
	if r2.At(2, 0) != -r2.At(0, 2) || r2.At(2, 0) != s {
		t.Fatal("expected R2 sines misplaced\n")
	}
	// Test R3.
	if r3.At(1, 1) != r3.At(0, 0) || r3.At(0, 0) != c {
		t.Fatal("expected R3 cosines misplaced\n")
	}
	if r3.At(0, 1) != -r3.At(1, 0) || r3.At(0, 1) != s {
		t.Fatal("expected R3 sines misplaced\n")
	}
}

func TestR3R1R3(t *testing.T) {
	var R1R3, expected mat64.Dense
	i := math.Pi / 17
	ω := math.Pi / 16
	Ω := math.Pi / 15
	R1R3.Mul(R1(-i), R3(-ω))
	expected.Mul(R3(-Ω), &R1R3)
	expected.Sub(&expected, R3R1R3(i, ω, Ω))
	if !mat64.EqualApprox(&expected, mat64.NewDense(3, 3, nil), 1e-12) {
		t.Logf("\n%+v", mat64.Formatted(&expected))
		t.Logf("\n%+v", mat64.Formatted(R3R1R3(i, ω, Ω)))
		t.Fatal("R3R1R3 does not match R3(-Ω)·R1(-i)·R3(-ω)")
	}
}

func TestPQW2Ecliptic(t *testing.T) {
	// Vallado's COE2RV case; a pure rotation is unit-agnostic.
	i := Deg2rad(87.87)
	ω := Deg2rad(53.38)
	Ω := Deg2rad(227.89)
	Rp := PQW2Ecliptic(i, ω, Ω, []float64{-466.7639, 11447.0219, 0})
	Re := []float64{6525.368103709379, 6861.531814548294, 6449.118636407358}
	for j := 0; j < 3; j++ {
		if math.Abs(Rp[j]-Re[j]) > 1e-6 {
			t.Fatalf("R conversion failed: %+v != %+v", Rp, Re)
		}
	}
	Vp := PQW2Ecliptic(i, ω, Ω, []float64{-5.996222, 4.753601, 0})
	Ve := []float64{4.902278620687254, 5.533139558121602, -1.9757104281719946}
	for j := 0; j < 3; j++ {
		if math.Abs(Vp[j]-Ve[j]) > 1e-6 {
			t.Fatalf("V conversion failed: %+v != %+v", Vp, Ve)
		}
	}
}

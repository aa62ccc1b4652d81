package common

import "testing"

func TestFraction(t *testing.T) {
	cases := []struct {
		n, d int
		want float32
	}{
		{0, 10, 0},
		{5, 10, 0.5},
		{12, 10, 1},
		{3, 0, 0},
		{-1, 4, 0},
	}
	for _, c := range cases {
		if got := Fraction(c.n, c.d); got != c.want {
			t.Fatalf("Fraction(%d, %d) = %v, want %v", c.n, c.d, got, c.want)
		}
	}
}

func TestLerp(t *testing.T) {
	if got := Lerp(0, 10, 0.25); got != 2.5 {
		t.Fatalf("Lerp = %v, want 2.5", got)
	}
}

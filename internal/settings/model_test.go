package settings

import "testing"

func TestNormalizeScalesFractions(t *testing.T) {
	cases := []struct {
		in   float64
		want float64
	}{
		{0.75, 75},
		{1, 100},
		{0.05, 5},
		{75, 75},
		{100, 100},
		{0, 0},
	}
	for _, tc := range cases {
		s := Settings{AdvanceRateDefault: tc.in}
		s.Normalize()
		if s.AdvanceRateDefault != tc.want {
			t.Errorf("Normalize(%v) = %v, want %v", tc.in, s.AdvanceRateDefault, tc.want)
		}
	}
}

func TestNormalizeIsStable(t *testing.T) {
	s := Settings{AdvanceRateDefault: 0.75}
	s.Normalize()
	s.Normalize()
	if s.AdvanceRateDefault != 75 {
		t.Errorf("double Normalize = %v, want 75", s.AdvanceRateDefault)
	}
}

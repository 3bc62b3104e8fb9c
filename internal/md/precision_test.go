package md

import "testing"

func TestParsePrecision(t *testing.T) {
	cases := []struct {
		in   string
		want Precision
		ok   bool
	}{
		{"", Double, true},
		{"double", Double, true},
		{"mixed", Mixed, true},
		{"single", Single, true},
		{"half", Double, false},
	}
	for _, tc := range cases {
		got, err := ParsePrecision(tc.in)
		if tc.ok && err != nil {
			t.Errorf("ParsePrecision(%q): %v", tc.in, err)
		}
		if !tc.ok && err == nil {
			t.Errorf("ParsePrecision(%q): expected error", tc.in)
		}
		if tc.ok && got != tc.want {
			t.Errorf("ParsePrecision(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestRoundNarrowing(t *testing.T) {
	v := 1.0 + 1e-12 // representable in float64, not in float32

	if Double.Round(v) != v {
		t.Error("double must keep full width")
	}
	if Mixed.Round(v) == v {
		t.Error("mixed must narrow contributions")
	}
	if Single.Round(v) == v {
		t.Error("single must narrow contributions")
	}

	if Double.RoundSum(v) != v || Mixed.RoundSum(v) != v {
		t.Error("only single narrows the accumulator")
	}
	if Single.RoundSum(v) == v {
		t.Error("single must narrow the accumulator")
	}
}

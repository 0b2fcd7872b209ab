package utils

import "testing"

func TestAtoiDefault(t *testing.T) {
	cases := []struct {
		s    string
		def  int
		want int
	}{
		{"", 6, 6},        // empty -> default
		{"6", 0, 6},       // valid
		{"-1", 6, -1},     // negatives parse; callers clamp
		{"0050", 6, 50},   // leading zeros accepted
		{"ten", 6, 6},     // non-numeric -> default
		{" 6", 6, 6},      // no trimming
		{"99999999999999999999", 6, 6}, // overflow -> default
	}

	for _, tc := range cases {
		if got := AtoiDefault(tc.s, tc.def); got != tc.want {
			t.Fatalf("AtoiDefault(%q, %d) = %d; want %d", tc.s, tc.def, got, tc.want)
		}
	}
}

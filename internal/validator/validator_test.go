package validator

import "testing"

func TestDiscountCodeFormat(t *testing.T) {
	cases := []struct {
		code string
		ok   bool
	}{
		{"EXAM15A1B2C3", true},
		{"COURSE20XYZ123", true},
		{"EXAM5ABCDEF", true},
		{"EXAM100ZZZZZZ", true},
		{"exam15a1b2c3", false},
		{"EXAM15A1B2C", false},   // suffix too short
		{"EXAM15A1B2C3D", false}, // suffix too long
		{"PROMO15A1B2C3", false},
		{"EXAMA1B2C3", false}, // missing discount digits
		{"", false},
	}

	for _, tc := range cases {
		if got := discountCodeRe.MatchString(tc.code); got != tc.ok {
			t.Errorf("%q: match = %t, want %t", tc.code, got, tc.ok)
		}
	}
}

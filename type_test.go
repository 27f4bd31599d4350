package capgrowth

import "testing"

func TestMoneyString(t *testing.T) {
	testCases := []struct {
		m    Money
		want string
	}{
		{M(500000, "MYR"), "RM500,000.00"},
		{M(1234.567, "EUR"), "€1,234.57"},
		{M(-12.5, "USD"), "-$12.50"},
		{M(42.125, ""), "42.13"},
	}
	for _, tc := range testCases {
		if got := tc.m.String(); got != tc.want {
			t.Errorf("String() = %q, want %q", got, tc.want)
		}
	}
	if got := M(0, "EUR").SignedString(); got != "-" {
		t.Errorf("SignedString() = %q, want %q", got, "-")
	}
	if got := M(3, "EUR").Sub(M(1, "EUR")).SignedString(); got != "+€2.00" {
		t.Errorf("SignedString() = %q, want %q", got, "+€2.00")
	}
}

func TestPercent(t *testing.T) {
	if got := Fraction(0.0512).String(); got != "5.12%" {
		t.Errorf("String() = %q, want %q", got, "5.12%")
	}
	if got := Percent(-1.5).SignedString(); got != "-1.50%" {
		t.Errorf("SignedString() = %q, want %q", got, "-1.50%")
	}
	if got := Percent(0).SignedString(); got != "-" {
		t.Errorf("SignedString() = %q, want %q", got, "-")
	}
}

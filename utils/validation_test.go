package utils

import "testing"

func TestNormalizePhone(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"77 123 45 67", "771234567"},
		{"+221 77 123 45 67", "+221771234567"},
		{"00221771234567", "+221771234567"},
		{"77.123-45.67", "771234567"},
		{"77+123", "77123"},
		{"", ""},
	}

	for _, tc := range cases {
		if got := NormalizePhone(tc.in); got != tc.want {
			t.Errorf("NormalizePhone(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestIsValidEmail(t *testing.T) {
	valid := []string{"a@b.co", "prenom.nom@digicoop.sn", "x+tag@ferme.example.com"}
	for _, e := range valid {
		if !IsValidEmail(e) {
			t.Errorf("%q should be valid", e)
		}
	}
	invalid := []string{"", "pas-un-email", "a@b", "a b@c.com", "@c.com"}
	for _, e := range invalid {
		if IsValidEmail(e) {
			t.Errorf("%q should be invalid", e)
		}
	}
}

func TestIsStrongPassword(t *testing.T) {
	if !IsStrongPassword("abc123xy") {
		t.Error("letters plus digits should pass")
	}
	if IsStrongPassword("abcdefgh") {
		t.Error("letters only should fail")
	}
	if IsStrongPassword("12345678") {
		t.Error("digits only should fail")
	}
}

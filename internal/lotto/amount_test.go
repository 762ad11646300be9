package lotto

import "testing"

func TestParseAmount(t *testing.T) {
	tests := []struct {
		in   string
		want float64
		err  bool
	}{
		{"R$ 1.234.567,89", 1234567.89, false},
		{"R$ 0,00", 0, false},
		{"R$ 12,50", 12.5, false},
		{"1234.5", 1234.5, false},
		{"", 0, true},
		{"R$ abc", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseAmount(tt.in)
		if (err != nil) != tt.err {
			t.Errorf("ParseAmount(%q) error = %v, wantErr %v", tt.in, err, tt.err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseAmount(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestFormatAmount(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "R$ 0,00"},
		{3, "R$ 3,00"},
		{1234.5, "R$ 1.234,50"},
		{1234567.891, "R$ 1.234.567,89"},
		{-60, "-R$ 60,00"},
	}
	for _, tt := range tests {
		if got := FormatAmount(tt.in); got != tt.want {
			t.Errorf("FormatAmount(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestParseNumber(t *testing.T) {
	for _, ok := range []string{"0", "00", "07", " 42 ", "99"} {
		if _, err := ParseNumber(ok); err != nil {
			t.Errorf("ParseNumber(%q) unexpected error: %v", ok, err)
		}
	}
	for _, bad := range []string{"100", "-1", "a1", ""} {
		if _, err := ParseNumber(bad); err == nil {
			t.Errorf("ParseNumber(%q) expected error", bad)
		}
	}
}

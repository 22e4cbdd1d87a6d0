package monitor

import (
	"errors"
	"testing"
)

func TestParseAddress(t *testing.T) {
	cases := []struct {
		in   string
		want int
	}{
		{"1234", 0x1234},
		{"0x1234", 0x1234},
		{"$FFFF", 0xFFFF},
		{"00ff", 0x00FF},
		{" C000 ", 0xC000},
		{"0", 0},
	}
	for _, tc := range cases {
		got, err := ParseAddress(tc.in)
		if err != nil {
			t.Fatalf("ParseAddress(%q): %v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("ParseAddress(%q) = 0x%X, want 0x%X", tc.in, got, tc.want)
		}
	}
}

func TestParseAddressRejectsBadInput(t *testing.T) {
	for _, in := range []string{"", "  ", "xyz", "12G4", "10000", "0x10000", "-1"} {
		if _, err := ParseAddress(in); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("ParseAddress(%q): got %v, want ErrInvalidInput", in, err)
		}
	}
}

func TestParseByte(t *testing.T) {
	got, err := ParseByte("AB")
	if err != nil {
		t.Fatal(err)
	}
	if got != 0xAB {
		t.Fatalf("got 0x%X, want 0xAB", got)
	}

	for _, in := range []string{"100", "0x1FF", "zz", ""} {
		if _, err := ParseByte(in); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("ParseByte(%q): got %v, want ErrInvalidInput", in, err)
		}
	}
}

package monitor

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseAddress parses user-entered hex text as a 16-bit address.
// Leading "0x" or "$" prefixes are accepted. Non-hex text and values
// above 0xFFFF fail with ErrInvalidInput.
func ParseAddress(s string) (int, error) {
	v, err := parseHex(s)
	if err != nil {
		return 0, err
	}
	if v > 0xFFFF {
		return 0, fmt.Errorf("%w: address 0x%X exceeds 0xFFFF", ErrInvalidInput, v)
	}
	return int(v), nil
}

// ParseByte parses user-entered hex text as an 8-bit value.
func ParseByte(s string) (int, error) {
	v, err := parseHex(s)
	if err != nil {
		return 0, err
	}
	if v > 0xFF {
		return 0, fmt.Errorf("%w: value 0x%X exceeds 0xFF", ErrInvalidInput, v)
	}
	return int(v), nil
}

func parseHex(s string) (uint64, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "0x")
	s = strings.TrimPrefix(s, "0X")
	s = strings.TrimPrefix(s, "$")
	if s == "" {
		return 0, fmt.Errorf("%w: empty hex string", ErrInvalidInput)
	}
	v, err := strconv.ParseUint(s, 16, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not valid hex", ErrInvalidInput, s)
	}
	return v, nil
}

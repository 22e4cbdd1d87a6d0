package monitor

import (
	"bytes"
	"errors"
	"testing"
)

func TestEncodeControlCommands(t *testing.T) {
	cases := []struct {
		cmd  Command
		want []byte
	}{
		{Reset(), []byte{0x52}},
		{Halt(), []byte{0x48}},
		{Continue(), []byte{0x43}},
		{Step(), []byte{0x53}},
	}
	for _, tc := range cases {
		got, err := tc.cmd.Encode()
		if err != nil {
			t.Fatalf("%s: %v", tc.cmd, err)
		}
		if !bytes.Equal(got, tc.want) {
			t.Fatalf("%s: got % X, want % X", tc.cmd, got, tc.want)
		}
	}
}

func TestEncodeReadMemory(t *testing.T) {
	got, err := ReadMemory(0x1234).Encode()
	if err != nil {
		t.Fatal(err)
	}
	want := []byte{0x4D, 0x12, 0x34}
	if !bytes.Equal(got, want) {
		t.Fatalf("got % X, want % X", got, want)
	}
}

func TestEncodeWriteMemory(t *testing.T) {
	got, err := WriteMemory(0x00FF, 0xAB).Encode()
	if err != nil {
		t.Fatal(err)
	}
	want := []byte{0x57, 0x00, 0xFF, 0xAB}
	if !bytes.Equal(got, want) {
		t.Fatalf("got % X, want % X", got, want)
	}
}

func TestEncodeSetBreakpoint(t *testing.T) {
	got, err := SetBreakpoint(0xC000).Encode()
	if err != nil {
		t.Fatal(err)
	}
	want := []byte{0x42, 0xC0, 0x00}
	if !bytes.Equal(got, want) {
		t.Fatalf("got % X, want % X", got, want)
	}
}

func TestEncodeLoadMemory(t *testing.T) {
	data := []byte{0xA9, 0x01, 0x8D}
	got, err := LoadMemory(0x0200, data).Encode()
	if err != nil {
		t.Fatal(err)
	}
	want := []byte{0x4C, 0x02, 0x00, 0x00, 0x03, 0xA9, 0x01, 0x8D}
	if !bytes.Equal(got, want) {
		t.Fatalf("got % X, want % X", got, want)
	}
}

func TestEncodeRejectsOutOfRange(t *testing.T) {
	cases := []Command{
		ReadMemory(0x10000),
		ReadMemory(-1),
		WriteMemory(0x0000, 0x100),
		WriteMemory(0x0000, -1),
		WriteMemory(0x10000, 0x00),
		SetBreakpoint(0x12345),
		LoadMemory(0x0000, nil),
		LoadMemory(-1, []byte{0x00}),
		{Kind: CommandKind('Z')},
	}
	for _, cmd := range cases {
		if _, err := cmd.Encode(); !errors.Is(err, ErrEncoding) {
			t.Fatalf("%s: got %v, want ErrEncoding", cmd, err)
		}
	}
}

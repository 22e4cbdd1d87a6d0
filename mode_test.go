package monitor

import (
	"testing"

	gobug "go.bug.st/serial"

	"github.com/m6502-lab/monitor/internal/config"
)

func TestBuildMode(t *testing.T) {
	cfg := config.Default()
	cfg.Parity = "E"
	cfg.StopBits = 2

	mode, err := buildMode(&cfg)
	if err != nil {
		t.Fatal(err)
	}
	if mode.BaudRate != cfg.BaudRate || mode.DataBits != 8 {
		t.Fatalf("mode %+v", mode)
	}
	if mode.Parity != gobug.EvenParity || mode.StopBits != gobug.TwoStopBits {
		t.Fatalf("mode %+v", mode)
	}
}

func TestBuildModeRejectsBadParity(t *testing.T) {
	cfg := config.Default()
	cfg.Parity = "X"
	if _, err := buildMode(&cfg); err == nil {
		t.Fatal("expected error for unsupported parity")
	}
}

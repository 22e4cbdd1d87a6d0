package monitor

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeTempImage(t *testing.T, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "image.bin")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadImage(t *testing.T) {
	svc, sink := newTestService(t)
	mp := connectMock(t, svc)
	defer svc.Disconnect()
	svc.Poller().Stop()

	data := []byte{0xA9, 0x01, 0x8D}
	path := writeTempImage(t, data)

	if err := svc.LoadImage(0x0200, path); err != nil {
		t.Fatalf("LoadImage: %v", err)
	}

	writes := mp.recordedWrites()
	if len(writes) != 1 {
		t.Fatalf("expected 1 write, got %d", len(writes))
	}
	want := append([]byte{0x4C, 0x02, 0x00, 0x00, 0x03}, data...)
	if !bytes.Equal(writes[0], want) {
		t.Fatalf("wrote % X, want % X", writes[0], want)
	}

	lines := sink.Lines()
	if len(lines) != 1 || !strings.HasPrefix(lines[0], "Loaded 3 bytes at 0x0200 (CRC16 0x") {
		t.Fatalf("sink lines %v, want load summary", lines)
	}
}

func TestLoadImageWhileDisconnected(t *testing.T) {
	svc, _ := newTestService(t)
	path := writeTempImage(t, []byte{0x00})

	if err := svc.LoadImage(0x0200, path); !errors.Is(err, ErrNotConnected) {
		t.Fatalf("got %v, want ErrNotConnected", err)
	}
}

func TestLoadImageTooLarge(t *testing.T) {
	svc, _ := newTestService(t)
	connectMock(t, svc)
	defer svc.Disconnect()

	path := writeTempImage(t, []byte{0x00, 0x01})
	if err := svc.LoadImage(0xFFFF, path); !errors.Is(err, ErrImageTooLarge) {
		t.Fatalf("got %v, want ErrImageTooLarge", err)
	}
}

func TestLoadImageMissingFile(t *testing.T) {
	svc, _ := newTestService(t)
	connectMock(t, svc)
	defer svc.Disconnect()

	if err := svc.LoadImage(0x0200, filepath.Join(t.TempDir(), "missing.bin")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

package monitor

import (
	"fmt"
	"os"

	"github.com/sigurn/crc16"
)

var crcTable = crc16.MakeTable(crc16.CRC16_MODBUS)

// LoadImage reads a raw binary image from path and uploads it to board
// memory at addr with a single load command. On success a summary line
// with the payload's CRC16 is appended to the sink so the transfer can
// be cross-checked against the board.
func (s *Service) LoadImage(addr int, path string) error {
	if !s.isOpen.Load() {
		return ErrNotConnected
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading image file: %w", err)
	}
	if len(data) == 0 {
		return fmt.Errorf("%w: image file is empty", ErrInvalidInput)
	}
	if addr < 0 || addr > 0xFFFF {
		return fmt.Errorf("%w: address 0x%X", ErrInvalidInput, addr)
	}
	if addr+len(data) > 0x10000 {
		return fmt.Errorf("%w: %d bytes at 0x%04X", ErrImageTooLarge, len(data), addr)
	}

	if err := s.SendCommand(LoadMemory(addr, data)); err != nil {
		return err
	}

	crc := crc16.Checksum(data, crcTable)
	s.sink.Append(fmt.Sprintf("Loaded %d bytes at 0x%04X (CRC16 0x%04X)", len(data), addr, crc))
	s.Logger.Info("image loaded", "path", path, "addr", addr, "bytes", len(data))
	return nil
}

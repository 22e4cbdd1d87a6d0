package monitor

import "fmt"

// CommandKind tags the monitor commands understood by the board firmware.
type CommandKind byte

const (
	KindReset         CommandKind = 'R'
	KindHalt          CommandKind = 'H'
	KindContinue      CommandKind = 'C'
	KindStep          CommandKind = 'S'
	KindReadMemory    CommandKind = 'M'
	KindWriteMemory   CommandKind = 'W'
	KindLoadMemory    CommandKind = 'L'
	KindSetBreakpoint CommandKind = 'B'
)

// Command is one operation addressed to the board. Addr and Value are
// kept as int so Encode can reject out-of-range values instead of
// truncating them at the type boundary.
type Command struct {
	Kind  CommandKind
	Addr  int
	Value int
	Data  []byte
}

func Reset() Command    { return Command{Kind: KindReset} }
func Halt() Command     { return Command{Kind: KindHalt} }
func Continue() Command { return Command{Kind: KindContinue} }
func Step() Command     { return Command{Kind: KindStep} }

func ReadMemory(addr int) Command {
	return Command{Kind: KindReadMemory, Addr: addr}
}

func WriteMemory(addr, val int) Command {
	return Command{Kind: KindWriteMemory, Addr: addr, Value: val}
}

func LoadMemory(addr int, data []byte) Command {
	return Command{Kind: KindLoadMemory, Addr: addr, Data: data}
}

func SetBreakpoint(addr int) Command {
	return Command{Kind: KindSetBreakpoint, Addr: addr}
}

// Encode produces the wire bytes for a command: a single ASCII tag byte,
// optionally followed by a 16-bit big-endian address, an 8-bit value, or
// a length-prefixed payload. It fails with ErrEncoding on any value the
// format cannot represent.
func (c Command) Encode() ([]byte, error) {
	switch c.Kind {
	case KindReset, KindHalt, KindContinue, KindStep:
		return []byte{byte(c.Kind)}, nil

	case KindReadMemory, KindSetBreakpoint:
		if err := checkAddr(c.Addr); err != nil {
			return nil, err
		}
		return []byte{byte(c.Kind), byte(c.Addr >> 8), byte(c.Addr)}, nil

	case KindWriteMemory:
		if err := checkAddr(c.Addr); err != nil {
			return nil, err
		}
		if c.Value < 0 || c.Value > 0xFF {
			return nil, fmt.Errorf("%w: value 0x%X", ErrEncoding, c.Value)
		}
		return []byte{byte(c.Kind), byte(c.Addr >> 8), byte(c.Addr), byte(c.Value)}, nil

	case KindLoadMemory:
		if err := checkAddr(c.Addr); err != nil {
			return nil, err
		}
		if len(c.Data) == 0 || len(c.Data) > 0xFFFF {
			return nil, fmt.Errorf("%w: payload length %d", ErrEncoding, len(c.Data))
		}
		buf := make([]byte, 0, 5+len(c.Data))
		buf = append(buf, byte(c.Kind), byte(c.Addr>>8), byte(c.Addr),
			byte(len(c.Data)>>8), byte(len(c.Data)))
		return append(buf, c.Data...), nil
	}

	return nil, fmt.Errorf("%w: unknown command %q", ErrEncoding, byte(c.Kind))
}

func checkAddr(addr int) error {
	if addr < 0 || addr > 0xFFFF {
		return fmt.Errorf("%w: address 0x%X", ErrEncoding, addr)
	}
	return nil
}

// String renders the command for console status lines.
func (c Command) String() string {
	switch c.Kind {
	case KindReset:
		return "Reset CPU"
	case KindHalt:
		return "Halt CPU"
	case KindContinue:
		return "Continue CPU"
	case KindStep:
		return "Step CPU"
	case KindReadMemory:
		return fmt.Sprintf("Read Memory at 0x%04X", c.Addr)
	case KindWriteMemory:
		return fmt.Sprintf("Write 0x%02X to Memory at 0x%04X", c.Value, c.Addr)
	case KindLoadMemory:
		return fmt.Sprintf("Load %d bytes at 0x%04X", len(c.Data), c.Addr)
	case KindSetBreakpoint:
		return fmt.Sprintf("Set Breakpoint at 0x%04X", c.Addr)
	}
	return fmt.Sprintf("Unknown command %q", byte(c.Kind))
}

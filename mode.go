package monitor

import (
	"fmt"

	gobug "go.bug.st/serial"

	"github.com/m6502-lab/monitor/internal/config"
)

type BaudRate int

func (b BaudRate) Int() int {
	return int(b)
}

const (
	Baud1200   BaudRate = 1200
	Baud2400   BaudRate = 2400
	Baud4800   BaudRate = 4800
	Baud9600   BaudRate = 9600
	Baud19200  BaudRate = 19200
	Baud38400  BaudRate = 38400
	Baud57600  BaudRate = 57600
	Baud115200 BaudRate = 115200
	Baud230400 BaudRate = 230400
	Baud460800 BaudRate = 460800
	Baud921600 BaudRate = 921600
)

type DataBits int

func (d DataBits) Int() int {
	return int(d)
}

const (
	DataBits5 DataBits = 5
	DataBits6 DataBits = 6
	DataBits7 DataBits = 7
	DataBits8 DataBits = 8
)

// buildMode maps the terminal config onto a go.bug.st serial mode.
func buildMode(cfg *config.Config) (*gobug.Mode, error) {
	mode := &gobug.Mode{
		BaudRate: BaudRate(cfg.BaudRate).Int(),
		DataBits: DataBits(cfg.DataBits).Int(),
	}

	switch cfg.Parity {
	case "", "N":
		mode.Parity = gobug.NoParity
	case "E":
		mode.Parity = gobug.EvenParity
	case "O":
		mode.Parity = gobug.OddParity
	default:
		return nil, fmt.Errorf("unsupported parity %q (use N, E, O)", cfg.Parity)
	}

	switch cfg.StopBits {
	case 0, 1:
		mode.StopBits = gobug.OneStopBit
	case 2:
		mode.StopBits = gobug.TwoStopBits
	default:
		return nil, fmt.Errorf("unsupported stop bits %d (use 1 or 2)", cfg.StopBits)
	}

	return mode, nil
}

// Package config holds the terminal configuration: serial line
// parameters, poll interval, and logging options. Configs are stored as
// JSON next to the binary and validated on load.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	json "github.com/goccy/go-json"

	"github.com/m6502-lab/monitor/internal/logging"
)

// Config is the terminal configuration. Duration fields are encoded as
// nanoseconds in JSON.
type Config struct {
	PortName string `json:"port_name" validate:"required"`
	BaudRate int    `json:"baud_rate" validate:"required,min=1200"`
	DataBits int    `json:"data_bits" validate:"min=5,max=8"`
	Parity   string `json:"parity" validate:"oneof=N E O"`
	StopBits int    `json:"stop_bits" validate:"oneof=1 2"`

	// ReadTimeout bounds each poll read so a tick never blocks the
	// poll goroutine for long. Zero is rejected: a blocking read would
	// stall the timer's stop handshake.
	ReadTimeout time.Duration `json:"read_timeout" validate:"gt=0"`

	// PollInterval is the poll timer tick period.
	PollInterval time.Duration `json:"poll_interval" validate:"gt=0"`

	Logging logging.Config `json:"logging"`
}

// Default returns the configuration the terminal starts with when no
// config file exists.
func Default() Config {
	return Config{
		PortName:     "/dev/ttyUSB0",
		BaudRate:     115200,
		DataBits:     8,
		Parity:       "N",
		StopBits:     1,
		ReadTimeout:  50 * time.Millisecond,
		PollInterval: 100 * time.Millisecond,
		Logging:      logging.DefaultConfig(),
	}
}

var validBaudRates = []int{1200, 2400, 4800, 9600, 19200, 38400, 57600, 115200, 230400, 460800, 921600}

var validate = validator.New()

// Validate checks the configuration, combining struct tag validation
// with explicit per-field checks the tags cannot express.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	if !isValidBaudRate(c.BaudRate) {
		return fmt.Errorf("invalid baud rate %d, must be one of: %v", c.BaudRate, validBaudRates)
	}
	if c.PollInterval < time.Millisecond {
		return fmt.Errorf("poll interval too small: %v", c.PollInterval)
	}
	if c.ReadTimeout >= c.PollInterval {
		return fmt.Errorf("read timeout %v must be shorter than poll interval %v",
			c.ReadTimeout, c.PollInterval)
	}
	return nil
}

func isValidBaudRate(rate int) bool {
	for _, v := range validBaudRates {
		if rate == v {
			return true
		}
	}
	return false
}

// Load reads and validates a config file.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading config file: %w", err)
	}

	cfg := Default()
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config file: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Save writes the config as indented JSON.
func (c Config) Save(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

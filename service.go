// Package monitor implements the serial-side core of a terminal for a
// 6502 microcontroller board: single-byte command encoding, a connection
// controller that owns the port handle, and the repeating poll timer
// that drains incoming console lines without blocking the front end.
package monitor

import (
	"fmt"
	"sync"
	"time"

	"go.uber.org/atomic"

	"github.com/m6502-lab/monitor/internal/config"
	"github.com/m6502-lab/monitor/internal/logging"
)

// PollTimerName identifies the poll timer in logs.
const PollTimerName = "SerialPoller"

// Sink receives console lines: device output, status, and error lines.
// Append is invoked from the poll goroutine, so implementations must be
// safe to call off the UI context or marshal onto it themselves.
type Sink interface {
	Append(line string)
}

// Service is the connection controller. It owns the serial handle,
// encodes and sends commands, and drives the poll timer lifecycle in
// lockstep with Connect/Disconnect.
//
// The ordering invariants are stop-before-close (Disconnect joins the
// poll goroutine before the handle is closed, so a tick never observes
// a half-closed port) and open-before-start (Connect stores the open
// handle before arming the timer).
type Service struct {
	Logger *logging.Service

	cfg  *config.Config
	sink Sink

	isOpen atomic.Bool
	handle portHandle
	mu     sync.RWMutex

	poller *RepeatingTimer

	// lineBuf accumulates partial lines across ticks. It is touched
	// only from the poll goroutine.
	lineBuf  []byte
	readPool *BufferPool

	metrics        *Metrics
	metricsEnabled atomic.Bool
}

// NewService builds a controller for the given configuration. The sink
// receives every console line; the logger may be logging.Nop() in
// tests. The poll timer is created armed-but-stopped; Connect starts it.
func NewService(cfg *config.Config, sink Sink, logger *logging.Service) (*Service, error) {
	if cfg == nil {
		return nil, fmt.Errorf("monitor: nil config")
	}
	if sink == nil {
		return nil, fmt.Errorf("monitor: nil sink")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = logging.Nop()
	}

	s := &Service{
		Logger:   logger,
		cfg:      cfg,
		sink:     sink,
		readPool: NewBufferPool(readBufferSize),
		metrics:  &Metrics{},
	}
	s.metricsEnabled.Store(true)
	s.poller = NewRepeatingTimer(PollTimerName, cfg.PollInterval, s.Poll)
	return s, nil
}

// IsConnected reports whether a live handle is present.
func (s *Service) IsConnected() bool {
	return s.isOpen.Load()
}

// Poller exposes the poll timer, mainly so callers can observe its
// lifecycle.
func (s *Service) Poller() *RepeatingTimer {
	return s.poller
}

// Connect opens the named device at the given rate and starts the poll
// timer. Empty port or zero baud fall back to the configured values.
// On failure the controller stays disconnected and the wrapped
// transport error is returned.
func (s *Service) Connect(portName string, baudRate int) error {
	if s.isOpen.Load() {
		return ErrAlreadyConnected
	}

	if s.metricsEnabled.Load() {
		s.metrics.ConnectionAttempts.Add(1)
	}

	if portName == "" {
		portName = s.cfg.PortName
	}
	if baudRate == 0 {
		baudRate = s.cfg.BaudRate
	}

	mode, err := buildMode(s.cfg)
	if err != nil {
		s.recordConnectFailure()
		return err
	}
	mode.BaudRate = baudRate

	ok, err := isPortAvailable(portName)
	if err != nil {
		s.recordConnectFailure()
		return fmt.Errorf("listing ports: %w", err)
	}
	if !ok {
		s.recordConnectFailure()
		return fmt.Errorf("%w: %s", ErrInvalidPortName, portName)
	}

	s.mu.Lock()
	if s.handle, err = openPort(portName, mode); err != nil {
		s.mu.Unlock()
		s.recordConnectFailure()
		return fmt.Errorf("opening serial port: %w", err)
	}

	// A short read timeout keeps each poll tick bounded; the port is
	// effectively in non-blocking read mode.
	if err = s.handle.SetReadTimeout(s.cfg.ReadTimeout); err != nil {
		err = s.handleOpenError(err)
		s.mu.Unlock()
		s.recordConnectFailure()
		return fmt.Errorf("setting read timeout: %w", err)
	}

	s.lineBuf = s.lineBuf[:0]
	s.isOpen.Store(true)
	s.mu.Unlock()

	if s.metricsEnabled.Load() {
		s.metrics.SuccessfulConnects.Add(1)
		s.metrics.LastConnectTime.Store(time.Now().Unix())
	}
	s.Logger.Info("serial port opened", "port", portName, "baud", baudRate)

	// Open-before-start: the handle is live before the first tick.
	// Start is a no-op if the timer survived a previous session, and
	// arming it again here is what makes reconnect-after-disconnect
	// resume polling.
	s.poller.Start()

	return nil
}

// Disconnect stops the poll timer synchronously, then closes the
// handle. Returns ErrNotConnected when no handle is open.
func (s *Service) Disconnect() error {
	if !s.isOpen.Load() {
		return ErrNotConnected
	}

	// Stop-before-close: join the poll goroutine while the handle is
	// still valid, so no tick can observe a half-closed port. The lock
	// is not held here because Poll acquires it on every tick.
	s.poller.Stop()

	s.mu.Lock()
	err := s.closeWithoutLock()
	s.mu.Unlock()

	if s.metricsEnabled.Load() {
		s.metrics.Disconnections.Add(1)
		s.metrics.LastDisconnectTime.Store(time.Now().Unix())
	}
	s.Logger.Info("serial port closed")

	return err
}

// Close shuts the controller down at application exit. Unlike
// Disconnect it is safe to call in any state.
func (s *Service) Close() error {
	if !s.isOpen.Load() {
		s.poller.Stop()
		return nil
	}
	return s.Disconnect()
}

// SendCommand encodes cmd and writes it to the transport. It fails with
// ErrNotConnected when no handle is open and never awaits a response.
func (s *Service) SendCommand(cmd Command) error {
	if !s.isOpen.Load() {
		if s.metricsEnabled.Load() {
			s.metrics.SendErrors.Add(1)
		}
		return ErrNotConnected
	}

	data, err := cmd.Encode()
	if err != nil {
		if s.metricsEnabled.Load() {
			s.metrics.EncodingErrors.Add(1)
		}
		return err
	}

	n, err := s.write(data)
	if s.metricsEnabled.Load() {
		s.metrics.BytesWritten.Add(int64(n))
		if err != nil {
			s.metrics.SendErrors.Add(1)
		} else {
			s.metrics.CommandsSent.Add(1)
		}
	}
	if err != nil {
		s.Logger.Error("command write failed", "command", cmd.String(), "error", err.Error())
		return err
	}

	s.Logger.Debug("command sent", "command", cmd.String(), "bytes", n)
	return nil
}

// write pushes the full byte sequence to the handle, retrying partial
// writes. The read lock prevents Disconnect from invalidating the
// handle mid-write.
func (s *Service) write(data []byte) (int, error) {
	if len(data) == 0 {
		return 0, ErrInvalidBuffer
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.isOpen.Load() || s.handle == nil {
		return 0, ErrNotConnected
	}

	const maxRetries = 3
	var written int
	for retries := 0; written < len(data) && retries < maxRetries; retries++ {
		n, err := s.handle.Write(data[written:])
		if err != nil {
			return written, err
		}
		written += n
		if n == 0 {
			break
		}
	}
	if written < len(data) {
		return written, fmt.Errorf("partial write: %d of %d bytes", written, len(data))
	}
	return written, nil
}

func (s *Service) recordConnectFailure() {
	if s.metricsEnabled.Load() {
		s.metrics.ConnectionFailures.Add(1)
	}
}

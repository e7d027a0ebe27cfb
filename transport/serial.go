// Package transport carries controller frames to the device.
package transport

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/Alia5/serialpad/internal/log"
	"github.com/Alia5/serialpad/pad"
)

// ErrNotOpen is logged when writing to a port that has not been opened.
var ErrNotOpen = errors.New("serial port is not open")

// Serial is a pad.Transport backed by a serial port. Write errors are logged
// and dropped; callers never see them.
type Serial struct {
	cfg       Config
	logger    *slog.Logger
	rawLogger log.RawLogger

	mu   sync.Mutex
	port io.WriteCloser
	open func(path string, baud int) (io.WriteCloser, error)
}

var _ pad.Transport = (*Serial)(nil)

func NewSerial(cfg Config, logger *slog.Logger, rawLogger log.RawLogger) *Serial {
	if logger == nil {
		logger = slog.Default()
	}
	if rawLogger == nil {
		rawLogger = log.NewRaw(nil)
	}
	return &Serial{
		cfg:       cfg,
		logger:    logger,
		rawLogger: rawLogger,
		open:      openPort,
	}
}

// Open connects to the configured port.
func (s *Serial) Open() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.port != nil {
		return nil
	}
	path := s.cfg.DevicePath()
	s.logger.Info("Connecting to serial port", "port", path, "baud", s.cfg.Baud)
	p, err := s.open(path, s.cfg.Baud)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	s.port = p
	return nil
}

// Close closes the port. Closing a closed port is a no-op.
func (s *Serial) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.port == nil {
		return nil
	}
	s.logger.Debug("Closing the serial port")
	err := s.port.Close()
	s.port = nil
	return err
}

// Reopen closes the port if needed and connects again.
func (s *Serial) Reopen() error {
	if err := s.Close(); err != nil {
		s.logger.Warn("failed to close serial port", "error", err)
	}
	return s.Open()
}

func (s *Serial) IsOpen() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.port != nil
}

func (s *Serial) WriteLine(row string) {
	s.rawLogger.Row(row)
	s.write([]byte(row + "\r\n"))
}

func (s *Serial) WriteBytes(b []byte) {
	s.rawLogger.Frame(b)
	s.write(b)
}

func (s *Serial) write(b []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.port == nil {
		s.logger.Error("write failed", "error", ErrNotOpen)
		return
	}
	if _, err := s.port.Write(b); err != nil {
		s.logger.Error("write failed", "port", s.cfg.DevicePath(), "error", err)
	}
}

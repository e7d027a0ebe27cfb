package cmd

import (
	"io"
	"log/slog"
	"os"

	"github.com/Alia5/serialpad/internal/log"
	"github.com/Alia5/serialpad/pad"
	"github.com/Alia5/serialpad/transport"
)

// openTransport opens the configured serial port, or a printer to out for
// dry runs (stdout when out is nil). The returned closer must be called when
// done.
func openTransport(cfg transport.Config, out io.Writer, logger *slog.Logger, rawLogger log.RawLogger) (pad.Transport, io.Closer, error) {
	if cfg.DryRun {
		logger.Info("Dry run, frames are printed instead of sent", "format", cfg.Format)
		if out == nil {
			out = os.Stdout
		}
		return transport.NewWriter(out), io.NopCloser(nil), nil
	}
	s := transport.NewSerial(cfg, logger, rawLogger)
	if err := s.Open(); err != nil {
		return nil, nil, err
	}
	return s, s, nil
}

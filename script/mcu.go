package script

import (
	"log/slog"
	"sync"

	"github.com/Alia5/serialpad/pad"
)

// McuCommand is a routine that lives in the controller firmware. Starting it
// sends its sync name; stopping it sends the termination line.
type McuCommand struct {
	SyncName string

	logger *slog.Logger

	mu         sync.Mutex
	tr         pad.Transport
	onComplete func()
	running    bool
}

var _ Command = (*McuCommand)(nil)

func NewMcuCommand(syncName string, logger *slog.Logger) *McuCommand {
	if logger == nil {
		logger = slog.Default()
	}
	return &McuCommand{SyncName: syncName, logger: logger.With("mcu", syncName)}
}

func (m *McuCommand) Start(tr pad.Transport, onComplete func()) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.running {
		return false
	}
	m.tr = tr
	m.onComplete = onComplete
	m.running = true
	tr.WriteLine(m.SyncName)
	m.logger.Info("MCU command started")
	return true
}

func (m *McuCommand) Stop() bool {
	m.mu.Lock()
	if !m.running {
		m.mu.Unlock()
		return false
	}
	m.running = false
	m.tr.WriteLine(pad.RowEnd)
	done := m.onComplete
	m.onComplete = nil
	m.mu.Unlock()

	m.logger.Info("MCU command finished")
	if done != nil {
		done()
	}
	return true
}

func (m *McuCommand) Running() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.running
}

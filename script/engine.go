// Package script runs user automation routines against a virtual controller.
//
// A routine runs on its own goroutine. Every primitive it calls through
// Commands is a checkpoint: pause requests block there and stop requests end
// the run there. A run always leaves the controller neutral and calls its
// completion callback exactly once, however it ends.
package script

import (
	"errors"
	"fmt"
	"log/slog"
	"runtime/debug"
	"sync"
	"sync/atomic"

	"github.com/Alia5/serialpad/pad"
)

// ErrStopped is returned by every primitive once the run has been stopped.
// Routines should return it unchanged; it is not reported as a failure.
var ErrStopped = errors.New("script stopped")

// Routine is a user automation routine. Do is called once per run.
type Routine interface {
	Do(c *Commands) error
}

// RoutineFunc adapts a function to Routine.
type RoutineFunc func(c *Commands) error

func (f RoutineFunc) Do(c *Commands) error { return f(c) }

// Command is anything the control side can start and stop.
type Command interface {
	Start(tr pad.Transport, onComplete func()) bool
	Stop() bool
	Running() bool
}

type State int32

const (
	StateIdle State = iota
	StateRunning
	StatePaused
	StateStopping
	StateStopped
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StatePaused:
		return "paused"
	case StateStopping:
		return "stopping"
	case StateStopped:
		return "stopped"
	default:
		return fmt.Sprintf("State(%d)", int32(s))
	}
}

// Engine runs one routine at a time.
type Engine struct {
	name    string
	routine Routine
	cfg     Config
	logger  *slog.Logger

	running atomic.Bool
	paused  atomic.Bool
	ranOnce atomic.Bool

	mu  sync.Mutex
	cur *run
}

// run is the state of a single Start call.
type run struct {
	keys       *pad.KeyPress
	onComplete func()

	stopReq  atomic.Bool
	released atomic.Bool
	once     sync.Once
	done     chan struct{}
}

var _ Command = (*Engine)(nil)

func New(name string, routine Routine, cfg Config, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{
		name:    name,
		routine: routine,
		cfg:     cfg.withDefaults(),
		logger:  logger.With("command", name),
	}
}

func (e *Engine) Name() string { return e.name }

// Start launches the routine on a new goroutine. It returns false without
// doing anything if a run is already in progress.
func (e *Engine) Start(tr pad.Transport, onComplete func()) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.running.Load() {
		e.logger.Debug("start ignored, command is already running")
		return false
	}

	r := &run{
		keys:       pad.NewKeyPress(tr, e.cfg.Format, e.logger),
		onComplete: onComplete,
		done:       make(chan struct{}),
	}
	e.cur = r
	e.paused.Store(false)
	e.running.Store(true)

	go e.work(r)
	return true
}

// Stop requests the running routine to end at its next checkpoint.
func (e *Engine) Stop() bool {
	r := e.current()
	if r == nil || !e.running.Load() || r.released.Load() {
		return false
	}
	r.stopReq.Store(true)
	e.logger.Info("Sending stop request")
	return true
}

// Pause makes the routine block at its next checkpoint until Resume.
func (e *Engine) Pause() {
	if e.running.Load() && !e.paused.Swap(true) {
		e.logger.Info("Pause requested")
	}
}

func (e *Engine) Resume() {
	if e.paused.Swap(false) {
		e.logger.Info("Resume requested")
	}
}

func (e *Engine) Running() bool { return e.running.Load() }
func (e *Engine) Paused() bool  { return e.paused.Load() }

func (e *Engine) State() State {
	r := e.current()
	switch {
	case !e.running.Load() && e.ranOnce.Load():
		return StateStopped
	case !e.running.Load():
		return StateIdle
	case r != nil && r.stopReq.Load():
		return StateStopping
	case e.paused.Load():
		return StatePaused
	default:
		return StateRunning
	}
}

// Done is closed when the goroutine of the latest run has returned.
func (e *Engine) Done() <-chan struct{} {
	r := e.current()
	if r == nil {
		c := make(chan struct{})
		close(c)
		return c
	}
	return r.done
}

func (e *Engine) current() *run {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.cur
}

func (e *Engine) work(r *run) {
	defer close(r.done)

	if e.cfg.NotifyStart {
		notify(e.cfg.Notifier, e.logger, e.name+" started.")
	}

	c := &Commands{e: e, r: r}
	trace, err := e.do(c)
	switch {
	case err == nil, errors.Is(err, ErrStopped):
		e.release(r)
		e.logger.Info("Command finished successfully")
		if e.cfg.NotifyEnd {
			notify(e.cfg.Notifier, e.logger, e.name+" finished.")
		}
	default:
		if trace != nil {
			e.logger.Error("Command stopped unexpectedly", "error", err, "trace", string(trace))
		} else {
			e.logger.Error("Command stopped unexpectedly", "error", err)
		}
		e.release(r)
	}
}

func (e *Engine) do(c *Commands) (trace []byte, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("panic: %v", p)
			trace = debug.Stack()
		}
	}()
	return nil, e.routine.Do(c)
}

// release returns the controller to neutral, closes the session and fires the
// completion callback. It runs once per run.
func (e *Engine) release(r *run) {
	r.once.Do(func() {
		r.released.Store(true)
		if !r.keys.IsNeutral() {
			r.keys.Neutral()
		}
		r.keys.End()

		e.ranOnce.Store(true)
		e.paused.Store(false)
		e.running.Store(false)

		if r.onComplete != nil {
			r.onComplete()
		}
	})
}

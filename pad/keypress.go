package pad

import (
	"log/slog"
	"slices"
	"time"
)

// Transport is the sink frames are written to. Writes are fire-and-forget:
// implementations handle and log their own failures.
type Transport interface {
	WriteLine(row string)
	WriteBytes(b []byte)
	IsOpen() bool
}

// EndOptions tunes InputEndWith. The zero value releases hat and touch.
type EndOptions struct {
	KeepHat   bool
	KeepTouch bool
}

// KeyPress turns press/hold/release requests into frames on a Transport.
//
// It is not safe for concurrent use; only the goroutine driving the
// controller may call it.
type KeyPress struct {
	tr     Transport
	format Format
	state  *FrameState
	held   []Input
	logger *slog.Logger

	lastInput    time.Time
	lastInputEnd time.Time
}

func NewKeyPress(tr Transport, format Format, logger *slog.Logger) *KeyPress {
	if logger == nil {
		logger = slog.Default()
	}
	return &KeyPress{
		tr:     tr,
		format: format,
		state:  NewFrameState(),
		logger: logger,
	}
}

func (k *KeyPress) Format() Format { return k.format }

// State returns a copy of the current frame state.
func (k *KeyPress) State() FrameState { return *k.state }

// Held returns the currently held inputs in the order they were held.
func (k *KeyPress) Held() []Input { return slices.Clone(k.held) }

// LastInput is when the last press frame was written.
func (k *KeyPress) LastInput() time.Time { return k.lastInput }

// LastInputEnd is when the last release frame was written.
func (k *KeyPress) LastInputEnd() time.Time { return k.lastInputEnd }

// IsNeutral reports whether nothing is held and the frame state is neutral.
func (k *KeyPress) IsNeutral() bool {
	return len(k.held) == 0 && k.state.IsNeutral()
}

// Input presses the given inputs on top of everything currently held and
// writes one frame.
func (k *KeyPress) Input(in ...Inputter) {
	k.input(Inputs(in...))
}

func (k *KeyPress) input(req []Input) {
	req = k.withHeld(req)
	btns, hats, dirs, touches := split(req)

	switch k.format {
	case Format3DS:
		k.state.SetButton(btns, ThreeDSButtonMap)
	default:
		k.state.SetButton(btns, nil)
	}
	k.state.SetHat(hats, DefaultHatMap)
	k.state.SetAnyDirection(dirs, false, false)
	if k.format == FormatQingpi {
		k.state.SetTouchscreen(touches)
	}

	k.emit()
	k.lastInput = time.Now()
}

// InputEnd releases the given inputs, the hat and the touch panel, and
// writes one frame.
func (k *KeyPress) InputEnd(in ...Inputter) {
	k.inputEnd(Inputs(in...), EndOptions{})
}

// InputEndWith is InputEnd with control over hat and touch release.
func (k *KeyPress) InputEndWith(o EndOptions, in ...Inputter) {
	k.inputEnd(Inputs(in...), o)
}

func (k *KeyPress) inputEnd(req []Input, o EndOptions) {
	btns, _, dirs, touches := split(req)

	var tilts []Tilt
	for _, d := range dirs {
		tilts = append(tilts, d.Tilting()...)
	}

	switch k.format {
	case Format3DS:
		k.state.UnsetButton(btns, ThreeDSButtonMap)
	default:
		k.state.UnsetButton(btns, nil)
	}
	if !o.KeepHat {
		k.state.UnsetHat(DefaultHatMap)
	}
	k.state.UnsetDirection(tilts)
	if k.format == FormatQingpi && (!o.KeepTouch || len(touches) > 0) {
		k.state.UnsetTouchscreen()
	}

	k.emit()
	k.lastInputEnd = time.Now()
}

// Hold adds inputs to the held set and presses them. A request containing an
// input that is already held is rejected with a warning and writes nothing.
// Only one touch point can be held; holding a new one replaces it.
func (k *KeyPress) Hold(in ...Inputter) bool {
	req := Inputs(in...)
	for _, i := range req {
		if i.Kind != KindTouch && slices.Contains(k.held, i) {
			k.logger.Warn("input is already held", "input", i.String())
			return false
		}
	}

	if hasTouch(req) {
		k.dropHeldTouch()
	}
	for _, i := range req {
		if !slices.Contains(k.held, i) {
			k.held = append(k.held, i)
		}
	}
	k.input(req)
	return true
}

// HoldEnd removes inputs from the held set and releases them.
func (k *KeyPress) HoldEnd(in ...Inputter) {
	req := Inputs(in...)
	for _, i := range req {
		if i.Kind == KindTouch {
			continue
		}
		idx := slices.Index(k.held, i)
		if idx < 0 {
			k.logger.Debug("releasing input that is not held", "input", i.String())
			continue
		}
		k.held = slices.Delete(k.held, idx, idx+1)
	}
	if hasTouch(req) {
		k.dropHeldTouch()
	}
	k.inputEnd(req, EndOptions{})
}

// Neutral releases the held inputs along with anything a momentary press left
// behind, and writes one frame.
func (k *KeyPress) Neutral() {
	req := k.held
	k.held = nil
	k.state.ResetAllButtons()
	k.state.CenterSticks()
	k.inputEnd(req, EndOptions{})
}

// End closes the session for encodings that have one.
func (k *KeyPress) End() {
	if !k.format.HasConnection() || k.tr == nil {
		return
	}
	k.tr.WriteLine(RowEnd)
}

// WriteRaw sends a line to the transport as-is, bypassing the frame state.
func (k *KeyPress) WriteRaw(row string) {
	if k.tr == nil {
		return
	}
	k.tr.WriteLine(row)
}

// Reset drops all held inputs and returns the frame state to neutral without
// writing anything.
func (k *KeyPress) Reset() {
	k.held = nil
	k.state.ResetAllButtons()
	k.state.ResetAllDirections()
	k.state.UnsetTouchscreen()
}

func (k *KeyPress) emit() {
	if k.tr == nil {
		return
	}
	switch k.format {
	case FormatQingpi:
		k.tr.WriteBytes(k.state.QingpiFrame())
	case Format3DS:
		k.tr.WriteBytes(k.state.ThreeDSFrame())
	default:
		k.tr.WriteLine(k.state.Row())
	}
}

func (k *KeyPress) withHeld(req []Input) []Input {
	out := slices.Clone(req)
	for _, h := range k.held {
		if !slices.Contains(out, h) {
			out = append(out, h)
		}
	}
	return out
}

func (k *KeyPress) dropHeldTouch() {
	k.held = slices.DeleteFunc(k.held, func(i Input) bool { return i.Kind == KindTouch })
}

func hasTouch(in []Input) bool {
	return slices.ContainsFunc(in, func(i Input) bool { return i.Kind == KindTouch })
}

func split(in []Input) (btns []Button, hats []Hat, dirs []Direction, touches []Touch) {
	for _, i := range in {
		switch i.Kind {
		case KindButton:
			btns = append(btns, i.Button)
		case KindHat:
			hats = append(hats, i.Hat)
		case KindDirection:
			dirs = append(dirs, i.Direction)
		case KindTouch:
			touches = append(touches, i.Touch)
		}
	}
	return
}

package svgdraw

import (
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/benoitkugler/svgreveal/svgicon"
)

// State is the animation state of an Engine.
type State uint8

const (
	Idle State = iota
	Animating
)

func (s State) String() string {
	switch s {
	case Idle:
		return "Idle"
	case Animating:
		return "Animating"
	default:
		return fmt.Sprintf("<unknown State %d>", s)
	}
}

// Kind identifies an Event.
type Kind uint8

const (
	Cleared      Kind = iota // the draw surface has been cleared
	Parsed                   // a new artwork has been compiled
	Rendered                 // a frame has been drawn
	Drawn                    // the animation stopped with a visible artwork
	Erased                   // the animation stopped at progress 0
	InvalidInput             // the input is not an SVG image, see Event.Reason
)

func (k Kind) String() string {
	switch k {
	case Cleared:
		return "Cleared"
	case Parsed:
		return "Parsed"
	case Rendered:
		return "Rendered"
	case Drawn:
		return "Drawn"
	case Erased:
		return "Erased"
	case InvalidInput:
		return "InvalidInput"
	default:
		return fmt.Sprintf("<unknown Kind %d>", k)
	}
}

// Event is sent to the listeners registered with Engine.Subscribe.
type Event struct {
	Kind   Kind
	Reason string // only for InvalidInput
}

// Options configures an Engine.
type Options struct {
	// Compile is used by Engine.Compile. Its default line width
	// is also the width of the stroke during the reveal.
	Compile svgicon.Options
}

// DefaultOptions uses svgicon.DefaultOptions.
func DefaultOptions() Options { return Options{Compile: svgicon.DefaultOptions()} }

// Engine drives the progressive reveal of an artwork, sending
// the draw calls of every frame to its driver.
// An Engine is not safe for concurrent use.
type Engine struct {
	driver    Driver
	opts      Options
	artwork   *svgicon.Artwork
	progress  float64
	state     State
	listeners []func(Event)
}

// NewEngine returns an idle engine, with a progress of 1 (fully drawn).
// `driver` may be nil, in which case only the frames are computed.
func NewEngine(driver Driver, opts Options) *Engine {
	return &Engine{driver: driver, opts: opts, progress: 1}
}

// Subscribe registers `fn`, which will be called synchronously
// for every event.
func (e *Engine) Subscribe(fn func(Event)) { e.listeners = append(e.listeners, fn) }

func (e *Engine) emit(ev Event) {
	for _, fn := range e.listeners {
		fn(ev)
	}
}

// Artwork returns the current artwork, or nil.
func (e *Engine) Artwork() *svgicon.Artwork { return e.artwork }

// State returns the animation state.
func (e *Engine) State() State { return e.state }

// Progress returns the current progress, in [0, 1].
func (e *Engine) Progress() float64 { return e.progress }

// SetProgress updates the progress, clamped to [0, 1].
// The new value is drawn by the next Tick or Render.
func (e *Engine) SetProgress(p float64) {
	switch {
	case math.IsNaN(p) || p < 0:
		p = 0
	case p > 1:
		p = 1
	}
	e.progress = p
}

func (e *Engine) clear() {
	if e.driver != nil {
		e.driver.Clear()
	}
	e.emit(Event{Kind: Cleared})
}

// Compile reads a new artwork from `r`. On success, the artwork
// replaces the current one and is rendered at the current progress.
// On failure, the current artwork is kept: an *svgicon.InvalidInputError
// also emits an InvalidInput event.
func (e *Engine) Compile(r io.Reader) error {
	e.clear()
	artwork, err := svgicon.ReadArtworkStream(r, e.opts.Compile)
	if err != nil {
		var invalid *svgicon.InvalidInputError
		if errors.As(err, &invalid) {
			e.emit(Event{Kind: InvalidInput, Reason: invalid.Error()})
		}
		return err
	}
	e.artwork = artwork
	e.emit(Event{Kind: Parsed})
	return e.Render()
}

// SetArtwork installs a precompiled artwork and renders it
// at the current progress.
func (e *Engine) SetArtwork(a *svgicon.Artwork) error {
	e.clear()
	e.artwork = a
	return e.Render()
}

// Start enters the Animating state: every Tick then renders a frame.
func (e *Engine) Start() { e.state = Animating }

// Stop leaves the Animating state, emitting Erased if the
// progress is 0, Drawn otherwise.
func (e *Engine) Stop() {
	e.state = Idle
	if e.progress == 0 {
		e.emit(Event{Kind: Erased})
	} else {
		e.emit(Event{Kind: Drawn})
	}
}

// Tick renders a frame if the engine is Animating, and does nothing otherwise.
func (e *Engine) Tick() error {
	if e.state != Animating {
		return nil
	}
	return e.Render()
}

// Render draws the current artwork at the current progress,
// whatever the state.
func (e *Engine) Render() error {
	e.emit(Event{Kind: Cleared}) // the driver is cleared by DrawFrame
	if e.driver != nil {
		if err := DrawFrame(e.driver, e.Frame()); err != nil {
			return fmt.Errorf("drawing frame: %w", err)
		}
	}
	e.emit(Event{Kind: Rendered})
	return nil
}

// Frame returns the drawables for the current progress.
func (e *Engine) Frame() []Drawable {
	return BuildFrame(e.artwork, e.opts.Compile.Defaults.LineWidth, e.progress)
}

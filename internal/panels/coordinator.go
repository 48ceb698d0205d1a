// Package panels coordinates the floating panels of the dashboard: one window
// controller per panel kind, the active generator context, and the hotkey
// settings workflow.
package panels

import (
	"errors"
	"fmt"

	"charm.land/log/v2"

	"github.com/Gaurav-Gosain/boxdeck/internal/config"
	"github.com/Gaurav-Gosain/boxdeck/internal/geometry"
	"github.com/Gaurav-Gosain/boxdeck/internal/hotkey"
	"github.com/Gaurav-Gosain/boxdeck/internal/window"
)

// Generator is the context of the generator panel. At most one context is
// open at a time.
type Generator int

const (
	// GeneratorNone means the generator panel is closed.
	GeneratorNone Generator = iota
	// GeneratorSK is the "sk" data generator.
	GeneratorSK
	// GeneratorIN is the "in" data generator.
	GeneratorIN
)

// Context returns the dataset context name, empty for GeneratorNone.
func (g Generator) Context() string {
	switch g {
	case GeneratorSK:
		return "sk"
	case GeneratorIN:
		return "in"
	default:
		return ""
	}
}

func (g Generator) String() string {
	if g == GeneratorNone {
		return "none"
	}
	return g.Context()
}

// ErrEmptyField is returned by a CopyField hook when the field has no value.
// It is not reported as a failure.
var ErrEmptyField = errors.New("panels: field is empty")

// Hooks are the collaborators the coordinator calls out to. Nil hooks are
// skipped.
type Hooks struct {
	CopyField   func(g Generator, a hotkey.Action) error
	Generate    func(g Generator) error
	SaveHotkeys func(m hotkey.Map) error
	SaveSidebar func(visible bool) error
}

// Options configure a Coordinator.
type Options struct {
	Width, Height int
	// Bounds overrides the default margin, dock and limits when non-zero.
	Bounds geometry.Bounds
	// Breakpoint is the widest viewport that still counts as compact.
	Breakpoint int
	// AutoCopyFirst copies the first field when the sk generator opens.
	AutoCopyFirst  bool
	Hotkeys        hotkey.Map
	SidebarVisible bool
	Hooks          Hooks
}

// Result describes what a dispatched key did.
type Result struct {
	Handled bool
	Action  hotkey.Action // generator action that fired
	Token   string        // token captured by the recorder
	Err     error
}

// Coordinator owns every panel controller and the state that spans panels.
type Coordinator struct {
	bounds     geometry.Bounds
	breakpoint int
	compact    bool

	windows map[geometry.Kind]*window.Controller

	generator Generator
	cycles    [3]hotkey.Cycle
	active    [3]hotkey.Action

	dispatcher *hotkey.Dispatcher
	recorder   *hotkey.Recorder

	sidebarGenerator bool
	autoCopyFirst    bool
	hooks            Hooks
}

// New returns a coordinator with every panel closed.
func New(opts Options) *Coordinator {
	b := opts.Bounds
	if b == (geometry.Bounds{}) {
		b = geometry.NewBounds(opts.Width, opts.Height)
	} else if opts.Width > 0 || opts.Height > 0 {
		b = b.WithViewport(opts.Width, opts.Height)
	}
	breakpoint := opts.Breakpoint
	if breakpoint <= 0 {
		breakpoint = config.CompactBreakpoint
	}
	keys := opts.Hotkeys
	if keys == nil {
		keys = hotkey.DefaultMap()
	}

	c := &Coordinator{
		bounds:           b,
		breakpoint:       breakpoint,
		compact:          b.Width <= breakpoint,
		windows:          make(map[geometry.Kind]*window.Controller, len(geometry.Kinds)),
		dispatcher:       hotkey.NewDispatcher(keys),
		recorder:         hotkey.NewRecorder(keys),
		sidebarGenerator: opts.SidebarVisible,
		autoCopyFirst:    opts.AutoCopyFirst,
		hooks:            opts.Hooks,
	}
	for _, k := range geometry.Kinds {
		c.windows[k] = window.NewController(k)
	}
	return c
}

// Window returns the controller of kind k.
func (c *Coordinator) Window(k geometry.Kind) *window.Controller { return c.windows[k] }

// Bounds returns the current layout bounds.
func (c *Coordinator) Bounds() geometry.Bounds { return c.bounds }

// Compact reports whether the layout is in compact mode.
func (c *Coordinator) Compact() bool { return c.compact }

// IsOpen reports whether the panel of kind k is open.
func (c *Coordinator) IsOpen(k geometry.Kind) bool { return c.windows[k].IsOpen() }

// Generator returns the open generator context.
func (c *Coordinator) Generator() Generator { return c.generator }

// CycleIndex returns the cycle position of g.
func (c *Coordinator) CycleIndex(g Generator) int { return c.cycles[g].Index() }

// ActiveField returns the highlighted field of g, or "" when none.
func (c *Coordinator) ActiveField(g Generator) hotkey.Action { return c.active[g] }

// Hotkeys returns a copy of the committed hotkey map.
func (c *Coordinator) Hotkeys() hotkey.Map { return c.dispatcher.Map() }

// Recorder returns the settings recorder.
func (c *Coordinator) Recorder() *hotkey.Recorder { return c.recorder }

// SidebarGeneratorVisible reports the persisted sidebar generator flag.
func (c *Coordinator) SidebarGeneratorVisible() bool { return c.sidebarGenerator }

// Show opens the panel of kind k if it is closed.
func (c *Coordinator) Show(k geometry.Kind) error {
	switch k {
	case geometry.KindGenerator:
		if c.generator == GeneratorNone {
			return c.OpenGenerator(GeneratorSK)
		}
		return nil
	case geometry.KindSettings:
		c.OpenSettings()
		return nil
	}
	if w := c.windows[k]; w != nil && !w.IsOpen() {
		w.Open(c.bounds, c.compact)
	}
	return nil
}

// Hide closes the panel of kind k.
func (c *Coordinator) Hide(k geometry.Kind) {
	switch k {
	case geometry.KindGenerator:
		c.CloseGenerator()
		return
	case geometry.KindSettings:
		c.CloseSettings()
		return
	}
	if w := c.windows[k]; w != nil {
		w.Close()
	}
}

// Toggle opens a closed panel or closes an open one.
func (c *Coordinator) Toggle(k geometry.Kind) error {
	if c.IsOpen(k) {
		c.Hide(k)
		return nil
	}
	return c.Show(k)
}

// OpenGenerator opens the generator panel in context g. Another open context
// is closed first, losing its cycle position and highlight. The opened context
// always starts its cycle from the first field.
func (c *Coordinator) OpenGenerator(g Generator) error {
	if g == GeneratorNone {
		c.CloseGenerator()
		return nil
	}

	w := c.windows[geometry.KindGenerator]
	if prev := c.generator; prev != GeneratorNone && prev != g {
		c.resetContext(prev)
	}
	if w.IsOpen() {
		if w.Minimized() {
			w.ToggleMinimize()
		}
	} else {
		w.Open(c.bounds, c.compact)
	}

	c.generator = g
	c.resetContext(g)
	log.Debug("generator opened", "context", g)

	if g == GeneratorSK && c.autoCopyFirst {
		err := c.copyField(g, hotkey.CopyActions[0])
		c.cycles[g].Set(1)
		return err
	}
	return nil
}

// CloseGenerator closes the generator panel and resets the open context.
func (c *Coordinator) CloseGenerator() {
	if c.generator != GeneratorNone {
		c.resetContext(c.generator)
		log.Debug("generator closed", "context", c.generator)
	}
	c.generator = GeneratorNone
	c.windows[geometry.KindGenerator].Close()
}

// Regenerate asks the Generate hook for new values in the open context.
func (c *Coordinator) Regenerate() error {
	if c.generator == GeneratorNone || c.hooks.Generate == nil {
		return nil
	}
	g := c.generator
	if err := c.hooks.Generate(g); err != nil {
		return fmt.Errorf("generate %s: %w", g, err)
	}
	c.active[g] = ""
	return nil
}

// CopyField copies field a of the open generator context.
func (c *Coordinator) CopyField(a hotkey.Action) error {
	if c.generator == GeneratorNone {
		return nil
	}
	return c.copyField(c.generator, a)
}

// Resize applies a new viewport size to every open panel.
func (c *Coordinator) Resize(width, height int) {
	c.bounds = c.bounds.WithViewport(width, height)
	c.compact = width <= c.breakpoint
	for _, k := range geometry.Kinds {
		c.windows[k].ViewportChanged(c.bounds, c.compact)
	}
}

// ToggleMaximize toggles maximize of panel k against the current viewport.
func (c *Coordinator) ToggleMaximize(k geometry.Kind) {
	c.windows[k].ToggleMaximize(c.bounds, c.compact)
}

// DispatchKey routes a key press. With the settings panel open the key goes to
// the recorder and generator hotkeys are inert. Otherwise, with a generator
// open, the key is matched against the committed map.
func (c *Coordinator) DispatchKey(ev hotkey.KeyEvent) Result {
	if c.IsOpen(geometry.KindSettings) {
		if !c.recorder.Recording() {
			return Result{}
		}
		slot := c.recorder.Armed()
		token, ok := c.recorder.Capture(ev)
		if !ok {
			// Modifier-only presses are swallowed while armed.
			return Result{Handled: true}
		}
		log.Debug("hotkey recorded", "action", slot, "token", token)
		return Result{Handled: true, Action: slot, Token: token}
	}

	if c.generator == GeneratorNone {
		return Result{}
	}
	token := hotkey.Normalize(ev)
	a, ok := c.dispatcher.Resolve(token)
	if !ok {
		return Result{}
	}

	g := c.generator
	res := Result{Handled: true, Action: a}
	switch a {
	case hotkey.ActionClose:
		c.CloseGenerator()
	case hotkey.ActionCycle:
		field := c.cycles[g].Next()
		res.Action = field
		res.Err = c.copyField(g, field)
	default:
		res.Err = c.copyField(g, a)
	}
	return res
}

// OpenSettings opens the settings panel with a fresh draft of the committed
// map.
func (c *Coordinator) OpenSettings() {
	c.recorder.Reset(c.dispatcher.Map())
	if w := c.windows[geometry.KindSettings]; !w.IsOpen() {
		w.Open(c.bounds, c.compact)
	}
}

// CloseSettings closes the settings panel and discards the draft.
func (c *Coordinator) CloseSettings() {
	c.recorder.Reset(c.dispatcher.Map())
	c.windows[geometry.KindSettings].Close()
}

// SaveSettings commits the draft, persists it and closes the settings panel.
// The committed map is in effect even when persisting fails.
func (c *Coordinator) SaveSettings() error {
	m := c.recorder.Draft().Normalized()
	c.dispatcher.SetMap(m)
	c.windows[geometry.KindSettings].Close()
	c.recorder.Reset(m)
	return c.persistHotkeys(m)
}

// ResetHotkeys commits and persists the default map.
func (c *Coordinator) ResetHotkeys() error {
	m := hotkey.DefaultMap()
	c.dispatcher.SetMap(m)
	c.recorder.Reset(m)
	return c.persistHotkeys(m)
}

// SetHotkeys replaces the committed map without persisting it, for example
// after the prefs file changed on disk.
func (c *Coordinator) SetHotkeys(m hotkey.Map) {
	c.dispatcher.SetMap(m)
	if !c.IsOpen(geometry.KindSettings) {
		c.recorder.Reset(m)
	}
}

// ToggleSidebarGenerator flips and persists the sidebar generator flag.
func (c *Coordinator) ToggleSidebarGenerator() error {
	return c.SetSidebarGeneratorVisible(!c.sidebarGenerator)
}

// SetSidebarGeneratorVisible sets and persists the sidebar generator flag.
func (c *Coordinator) SetSidebarGeneratorVisible(v bool) error {
	c.sidebarGenerator = v
	if c.hooks.SaveSidebar == nil {
		return nil
	}
	if err := c.hooks.SaveSidebar(v); err != nil {
		return fmt.Errorf("save sidebar flag: %w", err)
	}
	return nil
}

func (c *Coordinator) persistHotkeys(m hotkey.Map) error {
	if c.hooks.SaveHotkeys == nil {
		return nil
	}
	if err := c.hooks.SaveHotkeys(m); err != nil {
		return fmt.Errorf("save hotkeys: %w", err)
	}
	return nil
}

func (c *Coordinator) copyField(g Generator, a hotkey.Action) error {
	if c.hooks.CopyField == nil {
		return nil
	}
	err := c.hooks.CopyField(g, a)
	switch {
	case errors.Is(err, ErrEmptyField):
		return nil
	case err != nil:
		return fmt.Errorf("copy %s: %w", a, err)
	}
	c.active[g] = a
	return nil
}

func (c *Coordinator) resetContext(g Generator) {
	c.cycles[g].Reset()
	c.active[g] = ""
}

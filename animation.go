package nodenet

import (
	"errors"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Config controls a NodeNetworkAnimation. Zero values take the documented
// defaults; Layout is the only required field. Validated once at
// construction.
type Config struct {
	// NodeCount is the fixed number of nodes. Default 80.
	NodeCount int
	// MaxConnectionDistance in CSS pixels. Default 150.
	MaxConnectionDistance float64
	// DragTolerance is the node pick radius in CSS pixels. Default 25.
	DragTolerance float64
	// Theme supplies font values for the renderer.
	Theme Theme
	// Layout reports the canvas layout box and device scale. Required.
	Layout LayoutFunc
	// Settings supplies user preferences. Nil uses DefaultSettings.
	Settings SettingsSource
	// Bus receives canvas and performance notifications. Nil creates a
	// private bus.
	Bus *Bus
	// Debug enables periodic metric logging to stderr.
	Debug bool
}

// withDefaults validates cfg and fills in defaults.
func (c Config) withDefaults() (Config, error) {
	if c.Layout == nil {
		return c, &SetupError{Component: "NodeNetworkAnimation", Err: errors.New("Config.Layout is required")}
	}
	if c.NodeCount == 0 {
		c.NodeCount = 80
	}
	if c.NodeCount < 0 {
		return c, &SetupError{Component: "NodeNetworkAnimation", Err: errors.New("Config.NodeCount is negative")}
	}
	if c.MaxConnectionDistance == 0 {
		c.MaxConnectionDistance = 150
	}
	if c.MaxConnectionDistance < 0 {
		return c, &SetupError{Component: "NodeNetworkAnimation", Err: errors.New("Config.MaxConnectionDistance is negative")}
	}
	if c.DragTolerance == 0 {
		c.DragTolerance = defaultDragTolerance
	}
	if c.Bus == nil {
		c.Bus = NewBus()
	}
	if c.Settings == nil {
		c.Settings = StaticSettings{S: DefaultSettings()}
	}
	return c, nil
}

// Lifecycle is the hook contract consumed from a surrounding component
// framework. NodeNetworkAnimation implements it directly, so the same
// instance serves both standalone hosts (call Tick/Draw yourself) and
// lifecycle-managed ones — one implementation, two entry styles.
type Lifecycle interface {
	Init() error
	Mount()
	Activate()
	Pause()
	Destroy()
}

type lifecycleState uint8

const (
	stateNew lifecycleState = iota
	stateReady
	stateActive
	statePaused
	stateDestroyed
)

// fadeDuration is the activation fade-in time in seconds.
const fadeDuration = 0.6

// reducedMotionAlpha dims the whole effect while reduce-motion is on.
const reducedMotionAlpha = 0.6

// NodeNetworkAnimation composes the simulation, renderer, input controller,
// frame driver, and canvas surface into the background effect. All methods
// must be called from the host's single logical thread.
type NodeNetworkAnimation struct {
	cfg Config

	surface  *CanvasSurface
	sim      *Simulation
	renderer *Renderer
	input    *InputController
	driver   *AnimationDriver
	perf     *PerfMonitor

	state   lifecycleState
	visible bool

	lastFrame float64 // -1 until the first frame after (re)activation

	// Frame alpha, tweened on activation and reduce-motion changes.
	alpha       float64
	alphaTarget float64
	fade        *gween.Tween

	lastDebugLog float64
}

// New validates cfg and returns an uninitialized animation. Call Init before
// use.
func New(cfg Config) (*NodeNetworkAnimation, error) {
	cfg, err := cfg.withDefaults()
	if err != nil {
		return nil, err
	}
	return &NodeNetworkAnimation{cfg: cfg, lastFrame: -1, alphaTarget: 1}, nil
}

// Bus returns the notification bus (the configured one or the private
// default).
func (a *NodeNetworkAnimation) Bus() *Bus {
	return a.cfg.Bus
}

// Init acquires the canvas surface, sizes it, and populates the node set.
// A surface acquisition failure aborts initialization with a SetupError;
// there is no silent no-op fallback.
func (a *NodeNetworkAnimation) Init() error {
	if a.state != stateNew {
		return nil
	}
	surface, err := NewCanvasSurface(a.cfg.Layout, a.cfg.Bus)
	if err != nil {
		return err
	}
	a.surface = surface
	a.sim = NewSimulation(a.cfg.NodeCount, surface.Size(), 0)
	a.renderer = NewRenderer(a.cfg.Theme)
	a.input = NewInputController(a.sim, a.cfg.DragTolerance)
	a.driver = NewAnimationDriver(a.frame)
	a.perf = NewPerfMonitor(a.cfg.Bus)
	a.state = stateReady
	return nil
}

// Mount is a lifecycle no-op; the surface is already attached at Init.
func (a *NodeNetworkAnimation) Mount() {}

// Activate marks the animation visible and (re)starts the frame loop with a
// fade-in from transparent.
func (a *NodeNetworkAnimation) Activate() {
	if a.state != stateReady && a.state != statePaused && a.state != stateActive {
		return
	}
	wasActive := a.state == stateActive
	a.state = stateActive
	a.visible = true
	a.lastFrame = -1
	a.perf.Reset()
	a.driver.Start()
	if !wasActive {
		a.alpha = 0
		a.retargetAlpha(a.alphaTarget)
	}
}

// Pause marks the animation invisible and cancels the pending frame callback
// outright — no callbacks are scheduled while paused. Idempotent.
func (a *NodeNetworkAnimation) Pause() {
	if a.state != stateActive && a.state != statePaused {
		return
	}
	a.state = statePaused
	a.visible = false
	a.driver.Stop()
}

// Destroy cancels all pending callbacks, releases any in-progress drag, and
// frees the surface. Idempotent; a second Destroy changes nothing.
func (a *NodeNetworkAnimation) Destroy() {
	if a.state == stateDestroyed {
		return
	}
	if a.driver != nil {
		a.driver.Destroy()
	}
	if a.input != nil {
		a.input.Detach()
	}
	if a.surface != nil {
		a.surface.Release()
	}
	a.visible = false
	a.state = stateDestroyed
}

// ReportScroll feeds the host's scroll offset to the frame-skip policy.
func (a *NodeNetworkAnimation) ReportScroll(pos, now float64) {
	if a.driver != nil {
		a.driver.ReportScroll(pos, now)
	}
}

// Tick is the host's per-frame entry point with a monotonic timestamp in
// milliseconds. It applies the enable-animations gate, polls for resizes,
// processes input, and fires the driver.
func (a *NodeNetworkAnimation) Tick(now float64) {
	if a.state != stateActive && a.state != statePaused {
		return
	}

	settings := a.cfg.Settings.Current()
	if !settings.EnableAnimations {
		// The animation must not run at all: drop the pending callback
		// rather than skipping frames.
		if a.driver.Running() {
			a.driver.Stop()
		}
		return
	}
	if a.state == stateActive && a.visible && !a.driver.Running() {
		// Re-enabled after the settings gate closed the loop.
		a.lastFrame = -1
		a.perf.Reset()
		a.driver.Start()
	}

	if a.surface.Poll(now) {
		a.sim.ClampToBounds(a.surface.Size(), resizeMargin)
	}
	a.input.Process(a.surface.Size(), a.surface.Scale())
	a.driver.Tick(now)
}

// frame runs one simulation/render pass. Invoked by the driver on real
// (non-skipped) frames; panics are caught at the driver's frame boundary.
func (a *NodeNetworkAnimation) frame(now float64) {
	dt := 0.0
	if a.lastFrame >= 0 {
		dt = now - a.lastFrame
	}
	a.lastFrame = now

	settings := a.cfg.Settings.Current()
	a.sim.SetIntensity(settings.PsychedelicIntensity)
	a.sim.SetMotionFrozen(settings.ReduceMotion)
	if settings.ReduceMotion {
		a.retargetAlpha(reducedMotionAlpha)
	} else {
		a.retargetAlpha(1)
	}
	a.updateFade(dt)

	bounds := a.surface.Size()
	a.sim.Update(dt, bounds, now)
	conns := a.sim.ComputeConnections(a.cfg.MaxConnectionDistance)
	a.renderer.Draw(a.surface.Backing(), a.sim.Nodes(), conns, a.surface.Transform(), a.alpha)
	a.perf.Frame(now)

	if a.cfg.Debug && now-a.lastDebugLog >= debugLogInterval {
		a.lastDebugLog = now
		debugLog(a.Metrics())
	}
}

// retargetAlpha tweens the frame alpha toward target.
func (a *NodeNetworkAnimation) retargetAlpha(target float64) {
	if a.alphaTarget == target && a.fade != nil {
		return
	}
	if a.alphaTarget == target && a.alpha == target {
		return
	}
	a.alphaTarget = target
	a.fade = gween.New(float32(a.alpha), float32(target), fadeDuration, ease.OutQuad)
}

// updateFade advances the alpha tween by dt milliseconds.
func (a *NodeNetworkAnimation) updateFade(dt float64) {
	if a.fade == nil {
		return
	}
	v, done := a.fade.Update(float32(dt / 1000))
	a.alpha = float64(v)
	if done {
		a.fade = nil
	}
}

// Draw composites the backing store onto screen. Standalone hosts call this
// from their draw callback after Tick.
func (a *NodeNetworkAnimation) Draw(screen *ebiten.Image) {
	if a.state == stateDestroyed || a.surface == nil || !a.visible {
		return
	}
	backing := a.surface.Backing()
	if backing == nil {
		return
	}
	screen.DrawImage(backing, &ebiten.DrawImageOptions{})
}

// Metrics returns a debug snapshot of the animation's internals.
func (a *NodeNetworkAnimation) Metrics() Metrics {
	m := Metrics{Visible: a.visible}
	if a.sim != nil {
		m.Nodes = len(a.sim.Nodes())
		m.Connections = len(a.sim.Connections())
		m.DraggingNodes = a.sim.DraggingCount()
	}
	if a.driver != nil {
		m.ScheduledCallbacks = a.driver.ScheduledCount()
		m.FrameSkipMax = a.driver.FrameSkipMax()
	}
	if a.input != nil {
		m.Dragging = a.input.DraggedIndex() >= 0
	}
	return m
}

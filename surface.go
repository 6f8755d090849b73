package nodenet

import (
	"errors"
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
)

// resizeDebounce is the minimum time between layout polls, in ms. Matches
// the debounce a window-resize listener would use.
const resizeDebounce = 100.0

// resizeMargin keeps re-clamped nodes this many pixels clear of the new edge.
const resizeMargin = 10.0

// LayoutFunc reports the surface's current layout box in CSS pixels plus the
// device scale factor. Hosts wire this to their window or element geometry.
type LayoutFunc func() (cssW, cssH, scale float64)

// CanvasSurface owns the backing store for the animation and keeps it in
// sync with layout and device pixel ratio. The backing image is always
// CSS size × scale; the drawing transform is rebuilt from identity on every
// resize so the scale is never applied cumulatively.
type CanvasSurface struct {
	layout LayoutFunc
	bus    *Bus

	cssW, cssH float64
	scale      float64
	backing    *ebiten.Image
	transform  ebiten.GeoM

	lastPoll float64
	polled   bool
	released bool
}

// NewCanvasSurface acquires the backing store at the current layout size.
// A nil layout or a degenerate layout box is a fatal setup failure.
func NewCanvasSurface(layout LayoutFunc, bus *Bus) (*CanvasSurface, error) {
	if layout == nil {
		return nil, &SetupError{Component: "CanvasSurface", Err: errors.New("no layout source")}
	}
	w, h, scale := layout()
	if w <= 0 || h <= 0 || scale <= 0 {
		return nil, &SetupError{
			Component: "CanvasSurface",
			Err:       fmt.Errorf("degenerate layout %gx%g @%gx", w, h, scale),
		}
	}
	s := &CanvasSurface{layout: layout, bus: bus}
	s.apply(w, h, scale)
	if bus != nil {
		bus.Publish(Event{Type: EventCanvasCreated, Width: w, Height: h})
	}
	return s, nil
}

// apply reallocates the backing store for the given CSS size and scale and
// rebuilds the transform from identity.
func (s *CanvasSurface) apply(w, h, scale float64) {
	s.cssW, s.cssH, s.scale = w, h, scale

	bw := int(w * scale)
	bh := int(h * scale)
	if bw < 1 {
		bw = 1
	}
	if bh < 1 {
		bh = 1
	}
	if s.backing != nil {
		s.backing.Deallocate()
	}
	s.backing = ebiten.NewImage(bw, bh)

	// Fresh GeoM, then one uniform scale. Never rescale the old transform.
	s.transform = ebiten.GeoM{}
	s.transform.Scale(scale, scale)
}

// Resize re-reads the layout box and reallocates the backing store when the
// CSS size or device scale changed. Returns true if a resize happened.
func (s *CanvasSurface) Resize() bool {
	if s.released {
		return false
	}
	w, h, scale := s.layout()
	if w <= 0 || h <= 0 || scale <= 0 {
		return false // transient layout glitch; keep the old surface
	}
	if w == s.cssW && h == s.cssH && scale == s.scale {
		return false
	}
	s.apply(w, h, scale)
	if s.bus != nil {
		s.bus.Publish(Event{Type: EventCanvasResized, Width: w, Height: h})
	}
	return true
}

// Poll is the per-frame resize check, debounced to one layout read per
// resizeDebounce window. This is the observer analog that also catches
// layout-driven size changes not tied to a window resize event.
func (s *CanvasSurface) Poll(now float64) bool {
	if s.polled && now-s.lastPoll < resizeDebounce {
		return false
	}
	s.polled = true
	s.lastPoll = now
	return s.Resize()
}

// Size returns the surface size in CSS pixels.
func (s *CanvasSurface) Size() Vec2 {
	return Vec2{X: s.cssW, Y: s.cssH}
}

// Scale returns the current device scale factor.
func (s *CanvasSurface) Scale() float64 {
	return s.scale
}

// Backing returns the backing-store image. Exclusively owned by this
// subsystem; nothing else may draw on it.
func (s *CanvasSurface) Backing() *ebiten.Image {
	return s.backing
}

// Transform returns a copy of the CSS→backing-store transform.
func (s *CanvasSurface) Transform() ebiten.GeoM {
	return s.transform
}

// Release deallocates the backing store. Idempotent; the surface is unusable
// afterward.
func (s *CanvasSurface) Release() {
	if s.released {
		return
	}
	s.released = true
	if s.backing != nil {
		s.backing.Deallocate()
		s.backing = nil
	}
}

package nodenet

import "testing"

// mutableLayout is a LayoutFunc backed by settable fields.
type mutableLayout struct {
	w, h, scale float64
}

func (m *mutableLayout) fn() LayoutFunc {
	return func() (float64, float64, float64) { return m.w, m.h, m.scale }
}

func TestNewCanvasSurfaceRequiresLayout(t *testing.T) {
	_, err := NewCanvasSurface(nil, nil)
	if err == nil {
		t.Fatal("nil layout accepted")
	}
	if _, ok := err.(*SetupError); !ok {
		t.Errorf("error type = %T, want *SetupError", err)
	}
}

func TestNewCanvasSurfaceRejectsDegenerateLayout(t *testing.T) {
	layout := &mutableLayout{w: 0, h: 600, scale: 1}
	if _, err := NewCanvasSurface(layout.fn(), nil); err == nil {
		t.Fatal("degenerate layout accepted")
	}
}

func TestSurfacePublishesLifecycleEvents(t *testing.T) {
	bus := NewBus()
	var events []Event
	bus.Subscribe(func(evt Event) { events = append(events, evt) })

	layout := &mutableLayout{w: 800, h: 600, scale: 1}
	s, err := NewCanvasSurface(layout.fn(), bus)
	if err != nil {
		t.Fatalf("new surface: %v", err)
	}
	if len(events) != 1 || events[0].Type != EventCanvasCreated {
		t.Fatalf("events after create = %+v, want one canvas-created", events)
	}

	layout.w, layout.h = 400, 300
	if !s.Resize() {
		t.Fatal("resize not detected")
	}
	last := events[len(events)-1]
	if last.Type != EventCanvasResized || last.Width != 400 || last.Height != 300 {
		t.Errorf("resize event = %+v, want canvas-resized 400x300", last)
	}
}

func TestBackingStoreTracksDeviceScale(t *testing.T) {
	layout := &mutableLayout{w: 400, h: 300, scale: 2}
	s, err := NewCanvasSurface(layout.fn(), nil)
	if err != nil {
		t.Fatalf("new surface: %v", err)
	}
	b := s.Backing().Bounds()
	if b.Dx() != 800 || b.Dy() != 600 {
		t.Errorf("backing = %dx%d, want 800x600 (CSS × scale)", b.Dx(), b.Dy())
	}
	if s.Size() != (Vec2{X: 400, Y: 300}) {
		t.Errorf("CSS size = %+v, want 400x300", s.Size())
	}
}

func TestTransformNotCompoundedAcrossResizes(t *testing.T) {
	layout := &mutableLayout{w: 800, h: 600, scale: 2}
	s, err := NewCanvasSurface(layout.fn(), nil)
	if err != nil {
		t.Fatalf("new surface: %v", err)
	}

	// Two successive resizes at the same scale: the transform must hold a
	// single application of the scale, never scale*scale.
	layout.w = 400
	s.Resize()
	layout.w = 500
	s.Resize()

	tr := s.Transform()
	if got := tr.Element(0, 0); got != 2 {
		t.Errorf("transform x-scale = %g, want 2 (not compounded)", got)
	}
	if got := tr.Element(1, 1); got != 2 {
		t.Errorf("transform y-scale = %g, want 2 (not compounded)", got)
	}
}

func TestPollDebounced(t *testing.T) {
	layout := &mutableLayout{w: 800, h: 600, scale: 1}
	s, err := NewCanvasSurface(layout.fn(), nil)
	if err != nil {
		t.Fatalf("new surface: %v", err)
	}

	layout.w = 400
	if !s.Poll(0) {
		t.Fatal("first poll did not resize")
	}
	layout.w = 300
	if s.Poll(50) {
		t.Error("poll inside the debounce window resized")
	}
	if !s.Poll(150) {
		t.Error("poll after the debounce window did not resize")
	}
}

func TestResizeUnchangedLayoutIsNoOp(t *testing.T) {
	layout := &mutableLayout{w: 800, h: 600, scale: 1}
	s, err := NewCanvasSurface(layout.fn(), nil)
	if err != nil {
		t.Fatalf("new surface: %v", err)
	}
	if s.Resize() {
		t.Error("resize reported for unchanged layout")
	}
}

func TestReleaseIdempotent(t *testing.T) {
	layout := &mutableLayout{w: 800, h: 600, scale: 1}
	s, err := NewCanvasSurface(layout.fn(), nil)
	if err != nil {
		t.Fatalf("new surface: %v", err)
	}
	s.Release()
	s.Release() // must not panic or double-deallocate
	if s.Backing() != nil {
		t.Error("backing store survives Release")
	}
	if s.Resize() {
		t.Error("released surface still resizes")
	}
}

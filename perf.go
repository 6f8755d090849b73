package nodenet

// Frame-rate watchdog defaults: sample over ~2s windows, warn below 30 fps.
const (
	perfWindowMs     = 2000.0
	perfThresholdFPS = 30.0
)

// PerfMonitor measures the achieved frame rate over fixed windows and
// publishes a performance-warning event when it drops below the threshold.
// At most one warning fires per window.
type PerfMonitor struct {
	bus       *Bus
	window    float64
	threshold float64

	windowStart float64
	frames      int
	started     bool
}

// NewPerfMonitor creates a monitor publishing warnings on bus.
func NewPerfMonitor(bus *Bus) *PerfMonitor {
	return &PerfMonitor{
		bus:       bus,
		window:    perfWindowMs,
		threshold: perfThresholdFPS,
	}
}

// Frame records one rendered frame at timestamp now (ms). When a full window
// has elapsed, the measured rate is checked against the threshold.
func (m *PerfMonitor) Frame(now float64) {
	if !m.started {
		m.started = true
		m.windowStart = now
		m.frames = 0
		return
	}
	m.frames++
	elapsed := now - m.windowStart
	if elapsed < m.window {
		return
	}
	fps := float64(m.frames) * 1000 / elapsed
	if fps < m.threshold && m.bus != nil {
		m.bus.Publish(Event{Type: EventPerformanceWarning, FPS: fps})
	}
	m.windowStart = now
	m.frames = 0
}

// Reset discards the current window. Called on resume so the pause gap is
// not measured as dropped frames.
func (m *PerfMonitor) Reset() {
	m.started = false
}

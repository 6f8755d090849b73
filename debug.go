package nodenet

import (
	"fmt"
	"os"
)

// Metrics is a point-in-time snapshot of animation internals, exposed for
// debug overlays and tests.
type Metrics struct {
	Nodes              int
	Connections        int
	ScheduledCallbacks int
	Visible            bool
	FrameSkipMax       int
	Dragging           bool
	DraggingNodes      int // 0 or 1 under the single-pointer model
}

// debugLogInterval is the minimum time between debug metric lines, in ms.
const debugLogInterval = 2000.0

// debugLog prints a metrics line to stderr. Gated by Config.Debug.
func debugLog(m Metrics) {
	_, _ = fmt.Fprintf(os.Stderr,
		"[nodenet] nodes: %d | connections: %d | scheduled: %d | visible: %v | skip: %d | dragging: %d\n",
		m.Nodes, m.Connections, m.ScheduledCallbacks, m.Visible, m.FrameSkipMax, m.DraggingNodes)
}

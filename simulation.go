package nodenet

import "math/rand/v2"

// Tuning constants for node motion. Velocities are in CSS pixels per
// millisecond before movementSpeed scaling.
const (
	movementSpeed = 0.02
	maxVelocity   = 0.8
	perturbChance = 0.002
	perturbAmp    = 0.05

	glyphIntervalMin = 2000.0 // ms
	glyphIntervalMax = 5000.0 // ms

	// releaseVelocity is the per-axis magnitude assigned when a drag ends
	// and there is no saved velocity to restore.
	releaseVelocity = 0.25
)

// Connection joins two nodes that sit closer than the connection distance.
// A and B index into the simulation's node slice with A < B, so each
// unordered pair appears at most once. The connection list is rebuilt from
// scratch every frame and owned by the Simulation; the Renderer only reads it.
type Connection struct {
	A, B     int
	Strength float64 // 1 - distance/maxDistance, in (0, 1]
}

// Simulation owns the node collection, advances physics, and derives the
// per-frame connection graph. All methods are pure numeric updates that
// cannot fail; out-of-range inputs are treated as no-ops.
type Simulation struct {
	nodes []NetNode
	conns []Connection

	// intensity mirrors the psychedelic intensity setting and scales
	// color rolls and glyph refresh cadence.
	intensity float64

	// motionFrozen suspends positional integration (reduce-motion mode).
	// Glyph refresh continues; the shimmer is discrete, not continuous
	// motion.
	motionFrozen bool
}

// NewSimulation creates count nodes with random position, velocity, glyph,
// and color inside bounds. now is the current frame timestamp in
// milliseconds.
func NewSimulation(count int, bounds Vec2, now float64) *Simulation {
	if count < 0 {
		count = 0
	}
	s := &Simulation{
		nodes:     make([]NetNode, count),
		conns:     make([]Connection, 0, count*2),
		intensity: 0.5,
	}
	for i := range s.nodes {
		n := &s.nodes[i]
		n.Pos = Vec2{X: rand.Float64() * bounds.X, Y: rand.Float64() * bounds.Y}
		n.Vel = Vec2{
			X: (rand.Float64()*2 - 1) * maxVelocity,
			Y: (rand.Float64()*2 - 1) * maxVelocity,
		}
		n.refreshGlyph(now, s.intensity)
		// Stagger the first refresh so freshly created fields don't
		// flip in sync.
		n.lastGlyphChange = now - rand.Float64()*n.glyphInterval
	}
	return s
}

// SetIntensity updates the psychedelic intensity in [0, 1].
func (s *Simulation) SetIntensity(v float64) {
	s.intensity = clamp(v, 0, 1)
}

// SetMotionFrozen suspends or resumes positional integration.
func (s *Simulation) SetMotionFrozen(frozen bool) {
	s.motionFrozen = frozen
}

// Nodes returns the node slice. The returned slice MUST NOT be resized by the
// caller; mutating individual nodes between frames is how input is applied.
func (s *Simulation) Nodes() []NetNode {
	return s.nodes
}

// NodeAt returns a pointer to the node at index i.
func (s *Simulation) NodeAt(i int) *NetNode {
	return &s.nodes[i]
}

// DraggingCount returns the number of nodes currently held by the pointer
// (always 0 or 1 under the single-pointer drag model).
func (s *Simulation) DraggingCount() int {
	count := 0
	for i := range s.nodes {
		if s.nodes[i].dragging {
			count++
		}
	}
	return count
}

// Update advances node physics by dt milliseconds within bounds. Dragged
// nodes are pinned; every node still refreshes its glyph on its own schedule.
// Negative dt is clamped to zero.
func (s *Simulation) Update(dt float64, bounds Vec2, now float64) {
	if dt < 0 {
		dt = 0
	}
	for i := range s.nodes {
		n := &s.nodes[i]

		if !n.dragging && !s.motionFrozen {
			n.Pos.X += n.Vel.X * dt * movementSpeed
			n.Pos.Y += n.Vel.Y * dt * movementSpeed

			// Reflective walls: invert and clamp back inside.
			if n.Pos.X < 0 || n.Pos.X > bounds.X {
				n.Vel.X = -n.Vel.X
				n.Pos.X = clamp(n.Pos.X, 0, bounds.X)
			}
			if n.Pos.Y < 0 || n.Pos.Y > bounds.Y {
				n.Vel.Y = -n.Vel.Y
				n.Pos.Y = clamp(n.Pos.Y, 0, bounds.Y)
			}

			// Occasional random nudge keeps motion organic without
			// letting speeds decay or diverge.
			if rand.Float64() < perturbChance {
				n.Vel.X += (rand.Float64()*2 - 1) * perturbAmp
				n.Vel.Y += (rand.Float64()*2 - 1) * perturbAmp
				n.Vel.X = clamp(n.Vel.X, -maxVelocity, maxVelocity)
				n.Vel.Y = clamp(n.Vel.Y, -maxVelocity, maxVelocity)
			}
		}

		if now-n.lastGlyphChange > n.glyphInterval {
			n.refreshGlyph(now, s.intensity)
		}
	}
}

// ComputeConnections rebuilds the connection list: every unordered node pair
// closer than maxDistance contributes one entry with strength
// 1 - distance/maxDistance. O(n²) over the node slice, acceptable at the
// node counts this runs with.
func (s *Simulation) ComputeConnections(maxDistance float64) []Connection {
	s.conns = s.conns[:0]
	if maxDistance <= 0 {
		return s.conns
	}
	for i := 0; i < len(s.nodes); i++ {
		for j := i + 1; j < len(s.nodes); j++ {
			d := dist(s.nodes[i].Pos, s.nodes[j].Pos)
			if d < maxDistance {
				s.conns = append(s.conns, Connection{
					A:        i,
					B:        j,
					Strength: 1 - d/maxDistance,
				})
			}
		}
	}
	return s.conns
}

// Connections returns the most recently computed connection list.
func (s *Simulation) Connections() []Connection {
	return s.conns
}

// ClampToBounds pulls any node outside bounds back inside, keeping margin
// pixels clear of the edge. Called after the canvas shrinks so nodes are
// never stranded off-canvas.
func (s *Simulation) ClampToBounds(bounds Vec2, margin float64) {
	maxX := bounds.X - margin
	maxY := bounds.Y - margin
	if maxX < 0 {
		maxX = 0
	}
	if maxY < 0 {
		maxY = 0
	}
	for i := range s.nodes {
		n := &s.nodes[i]
		n.Pos.X = clamp(n.Pos.X, 0, maxX)
		n.Pos.Y = clamp(n.Pos.Y, 0, maxY)
	}
}

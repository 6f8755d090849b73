package nodenet

import (
	"math"
	"math/rand/v2"
)

// noiseAlphabet is the pool of glyphs nodes cycle through: printable ASCII
// letters, digits, and punctuation plus the katakana block for visual noise.
var noiseAlphabet = buildNoiseAlphabet()

func buildNoiseAlphabet() []rune {
	runes := make([]rune, 0, 94+96)
	for r := rune('!'); r <= '~'; r++ {
		runes = append(runes, r)
	}
	for r := rune(0x30A0); r <= 0x30FF; r++ {
		runes = append(runes, r)
	}
	return runes
}

// fallbackGlyph is drawn when the alphabet is somehow empty. Glyph selection
// must never crash the frame loop.
const fallbackGlyph = '*'

// randomGlyph returns a random rune from the noise alphabet.
func randomGlyph() rune {
	if len(noiseAlphabet) == 0 {
		return fallbackGlyph
	}
	return noiseAlphabet[rand.IntN(len(noiseAlphabet))]
}

// randomColor rolls a fresh node color. intensity in [0, 1] scales saturation
// and hue spread: at 0 the palette stays close to the base cyan-green band,
// at 1 hues span the full wheel at high saturation.
func randomColor(intensity float64) RGB {
	intensity = clamp(intensity, 0, 1)
	const baseHue = 160.0 // cyan-green
	spread := lerp(30, 360, intensity)
	hue := math.Mod(baseHue+rand.Float64()*spread-spread/2+360, 360)
	sat := lerp(0.35, 0.95, intensity*rand.Float64())
	light := 0.5 + rand.Float64()*0.2
	return hslToRGB(hue, sat, light)
}

// hslToRGB converts hue [0,360), saturation [0,1], lightness [0,1] to RGB.
func hslToRGB(h, s, l float64) RGB {
	c := (1 - math.Abs(2*l-1)) * s
	x := c * (1 - math.Abs(math.Mod(h/60, 2)-1))
	m := l - c/2

	var r, g, b float64
	switch {
	case h < 60:
		r, g, b = c, x, 0
	case h < 120:
		r, g, b = x, c, 0
	case h < 180:
		r, g, b = 0, c, x
	case h < 240:
		r, g, b = 0, x, c
	case h < 300:
		r, g, b = x, 0, c
	default:
		r, g, b = c, 0, x
	}
	return RGB{
		R: uint8((r + m) * 255),
		G: uint8((g + m) * 255),
		B: uint8((b + m) * 255),
	}
}

// NetNode is a single animated particle. A flat struct is used for all per-node
// state to keep the update loop cache-friendly; nodes live in a slice owned by
// the Simulation and are never added or removed during a session.
type NetNode struct {
	Pos Vec2
	// Vel is in CSS pixels per millisecond, scaled by movementSpeed when
	// integrated. Components stay within [-maxVelocity, maxVelocity].
	Vel   Vec2
	Glyph rune
	Color RGB

	// Glyph refresh bookkeeping. Each node carries its own randomized
	// interval so changes stay desynchronized across the field.
	lastGlyphChange float64
	glyphInterval   float64

	// Drag state. Transient; only set while a pointer holds the node.
	dragging    bool
	savedVel    Vec2
	hasSavedVel bool
}

// Dragging reports whether the node is currently held by the pointer.
func (n *NetNode) Dragging() bool {
	return n.dragging
}

// refreshGlyph rolls a new glyph, color, and refresh interval.
func (n *NetNode) refreshGlyph(now, intensity float64) {
	n.Glyph = randomGlyph()
	n.Color = randomColor(intensity)
	n.lastGlyphChange = now
	n.glyphInterval = glyphIntervalRange(intensity).Random()
}

// glyphIntervalRange returns the refresh interval range in milliseconds.
// Higher psychedelic intensity shortens the interval, speeding up the shimmer.
func glyphIntervalRange(intensity float64) Range {
	scale := lerp(1.0, 0.4, clamp(intensity, 0, 1))
	return Range{Min: glyphIntervalMin * scale, Max: glyphIntervalMax * scale}
}

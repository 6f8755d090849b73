package nodenet

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/basicfont"
)

const (
	// characterSpacing is the distance in CSS pixels between glyphs laid
	// along a connection.
	characterSpacing = 8.0

	// connectionAlpha scales trail glyph opacity by connection strength.
	connectionAlpha = 0.4

	// glowRadius is the offset used to fake a small shadow/glow behind
	// node glyphs.
	glowRadius = 3.0
	glowAlpha  = 0.25

	defaultFontSize = 16.0
)

// defaultFace is the fixed fallback when no theme font is available.
var defaultFace text.Face = text.NewGoXFace(basicfont.Face7x13)

// Theme supplies the font values the renderer derives sizing from. Both
// fields are optional; missing values fall back to fixed defaults.
type Theme struct {
	// BaseFontSize is the node glyph size in CSS pixels.
	BaseFontSize float64
	// FaceSource is the font family. It should carry a bold weight; node
	// glyphs are drawn with it directly. Nil falls back to a built-in
	// bitmap face.
	FaceSource *text.GoTextFaceSource
}

// face resolves the theme to a concrete text face. Called once per draw so
// live theme changes take effect on the next frame.
func (t Theme) face() text.Face {
	if t.FaceSource == nil {
		return defaultFace
	}
	size := t.BaseFontSize
	if size <= 0 {
		size = defaultFontSize
	}
	return &text.GoTextFace{Source: t.FaceSource, Size: size}
}

// Renderer paints one frame of nodes and connections onto the surface
// backing store. Stateless across frames apart from the theme.
type Renderer struct {
	theme Theme
}

// NewRenderer creates a renderer with the given theme.
func NewRenderer(theme Theme) *Renderer {
	return &Renderer{theme: theme}
}

// SetTheme replaces the theme; takes effect on the next Draw.
func (r *Renderer) SetTheme(theme Theme) {
	r.theme = theme
}

// Draw clears dst and paints connections first, then nodes, so node glyphs
// appear in front of connective trails. transform maps CSS pixels to the
// backing store; alpha scales the whole frame (used for the activation
// fade-in).
func (r *Renderer) Draw(dst *ebiten.Image, nodes []NetNode, conns []Connection, transform ebiten.GeoM, alpha float64) {
	if dst == nil {
		return
	}
	// Persistence-free effect: the full visible area is cleared, no
	// motion trails.
	dst.Clear()
	if alpha <= 0 {
		return
	}

	face := r.theme.face()

	for _, c := range conns {
		r.drawConnection(dst, face, &nodes[c.A], &nodes[c.B], c.Strength, transform, alpha)
	}
	for i := range nodes {
		r.drawNode(dst, face, &nodes[i], transform, alpha)
	}
}

// drawConnection lays random glyphs along the segment between two nodes.
// Trail glyphs are re-rolled every frame; unlike node glyphs they are not
// persisted state.
func (r *Renderer) drawConnection(dst *ebiten.Image, face text.Face, a, b *NetNode, strength float64, transform ebiten.GeoM, alpha float64) {
	d := dist(a.Pos, b.Pos)
	steps := connectionSteps(d)
	if steps < 2 {
		return
	}
	for i := 1; i < steps-1; i++ {
		progress := float64(i) / float64(steps)
		x := lerp(a.Pos.X, b.Pos.X, progress)
		y := lerp(a.Pos.Y, b.Pos.Y, progress)

		shade := trailShade(progress, strength)
		op := &text.DrawOptions{}
		op.GeoM.Translate(x, y)
		op.GeoM.Concat(transform)
		op.PrimaryAlign = text.AlignCenter
		op.SecondaryAlign = text.AlignCenter
		op.ColorScale.Scale(float32(shade), float32(shade), float32(shade), 1)
		op.ColorScale.ScaleAlpha(float32(strength * connectionAlpha * alpha))
		text.Draw(dst, string(randomGlyph()), face, op)
	}
}

// drawNode paints a node glyph with a small glow: four offset passes in the
// node color at low alpha, then the solid glyph on top. Each pass uses fresh
// draw options, so no glow state bleeds into the next draw call.
func (r *Renderer) drawNode(dst *ebiten.Image, face text.Face, n *NetNode, transform ebiten.GeoM, alpha float64) {
	glyph := string(n.Glyph)
	cr := float32(n.Color.R) / 255
	cg := float32(n.Color.G) / 255
	cb := float32(n.Color.B) / 255

	glowOffsets := [4][2]float64{
		{-glowRadius, 0}, {glowRadius, 0}, {0, -glowRadius}, {0, glowRadius},
	}
	for _, off := range glowOffsets {
		op := &text.DrawOptions{}
		op.GeoM.Translate(n.Pos.X+off[0], n.Pos.Y+off[1])
		op.GeoM.Concat(transform)
		op.PrimaryAlign = text.AlignCenter
		op.SecondaryAlign = text.AlignCenter
		op.ColorScale.Scale(cr, cg, cb, 1)
		op.ColorScale.ScaleAlpha(float32(glowAlpha * alpha))
		text.Draw(dst, glyph, face, op)
	}

	op := &text.DrawOptions{}
	op.GeoM.Translate(n.Pos.X, n.Pos.Y)
	op.GeoM.Concat(transform)
	op.PrimaryAlign = text.AlignCenter
	op.SecondaryAlign = text.AlignCenter
	op.ColorScale.Scale(cr, cg, cb, 1)
	op.ColorScale.ScaleAlpha(float32(alpha))
	text.Draw(dst, glyph, face, op)
}

// connectionSteps returns the number of interpolation steps for a connection
// of length d. Connections shorter than two steps are not rendered.
func connectionSteps(d float64) int {
	return int(math.Floor(d / characterSpacing))
}

// trailShade returns the grayscale level for a trail glyph: a parabolic
// profile peaking at the segment midpoint, scaled by connection strength.
func trailShade(progress, strength float64) float64 {
	return clamp(4*progress*(1-progress)*strength, 0, 1)
}

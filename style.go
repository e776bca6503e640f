package main

import (
	"image/color"
	"math"
	"math/rand/v2"

	"github.com/lucasb-eyer/go-colorful"
)

// Transform is the per-floater affine treatment, applied about the center of
// the text in the order scale, skew, rotate.
type Transform struct {
	Rotation float64 // degrees
	ScaleX   float64
	ScaleY   float64
	SkewX    float64 // degrees
}

func (t Transform) Apply(x, y float64) (float64, float64) {
	x *= t.ScaleX
	y *= t.ScaleY
	x += math.Tan(t.SkewX*math.Pi/180) * y
	sin, cos := math.Sincos(t.Rotation * math.Pi / 180)
	return x*cos - y*sin, x*sin + y*cos
}

// Decoration is one of the fixed visual treatments. The set is closed:
// Stroke, Gradient, Shadow, Distort, Chip and Outline.
type Decoration interface {
	Kind() StyleKind
	// padding is how far the treatment reaches past the glyph box, in
	// unscaled pixels.
	padding() float64
}

type Stroke struct {
	Width float64
	Color color.RGBA
}

// Gradient replaces the solid fill with a linear blend from the fill color to
// To.
type Gradient struct {
	Angle float64 // degrees
	To    color.RGBA
}

type Shadow struct {
	DX, DY float64
	Color  color.RGBA
}

type Distort struct{}

type Chip struct {
	Color   color.RGBA
	Padding float64
	Radius  float64
}

type Outline struct {
	Width float64
	Color color.RGBA
}

func (Stroke) Kind() StyleKind   { return StyleStroke }
func (Gradient) Kind() StyleKind { return StyleGradient }
func (Shadow) Kind() StyleKind   { return StyleShadow }
func (Distort) Kind() StyleKind  { return StyleDistort }
func (Chip) Kind() StyleKind     { return StyleChip }
func (Outline) Kind() StyleKind  { return StyleOutline }

func (s Stroke) padding() float64  { return s.Width }
func (Gradient) padding() float64  { return 0 }
func (s Shadow) padding() float64  { return math.Max(math.Abs(s.DX), math.Abs(s.DY)) }
func (Distort) padding() float64   { return 0 }
func (c Chip) padding() float64    { return c.Padding }
func (o Outline) padding() float64 { return o.Width }

type Style struct {
	Font       FontFamily
	Size       float64
	Fill       color.RGBA
	Decoration Decoration
	Transform  Transform
}

// fontSizeRange scales with the surface width so a composition looks the
// same on any terminal size.
func fontSizeRange(surfaceWidth float64) (lo, hi float64) {
	lo = math.Max(10, surfaceWidth/18)
	hi = math.Max(lo+1, surfaceWidth/7)
	return lo, hi
}

// randomColor picks a random hue at full saturation and half lightness, which
// keeps every color vivid.
func randomColor(rng *rand.Rand) color.RGBA {
	return hslColor(rng.Float64() * 360)
}

func hslColor(hue float64) color.RGBA {
	r, g, b := colorful.Hsl(math.Mod(hue, 360), 1.0, 0.5).Clamped().RGB255()
	return color.RGBA{r, g, b, 255}
}

// colorPair returns two vivid colors whose hues are at least 60 degrees apart.
func colorPair(rng *rand.Rand) (color.RGBA, color.RGBA) {
	hue := rng.Float64() * 360
	offset := 60 + rng.Float64()*240
	return hslColor(hue), hslColor(hue + offset)
}

func uniform(rng *rand.Rand, lo, hi float64) float64 {
	return lo + rng.Float64()*(hi-lo)
}

func randomStyle(rng *rand.Rand, surfaceWidth float64) Style {
	lo, hi := fontSizeRange(surfaceWidth)
	style := Style{
		Font: FontFamily(rng.IntN(int(numFontFamilies))),
		Size: uniform(rng, lo, hi),
		Transform: Transform{
			Rotation: uniform(rng, -maxRotation, maxRotation),
			ScaleX:   uniform(rng, minScale, maxScale),
			ScaleY:   uniform(rng, minScale, maxScale),
			SkewX:    uniform(rng, -maxSkew, maxSkew),
		},
	}

	fill, accent := colorPair(rng)
	style.Fill = fill
	size := style.Size

	switch StyleKind(rng.IntN(int(numStyleKinds))) {
	case StyleStroke:
		style.Decoration = Stroke{Width: size * uniform(rng, 0.03, 0.08), Color: accent}
	case StyleGradient:
		style.Decoration = Gradient{Angle: rng.Float64() * 360, To: accent}
	case StyleShadow:
		d := size * uniform(rng, 0.06, 0.12)
		style.Decoration = Shadow{DX: d, DY: d, Color: accent}
	case StyleDistort:
		style.Decoration = Distort{}
		skew := uniform(rng, minDistortSkew, 2*minDistortSkew)
		if rng.IntN(2) == 0 {
			skew = -skew
		}
		style.Transform.SkewX = skew
		wide, narrow := uniform(rng, 1.2, 1.5), uniform(rng, 0.6, 0.9)
		if rng.IntN(2) == 0 {
			wide, narrow = narrow, wide
		}
		style.Transform.ScaleX, style.Transform.ScaleY = wide, narrow
	case StyleChip:
		style.Decoration = Chip{Color: accent, Padding: size * 0.2, Radius: size * 0.25}
	case StyleOutline:
		style.Decoration = Outline{Width: size * uniform(rng, 0.03, 0.06), Color: fill}
	}
	return style
}

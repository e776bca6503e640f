package main

import (
	"math"
	"sync"

	"github.com/fogleman/gg"
	"github.com/rivo/uniseg"
)

// Surface is what the simulation knows about the rendering area. Both calls
// are made fresh every tick because the terminal can be resized at any time.
type Surface interface {
	Bounds() (w, h float64)
	Measure(f *Floater) (w, h float64)
}

// boxExtents returns the axis-aligned size of a text box of tw x th once the
// decoration padding, the style transform and the appear factor are applied.
func boxExtents(tw, th float64, style Style, appear float64) (w, h float64) {
	pad := 0.0
	if style.Decoration != nil {
		pad = style.Decoration.padding()
	}
	hw, hh := tw/2+pad, th/2+pad

	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, corner := range [4][2]float64{{-hw, -hh}, {hw, -hh}, {hw, hh}, {-hw, hh}} {
		x, y := style.Transform.Apply(corner[0], corner[1])
		minX, maxX = math.Min(minX, x), math.Max(maxX, x)
		minY, maxY = math.Min(minY, y), math.Max(maxY, y)
	}
	return (maxX - minX) * appear, (maxY - minY) * appear
}

// textSurface measures floaters with the same faces the PNG export draws
// with, so the simulated boxes match the exported pixels.
type textSurface struct {
	mu     sync.Mutex
	bounds func() (float64, float64)
	book   *fontBook
	dc     *gg.Context
}

func newTextSurface(bounds func() (float64, float64)) *textSurface {
	return &textSurface{
		bounds: bounds,
		book:   newFontBook(),
		dc:     gg.NewContext(1, 1),
	}
}

func (s *textSurface) Bounds() (float64, float64) {
	return s.bounds()
}

func (s *textSurface) Measure(f *Floater) (float64, float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	tw, th := s.textSize(f.Text, f.Style)
	return boxExtents(tw, th, f.Style, f.appearFactor())
}

func (s *textSurface) textSize(text string, style Style) (float64, float64) {
	face, err := s.book.Face(style.Font, style.Size)
	if err != nil {
		// rough estimate so a broken font never stops the simulation
		return float64(uniseg.StringWidth(text)) * style.Size * 0.6, style.Size
	}
	s.dc.SetFontFace(face)
	return s.dc.MeasureString(text)
}

package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func plainStyle(size float64) Style {
	return Style{Font: FontRegular, Size: size, Transform: Transform{ScaleX: 1, ScaleY: 1}}
}

func TestBoxExtents(t *testing.T) {
	w, h := boxExtents(100, 20, plainStyle(20), 1)
	assert.InDelta(t, 100, w, 1e-9)
	assert.InDelta(t, 20, h, 1e-9)

	w, h = boxExtents(100, 20, plainStyle(20), 0.5)
	assert.InDelta(t, 50, w, 1e-9)
	assert.InDelta(t, 10, h, 1e-9)

	rotated := plainStyle(20)
	rotated.Transform.Rotation = 90
	w, h = boxExtents(100, 20, rotated, 1)
	assert.InDelta(t, 20, w, 1e-9)
	assert.InDelta(t, 100, h, 1e-9)

	stroked := plainStyle(20)
	stroked.Decoration = Stroke{Width: 2}
	w, h = boxExtents(100, 20, stroked, 1)
	assert.InDelta(t, 104, w, 1e-9)
	assert.InDelta(t, 24, h, 1e-9)

	shadowed := plainStyle(20)
	shadowed.Decoration = Shadow{DX: 3, DY: -5}
	w, _ = boxExtents(100, 20, shadowed, 1)
	assert.InDelta(t, 110, w, 1e-9)
}

func TestTextSurfaceMeasure(t *testing.T) {
	vp := &viewport{cols: 80, rows: 24}
	s := newTextSurface(vp.Bounds)

	w, h := s.Bounds()
	assert.Equal(t, 640.0, w)
	assert.Equal(t, 384.0, h)

	vp.cols = 100
	w, _ = s.Bounds()
	assert.Equal(t, 800.0, w)

	short := &Floater{Text: "hi", Style: plainStyle(32), Appear: 1}
	long := &Floater{Text: "hello there", Style: plainStyle(32), Appear: 1}
	sw, sh := s.Measure(short)
	lw, lh := s.Measure(long)
	assert.Positive(t, sw)
	assert.Positive(t, sh)
	assert.Greater(t, lw, sw)
	assert.InDelta(t, sh, lh, 1e-9)

	bigger := &Floater{Text: "hi", Style: plainStyle(64), Appear: 1}
	bw, _ := s.Measure(bigger)
	assert.Greater(t, bw, sw)

	small := &Floater{Text: "hi", Style: plainStyle(32), Appear: 0.5}
	hw, _ := s.Measure(small)
	assert.InDelta(t, sw/2, hw, 1e-9)
}

func TestFontBookCachesFaces(t *testing.T) {
	book := newFontBook()
	a, err := book.Face(FontBold, 24.2)
	assert.NoError(t, err)
	b, err := book.Face(FontBold, 24.1)
	assert.NoError(t, err)
	assert.Same(t, a, b)

	_, err = book.Face(FontFamily(99), 12)
	assert.Error(t, err)
}

package main

import (
	"github.com/deeean/go-vector/vector2"
	"github.com/google/uuid"
)

// Floater is one animated text fragment. Position is the top-left corner of
// its measured bounding box in canvas pixels; Velocity is pixels per frame.
type Floater struct {
	ID       uuid.UUID
	Text     string
	Position vector2.Vector2
	Velocity vector2.Vector2
	Style    Style

	// Appear grows from appearStart towards 1 on a spring after spawning.
	Appear    float64
	AppearVel float64
}

const appearStart = 0.4

func (f *Floater) appearFactor() float64 {
	if f.Appear <= 0 {
		return 0.05
	}
	return f.Appear
}

type Rect struct {
	X, Y, W, H float64
}

func (r Rect) Right() float64  { return r.X + r.W }
func (r Rect) Bottom() float64 { return r.Y + r.H }

// Overlap returns the penetration depth on each axis; both are positive only
// when the rectangles intersect.
func (r Rect) Overlap(o Rect) (dx, dy float64) {
	dx = min(r.Right(), o.Right()) - max(r.X, o.X)
	dy = min(r.Bottom(), o.Bottom()) - max(r.Y, o.Y)
	return dx, dy
}

func (r Rect) Intersects(o Rect) bool {
	dx, dy := r.Overlap(o)
	return dx > 0 && dy > 0
}

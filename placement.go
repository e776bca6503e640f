package main

import "github.com/deeean/go-vector/vector2"

// placeLocked picks a uniform random position inside the safety margin,
// re-rolling while the candidate box overlaps a live floater. When the
// attempt budget runs out the last candidate is kept.
func (c *Canvas) placeLocked(f *Floater) {
	bw, bh := c.surface.Bounds()
	w, h := c.surface.Measure(f)
	margin := c.config.Margin

	occupied := make([]Rect, 0, len(c.floaters))
	for _, live := range c.floaters {
		occupied = append(occupied, c.boxLocked(live))
	}

	attempts := max(1, c.config.PlacementAttempts)
	var candidate Rect
	for attempt := 0; attempt < attempts; attempt++ {
		candidate = Rect{
			X: margin + c.rng.Float64()*max(0, bw-2*margin-w),
			Y: margin + c.rng.Float64()*max(0, bh-2*margin-h),
			W: w,
			H: h,
		}
		if !overlapsAny(candidate, occupied) {
			break
		}
	}
	f.Position = vector2.Vector2{X: candidate.X, Y: candidate.Y}
}

func overlapsAny(r Rect, others []Rect) bool {
	for _, o := range others {
		if r.Intersects(o) {
			return true
		}
	}
	return false
}

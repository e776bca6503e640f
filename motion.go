package main

import (
	"math"

	"golang.org/x/exp/slices"
)

// Step advances the simulation by one frame: integrate, push overlapping
// floaters apart, then reflect off the edges measured this frame. Nothing
// moves until the surface has an area.
func (c *Canvas) Step() {
	c.mu.Lock()
	defer c.mu.Unlock()

	bw, bh := c.surface.Bounds()
	if bw <= 0 || bh <= 0 {
		return
	}

	live := slices.Clone(c.floaters)
	for _, f := range live {
		c.integrate(f)
	}

	if c.config.Repulsion && len(live) > 1 {
		c.repel(live)
	}

	for _, f := range live {
		c.reflect(f, bw, bh)
	}
}

func (c *Canvas) integrate(f *Floater) {
	f.Position = *f.Position.Add(&f.Velocity)
	f.Appear, f.AppearVel = c.spring.Update(f.Appear, f.AppearVel, 1)
}

// repel nudges each overlapping pair apart along the axis of least overlap,
// half the depth each, and bends their velocities away from each other.
func (c *Canvas) repel(live []*Floater) {
	boxes := make([]Rect, len(live))
	for i, f := range live {
		boxes[i] = c.boxLocked(f)
	}

	limit := 2 * c.config.MaxSpeed
	for i := 0; i < len(live); i++ {
		for j := i + 1; j < len(live); j++ {
			dx, dy := boxes[i].Overlap(boxes[j])
			if dx <= 0 || dy <= 0 {
				continue
			}
			a, b := live[i], live[j]
			if dx < dy {
				dir := pushDirection(boxes[i].X+boxes[i].W/2, boxes[j].X+boxes[j].W/2)
				shift := dir * dx * repulsionStrength / 2
				a.Position.X += shift
				b.Position.X -= shift
				boxes[i].X += shift
				boxes[j].X -= shift
				a.Velocity.X = clampAbs(a.Velocity.X+dir*repulsionImpulse, limit)
				b.Velocity.X = clampAbs(b.Velocity.X-dir*repulsionImpulse, limit)
			} else {
				dir := pushDirection(boxes[i].Y+boxes[i].H/2, boxes[j].Y+boxes[j].H/2)
				shift := dir * dy * repulsionStrength / 2
				a.Position.Y += shift
				b.Position.Y -= shift
				boxes[i].Y += shift
				boxes[j].Y -= shift
				a.Velocity.Y = clampAbs(a.Velocity.Y+dir*repulsionImpulse, limit)
				b.Velocity.Y = clampAbs(b.Velocity.Y-dir*repulsionImpulse, limit)
			}
		}
	}
}

// pushDirection is the sign that moves a away from b; coincident centers
// push a towards the origin.
func pushDirection(a, b float64) float64 {
	if a > b {
		return 1
	}
	return -1
}

func (c *Canvas) reflect(f *Floater, bw, bh float64) {
	w, h := c.surface.Measure(f)
	margin := c.config.Margin

	var bx, by bool
	f.Position.X, f.Velocity.X, bx = reflectAxis(f.Position.X, f.Velocity.X, w, bw, margin)
	f.Position.Y, f.Velocity.Y, by = reflectAxis(f.Position.Y, f.Velocity.Y, h, bh, margin)
	if (bx || by) && c.config.RecolorOnBounce {
		f.Style.Fill = randomColor(c.rng)
	}
}

// reflectAxis clamps one axis into [margin, limit-margin-size]. The far edge
// is checked first so the near edge wins when the box does not fit.
func reflectAxis(pos, vel, size, limit, margin float64) (float64, float64, bool) {
	bounced := false
	if pos+size > limit-margin {
		pos = limit - margin - size
		vel = -math.Abs(vel)
		bounced = true
	}
	if pos < margin {
		pos = margin
		vel = math.Abs(vel)
		bounced = true
	}
	return pos, vel, bounced
}

func clampAbs(v, limit float64) float64 {
	return math.Max(-limit, math.Min(limit, v))
}

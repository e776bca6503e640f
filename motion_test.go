package main

import (
	"testing"

	"github.com/deeean/go-vector/vector2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assertInside(t *testing.T, c *Canvas, s *fixedSurface) {
	t.Helper()
	margin := c.config.Margin
	for _, f := range c.Floaters() {
		require.GreaterOrEqual(t, f.Position.X, margin, f.Text)
		require.GreaterOrEqual(t, f.Position.Y, margin, f.Text)
		require.LessOrEqual(t, f.Position.X+s.bw, s.w-margin+1e-9, f.Text)
		require.LessOrEqual(t, f.Position.Y+s.bh, s.h-margin+1e-9, f.Text)
	}
}

func TestStepKeepsFloatersInsideAcrossResize(t *testing.T) {
	s := &fixedSurface{w: 640, h: 360, bw: 60, bh: 24}
	c := newTestCanvas(s)
	c.config.MaxSpeed = 9
	c.Submit("a b c d e f g h i j k l m n o p")

	for i := 0; i < 500; i++ {
		c.Step()
		assertInside(t, c, s)
	}

	s.w, s.h = 300, 120
	for i := 0; i < 300; i++ {
		c.Step()
		assertInside(t, c, s)
	}
}

func TestStepWithoutAreaDoesNothing(t *testing.T) {
	s := &fixedSurface{w: 0, h: 0, bw: 60, bh: 24}
	c := newTestCanvas(s)
	f := floaterAt("still", 10, 10)
	f.Velocity = vector2.Vector2{X: 3, Y: 3}
	c.Insert(f, 0)

	c.Step()
	got, ok := c.Get(f.ID)
	require.True(t, ok)
	assert.Equal(t, f.Position, got.Position)
}

func TestReflectOffFarEdge(t *testing.T) {
	s := &fixedSurface{w: 400, h: 300, bw: 50, bh: 20}
	c := newTestCanvas(s)
	f := floaterAt("edge", 400-4-50-1, 100)
	f.Velocity = vector2.Vector2{X: 2, Y: 0}
	c.Insert(f, 0)

	c.Step()
	got, _ := c.Get(f.ID)
	assert.Equal(t, 400-4-50.0, got.Position.X)
	assert.Less(t, got.Velocity.X, 0.0)
	assert.Equal(t, 0.0, got.Velocity.Y)
}

func TestReflectOffNearEdge(t *testing.T) {
	s := &fixedSurface{w: 400, h: 300, bw: 50, bh: 20}
	c := newTestCanvas(s)
	f := floaterAt("edge", 100, 5)
	f.Velocity = vector2.Vector2{X: 0, Y: -3}
	c.Insert(f, 0)

	c.Step()
	got, _ := c.Get(f.ID)
	assert.Equal(t, c.config.Margin, got.Position.Y)
	assert.Greater(t, got.Velocity.Y, 0.0)
}

func TestReflectAxisNearEdgeWinsWhenTooBig(t *testing.T) {
	pos, vel, bounced := reflectAxis(10, 1, 500, 100, 4)
	assert.True(t, bounced)
	assert.Equal(t, 4.0, pos)
	assert.Equal(t, 1.0, vel)
}

func TestRecolorOnBounce(t *testing.T) {
	s := &fixedSurface{w: 400, h: 300, bw: 50, bh: 20}

	c := newTestCanvas(s)
	f := floaterAt("bounce", 5, 100)
	f.Velocity = vector2.Vector2{X: -3}
	c.Insert(f, 0)
	c.Step()
	got, _ := c.Get(f.ID)
	assert.NotEqual(t, f.Style.Fill, got.Style.Fill)

	c = newTestCanvas(s)
	c.config.RecolorOnBounce = false
	c.Insert(f, 0)
	c.Step()
	got, _ = c.Get(f.ID)
	assert.Equal(t, f.Style.Fill, got.Style.Fill)
}

func TestRepulsionPushesOverlapsApart(t *testing.T) {
	s := &fixedSurface{w: 800, h: 600, bw: 50, bh: 20}
	c := newTestCanvas(s)
	a := floaterAt("a", 100, 100)
	b := floaterAt("b", 110, 100)
	c.Insert(a, 0)
	c.Insert(b, 1)

	boxA, _ := c.Box(a.ID)
	boxB, _ := c.Box(b.ID)
	_, before := boxA.Overlap(boxB)

	c.Step()
	boxA, _ = c.Box(a.ID)
	boxB, _ = c.Box(b.ID)
	_, after := boxA.Overlap(boxB)
	assert.Less(t, after, before)

	gotA, _ := c.Get(a.ID)
	gotB, _ := c.Get(b.ID)
	assert.Less(t, gotA.Velocity.Y, 0.0)
	assert.Greater(t, gotB.Velocity.Y, 0.0)
}

func TestNoRepulsionWhenDisabled(t *testing.T) {
	s := &fixedSurface{w: 800, h: 600, bw: 50, bh: 20}
	c := newTestCanvas(s)
	c.config.Repulsion = false
	a := floaterAt("a", 100, 100)
	b := floaterAt("b", 110, 100)
	c.Insert(a, 0)
	c.Insert(b, 1)

	c.Step()
	gotA, _ := c.Get(a.ID)
	gotB, _ := c.Get(b.ID)
	assert.Equal(t, a.Position, gotA.Position)
	assert.Equal(t, b.Position, gotB.Position)
}

func TestAppearSpringGrowsToFullSize(t *testing.T) {
	s := &fixedSurface{w: 800, h: 600, bw: 50, bh: 20}
	c := newTestCanvas(s)
	f, _ := c.Spawn("pop")

	for i := 0; i < 120; i++ {
		c.Step()
	}
	got, _ := c.Get(f.ID)
	assert.InDelta(t, 1.0, got.Appear, 0.05)
}

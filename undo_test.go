package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestModel(t *testing.T) model {
	t.Helper()
	config := defaultConfig()
	config.SaveDirectory = t.TempDir()
	m := newModel(config, testRNG(11))
	m.viewport.cols, m.viewport.rows = 100, 30
	m.width, m.height = 100, 30+panelHeight
	return m
}

func texts(c *Canvas) []string {
	var out []string
	for _, f := range c.Floaters() {
		out = append(out, f.Text)
	}
	return out
}

func TestUndoRedoAdd(t *testing.T) {
	m := newTestModel(t)
	require.Equal(t, 4, m.submit("Design is my Passion"))

	m.undo()
	assert.Equal(t, 0, m.canvas.Len())

	m.redo()
	assert.Equal(t, []string{"Design", "is", "my", "Passion"}, texts(m.canvas))

	// nothing left to redo
	m.redo()
	assert.Equal(t, 4, m.canvas.Len())
}

func TestUndoDismissRestoresIndex(t *testing.T) {
	m := newTestModel(t)
	added := m.canvas.Submit("a b c")

	removed, index, ok := m.canvas.Dismiss(added[1].ID)
	require.True(t, ok)
	m.recordAction(ActionDismiss, DismissData{Floater: removed, Index: index}, nil)
	assert.Equal(t, []string{"a", "c"}, texts(m.canvas))

	m.undo()
	assert.Equal(t, []string{"a", "b", "c"}, texts(m.canvas))

	m.redo()
	assert.Equal(t, []string{"a", "c"}, texts(m.canvas))
}

func TestUndoClear(t *testing.T) {
	m := newTestModel(t)
	m.submit("one two three")
	before := m.canvas.Floaters()

	m.clearAll()
	assert.Equal(t, 0, m.canvas.Len())

	m.undo()
	assert.Equal(t, before, m.canvas.Floaters())
}

func TestUndoRestyle(t *testing.T) {
	m := newTestModel(t)
	m.submit("style me")
	before := m.canvas.Floaters()

	data := RestyleData{Changes: m.canvas.RestyleAll()}
	m.recordAction(ActionRestyle, data, data)
	after := m.canvas.Floaters()

	m.undo()
	for i, f := range m.canvas.Floaters() {
		assert.Equal(t, before[i].Style, f.Style)
	}

	m.redo()
	for i, f := range m.canvas.Floaters() {
		assert.Equal(t, after[i].Style, f.Style)
	}
}

func TestNewActionClearsRedo(t *testing.T) {
	m := newTestModel(t)
	m.submit("first")
	m.undo()
	require.Len(t, m.redoStack, 1)

	m.submit("second")
	assert.Empty(t, m.redoStack)
	assert.Len(t, m.undoStack, 1)
}

func TestCursorStaysInViewport(t *testing.T) {
	m := newTestModel(t)
	m.handleCursorMove("left", 1)
	assert.Equal(t, 0, m.cursorX)

	m.handleCursorMove("J", m.getMoveSpeed("J"))
	assert.Equal(t, 4, m.cursorY)

	for i := 0; i < 200; i++ {
		m.handleCursorMove("l", 1)
	}
	assert.Equal(t, 99, m.cursorX)
}

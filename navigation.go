package main

func (m *model) handleCursorMove(key string, speed int) {
	switch key {
	case "h", "left", "H", "shift+left":
		m.cursorX -= speed
	case "l", "right", "L", "shift+right":
		m.cursorX += speed
	case "k", "up", "K", "shift+up":
		m.cursorY -= speed
	case "j", "down", "J", "shift+down":
		m.cursorY += speed
	}
	m.ensureCursorInBounds()
}

func (m *model) getMoveSpeed(key string) int {
	switch key {
	case "H", "L", "K", "J", "shift+left", "shift+right", "shift+up", "shift+down":
		return 4
	default:
		return 1
	}
}

func (m *model) ensureCursorInBounds() {
	m.cursorX = max(0, min(m.cursorX, m.viewport.cols-1))
	m.cursorY = max(0, min(m.cursorY, m.viewport.rows-1))
}

// dismissAt removes the top-most floater drawn at the preview cell, if any.
// Only that one floater is affected.
func (m *model) dismissAt(col, row int) bool {
	f, ok := m.canvas.HitCell(col, row)
	if !ok {
		return false
	}
	removed, index, ok := m.canvas.Dismiss(f.ID)
	if !ok {
		return false
	}
	m.recordAction(ActionDismiss, DismissData{Floater: removed, Index: index}, nil)
	return true
}

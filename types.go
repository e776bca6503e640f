package main

import (
	"github.com/charmbracelet/bubbles/textinput"
)

type model struct {
	width           int
	height          int
	cursorX         int
	cursorY         int
	viewport        *viewport
	canvas          *Canvas
	panel           *controlPanel
	rasterizer      Rasterizer
	input           textinput.Model
	pathInput       textinput.Model
	mode            Mode
	help            bool
	helpScroll      int
	backgroundIndex int
	undoStack       []Action
	redoStack       []Action
	confirmAction   ConfirmAction
	exporting       bool
	errorMessage    string
	successMessage  string
	config          *Config
}

// viewport is the preview area in cells. It is shared with the canvas
// surface so bounds follow every resize.
type viewport struct {
	cols int
	rows int
}

func (v *viewport) Bounds() (float64, float64) {
	return float64(v.cols) * cellWidth, float64(v.rows) * cellHeight
}

type Action struct {
	Type    ActionType
	Data    interface{}
	Inverse interface{}
}

type AddData struct {
	Floaters []Floater
}

type DismissData struct {
	Floater Floater
	Index   int
}

type ClearData struct {
	Floaters []Floater
}

type RestyleData struct {
	Changes []StyleChange
}

type frameMsg struct{}

type seedMsg int

type exportDoneMsg struct {
	path string
	err  error
}

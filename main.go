package main

import (
	"fmt"
	"io"
	"log"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

func main() {
	if os.Getenv("MEMEFLOAT_DEBUG") != "" {
		f, err := tea.LogToFile("memefloat-debug.log", "debug")
		if err != nil {
			log.Fatal(err)
		}
		defer f.Close()
	} else {
		log.SetOutput(io.Discard)
	}

	p := tea.NewProgram(
		initialModel(loadConfig()),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	if _, err := p.Run(); err != nil {
		log.SetOutput(os.Stderr)
		log.Fatal(err)
	}
}

func initialModel(config *Config) model {
	seed := uint64(time.Now().UnixNano())
	return newModel(config, rand.New(rand.NewPCG(seed, uint64(os.Getpid()))))
}

func newModel(config *Config, rng *rand.Rand) model {
	vp := &viewport{}

	input := textinput.New()
	input.Prompt = "> "
	input.Placeholder = "type a phrase and press Enter"
	input.CharLimit = 200

	pathInput := textinput.New()
	pathInput.Prompt = "image: "
	pathInput.Placeholder = "path/to/image.png or data:image/png;base64,..."

	return model{
		viewport:   vp,
		canvas:     NewCanvas(newTextSurface(vp.Bounds), config, rng),
		panel:      &controlPanel{},
		rasterizer: newGGRasterizer(),
		input:      input,
		pathInput:  pathInput,
		mode:       ModeNormal,
		config:     config,
	}
}

func frameTick(fps int) tea.Cmd {
	return tea.Tick(time.Second/time.Duration(max(1, fps)), func(time.Time) tea.Msg {
		return frameMsg{}
	})
}

func seedTick(index int) tea.Cmd {
	return tea.Tick(seedInterval*time.Millisecond, func(time.Time) tea.Msg {
		return seedMsg(index)
	})
}

func (m model) Init() tea.Cmd {
	if len(m.config.Seed) == 0 {
		return frameTick(m.config.FPS)
	}
	return tea.Batch(frameTick(m.config.FPS), seedTick(0))
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.viewport.cols = max(0, msg.Width)
		m.viewport.rows = max(0, msg.Height-panelHeight)
		m.input.Width = max(10, msg.Width-4)
		m.pathInput.Width = max(10, msg.Width-10)
		m.ensureCursorInBounds()
		return m, nil

	case frameMsg:
		m.canvas.Step()
		return m, frameTick(m.config.FPS)

	case seedMsg:
		index := int(msg)
		if index >= len(m.config.Seed) {
			return m, nil
		}
		m.canvas.Spawn(m.config.Seed[index])
		if index+1 < len(m.config.Seed) {
			return m, seedTick(index + 1)
		}
		return m, nil

	case exportDoneMsg:
		m.exporting = false
		if msg.err != nil {
			log.Printf("export failed: %v", msg.err)
			m.errorMessage = fmt.Sprintf("Export failed: %v", msg.err)
			m.successMessage = ""
		} else {
			m.successMessage = fmt.Sprintf("Exported %s", msg.path)
			m.errorMessage = ""
		}
		return m, nil

	case tea.MouseMsg:
		if m.help || m.mode != ModeNormal {
			return m, nil
		}
		if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft {
			if msg.Y < m.viewport.rows && m.dismissAt(msg.X, msg.Y) {
				m.successMessage = "Dismissed"
				m.errorMessage = ""
			}
		}
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.help {
			return m.handleHelpKey(msg)
		}
		switch m.mode {
		case ModeTextInput:
			return m.handleTextInput(msg)
		case ModeFileInput:
			return m.handleFileInput(msg)
		case ModeConfirm:
			return m.handleConfirm(msg)
		default:
			return m.handleNormal(msg)
		}
	}

	return m, nil
}

func (m model) handleHelpKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "q", "?":
		m.help = false
		m.helpScroll = 0
	case "j", "down":
		if m.helpScroll < len(helpLines)-1 {
			m.helpScroll++
		}
	case "k", "up":
		if m.helpScroll > 0 {
			m.helpScroll--
		}
	}
	return m, nil
}

func (m model) handleNormal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.errorMessage = ""
	m.successMessage = ""

	key := msg.String()
	switch key {
	case "?":
		m.help = true
		m.helpScroll = 0
	case "q":
		if m.config.Confirmations && m.canvas.Len() > 0 {
			m.mode = ModeConfirm
			m.confirmAction = ConfirmQuit
			return m, nil
		}
		return m, tea.Quit
	case "i", "a", "enter":
		m.mode = ModeTextInput
		m.input.Reset()
		cmd := m.input.Focus()
		return m, cmd
	case "o":
		m.mode = ModeFileInput
		m.pathInput.Reset()
		cmd := m.pathInput.Focus()
		return m, cmd
	case "r":
		changes := m.canvas.RestyleAll()
		if len(changes) > 0 {
			data := RestyleData{Changes: changes}
			m.recordAction(ActionRestyle, data, data)
		}
	case "c":
		if m.canvas.Len() == 0 {
			return m, nil
		}
		if m.config.Confirmations {
			m.mode = ModeConfirm
			m.confirmAction = ConfirmClear
			return m, nil
		}
		m.clearAll()
	case "b":
		m.cycleBackground(1)
	case "B":
		m.cycleBackground(-1)
	case "s":
		cmd := m.startExport()
		return m, cmd
	case "p":
		text, err := readClipboardText()
		if err != nil {
			m.errorMessage = fmt.Sprintf("Clipboard: %v", err)
			return m, nil
		}
		if n := m.submit(cleanClipboardText(text)); n == 0 {
			m.errorMessage = "Clipboard is empty"
		} else {
			m.successMessage = fmt.Sprintf("Pasted %d fragment(s)", n)
		}
	case "d":
		if m.dismissAt(m.cursorX, m.cursorY) {
			m.successMessage = "Dismissed"
		}
	case "u":
		m.undo()
	case "U":
		m.redo()
	case "h", "j", "k", "l", "left", "right", "up", "down",
		"H", "J", "K", "L", "shift+left", "shift+right", "shift+up", "shift+down":
		m.handleCursorMove(key, m.getMoveSpeed(key))
	}
	return m, nil
}

func (m model) handleTextInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = ModeNormal
		m.input.Blur()
		return m, nil
	case "enter":
		m.submit(m.input.Value())
		m.input.Reset()
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m model) handleFileInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = ModeNormal
		m.errorMessage = ""
		m.pathInput.Blur()
		return m, nil
	case "enter":
		value := strings.TrimSpace(m.pathInput.Value())
		if value == "" {
			m.mode = ModeNormal
			m.pathInput.Blur()
			return m, nil
		}
		bg, err := loadBackgroundInput(value)
		if err != nil {
			log.Printf("background: %v", err)
			m.errorMessage = err.Error()
			return m, nil
		}
		m.canvas.SetBackground(bg)
		m.mode = ModeNormal
		m.pathInput.Blur()
		m.errorMessage = ""
		m.successMessage = fmt.Sprintf("Background: %s", backgroundLabel(bg))
		return m, nil
	}
	var cmd tea.Cmd
	m.pathInput, cmd = m.pathInput.Update(msg)
	return m, cmd
}

func (m model) handleConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		m.mode = ModeNormal
		switch m.confirmAction {
		case ConfirmClear:
			m.clearAll()
		case ConfirmQuit:
			return m, tea.Quit
		}
	case "n", "N", "esc":
		m.mode = ModeNormal
	}
	return m, nil
}

// submit adds the fragments of one phrase as a single undoable action and
// reports how many were added.
func (m *model) submit(text string) int {
	added := m.canvas.Submit(text)
	if len(added) > 0 {
		m.recordAction(ActionAdd, AddData{Floaters: added}, nil)
	}
	return len(added)
}

func (m *model) clearAll() {
	removed := m.canvas.Clear()
	if len(removed) > 0 {
		m.recordAction(ActionClear, ClearData{Floaters: removed}, nil)
	}
}

func (m *model) cycleBackground(delta int) {
	n := len(backgroundPresets)
	m.backgroundIndex = ((m.backgroundIndex+delta)%n + n) % n
	m.canvas.SetBackground(backgroundPresets[m.backgroundIndex])
}

// startExport snapshots the canvas now and rasterizes it off the update
// loop. A second request while one is running is ignored.
func (m *model) startExport() tea.Cmd {
	if m.exporting {
		return nil
	}
	snap, err := m.canvas.Snapshot()
	if err != nil {
		m.errorMessage = fmt.Sprintf("Export failed: %v", err)
		return nil
	}
	m.exporting = true
	m.successMessage = "Exporting..."

	panel, rasterizer, config := m.panel, m.rasterizer, m.config
	return func() tea.Msg {
		data, err := captureAsImage(panel, rasterizer, snap, config.ExportScale)
		if err != nil {
			return exportDoneMsg{err: err}
		}
		path := config.GetSavePath(exportFilename(time.Now()))
		if err := writeExport(path, data); err != nil {
			return exportDoneMsg{err: err}
		}
		return exportDoneMsg{path: path}
	}
}

// loadBackgroundInput accepts a data URI or a path to an image file.
func loadBackgroundInput(value string) (ImageBackground, error) {
	if strings.HasPrefix(value, "data:") {
		return ParseDataURI(value)
	}
	if strings.HasPrefix(value, "~") {
		if home, err := os.UserHomeDir(); err == nil {
			value = filepath.Join(home, strings.TrimPrefix(value, "~"))
		}
	}
	abs, err := filepath.Abs(value)
	if err != nil {
		return ImageBackground{}, fmt.Errorf("resolve %s: %w", value, err)
	}
	bg, err := LoadBackgroundImage(os.DirFS(filepath.Dir(abs)), filepath.Base(abs))
	if err != nil {
		return ImageBackground{}, err
	}
	bg.Source = abs
	return bg, nil
}

func backgroundLabel(bg Background) string {
	if img, ok := bg.(ImageBackground); ok && !strings.HasPrefix(img.Source, "data:") {
		return filepath.Base(img.Source)
	}
	return bg.Name()
}

var panelStyle = lipgloss.NewStyle().Faint(true)

func (m model) View() string {
	if m.help {
		return m.helpView()
	}

	lines := m.canvas.Render(m.viewport.cols, m.viewport.rows, m.cursorX, m.cursorY, m.mode == ModeNormal)

	var result strings.Builder
	result.WriteString(strings.Join(lines, "\n"))

	// The panel keeps its rows while hidden so the preview does not jump.
	if m.panel.Hidden() {
		result.WriteString("\n\n")
		return result.String()
	}

	var inputLine string
	switch m.mode {
	case ModeTextInput:
		inputLine = m.input.View()
	case ModeFileInput:
		inputLine = m.pathInput.View()
	default:
		inputLine = panelStyle.Render("i=add phrase  p=paste  r=restyle  b/B=background  o=image  s=export  d=dismiss  c=clear")
	}

	var statusLine string
	switch m.mode {
	case ModeTextInput:
		statusLine = "Mode: TEXT | Enter=add, Esc=done"
	case ModeFileInput:
		if m.errorMessage != "" {
			statusLine = fmt.Sprintf("Mode: FILE | ERROR: %s | Enter=retry, Esc=cancel", m.errorMessage)
		} else {
			statusLine = "Mode: FILE | Background image or data URI | Enter=load, Esc=cancel"
		}
	case ModeConfirm:
		var message string
		switch m.confirmAction {
		case ConfirmClear:
			message = fmt.Sprintf("Clear all %d floaters? (y/n)", m.canvas.Len())
		case ConfirmQuit:
			message = "Quit memefloat? (y/n)"
		}
		statusLine = fmt.Sprintf("Mode: CONFIRM | %s", message)
	default:
		status := fmt.Sprintf("Mode: %s | Floaters: %d | Background: %s",
			m.modeString(), m.canvas.Len(), backgroundLabel(m.canvas.Background()))
		if m.successMessage != "" {
			status += fmt.Sprintf(" | %s", m.successMessage)
		}
		if m.errorMessage != "" {
			status += fmt.Sprintf(" | ERROR: %s", m.errorMessage)
		} else if m.successMessage == "" {
			status += " | ? for help | q to quit"
		}
		statusLine = status
	}

	if len(lines) > 0 {
		result.WriteString("\n")
	}
	result.WriteString(inputLine)
	result.WriteString("\n")
	result.WriteString(statusLine)
	return result.String()
}

func (m model) modeString() string {
	switch m.mode {
	case ModeNormal:
		return "NORMAL"
	case ModeTextInput:
		return "TEXT"
	case ModeFileInput:
		return "FILE"
	case ModeConfirm:
		return "CONFIRM"
	default:
		return "UNKNOWN"
	}
}

var helpLines = []string{
	"memefloat Help",
	"==============",
	"",
	"Phrases:",
	"--------",
	"  i/a/Enter        Type a phrase; Enter adds it, Esc returns to normal mode",
	"  p                Paste a phrase from the clipboard",
	"                   - Phrases with spaces split on the spaces",
	"                   - Phrases without spaces split into words or characters",
	"",
	"Floaters:",
	"---------",
	"  r                Re-roll the style of every floater",
	"  d                Dismiss the floater under the cursor",
	"  Left click       Dismiss the floater under the pointer",
	"  c                Clear everything",
	"",
	"Background:",
	"-----------",
	"  b / B            Next / previous background preset",
	"  o                Load a background image (file path or data: URI)",
	"",
	"Export:",
	"-------",
	"  s                Export the canvas as PNG (meme-YYYYMMDD-HHMMSS.png)",
	"",
	"Navigation:",
	"-----------",
	"  h/←/j/↓/k/↑/l/→  Move cursor around the preview",
	"  Shift+h/j/k/l    Move cursor 4x faster",
	"",
	"General:",
	"  u                Undo last action",
	"  U                Redo last undone action",
	"  ?                Toggle this help screen",
	"  q/Ctrl+C         Quit",
	"",
	"Settings live in ~/.memefloatrc (key = value).",
}

func (m model) helpView() string {
	visibleHeight := max(1, m.height-1)

	startLine := m.helpScroll
	if startLine > len(helpLines)-visibleHeight {
		startLine = max(0, len(helpLines)-visibleHeight)
	}
	endLine := min(len(helpLines), startLine+visibleHeight)

	result := strings.Join(helpLines[startLine:endLine], "\n")
	statusLine := fmt.Sprintf("Help (%d-%d of %d lines) | j/k to scroll, Esc to close",
		startLine+1, endLine, len(helpLines))
	return result + "\n" + statusLine
}

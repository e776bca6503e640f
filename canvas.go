package main

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"math/rand/v2"
	"strings"
	"sync"

	"github.com/charmbracelet/harmonica"
	"github.com/charmbracelet/lipgloss"
	"github.com/deeean/go-vector/vector2"
	"github.com/google/uuid"
	"github.com/jinzhu/copier"
	"github.com/rivo/uniseg"
	"golang.org/x/exp/slices"
	"golang.org/x/image/draw"
)

// Canvas owns the live floater set and the background. All mutation goes
// through its methods; the lock lets an export goroutine read a consistent
// snapshot while the frame loop keeps running.
type Canvas struct {
	mu         sync.RWMutex
	floaters   []*Floater
	background Background
	surface    Surface
	rng        *rand.Rand
	spring     harmonica.Spring
	config     *Config
}

func NewCanvas(surface Surface, config *Config, rng *rand.Rand) *Canvas {
	if config == nil {
		config = defaultConfig()
	}
	return &Canvas{
		floaters:   make([]*Floater, 0),
		background: backgroundPresets[0],
		surface:    surface,
		rng:        rng,
		spring:     harmonica.NewSpring(harmonica.FPS(config.FPS), 8.0, 0.45),
		config:     config,
	}
}

// Submit segments a phrase and spawns one floater per fragment, in order.
// An empty phrase adds nothing.
func (c *Canvas) Submit(text string) []Floater {
	c.mu.Lock()
	defer c.mu.Unlock()

	fragments := Segment(text, c.config.Segmentation, c.rng)
	added := make([]Floater, 0, len(fragments))
	for _, fragment := range fragments {
		added = append(added, *c.spawnLocked(fragment))
	}
	return added
}

// Spawn adds a single floater for text without segmenting it.
func (c *Canvas) Spawn(text string) (Floater, bool) {
	if text == "" {
		return Floater{}, false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return *c.spawnLocked(text), true
}

func (c *Canvas) spawnLocked(text string) *Floater {
	w, _ := c.surface.Bounds()
	speed := c.config.MaxSpeed
	f := &Floater{
		ID:    uuid.New(),
		Text:  text,
		Style: randomStyle(c.rng, w),
		Velocity: vector2.Vector2{
			X: uniform(c.rng, -speed, speed),
			Y: uniform(c.rng, -speed, speed),
		},
		Appear: 1,
	}
	c.placeLocked(f)
	f.Appear = appearStart
	c.floaters = append(c.floaters, f)
	return f
}

// Dismiss removes exactly the floater with id. It returns the removed value
// and its index so the removal can be undone.
func (c *Canvas) Dismiss(id uuid.UUID) (Floater, int, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	idx := slices.IndexFunc(c.floaters, func(f *Floater) bool { return f.ID == id })
	if idx < 0 {
		return Floater{}, -1, false
	}
	removed := *c.floaters[idx]
	c.floaters = slices.Delete(c.floaters, idx, idx+1)
	return removed, idx, true
}

// Clear empties the live set and returns what was removed.
func (c *Canvas) Clear() []Floater {
	c.mu.Lock()
	defer c.mu.Unlock()

	removed := make([]Floater, len(c.floaters))
	for i, f := range c.floaters {
		removed[i] = *f
	}
	c.floaters = c.floaters[:0]
	return removed
}

// Insert puts f back at index, clamped to the current length. A floater whose
// ID is already live is ignored.
func (c *Canvas) Insert(f Floater, index int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if slices.ContainsFunc(c.floaters, func(live *Floater) bool { return live.ID == f.ID }) {
		return
	}
	index = max(0, min(index, len(c.floaters)))
	restored := f
	c.floaters = slices.Insert(c.floaters, index, &restored)
}

type StyleChange struct {
	ID       uuid.UUID
	Old, New Style
}

// Restyle re-samples style and transform for one floater. Text and position
// are left untouched.
func (c *Canvas) Restyle(id uuid.UUID) (StyleChange, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, f := range c.floaters {
		if f.ID == id {
			return c.restyleLocked(f), true
		}
	}
	return StyleChange{}, false
}

func (c *Canvas) RestyleAll() []StyleChange {
	c.mu.Lock()
	defer c.mu.Unlock()

	changes := make([]StyleChange, 0, len(c.floaters))
	for _, f := range c.floaters {
		changes = append(changes, c.restyleLocked(f))
	}
	return changes
}

func (c *Canvas) restyleLocked(f *Floater) StyleChange {
	w, _ := c.surface.Bounds()
	old := f.Style
	f.Style = randomStyle(c.rng, w)
	return StyleChange{ID: f.ID, Old: old, New: f.Style}
}

// SetStyle forces a style, used when undoing or redoing a restyle.
func (c *Canvas) SetStyle(id uuid.UUID, style Style) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, f := range c.floaters {
		if f.ID == id {
			f.Style = style
			return true
		}
	}
	return false
}

func (c *Canvas) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.floaters)
}

// Floaters returns copies of the live floaters in paint order.
func (c *Canvas) Floaters() []Floater {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]Floater, len(c.floaters))
	for i, f := range c.floaters {
		out[i] = *f
	}
	return out
}

func (c *Canvas) Get(id uuid.UUID) (Floater, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, f := range c.floaters {
		if f.ID == id {
			return *f, true
		}
	}
	return Floater{}, false
}

// Box returns the floater's current measured bounding box.
func (c *Canvas) Box(id uuid.UUID) (Rect, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, f := range c.floaters {
		if f.ID == id {
			return c.boxLocked(f), true
		}
	}
	return Rect{}, false
}

func (c *Canvas) boxLocked(f *Floater) Rect {
	w, h := c.surface.Measure(f)
	return Rect{X: f.Position.X, Y: f.Position.Y, W: w, H: h}
}

func (c *Canvas) SetBackground(bg Background) {
	if bg == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.background = bg
}

func (c *Canvas) Background() Background {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.background
}

func (c *Canvas) Bounds() (float64, float64) {
	return c.surface.Bounds()
}

// Snapshot is everything the rasterizer needs, detached from the live set.
type Snapshot struct {
	Width, Height float64
	Background    Background
	Floaters      []Floater
	Boxes         []Rect
}

func (c *Canvas) Snapshot() (Snapshot, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	w, h := c.surface.Bounds()
	snap := Snapshot{
		Width:      w,
		Height:     h,
		Background: c.background,
		Floaters:   make([]Floater, len(c.floaters)),
		Boxes:      make([]Rect, len(c.floaters)),
	}
	for i, f := range c.floaters {
		// Floater holds only value types, so a field copy fully detaches it.
		if err := copier.Copy(&snap.Floaters[i], f); err != nil {
			return Snapshot{}, fmt.Errorf("copy floater %s: %w", f.ID, err)
		}
		snap.Boxes[i] = c.boxLocked(f)
	}
	return snap, nil
}

// cellSpan is where a floater shows up in the terminal preview: one row, text
// centered on its box.
func cellSpan(box Rect, text string) (row, col, width int) {
	width = uniseg.StringWidth(text)
	row = int(math.Floor((box.Y + box.H/2) / cellHeight))
	col = int(math.Round((box.X+box.W/2)/cellWidth)) - width/2
	return row, col, width
}

// HitCell returns the top-most floater drawn at the given preview cell.
func (c *Canvas) HitCell(col, row int) (Floater, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for i := len(c.floaters) - 1; i >= 0; i-- {
		f := c.floaters[i]
		r, c0, w := cellSpan(c.boxLocked(f), f.Text)
		if row == r && col >= c0 && col < c0+w {
			return *f, true
		}
	}
	return Floater{}, false
}

type previewCell struct {
	text    string
	fg, bg  color.RGBA
	bold    bool
	reverse bool
	skip    bool // covered by the wide grapheme to its left
}

func hexColor(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// Render draws the terminal preview: the background sampled per cell and
// every floater's text in its fill color.
func (c *Canvas) Render(cols, rows, cursorX, cursorY int, showCursor bool) []string {
	if cols <= 0 || rows <= 0 {
		return nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	grid := make([][]previewCell, rows)
	w, h := float64(cols)*cellWidth, float64(rows)*cellHeight
	var scaled *image.RGBA
	if img, ok := c.background.(ImageBackground); ok {
		scaled = coverImage(img.Image, cols, rows, draw.ApproxBiLinear)
	}
	for y := range grid {
		grid[y] = make([]previewCell, cols)
		for x := range grid[y] {
			var bg color.RGBA
			if scaled != nil {
				bg = scaled.RGBAAt(x, y)
			} else {
				bg = backgroundColorAt(c.background, (float64(x)+0.5)*cellWidth, (float64(y)+0.5)*cellHeight, w, h)
			}
			grid[y][x] = previewCell{text: " ", fg: bg, bg: bg}
		}
	}

	for _, f := range c.floaters {
		row, col, _ := cellSpan(c.boxLocked(f), f.Text)
		if row < 0 || row >= rows {
			continue
		}
		chip, isChip := f.Style.Decoration.(Chip)
		gr := uniseg.NewGraphemes(f.Text)
		for gr.Next() {
			width := max(1, gr.Width())
			if col >= 0 && col+width <= cols {
				cell := &grid[row][col]
				cell.text = gr.Str()
				cell.fg = f.Style.Fill
				cell.bold = true
				cell.skip = false
				if isChip {
					cell.bg = chip.Color
				}
				for k := 1; k < width; k++ {
					grid[row][col+k].skip = true
				}
			}
			col += width
		}
	}

	if showCursor && cursorY >= 0 && cursorY < rows && cursorX >= 0 && cursorX < cols {
		grid[cursorY][cursorX].reverse = true
	}

	lines := make([]string, rows)
	for y, row := range grid {
		lines[y] = renderRow(row)
	}
	return lines
}

// renderRow joins runs of identically styled cells so lipgloss emits one
// escape sequence per run instead of per cell.
func renderRow(row []previewCell) string {
	var out strings.Builder
	var run strings.Builder
	var current previewCell
	flush := func() {
		if run.Len() == 0 {
			return
		}
		style := lipgloss.NewStyle().
			Foreground(lipgloss.Color(hexColor(current.fg))).
			Background(lipgloss.Color(hexColor(current.bg))).
			Bold(current.bold).
			Reverse(current.reverse)
		out.WriteString(style.Render(run.String()))
		run.Reset()
	}
	for i, cell := range row {
		if cell.skip {
			continue
		}
		if i == 0 || cell.fg != current.fg || cell.bg != current.bg || cell.bold != current.bold || cell.reverse != current.reverse {
			flush()
			current = cell
		}
		run.WriteString(cell.text)
	}
	flush()
	return out.String()
}

package main

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fogleman/gg"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
)

var errNothingToExport = errors.New("nothing to export")

// Rasterizer turns a snapshot into pixels at scale times its canvas size.
type Rasterizer interface {
	Rasterize(snap Snapshot, scale float64) (image.Image, error)
}

// OverlayToggler hides the control panel while a capture runs.
type OverlayToggler interface {
	HideOverlays()
	ShowOverlays()
}

// controlPanel is shared by every copy of the model; the export goroutine
// flips it while Update keeps reading it.
type controlPanel struct {
	hidden atomic.Bool
}

func (p *controlPanel) HideOverlays() { p.hidden.Store(true) }
func (p *controlPanel) ShowOverlays() { p.hidden.Store(false) }
func (p *controlPanel) Hidden() bool  { return p.hidden.Load() }

// captureAsImage renders snap to PNG bytes with the overlays hidden. The
// overlays come back whether or not the rasterizer succeeds.
func captureAsImage(overlays OverlayToggler, r Rasterizer, snap Snapshot, scale float64) (data []byte, err error) {
	overlays.HideOverlays()
	defer overlays.ShowOverlays()

	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("rasterizer panicked: %v", p)
		}
	}()

	img, err := r.Rasterize(snap, scale)
	if err != nil {
		return nil, fmt.Errorf("rasterize: %w", err)
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

func exportFilename(now time.Time) string {
	return fmt.Sprintf("meme-%s.png", now.Format("20060102-150405"))
}

func writeExport(path string, data []byte) error {
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// ggRasterizer draws with fogleman/gg. Calls are serialized because the
// font faces in its book are not safe for concurrent use.
type ggRasterizer struct {
	mu   sync.Mutex
	book *fontBook
}

func newGGRasterizer() *ggRasterizer {
	return &ggRasterizer{book: newFontBook()}
}

func (r *ggRasterizer) Rasterize(snap Snapshot, scale float64) (image.Image, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if scale <= 0 {
		scale = 1
	}
	width := int(math.Round(snap.Width * scale))
	height := int(math.Round(snap.Height * scale))
	if width <= 0 || height <= 0 {
		return nil, errNothingToExport
	}

	dc := gg.NewContext(width, height)
	r.drawBackground(dc, snap.Background)

	for i := range snap.Floaters {
		if err := r.drawFloater(dc, &snap.Floaters[i], snap.Boxes[i], scale); err != nil {
			return nil, err
		}
	}
	return dc.Image(), nil
}

func (r *ggRasterizer) drawBackground(dc *gg.Context, bg Background) {
	w, h := float64(dc.Width()), float64(dc.Height())
	switch b := bg.(type) {
	case SolidBackground:
		dc.SetColor(b.Color)
		dc.Clear()
	case LinearBackground:
		x0, y0, x1, y1 := linearEndpoints(b.Angle, w, h)
		grad := gg.NewLinearGradient(x0, y0, x1, y1)
		grad.AddColorStop(0, b.From)
		grad.AddColorStop(1, b.To)
		dc.SetFillStyle(grad)
		dc.DrawRectangle(0, 0, w, h)
		dc.Fill()
	case RadialBackground:
		grad := gg.NewRadialGradient(w/2, h/2, 0, w/2, h/2, math.Hypot(w, h)/2)
		grad.AddColorStop(0, b.Inner)
		grad.AddColorStop(1, b.Outer)
		dc.SetFillStyle(grad)
		dc.DrawRectangle(0, 0, w, h)
		dc.Fill()
	case ImageBackground:
		dc.DrawImage(coverImage(b.Image, dc.Width(), dc.Height(), draw.CatmullRom), 0, 0)
	default:
		dc.SetColor(color.White)
		dc.Clear()
	}
}

// applyFloaterMatrix sets dc so that (0, 0) is the center of the floater's
// box and local units are the floater's own, scaled pixels.
func applyFloaterMatrix(dc *gg.Context, f *Floater, box Rect, scale float64) {
	t := f.Style.Transform
	appear := f.appearFactor()
	dc.Identity()
	dc.Translate((box.X+box.W/2)*scale, (box.Y+box.H/2)*scale)
	dc.Rotate(gg.Radians(t.Rotation))
	dc.Shear(math.Tan(gg.Radians(t.SkewX)), 0)
	dc.Scale(t.ScaleX*appear, t.ScaleY*appear)
}

func (r *ggRasterizer) drawFloater(dc *gg.Context, f *Floater, box Rect, scale float64) error {
	face, err := r.book.Face(f.Style.Font, f.Style.Size*scale)
	if err != nil {
		return err
	}

	dc.Push()
	defer dc.Pop()
	applyFloaterMatrix(dc, f, box, scale)
	dc.SetFontFace(face)
	tw, th := dc.MeasureString(f.Text)

	switch d := f.Style.Decoration.(type) {
	case Stroke:
		dc.SetColor(d.Color)
		drawRing(dc, f.Text, d.Width*scale)
		dc.SetColor(f.Style.Fill)
		dc.DrawStringAnchored(f.Text, 0, 0, 0.5, 0.5)
	case Gradient:
		r.drawGradientText(dc, f, box, scale, face, tw, d)
	case Shadow:
		dc.SetColor(d.Color)
		dc.DrawStringAnchored(f.Text, d.DX*scale, d.DY*scale, 0.5, 0.5)
		dc.SetColor(f.Style.Fill)
		dc.DrawStringAnchored(f.Text, 0, 0, 0.5, 0.5)
	case Chip:
		pad := d.Padding * scale
		dc.SetColor(d.Color)
		dc.DrawRoundedRectangle(-tw/2-pad, -th/2-pad, tw+2*pad, th+2*pad, d.Radius*scale)
		dc.Fill()
		dc.SetColor(f.Style.Fill)
		dc.DrawStringAnchored(f.Text, 0, 0, 0.5, 0.5)
	case Outline:
		r.drawOutlineText(dc, f, box, scale, face, d)
	default:
		dc.SetColor(f.Style.Fill)
		dc.DrawStringAnchored(f.Text, 0, 0, 0.5, 0.5)
	}
	return nil
}

const ringSteps = 16

// drawRing stamps the text around a circle of radius width, the usual way to
// fake a glyph stroke with a fill-only text renderer.
func drawRing(dc *gg.Context, text string, width float64) {
	for i := 0; i < ringSteps; i++ {
		sin, cos := math.Sincos(2 * math.Pi * float64(i) / ringSteps)
		dc.DrawStringAnchored(text, cos*width, sin*width, 0.5, 0.5)
	}
}

// textMask returns a transparent context the size of dc, set up with the
// floater's transform and face, for drawing alpha-only text.
func textMask(dc *gg.Context, f *Floater, box Rect, scale float64, face font.Face) *gg.Context {
	mc := gg.NewContext(dc.Width(), dc.Height())
	applyFloaterMatrix(mc, f, box, scale)
	mc.SetFontFace(face)
	mc.SetColor(color.Black)
	return mc
}

func (r *ggRasterizer) drawGradientText(dc *gg.Context, f *Floater, box Rect, scale float64, face font.Face, tw float64, d Gradient) {
	mc := textMask(dc, f, box, scale, face)
	mc.DrawStringAnchored(f.Text, 0, 0, 0.5, 0.5)

	sin, cos := math.Sincos(gg.Radians(d.Angle))
	x0, y0 := mc.TransformPoint(-cos*tw/2, -sin*tw/2)
	x1, y1 := mc.TransformPoint(cos*tw/2, sin*tw/2)
	grad := gg.NewLinearGradient(x0, y0, x1, y1)
	grad.AddColorStop(0, f.Style.Fill)
	grad.AddColorStop(1, d.To)

	fillMasked(dc, mc.AsMask(), grad)
}

func (r *ggRasterizer) drawOutlineText(dc *gg.Context, f *Floater, box Rect, scale float64, face font.Face, d Outline) {
	outer := textMask(dc, f, box, scale, face)
	drawRing(outer, f.Text, d.Width*scale)

	inner := textMask(dc, f, box, scale, face)
	inner.DrawStringAnchored(f.Text, 0, 0, 0.5, 0.5)

	fillMasked(dc, subtractMask(outer.AsMask(), inner.AsMask()), gg.NewSolidPattern(d.Color))
}

// fillMasked paints pattern through mask in device space, leaving dc's own
// transform untouched.
func fillMasked(dc *gg.Context, mask *image.Alpha, pattern gg.Pattern) {
	dc.Push()
	defer dc.Pop()
	dc.Identity()
	if err := dc.SetMask(mask); err != nil {
		return
	}
	dc.SetFillStyle(pattern)
	dc.DrawRectangle(0, 0, float64(dc.Width()), float64(dc.Height()))
	dc.Fill()
	dc.ResetClip()
}

// subtractMask keeps the part of outer not covered by inner.
func subtractMask(outer, inner *image.Alpha) *image.Alpha {
	out := image.NewAlpha(outer.Bounds())
	for i, a := range outer.Pix {
		if b := inner.Pix[i]; a > b {
			out.Pix[i] = a - b
		}
	}
	return out
}

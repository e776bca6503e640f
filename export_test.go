package main

import (
	"bytes"
	"errors"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRasterizer struct {
	panel     *controlPanel
	sawHidden bool
	err       error
	panic     bool
}

func (r *fakeRasterizer) Rasterize(snap Snapshot, scale float64) (image.Image, error) {
	r.sawHidden = r.panel.Hidden()
	if r.panic {
		panic("boom")
	}
	if r.err != nil {
		return nil, r.err
	}
	return image.NewRGBA(image.Rect(0, 0, int(snap.Width*scale), int(snap.Height*scale))), nil
}

func TestCaptureHidesAndRestoresOverlays(t *testing.T) {
	panel := &controlPanel{}
	r := &fakeRasterizer{panel: panel}

	data, err := captureAsImage(panel, r, Snapshot{Width: 10, Height: 5}, 2)
	require.NoError(t, err)
	assert.True(t, r.sawHidden)
	assert.False(t, panel.Hidden())

	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 20, 10), img.Bounds())
}

func TestCaptureRestoresOverlaysOnFailure(t *testing.T) {
	panel := &controlPanel{}
	boom := errors.New("no pixels")

	_, err := captureAsImage(panel, &fakeRasterizer{panel: panel, err: boom}, Snapshot{Width: 10, Height: 5}, 1)
	assert.ErrorIs(t, err, boom)
	assert.False(t, panel.Hidden())

	_, err = captureAsImage(panel, &fakeRasterizer{panel: panel, panic: true}, Snapshot{Width: 10, Height: 5}, 1)
	assert.Error(t, err)
	assert.False(t, panel.Hidden())
}

func decorated(text string, d Decoration, x, y float64) Floater {
	f := floaterAt(text, x, y)
	f.Style.Decoration = d
	f.Style.Font = FontBold
	f.Style.Transform = Transform{Rotation: 12, ScaleX: 1.1, ScaleY: 0.9, SkewX: 5}
	return f
}

func TestGGRasterizerDrawsEveryDecoration(t *testing.T) {
	vp := &viewport{cols: 40, rows: 12}
	c := NewCanvas(newTextSurface(vp.Bounds), defaultConfig(), testRNG(5))
	c.SetBackground(backgroundPresets[3])

	decorations := []Decoration{
		Stroke{Width: 2, Color: rgb(0x000000)},
		Gradient{Angle: 30, To: rgb(0x00ff00)},
		Shadow{DX: 3, DY: 3, Color: rgb(0x333333)},
		Distort{},
		Chip{Color: rgb(0xffff00), Padding: 4, Radius: 5},
		Outline{Width: 2, Color: rgb(0x0000ff)},
	}
	for i, d := range decorations {
		c.Insert(decorated("meme", d, float64(20+i*40), float64(20+i*20)), i)
	}

	snap, err := c.Snapshot()
	require.NoError(t, err)

	img, err := newGGRasterizer().Rasterize(snap, 1.5)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 480, 288), img.Bounds())
}

func TestGGRasterizerEachBackground(t *testing.T) {
	bg := ImageBackground{Source: "test", Image: image.NewRGBA(image.Rect(0, 0, 3, 3))}
	for _, b := range append(append([]Background{}, backgroundPresets...), bg) {
		img, err := newGGRasterizer().Rasterize(Snapshot{Width: 16, Height: 8, Background: b}, 1)
		require.NoError(t, err, b.Name())
		assert.Equal(t, 16, img.Bounds().Dx())
	}
}

func TestGGRasterizerEmptyCanvas(t *testing.T) {
	_, err := newGGRasterizer().Rasterize(Snapshot{Background: backgroundPresets[0]}, 2)
	assert.ErrorIs(t, err, errNothingToExport)
}

func TestExportFilenameAndWrite(t *testing.T) {
	name := exportFilename(time.Date(2024, 3, 9, 14, 5, 7, 0, time.UTC))
	assert.Equal(t, "meme-20240309-140507.png", name)

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, writeExport(path, []byte("png")))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []byte("png"), data)

	assert.Error(t, writeExport(filepath.Join(t.TempDir(), "missing", name), nil))
}

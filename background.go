package main

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io/fs"
	"math"
	"net/url"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

var (
	errEmptyDataURI       = errors.New("empty data URI")
	errUnsupportedDataURI = errors.New("not an image data URI")
)

// Background is one of SolidBackground, LinearBackground, RadialBackground
// or ImageBackground.
type Background interface {
	Name() string
	isBackground()
}

type SolidBackground struct {
	Label string
	Color color.RGBA
}

type LinearBackground struct {
	Label    string
	Angle    float64 // degrees, 0 runs left to right
	From, To color.RGBA
}

type RadialBackground struct {
	Label        string
	Inner, Outer color.RGBA
}

type ImageBackground struct {
	Source string
	Image  image.Image
}

func (b SolidBackground) Name() string  { return b.Label }
func (b LinearBackground) Name() string { return b.Label }
func (b RadialBackground) Name() string { return b.Label }
func (b ImageBackground) Name() string  { return b.Source }

func (SolidBackground) isBackground()  {}
func (LinearBackground) isBackground() {}
func (RadialBackground) isBackground() {}
func (ImageBackground) isBackground()  {}

func rgb(hex uint32) color.RGBA {
	return color.RGBA{uint8(hex >> 16), uint8(hex >> 8), uint8(hex), 255}
}

var backgroundPresets = []Background{
	SolidBackground{Label: "white", Color: rgb(0xffffff)},
	LinearBackground{Label: "sunset", Angle: 45, From: rgb(0xff0000), To: rgb(0xffcc00)},
	LinearBackground{Label: "mint", Angle: 45, From: rgb(0x00f260), To: rgb(0x0575e6)},
	RadialBackground{Label: "neon", Inner: rgb(0xff00cc), Outer: rgb(0x333399)},
	SolidBackground{Label: "black", Color: rgb(0x000000)},
}

// LoadBackgroundImage decodes a PNG, JPEG, GIF or WebP file from fsys.
func LoadBackgroundImage(fsys fs.FS, name string) (ImageBackground, error) {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return ImageBackground{}, fmt.Errorf("read background %s: %w", name, err)
	}
	return decodeBackground(data, name)
}

// ParseDataURI accepts data:image/...;base64,... and percent-encoded data
// URIs.
func ParseDataURI(uri string) (ImageBackground, error) {
	uri = strings.TrimSpace(uri)
	rest, ok := strings.CutPrefix(uri, "data:")
	if !ok {
		return ImageBackground{}, errUnsupportedDataURI
	}
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok || payload == "" {
		return ImageBackground{}, errEmptyDataURI
	}

	isBase64 := strings.HasSuffix(meta, ";base64")
	mediaType := strings.TrimSuffix(meta, ";base64")
	if i := strings.Index(mediaType, ";"); i >= 0 {
		mediaType = mediaType[:i]
	}
	if !strings.HasPrefix(mediaType, "image/") {
		return ImageBackground{}, fmt.Errorf("%w: %q", errUnsupportedDataURI, mediaType)
	}

	var data []byte
	var err error
	if isBase64 {
		data, err = base64.StdEncoding.DecodeString(payload)
		if err != nil {
			data, err = base64.RawStdEncoding.DecodeString(payload)
		}
	} else {
		var s string
		s, err = url.PathUnescape(payload)
		data = []byte(s)
	}
	if err != nil {
		return ImageBackground{}, fmt.Errorf("decode data URI: %w", err)
	}
	return decodeBackground(data, "data:"+mediaType)
}

func decodeBackground(data []byte, source string) (ImageBackground, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return ImageBackground{}, fmt.Errorf("decode background %s: %w", source, err)
	}
	if b := img.Bounds(); b.Dx() == 0 || b.Dy() == 0 {
		return ImageBackground{}, fmt.Errorf("decode background %s: empty image", source)
	}
	return ImageBackground{Source: source, Image: img}, nil
}

// linearEndpoints returns the gradient line through the center of a w x h
// area, long enough that both corners along the angle get the end colors.
func linearEndpoints(angle, w, h float64) (x0, y0, x1, y1 float64) {
	sin, cos := math.Sincos(angle * math.Pi / 180)
	extent := (math.Abs(cos)*w + math.Abs(sin)*h) / 2
	cx, cy := w/2, h/2
	return cx - cos*extent, cy - sin*extent, cx + cos*extent, cy + sin*extent
}

func blend(a, b color.RGBA, t float64) color.RGBA {
	t = math.Max(0, math.Min(1, t))
	ca, _ := colorful.MakeColor(a)
	cb, _ := colorful.MakeColor(b)
	r, g, bl := ca.BlendRgb(cb, t).Clamped().RGB255()
	return color.RGBA{r, g, bl, 255}
}

// backgroundColorAt samples a non-image background at (x, y) of a w x h area.
func backgroundColorAt(bg Background, x, y, w, h float64) color.RGBA {
	switch b := bg.(type) {
	case SolidBackground:
		return b.Color
	case LinearBackground:
		x0, y0, x1, y1 := linearEndpoints(b.Angle, w, h)
		dx, dy := x1-x0, y1-y0
		length := dx*dx + dy*dy
		if length == 0 {
			return b.From
		}
		return blend(b.From, b.To, ((x-x0)*dx+(y-y0)*dy)/length)
	case RadialBackground:
		radius := math.Hypot(w, h) / 2
		if radius == 0 {
			return b.Inner
		}
		return blend(b.Inner, b.Outer, math.Hypot(x-w/2, y-h/2)/radius)
	}
	return color.RGBA{255, 255, 255, 255}
}

// coverImage scales img to fill w x h, cropping the overflow on one axis.
func coverImage(img image.Image, w, h int, scaler draw.Scaler) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	sb := img.Bounds()
	if w <= 0 || h <= 0 || sb.Empty() {
		return dst
	}
	scale := math.Max(float64(w)/float64(sb.Dx()), float64(h)/float64(sb.Dy()))
	cropW := int(math.Round(float64(w) / scale))
	cropH := int(math.Round(float64(h) / scale))
	offX := sb.Min.X + (sb.Dx()-cropW)/2
	offY := sb.Min.Y + (sb.Dy()-cropH)/2
	src := image.Rect(offX, offY, offX+cropW, offY+cropH).Intersect(sb)
	scaler.Scale(dst, dst.Bounds(), img, src, draw.Src, nil)
	return dst
}

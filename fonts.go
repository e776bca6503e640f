package main

import (
	"fmt"
	"math"
	"sync"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomedium"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/gomonobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/gofont/gosmallcaps"
)

type FontFamily int

const (
	FontRegular FontFamily = iota
	FontBold
	FontItalic
	FontBoldItalic
	FontMedium
	FontMono
	FontMonoBold
	FontSmallCaps
	numFontFamilies
)

var fontData = [numFontFamilies][]byte{
	FontRegular:    goregular.TTF,
	FontBold:       gobold.TTF,
	FontItalic:     goitalic.TTF,
	FontBoldItalic: gobolditalic.TTF,
	FontMedium:     gomedium.TTF,
	FontMono:       gomono.TTF,
	FontMonoBold:   gomonobold.TTF,
	FontSmallCaps:  gosmallcaps.TTF,
}

var fontNames = [numFontFamilies]string{
	"Go Regular", "Go Bold", "Go Italic", "Go Bold Italic",
	"Go Medium", "Go Mono", "Go Mono Bold", "Go Smallcaps",
}

func (f FontFamily) String() string {
	if f < 0 || f >= numFontFamilies {
		return "unknown"
	}
	return fontNames[f]
}

// Parsed fonts are read-only and shared; faces carry glyph caches and are
// owned by one fontBook each.
var (
	parsedMu    sync.Mutex
	parsedFonts [numFontFamilies]*truetype.Font
)

func parsedFont(family FontFamily) (*truetype.Font, error) {
	if family < 0 || family >= numFontFamilies {
		return nil, fmt.Errorf("unknown font family %d", family)
	}
	parsedMu.Lock()
	defer parsedMu.Unlock()
	if f := parsedFonts[family]; f != nil {
		return f, nil
	}
	f, err := truetype.Parse(fontData[family])
	if err != nil {
		return nil, fmt.Errorf("failed to parse font %s: %w", family, err)
	}
	parsedFonts[family] = f
	return f, nil
}

type faceKey struct {
	family FontFamily
	size   float64
}

type fontBook struct {
	mu    sync.Mutex
	faces map[faceKey]font.Face
}

func newFontBook() *fontBook {
	return &fontBook{faces: make(map[faceKey]font.Face)}
}

// Face returns a face for the family at size, rounded to half points so the
// cache stays small while sizes are drawn from a continuous range.
func (b *fontBook) Face(family FontFamily, size float64) (font.Face, error) {
	size = math.Max(1, math.Round(size*2)/2)
	key := faceKey{family, size}

	b.mu.Lock()
	defer b.mu.Unlock()
	if face, ok := b.faces[key]; ok {
		return face, nil
	}
	f, err := parsedFont(family)
	if err != nil {
		return nil, err
	}
	face := truetype.NewFace(f, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	b.faces[key] = face
	return face, nil
}

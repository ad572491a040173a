package postcard

import (
	"image"
	"image/color"

	"golang.org/x/image/font"

	"github.com/youruser/postcard/internal/fonts"
	imagepkg "github.com/youruser/postcard/internal/image"
)

// Text layout. Named fonts use the larger size; the fallback face is smaller.
var (
	TopRect    = image.Rect(250, 200, 250+2500, 200+800)
	BottomRect = image.Rect(250, 1800, 250+2500, 1800+600)

	backgroundFill = color.NRGBA{R: 0x80, G: 0x80, B: 0x80, A: 0xff}
)

const (
	TopFontSize            = 350
	BottomFontSize         = 150
	TopFallbackFontSize    = 250
	BottomFallbackFontSize = 100
)

// FaceSource resolves font families to faces.
type FaceSource interface {
	Face(family string, size float64) (font.Face, bool)
	FallbackFace(size float64) font.Face
	Has(family string) bool
}

var _ FaceSource = (*fonts.Registry)(nil)

// ResolveFace returns the face for target t. fallback is true when family is
// unknown and the default face was substituted.
func ResolveFace(src FaceSource, t Target, family string) (face font.Face, fallback bool) {
	size, fbSize := float64(TopFontSize), float64(TopFallbackFontSize)
	if t == Bottom {
		size, fbSize = BottomFontSize, BottomFallbackFontSize
	}
	if f, ok := src.Face(family, size); ok {
		return f, false
	}
	return src.FallbackFace(fbSize), true
}

// Render flattens s into a CanvasWidth×CanvasHeight bitmap. It depends only
// on s and src.
func Render(s State, src FaceSource) *image.NRGBA {
	topFace, _ := ResolveFace(src, Top, s.TopFont)
	bottomFace, _ := ResolveFace(src, Bottom, s.BottomFont)

	return imagepkg.Compose(
		image.Pt(CanvasWidth, CanvasHeight),
		backgroundFill,
		s.Background,
		imagepkg.TextBlock{Text: s.TopText, Face: topFace, Color: s.TopColor, Rect: TopRect},
		imagepkg.TextBlock{Text: s.BottomText, Face: bottomFace, Color: s.BottomColor, Rect: BottomRect},
	)
}

package imagepkg

import (
	"image"
	"image/color"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"
	"golang.org/x/image/font"
)

// TextBlock is a run of text laid out inside Rect, centered horizontally,
// word-wrapped to the rect width and clipped to its bounds.
type TextBlock struct {
	Text  string
	Face  font.Face
	Color color.Color
	Rect  image.Rectangle
}

// Compose flattens a postcard: fill, then bg drawn unscaled at the origin,
// then each text block in order. Nothing outside size is kept.
func Compose(size image.Point, fill color.Color, bg image.Image, blocks ...TextBlock) *image.NRGBA {
	canvas := imaging.New(size.X, size.Y, fill)
	if bg != nil {
		canvas = imaging.Overlay(canvas, bg, image.Pt(0, 0), 1.0)
	}

	dc := gg.NewContextForImage(canvas)
	for _, b := range blocks {
		if b.Text == "" || b.Face == nil {
			continue
		}
		r := b.Rect
		dc.DrawRectangle(float64(r.Min.X), float64(r.Min.Y), float64(r.Dx()), float64(r.Dy()))
		dc.Clip()
		dc.SetFontFace(b.Face)
		dc.SetColor(b.Color)
		dc.DrawStringWrapped(b.Text, float64(r.Min.X), float64(r.Min.Y), 0, 0, float64(r.Dx()), 1.0, gg.AlignCenter)
		dc.ResetClip()
	}
	return imaging.Clone(dc.Image())
}

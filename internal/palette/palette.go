// Package palette builds the fixed list of colors offered for postcard text.
package palette

import (
	"image"
	"image/color"

	"github.com/fogleman/gg"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/youruser/postcard/internal/payload"
)

const (
	GridHues  = 10
	GridSats  = 10
	NamedSize = 11
	Size      = NamedSize + GridHues*GridSats

	swatchBorder = 1.0
	swatchRadius = 5.0
)

// Entry is one palette color with an optional display name.
type Entry struct {
	Name  string
	Color color.NRGBA
}

// named follows the UIKit component values of the system colors.
var named = []Entry{
	{"black", color.NRGBA{R: 0x00, G: 0x00, B: 0x00, A: 0xff}},
	{"gray", color.NRGBA{R: 0x80, G: 0x80, B: 0x80, A: 0xff}},
	{"white", color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}},
	{"yellow", color.NRGBA{R: 0xff, G: 0xff, B: 0x00, A: 0xff}},
	{"orange", color.NRGBA{R: 0xff, G: 0x80, B: 0x00, A: 0xff}},
	{"red", color.NRGBA{R: 0xff, G: 0x00, B: 0x00, A: 0xff}},
	{"magenta", color.NRGBA{R: 0xff, G: 0x00, B: 0xff, A: 0xff}},
	{"purple", color.NRGBA{R: 0x80, G: 0x00, B: 0x80, A: 0xff}},
	{"blue", color.NRGBA{R: 0x00, G: 0x00, B: 0xff, A: 0xff}},
	{"cyan", color.NRGBA{R: 0x00, G: 0xff, B: 0xff, A: 0xff}},
	{"green", color.NRGBA{R: 0x00, G: 0xff, B: 0x00, A: 0xff}},
}

// Palette is immutable after New.
type Palette struct {
	entries []Entry
}

// New builds the named colors followed by the hue/saturation grid: hue i/10
// on the outer loop, saturation j/10 (j from 1) on the inner, brightness 1.
func New() *Palette {
	entries := make([]Entry, 0, Size)
	entries = append(entries, named...)
	for i := 0; i < GridHues; i++ {
		for j := 1; j <= GridSats; j++ {
			entries = append(entries, Entry{Color: HSB(float64(i)/GridHues, float64(j)/GridSats, 1)})
		}
	}
	return &Palette{entries: entries}
}

// HSB converts hue, saturation and brightness in [0,1] to an opaque color.
func HSB(h, s, b float64) color.NRGBA {
	r, g, bl := colorful.Hsv(h*360, s, b).RGB255()
	return color.NRGBA{R: r, G: g, B: bl, A: 0xff}
}

func (p *Palette) Len() int { return len(p.entries) }

// Entries returns a copy of the palette in order.
func (p *Palette) Entries() []Entry {
	out := make([]Entry, len(p.entries))
	copy(out, p.entries)
	return out
}

func (p *Palette) At(i int) (Entry, bool) {
	if i < 0 || i >= len(p.entries) {
		return Entry{}, false
	}
	return p.entries[i], true
}

// Lookup finds a named color.
func (p *Palette) Lookup(name string) (color.NRGBA, bool) {
	for _, e := range p.entries {
		if e.Name != "" && e.Name == name {
			return e.Color, true
		}
	}
	return color.NRGBA{}, false
}

// Swatch draws cell i as a size×size rounded square with a thin border.
func (p *Palette) Swatch(i, size int) (image.Image, bool) {
	e, ok := p.At(i)
	if !ok || size <= 2 {
		return nil, false
	}
	dc := gg.NewContext(size, size)
	half := swatchBorder / 2
	dc.DrawRoundedRectangle(half, half, float64(size)-swatchBorder, float64(size)-swatchBorder, swatchRadius)
	dc.SetColor(e.Color)
	dc.FillPreserve()
	dc.SetColor(color.Black)
	dc.SetLineWidth(swatchBorder)
	dc.Stroke()
	return dc.Image(), true
}

// DragItem is the color payload offered when cell i is dragged out.
func (p *Palette) DragItem(i int) (payload.Item, bool) {
	e, ok := p.At(i)
	if !ok {
		return payload.Item{}, false
	}
	return payload.ColorItem(e.Color), true
}

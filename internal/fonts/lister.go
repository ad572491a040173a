package fonts

import (
	"image"
	"image/color"
	"unicode/utf8"

	"github.com/fogleman/gg"

	"github.com/youruser/postcard/internal/payload"
)

const (
	rowWidth  = 320
	rowHeight = 44
	rowInset  = 16
)

// Lister is the read-only font list shown to the user. The list is computed
// once when the lister is built.
type Lister struct {
	reg   *Registry
	names []string
}

// NewLister snapshots the registry's families.
func NewLister(reg *Registry) *Lister {
	return &Lister{reg: reg, names: reg.Families()}
}

func (l *Lister) Len() int { return len(l.names) }

// Names returns a copy of the sorted family names.
func (l *Lister) Names() []string {
	out := make([]string, len(l.names))
	copy(out, l.names)
	return out
}

func (l *Lister) At(i int) (string, bool) {
	if i < 0 || i >= len(l.names) {
		return "", false
	}
	return l.names[i], true
}

// PreviewRow draws row i: the family name in its own face at PreviewSize.
func (l *Lister) PreviewRow(i int) (image.Image, bool) {
	name, ok := l.At(i)
	if !ok {
		return nil, false
	}
	face, ok := l.reg.Face(name, PreviewSize)
	if !ok {
		face = l.reg.FallbackFace(PreviewSize)
	}

	dc := gg.NewContext(rowWidth, rowHeight)
	dc.SetColor(color.White)
	dc.Clear()
	dc.SetColor(color.Black)
	dc.SetFontFace(face)
	dc.DrawStringAnchored(name, rowInset, rowHeight/2, 0, 0.5)
	return dc.Image(), true
}

// DragItem is the plain-text payload offered when row i is dragged out.
func (l *Lister) DragItem(i int) (payload.Item, bool) {
	name, ok := l.At(i)
	if !ok || !utf8.ValidString(name) {
		return payload.Item{}, false
	}
	return payload.TextItem(name), true
}

// Package payload models drag-and-drop data: the raw items a drag source
// offers and the tagged union a drop target resolves them into.
package payload

import (
	"fmt"
	"image"
	"image/color"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Type identifiers understood by drop targets.
const (
	TypePlainText = "public.plain-text"
	TypeUTF8Text  = "public.utf8-plain-text"
	TypeImage     = "public.image"
	TypePNG       = "public.png"
	TypeJPEG      = "public.jpeg"
	TypeColor     = "public.color"
)

var (
	textTypes  = []string{TypePlainText, TypeUTF8Text, "text/plain"}
	imageTypes = []string{TypeImage, TypePNG, TypeJPEG, "image/png", "image/jpeg", "image/gif"}
	colorTypes = []string{TypeColor}
)

// Item is one representation offered by a drag source. Image items carry
// either encoded bytes or a URL to fetch.
type Item struct {
	Type string `json:"type"`
	Data []byte `json:"data,omitempty"`
	URL  string `json:"url,omitempty"`
}

// Session is the ordered set of items of a single drop.
type Session []Item

// TextItem builds a UTF-8 plain-text item.
func TextItem(s string) Item {
	return Item{Type: TypePlainText, Data: []byte(s)}
}

// ColorItem builds a color item encoded as #rrggbb.
func ColorItem(c color.NRGBA) Item {
	return Item{Type: TypeColor, Data: []byte(HexColor(c))}
}

func conforms(t string, set []string) bool {
	t = strings.ToLower(strings.TrimSpace(t))
	for _, s := range set {
		if t == s {
			return true
		}
	}
	return false
}

// HasText reports whether any item declares a plain-text type.
func (s Session) HasText() bool { return s.first(textTypes) >= 0 }

// HasImage reports whether any item declares an image type.
func (s Session) HasImage() bool { return s.first(imageTypes) >= 0 }

func (s Session) first(set []string) int {
	for i, it := range s {
		if conforms(it.Type, set) {
			return i
		}
	}
	return -1
}

// Kind tags the variant held by a Payload.
type Kind int

const (
	KindText Kind = iota + 1
	KindImage
	KindColor
)

func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindImage:
		return "image"
	case KindColor:
		return "color"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Payload is a resolved drop. Exactly the field matching Kind is set.
type Payload struct {
	Kind  Kind
	Text  string
	Image image.Image
	Color color.NRGBA
}

func Text(s string) Payload { return Payload{Kind: KindText, Text: s} }
func Image(img image.Image) Payload { return Payload{Kind: KindImage, Image: img} }
func Color(c color.NRGBA) Payload { return Payload{Kind: KindColor, Color: c} }

// HexColor formats c as #rrggbb. Alpha is dropped.
func HexColor(c color.NRGBA) string {
	return colorful.Color{
		R: float64(c.R) / 255,
		G: float64(c.G) / 255,
		B: float64(c.B) / 255,
	}.Hex()
}

// ParseColor reads a #rrggbb (or #rgb) string into an opaque color.
func ParseColor(s string) (color.NRGBA, error) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "#") {
		s = "#" + s
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("parse color %q: %w", s, err)
	}
	r, g, b := c.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: 0xff}, nil
}

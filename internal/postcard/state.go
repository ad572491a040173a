// Package postcard holds the editable postcard state and the render cycle
// that flattens it into a bitmap.
package postcard

import (
	"image"
	"image/color"
)

// Canvas geometry in canvas units.
const (
	CanvasWidth  = 3000
	CanvasHeight = 2400
)

// MidY is the vertical midpoint separating the top and bottom targets.
const MidY = CanvasHeight / 2

// Default text and fonts of a fresh postcard.
const (
	DefaultTopText    = "Visit London"
	DefaultBottomText = "Home of Sherlock Holmes, Paddington Bear, and James Bond"
	DefaultFont       = "Helvetica Neue"
)

var white = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}

// Target selects one of the two text regions.
type Target int

const (
	Top Target = iota
	Bottom
)

func (t Target) String() string {
	if t == Top {
		return "top"
	}
	return "bottom"
}

// ParseTarget accepts "top" or "bottom".
func ParseTarget(s string) (Target, bool) {
	switch s {
	case "top":
		return Top, true
	case "bottom":
		return Bottom, true
	}
	return Bottom, false
}

// TargetAt picks the target for a vertical canvas position. Positions
// strictly above the midpoint are top; the midpoint itself is bottom.
func TargetAt(y float64) Target {
	if y < MidY {
		return Top
	}
	return Bottom
}

// State is the editable postcard.
type State struct {
	Background  image.Image
	TopText     string
	BottomText  string
	TopFont     string
	BottomFont  string
	TopColor    color.NRGBA
	BottomColor color.NRGBA
}

// DefaultState returns the initial postcard.
func DefaultState() State {
	return State{
		TopText:     DefaultTopText,
		BottomText:  DefaultBottomText,
		TopFont:     DefaultFont,
		BottomFont:  DefaultFont,
		TopColor:    white,
		BottomColor: white,
	}
}

// Text returns the text of target t.
func (s *State) Text(t Target) string {
	if t == Top {
		return s.TopText
	}
	return s.BottomText
}

func (s *State) SetText(t Target, text string) {
	if t == Top {
		s.TopText = text
	} else {
		s.BottomText = text
	}
}

func (s *State) SetFont(t Target, family string) {
	if t == Top {
		s.TopFont = family
	} else {
		s.BottomFont = family
	}
}

func (s *State) SetColor(t Target, c color.NRGBA) {
	if t == Top {
		s.TopColor = c
	} else {
		s.BottomColor = c
	}
}

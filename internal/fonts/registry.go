// Package fonts lists the font families available for postcard text and
// turns family names into drawable faces.
package fonts

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/gofont/gosmallcaps"
)

// PreviewSize is the point size used for list rows.
const PreviewSize = 18

// Registry maps family names to parsed fonts. It is safe for concurrent use.
type Registry struct {
	mu       sync.RWMutex
	families map[string]*truetype.Font
	fallback *truetype.Font
	sorted   []string
}

// NewRegistry returns a registry holding only the fallback face and no families.
func NewRegistry() *Registry {
	fallback, err := truetype.Parse(goregular.TTF)
	if err != nil {
		// goregular is embedded and always parses
		panic(fmt.Sprintf("fonts: parse goregular: %v", err))
	}
	return &Registry{
		families: map[string]*truetype.Font{},
		fallback: fallback,
	}
}

// Builtin returns a registry preloaded with the Go font families.
func Builtin() *Registry {
	r := NewRegistry()
	for name, ttf := range map[string][]byte{
		"Go":           goregular.TTF,
		"Go Mono":      gomono.TTF,
		"Go Smallcaps": gosmallcaps.TTF,
	} {
		if err := r.Register(name, ttf); err != nil {
			panic(fmt.Sprintf("fonts: register %s: %v", name, err))
		}
	}
	return r
}

// Register parses raw TrueType data and adds it under family. The first
// registration of a family wins.
func (r *Registry) Register(family string, data []byte) error {
	f, err := truetype.Parse(data)
	if err != nil {
		return fmt.Errorf("parse font %q: %w", family, err)
	}
	if family == "" {
		family = f.Name(truetype.NameIDFontFamily)
	}
	if family == "" {
		return fmt.Errorf("font has no family name")
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.families[family]; ok {
		return nil
	}
	r.families[family] = f
	r.sorted = nil
	return nil
}

// LoadDir registers every .ttf/.otf file directly inside dir. Files that do
// not parse are skipped and reported in the returned slice.
func (r *Registry) LoadDir(dir string) (skipped []string, err error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read font dir %s: %w", dir, err)
	}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(e.Name()))
		if ext != ".ttf" && ext != ".otf" {
			continue
		}
		path := filepath.Join(dir, e.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			skipped = append(skipped, path)
			continue
		}
		family := ""
		if f, err := truetype.Parse(data); err == nil {
			family = f.Name(truetype.NameIDFontFamily)
		}
		if family == "" {
			family = strings.TrimSuffix(e.Name(), filepath.Ext(e.Name()))
		}
		if err := r.Register(family, data); err != nil {
			skipped = append(skipped, path)
		}
	}
	return skipped, nil
}

// Families returns the family names in ascending order.
func (r *Registry) Families() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.sorted == nil {
		names := make([]string, 0, len(r.families))
		for name := range r.families {
			names = append(names, name)
		}
		sort.Strings(names)
		r.sorted = names
	}
	out := make([]string, len(r.sorted))
	copy(out, r.sorted)
	return out
}

// Has reports whether family is registered.
func (r *Registry) Has(family string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.families[family]
	return ok
}

// Face returns a face for family at size points. ok is false when the family
// is unknown.
func (r *Registry) Face(family string, size float64) (face font.Face, ok bool) {
	r.mu.RLock()
	f, ok := r.families[family]
	r.mu.RUnlock()
	if !ok {
		return nil, false
	}
	return truetype.NewFace(f, &truetype.Options{Size: size}), true
}

// FallbackFace returns the default face used when a family is missing.
func (r *Registry) FallbackFace(size float64) font.Face {
	return truetype.NewFace(r.fallback, &truetype.Options{Size: size})
}

package payload

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"unicode/utf8"

	imagepkg "github.com/youruser/postcard/internal/image"
)

// ErrUnresolvable marks a drop whose items could not be coerced into a payload.
var ErrUnresolvable = errors.New("unresolvable drop payload")

// Result is the outcome of resolving one drop session.
type Result struct {
	Payload Payload
	Err     error
}

// OK reports whether the result carries a usable payload.
func (r Result) OK() bool { return r.Err == nil && r.Payload.Kind != 0 }

// Resolver turns drop sessions into payloads. Image items given by URL are
// downloaded with Client.
type Resolver struct {
	Client *http.Client
}

// Resolve starts resolving s in the background. The returned channel yields
// exactly one Result and is then closed. If ctx ends first the channel is
// closed without a value.
func (r *Resolver) Resolve(ctx context.Context, s Session) <-chan Result {
	ch := make(chan Result, 1)
	go func() {
		defer close(ch)
		res := r.resolve(ctx, s)
		if ctx.Err() != nil {
			return
		}
		ch <- res
	}()
	return ch
}

// Conformance is checked text first, then image; color is the fallback.
func (r *Resolver) resolve(ctx context.Context, s Session) Result {
	if len(s) == 0 {
		return Result{Err: fmt.Errorf("%w: no items", ErrUnresolvable)}
	}
	switch {
	case s.HasText():
		it := s[s.first(textTypes)]
		if !utf8.Valid(it.Data) {
			return Result{Err: fmt.Errorf("%w: text is not utf-8", ErrUnresolvable)}
		}
		return Result{Payload: Text(string(it.Data))}
	case s.HasImage():
		it := s[s.first(imageTypes)]
		return r.resolveImage(ctx, it)
	default:
		it := s[0]
		if i := s.first(colorTypes); i >= 0 {
			it = s[i]
		}
		c, err := ParseColor(string(it.Data))
		if err != nil {
			return Result{Err: fmt.Errorf("%w: %v", ErrUnresolvable, err)}
		}
		return Result{Payload: Color(c)}
	}
}

func (r *Resolver) resolveImage(ctx context.Context, it Item) Result {
	if len(it.Data) > 0 {
		img, err := imagepkg.DecodeImage(it.Data)
		if err != nil {
			return Result{Err: fmt.Errorf("%w: %v", ErrUnresolvable, err)}
		}
		return Result{Payload: Image(img)}
	}
	if it.URL == "" {
		return Result{Err: fmt.Errorf("%w: image item has no data", ErrUnresolvable)}
	}
	img, err := imagepkg.DownloadImage(ctx, r.Client, it.URL)
	if err != nil {
		return Result{Err: fmt.Errorf("%w: %v", ErrUnresolvable, err)}
	}
	return Result{Payload: Image(img)}
}

package postcard

import (
	"context"
	"errors"
	"image"
	"sync"
	"time"

	"github.com/youruser/postcard/internal/logger"
	"github.com/youruser/postcard/internal/payload"
)

// ErrClosed is returned by operations on a closed Composer.
var ErrClosed = errors.New("composer closed")

// Resolver turns a drop session into a payload, delivering at most one
// result on the returned channel.
type Resolver interface {
	Resolve(ctx context.Context, s payload.Session) <-chan payload.Result
}

// Composer owns the postcard state. Every mutation and the render that
// follows it run on a single goroutine, in the order requested.
type Composer struct {
	faces    FaceSource
	resolver Resolver
	log      *logger.Logger

	ops       chan func()
	done      chan struct{}
	closeOnce sync.Once

	// owned by run
	state    State
	rendered *image.NRGBA
	version  uint64
}

// NewComposer starts a composer with the default state already rendered.
func NewComposer(faces FaceSource, resolver Resolver, log *logger.Logger) *Composer {
	c := &Composer{
		faces:    faces,
		resolver: resolver,
		log:      log.With("component", "composer"),
		ops:      make(chan func()),
		done:     make(chan struct{}),
		state:    DefaultState(),
	}
	c.render()
	go c.run()
	return c
}

func (c *Composer) run() {
	for {
		select {
		case op := <-c.ops:
			op()
		case <-c.done:
			return
		}
	}
}

// Close stops the mailbox. Later calls fail with ErrClosed.
func (c *Composer) Close() {
	c.closeOnce.Do(func() { close(c.done) })
}

// do runs fn on the mailbox goroutine and waits for it to finish.
func (c *Composer) do(ctx context.Context, fn func()) error {
	select {
	case <-c.done:
		return ErrClosed
	default:
	}
	finished := make(chan struct{})
	op := func() {
		defer close(finished)
		fn()
	}
	select {
	case c.ops <- op:
	case <-c.done:
		return ErrClosed
	case <-ctx.Done():
		return ctx.Err()
	}
	<-finished
	return nil
}

func (c *Composer) render() {
	start := time.Now()
	c.rendered = Render(c.state, c.faces)
	c.version++
	c.log.Debug("postcard rendered", "version", c.version, "took_ms", time.Since(start).Milliseconds())
}

// SetBackgroundImage replaces the background. The image is drawn unscaled at
// the canvas origin.
func (c *Composer) SetBackgroundImage(ctx context.Context, img image.Image) error {
	return c.do(ctx, func() {
		c.state.Background = img
		c.render()
	})
}

// EditText returns the target under vertical position y and its current
// text, for seeding an edit prompt.
func (c *Composer) EditText(ctx context.Context, y float64) (Target, string, error) {
	t := TargetAt(y)
	var text string
	err := c.do(ctx, func() {
		text = c.state.Text(t)
	})
	return t, text, err
}

// CommitText overwrites the text of target t. The empty string is valid.
func (c *Composer) CommitText(ctx context.Context, t Target, text string) error {
	return c.do(ctx, func() {
		c.state.SetText(t, text)
		c.render()
	})
}

// HandleDrop resolves s and applies it at vertical position y. Drops that
// cannot be resolved leave the state unchanged and report applied=false.
func (c *Composer) HandleDrop(ctx context.Context, s payload.Session, y float64) (applied bool, err error) {
	var res payload.Result
	var ok bool
	select {
	case res, ok = <-c.resolver.Resolve(ctx, s):
	case <-ctx.Done():
		return false, nil
	}
	if !ok || !res.OK() {
		if res.Err != nil {
			c.log.Debug("drop ignored", "reason", res.Err.Error())
		}
		return false, nil
	}
	return c.Apply(ctx, res.Payload, y)
}

// Apply routes a resolved payload: text sets the font family and color sets
// the text color of the target under y; an image replaces the background.
func (c *Composer) Apply(ctx context.Context, p payload.Payload, y float64) (applied bool, err error) {
	t := TargetAt(y)
	err = c.do(ctx, func() {
		switch p.Kind {
		case payload.KindText:
			c.state.SetFont(t, p.Text)
		case payload.KindImage:
			if p.Image == nil {
				return
			}
			c.state.Background = p.Image
		case payload.KindColor:
			c.state.SetColor(t, p.Color)
		default:
			return
		}
		applied = true
		c.log.Info("drop applied", "kind", p.Kind.String(), "target", t.String())
		c.render()
	})
	return applied, err
}

// Render returns the bitmap of the latest committed state. The returned
// image must not be modified.
func (c *Composer) Render(ctx context.Context) (image.Image, error) {
	var img image.Image
	err := c.do(ctx, func() {
		img = c.rendered
	})
	return img, err
}

// Snapshot returns a copy of the state and its render version.
func (c *Composer) Snapshot(ctx context.Context) (State, uint64, error) {
	var s State
	var v uint64
	err := c.do(ctx, func() {
		s = c.state
		v = c.version
	})
	return s, v, err
}

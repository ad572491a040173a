package postcard

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"sync"
	"testing"
	"time"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font"

	"github.com/youruser/postcard/internal/fonts"
	"github.com/youruser/postcard/internal/logger"
	"github.com/youruser/postcard/internal/payload"
)

var red = color.NRGBA{R: 0xff, A: 0xff}

// recordingFaces remembers the sizes requested for named and fallback faces.
type recordingFaces struct {
	*fonts.Registry
	mu        sync.Mutex
	named     map[string][]float64
	fallbacks []float64
}

func newRecordingFaces() *recordingFaces {
	return &recordingFaces{Registry: fonts.Builtin(), named: map[string][]float64{}}
}

func (r *recordingFaces) Face(family string, size float64) (font.Face, bool) {
	face, ok := r.Registry.Face(family, size)
	if ok {
		r.mu.Lock()
		r.named[family] = append(r.named[family], size)
		r.mu.Unlock()
	}
	return face, ok
}

func (r *recordingFaces) reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.named = map[string][]float64{}
	r.fallbacks = nil
}

func (r *recordingFaces) FallbackFace(size float64) font.Face {
	r.mu.Lock()
	r.fallbacks = append(r.fallbacks, size)
	r.mu.Unlock()
	return r.Registry.FallbackFace(size)
}

// stuckResolver never produces a result.
type stuckResolver struct{}

func (stuckResolver) Resolve(ctx context.Context, s payload.Session) <-chan payload.Result {
	return make(chan payload.Result)
}

func newComposer(t *testing.T) *Composer {
	t.Helper()
	c := NewComposer(fonts.Builtin(), &payload.Resolver{}, logger.Nop())
	t.Cleanup(c.Close)
	return c
}

func snapshot(t *testing.T, c *Composer) (State, uint64) {
	t.Helper()
	s, v, err := c.Snapshot(context.Background())
	require.NoError(t, err)
	return s, v
}

func TestTargetAtMidpoint(t *testing.T) {
	assert.Equal(t, Top, TargetAt(0))
	assert.Equal(t, Top, TargetAt(MidY-1))
	assert.Equal(t, Top, TargetAt(MidY-0.001))
	assert.Equal(t, Bottom, TargetAt(MidY))
	assert.Equal(t, Bottom, TargetAt(MidY+1))
	assert.Equal(t, Bottom, TargetAt(CanvasHeight))
}

func TestInitialStateIsRendered(t *testing.T) {
	c := newComposer(t)
	s, v := snapshot(t, c)
	assert.Equal(t, DefaultState(), s)
	assert.Equal(t, uint64(1), v)

	img, err := c.Render(context.Background())
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, CanvasWidth, CanvasHeight), img.Bounds())
}

func TestCommitTextChangesOnlyTarget(t *testing.T) {
	c := newComposer(t)
	ctx := context.Background()

	require.NoError(t, c.CommitText(ctx, Top, "Greetings"))
	_, err := c.Render(ctx)
	require.NoError(t, err)

	s, v := snapshot(t, c)
	want := DefaultState()
	want.TopText = "Greetings"
	assert.Equal(t, want, s)
	assert.Equal(t, uint64(2), v)
}

func TestEditTextSeedsFromTarget(t *testing.T) {
	c := newComposer(t)
	ctx := context.Background()

	target, text, err := c.EditText(ctx, 10)
	require.NoError(t, err)
	assert.Equal(t, Top, target)
	assert.Equal(t, DefaultTopText, text)

	target, text, err = c.EditText(ctx, MidY)
	require.NoError(t, err)
	assert.Equal(t, Bottom, target)
	assert.Equal(t, DefaultBottomText, text)
}

func TestColorDropAboveMidpointSetsTopOnly(t *testing.T) {
	c := newComposer(t)
	applied, err := c.HandleDrop(context.Background(), payload.Session{payload.ColorItem(red)}, MidY-1)
	require.NoError(t, err)
	require.True(t, applied)

	s, _ := snapshot(t, c)
	assert.Equal(t, red, s.TopColor)
	assert.Equal(t, white, s.BottomColor)
	assert.Equal(t, DefaultBottomText, s.BottomText)
}

func TestColorDropAtMidpointSetsBottomOnly(t *testing.T) {
	c := newComposer(t)
	applied, err := c.HandleDrop(context.Background(), payload.Session{payload.ColorItem(red)}, MidY)
	require.NoError(t, err)
	require.True(t, applied)

	s, _ := snapshot(t, c)
	assert.Equal(t, white, s.TopColor)
	assert.Equal(t, red, s.BottomColor)
	assert.Equal(t, DefaultTopText, s.TopText)
}

func TestTextDropSetsFontOfTarget(t *testing.T) {
	c := newComposer(t)
	applied, err := c.HandleDrop(context.Background(), payload.Session{payload.TextItem("Go Mono")}, 2000)
	require.NoError(t, err)
	require.True(t, applied)

	s, _ := snapshot(t, c)
	assert.Equal(t, DefaultFont, s.TopFont)
	assert.Equal(t, "Go Mono", s.BottomFont)
}

func TestUnknownFontFallsBack(t *testing.T) {
	faces := newRecordingFaces()
	c := NewComposer(faces, &payload.Resolver{}, logger.Nop())
	defer c.Close()

	faces.reset()
	applied, err := c.HandleDrop(context.Background(), payload.Session{payload.TextItem("Courier")}, 100)
	require.NoError(t, err)
	require.True(t, applied)
	applied, err = c.HandleDrop(context.Background(), payload.Session{payload.TextItem("Courier New")}, MidY)
	require.NoError(t, err)
	require.True(t, applied)

	s, _ := snapshot(t, c)
	assert.Equal(t, "Courier", s.TopFont)
	assert.Equal(t, "Courier New", s.BottomFont)

	_, fallback := ResolveFace(faces.Registry, Top, s.TopFont)
	assert.True(t, fallback)
	_, fallback = ResolveFace(faces.Registry, Top, "Go")
	assert.False(t, fallback)

	faces.mu.Lock()
	defer faces.mu.Unlock()
	assert.Contains(t, faces.fallbacks, float64(TopFallbackFontSize))
	assert.Contains(t, faces.fallbacks, float64(BottomFallbackFontSize))
	assert.Empty(t, faces.named)
}

func TestKnownFontsUseNamedSizes(t *testing.T) {
	faces := newRecordingFaces()
	s := DefaultState()
	s.TopFont = "Go"
	s.BottomFont = "Go Mono"

	Render(s, faces)

	faces.mu.Lock()
	defer faces.mu.Unlock()
	assert.Equal(t, []float64{TopFontSize}, faces.named["Go"])
	assert.Equal(t, []float64{BottomFontSize}, faces.named["Go Mono"])
	assert.Empty(t, faces.fallbacks)
}

func TestImageDropReplacesBackground(t *testing.T) {
	c := newComposer(t)
	ctx := context.Background()
	bg := imaging.New(40, 30, red)

	applied, err := c.Apply(ctx, payload.Image(bg), 2300)
	require.NoError(t, err)
	require.True(t, applied)

	img, err := c.Render(ctx)
	require.NoError(t, err)
	nrgba := img.(*image.NRGBA)
	assert.Equal(t, red, nrgba.NRGBAAt(0, 0))
	assert.Equal(t, red, nrgba.NRGBAAt(39, 29))
	assert.Equal(t, backgroundFill, nrgba.NRGBAAt(40, 30))
}

func TestUnresolvableDropIsIgnored(t *testing.T) {
	c := newComposer(t)
	_, before := snapshot(t, c)

	applied, err := c.HandleDrop(context.Background(), payload.Session{{Type: payload.TypeColor, Data: []byte("???")}}, 10)
	require.NoError(t, err)
	assert.False(t, applied)

	s, after := snapshot(t, c)
	assert.Equal(t, DefaultState(), s)
	assert.Equal(t, before, after)
}

func TestDropThatNeverResolvesChangesNothing(t *testing.T) {
	c := NewComposer(fonts.Builtin(), stuckResolver{}, logger.Nop())
	defer c.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	applied, err := c.HandleDrop(ctx, payload.Session{payload.TextItem("Go")}, 10)
	require.NoError(t, err)
	assert.False(t, applied)

	s, v := snapshot(t, c)
	assert.Equal(t, DefaultState(), s)
	assert.Equal(t, uint64(1), v)
}

func TestRenderIsDeterministic(t *testing.T) {
	faces := fonts.Builtin()
	s := DefaultState()
	s.TopFont = "Go"
	s.BottomColor = red

	a := Render(s, faces)
	b := Render(s, faces)
	assert.True(t, bytes.Equal(a.Pix, b.Pix))
}

func TestEmptyTextRendersBlank(t *testing.T) {
	c := newComposer(t)
	ctx := context.Background()
	require.NoError(t, c.CommitText(ctx, Top, ""))

	img, err := c.Render(ctx)
	require.NoError(t, err)
	nrgba := img.(*image.NRGBA)
	for y := TopRect.Min.Y; y < TopRect.Max.Y; y += 7 {
		for x := TopRect.Min.X; x < TopRect.Max.X; x += 7 {
			require.Equal(t, backgroundFill, nrgba.NRGBAAt(x, y))
		}
	}
}

func TestClosedComposer(t *testing.T) {
	c := NewComposer(fonts.Builtin(), &payload.Resolver{}, logger.Nop())
	c.Close()
	c.Close()

	err := c.CommitText(context.Background(), Top, "late")
	assert.ErrorIs(t, err, ErrClosed)
}

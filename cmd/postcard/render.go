package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	imagepkg "github.com/youruser/postcard/internal/image"
	"github.com/youruser/postcard/internal/palette"
	"github.com/youruser/postcard/internal/payload"
	"github.com/youruser/postcard/internal/postcard"
	"github.com/youruser/postcard/internal/util"
)

type renderOptions struct {
	output      string
	background  string
	topText     string
	bottomText  string
	topFont     string
	bottomFont  string
	topColor    string
	bottomColor string
}

func newRenderCmd(flags *rootFlags) *cobra.Command {
	opts := &renderOptions{}

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render a postcard to a PNG file",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newAppContext(flags, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			if err := runRender(cmd, app, opts); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), opts.output)
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.output, "output", "o", "postcard.png", "Output PNG path")
	f.StringVar(&opts.background, "background", "", "Background image file")
	f.StringVar(&opts.topText, "top-text", postcard.DefaultTopText, "Top line")
	f.StringVar(&opts.bottomText, "bottom-text", postcard.DefaultBottomText, "Bottom line")
	f.StringVar(&opts.topFont, "top-font", "", "Top font family")
	f.StringVar(&opts.bottomFont, "bottom-font", "", "Bottom font family")
	f.StringVar(&opts.topColor, "top-color", "", "Top color, palette name or #rrggbb")
	f.StringVar(&opts.bottomColor, "bottom-color", "", "Bottom color, palette name or #rrggbb")
	return cmd
}

// drop is a payload applied at a canvas height.
type drop struct {
	p payload.Payload
	y float64
}

// colorPayload accepts a palette name or a hex value.
func colorPayload(pal *palette.Palette, s string) (payload.Payload, error) {
	if c, ok := pal.Lookup(s); ok {
		return payload.Color(c), nil
	}
	c, err := payload.ParseColor(s)
	if err != nil {
		return payload.Payload{}, err
	}
	return payload.Color(c), nil
}

// runRender drives the composer through the same operations the editor uses.
func runRender(cmd *cobra.Command, app *appContext, opts *renderOptions) error {
	ctx := cmd.Context()
	composer := postcard.NewComposer(app.registry, app.resolver, app.log)
	defer composer.Close()

	const topY, bottomY = 0, postcard.CanvasHeight - 1

	if opts.background != "" {
		raw, err := os.ReadFile(opts.background)
		if err != nil {
			return fmt.Errorf("read background: %w", err)
		}
		img, err := imagepkg.DecodeImage(raw)
		if err != nil {
			return fmt.Errorf("decode background %s: %w", opts.background, err)
		}
		if err := composer.SetBackgroundImage(ctx, img); err != nil {
			return err
		}
	}
	if err := composer.CommitText(ctx, postcard.Top, opts.topText); err != nil {
		return err
	}
	if err := composer.CommitText(ctx, postcard.Bottom, opts.bottomText); err != nil {
		return err
	}

	var drops []drop
	add := func(p payload.Payload, y float64) { drops = append(drops, drop{p, y}) }
	if opts.topFont != "" {
		add(payload.Text(opts.topFont), topY)
	}
	if opts.bottomFont != "" {
		add(payload.Text(opts.bottomFont), bottomY)
	}
	pal := palette.New()
	for _, c := range []drop{{y: topY}, {y: bottomY}} {
		value := opts.topColor
		if c.y == bottomY {
			value = opts.bottomColor
		}
		if value == "" {
			continue
		}
		p, err := colorPayload(pal, value)
		if err != nil {
			return err
		}
		add(p, c.y)
	}
	for _, d := range drops {
		if _, err := composer.Apply(ctx, d.p, d.y); err != nil {
			return err
		}
	}

	img, err := composer.Render(ctx)
	if err != nil {
		return err
	}
	if err := util.EnsureParent(opts.output); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	if err := imagepkg.SavePNG(img, opts.output); err != nil {
		return fmt.Errorf("write %s: %w", opts.output, err)
	}
	app.log.Info("postcard written", "path", opts.output)
	return nil
}

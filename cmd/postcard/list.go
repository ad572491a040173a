package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/youruser/postcard/internal/fonts"
	"github.com/youruser/postcard/internal/palette"
	"github.com/youruser/postcard/internal/payload"
)

func newFontsCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "fonts",
		Short: "List available font families in order",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newAppContext(flags, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			for _, name := range fonts.NewLister(app.registry).Names() {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}
}

func newPaletteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "palette",
		Short: "List the color palette",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			for i, e := range palette.New().Entries() {
				fmt.Fprintf(w, "%d\t%s\t%s\n", i, payload.HexColor(e.Color), e.Name)
			}
			return w.Flush()
		},
	}
}

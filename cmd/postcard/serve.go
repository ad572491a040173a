package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/youruser/postcard/internal/api"
	"github.com/youruser/postcard/internal/fonts"
	"github.com/youruser/postcard/internal/palette"
	"github.com/youruser/postcard/internal/postcard"
)

const shutdownGrace = 5 * time.Second

func newServeCmd(flags *rootFlags) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the postcard editor API",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newAppContext(flags, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			if addr != "" {
				app.cfg.Addr = addr
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return serve(ctx, app)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address, overrides config and PORT")
	return cmd
}

func serve(ctx context.Context, app *appContext) error {
	if app.cfg.LogLevel != "debug" && app.cfg.LogLevel != "trace" {
		gin.SetMode(gin.ReleaseMode)
	}

	composer := postcard.NewComposer(app.registry, app.resolver, app.log)
	defer composer.Close()

	srv := &api.Server{
		Composer:  composer,
		Fonts:     fonts.NewLister(app.registry),
		Faces:     app.registry,
		Palette:   palette.New(),
		PublicURL: app.cfg.PublicURL,
		Log:       app.log,
	}
	httpSrv := &http.Server{
		Addr:              app.cfg.Addr,
		Handler:           api.NewEngine(srv, app.log),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		app.log.Info("starting server", "addr", app.cfg.Addr, "public_url", app.cfg.PublicURL)
		errCh <- httpSrv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			app.log.Error(err, "server stopped")
			return err
		}
		return nil
	case <-ctx.Done():
	}

	app.log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()
	return httpSrv.Shutdown(shutdownCtx)
}

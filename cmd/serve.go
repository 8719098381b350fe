package cmd

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/brogergvhs/biblioscrape/internal/pipeline"
	"github.com/brogergvhs/biblioscrape/internal/render"
	"github.com/brogergvhs/biblioscrape/internal/server"
	"github.com/brogergvhs/biblioscrape/internal/ui"

	"github.com/spf13/cobra"
)

var (
	flagListen      string
	flagServeOutput string
)

func init() {
	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the author page with a Load button and a JSON API",
		RunE:  runServe,
	}

	addFetchFlags(serveCmd)
	serveCmd.Flags().StringVar(&flagListen, "listen", "", "listen address (default 127.0.0.1:8080)")
	serveCmd.Flags().StringVar(&flagServeOutput, "output", "", "also keep a static copy of the page at this path")

	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	opts := fetchOptions()
	opts.Listen = flagListen

	a, err := setup(opts)
	if err != nil {
		return err
	}
	defer a.log.Sync()

	var r pipeline.Renderer = render.Nop{}
	if flagServeOutput != "" {
		r = render.NewHTMLRenderer(flagServeOutput, render.Page{
			Title:  pageTitle,
			Source: a.cfg.TargetURL,
		})
	}

	board := server.NewStatusBoard()
	srv := server.New(server.Params{
		Runner:  a.pipeline(r, board),
		Session: a.session,
		Status:  board,
		Stats:   &ui.RunStats{},
		Log:     a.log,
		Title:   pageTitle,
		Source:  a.cfg.TargetURL,
	})

	httpSrv := &http.Server{
		Addr:              a.cfg.Listen,
		Handler:           srv,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- httpSrv.ListenAndServe()
	}()
	a.log.Infof("Serving on http://%s", a.cfg.Listen)

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	a.log.Infof("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	return httpSrv.Shutdown(shutdownCtx)
}

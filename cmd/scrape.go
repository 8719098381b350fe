package cmd

import (
	"bytes"
	"context"
	"fmt"

	"github.com/brogergvhs/biblioscrape/internal/config"
	"github.com/brogergvhs/biblioscrape/internal/pipeline"
	"github.com/brogergvhs/biblioscrape/internal/render"
	"github.com/brogergvhs/biblioscrape/internal/ui"
	"github.com/brogergvhs/biblioscrape/internal/util"

	"github.com/spf13/cobra"
)

var (
	flagFormat string
	flagOutput string
	flagFilter string
)

func init() {
	scrapeCmd := &cobra.Command{
		Use:   "scrape",
		Short: "Fetch the author index once and render it. Uses the selected config, overwritten by CLI flags",
		RunE:  runScrape,
	}

	addFetchFlags(scrapeCmd)
	scrapeCmd.Flags().StringVar(&flagFormat, "format", "", "output format: table, html or json")
	scrapeCmd.Flags().StringVar(&flagOutput, "output", "", "HTML page path (format html)")
	scrapeCmd.Flags().StringVar(&flagFilter, "filter", "", "only list authors whose name contains this text")

	rootCmd.AddCommand(scrapeCmd)
}

func runScrape(cmd *cobra.Command, _ []string) error {
	opts := fetchOptions()
	opts.Format = flagFormat
	opts.Output = flagOutput

	a, err := setup(opts)
	if err != nil {
		return err
	}
	defer a.log.Sync()

	// Terminal output is held back until the spinner is gone.
	var out bytes.Buffer

	var (
		r          pipeline.Renderer
		outputPath string
	)
	switch a.cfg.Format {
	case config.FormatHTML:
		r = render.NewHTMLRenderer(a.cfg.Output, render.Page{
			Title:  pageTitle,
			Source: a.cfg.TargetURL,
		})
		outputPath = a.cfg.Output
	case config.FormatJSON:
		r = render.NewJSONRenderer(&out)
	default:
		r = render.NewTableRenderer(&out)
	}

	filtering := cmd.Flags().Changed("filter")
	pipeRenderer := r
	if filtering {
		pipeRenderer = statsOnly{r}
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()
	stop := util.SetupInterruptHandler(cancel, outputPath)
	defer stop()

	console := ui.NewConsole(cmd.ErrOrStderr())
	if _, err := a.pipeline(pipeRenderer, console).Run(ctx); err != nil {
		return errScrapeFailed
	}

	if filtering {
		if err := render.Filter(a.session, r, flagFilter); err != nil {
			return fmt.Errorf("render filtered authors: %w", err)
		}
	}

	if _, err := out.WriteTo(cmd.OutOrStdout()); err != nil {
		return err
	}

	if a.cfg.Format == config.FormatHTML {
		fmt.Fprintf(cmd.ErrOrStderr(), "Page written to %s\n", a.cfg.Output)
	}

	return nil
}

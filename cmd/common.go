package cmd

import (
	"net/http"
	"os"
	"time"

	"github.com/brogergvhs/biblioscrape/internal/catalog"
	"github.com/brogergvhs/biblioscrape/internal/config"
	"github.com/brogergvhs/biblioscrape/internal/pipeline"
	"github.com/brogergvhs/biblioscrape/internal/session"
	"github.com/brogergvhs/biblioscrape/internal/ui"
	"github.com/brogergvhs/biblioscrape/internal/util"

	"github.com/spf13/cobra"
)

const pageTitle = "Biblioteca Marxista: Autores"

var (
	// source
	flagURL      string
	flagProxy    string
	flagDirect   bool
	flagSelector string
	flagMinBody  int
	flagTimeout  time.Duration

	// headers/auth
	flagCookie     string
	flagCookieFile string
	flagUserAgent  string
	flagCloudflare bool
)

// addFetchFlags registers the flags shared by every command that runs the
// pipeline.
func addFetchFlags(c *cobra.Command) {
	c.Flags().StringVar(&flagURL, "url", "", "page holding the authors table")
	c.Flags().StringVar(&flagProxy, "proxy", "", "CORS proxy template, {url} is replaced by the escaped target")
	c.Flags().BoolVar(&flagDirect, "direct", false, "fetch the target without a proxy")
	c.Flags().StringVar(&flagSelector, "selector", "", "CSS selector of the table rows (default \"#autores tr\")")
	c.Flags().IntVar(&flagMinBody, "min-body", 0, "minimum body length in bytes before a page counts as empty")
	c.Flags().DurationVar(&flagTimeout, "timeout", 0, "request timeout (e.g. 30s)")

	c.Flags().StringVar(&flagCookie, "cookie", "", "cookie string, e.g. \"key=value; other=123\"")
	c.Flags().StringVar(&flagCookieFile, "cookie-file", "", "path to a text file with cookies (one header line)")
	c.Flags().StringVar(&flagUserAgent, "user-agent", "", "override User-Agent")
	c.Flags().BoolVar(&flagCloudflare, "cloudflare-bypass", false, "mimic a browser TLS/header fingerprint (direct mode only)")
}

func fetchOptions() config.Options {
	return config.Options{
		IgnoreConfig:     flagIgnoreConfig,
		Debug:            flagDebug,
		TargetURL:        flagURL,
		ProxyURL:         flagProxy,
		Direct:           flagDirect,
		TableSelector:    flagSelector,
		MinBodyLength:    flagMinBody,
		Timeout:          flagTimeout,
		Cookie:           flagCookie,
		CookieFile:       flagCookieFile,
		UserAgent:        flagUserAgent,
		CloudflareBypass: flagCloudflare,
	}
}

// app is what every pipeline command needs once the config is resolved.
type app struct {
	cfg     *config.Config
	log     *ui.Logger
	client  *http.Client
	session *session.Session
}

func setup(opts config.Options) (*app, error) {
	cfg, usedPath, err := config.LoadMerged(opts)
	if err != nil {
		return nil, err
	}

	logSvc := ui.NewLogger(cfg.Debug)
	logSvc.Debugf("Config file: %s", usedPath)
	if cfg.Debug {
		cfg.Print(os.Stderr)
	}

	bypass := cfg.CloudflareBypass
	if bypass && cfg.ProxyURL != "" {
		logSvc.Infof("cloudflare_bypass only applies to direct fetches; ignored while a proxy is set")
		bypass = false
	}

	client, err := util.NewHTTPClient(util.HTTPClientOptions{
		Timeout:          cfg.Timeout,
		UserAgent:        util.PickUserAgent(cfg.UserAgent),
		Cookie:           cfg.Cookie,
		CookieFile:       cfg.CookieFile,
		CloudflareBypass: bypass,
		DebugLogger:      logSvc,
	})
	if err != nil {
		return nil, err
	}

	return &app{
		cfg:     cfg,
		log:     logSvc,
		client:  client,
		session: session.New(),
	}, nil
}

func (a *app) pipeline(r pipeline.Renderer, d pipeline.Display) *pipeline.Pipeline {
	return pipeline.New(a.client, a.session, a.cfg.PipelineOptions(), r, d, a.log)
}

// statsOnly forwards the letter stats and drops the author list, which is
// rendered afterwards through a filter.
type statsOnly struct {
	pipeline.Renderer
}

func (statsOnly) RenderAuthors([]catalog.AuthorRecord) error { return nil }

package config

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/brogergvhs/biblioscrape/internal/pipeline"

	"gopkg.in/yaml.v3"
)

const (
	FormatTable = "table"
	FormatHTML  = "html"
	FormatJSON  = "json"

	DefaultTimeout = 30 * time.Second
	DefaultOutput  = "authors.html"
	DefaultListen  = "127.0.0.1:8080"
)

type Config struct {
	TargetURL     string        `yaml:"target_url"`
	ProxyURL      string        `yaml:"proxy_url"`
	TableSelector string        `yaml:"table_selector"`
	MinBodyLength int           `yaml:"min_body_length"`
	Timeout       time.Duration `yaml:"timeout"`

	Format string `yaml:"format"`
	Output string `yaml:"output"`
	Listen string `yaml:"listen"`
	Debug  bool   `yaml:"debug"`

	Cookie           string `yaml:"cookie"`
	CookieFile       string `yaml:"cookie_file"`
	UserAgent        string `yaml:"user_agent"`
	CloudflareBypass bool   `yaml:"cloudflare_bypass"`
}

// Options are the CLI overrides. Zero values leave the profile alone.
type Options struct {
	IgnoreConfig     bool
	Debug            bool
	TargetURL        string
	ProxyURL         string
	Direct           bool
	TableSelector    string
	MinBodyLength    int
	Timeout          time.Duration
	Format           string
	Output           string
	Listen           string
	Cookie           string
	CookieFile       string
	UserAgent        string
	CloudflareBypass bool
}

func DefaultConfig() *Config {
	return &Config{
		TargetURL:     pipeline.DefaultTargetURL,
		ProxyURL:      pipeline.DefaultProxyURL,
		TableSelector: pipeline.DefaultTableSelector,
		MinBodyLength: pipeline.DefaultMinBodyLength,
		Timeout:       DefaultTimeout,
		Format:        FormatTable,
		Output:        DefaultOutput,
		Listen:        DefaultListen,
	}
}

func SaveYAML(cfg *Config, path string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// loadYAML decodes path over the defaults, so keys missing from the file
// keep their default value.
func loadYAML(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	c := DefaultConfig()
	if err := yaml.Unmarshal(b, c); err != nil {
		return nil, err
	}

	return c, nil
}

// LoadFile reads a single profile file the way LoadMerged would use it,
// without CLI overrides.
func LoadFile(path string) (*Config, error) {
	c, err := loadYAML(path)
	if err != nil {
		return nil, err
	}

	normalizeDefaults(c)
	if err := c.Validate(); err != nil {
		return nil, err
	}

	return c, nil
}

func LoadMerged(opts Options) (*Config, string, error) {
	if opts.IgnoreConfig {
		return finish(DefaultConfig(), opts, "(ignored config)")
	}

	activePath, err := ActiveConfigPath()
	if err == ErrNoConfig || activePath == "" {
		return finish(DefaultConfig(), opts,
			"(default config in memory)\nRun `biblioscrape config init` to create an actual config\n")
	}
	if err != nil {
		return nil, "", err
	}

	cfg, err := loadYAML(activePath)
	if err != nil {
		return nil, "", fmt.Errorf("failed to load config %s: %w", activePath, err)
	}

	return finish(cfg, opts, activePath)
}

func finish(cfg *Config, opts Options, used string) (*Config, string, error) {
	mergeConfig(cfg, opts)
	normalizeDefaults(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, "", err
	}

	return cfg, used, nil
}

func mergeConfig(c *Config, o Options) {
	if o.Debug {
		c.Debug = true
	}
	if o.TargetURL != "" {
		c.TargetURL = o.TargetURL
	}
	if o.ProxyURL != "" {
		c.ProxyURL = o.ProxyURL
	}
	if o.Direct {
		c.ProxyURL = ""
	}
	if o.TableSelector != "" {
		c.TableSelector = o.TableSelector
	}
	if o.MinBodyLength != 0 {
		c.MinBodyLength = o.MinBodyLength
	}
	if o.Timeout != 0 {
		c.Timeout = o.Timeout
	}
	if o.Format != "" {
		c.Format = o.Format
	}
	if o.Output != "" {
		c.Output = o.Output
	}
	if o.Listen != "" {
		c.Listen = o.Listen
	}
	if o.Cookie != "" {
		c.Cookie = o.Cookie
	}
	if o.CookieFile != "" {
		c.CookieFile = o.CookieFile
	}
	if o.UserAgent != "" {
		c.UserAgent = o.UserAgent
	}
	if o.CloudflareBypass {
		c.CloudflareBypass = true
	}
}

func normalizeDefaults(c *Config) {
	if c.TargetURL == "" {
		c.TargetURL = pipeline.DefaultTargetURL
	}
	if c.TableSelector == "" {
		c.TableSelector = pipeline.DefaultTableSelector
	}
	if c.MinBodyLength <= 0 {
		c.MinBodyLength = pipeline.DefaultMinBodyLength
	}
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
	c.Format = strings.ToLower(strings.TrimSpace(c.Format))
	if c.Format == "" {
		c.Format = FormatTable
	}
	if c.Output == "" {
		c.Output = DefaultOutput
	}
	if c.Listen == "" {
		c.Listen = DefaultListen
	}
}

func (c *Config) Validate() error {
	switch c.Format {
	case FormatTable, FormatHTML, FormatJSON:
	default:
		return fmt.Errorf("unknown format %q (want table, html or json)", c.Format)
	}

	return nil
}

func (c *Config) PipelineOptions() pipeline.Options {
	return pipeline.Options{
		TargetURL:     c.TargetURL,
		ProxyURL:      c.ProxyURL,
		TableSelector: c.TableSelector,
		MinBodyLength: c.MinBodyLength,
	}
}

func (c *Config) Print(w io.Writer) {
	_, _ = fmt.Fprintf(w, " -target_url: %s\n", c.TargetURL)
	if c.ProxyURL != "" {
		_, _ = fmt.Fprintf(w, " -proxy_url: %s\n", c.ProxyURL)
	} else {
		_, _ = fmt.Fprintln(w, " -proxy_url: (direct)")
	}
	_, _ = fmt.Fprintf(w, " -table_selector: %s\n", c.TableSelector)
	_, _ = fmt.Fprintf(w, " -min_body_length: %d\n", c.MinBodyLength)
	_, _ = fmt.Fprintf(w, " -timeout: %s\n", c.Timeout)
	_, _ = fmt.Fprintf(w, " -format: %s\n", c.Format)
	if c.Format == FormatHTML {
		_, _ = fmt.Fprintf(w, " -output: %s\n", c.Output)
	}
	_, _ = fmt.Fprintf(w, " -listen: %s\n", c.Listen)
	if c.Debug {
		_, _ = fmt.Fprintf(w, " -debug: %t\n", c.Debug)
	}
	if c.UserAgent != "" {
		_, _ = fmt.Fprintf(w, " -user_agent: %s\n", c.UserAgent)
	}
	if c.CookieFile != "" {
		_, _ = fmt.Fprintf(w, " -cookie_file: %s\n", c.CookieFile)
	}
	if c.CloudflareBypass {
		_, _ = fmt.Fprintf(w, " -cloudflare_bypass: %t\n", c.CloudflareBypass)
	}
}

// Package pipeline runs one scrape: fetch the page through the proxy, read
// it, parse the author table and hand the extracted views to a renderer.
package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/brogergvhs/biblioscrape/internal/catalog"
	"github.com/brogergvhs/biblioscrape/internal/session"
)

const (
	DefaultTargetURL     = "https://www.marxists.org/portugues/biblioteca.htm"
	DefaultProxyURL      = "https://api.allorigins.win/raw?url={url}"
	DefaultTableSelector = "#autores tr"
	DefaultMinBodyLength = 100
)

// Display is the status indicator and the control that starts a run.
type Display interface {
	SetTrigger(enabled bool, label string)
	SetStatus(level Level, message string)
}

type Renderer interface {
	RenderStats(stats []catalog.LetterStat) error
	RenderAuthors(authors []catalog.AuthorRecord) error
}

type Logger interface {
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Errorf(format string, args ...any)
}

type Options struct {
	TargetURL     string
	ProxyURL      string
	TableSelector string
	MinBodyLength int
}

func (o *Options) normalize() {
	if o.TargetURL == "" {
		o.TargetURL = DefaultTargetURL
	}
	if o.TableSelector == "" {
		o.TableSelector = DefaultTableSelector
	}
	if o.MinBodyLength <= 0 {
		o.MinBodyLength = DefaultMinBodyLength
	}
}

// RequestURL builds the URL actually requested. The target is escaped into
// the {url} placeholder of proxy, or appended when there is none. An empty
// proxy means the target is fetched directly.
func RequestURL(proxy, target string) string {
	if proxy == "" {
		return target
	}

	escaped := url.QueryEscape(target)
	if strings.Contains(proxy, "{url}") {
		return strings.ReplaceAll(proxy, "{url}", escaped)
	}

	return proxy + escaped
}

type Pipeline struct {
	client   *http.Client
	session  *session.Session
	opts     Options
	renderer Renderer
	display  Display
	log      Logger
	now      func() time.Time

	mu      sync.Mutex
	state   State
	lastErr error
}

func New(c *http.Client, sess *session.Session, opts Options, r Renderer, d Display, log Logger) *Pipeline {
	opts.normalize()
	if d == nil {
		d = nopDisplay{}
	}
	if log == nil {
		log = nopLogger{}
	}

	return &Pipeline{
		client:   c,
		session:  sess,
		opts:     opts,
		renderer: r,
		display:  d,
		log:      log,
		now:      time.Now,
		state:    Idle,
	}
}

func (p *Pipeline) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// LastError is the error of the last finished run, nil after a success.
func (p *Pipeline) LastError() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.lastErr
}

func (p *Pipeline) Options() Options {
	return p.opts
}

// Run performs one scrape. On success the session snapshot is replaced and
// both views have been rendered; on failure nothing is rendered and the
// session keeps its previous snapshot.
func (p *Pipeline) Run(ctx context.Context) (*session.Snapshot, error) {
	p.display.SetTrigger(false, LabelLoading)
	p.enter(Connecting, MsgConnecting)

	snap, err := p.run(ctx)
	if err != nil {
		p.finish(Failed, err)
		p.log.Errorf("Scrape failed: %v", err)
		p.display.SetStatus(LevelError, Describe(err))
		p.display.SetTrigger(true, LabelRetry)
		return nil, err
	}

	p.finish(Success, nil)
	p.log.Infof("Found %d authors in %d letter groups", len(snap.Authors), len(snap.Stats))
	p.display.SetStatus(LevelSuccess, MsgLoaded)
	p.display.SetTrigger(true, LabelReload)

	return snap, nil
}

func (p *Pipeline) run(ctx context.Context) (*session.Snapshot, error) {
	reqURL := RequestURL(p.opts.ProxyURL, p.opts.TargetURL)
	p.log.Debugf("Starting fetch at: %s", reqURL)

	resp, err := p.connect(ctx, reqURL)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			p.log.Debugf("Warning: failed to close response body: %v", cerr)
		}
	}()

	p.enter(Downloading, MsgDownloading)
	body, err := p.download(resp)
	if err != nil {
		return nil, err
	}

	p.enter(Parsing, MsgProcessing)
	rows, err := p.parse(body)
	if err != nil {
		return nil, err
	}

	snap := &session.Snapshot{
		Authors:   catalog.ExtractAuthors(rows),
		Stats:     catalog.ExtractLetterStats(rows),
		Source:    p.opts.TargetURL,
		ScrapedAt: p.now(),
	}

	if p.renderer != nil {
		if err := p.renderer.RenderStats(snap.Stats); err != nil {
			return nil, &UnexpectedFault{Stage: "render", Err: err}
		}
		if err := p.renderer.RenderAuthors(snap.Authors); err != nil {
			return nil, &UnexpectedFault{Stage: "render", Err: err}
		}
	}

	if p.session != nil {
		p.session.Replace(snap)
	}

	return snap, nil
}

func (p *Pipeline) connect(ctx context.Context, reqURL string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, &UnexpectedFault{Stage: "connect", Err: err}
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, &UnexpectedFault{Stage: "connect", Err: err}
	}

	p.log.Debugf("Response status: %s", resp.Status)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		_ = resp.Body.Close()
		return nil, &TransportError{URL: reqURL, StatusCode: resp.StatusCode, Status: resp.Status}
	}

	return resp, nil
}

func (p *Pipeline) download(resp *http.Response) ([]byte, error) {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &UnexpectedFault{Stage: "download", Err: err}
	}

	p.log.Debugf("Downloaded %d bytes (minimum %d)", len(body), p.opts.MinBodyLength)

	if len(body) < p.opts.MinBodyLength {
		return nil, &EmptyContentError{Length: len(body), Min: p.opts.MinBodyLength}
	}

	return body, nil
}

func (p *Pipeline) parse(body []byte) ([]catalog.Row, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, &UnexpectedFault{Stage: "parse", Err: fmt.Errorf("parse html: %w", err)}
	}

	rows := catalog.RowsFromSelection(doc.Find(p.opts.TableSelector))
	if len(rows) == 0 {
		return nil, &StructureNotFoundError{Selector: p.opts.TableSelector}
	}

	p.log.Debugf("Table %q has %d rows", p.opts.TableSelector, len(rows))

	return rows, nil
}

func (p *Pipeline) enter(s State, msg string) {
	p.mu.Lock()
	prev := p.state
	p.state = s
	p.mu.Unlock()

	p.log.Debugf("State %s -> %s", prev, s)
	p.display.SetStatus(LevelInfo, msg)
}

func (p *Pipeline) finish(s State, err error) {
	p.mu.Lock()
	prev := p.state
	p.state = s
	p.lastErr = err
	p.mu.Unlock()

	p.log.Debugf("State %s -> %s", prev, s)
}

type nopDisplay struct{}

func (nopDisplay) SetTrigger(bool, string) {}
func (nopDisplay) SetStatus(Level, string) {}

type nopLogger struct{}

func (nopLogger) Debugf(string, ...any) {}
func (nopLogger) Infof(string, ...any)  {}
func (nopLogger) Errorf(string, ...any) {}

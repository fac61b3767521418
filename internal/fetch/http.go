package fetch

import (
	"context"
	"io"
	"net"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/pitchside/playerfacts/internal/resilience"
)

const maxBodyBytes = 512 * 1024

// Options configures the HTTP renderer.
type Options struct {
	UserAgent string
	Timeout   time.Duration
	// PerHostRate limits requests per second per host. Hosts not listed
	// fall back to DefaultRate.
	PerHostRate map[string]rate.Limit
	DefaultRate rate.Limit
	// Retry governs transient-failure retries. Zero values take the
	// package defaults.
	Retry resilience.RetryConfig
}

// HTTPRenderer implements Renderer and LinkFinder over plain net/http.
// Pages that need a scripted browser come back as JS shells; block
// detection turns those into fetch errors so the strategy moves on.
type HTTPRenderer struct {
	client *http.Client
	opts   Options

	mu       sync.Mutex
	limiters map[string]*rate.Limiter
}

// NewHTTPRenderer creates an HTTPRenderer with the given options.
func NewHTTPRenderer(opts Options) *HTTPRenderer {
	if opts.Timeout == 0 {
		opts.Timeout = 25 * time.Second
	}
	if opts.UserAgent == "" {
		opts.UserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"
	}
	if opts.DefaultRate == 0 {
		opts.DefaultRate = 2
	}
	return &HTTPRenderer{
		client: &http.Client{
			Timeout: opts.Timeout,
			Transport: &http.Transport{
				DialContext:         (&net.Dialer{Timeout: 10 * time.Second}).DialContext,
				TLSHandshakeTimeout: 10 * time.Second,
				MaxIdleConnsPerHost: 4,
			},
		},
		opts:     opts,
		limiters: make(map[string]*rate.Limiter),
	}
}

func (r *HTTPRenderer) limiterFor(rawURL string) *rate.Limiter {
	host := hostOf(rawURL)

	r.mu.Lock()
	defer r.mu.Unlock()
	if lim, ok := r.limiters[host]; ok {
		return lim
	}
	limit := r.opts.DefaultRate
	if l, ok := r.opts.PerHostRate[host]; ok {
		limit = l
	}
	lim := rate.NewLimiter(limit, 1)
	r.limiters[host] = lim
	return lim
}

// Render fetches a URL and returns its flattened visible text.
func (r *HTTPRenderer) Render(ctx context.Context, rawURL string) (string, error) {
	body, _, err := r.get(ctx, rawURL)
	if err != nil {
		return "", err
	}
	return StripHTML(string(body)), nil
}

// FindLinks fetches a page and returns anchors whose href contains the
// given substring.
func (r *HTTPRenderer) FindLinks(ctx context.Context, pageURL, hrefSubstring string) ([]Link, error) {
	body, _, err := r.get(ctx, pageURL)
	if err != nil {
		return nil, err
	}

	var links []Link
	for _, m := range anchorRe.FindAllStringSubmatch(string(body), -1) {
		href := strings.TrimSpace(m[1])
		if hrefSubstring != "" && !strings.Contains(href, hrefSubstring) {
			continue
		}
		text := tagRe.ReplaceAllString(m[2], " ")
		links = append(links, Link{
			Href: href,
			Text: strings.TrimSpace(spaceRe.ReplaceAllString(text, " ")),
		})
	}
	return links, nil
}

type response struct {
	body   []byte
	status int
}

func (r *HTTPRenderer) get(ctx context.Context, rawURL string) ([]byte, int, error) {
	if err := r.limiterFor(rawURL).Wait(ctx); err != nil {
		return nil, 0, eris.Wrap(err, "fetch: rate limiter wait")
	}

	cfg := r.opts.Retry
	if cfg.OnRetry == nil {
		cfg.OnRetry = resilience.RetryLogger(hostOf(rawURL), rawURL)
	}

	resp, err := resilience.Do(ctx, cfg, func(ctx context.Context) (response, error) {
		return r.getOnce(ctx, rawURL)
	})
	if err != nil {
		return nil, resp.status, err
	}
	return resp.body, resp.status, nil
}

// statusErr wraps non-200 responses. Throttle and server-hiccup statuses
// are marked transient so the retry loop picks them up; blocked pages and
// hard 4xx responses fall through to the next strategy instead.
func statusErr(ferr *FetchError) error {
	if resilience.IsTransientHTTPStatus(ferr.Status) {
		return resilience.NewTransientError(ferr, ferr.Status)
	}
	return ferr
}

func hostOf(rawURL string) string {
	if u, err := url.Parse(rawURL); err == nil {
		return u.Host
	}
	return ""
}

func (r *HTTPRenderer) getOnce(ctx context.Context, rawURL string) (response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return response{}, eris.Wrap(err, "fetch: create request")
	}
	req.Header.Set("User-Agent", r.opts.UserAgent)

	resp, err := r.client.Do(req)
	if err != nil {
		return response{}, &FetchError{URL: rawURL, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return response{status: resp.StatusCode}, &FetchError{URL: rawURL, Err: err}
	}

	if blocked, kind := DetectBlock(resp, body); blocked {
		zap.L().Debug("fetch: page blocked",
			zap.String("url", rawURL),
			zap.String("block", string(kind)),
		)
		return response{status: resp.StatusCode}, &FetchError{URL: rawURL, Status: resp.StatusCode, Err: eris.Errorf("blocked (%s)", kind)}
	}

	if resp.StatusCode != http.StatusOK {
		return response{status: resp.StatusCode}, statusErr(&FetchError{URL: rawURL, Status: resp.StatusCode})
	}

	return response{body: body, status: resp.StatusCode}, nil
}

var (
	anchorRe = regexp.MustCompile(`(?is)<a\s[^>]*href="([^"]+)"[^>]*>(.*?)</a>`)
	tagRe    = regexp.MustCompile(`<[^>]+>`)
	spaceRe  = regexp.MustCompile(`[ \t]+`)
	nlRe     = regexp.MustCompile(`\n{3,}`)
)

// StripHTML removes script/style/nav/footer blocks, strips tags, decodes
// common entities, and collapses whitespace into pattern-matchable text.
func StripHTML(html string) string {
	for _, tag := range []string{"script", "style", "nav", "footer"} {
		re := regexp.MustCompile(`(?is)<` + tag + `[^>]*>.*?</` + tag + `>`)
		html = re.ReplaceAllString(html, "")
	}

	html = tagRe.ReplaceAllString(html, " ")

	html = strings.NewReplacer(
		"&amp;", "&",
		"&lt;", "<",
		"&gt;", ">",
		"&quot;", `"`,
		"&#39;", "'",
		"&nbsp;", " ",
	).Replace(html)

	html = spaceRe.ReplaceAllString(html, " ")
	html = nlRe.ReplaceAllString(html, "\n\n")
	return strings.TrimSpace(html)
}

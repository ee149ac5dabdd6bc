package fetch

import (
	"context"
	"fmt"
	"net/url"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/temoto/robotstxt"
	"golang.org/x/time/rate"

	"careerwatch/internal/config"
)

// HTTPFetcher issues a single GET per fetch with a realistic browser header
// set. It rate-limits per host and honors robots.txt, failing open when the
// robots file itself cannot be read.
type HTTPFetcher struct {
	client      *resty.Client
	ua          string
	mu          sync.Mutex
	limiters    map[string]*rate.Limiter
	robotsCache map[string]*robotstxt.RobotsData
}

func NewHTTPFetcher(userAgent string, timeout time.Duration) *HTTPFetcher {
	return &HTTPFetcher{
		client:      resty.New().SetTimeout(timeout),
		ua:          userAgent,
		limiters:    map[string]*rate.Limiter{},
		robotsCache: map[string]*robotstxt.RobotsData{},
	}
}

func (f *HTTPFetcher) Fetch(ctx context.Context, src config.Source) (string, error) {
	u, err := url.Parse(src.URL)
	if err != nil {
		return "", &FetchError{Err: err}
	}
	if u.Scheme == "" {
		u.Scheme = "https"
	}

	if !f.allowed(ctx, u) {
		return "", &FetchError{Err: fmt.Errorf("blocked by robots.txt: %s", u)}
	}
	if err := f.limiterFor(u.Hostname()).Wait(ctx); err != nil {
		return "", err
	}

	res, err := f.client.R().
		SetContext(ctx).
		SetHeaders(f.headers(src, u)).
		Get(u.String())
	if err != nil {
		return "", &FetchError{Err: err}
	}
	if !res.IsSuccess() {
		return "", &FetchError{Status: res.StatusCode(), Err: fmt.Errorf("status %d", res.StatusCode())}
	}
	return res.String(), nil
}

// headers mimics an ordinary Chrome navigation to reduce trivial bot
// blocking.
func (f *HTTPFetcher) headers(src config.Source, u *url.URL) map[string]string {
	referer := src.Referer
	if referer == "" {
		referer = fmt.Sprintf("%s://%s/", u.Scheme, u.Host)
	}
	return map[string]string{
		"User-Agent":         f.ua,
		"Accept":             "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8",
		"Accept-Language":    "en-US,en;q=0.9",
		"Referer":            referer,
		"Dnt":                "1",
		"Sec-Ch-Ua":          `"Not_A Brand";v="8", "Chromium";v="120"`,
		"Sec-Ch-Ua-Mobile":   "?0",
		"Sec-Ch-Ua-Platform": `"Windows"`,
		"Sec-Fetch-Dest":     "document",
		"Sec-Fetch-Mode":     "navigate",
		"Sec-Fetch-Site":     "same-origin",
	}
}

func (f *HTTPFetcher) limiterFor(host string) *rate.Limiter {
	f.mu.Lock()
	defer f.mu.Unlock()
	if l, ok := f.limiters[host]; ok {
		return l
	}
	l := rate.NewLimiter(rate.Every(time.Second), 2) // 1 req/s, burst 2
	f.limiters[host] = l
	return l
}

func (f *HTTPFetcher) allowed(ctx context.Context, u *url.URL) bool {
	data, err := f.robotsFor(ctx, u)
	if err != nil {
		return true // fail open to avoid blocking everything
	}
	group := data.FindGroup(f.ua)
	if group == nil {
		group = data.FindGroup("*")
	}
	if group == nil {
		return true
	}
	path := u.Path
	if path == "" {
		path = "/"
	}
	return group.Test(path)
}

func (f *HTTPFetcher) robotsFor(ctx context.Context, u *url.URL) (*robotstxt.RobotsData, error) {
	host := u.Hostname()
	f.mu.Lock()
	if data, ok := f.robotsCache[host]; ok {
		f.mu.Unlock()
		return data, nil
	}
	f.mu.Unlock()

	robotsURL := fmt.Sprintf("%s://%s/robots.txt", u.Scheme, u.Host)
	res, err := f.client.R().
		SetContext(ctx).
		SetHeader("User-Agent", f.ua).
		Get(robotsURL)
	if err != nil {
		return nil, err
	}

	data, err := robotstxt.FromStatusAndBytes(res.StatusCode(), res.Body())
	if err != nil {
		return nil, err
	}

	f.mu.Lock()
	f.robotsCache[host] = data
	f.mu.Unlock()
	return data, nil
}

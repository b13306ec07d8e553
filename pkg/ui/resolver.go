package ui

import (
	"context"
	"errors"
	"io/fs"
	"net/http"
	"net/url"
	"path"
	"strings"
	"sync"
	"time"
)

// ErrUnknownSource is returned by resolvers that cannot judge a source. The
// image then renders in its loading state and the browser decides.
var ErrUnknownSource = errors.New("ui: image source not handled by resolver")

// ImageResolver reports whether an image source is reachable.
type ImageResolver interface {
	Reachable(ctx context.Context, src string) (bool, error)
}

// ImageResolverFunc adapts a function to ImageResolver.
type ImageResolverFunc func(ctx context.Context, src string) (bool, error)

func (f ImageResolverFunc) Reachable(ctx context.Context, src string) (bool, error) {
	return f(ctx, src)
}

// FSResolver checks local static assets served under Prefix against an fs.FS.
type FSResolver struct {
	FS     fs.FS
	Prefix string
}

func (r FSResolver) Reachable(_ context.Context, src string) (bool, error) {
	if r.FS == nil || isRemote(src) {
		return false, ErrUnknownSource
	}
	prefix := "/" + strings.Trim(r.Prefix, "/") + "/"
	if prefix == "//" {
		prefix = "/"
	}
	clean := src
	if idx := strings.IndexAny(clean, "?#"); idx >= 0 {
		clean = clean[:idx]
	}
	if !strings.HasPrefix(clean, prefix) {
		return false, ErrUnknownSource
	}
	name := path.Clean(strings.TrimPrefix(clean, prefix))
	if !fs.ValidPath(name) || name == "." {
		return false, nil
	}
	info, err := fs.Stat(r.FS, name)
	if err != nil {
		return false, nil
	}
	return !info.IsDir(), nil
}

// HTTPResolver checks remote images with a HEAD request. Results are cached
// for TTL so repeated renders do not repeat the request.
type HTTPResolver struct {
	Client  *http.Client
	Timeout time.Duration
	TTL     time.Duration

	mu    sync.RWMutex
	cache map[string]cachedCheck
	now   func() time.Time
}

type cachedCheck struct {
	ok      bool
	expires time.Time
}

// NewHTTPResolver builds a resolver with the given per-request timeout.
func NewHTTPResolver(client *http.Client, timeout time.Duration) *HTTPResolver {
	if client == nil {
		client = http.DefaultClient
	}
	if timeout <= 0 {
		timeout = 2 * time.Second
	}
	return &HTTPResolver{
		Client:  client,
		Timeout: timeout,
		TTL:     5 * time.Minute,
		cache:   make(map[string]cachedCheck),
		now:     time.Now,
	}
}

func (r *HTTPResolver) Reachable(ctx context.Context, src string) (bool, error) {
	if !isRemote(src) {
		return false, ErrUnknownSource
	}
	if ok, hit := r.cached(src); hit {
		return ok, nil
	}

	headCtx, cancel := context.WithTimeout(ctx, r.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(headCtx, http.MethodHead, src, nil)
	if err != nil {
		return false, nil
	}
	client := r.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return false, ctx.Err()
		}
		r.store(src, false)
		return false, nil
	}
	resp.Body.Close()

	ok := resp.StatusCode >= 200 && resp.StatusCode < 400
	r.store(src, ok)
	return ok, nil
}

func (r *HTTPResolver) cached(src string) (bool, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	entry, ok := r.cache[src]
	if !ok || r.clock().After(entry.expires) {
		return false, false
	}
	return entry.ok, true
}

func (r *HTTPResolver) store(src string, ok bool) {
	if r.TTL <= 0 {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.cache == nil {
		r.cache = make(map[string]cachedCheck)
	}
	r.cache[src] = cachedCheck{ok: ok, expires: r.clock().Add(r.TTL)}
}

func (r *HTTPResolver) clock() time.Time {
	if r.now != nil {
		return r.now()
	}
	return time.Now()
}

// ChainResolver asks each resolver in turn and returns the first verdict that
// is not ErrUnknownSource.
type ChainResolver []ImageResolver

func (c ChainResolver) Reachable(ctx context.Context, src string) (bool, error) {
	for _, resolver := range c {
		if resolver == nil {
			continue
		}
		ok, err := resolver.Reachable(ctx, src)
		if errors.Is(err, ErrUnknownSource) {
			continue
		}
		return ok, err
	}
	return false, ErrUnknownSource
}

func isRemote(src string) bool {
	u, err := url.Parse(strings.TrimSpace(src))
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

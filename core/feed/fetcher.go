package feed

import (
	"context"
	"errors"
	"fmt"
	neturl "net/url"
	"time"

	"github.com/gofiber/fiber/v2"
)

// ErrStatus is wrapped when an upstream answers with a non-2xx status.
var ErrStatus = errors.New("unexpected status")

// Fetcher downloads a remote document.
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// HTTPFetcher fetches documents with the Fiber client.
type HTTPFetcher struct {
	// Timeout bounds each request. A context deadline that is sooner wins.
	Timeout time.Duration
	// MaxRedirects follows redirects such as the ones published spreadsheets issue.
	MaxRedirects int
}

// NewHTTPFetcher creates a fetcher with the given timeout.
func NewHTTPFetcher(timeout time.Duration) *HTTPFetcher {
	return &HTTPFetcher{Timeout: timeout, MaxRedirects: 5}
}

// ErrRedirects is wrapped when an upstream keeps redirecting past MaxRedirects.
var ErrRedirects = errors.New("too many redirects")

// Fetch downloads url. Redirects are followed hop by hop so the timeout
// bounds the whole chain; the Fiber agent ignores its redirect limit once
// a timeout is set.
func (f *HTTPFetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var deadline time.Time
	if f.Timeout > 0 {
		deadline = time.Now().Add(f.Timeout)
	}
	if d, ok := ctx.Deadline(); ok && (deadline.IsZero() || d.Before(deadline)) {
		deadline = d
	}

	target := url
	for hop := 0; ; hop++ {
		code, body, location, err := f.get(target, deadline)
		if err != nil {
			return nil, fmt.Errorf("fetch %s: %w", url, err)
		}
		if !isRedirect(code) || location == "" {
			if code < fiber.StatusOK || code >= fiber.StatusMultipleChoices {
				return nil, fmt.Errorf("fetch %s: %w %d", url, ErrStatus, code)
			}
			return body, nil
		}
		if hop >= f.MaxRedirects {
			if f.MaxRedirects <= 0 {
				return nil, fmt.Errorf("fetch %s: %w %d", url, ErrStatus, code)
			}
			return nil, fmt.Errorf("fetch %s: %w", url, ErrRedirects)
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if target, err = resolve(target, location); err != nil {
			return nil, fmt.Errorf("fetch %s: %w", url, err)
		}
	}
}

// get performs a single request and reports the Location header of the reply.
func (f *HTTPFetcher) get(target string, deadline time.Time) (int, []byte, string, error) {
	a := fiber.Get(target)
	a.Set(fiber.HeaderAccept, "application/json, text/csv, */*")
	if !deadline.IsZero() {
		remaining := time.Until(deadline)
		if remaining <= 0 {
			fiber.ReleaseAgent(a)
			return 0, nil, "", context.DeadlineExceeded
		}
		a.Timeout(remaining)
	}

	resp := fiber.AcquireResponse()
	defer fiber.ReleaseResponse(resp)
	a.SetResponse(resp)

	code, body, errs := a.Bytes()
	if len(errs) > 0 {
		return 0, nil, "", errors.Join(errs...)
	}
	return code, body, string(resp.Header.Peek(fiber.HeaderLocation)), nil
}

func isRedirect(code int) bool {
	switch code {
	case fiber.StatusMovedPermanently, fiber.StatusFound, fiber.StatusSeeOther,
		fiber.StatusTemporaryRedirect, fiber.StatusPermanentRedirect:
		return true
	}
	return false
}

// resolve turns a possibly relative Location into an absolute URL.
func resolve(base, location string) (string, error) {
	b, err := neturl.Parse(base)
	if err != nil {
		return "", err
	}
	ref, err := neturl.Parse(location)
	if err != nil {
		return "", err
	}
	return b.ResolveReference(ref).String(), nil
}

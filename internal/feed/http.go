package feed

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/bradykim7/shopfront/internal/catalog"
)

const (
	maxRetries        = 3
	defaultTimeout    = 30 * time.Second
	retryWaitDuration = 2 * time.Second
)

// HTTPSource fetches the feed from a live storefront. A JSON response is
// used as is; an HTML page has the feed extracted with Selector.
type HTTPSource struct {
	URL      string
	Selector string
	Client   *http.Client
	Headers  map[string]string
	// RetryWait is the pause between attempts
	RetryWait time.Duration
	log       *zap.Logger
}

var _ catalog.Source = (*HTTPSource)(nil)

// NewHTTPSource creates a new HTTP source with default client settings
func NewHTTPSource(url, selector string, log *zap.Logger) *HTTPSource {
	if strings.TrimSpace(selector) == "" {
		selector = DefaultSelector
	}
	return &HTTPSource{
		URL:       url,
		Selector:  selector,
		Client:    &http.Client{Timeout: defaultTimeout},
		Headers:   defaultHeaders(),
		RetryWait: retryWaitDuration,
		log:       log.Named("http-feed"),
	}
}

// Name returns the name of the source
func (s *HTTPSource) Name() string {
	return "http:" + s.URL
}

// Read fetches the URL and returns the feed
func (s *HTTPSource) Read(ctx context.Context) ([]byte, error) {
	body, contentType, err := s.fetch(ctx)
	if err != nil {
		return nil, err
	}
	if mediaType, _, _ := mime.ParseMediaType(contentType); strings.HasSuffix(mediaType, "json") {
		return body, nil
	}
	return ExtractFeed(bytes.NewReader(body), s.Selector)
}

// fetch retrieves the URL, retrying transport errors and non-OK statuses
func (s *HTTPSource) fetch(ctx context.Context) ([]byte, string, error) {
	var lastErr error

	for attempt := 1; attempt <= maxRetries; attempt++ {
		body, contentType, err := s.get(ctx)
		if err == nil {
			s.log.Debug("Fetched feed",
				zap.String("url", s.URL),
				zap.Int("content_length", len(body)))
			return body, contentType, nil
		}
		lastErr = err

		s.log.Warn("Feed request failed",
			zap.Error(err),
			zap.String("url", s.URL),
			zap.Int("attempt", attempt))

		if attempt == maxRetries {
			break
		}
		select {
		case <-ctx.Done():
			return nil, "", ctx.Err()
		case <-time.After(s.RetryWait):
		}
	}

	return nil, "", fmt.Errorf("failed to fetch feed after %d attempts: %w", maxRetries, lastErr)
}

func (s *HTTPSource) get(ctx context.Context) ([]byte, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL, nil)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create request: %w", err)
	}
	for key, value := range s.Headers {
		req.Header.Set(key, value)
	}

	resp, err := s.Client.Do(req)
	if err != nil {
		return nil, "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("unexpected status code %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", fmt.Errorf("failed to read response body: %w", err)
	}
	return body, resp.Header.Get("Content-Type"), nil
}

func defaultHeaders() map[string]string {
	return map[string]string{
		"User-Agent":      "shopfront-feed/1.0",
		"Accept":          "application/json,text/html;q=0.9,*/*;q=0.8",
		"Accept-Language": "en-US,en;q=0.5",
		"Cache-Control":   "no-cache",
	}
}

package feed

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/bradykim7/shopfront/internal/catalog"
)

// DefaultSelector matches the script element the theme embeds the feed in
const DefaultSelector = "script[data-product-feed]"

// ErrFeedNotFound is returned when the page has no feed element
var ErrFeedNotFound = errors.New("product feed element not found")

// PageSource extracts the JSON feed embedded in a storefront HTML page
type PageSource struct {
	Path     string
	Selector string
}

var _ catalog.Source = (*PageSource)(nil)

// NewPageSource creates a new page source. An empty selector uses DefaultSelector.
func NewPageSource(path, selector string) *PageSource {
	if strings.TrimSpace(selector) == "" {
		selector = DefaultSelector
	}
	return &PageSource{Path: path, Selector: selector}
}

// Name returns the name of the source
func (s *PageSource) Name() string {
	return "page:" + s.Path
}

// Read loads the page and returns the feed element contents
func (s *PageSource) Read(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	content, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to read page: %w", err)
	}
	return ExtractFeed(bytes.NewReader(content), s.Selector)
}

// ExtractFeed returns the text of the first element matching selector.
// Script contents are raw text, so the JSON comes back untouched.
func ExtractFeed(r io.Reader, selector string) ([]byte, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	sel := doc.Find(selector).First()
	if sel.Length() == 0 {
		return nil, fmt.Errorf("%w: %s", ErrFeedNotFound, selector)
	}

	text := strings.TrimSpace(sel.Text())
	if text == "" {
		return nil, catalog.ErrEmptyFeed
	}
	return []byte(text), nil
}

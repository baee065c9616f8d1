package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bradykim7/shopfront/internal/catalog"
	"github.com/bradykim7/shopfront/internal/models"
	"github.com/bradykim7/shopfront/internal/page"
)

func price(v float64) *float64 { return &v }

func testController(t *testing.T, query string, pageSize int) *page.Controller {
	t.Helper()
	tags := func(tags ...string) models.TagMap { return catalog.ParseTags(tags) }
	products := []models.Product{
		{ID: "A", Name: "Arc Jacket", Vendor: "Lincoln", URL: "/products/arc", Image: "/a.jpg", ImageAlt: "Arc Jacket",
			Price: 10, ComparePrice: price(15), Available: true, Badge: models.BadgeSale, ParsedTags: tags("Industry: Welding")},
		{ID: "B", Name: "Acid Apron", URL: "/products/apron", Image: "/b.jpg", ImageAlt: "Acid Apron",
			Price: 1250, Featured: 1, Available: false, Badge: models.BadgeNew, ParsedTags: tags("Industry: Chemical")},
		{ID: "C", Name: "Spark Boots", URL: "/products/boots", Image: "/c.jpg", ImageAlt: "Spark Boots",
			Price: 15, Featured: 2, Available: true, Badge: models.BadgeNone, ParsedTags: tags("Industry: Welding", "Gender: Men"),
			Variants: []models.Variant{{Title: "9", Available: true}, {Title: "10", Available: false}}},
	}
	snap := catalog.NewStaticStore(products, catalog.DefaultOptions()).Snapshot()
	return page.FromQuery(snap, catalog.DefaultCollections(), query, pageSize)
}

func newRenderer(t *testing.T) *Renderer {
	t.Helper()
	r, err := New()
	require.NoError(t, err)
	return r
}

func parse(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	return doc
}

func cardIDs(doc *goquery.Document) []string {
	var out []string
	doc.Find("li.product-card").Each(func(_ int, s *goquery.Selection) {
		out = append(out, s.AttrOr("data-product-id", ""))
	})
	return out
}

// optionCheckbox finds the checkbox of one filter option
func optionCheckbox(doc *goquery.Document, key, value string) *goquery.Selection {
	form := doc.Find(`fieldset[data-group="` + key + `"] form.filter-option`).FilterFunction(func(_ int, s *goquery.Selection) bool {
		return s.Find(`input[type=hidden][name=value]`).AttrOr("value", "") == value
	})
	return form.Find(`input[type=checkbox]`)
}

func TestGrid(t *testing.T) {
	t.Parallel()

	r := newRenderer(t)
	ctrl := testController(t, "Industry=Welding", page.DefaultPageSize)

	var buf bytes.Buffer
	require.NoError(t, r.Grid(&buf, ctrl.View()))
	doc := parse(t, buf.String())

	assert.Equal(t, []string{"A", "C"}, cardIDs(doc))
	assert.Equal(t, "Industry=Welding", doc.Find("#grid-root").AttrOr("data-query", ""))
	assert.Equal(t, "2", doc.Find(".result-count").AttrOr("data-result-count", ""))
	assert.Equal(t, "1", doc.Find(".filter-count").AttrOr("data-active-count", ""))

	checked := doc.Find(`fieldset[data-group="Industry"] input[type=checkbox][checked]`)
	require.Equal(t, 1, checked.Length())
	assert.Equal(t, "Welding", checked.Closest("form").Find(`input[type=hidden][name=value]`).AttrOr("value", ""))

	pill := doc.Find("li.pill")
	require.Equal(t, 1, pill.Length())
	assert.Equal(t, "Industry", pill.AttrOr("data-key", ""))
	assert.Equal(t, "Welding", pill.AttrOr("data-value", ""))
	assert.Equal(t, "Industry=Welding", pill.Find(`input[name=state]`).AttrOr("value", ""))

	card := doc.Find(`li.product-card[data-product-id="A"]`)
	assert.Equal(t, "Sale", strings.TrimSpace(card.Find(".badge").Text()))
	assert.Equal(t, "$10.00 $15.00", strings.TrimSpace(card.Find(".price").Text()))
	assert.Equal(t, "/products/A/quick-view", card.Find("button.quick-view").AttrOr("hx-get", ""))

	assert.Equal(t, 0, doc.Find(".empty-state").Length())
	assert.Equal(t, 0, doc.Find("form.load-more").Length())
}

func TestGridDisablesDeadOptions(t *testing.T) {
	t.Parallel()

	r := newRenderer(t)
	ctrl := testController(t, "Gender=Men", page.DefaultPageSize)

	var buf bytes.Buffer
	require.NoError(t, r.Grid(&buf, ctrl.View()))
	doc := parse(t, buf.String())

	chemical := optionCheckbox(doc, "Industry", "Chemical")
	require.Equal(t, 1, chemical.Length())
	_, disabled := chemical.Attr("disabled")
	assert.True(t, disabled)

	welding := optionCheckbox(doc, "Industry", "Welding")
	_, disabled = welding.Attr("disabled")
	assert.False(t, disabled)
}

func TestGridEmptyAndLoadMore(t *testing.T) {
	t.Parallel()

	r := newRenderer(t)

	var buf bytes.Buffer
	require.NoError(t, r.Grid(&buf, testController(t, "Industry=Chemical&Gender=Men", 24).View()))
	doc := parse(t, buf.String())
	assert.Equal(t, 1, doc.Find(".empty-state").Length())
	assert.Empty(t, cardIDs(doc))
	assert.Equal(t, 2, doc.Find("li.pill").Length())

	buf.Reset()
	require.NoError(t, r.Grid(&buf, testController(t, "", 2).View()))
	doc = parse(t, buf.String())
	assert.Equal(t, []string{"A", "B"}, cardIDs(doc))
	more := doc.Find("form.load-more")
	require.Equal(t, 1, more.Length())
	assert.Equal(t, "1", more.Find(`input[name=page]`).AttrOr("value", ""))
	assert.Equal(t, "more", more.Find(`input[name=action]`).AttrOr("value", ""))
	assert.Equal(t, "Sold out", strings.TrimSpace(doc.Find(`li[data-product-id="B"] .sold-out`).Text()))
	assert.Equal(t, "$1,250.00", strings.TrimSpace(doc.Find(`li[data-product-id="B"] .price`).Text()))
}

func TestPage(t *testing.T) {
	t.Parallel()

	r := newRenderer(t)
	ctrl := testController(t, "collection=welding&sort=price-desc&product=C", page.DefaultPageSize)
	highlight, ok := ctrl.ConsumeHighlight()
	require.True(t, ok)

	view := ctrl.View()
	view.Description = "Gear for **hot work**. <script>alert(1)</script>"

	var buf bytes.Buffer
	require.NoError(t, r.Page(&buf, view, &highlight))
	doc := parse(t, buf.String())

	assert.Equal(t, "Welding Gear", doc.Find("title").Text())
	assert.Equal(t, "Welding Gear", doc.Find("#collection-title").Text())
	assert.Equal(t, "Welding Gear", doc.Find(".breadcrumb span").Text())
	assert.Equal(t, "hot work", doc.Find(".collection-description strong").Text())
	assert.Equal(t, 0, doc.Find(".collection-description script").Length())

	assert.Equal(t, []string{"C", "A"}, cardIDs(doc))
	assert.Equal(t, "price-desc", doc.Find("select[name=sort] option[selected]").AttrOr("value", ""))
	assert.Equal(t, "C", doc.Find("#highlight").AttrOr("data-highlight", ""))
}

func TestPageWithoutHighlight(t *testing.T) {
	t.Parallel()

	r := newRenderer(t)

	var buf bytes.Buffer
	require.NoError(t, r.Page(&buf, testController(t, "", 24).View(), nil))
	doc := parse(t, buf.String())

	assert.Equal(t, page.DefaultTitle, doc.Find("#collection-title").Text())
	assert.Equal(t, 0, doc.Find("#highlight").Length())
	assert.Equal(t, 0, doc.Find(".collection-description").Length())
	assert.Equal(t, 0, doc.Find(".breadcrumb span").Length())
}

func TestQuickView(t *testing.T) {
	t.Parallel()

	r := newRenderer(t)
	p, ok := testController(t, "", 24).QuickView("C")
	require.True(t, ok)

	var buf bytes.Buffer
	require.NoError(t, r.QuickView(&buf, p))
	doc := parse(t, buf.String())

	root := doc.Find(".quick-view")
	assert.Equal(t, "C", root.AttrOr("data-product-id", ""))
	assert.Equal(t, "Spark Boots", root.Find("h2").Text())
	assert.Equal(t, 2, root.Find("li.variant").Length())
	assert.Equal(t, 1, root.Find("li.variant.unavailable").Length())
	assert.Equal(t, "/products/boots", root.Find("a.button").AttrOr("href", ""))
}

func TestMarkdown(t *testing.T) {
	t.Parallel()

	r := newRenderer(t)
	assert.Equal(t, "", string(r.Markdown("")))

	out := string(r.Markdown("[safe](https://example.com) <img src=x onerror=alert(1)>"))
	assert.Contains(t, out, `href="https://example.com"`)
	assert.NotContains(t, out, "onerror")
}

func TestQuickViewLinksEscapeIDs(t *testing.T) {
	t.Parallel()

	r := newRenderer(t)
	snap := catalog.NewStaticStore([]models.Product{
		{ID: "gid/7?x", Name: "Odd", Available: true, Badge: models.BadgeNone},
	}, catalog.DefaultOptions()).Snapshot()
	ctrl := page.FromQuery(snap, nil, "product=gid/7?x", 24)
	highlight, ok := ctrl.ConsumeHighlight()
	require.True(t, ok)

	var buf bytes.Buffer
	require.NoError(t, r.Page(&buf, ctrl.View(), &highlight))
	doc := parse(t, buf.String())

	assert.Equal(t, "/products/gid%2F7%3Fx/quick-view", doc.Find("button.quick-view").AttrOr("hx-get", ""))
	assert.Equal(t, "/products/gid%2F7%3Fx/quick-view", doc.Find("#highlight").AttrOr("hx-get", ""))
	assert.Equal(t, "gid/7?x", doc.Find("li.product-card").AttrOr("data-product-id", ""))
}

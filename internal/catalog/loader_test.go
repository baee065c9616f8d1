package catalog

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/bradykim7/shopfront/internal/models"
)

type staticSource struct {
	data []byte
	err  error
}

func (s staticSource) Read(context.Context) ([]byte, error) { return s.data, s.err }
func (s staticSource) Name() string                         { return "static" }

var fixedNow = time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC)

func testOptions() Options {
	opts := DefaultOptions()
	opts.Now = func() time.Time { return fixedNow }
	return opts
}

const sampleFeed = `[
  {"id": 101, "handle": "welding-jacket", "name": "Welding Jacket", "vendor": "Forge", "price": 50, "comparePrice": 80,
   "available": true, "tags": ["Industry: Welding", "Gender: Men"], "createdAt": "2026-10-10T00:00:00Z",
   "variants": [{"title": "M", "available": true}, {"title": "L", "available": false}]},
  {"id": "102", "handle": "chem-gloves", "name": "Chemical Gloves", "price": 12.5, "available": false,
   "tags": ["Industry: Chemical", "loose"], "createdAt": "2026-10-01"},
  {"id": "103", "handle": "old-boots", "name": "Old Boots", "price": 99, "comparePrice": null, "available": true,
   "image": "/img/boots.jpg", "imageAlt": "Boots", "createdAt": "2020-01-01T00:00:00Z"}
]`

func TestParseFeed(t *testing.T) {
	t.Parallel()

	raw, err := ParseFeed([]byte(sampleFeed))
	require.NoError(t, err)
	require.Len(t, raw, 3)
	require.Equal(t, models.FeedID("101"), raw[0].ID)
	require.Equal(t, models.FeedID("102"), raw[1].ID)
	require.NotNil(t, raw[0].ComparePrice)
	require.Nil(t, raw[2].ComparePrice)
}

func TestParseFeedErrors(t *testing.T) {
	t.Parallel()

	_, err := ParseFeed(nil)
	require.ErrorIs(t, err, ErrEmptyFeed)

	_, err = ParseFeed([]byte("  "))
	require.ErrorIs(t, err, ErrEmptyFeed)

	_, err = ParseFeed([]byte(`{"id": 1}`))
	require.Error(t, err)

	_, err = ParseFeed([]byte(`[{"id": true}]`))
	require.Error(t, err)
}

func TestNormalize(t *testing.T) {
	t.Parallel()

	raw, err := ParseFeed([]byte(sampleFeed))
	require.NoError(t, err)

	products := Normalize(raw, testOptions())
	require.Len(t, products, 3)

	jacket := products[0]
	assert.Equal(t, "101", jacket.ID)
	assert.Equal(t, 0, jacket.Featured)
	assert.Equal(t, models.BadgeSale, jacket.Badge)
	assert.Equal(t, DefaultPlaceholderImage, jacket.Image)
	assert.Equal(t, "Welding Jacket", jacket.ImageAlt)
	assert.Equal(t, "/products/welding-jacket", jacket.URL)
	assert.Equal(t, []string{"Welding"}, jacket.ParsedTags["Industry"])
	assert.Len(t, jacket.Variants, 2)

	gloves := products[1]
	assert.Equal(t, 1, gloves.Featured)
	assert.Equal(t, models.BadgeNew, gloves.Badge)
	assert.False(t, gloves.Available)
	assert.Equal(t, []string{"loose"}, gloves.ParsedTags[models.OtherCategory])

	boots := products[2]
	assert.Equal(t, 2, boots.Featured)
	assert.Equal(t, models.BadgeNone, boots.Badge)
	assert.Equal(t, "/img/boots.jpg", boots.Image)
	assert.Equal(t, "Boots", boots.ImageAlt)
}

func TestComputeBadge(t *testing.T) {
	t.Parallel()

	compare := func(v float64) *float64 { return &v }
	window := 30 * 24 * time.Hour

	tests := []struct {
		name string
		p    models.Product
		want models.Badge
	}{
		{"sale regardless of age", models.Product{Price: 50, ComparePrice: compare(80), CreatedAt: "2026-10-16T00:00:00Z"}, models.BadgeSale},
		{"equal compare price is not a sale", models.Product{Price: 50, ComparePrice: compare(50)}, models.BadgeNone},
		{"lower compare price is not a sale", models.Product{Price: 50, ComparePrice: compare(40), CreatedAt: "2026-10-16T00:00:00Z"}, models.BadgeNew},
		{"one day old", models.Product{CreatedAt: "2026-10-16T12:00:00Z"}, models.BadgeNew},
		{"exactly thirty days", models.Product{CreatedAt: fixedNow.Add(-window).Format(time.RFC3339)}, models.BadgeNone},
		{"just inside thirty days", models.Product{CreatedAt: fixedNow.Add(-window + time.Second).Format(time.RFC3339)}, models.BadgeNew},
		{"missing createdAt", models.Product{}, models.BadgeNone},
		{"garbage createdAt", models.Product{CreatedAt: "yesterday"}, models.BadgeNone},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tt.want, ComputeBadge(&tt.p, fixedNow, window))
		})
	}
}

func TestParseTime(t *testing.T) {
	t.Parallel()

	require.True(t, ParseTime("").IsZero())
	require.True(t, ParseTime("not a date").IsZero())
	require.Equal(t, 2026, ParseTime("2026-10-01").Year())
	require.Equal(t, 5, ParseTime("2026-10-01T05:06:07").Hour())
	require.Equal(t, 5, ParseTime("2026-10-01 05:06:07").Hour())
	require.Equal(t, 123000000, ParseTime("2026-10-01T05:06:07.123Z").Nanosecond())
}

func TestLoaderFallsBackToEmptyCatalog(t *testing.T) {
	t.Parallel()

	loader := NewLoader(testOptions(), zap.NewNop())
	ctx := context.Background()

	require.Empty(t, loader.Load(ctx, nil))
	require.Empty(t, loader.Load(ctx, staticSource{err: errors.New("boom")}))
	require.Empty(t, loader.Load(ctx, staticSource{data: []byte("{not json")}))
	require.Empty(t, loader.Load(ctx, staticSource{data: []byte("")}))

	products := loader.Load(ctx, staticSource{data: []byte("[]")})
	require.NotNil(t, products)
	require.Empty(t, products)
}

func TestLoaderFetchReportsFailures(t *testing.T) {
	t.Parallel()

	loader := NewLoader(testOptions(), zap.NewNop())
	ctx := context.Background()

	_, err := loader.Fetch(ctx, nil)
	require.ErrorIs(t, err, ErrNoSource)

	boom := errors.New("boom")
	_, err = loader.Fetch(ctx, staticSource{err: boom})
	require.ErrorIs(t, err, boom)

	_, err = loader.Fetch(ctx, staticSource{data: []byte("  ")})
	require.ErrorIs(t, err, ErrEmptyFeed)

	products, err := loader.Fetch(ctx, staticSource{data: []byte("[]")})
	require.NoError(t, err)
	require.Empty(t, products)
}

func TestLoaderKeepsFirstDuplicate(t *testing.T) {
	t.Parallel()

	loader := NewLoader(testOptions(), zap.NewNop())
	feed := `[{"id":"1","name":"first","price":1},{"id":"2","name":"other","price":2},{"id":"1","name":"second","price":3}]`

	products := loader.Load(context.Background(), staticSource{data: []byte(feed)})
	require.Len(t, products, 2)
	require.Equal(t, "first", products[0].Name)
	require.Equal(t, "other", products[1].Name)
	require.Equal(t, 1, products[1].Featured)
}

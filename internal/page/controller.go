// Package page implements the storefront page controller: it owns the
// catalog snapshot and one page state, applies interaction commands one at a
// time and derives the view from the pure catalog functions.
package page

import (
	"github.com/bradykim7/shopfront/internal/catalog"
	"github.com/bradykim7/shopfront/internal/models"
	"github.com/bradykim7/shopfront/internal/urlstate"
)

// DefaultPageSize is the number of cards revealed per page
const DefaultPageSize = 24

// DefaultTitle is the header used when no collection applies
const DefaultTitle = "All Products"

// Controller is not safe for concurrent use. Build one per page session
// (one per request in the HTTP harness).
type Controller struct {
	products    []models.Product
	groups      []models.FilterGroup
	collections catalog.Collections
	state       models.State
	pageSize    int
}

// New creates a controller over snap with the given initial state
func New(snap *catalog.Snapshot, collections catalog.Collections, state models.State, pageSize int) *Controller {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	if state.Filters == nil {
		state.Filters = models.ActiveFilters{}
	} else {
		state.Filters = state.Filters.Clone()
	}
	if state.Sort == "" {
		state.Sort = models.SortFeatured
	}
	if state.Page < 1 {
		state.Page = 1
	}
	return &Controller{
		products:    snap.Products,
		groups:      snap.Groups,
		collections: collections,
		state:       state,
		pageSize:    pageSize,
	}
}

// FromQuery decodes a query string and builds a controller
func FromQuery(snap *catalog.Snapshot, collections catalog.Collections, query string, pageSize int) *Controller {
	state := urlstate.DecodeQuery(query, snap.Groups, collections)
	return New(snap, collections, state, pageSize)
}

// State returns a copy of the current state
func (c *Controller) State() models.State {
	s := c.state
	s.Filters = c.state.Filters.Clone()
	return s
}

// Groups returns the filter taxonomy
func (c *Controller) Groups() []models.FilterGroup {
	return c.groups
}

// Products returns the full catalog
func (c *Controller) Products() []models.Product {
	return c.products
}

// Dispatch applies one command. A nil command is a no-op.
func (c *Controller) Dispatch(cmd Command) {
	if cmd == nil {
		return
	}
	cmd.Apply(c)
}

// Query returns the encoded URL state
func (c *Controller) Query() string {
	return urlstate.EncodeQuery(c.state, c.groups)
}

// URL returns path with the encoded URL state
func (c *Controller) URL(path string) string {
	return urlstate.PageURL(path, c.state, c.groups)
}

// QuickView looks up a product for the overlay
func (c *Controller) QuickView(id string) (models.Product, bool) {
	return catalog.FindProduct(c.products, id)
}

// ConsumeHighlight returns the highlighted product once and clears it.
// Unknown ids are dropped silently.
func (c *Controller) ConsumeHighlight() (models.Product, bool) {
	id := c.state.HighlightProduct
	if id == "" {
		return models.Product{}, false
	}
	c.state.HighlightProduct = ""
	return catalog.FindProduct(c.products, id)
}

// Collection returns the active collection alias, if the slug is known
func (c *Controller) Collection() (models.Collection, bool) {
	return urlstate.LookupCollection(c.collections, c.state.Collection)
}

// afterFilterChange resets pagination and drops a collection whose seeded
// group has been emptied, so a reload does not seed it again.
func (c *Controller) afterFilterChange(key string) {
	c.state.Page = 1
	if col, ok := c.Collection(); ok && col.GroupKey == key && len(c.state.Filters.Selected(key)) == 0 {
		c.state.Collection = ""
	}
}

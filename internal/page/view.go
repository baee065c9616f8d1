package page

import (
	"github.com/bradykim7/shopfront/internal/catalog"
	"github.com/bradykim7/shopfront/internal/models"
)

// View is everything the presentation layer needs for one render
type View struct {
	Title       string
	Description string
	Collection  string
	Groups      []GroupView
	Pills       []Pill
	ActiveCount int
	Products    []models.Product
	ResultCount int
	HasMore     bool
	Page        int
	Sort        models.SortKey
	SortOptions []SortOption
	Query       string
	Empty       bool
}

// GroupView is one facet control
type GroupView struct {
	Key           string
	Label         string
	Values        []ValueView
	SelectedCount int
}

// ValueView is one checkbox in a facet
type ValueView struct {
	Value   string
	Count   int
	Checked bool
}

// Pill is one removable active filter
type Pill struct {
	Key   string
	Value string
}

// SortOption is one entry of the sort dropdown
type SortOption struct {
	Key      models.SortKey
	Label    string
	Selected bool
}

// View recomputes filter -> sort -> paginate for the current state
func (c *Controller) View() View {
	filtered := catalog.FilterProducts(c.products, c.state.Filters)
	sorted := catalog.SortProducts(filtered, c.state.Sort)
	visible, more := catalog.Paginate(sorted, c.state.Page, c.pageSize)

	v := View{
		Title:       DefaultTitle,
		Collection:  c.state.Collection,
		ActiveCount: catalog.TotalActiveCount(c.state.Filters),
		Products:    visible,
		ResultCount: len(sorted),
		HasMore:     more,
		Page:        c.state.Page,
		Sort:        c.state.Sort,
		Query:       c.Query(),
		Empty:       len(sorted) == 0,
	}
	if col, ok := c.Collection(); ok {
		v.Title = col.Title
		v.Description = col.Description
	}

	for _, g := range c.groups {
		if len(g.Values) == 0 {
			continue
		}
		gv := GroupView{
			Key:           g.Key,
			Label:         g.Label,
			Values:        make([]ValueView, 0, len(g.Values)),
			SelectedCount: len(c.state.Filters.Selected(g.Key)),
		}
		for _, val := range g.Values {
			gv.Values = append(gv.Values, ValueView{
				Value:   val,
				Count:   catalog.CountForValue(c.products, c.state.Filters, g.Key, val),
				Checked: c.state.Filters.IsSelected(g.Key, val),
			})
		}
		v.Groups = append(v.Groups, gv)

		for _, sel := range c.state.Filters.Selected(g.Key) {
			v.Pills = append(v.Pills, Pill{Key: g.Key, Value: sel})
		}
	}

	for _, k := range models.SortKeys {
		v.SortOptions = append(v.SortOptions, SortOption{
			Key:      k,
			Label:    k.Label(),
			Selected: k == c.state.Sort,
		})
	}

	return v
}

// VisibleIDs returns the ids of the rendered cards, in order
func (v View) VisibleIDs() []string {
	ids := make([]string, 0, len(v.Products))
	for i := range v.Products {
		ids = append(ids, v.Products[i].ID)
	}
	return ids
}

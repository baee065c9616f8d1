package models

// SortKey selects the grid ordering
type SortKey string

const (
	SortFeatured    SortKey = "featured"
	SortPriceAsc    SortKey = "price-asc"
	SortPriceDesc   SortKey = "price-desc"
	SortNewest      SortKey = "newest"
	SortBestSelling SortKey = "best-selling"
)

// SortKeys lists every sort option in display order
var SortKeys = []SortKey{SortFeatured, SortBestSelling, SortPriceAsc, SortPriceDesc, SortNewest}

// ParseSortKey maps a query value to a SortKey. Unknown values fall back to featured.
func ParseSortKey(s string) SortKey {
	for _, k := range SortKeys {
		if string(k) == s {
			return k
		}
	}
	return SortFeatured
}

// Label returns the human readable sort name
func (k SortKey) Label() string {
	switch k {
	case SortPriceAsc:
		return "Price, low to high"
	case SortPriceDesc:
		return "Price, high to low"
	case SortNewest:
		return "Newest"
	case SortBestSelling:
		return "Best selling"
	default:
		return "Featured"
	}
}

// FilterGroup is a facet derived from product tags
type FilterGroup struct {
	Key    string
	Label  string
	Values []string
}

// ActiveFilters maps a group key to the selected values in selection order.
// Values are OR-ed within a group and groups are AND-ed together.
type ActiveFilters map[string][]string

// Selected returns the selection for key
func (f ActiveFilters) Selected(key string) []string {
	if f == nil {
		return nil
	}
	return f[key]
}

// IsSelected reports whether value is selected under key
func (f ActiveFilters) IsSelected(key, value string) bool {
	for _, v := range f.Selected(key) {
		if v == value {
			return true
		}
	}
	return false
}

// Toggle selects value under key, or deselects it if already selected
func (f ActiveFilters) Toggle(key, value string) {
	if f.IsSelected(key, value) {
		f.Remove(key, value)
		return
	}
	f[key] = append(f[key], value)
}

// Remove deselects value under key. Empty groups are dropped.
func (f ActiveFilters) Remove(key, value string) {
	current := f[key]
	kept := make([]string, 0, len(current))
	for _, v := range current {
		if v != value {
			kept = append(kept, v)
		}
	}
	if len(kept) == 0 {
		delete(f, key)
		return
	}
	f[key] = kept
}

// Clone returns a deep copy
func (f ActiveFilters) Clone() ActiveFilters {
	out := make(ActiveFilters, len(f))
	for k, v := range f {
		out[k] = append([]string(nil), v...)
	}
	return out
}

// State is the page state for one storefront tab
type State struct {
	Filters          ActiveFilters
	Sort             SortKey
	Collection       string
	HighlightProduct string
	Page             int
}

// NewState returns the default state
func NewState() State {
	return State{
		Filters: ActiveFilters{},
		Sort:    SortFeatured,
		Page:    1,
	}
}

// Collection is a URL alias that pre-selects one filter value
type Collection struct {
	Slug        string `yaml:"slug"`
	GroupKey    string `yaml:"group"`
	Value       string `yaml:"value"`
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
}

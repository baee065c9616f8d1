// Package urlstate maps page state to and from the storefront query string.
package urlstate

import (
	"net/url"
	"strings"

	"github.com/gosimple/slug"

	"github.com/bradykim7/shopfront/internal/catalog"
	"github.com/bradykim7/shopfront/internal/models"
)

// Reserved query parameters. Every other recognized parameter is a filter group key.
const (
	ParamCollection = "collection"
	ParamProduct    = "product"
	ParamSort       = "sort"
)

// Decode builds page state from query values. Only keys naming a group in
// groups are read as filters; a collection alias seeds its group when the
// URL carries no explicit selection for it.
func Decode(values url.Values, groups []models.FilterGroup, collections catalog.Collections) models.State {
	state := models.NewState()

	state.Collection = strings.TrimSpace(values.Get(ParamCollection))
	state.HighlightProduct = strings.TrimSpace(values.Get(ParamProduct))
	state.Sort = models.ParseSortKey(strings.TrimSpace(values.Get(ParamSort)))

	for _, g := range groups {
		raw, ok := values[g.Key]
		if !ok {
			continue
		}
		if selected := splitValues(raw); len(selected) > 0 {
			state.Filters[g.Key] = selected
		}
	}

	if col, ok := LookupCollection(collections, state.Collection); ok {
		if _, known := catalog.FindGroup(groups, col.GroupKey); known && len(state.Filters[col.GroupKey]) == 0 {
			state.Filters[col.GroupKey] = []string{col.Value}
		}
	}

	return state
}

// DecodeQuery parses a raw query string, tolerating a leading "?"
func DecodeQuery(query string, groups []models.FilterGroup, collections catalog.Collections) models.State {
	// ParseQuery keeps every pair it could read, so malformed pairs are just dropped
	values, _ := url.ParseQuery(strings.TrimPrefix(query, "?"))
	return Decode(values, groups, collections)
}

// LookupCollection finds an alias by slug, normalizing case and punctuation
func LookupCollection(collections catalog.Collections, name string) (models.Collection, bool) {
	if name == "" {
		return models.Collection{}, false
	}
	if col, ok := collections.Lookup(name); ok {
		return col, true
	}
	return collections.Lookup(slug.Make(name))
}

// splitValues splits comma separated values, dropping blanks and repeats
func splitValues(raw []string) []string {
	var out []string
	seen := make(map[string]bool)
	for _, r := range raw {
		for _, v := range strings.Split(r, ",") {
			v = strings.TrimSpace(v)
			if v == "" || seen[v] {
				continue
			}
			seen[v] = true
			out = append(out, v)
		}
	}
	return out
}

// Encode returns the query values for state. Page and highlighted product
// are never written.
func Encode(state models.State, groups []models.FilterGroup) url.Values {
	values := url.Values{}
	if state.Collection != "" {
		values.Set(ParamCollection, state.Collection)
	}
	if state.Sort != "" && state.Sort != models.SortFeatured {
		values.Set(ParamSort, string(state.Sort))
	}
	for _, g := range groups {
		if selected := state.Filters.Selected(g.Key); len(selected) > 0 {
			values.Set(g.Key, strings.Join(selected, ","))
		}
	}
	return values
}

// EncodeQuery renders state as a query string without the leading "?".
// Parameters appear as collection, sort, then filter groups in taxonomy
// order; commas between values are left unescaped.
func EncodeQuery(state models.State, groups []models.FilterGroup) string {
	values := Encode(state, groups)

	keys := make([]string, 0, len(values))
	for _, k := range []string{ParamCollection, ParamSort} {
		if values.Has(k) {
			keys = append(keys, k)
		}
	}
	for _, g := range groups {
		if values.Has(g.Key) {
			keys = append(keys, g.Key)
		}
	}

	var b strings.Builder
	for _, k := range keys {
		if b.Len() > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(k))
		b.WriteByte('=')
		if k == ParamCollection || k == ParamSort {
			b.WriteString(url.QueryEscape(values.Get(k)))
			continue
		}
		for i, v := range state.Filters.Selected(k) {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteString(url.QueryEscape(v))
		}
	}
	return b.String()
}

// PageURL returns path with the encoded state appended
func PageURL(path string, state models.State, groups []models.FilterGroup) string {
	q := EncodeQuery(state, groups)
	if q == "" {
		return path
	}
	return path + "?" + q
}

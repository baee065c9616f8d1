package catalog

import (
	"sort"

	"github.com/bradykim7/shopfront/internal/models"
)

// BuildFilterGroups derives the facet list from every product's parsed tags.
// Preferred categories come first in opts.PreferredOrder, the rest follow
// alphabetically. Hidden categories never become groups.
func BuildFilterGroups(products []models.Product, opts Options) []models.FilterGroup {
	hidden := make(map[string]bool, len(opts.Hidden))
	for _, h := range opts.Hidden {
		hidden[h] = true
	}

	values := make(map[string]map[string]struct{})
	for i := range products {
		for category, vals := range products[i].ParsedTags {
			if hidden[category] {
				continue
			}
			set, ok := values[category]
			if !ok {
				set = make(map[string]struct{})
				values[category] = set
			}
			for _, v := range vals {
				set[v] = struct{}{}
			}
		}
	}

	keys := make([]string, 0, len(values))
	placed := make(map[string]bool, len(values))
	for _, k := range opts.PreferredOrder {
		if _, ok := values[k]; ok && !placed[k] {
			keys = append(keys, k)
			placed[k] = true
		}
	}
	var rest []string
	for k := range values {
		if !placed[k] {
			rest = append(rest, k)
		}
	}
	sort.Strings(rest)
	keys = append(keys, rest...)

	groups := make([]models.FilterGroup, 0, len(keys))
	for _, k := range keys {
		vals := make([]string, 0, len(values[k]))
		for v := range values[k] {
			vals = append(vals, v)
		}
		if len(vals) == 0 {
			continue
		}
		sort.Strings(vals)
		groups = append(groups, models.FilterGroup{Key: k, Label: k, Values: vals})
	}
	return groups
}

// FindGroup returns the group with key
func FindGroup(groups []models.FilterGroup, key string) (models.FilterGroup, bool) {
	for _, g := range groups {
		if g.Key == key {
			return g, true
		}
	}
	return models.FilterGroup{}, false
}

package catalog

import (
	"sort"

	"github.com/bradykim7/shopfront/internal/models"
)

// MatchesGroup reports whether the product carries at least one selected
// value under key. A product without the key never matches.
func MatchesGroup(p *models.Product, key string, selected []string) bool {
	for _, v := range selected {
		if p.ParsedTags.Has(key, v) {
			return true
		}
	}
	return false
}

// hasSelection reports whether any group has a non-empty selection
func hasSelection(filters models.ActiveFilters) bool {
	for _, vals := range filters {
		if len(vals) > 0 {
			return true
		}
	}
	return false
}

// FilterProducts keeps products that match every group with a selection.
// With no selection at all the input slice is returned as is.
func FilterProducts(products []models.Product, filters models.ActiveFilters) []models.Product {
	if !hasSelection(filters) {
		return products
	}
	out := make([]models.Product, 0, len(products))
	for i := range products {
		if matchesAll(&products[i], filters) {
			out = append(out, products[i])
		}
	}
	return out
}

func matchesAll(p *models.Product, filters models.ActiveFilters) bool {
	for key, selected := range filters {
		if len(selected) == 0 {
			continue
		}
		if !MatchesGroup(p, key, selected) {
			return false
		}
	}
	return true
}

// SortProducts returns a new stably sorted slice; the input is untouched.
// Featured and best-selling both use catalog order.
func SortProducts(products []models.Product, key models.SortKey) []models.Product {
	out := make([]models.Product, len(products))
	copy(out, products)

	var less func(a, b *models.Product) bool
	switch key {
	case models.SortPriceAsc:
		less = func(a, b *models.Product) bool { return a.Price < b.Price }
	case models.SortPriceDesc:
		less = func(a, b *models.Product) bool { return a.Price > b.Price }
	case models.SortNewest:
		less = func(a, b *models.Product) bool {
			return createdUnix(a) > createdUnix(b)
		}
	default:
		less = func(a, b *models.Product) bool { return a.Featured < b.Featured }
	}

	sort.SliceStable(out, func(i, j int) bool { return less(&out[i], &out[j]) })
	return out
}

// createdUnix returns createdAt in unix millis, 0 when missing or unparseable
func createdUnix(p *models.Product) int64 {
	t := ParseTime(p.CreatedAt)
	if t.IsZero() {
		return 0
	}
	return t.UnixMilli()
}

// CountForValue counts products that would match with value selected under
// key, ignoring key's own current selection but keeping every other group.
func CountForValue(all []models.Product, filters models.ActiveFilters, key, value string) int {
	derived := make(models.ActiveFilters, len(filters)+1)
	for k, v := range filters {
		if k != key {
			derived[k] = v
		}
	}
	derived[key] = []string{value}
	return len(FilterProducts(all, derived))
}

// TotalActiveCount sums the selections across all groups
func TotalActiveCount(filters models.ActiveFilters) int {
	total := 0
	for _, vals := range filters {
		total += len(vals)
	}
	return total
}

// Paginate reveals the first page*pageSize products
func Paginate(products []models.Product, page, pageSize int) ([]models.Product, bool) {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 || page > len(products)/pageSize {
		return products, false
	}
	limit := page * pageSize
	if limit >= len(products) {
		return products, false
	}
	return products[:limit], true
}

// FindProduct looks a product up by id
func FindProduct(products []models.Product, id string) (models.Product, bool) {
	for i := range products {
		if products[i].ID == id {
			return products[i], true
		}
	}
	return models.Product{}, false
}

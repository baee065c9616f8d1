package catalog

import (
	"strings"

	"github.com/bradykim7/shopfront/internal/models"
)

// ParseTags turns free-text tags into category -> distinct values.
// "Industry: Welding" lands under Industry; anything without a leading
// category lands under models.OtherCategory.
func ParseTags(tags []string) models.TagMap {
	parsed := make(models.TagMap)
	for _, tag := range tags {
		category, value := splitTag(tag)
		if value == "" {
			continue
		}
		if parsed.Has(category, value) {
			continue
		}
		parsed[category] = append(parsed[category], value)
	}
	return parsed
}

func splitTag(tag string) (category, value string) {
	if i := strings.Index(tag, ":"); i > 0 {
		category = strings.TrimSpace(tag[:i])
		value = strings.TrimSpace(tag[i+1:])
		if category != "" {
			return category, value
		}
	}
	return models.OtherCategory, strings.TrimSpace(tag)
}

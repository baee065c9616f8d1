package catalog

import "github.com/bradykim7/shopfront/internal/models"

func testProduct(id string, price float64, featured int, tags ...string) models.Product {
	return models.Product{
		ID:         id,
		Name:       id,
		Price:      price,
		Featured:   featured,
		RawTags:    tags,
		ParsedTags: ParseTags(tags),
	}
}

// scenario is the three product catalog used across the engine tests
func scenario() []models.Product {
	return []models.Product{
		testProduct("A", 10, 0, "Industry: Welding"),
		testProduct("B", 20, 1, "Industry: Chemical"),
		testProduct("C", 15, 2, "Industry: Welding", "Gender: Men"),
	}
}

func ids(products []models.Product) []string {
	out := make([]string, 0, len(products))
	for _, p := range products {
		out = append(out, p.ID)
	}
	return out
}

package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
)

// Badge is a derived merchandising label
type Badge string

const (
	BadgeSale Badge = "sale"
	BadgeNew  Badge = "new"
	BadgeNone Badge = "none"
)

// OtherCategory holds free-text tags that carry no "Category: Value" structure
const OtherCategory = "Other"

// TagMap maps a tag category to its distinct values in first-seen order
type TagMap map[string][]string

// Values returns the values under category, nil when absent
func (t TagMap) Values(category string) []string {
	if t == nil {
		return nil
	}
	return t[category]
}

// Has reports whether value is present under category
func (t TagMap) Has(category, value string) bool {
	for _, v := range t.Values(category) {
		if v == value {
			return true
		}
	}
	return false
}

// Variant is a size or option of a product
type Variant struct {
	Title     string `json:"title" bson:"title"`
	Available bool   `json:"available" bson:"available"`
}

// Product is a normalized catalog record. It is never mutated after loading.
type Product struct {
	ID           string
	Handle       string
	Name         string
	Vendor       string
	URL          string
	Image        string
	ImageAlt     string
	Price        float64
	ComparePrice *float64
	Available    bool
	RawTags      []string
	ParsedTags   TagMap
	Type         string
	CreatedAt    string
	Variants     []Variant
	Featured     int
	Badge        Badge
}

// OnSale reports whether the compare-at price is above the selling price
func (p Product) OnSale() bool {
	return p.ComparePrice != nil && *p.ComparePrice > p.Price
}

// GetPriceString returns a formatted price string
func (p Product) GetPriceString() string {
	return FormatPrice(p.Price)
}

// GetComparePriceString returns the formatted compare-at price, or "" when there is none
func (p Product) GetComparePriceString() string {
	if p.ComparePrice == nil {
		return ""
	}
	return FormatPrice(*p.ComparePrice)
}

// String returns a string representation of the product
func (p Product) String() string {
	if p.Vendor == "" {
		return fmt.Sprintf("%s (%s)", p.Name, p.GetPriceString())
	}
	return fmt.Sprintf("%s (%s) by %s", p.Name, p.GetPriceString(), p.Vendor)
}

// FormatPrice renders an amount as "$1,234.50"
func FormatPrice(amount float64) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}
	cents := int64(amount*100 + 0.5)
	return fmt.Sprintf("%s$%s.%02d", sign, formatNumber(cents/100), cents%100)
}

// formatNumber formats a number with commas
func formatNumber(n int64) string {
	in := strconv.FormatInt(n, 10)
	out := make([]byte, 0, len(in)+(len(in)-1)/3)

	for i, c := range in {
		if i > 0 && (len(in)-i)%3 == 0 {
			out = append(out, ',')
		}
		out = append(out, byte(c))
	}

	return string(out)
}

// FeedID is a product id that may arrive as a JSON string or number
type FeedID string

// UnmarshalJSON accepts "123", 123 and null
func (id *FeedID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = FeedID(strings.TrimSpace(s))
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("product id must be a string or number: %w", err)
	}
	*id = FeedID(n.String())
	return nil
}

// UnmarshalBSONValue accepts string, integer, double and null ids
func (id *FeedID) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	v := bson.RawValue{Type: t, Value: data}
	switch t {
	case bsontype.String:
		*id = FeedID(strings.TrimSpace(v.StringValue()))
	case bsontype.Int32:
		*id = FeedID(strconv.FormatInt(int64(v.Int32()), 10))
	case bsontype.Int64:
		*id = FeedID(strconv.FormatInt(v.Int64(), 10))
	case bsontype.Double:
		*id = FeedID(strconv.FormatFloat(v.Double(), 'f', -1, 64))
	case bsontype.Null, bsontype.Undefined:
		*id = ""
	default:
		return fmt.Errorf("product id must be a string or number, got BSON %s", t)
	}
	return nil
}

// RawProduct is one element of the product feed embedded in the storefront page
type RawProduct struct {
	ID           FeedID    `json:"id" bson:"id"`
	Handle       string    `json:"handle" bson:"handle"`
	Name         string    `json:"name" bson:"name"`
	Vendor       string    `json:"vendor,omitempty" bson:"vendor,omitempty"`
	URL          string    `json:"url,omitempty" bson:"url,omitempty"`
	Price        float64   `json:"price" bson:"price"`
	ComparePrice *float64  `json:"comparePrice,omitempty" bson:"compare_price,omitempty"`
	Available    bool      `json:"available" bson:"available"`
	Image        string    `json:"image,omitempty" bson:"image,omitempty"`
	ImageAlt     string    `json:"imageAlt,omitempty" bson:"image_alt,omitempty"`
	Tags         []string  `json:"tags,omitempty" bson:"tags,omitempty"`
	Type         string    `json:"type,omitempty" bson:"type,omitempty"`
	CreatedAt    string    `json:"createdAt,omitempty" bson:"created_at,omitempty"`
	Variants     []Variant `json:"variants,omitempty" bson:"variants,omitempty"`
}

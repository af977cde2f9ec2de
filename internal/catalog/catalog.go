// Package catalog loads the label and product catalogs consumed by the
// checkout pipeline. Both are read once at startup and immutable afterwards.
package catalog

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// Labels is the ordered category-index to label-name catalog.
type Labels struct {
	names []string
}

// LoadLabels reads a labels file with one label per line. Blank lines are
// kept as placeholders so category indices stay aligned with the model output.
func LoadLabels(path string) (*Labels, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open labels file: %w", err)
	}
	defer f.Close()

	var names []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		names = append(names, strings.TrimSpace(scanner.Text()))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read labels file: %w", err)
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("labels file %s is empty", path)
	}
	return &Labels{names: names}, nil
}

// NewLabels builds a catalog from an in-memory list. Used by tests and the
// synthetic source.
func NewLabels(names []string) *Labels {
	return &Labels{names: append([]string(nil), names...)}
}

// Name resolves a category index to its label. The second return value is
// false when the index is outside the catalog.
func (l *Labels) Name(category int) (string, bool) {
	if category < 0 || category >= len(l.names) {
		return "", false
	}
	return l.names[category], true
}

// Len returns the number of labels in the catalog.
func (l *Labels) Len() int {
	return len(l.names)
}

// Product holds the catalog metadata for one product label.
type Product struct {
	Price float64 `json:"price"`
}

// Products maps product labels to their catalog entries.
type Products struct {
	entries map[string]Product
}

// LoadProducts reads a product JSON file of the form
// {"apple": {"price": 0.5}, ...}. Unknown keys inside each entry are ignored.
func LoadProducts(path string) (*Products, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("open products file: %w", err)
	}
	entries := make(map[string]Product)
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parse products file %s: %w", path, err)
	}
	return &Products{entries: entries}, nil
}

// NewProducts builds a catalog from an in-memory map. Used by tests.
func NewProducts(entries map[string]Product) *Products {
	copied := make(map[string]Product, len(entries))
	for label, p := range entries {
		copied[label] = p
	}
	return &Products{entries: copied}
}

// Price returns the price for a label, or 0 when the label has no catalog
// entry. A missing entry is not an error; the dashboard shows it unpriced.
func (p *Products) Price(label string) float64 {
	return p.entries[label].Price
}

// Len returns the number of products in the catalog.
func (p *Products) Len() int {
	return len(p.entries)
}

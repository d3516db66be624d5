package catalog

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"PriceSentinel/internal/model"
)

// Entry is one row of the product mapping: which observation file belongs to which product.
type Entry struct {
	ProductID string
	Name      string
	DataFile  string
}

// ReadOverview loads current price and unit cost per product name.
// Rows with missing or non-positive numbers are skipped.
func ReadOverview(path string) (map[string]model.Product, error) {
	t, err := readTable(path)
	if err != nil {
		return nil, fmt.Errorf("read overview: %w", err)
	}
	for _, col := range []string{"Product Name", "Current Price", "Unit Cost"} {
		if !t.has(col) {
			return nil, fmt.Errorf("read overview: missing column %q", col)
		}
	}

	products := make(map[string]model.Product, len(t.rows))
	for i, row := range t.rows {
		name := t.get(row, "Product Name")
		if name == "" {
			continue
		}
		cur, err := ParsePrice(t.get(row, "Current Price"))
		if err != nil || cur <= 0 {
			log.Printf("[WARN] overview row %d (%s): invalid current price, skipping", i+2, name)
			continue
		}
		cost, err := ParsePrice(t.get(row, "Unit Cost"))
		if err != nil || cost <= 0 {
			log.Printf("[WARN] overview row %d (%s): invalid unit cost, skipping", i+2, name)
			continue
		}
		products[name] = model.Product{
			ID:           t.get(row, "Product ID"),
			Name:         name,
			CurrentPrice: cur,
			UnitCost:     cost,
		}
	}
	return products, nil
}

// ReadMapping loads the product-to-observation-file mapping in file order.
// Relative data file paths are resolved against dataDir, or the mapping file's
// directory when dataDir is empty.
func ReadMapping(path, dataDir string) ([]Entry, error) {
	t, err := readTable(path)
	if err != nil {
		return nil, fmt.Errorf("read mapping: %w", err)
	}
	for _, col := range []string{"Product Name", "Data File"} {
		if !t.has(col) {
			return nil, fmt.Errorf("read mapping: missing column %q", col)
		}
	}
	if dataDir == "" {
		dataDir = filepath.Dir(path)
	}

	entries := make([]Entry, 0, len(t.rows))
	for _, row := range t.rows {
		name := t.get(row, "Product Name")
		if name == "" {
			continue
		}
		file := t.get(row, "Data File")
		if file != "" && !filepath.IsAbs(file) {
			file = filepath.Join(dataDir, file)
		}
		entries = append(entries, Entry{
			ProductID: t.get(row, "Product ID"),
			Name:      name,
			DataFile:  file,
		})
	}
	return entries, nil
}

// ReadObservations loads competitor prices from a scraped CSV file.
// Malformed prices are dropped. A missing file is an empty sample.
func ReadObservations(path string) ([]model.Observation, error) {
	if path == "" {
		return nil, nil
	}
	t, err := readTable(path)
	if err != nil {
		if os.IsNotExist(err) {
			log.Printf("[WARN] observation file %s not found, treating as empty sample", path)
			return nil, nil
		}
		return nil, fmt.Errorf("read observations: %w", err)
	}

	obs := make([]model.Observation, 0, len(t.rows))
	for _, row := range t.rows {
		raw := t.get(row, "price")
		if raw == "" {
			continue
		}
		v, err := ParsePrice(raw)
		if err != nil {
			continue
		}
		obs = append(obs, model.Observation{
			Price:  v,
			Source: t.get(row, "search_term", "search term", "source"),
		})
	}
	return obs, nil
}

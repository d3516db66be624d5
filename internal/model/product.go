package model

// Category is a product family with its own pricing policy.
type Category string

const (
	CategorySunglasses       Category = "Sunglasses"
	CategoryBottles          Category = "Bottles"
	CategoryPhoneAccessories Category = "Phone accessories"
	CategoryNotebook         Category = "Notebook"
	CategoryLunchbox         Category = "Lunchbox"
	CategoryPremiumShawls    Category = "Premium shawls"
	CategoryEriSilkShawls    Category = "Eri silk shawls"
	CategoryCottonScarf      Category = "Cotton scarf"
	CategoryOtherScarves     Category = "Other scarves and shawls"
	CategoryCushionCovers    Category = "Cushion covers"
	CategoryCoasters         Category = "Coasters & placements"
	CategoryTowels           Category = "Towels"
)

// Product holds the internal unit economics of a catalog item.
type Product struct {
	ID           string
	Name         string
	CurrentPrice float64
	UnitCost     float64
}

// CategoryPolicy holds the pricing parameters shared by a category.
type CategoryPolicy struct {
	Margin     float64 `yaml:"margin"`     // minimum margin as a fraction of unit cost
	Elasticity float64 `yaml:"elasticity"` // > 0, higher is more price sensitive
	MaxMarkup  float64 `yaml:"max_markup"` // ceiling relative to competitor average
}

// Observation is a single scraped competitor price.
type Observation struct {
	Price  float64
	Source string
}

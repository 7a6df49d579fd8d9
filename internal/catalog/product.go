package catalog

import "github.com/electronicsstore/storefront/pkg/enums"

// DefaultImage is the placeholder artwork shared by the seed catalog.
const DefaultImage = "https://v3b.fal.media/files/b/panda/fGmvbwfK1NIz6LoyRHg9b_output.png"

// Product is an immutable catalog entry. Price is in whole rubles.
type Product struct {
	ID       int64          `json:"id"`
	Name     string         `json:"name"`
	Category enums.Category `json:"category"`
	Price    int64          `json:"price"`
	Image    string         `json:"image"`
}

// Seed returns a fresh copy of the compiled-in catalog.
func Seed() []Product {
	return []Product{
		{ID: 1, Name: "iPhone 15 Pro", Category: enums.CategorySmartphones, Price: 89990, Image: DefaultImage},
		{ID: 2, Name: "MacBook Air M2", Category: enums.CategoryLaptops, Price: 124990, Image: DefaultImage},
		{ID: 3, Name: "AirPods Pro 2", Category: enums.CategoryHeadphones, Price: 24990, Image: DefaultImage},
		{ID: 4, Name: "iPad Pro 12.9", Category: enums.CategoryTablets, Price: 109990, Image: DefaultImage},
		{ID: 5, Name: "Samsung Galaxy S24", Category: enums.CategorySmartphones, Price: 79990, Image: DefaultImage},
		{ID: 6, Name: "Sony WH-1000XM5", Category: enums.CategoryHeadphones, Price: 29990, Image: DefaultImage},
		{ID: 7, Name: "Dell XPS 15", Category: enums.CategoryLaptops, Price: 149990, Image: DefaultImage},
		{ID: 8, Name: "Apple Watch Series 9", Category: enums.CategorySmartwatch, Price: 44990, Image: DefaultImage},
	}
}

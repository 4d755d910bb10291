package model

import "time"

// Product mirrors the `products` table. Price is a DECIMAL(8,2) on the
// database side and always carries at most cent precision.
type Product struct {
	ID          uint64    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	Category    string    `json:"category"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Pagination describes the page window of a product listing. TotalPages
// is ceil(TotalCount / PageSize); all fields are zero for an empty result.
type Pagination struct {
	CurrentPage     int  `json:"currentPage"`
	PageSize        int  `json:"pageSize"`
	TotalCount      int  `json:"totalCount"`
	TotalPages      int  `json:"totalPages"`
	HasNextPage     bool `json:"hasNextPage"`
	HasPreviousPage bool `json:"hasPreviousPage"`
}

// CategoryStat is one row of the per-category statistics aggregation.
type CategoryStat struct {
	Category     string  `json:"category"`
	Count        int     `json:"count"`
	AveragePrice float64 `json:"averagePrice"`
	MinPrice     float64 `json:"minPrice"`
	MaxPrice     float64 `json:"maxPrice"`
}

// PriceRange is one bucket of the fixed five-bucket price histogram.
type PriceRange struct {
	Range      string  `json:"range"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

// Statistics bundles the three independent aggregations served by
// GET /api/products/statistics.
type Statistics struct {
	TotalProducts int            `json:"totalProducts"`
	AveragePrice  float64        `json:"averagePrice"`
	Categories    []CategoryStat `json:"categories"`
	PriceRanges   []PriceRange   `json:"priceRanges"`
}

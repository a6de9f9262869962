package domain

// TrendingProduct is one row of the most-viewed ranking.
type TrendingProduct struct {
	ProductID uint64 `json:"product_id"`
	Views     int64  `json:"views"`
}

// Recommendation is a trending row hydrated with its product.
type Recommendation struct {
	Product Product `json:"product"`
	Views   int64   `json:"views"`
}

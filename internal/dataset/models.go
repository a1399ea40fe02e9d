package dataset

// Product is one catalog row of the eyewear image dataset.
type Product struct {
	ProductID  int64    `json:"product_id" parquet:"product_id"`
	Category   string   `json:"category" parquet:"category"`
	ImageCount int      `json:"image_count" parquet:"image_count"`
	ImageURLs  []string `json:"image_urls" parquet:"image_urls,list"`
}

package models

// AnalysisRequest represents a request to analyze a set of product images.
type AnalysisRequest struct {
	ImageURLs []string `json:"image_urls" binding:"required,min=1"`
	ProductID string   `json:"product_id,omitempty"`
}

// ErrorResponse represents an error response body.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// ProductListResponse wraps a set of dataset products.
type ProductListResponse struct {
	Products interface{} `json:"products"`
	Count    int         `json:"count"`
}

package catalog

// Product mirrors the upstream catalog document. Stock is nil when the
// upstream omits it; Image is the blob-store URL relayed as-is.
type Product struct {
	ID         string  `json:"_id"`
	Name       string  `json:"name"`
	Price      float64 `json:"price"`
	Stock      *int    `json:"stock,omitempty"`
	Category   string  `json:"category,omitempty"`
	Restaurant string  `json:"restaurant,omitempty"`
	Image      string  `json:"image,omitempty"`
}

// ProductInput is the POS-supplied payload for creating or updating a
// product.
type ProductInput struct {
	Name       string  `json:"name"`
	Price      float64 `json:"price"`
	Stock      int     `json:"stock"`
	Category   string  `json:"category,omitempty"`
	Restaurant string  `json:"restaurant,omitempty"`
	Image      string  `json:"image,omitempty"`
}

// ListQuery narrows a product listing. Zero values mean "no filter"; Page
// and Limit follow the upstream's pagination.
type ListQuery struct {
	Name     string
	Category string
	Page     int
	Limit    int
}

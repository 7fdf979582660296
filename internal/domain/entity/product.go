package entity

import "time"

type Product struct {
	ID           string    `json:"id" firestore:"id"`
	SellerID     string    `json:"seller_id" firestore:"sellerId"`
	CategoryID   string    `json:"category_id" firestore:"categoryId"`
	Title        string    `json:"title" firestore:"title"`
	Description  string    `json:"description" firestore:"description"`
	Price        float64   `json:"price" firestore:"price"`
	Currency     string    `json:"currency" firestore:"currency"` // "WLD", "USD"
	Images       []string  `json:"images" firestore:"images"`
	Condition    string    `json:"condition" firestore:"condition"` // "new", "second-hand"
	Location     string    `json:"location" firestore:"location"`
	Status       string    `json:"status" firestore:"status"` // "active", "sold", "pending", "inactive"
	Views        int       `json:"views" firestore:"views"`
	IsFeatured   bool      `json:"is_featured" firestore:"isFeatured"`
	ExternalLink string    `json:"external_link,omitempty" firestore:"externalLink,omitempty"`
	CreatedAt    time.Time `json:"created_at" firestore:"createdAt"`
	UpdatedAt    time.Time `json:"updated_at" firestore:"updatedAt"`
}

// Summary flattens the product into the slice embedded in conversation views.
func (p *Product) Summary() ProductSummary {
	return ProductSummary{
		ID:       p.ID,
		Title:    p.Title,
		Images:   p.Images,
		Price:    p.Price,
		Currency: p.Currency,
	}
}

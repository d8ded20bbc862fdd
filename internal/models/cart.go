package models

import "time"

// CartItem is one cart line. Lines are identified by ProductID together with Options.
type CartItem struct {
	ProductID string            `json:"productId"`
	Name      string            `json:"name"`
	Price     float64           `json:"price"`
	SalePrice *float64          `json:"salePrice,omitempty"`
	Image     string            `json:"image"`
	Quantity  int               `json:"quantity"`
	Options   map[string]string `json:"options"`
	AddedAt   time.Time         `json:"addedAt"`
}

type Like struct {
	UserID    string    `json:"userId"`
	ProductID string    `json:"productId"`
	SiteSlug  string    `json:"siteSlug"`
	CreatedAt time.Time `json:"createdAt"`
}

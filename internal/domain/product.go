package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type Category string

const (
	CategoryWater Category = "WATER"
	CategoryMilk  Category = "MILK"
)

type Product struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Category    Category        `json:"category"`
	Active      bool            `json:"active"`
	ImageURL    string          `json:"image_url,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}

// LineItem is a priced cart entry: a product joined with the requested
// quantity and the resulting line subtotal.
type LineItem struct {
	Product  Product         `json:"product"`
	Quantity int             `json:"quantity"`
	Subtotal decimal.Decimal `json:"subtotal"`
}

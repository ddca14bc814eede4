package entity

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LineItem is one product in a cart. UnitPrice is the catalog price at the
// time the product was first added and does not follow later price changes.
type LineItem struct {
	ProductID      uuid.UUID
	Name           string
	UnitPrice      decimal.Decimal
	Quantity       int
	ImageRef       string
	AvailableStock int
	Dimensions     Dimensions
}

// LineTotal returns UnitPrice × Quantity.
func (l LineItem) LineTotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Subtotal sums the line totals of items.
func Subtotal(items []LineItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.LineTotal())
	}

	return total
}

// NewLineItem snapshots a catalog product into a cart line.
func NewLineItem(product *Product, quantity int) LineItem {
	return LineItem{
		ProductID:      product.ID,
		Name:           product.Name,
		UnitPrice:      product.Price,
		Quantity:       quantity,
		ImageRef:       product.ImageRef,
		AvailableStock: product.Stock,
		Dimensions:     product.Dimensions,
	}
}

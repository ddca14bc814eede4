// Package entity contains the core business objects of the storefront.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product is the catalog view the cart and checkout depend on.
// Catalog management itself lives outside this service.
type Product struct {
	ID         uuid.UUID
	Name       string
	Price      decimal.Decimal
	ImageRef   string
	Stock      int
	Dimensions Dimensions
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Dimensions are the optional packaging attributes of one unit.
// A nil field means the attribute is unknown.
type Dimensions struct {
	LengthCm *float64
	WidthCm  *float64
	HeightCm *float64
	WeightKg *float64
}

package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CartItemModel is the GORM-specific struct for the 'cart' table.
// (user_id, product_id) is unique; ID preserves insertion order.
type CartItemModel struct {
	ID        int64           `gorm:"primaryKey;autoIncrement"`
	UserID    uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_cart_user_product"`
	ProductID uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_cart_user_product"`
	Quantity  int             `gorm:"not null"`
	UnitPrice decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (CartItemModel) TableName() string {
	return "cart"
}

// CartLineRow is the result of joining cart rows with their products.
type CartLineRow struct {
	ProductID uuid.UUID
	Quantity  int
	UnitPrice decimal.Decimal
	Name      string
	ImageRef  string
	Stock     int
	LengthCm  *float64
	WidthCm   *float64
	HeightCm  *float64
	WeightKg  *float64
}

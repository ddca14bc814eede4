package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProductModel is the GORM-specific struct for the 'products' table.
// Stock carries a CHECK (stock >= 0) constraint in the schema.
type ProductModel struct {
	ID        uuid.UUID       `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Name      string          `gorm:"type:text;not null"`
	Price     decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	ImageRef  string          `gorm:"type:text"`
	Stock     int             `gorm:"not null;default:0"`
	LengthCm  *float64        `gorm:"type:numeric(8,2)"`
	WidthCm   *float64        `gorm:"type:numeric(8,2)"`
	HeightCm  *float64        `gorm:"type:numeric(8,2)"`
	WeightKg  *float64        `gorm:"type:numeric(8,3)"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (ProductModel) TableName() string {
	return "products"
}

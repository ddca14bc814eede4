package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderModel is the GORM-specific struct for the 'orders' table.
type OrderModel struct {
	ID                    uuid.UUID       `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	UserID                uuid.UUID       `gorm:"type:uuid;not null;index"`
	Status                string          `gorm:"type:text;not null"`
	TotalAmount           decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	ShippingCost          decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Currency              string          `gorm:"type:char(3);not null"`
	ShipStreet            string          `gorm:"type:text;not null"`
	ShipLocality          string          `gorm:"type:text;not null"`
	ShipRegion            string          `gorm:"type:text"`
	ShipPostalCode        string          `gorm:"type:text;not null"`
	ShipCountry           string          `gorm:"type:text;not null"`
	ShipLat               *float64
	ShipLng               *float64
	ContactName           string  `gorm:"type:text;not null"`
	ContactCompany        string  `gorm:"type:text"`
	ContactEmail          string  `gorm:"type:text;not null"`
	ContactPhone          string  `gorm:"type:text"`
	CarrierID             string  `gorm:"type:text;not null"`
	ServiceLevelID        string  `gorm:"type:text;not null"`
	PaymentMethod         string  `gorm:"type:text;not null"`
	IdempotencyKey        *string `gorm:"type:text"`
	TrackingNumber        *string `gorm:"type:text;uniqueIndex"`
	LabelURL              string  `gorm:"type:text"`
	EstimatedDeliveryDate *time.Time
	ShipmentStatus        string `gorm:"type:text;not null;default:'none'"`
	ShipmentError         string `gorm:"type:text"`
	ShipmentAttemptedAt   *time.Time
	CreatedAt             time.Time
	UpdatedAt             time.Time

	Items []OrderItemModel `gorm:"foreignKey:OrderID"`
}

// TableName explicitly sets the table name for GORM.
func (OrderModel) TableName() string {
	return "orders"
}

// OrderItemModel is the GORM-specific struct for the 'order_items' table.
// Price is the unit price paid and never changes after insert.
type OrderItemModel struct {
	ID        int64           `gorm:"primaryKey;autoIncrement"`
	OrderID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID uuid.UUID       `gorm:"type:uuid;not null"`
	Name      string          `gorm:"type:text;not null"`
	Quantity  int             `gorm:"not null"`
	Price     decimal.Decimal `gorm:"type:numeric(12,2);not null"`
}

// TableName explicitly sets the table name for GORM.
func (OrderItemModel) TableName() string {
	return "order_items"
}

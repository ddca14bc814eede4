// Package repository defines the persistence contracts used by the use cases.
package repository

import (
	"context"

	"storefront/internal/domain/entity"
	"storefront/internal/errors"

	"github.com/google/uuid"
)

var (
	// ErrProductNotFound is returned when a product does not exist.
	ErrProductNotFound = errors.New("product not found")
)

// ProductRepository is the read side of the catalog plus stock reservation.
type ProductRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Product, error)

	// FindByIDs returns the products that exist; missing ids are skipped.
	FindByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*entity.Product, error)

	// DecrementStock subtracts quantity only when enough stock remains.
	// It reports false, without error, when the decrement would go below zero.
	DecrementStock(ctx context.Context, id uuid.UUID, quantity int) (bool, error)
}

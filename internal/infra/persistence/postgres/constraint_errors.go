package postgres

import (
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// PostgreSQL SQLSTATE codes
const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
	codeCheckViolation      = "23514"
)

const (
	constraintCartUserProduct     = "idx_cart_user_product"
	constraintOrderIdempotencyKey = "idx_orders_user_idempotency"
	constraintStockNonNegative    = "products_stock_non_negative"
)

func pgError(err error) (*pgconn.PgError, bool) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr, true
	}

	return nil, false
}

func isUniqueConstraintViolation(err error, constraint string) bool {
	if pgErr, ok := pgError(err); ok {
		return pgErr.Code == codeUniqueViolation && (constraint == "" || pgErr.ConstraintName == constraint)
	}

	return constraint == "" && errors.Is(err, gorm.ErrDuplicatedKey)
}

func isForeignKeyConstraintViolation(err error) bool {
	if pgErr, ok := pgError(err); ok {
		return pgErr.Code == codeForeignKeyViolation
	}

	return errors.Is(err, gorm.ErrForeignKeyViolated)
}

func isCheckConstraintViolation(err error, constraint string) bool {
	if pgErr, ok := pgError(err); ok {
		return pgErr.Code == codeCheckViolation && (constraint == "" || pgErr.ConstraintName == constraint)
	}

	return constraint == "" && errors.Is(err, gorm.ErrCheckConstraintViolated)
}

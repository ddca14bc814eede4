package postgres

import (
	"context"
	"time"

	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const cartLineColumns = "c.product_id, c.quantity, c.unit_price, p.name, p.image_ref, p.stock, " +
	"p.length_cm, p.width_cm, p.height_cm, p.weight_kg"

type cartRepository struct {
	db *gorm.DB
}

// NewCartRepository is the constructor for cartRepository.
func NewCartRepository(db *gorm.DB) repository.CartRepository {
	return &cartRepository{db: db}
}

func (repo *cartRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]entity.LineItem, error) {
	var rows []model.CartLineRow

	if err := repo.db.WithContext(ctx).
		Table("cart AS c").
		Select(cartLineColumns).
		Joins("JOIN products p ON p.id = c.product_id").
		Where("c.user_id = ?", userID).
		Order("c.id ASC").
		Scan(&rows).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list cart lines")
	}

	items := make([]entity.LineItem, 0, len(rows))
	for i := range rows {
		items = append(items, toLineItemDomain(&rows[i]))
	}

	return items, nil
}

// AcquireCartMutex takes a transaction-scoped advisory lock keyed by user.
// It must run inside TransactionManager.Execute; outside a transaction the
// lock is released as soon as the statement ends.
func (repo *cartRepository) AcquireCartMutex(ctx context.Context, userID uuid.UUID) error {
	if err := repo.db.WithContext(ctx).
		Exec("SELECT pg_advisory_xact_lock(hashtextextended(?, 0))", "cart:"+userID.String()).Error; err != nil {
		return errors.Wrap(err, "failed to acquire cart lock")
	}

	return nil
}

func (repo *cartRepository) AddQuantity(ctx context.Context, userID, productID uuid.UUID, quantity int, unitPrice decimal.Decimal) error {
	now := time.Now()
	itemM := &model.CartItemModel{
		UserID:    userID,
		ProductID: productID,
		Quantity:  quantity,
		UnitPrice: unitPrice,
		CreatedAt: now,
		UpdatedAt: now,
	}

	// The existing price snapshot is kept on conflict.
	err := repo.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}, {Name: "product_id"}},
			DoUpdates: clause.Assignments(map[string]any{
				"quantity":   gorm.Expr("cart.quantity + EXCLUDED.quantity"),
				"updated_at": now,
			}),
		}).
		Create(itemM).Error
	if err != nil {
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrProductNotFound
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to add cart line")
	}

	return nil
}

func (repo *cartRepository) SetQuantity(ctx context.Context, userID, productID uuid.UUID, quantity int) (bool, error) {
	result := repo.db.WithContext(ctx).
		Model(&model.CartItemModel{}).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Updates(map[string]any{
			"quantity":   quantity,
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return false, domainerrors.NewDatabaseExecuteError(result.Error, "failed to set cart quantity")
	}

	return result.RowsAffected > 0, nil
}

func (repo *cartRepository) Delete(ctx context.Context, userID, productID uuid.UUID) error {
	if err := repo.db.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Delete(&model.CartItemModel{}).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to delete cart line")
	}

	return nil
}

func (repo *cartRepository) DeleteByUser(ctx context.Context, userID uuid.UUID) error {
	if err := repo.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&model.CartItemModel{}).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to clear cart")
	}

	return nil
}

func (repo *cartRepository) InsertAll(ctx context.Context, userID uuid.UUID, items []entity.LineItem) error {
	if len(items) == 0 {
		return nil
	}

	now := time.Now()
	itemModels := make([]*model.CartItemModel, 0, len(items))
	for _, item := range items {
		itemModels = append(itemModels, &model.CartItemModel{
			UserID:    userID,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			CreatedAt: now,
			UpdatedAt: now,
		})
	}

	if err := repo.db.WithContext(ctx).Create(&itemModels).Error; err != nil {
		if isUniqueConstraintViolation(err, constraintCartUserProduct) {
			return domainerrors.ErrCartMismatch.WrapMessage("duplicate product in merged cart")
		}
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrProductNotFound
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to insert cart lines")
	}

	return nil
}

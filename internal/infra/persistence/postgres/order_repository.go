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
	"gorm.io/gorm"
)

type orderRepository struct {
	db *gorm.DB
}

// NewOrderRepository is the constructor for orderRepository.
func NewOrderRepository(db *gorm.DB) repository.OrderRepository {
	return &orderRepository{db: db}
}

func (repo *orderRepository) Create(ctx context.Context, order *entity.Order) error {
	orderM := fromOrderDomain(order)

	if err := repo.db.WithContext(ctx).Create(orderM).Error; err != nil {
		if isUniqueConstraintViolation(err, constraintOrderIdempotencyKey) {
			return repository.ErrDuplicateIdempotencyKey
		}
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrProductNotFound.WrapMessage("order references an unknown product")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create order")
	}

	order.ID = orderM.ID
	order.CreatedAt = orderM.CreatedAt
	order.UpdatedAt = orderM.UpdatedAt

	return nil
}

func (repo *orderRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	return repo.findOne(ctx, "id = ?", id)
}

func (repo *orderRepository) FindByIdempotencyKey(ctx context.Context, userID uuid.UUID, key string) (*entity.Order, error) {
	return repo.findOne(ctx, "user_id = ? AND idempotency_key = ?", userID, key)
}

func (repo *orderRepository) FindByTrackingNumber(ctx context.Context, trackingNumber string) (*entity.Order, error) {
	return repo.findOne(ctx, "tracking_number = ?", trackingNumber)
}

func (repo *orderRepository) findOne(ctx context.Context, query string, args ...any) (*entity.Order, error) {
	var orderM model.OrderModel

	if err := repo.withItems(ctx).Where(query, args...).First(&orderM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrOrderNotFound
		}

		return nil, errors.Wrap(err, "failed to find order")
	}

	return toOrderDomain(&orderM), nil
}

func (repo *orderRepository) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.Order, error) {
	var orderModels []*model.OrderModel

	query := repo.withItems(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC")

	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	if err := query.Find(&orderModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list orders by user")
	}

	orders := make([]*entity.Order, 0, len(orderModels))
	for _, orderM := range orderModels {
		orders = append(orders, toOrderDomain(orderM))
	}

	return orders, nil
}

func (repo *orderRepository) withItems(ctx context.Context) *gorm.DB {
	return repo.db.WithContext(ctx).Preload("Items", func(db *gorm.DB) *gorm.DB {
		return db.Order("order_items.id ASC")
	})
}

func (repo *orderRepository) ClaimShipment(ctx context.Context, id uuid.UUID, from []entity.ShipmentStatus) (bool, error) {
	now := time.Now()
	result := repo.db.WithContext(ctx).
		Model(&model.OrderModel{}).
		Where("id = ? AND shipment_status IN ?", id, shipmentStatusStrings(from)).
		Updates(map[string]any{
			"shipment_status":       string(entity.ShipmentStatusPending),
			"shipment_error":        "",
			"shipment_attempted_at": now,
			"updated_at":            now,
		})
	if result.Error != nil {
		return false, domainerrors.NewDatabaseExecuteError(result.Error, "failed to claim shipment")
	}

	return result.RowsAffected == 1, nil
}

func (repo *orderRepository) ReclaimStalledShipment(ctx context.Context, id uuid.UUID, attemptedBefore time.Time) (bool, error) {
	now := time.Now()
	result := repo.db.WithContext(ctx).
		Model(&model.OrderModel{}).
		Where("id = ? AND shipment_status = ? AND shipment_attempted_at < ?",
			id, string(entity.ShipmentStatusPending), attemptedBefore).
		Updates(map[string]any{
			"shipment_attempted_at": now,
			"updated_at":            now,
		})
	if result.Error != nil {
		return false, domainerrors.NewDatabaseExecuteError(result.Error, "failed to reclaim shipment")
	}

	return result.RowsAffected == 1, nil
}

func (repo *orderRepository) MarkShipmentCreated(ctx context.Context, id uuid.UUID, record *entity.ShipmentRecord) error {
	result := repo.db.WithContext(ctx).
		Model(&model.OrderModel{}).
		Where("id = ? AND shipment_status = ?", id, string(entity.ShipmentStatusPending)).
		Updates(map[string]any{
			"shipment_status":         string(entity.ShipmentStatusCreated),
			"tracking_number":         record.TrackingNumber,
			"label_url":               record.LabelURL,
			"estimated_delivery_date": record.EstimatedDeliveryDate,
			"updated_at":              time.Now(),
		})
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to record shipment")
	}
	if result.RowsAffected == 0 {
		return errors.Wrapf(repository.ErrOrderNotFound, "no pending shipment for order %s", id)
	}

	return nil
}

func (repo *orderRepository) MarkShipmentFailed(ctx context.Context, id uuid.UUID, reason string, at time.Time) error {
	result := repo.db.WithContext(ctx).
		Model(&model.OrderModel{}).
		Where("id = ? AND shipment_status = ?", id, string(entity.ShipmentStatusPending)).
		Updates(map[string]any{
			"shipment_status":       string(entity.ShipmentStatusFailed),
			"shipment_error":        reason,
			"shipment_attempted_at": at,
			"updated_at":            time.Now(),
		})
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to record shipment failure")
	}

	return nil
}

func (repo *orderRepository) AdvanceStatus(ctx context.Context, trackingNumber string, from []entity.OrderStatus, to entity.OrderStatus) (bool, error) {
	if len(from) == 0 {
		return false, nil
	}

	fromStrings := make([]string, 0, len(from))
	for _, status := range from {
		fromStrings = append(fromStrings, string(status))
	}

	result := repo.db.WithContext(ctx).
		Model(&model.OrderModel{}).
		Where("tracking_number = ? AND status IN ?", trackingNumber, fromStrings).
		Updates(map[string]any{
			"status":     string(to),
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return false, domainerrors.NewDatabaseExecuteError(result.Error, "failed to advance order status")
	}

	return result.RowsAffected == 1, nil
}

func (repo *orderRepository) UpdateDeliveryEstimate(ctx context.Context, trackingNumber string, eta time.Time) error {
	result := repo.db.WithContext(ctx).
		Model(&model.OrderModel{}).
		Where("tracking_number = ? AND status NOT IN ?", trackingNumber,
			[]string{string(entity.OrderStatusDelivered), string(entity.OrderStatusCancelled)}).
		Updates(map[string]any{
			"estimated_delivery_date": eta,
			"updated_at":              time.Now(),
		})
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update delivery estimate")
	}

	return nil
}

func shipmentStatusStrings(statuses []entity.ShipmentStatus) []string {
	out := make([]string, 0, len(statuses))
	for _, status := range statuses {
		out = append(out, string(status))
	}

	return out
}

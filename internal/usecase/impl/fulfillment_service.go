package impl

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"storefront/config"
	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/errors"
	"storefront/internal/usecase"

	"github.com/google/uuid"
	"go.uber.org/fx"
)

type fulfillmentService struct {
	logger      *slog.Logger
	orderRepo   repository.OrderRepository
	productRepo repository.ProductRepository
	resolver    usecase.RateResolver
	now         func() time.Time
	// stalledAfter is how long a pending shipment may go unrecorded before
	// an admin can request it again.
	stalledAfter time.Duration
}

const minStalledShipmentAge = time.Minute

// FulfillmentServiceParams holds dependencies for FulfillmentService, injected by Fx.
type FulfillmentServiceParams struct {
	fx.In

	Config      *config.Config
	Logger      *slog.Logger
	OrderRepo   repository.OrderRepository
	ProductRepo repository.ProductRepository
	Resolver    usecase.RateResolver
}

// NewFulfillmentService creates a new fulfillment service instance
func NewFulfillmentService(params FulfillmentServiceParams) usecase.FulfillmentUsecase {
	return &fulfillmentService{
		logger:       params.Logger,
		orderRepo:    params.OrderRepo,
		productRepo:  params.ProductRepo,
		resolver:     params.Resolver,
		now:          time.Now,
		stalledAfter: stalledShipmentAge(params.Config),
	}
}

// stalledShipmentAge is twice the carrier timeout, never under a minute.
// The carrier deduplicates on the order id, so a reclaimed attempt cannot
// book a second parcel.
func stalledShipmentAge(cfg *config.Config) time.Duration {
	if cfg == nil {
		return minStalledShipmentAge
	}

	return max(2*cfg.Carrier.Timeout, minStalledShipmentAge)
}

func (s *fulfillmentService) ShipOrder(ctx context.Context, orderID uuid.UUID) (*entity.Order, error) {
	order, err := s.findOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.ShipmentStatus != entity.ShipmentStatusNone {
		return s.alreadyRequested(order)
	}

	return s.claimAndDispatch(ctx, order, s.claimFrom(entity.ShipmentStatusNone))
}

func (s *fulfillmentService) RetryShipment(ctx context.Context, actor usecase.Actor, orderID uuid.UUID) (*entity.Order, error) {
	order, err := s.findOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !actor.CanAccess(order.UserID) {
		return nil, domainerrors.ErrOrderNotFound
	}

	if order.ShipmentStatus == entity.ShipmentStatusCreated {
		return order, nil
	}
	if order.Status == entity.OrderStatusCancelled {
		return nil, domainerrors.ErrShipmentNotRetryable.WithDetails("order is cancelled")
	}
	if order.ShipmentStatus == entity.ShipmentStatusPending {
		if !actor.IsAdmin() || !s.stalled(order) {
			return nil, domainerrors.ErrShipmentInProgress
		}
		s.logger.WarnContext(ctx, "Reclaiming stalled shipment",
			slog.String("order_id", order.ID.String()),
			slog.String("admin_id", actor.UserID.String()),
			slog.Time("attempted_at", *order.ShipmentAttemptedAt),
		)

		return s.claimAndDispatch(ctx, order, func(ctx context.Context, id uuid.UUID) (bool, error) {
			return s.orderRepo.ReclaimStalledShipment(ctx, id, s.now().Add(-s.stalledAfter))
		})
	}

	return s.claimAndDispatch(ctx, order, s.claimFrom(entity.ShipmentStatusNone, entity.ShipmentStatusFailed))
}

// stalled reports whether a pending attempt is old enough that the process
// that claimed it has most likely died.
func (s *fulfillmentService) stalled(order *entity.Order) bool {
	return order.ShipmentAttemptedAt != nil && s.now().Sub(*order.ShipmentAttemptedAt) > s.stalledAfter
}

type shipmentClaim func(ctx context.Context, orderID uuid.UUID) (bool, error)

func (s *fulfillmentService) claimFrom(from ...entity.ShipmentStatus) shipmentClaim {
	return func(ctx context.Context, orderID uuid.UUID) (bool, error) {
		return s.orderRepo.ClaimShipment(ctx, orderID, from)
	}
}

// alreadyRequested resolves a ShipOrder call for an order someone else
// already claimed.
func (s *fulfillmentService) alreadyRequested(order *entity.Order) (*entity.Order, error) {
	if order.ShipmentStatus == entity.ShipmentStatusPending {
		return nil, domainerrors.ErrShipmentInProgress
	}

	return order, nil
}

func (s *fulfillmentService) claimAndDispatch(ctx context.Context, order *entity.Order, claim shipmentClaim) (*entity.Order, error) {
	claimed, err := claim(ctx, order.ID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to claim shipment")
	}
	if !claimed {
		current, err := s.findOrder(ctx, order.ID)
		if err != nil {
			return nil, err
		}

		return s.alreadyRequested(current)
	}

	logger := s.logger.With(slog.String("order_id", order.ID.String()))

	record, err := s.dispatch(ctx, order)
	if err != nil {
		logger.WarnContext(ctx, "Shipment creation failed", slog.Any("error", err))
		if markErr := s.orderRepo.MarkShipmentFailed(ctx, order.ID, failureReason(err), s.now()); markErr != nil {
			logger.ErrorContext(ctx, "Failed to record shipment failure", slog.Any("error", markErr))
		}

		return nil, err
	}

	if err := s.orderRepo.MarkShipmentCreated(ctx, order.ID, record); err != nil {
		// The carrier holds a shipment the order does not know about.
		logger.ErrorContext(ctx, "Failed to record created shipment",
			slog.String("tracking_number", record.TrackingNumber),
			slog.Any("error", err),
		)

		return nil, errors.Wrap(err, "failed to record shipment")
	}

	logger.InfoContext(ctx, "Shipment created", slog.String("tracking_number", record.TrackingNumber))

	return s.findOrder(ctx, order.ID)
}

// dispatch rebuilds the parcel from the order lines and current product
// dimensions and books it with the carrier.
func (s *fulfillmentService) dispatch(ctx context.Context, order *entity.Order) (*entity.ShipmentRecord, error) {
	ids := make([]uuid.UUID, 0, len(order.Lines))
	for _, line := range order.Lines {
		ids = append(ids, line.ProductID)
	}

	products, err := s.productRepo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load products")
	}

	items := make([]entity.LineItem, 0, len(order.Lines))
	for _, line := range order.Lines {
		item := entity.LineItem{
			ProductID: line.ProductID,
			Name:      line.Name,
			UnitPrice: line.UnitPriceAtPurchase,
			Quantity:  line.Quantity,
		}
		if product, ok := products[line.ProductID]; ok {
			item.Dimensions = product.Dimensions
		}
		items = append(items, item)
	}

	return s.resolver.CreateShipment(ctx, order, items)
}

func (s *fulfillmentService) ApplyCarrierStatus(ctx context.Context, update *usecase.ShipmentStatusUpdate) (bool, error) {
	logger := s.logger.With(
		slog.String("tracking_number", update.TrackingNumber),
		slog.String("carrier_status", update.Status),
	)

	target, known := carrierStatus(update.Status)
	if !known {
		return false, domainerrors.ErrUnknownShipmentStatus.WithDetails(update.Status)
	}

	changed := false
	if target != entity.OrderStatusProcessing {
		advanced, err := s.orderRepo.AdvanceStatus(ctx, update.TrackingNumber, target.Predecessors(), target)
		if err != nil {
			return false, errors.Wrap(err, "failed to advance order status")
		}
		changed = advanced
	}

	if !changed {
		order, err := s.orderRepo.FindByTrackingNumber(ctx, update.TrackingNumber)
		if err != nil {
			if errors.Is(err, repository.ErrOrderNotFound) {
				return false, domainerrors.ErrOrderNotFound.WithDetails(update.TrackingNumber)
			}

			return false, errors.Wrap(err, "failed to find order")
		}
		if order.Status != target {
			logger.InfoContext(ctx, "Ignoring stale carrier status", slog.String("order_status", string(order.Status)))

			return false, nil
		}
	}

	if update.EstimatedDeliveryDate != nil {
		if err := s.orderRepo.UpdateDeliveryEstimate(ctx, update.TrackingNumber, *update.EstimatedDeliveryDate); err != nil {
			return changed, errors.Wrap(err, "failed to update delivery estimate")
		}
	}

	if changed {
		logger.InfoContext(ctx, "Order status advanced", slog.String("order_status", string(target)))
	}

	return changed, nil
}

// carrierStatus maps a carrier tracking status onto the order lifecycle.
// Statuses before pickup map to processing and never change the order.
func carrierStatus(status string) (entity.OrderStatus, bool) {
	switch strings.ToLower(strings.TrimSpace(status)) {
	case "created", "label_created", "pre_transit", "processing":
		return entity.OrderStatusProcessing, true
	case "picked_up", "in_transit", "out_for_delivery", "shipped":
		return entity.OrderStatusShipped, true
	case "delivered":
		return entity.OrderStatusDelivered, true
	case "cancelled", "canceled", "returned":
		return entity.OrderStatusCancelled, true
	default:
		return "", false
	}
}

func failureReason(err error) string {
	var appErr domainerrors.AppError
	if errors.As(err, &appErr) {
		if appErr.Details() != "" {
			return appErr.ErrorCode() + ": " + appErr.Details()
		}

		return appErr.ErrorCode()
	}

	return err.Error()
}

func (s *fulfillmentService) findOrder(ctx context.Context, orderID uuid.UUID) (*entity.Order, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			return nil, domainerrors.ErrOrderNotFound
		}

		return nil, errors.Wrap(err, "failed to find order")
	}

	return order, nil
}

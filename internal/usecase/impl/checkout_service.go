package impl

import (
	"context"
	"log/slog"
	"slices"
	"strings"

	"storefront/config"
	deliverycontext "storefront/internal/delivery/context"
	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/domain/service"
	"storefront/internal/errors"
	"storefront/internal/usecase"

	"github.com/google/uuid"
	"go.uber.org/fx"
)

const maxOrderPageSize = 100

type checkoutService struct {
	logger         *slog.Logger
	txManager      repository.TransactionManager
	cartRepo       repository.CartRepository
	orderRepo      repository.OrderRepository
	resolver       usecase.RateResolver
	fulfillment    usecase.FulfillmentUsecase
	publisher      service.EventPublisher
	qrcode         service.QRCodeService
	asyncShipment  bool
	paymentMethods []string
}

// CheckoutServiceParams holds dependencies for CheckoutService, injected by Fx.
type CheckoutServiceParams struct {
	fx.In

	Config      *config.Config
	Logger      *slog.Logger
	TxManager   repository.TransactionManager
	CartRepo    repository.CartRepository
	OrderRepo   repository.OrderRepository
	Resolver    usecase.RateResolver
	Fulfillment usecase.FulfillmentUsecase
	Publisher   service.EventPublisher
	QRCode      service.QRCodeService
}

// NewCheckoutService creates a new checkout service instance
func NewCheckoutService(params CheckoutServiceParams) usecase.CheckoutUsecase {
	return &checkoutService{
		logger:         params.Logger,
		txManager:      params.TxManager,
		cartRepo:       params.CartRepo,
		orderRepo:      params.OrderRepo,
		resolver:       params.Resolver,
		fulfillment:    params.Fulfillment,
		publisher:      params.Publisher,
		qrcode:         params.QRCode,
		asyncShipment:  params.Config.Checkout.AsyncShipment,
		paymentMethods: params.Config.Checkout.PaymentMethods,
	}
}

func (s *checkoutService) PlaceOrder(ctx context.Context, in *usecase.PlaceOrderInput) (*entity.Order, error) {
	logger := deliverycontext.GetLoggerOrDefault(ctx, s.logger).With(slog.String("user_id", in.UserID.String()))

	if !s.paymentMethodAllowed(in.PaymentMethod) {
		return nil, domainerrors.ErrUnsupportedPaymentMethod.WithDetails(in.PaymentMethod)
	}

	if in.IdempotencyKey != "" {
		existing, err := s.orderRepo.FindByIdempotencyKey(ctx, in.UserID, in.IdempotencyKey)
		if err == nil {
			logger.InfoContext(ctx, "Checkout replayed", slog.String("order_id", existing.ID.String()))

			return existing, nil
		}
		if !errors.Is(err, repository.ErrOrderNotFound) {
			return nil, errors.Wrap(err, "failed to look up idempotency key")
		}
	}

	// Validating
	items, err := s.cartRepo.ListByUser(ctx, in.UserID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list cart")
	}
	if len(items) == 0 {
		return nil, domainerrors.ErrEmptyCart
	}
	if len(in.CartItems) > 0 && !sameQuantities(items, in.CartItems) {
		return nil, domainerrors.ErrCartMismatch
	}

	rates, quote, err := s.resolver.MatchQuote(ctx, in.Address, items, in.Selection)
	if err != nil {
		return nil, err
	}
	if quote == nil {
		return nil, domainerrors.ErrQuoteStale
	}

	order := newOrder(in, items, rates.Destination, quote)

	// Reserving
	err = s.txManager.Execute(ctx, func(repos repository.RepositoryFactory) error {
		return reserve(ctx, repos, order, items)
	})
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateIdempotencyKey) {
			logger.InfoContext(ctx, "Checkout replayed after concurrent submit")

			return s.orderRepo.FindByIdempotencyKey(ctx, in.UserID, in.IdempotencyKey)
		}
		logger.WarnContext(ctx, "Checkout aborted", slog.Any("error", err))

		return nil, err
	}

	// Committed
	logger.InfoContext(ctx, "Order committed",
		slog.String("order_id", order.ID.String()),
		slog.String("total", order.TotalAmount.String()),
		slog.Int("lines", len(order.Lines)),
	)

	return s.dispatch(ctx, logger, order), nil
}

// reserve runs inside one transaction. Any error rolls back the order, its
// lines, every stock decrement and the cart deletion together.
func reserve(ctx context.Context, repos repository.RepositoryFactory, order *entity.Order, validated []entity.LineItem) error {
	cartRepo := repos.CartRepo()
	if err := cartRepo.AcquireCartMutex(ctx, order.UserID); err != nil {
		return errors.Wrap(err, "failed to lock cart")
	}

	// A concurrent submit with the same key may have committed while this
	// one was quoting; it emptied the cart, so check the key before the cart.
	if order.IdempotencyKey != nil {
		_, err := repos.OrderRepo().FindByIdempotencyKey(ctx, order.UserID, *order.IdempotencyKey)
		if err == nil {
			return repository.ErrDuplicateIdempotencyKey
		}
		if !errors.Is(err, repository.ErrOrderNotFound) {
			return errors.Wrap(err, "failed to look up idempotency key")
		}
	}

	current, err := cartRepo.ListByUser(ctx, order.UserID)
	if err != nil {
		return errors.Wrap(err, "failed to reload cart")
	}
	if !sameLines(current, validated) {
		return domainerrors.ErrCartMismatch
	}

	if err := repos.OrderRepo().Create(ctx, order); err != nil {
		return err
	}

	// Decrements run in product id order so concurrent checkouts lock rows
	// in the same sequence.
	lines := slices.Clone(order.Lines)
	slices.SortFunc(lines, func(a, b entity.OrderLine) int {
		return strings.Compare(a.ProductID.String(), b.ProductID.String())
	})

	productRepo := repos.ProductRepo()
	for _, line := range lines {
		ok, err := productRepo.DecrementStock(ctx, line.ProductID, line.Quantity)
		if err != nil {
			return errors.Wrap(err, "failed to decrement stock")
		}
		if !ok {
			return domainerrors.ErrInsufficientStock.WithDetails(line.ProductID.String())
		}
	}

	return cartRepo.DeleteByUser(ctx, order.UserID)
}

// dispatch starts shipment creation after commit. Failures are logged and
// left on the order for a later retry; the committed order is returned
// either way.
func (s *checkoutService) dispatch(ctx context.Context, logger *slog.Logger, order *entity.Order) *entity.Order {
	ctx = deliverycontext.Detach(ctx)

	if s.asyncShipment {
		err := s.publisher.PublishOrderCommitted(ctx, &service.OrderCommittedEvent{
			RequestID: deliverycontext.GetRequestIDFromContext(ctx),
			OrderID:   order.ID.String(),
			UserID:    order.UserID.String(),
		})
		if err != nil {
			logger.ErrorContext(ctx, "Failed to publish order committed event",
				slog.String("order_id", order.ID.String()),
				slog.Any("error", err),
			)
		}

		return order
	}

	shipped, err := s.fulfillment.ShipOrder(ctx, order.ID)
	if err != nil {
		logger.ErrorContext(ctx, "Order committed but shipment creation failed",
			slog.String("order_id", order.ID.String()),
			slog.Any("error", err),
		)
	}
	if shipped != nil {
		return shipped
	}

	return order
}

func (s *checkoutService) GetOrder(ctx context.Context, actor usecase.Actor, orderID uuid.UUID) (*entity.Order, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			return nil, domainerrors.ErrOrderNotFound
		}

		return nil, errors.Wrap(err, "failed to find order")
	}
	if !actor.CanAccess(order.UserID) {
		return nil, domainerrors.ErrOrderNotFound
	}

	return order, nil
}

func (s *checkoutService) ListOrders(ctx context.Context, actor usecase.Actor, limit, offset int) ([]*entity.Order, error) {
	if limit <= 0 || limit > maxOrderPageSize {
		limit = maxOrderPageSize
	}
	offset = max(0, offset)

	orders, err := s.orderRepo.ListByUser(ctx, actor.UserID, limit, offset)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list orders")
	}

	return orders, nil
}

func (s *checkoutService) TrackingQR(ctx context.Context, actor usecase.Actor, orderID uuid.UUID) ([]byte, error) {
	order, err := s.GetOrder(ctx, actor, orderID)
	if err != nil {
		return nil, err
	}
	if order.TrackingNumber == nil {
		return nil, domainerrors.ErrOrderNotFound.WithDetails("order has no tracking number yet")
	}

	return s.qrcode.GenerateTrackingQR(*order.TrackingNumber)
}

func (s *checkoutService) paymentMethodAllowed(method string) bool {
	if method == "" {
		return false
	}
	if len(s.paymentMethods) == 0 {
		return true
	}

	return slices.Contains(s.paymentMethods, method)
}

func newOrder(in *usecase.PlaceOrderInput, items []entity.LineItem, destination entity.Address, quote *entity.ShippingQuote) *entity.Order {
	lines := make([]entity.OrderLine, 0, len(items))
	for _, item := range items {
		lines = append(lines, entity.OrderLine{
			ProductID:           item.ProductID,
			Name:                item.Name,
			Quantity:            item.Quantity,
			UnitPriceAtPurchase: item.UnitPrice,
		})
	}

	order := &entity.Order{
		ID:              uuid.New(),
		UserID:          in.UserID,
		Status:          entity.OrderStatusProcessing,
		TotalAmount:     entity.Subtotal(items),
		ShippingCost:    quote.PriceInclVat,
		Currency:        quote.Currency,
		Lines:           lines,
		ShippingAddress: destination,
		Contact:         in.Contact,
		CarrierID:       quote.CarrierID,
		ServiceLevelID:  quote.ServiceLevelID,
		PaymentMethod:   in.PaymentMethod,
		ShipmentStatus:  entity.ShipmentStatusNone,
	}
	if in.IdempotencyKey != "" {
		key := in.IdempotencyKey
		order.IdempotencyKey = &key
	}

	return order
}

// sameLines compares product, quantity and price snapshot.
func sameLines(a, b []entity.LineItem) bool {
	if len(a) != len(b) {
		return false
	}

	byID := make(map[uuid.UUID]entity.LineItem, len(a))
	for _, line := range a {
		byID[line.ProductID] = line
	}
	for _, line := range b {
		other, ok := byID[line.ProductID]
		if !ok || other.Quantity != line.Quantity || !other.UnitPrice.Equal(line.UnitPrice) {
			return false
		}
	}

	return true
}

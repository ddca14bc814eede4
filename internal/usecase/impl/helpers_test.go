package impl

import (
	"context"
	"io"
	"log/slog"
	"maps"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"storefront/config"
	"storefront/internal/domain/entity"
	"storefront/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Warehouse = config.WarehouseConfig{
		Name:       "Dispatch",
		Company:    "Storefront GmbH",
		Street:     "Alexanderplatz 1",
		Locality:   "Berlin",
		PostalCode: "10178",
		Country:    "DE",
		Lat:        52.5200,
		Lng:        13.4050,
	}
	cfg.Carrier.Currency = "EUR"
	cfg.Checkout.PaymentMethods = []string{"card", "invoice"}

	return cfg
}

// memoryStore backs the product, cart and order repositories in tests.
// Transactions are serialized and roll back to a snapshot on error.
type memoryStore struct {
	txMu sync.Mutex

	mu       sync.Mutex
	products map[uuid.UUID]entity.Product
	carts    map[uuid.UUID][]memoryCartRow
	orders   map[uuid.UUID]entity.Order
	seq      int

	cartLocks atomic.Int64
}

type memoryCartRow struct {
	productID uuid.UUID
	quantity  int
	price     decimal.Decimal
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		products: make(map[uuid.UUID]entity.Product),
		carts:    make(map[uuid.UUID][]memoryCartRow),
		orders:   make(map[uuid.UUID]entity.Order),
	}
}

func (s *memoryStore) addProduct(name string, price string, stock int) entity.Product {
	s.mu.Lock()
	defer s.mu.Unlock()

	product := entity.Product{
		ID:    uuid.New(),
		Name:  name,
		Price: decimal.RequireFromString(price),
		Stock: stock,
	}
	s.products[product.ID] = product

	return product
}

func (s *memoryStore) setPrice(id uuid.UUID, price string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	product := s.products[id]
	product.Price = decimal.RequireFromString(price)
	s.products[id] = product
}

func (s *memoryStore) stock(id uuid.UUID) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.products[id].Stock
}

func (s *memoryStore) putCartLine(userID, productID uuid.UUID, quantity int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.carts[userID] = append(s.carts[userID], memoryCartRow{
		productID: productID,
		quantity:  quantity,
		price:     s.products[productID].Price,
	})
}

func (s *memoryStore) putOrder(order entity.Order) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.seq++
	order.CreatedAt = time.Unix(int64(s.seq), 0)
	s.orders[order.ID] = order
}

func (s *memoryStore) orderCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.orders)
}

type memorySnapshot struct {
	products map[uuid.UUID]entity.Product
	carts    map[uuid.UUID][]memoryCartRow
	orders   map[uuid.UUID]entity.Order
}

func (s *memoryStore) snapshot() memorySnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	carts := make(map[uuid.UUID][]memoryCartRow, len(s.carts))
	for userID, rows := range s.carts {
		carts[userID] = slices.Clone(rows)
	}

	return memorySnapshot{
		products: maps.Clone(s.products),
		carts:    carts,
		orders:   maps.Clone(s.orders),
	}
}

func (s *memoryStore) restore(snap memorySnapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.products = snap.products
	s.carts = snap.carts
	s.orders = snap.orders
}

func (s *memoryStore) factory() repository.RepositoryFactory {
	return &memoryRepoFactory{store: s}
}

type memoryTxManager struct {
	store *memoryStore
}

func (tm *memoryTxManager) Execute(ctx context.Context, fn func(txRepoFactory repository.RepositoryFactory) error) error {
	tm.store.txMu.Lock()
	defer tm.store.txMu.Unlock()

	snap := tm.store.snapshot()
	if err := fn(tm.store.factory()); err != nil {
		tm.store.restore(snap)

		return err
	}

	return nil
}

type memoryRepoFactory struct {
	store *memoryStore
}

func (f *memoryRepoFactory) ProductRepo() repository.ProductRepository {
	return &memoryProductRepo{store: f.store}
}

func (f *memoryRepoFactory) CartRepo() repository.CartRepository {
	return &memoryCartRepo{store: f.store}
}

func (f *memoryRepoFactory) OrderRepo() repository.OrderRepository {
	return &memoryOrderRepo{store: f.store}
}

type memoryProductRepo struct {
	store *memoryStore
}

func (r *memoryProductRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Product, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	product, ok := r.store.products[id]
	if !ok {
		return nil, repository.ErrProductNotFound
	}

	return &product, nil
}

func (r *memoryProductRepo) FindByIDs(_ context.Context, ids []uuid.UUID) (map[uuid.UUID]*entity.Product, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	found := make(map[uuid.UUID]*entity.Product, len(ids))
	for _, id := range ids {
		if product, ok := r.store.products[id]; ok {
			found[id] = &product
		}
	}

	return found, nil
}

func (r *memoryProductRepo) DecrementStock(_ context.Context, id uuid.UUID, quantity int) (bool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	product, ok := r.store.products[id]
	if !ok || product.Stock < quantity {
		return false, nil
	}
	product.Stock -= quantity
	r.store.products[id] = product

	return true, nil
}

type memoryCartRepo struct {
	store *memoryStore
}

func (r *memoryCartRepo) ListByUser(_ context.Context, userID uuid.UUID) ([]entity.LineItem, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	rows := r.store.carts[userID]
	items := make([]entity.LineItem, 0, len(rows))
	for _, row := range rows {
		product := r.store.products[row.productID]
		items = append(items, entity.LineItem{
			ProductID:      row.productID,
			Name:           product.Name,
			UnitPrice:      row.price,
			Quantity:       row.quantity,
			ImageRef:       product.ImageRef,
			AvailableStock: product.Stock,
			Dimensions:     product.Dimensions,
		})
	}

	return items, nil
}

func (r *memoryCartRepo) AcquireCartMutex(_ context.Context, _ uuid.UUID) error {
	r.store.cartLocks.Add(1)

	return nil
}

func (r *memoryCartRepo) AddQuantity(_ context.Context, userID, productID uuid.UUID, quantity int, unitPrice decimal.Decimal) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	rows := r.store.carts[userID]
	if idx := r.index(rows, productID); idx >= 0 {
		rows[idx].quantity += quantity

		return nil
	}
	r.store.carts[userID] = append(rows, memoryCartRow{productID: productID, quantity: quantity, price: unitPrice})

	return nil
}

func (r *memoryCartRepo) SetQuantity(_ context.Context, userID, productID uuid.UUID, quantity int) (bool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	rows := r.store.carts[userID]
	idx := r.index(rows, productID)
	if idx < 0 {
		return false, nil
	}
	rows[idx].quantity = quantity

	return true, nil
}

func (r *memoryCartRepo) Delete(_ context.Context, userID, productID uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	rows := r.store.carts[userID]
	if idx := r.index(rows, productID); idx >= 0 {
		r.store.carts[userID] = slices.Delete(slices.Clone(rows), idx, idx+1)
	}

	return nil
}

func (r *memoryCartRepo) DeleteByUser(_ context.Context, userID uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	delete(r.store.carts, userID)

	return nil
}

func (r *memoryCartRepo) InsertAll(_ context.Context, userID uuid.UUID, items []entity.LineItem) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for _, item := range items {
		r.store.carts[userID] = append(r.store.carts[userID], memoryCartRow{
			productID: item.ProductID,
			quantity:  item.Quantity,
			price:     item.UnitPrice,
		})
	}

	return nil
}

func (r *memoryCartRepo) index(rows []memoryCartRow, productID uuid.UUID) int {
	return slices.IndexFunc(rows, func(row memoryCartRow) bool {
		return row.productID == productID
	})
}

type memoryOrderRepo struct {
	store *memoryStore
}

func (r *memoryOrderRepo) Create(_ context.Context, order *entity.Order) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if order.IdempotencyKey != nil {
		for _, existing := range r.store.orders {
			if existing.UserID == order.UserID && existing.IdempotencyKey != nil && *existing.IdempotencyKey == *order.IdempotencyKey {
				return repository.ErrDuplicateIdempotencyKey
			}
		}
	}

	r.store.seq++
	order.CreatedAt = time.Unix(int64(r.store.seq), 0)
	order.UpdatedAt = order.CreatedAt
	stored := *order
	stored.Lines = slices.Clone(order.Lines)
	r.store.orders[order.ID] = stored

	return nil
}

func (r *memoryOrderRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Order, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	order, ok := r.store.orders[id]
	if !ok {
		return nil, repository.ErrOrderNotFound
	}

	return &order, nil
}

func (r *memoryOrderRepo) FindByIdempotencyKey(_ context.Context, userID uuid.UUID, key string) (*entity.Order, error) {
	return r.findFirst(func(o entity.Order) bool {
		return o.UserID == userID && o.IdempotencyKey != nil && *o.IdempotencyKey == key
	})
}

func (r *memoryOrderRepo) FindByTrackingNumber(_ context.Context, trackingNumber string) (*entity.Order, error) {
	return r.findFirst(func(o entity.Order) bool {
		return o.TrackingNumber != nil && *o.TrackingNumber == trackingNumber
	})
}

func (r *memoryOrderRepo) findFirst(match func(entity.Order) bool) (*entity.Order, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for _, order := range r.store.orders {
		if match(order) {
			return &order, nil
		}
	}

	return nil, repository.ErrOrderNotFound
}

func (r *memoryOrderRepo) ListByUser(_ context.Context, userID uuid.UUID, limit, offset int) ([]*entity.Order, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	var orders []*entity.Order
	for _, order := range r.store.orders {
		if order.UserID == userID {
			orders = append(orders, &order)
		}
	}
	slices.SortFunc(orders, func(a, b *entity.Order) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})

	if offset >= len(orders) {
		return []*entity.Order{}, nil
	}
	orders = orders[offset:]
	if limit < len(orders) {
		orders = orders[:limit]
	}

	return orders, nil
}

func (r *memoryOrderRepo) update(id uuid.UUID, fn func(o *entity.Order) bool) bool {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	order, ok := r.store.orders[id]
	if !ok || !fn(&order) {
		return false
	}
	order.UpdatedAt = time.Now()
	r.store.orders[id] = order

	return true
}

func (r *memoryOrderRepo) ClaimShipment(_ context.Context, id uuid.UUID, from []entity.ShipmentStatus) (bool, error) {
	return r.update(id, func(o *entity.Order) bool {
		if !slices.Contains(from, o.ShipmentStatus) {
			return false
		}
		now := time.Now()
		o.ShipmentStatus = entity.ShipmentStatusPending
		o.ShipmentError = ""
		o.ShipmentAttemptedAt = &now

		return true
	}), nil
}

func (r *memoryOrderRepo) ReclaimStalledShipment(_ context.Context, id uuid.UUID, attemptedBefore time.Time) (bool, error) {
	return r.update(id, func(o *entity.Order) bool {
		if o.ShipmentStatus != entity.ShipmentStatusPending ||
			o.ShipmentAttemptedAt == nil || !o.ShipmentAttemptedAt.Before(attemptedBefore) {
			return false
		}
		now := time.Now()
		o.ShipmentAttemptedAt = &now

		return true
	}), nil
}

func (r *memoryOrderRepo) MarkShipmentCreated(_ context.Context, id uuid.UUID, record *entity.ShipmentRecord) error {
	ok := r.update(id, func(o *entity.Order) bool {
		if o.ShipmentStatus != entity.ShipmentStatusPending {
			return false
		}
		tracking := record.TrackingNumber
		o.ShipmentStatus = entity.ShipmentStatusCreated
		o.TrackingNumber = &tracking
		o.LabelURL = record.LabelURL
		o.EstimatedDeliveryDate = record.EstimatedDeliveryDate

		return true
	})
	if !ok {
		return repository.ErrOrderNotFound
	}

	return nil
}

func (r *memoryOrderRepo) MarkShipmentFailed(_ context.Context, id uuid.UUID, reason string, _ time.Time) error {
	r.update(id, func(o *entity.Order) bool {
		if o.ShipmentStatus != entity.ShipmentStatusPending {
			return false
		}
		o.ShipmentStatus = entity.ShipmentStatusFailed
		o.ShipmentError = reason

		return true
	})

	return nil
}

func (r *memoryOrderRepo) AdvanceStatus(_ context.Context, trackingNumber string, from []entity.OrderStatus, to entity.OrderStatus) (bool, error) {
	order, err := r.FindByTrackingNumber(context.Background(), trackingNumber)
	if err != nil {
		return false, nil
	}

	return r.update(order.ID, func(o *entity.Order) bool {
		if !slices.Contains(from, o.Status) {
			return false
		}
		o.Status = to

		return true
	}), nil
}

func (r *memoryOrderRepo) UpdateDeliveryEstimate(_ context.Context, trackingNumber string, eta time.Time) error {
	order, err := r.FindByTrackingNumber(context.Background(), trackingNumber)
	if err != nil {
		return nil
	}

	r.update(order.ID, func(o *entity.Order) bool {
		if o.Status.IsTerminal() {
			return false
		}
		o.EstimatedDeliveryDate = &eta

		return true
	})

	return nil
}

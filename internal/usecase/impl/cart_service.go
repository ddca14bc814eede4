package impl

import (
	"context"
	"log/slog"

	"storefront/internal/domain/cart"
	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/errors"
	"storefront/internal/usecase"

	"github.com/google/uuid"
	"go.uber.org/fx"
)

type cartService struct {
	logger      *slog.Logger
	txManager   repository.TransactionManager
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
}

// CartServiceParams holds dependencies for CartService, injected by Fx.
type CartServiceParams struct {
	fx.In

	Logger      *slog.Logger
	TxManager   repository.TransactionManager
	CartRepo    repository.CartRepository
	ProductRepo repository.ProductRepository
}

// NewCartService creates a new cart service instance
func NewCartService(params CartServiceParams) usecase.CartUsecase {
	return &cartService{
		logger:      params.Logger,
		txManager:   params.TxManager,
		cartRepo:    params.CartRepo,
		productRepo: params.ProductRepo,
	}
}

func (s *cartService) GetCart(ctx context.Context, userID uuid.UUID) (*usecase.CartView, error) {
	items, err := s.cartRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list cart")
	}

	return newCartView(items), nil
}

func (s *cartService) AddItem(ctx context.Context, userID, productID uuid.UUID, quantity int) (*entity.LineItem, error) {
	if quantity <= 0 {
		return nil, domainerrors.ErrInvalidQuantity
	}

	var line *entity.LineItem
	err := s.txManager.Execute(ctx, func(repos repository.RepositoryFactory) error {
		product, err := findProduct(ctx, repos.ProductRepo(), productID)
		if err != nil {
			return err
		}

		cartRepo := repos.CartRepo()
		if err := cartRepo.AcquireCartMutex(ctx, userID); err != nil {
			return errors.Wrap(err, "failed to lock cart")
		}
		if err := cartRepo.AddQuantity(ctx, userID, productID, quantity, product.Price); err != nil {
			return err
		}

		line, err = findLine(ctx, cartRepo, userID, productID)

		return err
	})
	if err != nil {
		return nil, err
	}

	return line, nil
}

func (s *cartService) UpdateQuantity(ctx context.Context, userID, productID uuid.UUID, quantity int) (*entity.LineItem, error) {
	if quantity <= 0 {
		return nil, s.RemoveItem(ctx, userID, productID)
	}

	var line *entity.LineItem
	err := s.txManager.Execute(ctx, func(repos repository.RepositoryFactory) error {
		cartRepo := repos.CartRepo()
		if err := cartRepo.AcquireCartMutex(ctx, userID); err != nil {
			return errors.Wrap(err, "failed to lock cart")
		}

		found, err := cartRepo.SetQuantity(ctx, userID, productID, quantity)
		if err != nil {
			return err
		}
		if !found {
			return domainerrors.ErrProductNotFound.WithDetails("product is not in the cart")
		}

		line, err = findLine(ctx, cartRepo, userID, productID)

		return err
	})
	if err != nil {
		return nil, err
	}

	return line, nil
}

func (s *cartService) RemoveItem(ctx context.Context, userID, productID uuid.UUID) error {
	return s.cartRepo.Delete(ctx, userID, productID)
}

func (s *cartService) ClearCart(ctx context.Context, userID uuid.UUID) error {
	return s.cartRepo.DeleteByUser(ctx, userID)
}

// SyncCart prices anonymous-only lines from the catalog, merges with the
// anonymous quantity winning on overlap and stores the result replace-all.
func (s *cartService) SyncCart(ctx context.Context, userID uuid.UUID, items []usecase.CartItemInput) (*usecase.CartView, error) {
	for _, item := range items {
		if item.Quantity <= 0 {
			return nil, domainerrors.ErrInvalidQuantity.WithDetails(item.ProductID.String())
		}
	}

	var merged []entity.LineItem
	err := s.txManager.Execute(ctx, func(repos repository.RepositoryFactory) error {
		cartRepo := repos.CartRepo()
		if err := cartRepo.AcquireCartMutex(ctx, userID); err != nil {
			return errors.Wrap(err, "failed to lock cart")
		}

		existing, err := cartRepo.ListByUser(ctx, userID)
		if err != nil {
			return errors.Wrap(err, "failed to list cart")
		}

		incoming, err := priceItems(ctx, repos.ProductRepo(), items)
		if err != nil {
			return err
		}

		next := cart.Merge(existing, incoming)
		if err := cartRepo.DeleteByUser(ctx, userID); err != nil {
			return err
		}
		if err := cartRepo.InsertAll(ctx, userID, next); err != nil {
			return err
		}

		merged, err = cartRepo.ListByUser(ctx, userID)

		return errors.Wrap(err, "failed to reload cart")
	})
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "Cart synced",
		slog.String("user_id", userID.String()),
		slog.Int("incoming_lines", len(items)),
		slog.Int("merged_lines", len(merged)),
	)

	return newCartView(merged), nil
}

func (s *cartService) GetProduct(ctx context.Context, productID uuid.UUID) (*entity.Product, error) {
	return findProduct(ctx, s.productRepo, productID)
}

func newCartView(items []entity.LineItem) *usecase.CartView {
	if items == nil {
		items = []entity.LineItem{}
	}

	return &usecase.CartView{
		Items:    items,
		Subtotal: entity.Subtotal(items),
	}
}

func findProduct(ctx context.Context, repo repository.ProductRepository, productID uuid.UUID) (*entity.Product, error) {
	product, err := repo.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, domainerrors.ErrProductNotFound.WithDetails(productID.String())
		}

		return nil, errors.Wrap(err, "failed to find product")
	}

	return product, nil
}

func findLine(ctx context.Context, repo repository.CartRepository, userID, productID uuid.UUID) (*entity.LineItem, error) {
	items, err := repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list cart")
	}
	for i := range items {
		if items[i].ProductID == productID {
			return &items[i], nil
		}
	}

	return nil, domainerrors.ErrProductNotFound.WithDetails("product is not in the cart")
}

// priceItems turns client input into line items priced from the catalog.
// Duplicate product ids keep the first occurrence.
func priceItems(ctx context.Context, repo repository.ProductRepository, items []usecase.CartItemInput) ([]entity.LineItem, error) {
	ids := make([]uuid.UUID, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.ProductID)
	}

	products, err := repo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load products")
	}

	lines := make([]entity.LineItem, 0, len(items))
	for _, item := range items {
		product, ok := products[item.ProductID]
		if !ok {
			return nil, domainerrors.ErrProductNotFound.WithDetails(item.ProductID.String())
		}
		lines = append(lines, entity.NewLineItem(product, item.Quantity))
	}

	return lines, nil
}

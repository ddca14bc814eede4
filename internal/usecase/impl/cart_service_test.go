package impl

import (
	"context"
	"testing"

	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/errors"
	"storefront/internal/usecase"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCartTestService() (usecase.CartUsecase, *memoryStore) {
	store := newMemoryStore()
	repos := store.factory()

	return NewCartService(CartServiceParams{
		Logger:      newDiscardLogger(),
		TxManager:   &memoryTxManager{store: store},
		CartRepo:    repos.CartRepo(),
		ProductRepo: repos.ProductRepo(),
	}), store
}

func TestCartService_AddItem_SnapshotsCatalogPrice(t *testing.T) {
	svc, store := newCartTestService()
	ctx := context.Background()
	userID := uuid.New()
	mug := store.addProduct("Mug", "12.50", 10)

	line, err := svc.AddItem(ctx, userID, mug.ID, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, line.Quantity)
	assert.True(t, decimal.RequireFromString("12.50").Equal(line.UnitPrice))

	store.setPrice(mug.ID, "20.00")

	line, err = svc.AddItem(ctx, userID, mug.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, 3, line.Quantity)
	assert.True(t, decimal.RequireFromString("12.50").Equal(line.UnitPrice))

	view, err := svc.GetCart(ctx, userID)
	require.NoError(t, err)
	require.Len(t, view.Items, 1)
	assert.True(t, decimal.RequireFromString("37.50").Equal(view.Subtotal))
	assert.Equal(t, int64(2), store.cartLocks.Load())
}

func TestCartService_AddItem_Errors(t *testing.T) {
	svc, store := newCartTestService()
	mug := store.addProduct("Mug", "12.50", 10)

	tests := []struct {
		name      string
		productID uuid.UUID
		quantity  int
		wantErr   error
	}{
		{name: "zero quantity", productID: mug.ID, quantity: 0, wantErr: domainerrors.ErrInvalidQuantity},
		{name: "negative quantity", productID: mug.ID, quantity: -2, wantErr: domainerrors.ErrInvalidQuantity},
		{name: "unknown product", productID: uuid.New(), quantity: 1, wantErr: domainerrors.ErrProductNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			line, err := svc.AddItem(context.Background(), uuid.New(), tt.productID, tt.quantity)
			require.Error(t, err)
			assert.Nil(t, line)
			assert.True(t, errors.Is(err, tt.wantErr))
		})
	}
}

func TestCartService_UpdateQuantity(t *testing.T) {
	svc, store := newCartTestService()
	ctx := context.Background()
	userID := uuid.New()
	mug := store.addProduct("Mug", "12.50", 10)
	lamp := store.addProduct("Lamp", "80.00", 3)
	store.putCartLine(userID, mug.ID, 1)
	kettle := store.addProduct("Kettle", "35.00", 5)
	store.putCartLine(userID, lamp.ID, 1)
	store.putCartLine(userID, kettle.ID, 2)

	line, err := svc.UpdateQuantity(ctx, userID, mug.ID, 4)
	require.NoError(t, err)
	assert.Equal(t, 4, line.Quantity)

	line, err = svc.UpdateQuantity(ctx, userID, lamp.ID, 0)
	require.NoError(t, err)
	assert.Nil(t, line)

	line, err = svc.UpdateQuantity(ctx, userID, kettle.ID, -3)
	require.NoError(t, err)
	assert.Nil(t, line)

	_, err = svc.UpdateQuantity(ctx, userID, uuid.New(), 2)
	assert.True(t, errors.Is(err, domainerrors.ErrProductNotFound))

	view, err := svc.GetCart(ctx, userID)
	require.NoError(t, err)
	require.Len(t, view.Items, 1)
	assert.Equal(t, mug.ID, view.Items[0].ProductID)
}

func TestCartService_RemoveAndClear(t *testing.T) {
	svc, store := newCartTestService()
	ctx := context.Background()
	userID := uuid.New()
	mug := store.addProduct("Mug", "12.50", 10)
	lamp := store.addProduct("Lamp", "80.00", 3)
	store.putCartLine(userID, mug.ID, 1)
	store.putCartLine(userID, lamp.ID, 1)

	require.NoError(t, svc.RemoveItem(ctx, userID, mug.ID))
	require.NoError(t, svc.RemoveItem(ctx, userID, uuid.New()))

	view, err := svc.GetCart(ctx, userID)
	require.NoError(t, err)
	require.Len(t, view.Items, 1)

	require.NoError(t, svc.ClearCart(ctx, userID))
	view, err = svc.GetCart(ctx, userID)
	require.NoError(t, err)
	assert.Empty(t, view.Items)
	assert.True(t, view.Subtotal.IsZero())
}

func TestCartService_SyncCart_AnonymousQuantityWins(t *testing.T) {
	svc, store := newCartTestService()
	ctx := context.Background()
	userID := uuid.New()
	a := store.addProduct("A", "10.00", 10)
	b := store.addProduct("B", "20.00", 10)
	c := store.addProduct("C", "30.00", 10)
	store.putCartLine(userID, a.ID, 2)
	store.putCartLine(userID, b.ID, 1)
	store.setPrice(a.ID, "11.00")

	view, err := svc.SyncCart(ctx, userID, []usecase.CartItemInput{
		{ProductID: a.ID, Quantity: 5},
		{ProductID: c.ID, Quantity: 3},
	})
	require.NoError(t, err)
	require.Len(t, view.Items, 3)

	got := make(map[uuid.UUID]int, len(view.Items))
	for _, item := range view.Items {
		got[item.ProductID] = item.Quantity
	}
	assert.Equal(t, map[uuid.UUID]int{a.ID: 5, b.ID: 1, c.ID: 3}, got)

	assert.Equal(t, a.ID, view.Items[0].ProductID)
	assert.True(t, decimal.RequireFromString("10.00").Equal(view.Items[0].UnitPrice))
	assert.True(t, decimal.RequireFromString("160").Equal(view.Subtotal))

	again, err := svc.SyncCart(ctx, userID, nil)
	require.NoError(t, err)
	assert.Equal(t, view.Items, again.Items)
}

func TestCartService_SyncCart_UnknownProductLeavesCart(t *testing.T) {
	svc, store := newCartTestService()
	ctx := context.Background()
	userID := uuid.New()
	a := store.addProduct("A", "10.00", 10)
	store.putCartLine(userID, a.ID, 2)

	_, err := svc.SyncCart(ctx, userID, []usecase.CartItemInput{{ProductID: uuid.New(), Quantity: 1}})
	assert.True(t, errors.Is(err, domainerrors.ErrProductNotFound))

	_, err = svc.SyncCart(ctx, userID, []usecase.CartItemInput{{ProductID: a.ID, Quantity: 0}})
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidQuantity))

	view, err := svc.GetCart(ctx, userID)
	require.NoError(t, err)
	require.Len(t, view.Items, 1)
	assert.Equal(t, 2, view.Items[0].Quantity)
}

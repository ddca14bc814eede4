package cart

import (
	"testing"

	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func line(id uuid.UUID, qty int, price int64) entity.LineItem {
	return entity.LineItem{ProductID: id, Quantity: qty, UnitPrice: decimal.NewFromInt(price)}
}

func quantities(items []entity.LineItem) map[uuid.UUID]int {
	out := make(map[uuid.UUID]int, len(items))
	for _, item := range items {
		out[item.ProductID] = item.Quantity
	}

	return out
}

func TestCart_Apply(t *testing.T) {
	a, b := uuid.New(), uuid.New()
	base, err := New(Owner{SessionID: "s1"}).Apply(Add{Item: line(a, 2, 10)})
	require.NoError(t, err)

	t.Run("add existing increments and keeps snapshot price", func(t *testing.T) {
		next, err := base.Apply(Add{Item: line(a, 3, 99)})
		require.NoError(t, err)
		got, ok := next.Find(a)
		require.True(t, ok)
		assert.Equal(t, 5, got.Quantity)
		assert.True(t, decimal.NewFromInt(10).Equal(got.UnitPrice))
	})

	t.Run("add rejects non-positive quantity", func(t *testing.T) {
		_, err := base.Apply(Add{Item: line(b, 0, 10)})
		require.ErrorIs(t, err, domainerrors.ErrInvalidQuantity)
	})

	t.Run("remove absent is a no-op", func(t *testing.T) {
		next, err := base.Apply(Remove{ProductID: b})
		require.NoError(t, err)
		assert.Equal(t, base.Items(), next.Items())
	})

	t.Run("adjust to zero or below removes", func(t *testing.T) {
		next, err := base.Apply(AdjustQuantity{ProductID: a, Quantity: -4})
		require.NoError(t, err)
		assert.True(t, next.IsEmpty())
	})

	t.Run("adjust sets quantity", func(t *testing.T) {
		next, err := base.Apply(AdjustQuantity{ProductID: a, Quantity: 7})
		require.NoError(t, err)
		got, _ := next.Find(a)
		assert.Equal(t, 7, got.Quantity)
	})

	t.Run("clear empties", func(t *testing.T) {
		next, err := base.Apply(Clear{})
		require.NoError(t, err)
		assert.True(t, next.IsEmpty())
	})

	t.Run("load merged drops duplicate keys", func(t *testing.T) {
		next, err := base.Apply(LoadMerged{Items: []entity.LineItem{line(b, 1, 5), line(b, 9, 5)}})
		require.NoError(t, err)
		assert.Equal(t, map[uuid.UUID]int{b: 1}, quantities(next.Items()))
	})

	t.Run("apply leaves receiver unchanged", func(t *testing.T) {
		_, err := base.Apply(Clear{})
		require.NoError(t, err)
		assert.Len(t, base.Items(), 1)
	})
}

func TestCart_ItemsKeepInsertionOrder(t *testing.T) {
	ids := []uuid.UUID{uuid.New(), uuid.New(), uuid.New()}
	c := New(Owner{SessionID: "s"})
	for _, id := range ids {
		var err error
		c, err = c.Apply(Add{Item: line(id, 1, 1)})
		require.NoError(t, err)
	}

	items := c.Items()
	for i, id := range ids {
		assert.Equal(t, id, items[i].ProductID)
	}
}

func TestMerge_AnonymousQuantityWins(t *testing.T) {
	a, b, c := uuid.New(), uuid.New(), uuid.New()
	authenticated := []entity.LineItem{line(a, 2, 100), line(b, 1, 50)}
	anonymous := []entity.LineItem{line(a, 5, 80), line(c, 3, 20)}

	merged := Merge(authenticated, anonymous)

	assert.Equal(t, map[uuid.UUID]int{a: 5, b: 1, c: 3}, quantities(merged))
	require.Len(t, merged, 3)
	assert.Equal(t, []uuid.UUID{a, b, c}, []uuid.UUID{merged[0].ProductID, merged[1].ProductID, merged[2].ProductID})
	assert.True(t, decimal.NewFromInt(100).Equal(merged[0].UnitPrice), "authenticated price snapshot is kept")
}

func TestMerge_Idempotent(t *testing.T) {
	a, b, c := uuid.New(), uuid.New(), uuid.New()
	authenticated := []entity.LineItem{line(a, 2, 1), line(b, 1, 1)}
	anonymous := []entity.LineItem{line(a, 5, 1), line(c, 3, 1)}

	once := Merge(authenticated, anonymous)
	twice := Merge(once, anonymous)

	assert.Equal(t, once, twice)
}

func TestMerge_EmptySides(t *testing.T) {
	a := uuid.New()
	items := []entity.LineItem{line(a, 2, 1)}

	assert.Equal(t, items, Merge(items, nil))
	assert.Equal(t, items, Merge(nil, items))
	assert.Empty(t, Merge(nil, nil))
}

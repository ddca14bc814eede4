package storefront

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"storefront/internal/domain/cart"
	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeAPI serves the cart endpoints for a single user from memory.
type fakeAPI struct {
	mu       sync.Mutex
	token    string
	products map[uuid.UUID]productDTO
	lines    []lineItemDTO
	syncs    int
}

func newFakeAPI(token string, products ...productDTO) *fakeAPI {
	api := &fakeAPI{token: token, products: map[uuid.UUID]productDTO{}}
	for _, p := range products {
		api.products[p.ID] = p
	}

	return api
}

func (f *fakeAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if strings.HasPrefix(r.URL.Path, "/products/") {
		id := uuid.MustParse(strings.TrimPrefix(r.URL.Path, "/products/"))
		product, ok := f.products[id]
		if !ok {
			writeError(w, http.StatusNotFound, "PRODUCT_NOT_FOUND")

			return
		}
		writeData(w, product)

		return
	}

	if r.Header.Get("Authorization") != "Bearer "+f.token {
		writeError(w, http.StatusUnauthorized, "UNAUTHORIZED")

		return
	}

	switch {
	case r.Method == http.MethodGet && r.URL.Path == "/cart":
		writeData(w, cartDTO{Items: f.lines})
	case r.Method == http.MethodPost && r.URL.Path == "/cart/add":
		var in syncItemDTO
		_ = json.NewDecoder(r.Body).Decode(&in)
		f.add(in)
		writeData(w, nil)
	case r.Method == http.MethodPost && r.URL.Path == "/cart/sync":
		var in struct {
			Items []syncItemDTO `json:"items"`
		}
		_ = json.NewDecoder(r.Body).Decode(&in)
		f.syncs++
		for _, item := range in.Items {
			f.set(item)
		}
		writeData(w, cartDTO{Items: f.lines})
	case r.Method == http.MethodPut && strings.HasPrefix(r.URL.Path, "/cart/"):
		var in struct {
			Quantity int `json:"quantity"`
		}
		_ = json.NewDecoder(r.Body).Decode(&in)
		id := uuid.MustParse(strings.TrimPrefix(r.URL.Path, "/cart/"))
		f.set(syncItemDTO{ProductID: id, Quantity: in.Quantity})
		writeData(w, nil)
	case r.Method == http.MethodDelete && r.URL.Path == "/cart":
		f.lines = nil
		writeData(w, nil)
	case r.Method == http.MethodDelete && strings.HasPrefix(r.URL.Path, "/cart/"):
		id := uuid.MustParse(strings.TrimPrefix(r.URL.Path, "/cart/"))
		for i, line := range f.lines {
			if line.ProductID == id {
				f.lines = append(f.lines[:i], f.lines[i+1:]...)

				break
			}
		}
		writeData(w, nil)
	default:
		writeError(w, http.StatusNotFound, "NOT_FOUND")
	}
}

func (f *fakeAPI) add(in syncItemDTO) {
	for i := range f.lines {
		if f.lines[i].ProductID == in.ProductID {
			f.lines[i].Quantity += in.Quantity

			return
		}
	}
	f.appendLine(in)
}

func (f *fakeAPI) set(in syncItemDTO) {
	for i := range f.lines {
		if f.lines[i].ProductID == in.ProductID {
			f.lines[i].Quantity = in.Quantity

			return
		}
	}
	f.appendLine(in)
}

func (f *fakeAPI) appendLine(in syncItemDTO) {
	product := f.products[in.ProductID]
	f.lines = append(f.lines, lineItemDTO{
		ProductID:      in.ProductID,
		Name:           product.Name,
		UnitPrice:      product.Price,
		Quantity:       in.Quantity,
		AvailableStock: product.Stock,
	})
}

func writeData(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{"data": data, "meta": map[string]string{"request_id": "test"}})
}

func writeError(w http.ResponseWriter, status int, code string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{"error": map[string]string{"code": code, "message": code}})
}

func quantities(items []entity.LineItem) map[uuid.UUID]int {
	out := make(map[uuid.UUID]int, len(items))
	for _, item := range items {
		out[item.ProductID] = item.Quantity
	}

	return out
}

func TestClient_ProductNotFoundMapsToDomainError(t *testing.T) {
	server := httptest.NewServer(newFakeAPI("token"))
	defer server.Close()

	client := NewClient(server.URL, "", server.Client())

	_, err := client.Product(context.Background(), uuid.New())
	assert.ErrorIs(t, err, domainerrors.ErrProductNotFound)
}

func TestClient_UnauthorizedCartAccess(t *testing.T) {
	server := httptest.NewServer(newFakeAPI("token"))
	defer server.Close()

	client := NewClient(server.URL, "wrong", server.Client())

	_, err := client.Fetch(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "UNAUTHORIZED")
}

func TestClient_SignInReconcilesAnonymousCart(t *testing.T) {
	productA := productDTO{ID: uuid.New(), Name: "A", Price: decimal.NewFromInt(100), Stock: 10}
	productB := productDTO{ID: uuid.New(), Name: "B", Price: decimal.NewFromInt(50), Stock: 10}
	productC := productDTO{ID: uuid.New(), Name: "C", Price: decimal.NewFromInt(20), Stock: 10}

	api := newFakeAPI("token", productA, productB, productC)
	api.lines = []lineItemDTO{
		{ProductID: productA.ID, Name: "A", UnitPrice: productA.Price, Quantity: 2},
		{ProductID: productB.ID, Name: "B", UnitPrice: productB.Price, Quantity: 1},
	}
	server := httptest.NewServer(api)
	defer server.Close()

	ctx := context.Background()
	catalog := NewClient(server.URL, "", server.Client())

	anonymous := cart.NewAnonymousStore("session-1", catalog)
	require.NoError(t, anonymous.Add(ctx, productA.ID, 5))
	require.NoError(t, anonymous.Add(ctx, productC.ID, 3))

	backend := NewClient(server.URL, "token", server.Client())
	reconciler := cart.NewReconciler(backend, catalog)

	store, err := reconciler.Reconcile(ctx, anonymous, uuid.New())
	require.NoError(t, err)

	assert.Equal(t, map[uuid.UUID]int{productA.ID: 5, productB.ID: 1, productC.ID: 3}, quantities(store.List()))
	assert.Empty(t, anonymous.List())
	assert.Equal(t, 1, api.syncs)

	// A second sign-in with the now empty anonymous cart only fetches.
	again, err := reconciler.Reconcile(ctx, anonymous, uuid.New())
	require.NoError(t, err)
	assert.Equal(t, quantities(store.List()), quantities(again.List()))
	assert.Equal(t, 1, api.syncs)
}

func TestClient_AuthenticatedStoreMutations(t *testing.T) {
	product := productDTO{ID: uuid.New(), Name: "A", Price: decimal.NewFromInt(100), Stock: 10}
	api := newFakeAPI("token", product)
	server := httptest.NewServer(api)
	defer server.Close()

	ctx := context.Background()
	client := NewClient(server.URL, "token", server.Client())

	store, err := cart.NewAuthenticatedStore(ctx, uuid.New(), client, client)
	require.NoError(t, err)

	require.NoError(t, store.Add(ctx, product.ID, 2))
	require.NoError(t, store.Add(ctx, product.ID, 1))
	require.NoError(t, store.AdjustQuantity(ctx, product.ID, 7))

	persisted, err := client.Fetch(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[uuid.UUID]int{product.ID: 7}, quantities(persisted))
	assert.True(t, persisted[0].UnitPrice.Equal(decimal.NewFromInt(100)))

	require.NoError(t, store.AdjustQuantity(ctx, product.ID, -3))
	persisted, err = client.Fetch(ctx)
	require.NoError(t, err)
	assert.Empty(t, persisted)
	assert.Empty(t, store.List())
}

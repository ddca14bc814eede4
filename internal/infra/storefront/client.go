// Package storefront is a Go client of the storefront REST API. It backs the
// session-scoped cart.Store of a signed-in user.
package storefront

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"

	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Client calls the API on behalf of one user.
type Client struct {
	baseURL     string
	accessToken string
	httpClient  *http.Client
}

// NewClient returns a client authenticated with accessToken. An empty token
// is allowed for catalog reads.
func NewClient(baseURL, accessToken string, httpClient *http.Client) *Client {
	return &Client{
		baseURL:     strings.TrimRight(baseURL, "/"),
		accessToken: accessToken,
		httpClient:  httpClient,
	}
}

type lineItemDTO struct {
	ProductID      uuid.UUID       `json:"productId"`
	Name           string          `json:"name"`
	UnitPrice      decimal.Decimal `json:"unitPrice"`
	Quantity       int             `json:"quantity"`
	ImageRef       string          `json:"imageRef"`
	AvailableStock int             `json:"availableStock"`
}

type cartDTO struct {
	Items []lineItemDTO `json:"items"`
}

type productDTO struct {
	ID       uuid.UUID       `json:"id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	ImageRef string          `json:"imageRef"`
	Stock    int             `json:"stock"`
}

type syncItemDTO struct {
	ProductID uuid.UUID `json:"productId"`
	Quantity  int       `json:"quantity"`
}

type envelope struct {
	Data  json.RawMessage `json:"data"`
	Error *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
		Details any    `json:"details"`
	} `json:"error"`
}

func (c *Client) Fetch(ctx context.Context) ([]entity.LineItem, error) {
	var cart cartDTO
	if err := c.do(ctx, http.MethodGet, "/cart", nil, &cart); err != nil {
		return nil, err
	}

	return toLineItems(cart.Items), nil
}

func (c *Client) Add(ctx context.Context, productID uuid.UUID, quantity int) error {
	return c.do(ctx, http.MethodPost, "/cart/add", syncItemDTO{ProductID: productID, Quantity: quantity}, nil)
}

func (c *Client) SetQuantity(ctx context.Context, productID uuid.UUID, quantity int) error {
	body := map[string]int{"quantity": quantity}

	return c.do(ctx, http.MethodPut, "/cart/"+url.PathEscape(productID.String()), body, nil)
}

func (c *Client) Remove(ctx context.Context, productID uuid.UUID) error {
	return c.do(ctx, http.MethodDelete, "/cart/"+url.PathEscape(productID.String()), nil, nil)
}

func (c *Client) Clear(ctx context.Context) error {
	return c.do(ctx, http.MethodDelete, "/cart", nil, nil)
}

// Sync sends the product ids and quantities only. Prices of new lines are
// taken from the catalog by the server.
func (c *Client) Sync(ctx context.Context, items []entity.LineItem) ([]entity.LineItem, error) {
	payload := struct {
		Items []syncItemDTO `json:"items"`
	}{Items: make([]syncItemDTO, 0, len(items))}
	for _, item := range items {
		payload.Items = append(payload.Items, syncItemDTO{ProductID: item.ProductID, Quantity: item.Quantity})
	}

	var cart cartDTO
	if err := c.do(ctx, http.MethodPost, "/cart/sync", payload, &cart); err != nil {
		return nil, err
	}

	return toLineItems(cart.Items), nil
}

// Product implements cart.Catalog.
func (c *Client) Product(ctx context.Context, productID uuid.UUID) (*entity.Product, error) {
	var product productDTO
	if err := c.do(ctx, http.MethodGet, "/products/"+url.PathEscape(productID.String()), nil, &product); err != nil {
		return nil, err
	}

	return &entity.Product{
		ID:       product.ID,
		Name:     product.Name,
		Price:    product.Price,
		ImageRef: product.ImageRef,
		Stock:    product.Stock,
	}, nil
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return errors.Wrap(err, "failed to encode request")
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return errors.WithStack(err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.accessToken)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errors.Wrapf(err, "%s %s", method, path)
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil && !errors.Is(err, io.EOF) {
		return errors.Wrapf(err, "failed to decode %s %s response", method, path)
	}

	if resp.StatusCode >= 300 {
		if env.Error == nil {
			return errors.Errorf("%s %s returned status %d", method, path, resp.StatusCode)
		}

		return domainerrors.NewBaseError(resp.StatusCode, env.Error.Code, env.Error.Message, detailsString(env.Error.Details))
	}

	if out == nil || len(env.Data) == 0 {
		return nil
	}

	return errors.Wrap(json.Unmarshal(env.Data, out), "failed to decode response data")
}

func detailsString(details any) string {
	switch d := details.(type) {
	case nil:
		return ""
	case string:
		return d
	default:
		data, _ := json.Marshal(d)

		return string(data)
	}
}

func toLineItems(dtos []lineItemDTO) []entity.LineItem {
	items := make([]entity.LineItem, 0, len(dtos))
	for _, dto := range dtos {
		items = append(items, entity.LineItem{
			ProductID:      dto.ProductID,
			Name:           dto.Name,
			UnitPrice:      dto.UnitPrice,
			Quantity:       dto.Quantity,
			ImageRef:       dto.ImageRef,
			AvailableStock: dto.AvailableStock,
		})
	}

	return items
}

// Package backend implements the REST client for the ShopEasy API.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/ivankoranteng77/shopeasy-ecommerce/pkg/admin"
	"github.com/ivankoranteng77/shopeasy-ecommerce/pkg/domain/model"
)

// StatusError is a completed request the backend rejected. Message carries
// the backend's "detail" field when one was sent.
type StatusError struct {
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("backend returned %d: %s", e.Code, e.Message)
}

type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (c *Client) FetchProducts(ctx context.Context) ([]model.Product, error) {
	var dtos []productDTO
	if err := c.getJSON(ctx, "/products/", &dtos); err != nil {
		return nil, err
	}

	products := make([]model.Product, 0, len(dtos))
	for _, d := range dtos {
		products = append(products, d.toModel())
	}
	return products, nil
}

func (c *Client) FetchCategories(ctx context.Context) ([]model.Category, error) {
	var dtos []categoryDTO
	if err := c.getJSON(ctx, "/products/categories/", &dtos); err != nil {
		return nil, err
	}

	categories := make([]model.Category, 0, len(dtos))
	for _, d := range dtos {
		categories = append(categories, d.toModel())
	}
	return categories, nil
}

func (c *Client) SubmitOrder(ctx context.Context, draft model.OrderDraft) (int64, error) {
	var created orderDTO
	if err := c.postJSON(ctx, "/orders/", "", toOrderCreateDTO(draft), &created); err != nil {
		return 0, err
	}
	return created.ID, nil
}

func (c *Client) FetchAllOrders(ctx context.Context, token string) ([]model.Order, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/orders/admin/all", token, nil, "")
	if err != nil {
		return nil, err
	}

	var dtos []orderDTO
	if err := c.do(req, &dtos); err != nil {
		return nil, err
	}

	orders := make([]model.Order, 0, len(dtos))
	for _, d := range dtos {
		orders = append(orders, d.toModel())
	}
	return orders, nil
}

func (c *Client) Login(ctx context.Context, username, password string) (string, error) {
	form := url.Values{}
	form.Set("username", username)
	form.Set("password", password)

	req, err := c.newRequest(ctx, http.MethodPost, "/auth/admin/login", "",
		strings.NewReader(form.Encode()), "application/x-www-form-urlencoded")
	if err != nil {
		return "", err
	}

	var token tokenDTO
	if err := c.do(req, &token); err != nil {
		return "", err
	}
	return token.AccessToken, nil
}

func (c *Client) CreateProduct(ctx context.Context, token string, input admin.ProductInput, categoryIDs []int64) (model.Product, error) {
	var created productDTO
	if err := c.postJSON(ctx, "/products/", token, toProductCreateDTO(input, categoryIDs), &created); err != nil {
		return model.Product{}, err
	}
	return created.toModel(), nil
}

func (c *Client) CreateCategory(ctx context.Context, token string, category model.Category) (model.Category, error) {
	var created categoryDTO
	payload := categoryCreateDTO{Name: category.Name, Description: category.Description}
	if err := c.postJSON(ctx, "/products/categories/", token, payload, &created); err != nil {
		return model.Category{}, err
	}
	return created.toModel(), nil
}

func (c *Client) DeleteProduct(ctx context.Context, token string, productID int64) error {
	req, err := c.newRequest(ctx, http.MethodDelete, fmt.Sprintf("/products/%d", productID), token, nil, "")
	if err != nil {
		return err
	}
	return c.do(req, nil)
}

func (c *Client) getJSON(ctx context.Context, path string, out interface{}) error {
	req, err := c.newRequest(ctx, http.MethodGet, path, "", nil, "")
	if err != nil {
		return err
	}
	return c.do(req, out)
}

func (c *Client) postJSON(ctx context.Context, path, token string, payload, out interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return errors.Wrap(err, "encode request body")
	}

	req, err := c.newRequest(ctx, http.MethodPost, path, token, bytes.NewReader(body), "application/json")
	if err != nil {
		return err
	}
	return c.do(req, out)
}

func (c *Client) newRequest(ctx context.Context, method, path, token string, body io.Reader, contentType string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, errors.Wrap(err, "build request")
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req, nil
}

func (c *Client) do(req *http.Request, out interface{}) error {
	log.WithFields(log.Fields{"method": req.Method, "url": req.URL.String()}).Debug("calling backend")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errors.Wrap(err, "backend request failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return newStatusError(resp)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errors.Wrap(err, "decode backend response")
	}
	return nil
}

func newStatusError(resp *http.Response) *StatusError {
	message := http.StatusText(resp.StatusCode)

	// FastAPI-style error bodies carry a "detail" field.
	var body struct {
		Detail string `json:"detail"`
	}
	if data, err := io.ReadAll(io.LimitReader(resp.Body, 4096)); err == nil {
		if err := json.Unmarshal(data, &body); err == nil && body.Detail != "" {
			message = body.Detail
		}
	}

	return &StatusError{Code: resp.StatusCode, Message: message}
}

package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/thesujaljaiswal/maitripos-gateway/internal/domain/builder"
	"github.com/thesujaljaiswal/maitripos-gateway/internal/domain/entity"
	"github.com/thesujaljaiswal/maitripos-gateway/pkg/apperror"
)

// Client talks to the remote maitriPOS API. It is the only place the gateway
// performs outbound network I/O: store lookup, catalog fetch and order
// creation. One attempt per call, no retries (failures surface to the user
// as a dismissible notice).
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Config holds the remote API connection settings
type Config struct {
	BaseURL string
	Timeout time.Duration
}

// NewClient creates a remote API client
func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL:    cfg.BaseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// apiEnvelope is the remote API's standard response wrapper
type apiEnvelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// storePayload mirrors the remote store resource
type storePayload struct {
	ID       string `json:"_id"`
	Name     string `json:"name"`
	Slug     string `json:"slug"`
	Currency string `json:"currency"`
	Branding struct {
		LogoURL      string `json:"logoUrl"`
		TagLine      string `json:"tagLine"`
		PrimaryColor string `json:"primaryColor"`
	} `json:"branding"`
}

// itemPayload mirrors the remote catalog item resource. Prices arrive as
// decimal rupee amounts and may be absent, both on the item and on each
// variant.
type itemPayload struct {
	ID       string   `json:"_id"`
	Name     string   `json:"name"`
	Price    *float64 `json:"price"`
	Category struct {
		ID   string `json:"_id"`
		Name string `json:"name"`
	} `json:"category"`
	Variants []struct {
		ID    string   `json:"_id"`
		Name  string   `json:"name"`
		Price *float64 `json:"price"`
	} `json:"variants"`
}

// GetBySlug fetches the public store resource for a slug
func (c *Client) GetBySlug(ctx context.Context, slug string) (*entity.Store, error) {
	var payload storePayload
	if err := c.get(ctx, "/api/store/public/"+slug, &payload); err != nil {
		return nil, err
	}
	return &entity.Store{
		ID:       payload.ID,
		Name:     payload.Name,
		Slug:     payload.Slug,
		Currency: payload.Currency,
		Branding: entity.StoreBranding{
			LogoURL:      payload.Branding.LogoURL,
			TagLine:      payload.Branding.TagLine,
			PrimaryColor: payload.Branding.PrimaryColor,
		},
	}, nil
}

// ListItems fetches the catalog for a store. Variants without a defined
// price are dropped here so the builder core only ever sees priced variants.
func (c *Client) ListItems(ctx context.Context, storeID string) ([]entity.CatalogItem, error) {
	var payload []itemPayload
	if err := c.get(ctx, "/api/item/store/"+storeID, &payload); err != nil {
		return nil, err
	}

	items := make([]entity.CatalogItem, 0, len(payload))
	for _, p := range payload {
		item := entity.CatalogItem{
			ID:           p.ID,
			Name:         p.Name,
			CategoryID:   p.Category.ID,
			CategoryName: p.Category.Name,
		}
		for _, v := range p.Variants {
			if v.Price == nil {
				continue
			}
			item.Variants = append(item.Variants, entity.Variant{
				ID:    v.ID,
				Name:  v.Name,
				Price: int64(*v.Price * 100),
			})
		}
		if len(item.Variants) == 0 && p.Price != nil {
			item.SetPriceFromDecimal(*p.Price)
		}
		items = append(items, item)
	}
	return items, nil
}

// orderRequest is the order creation payload on the remote API's wire format
type orderRequest struct {
	StoreID       string      `json:"storeId"`
	Items         []orderItem `json:"items"`
	SubTotal      float64     `json:"subTotal"`
	Discount      float64     `json:"discount"`
	TaxPercent    float64     `json:"taxPercent"`
	TaxAmount     float64     `json:"taxAmount"`
	TotalAmount   float64     `json:"totalAmount"`
	CustomerName  string      `json:"customerName,omitempty"`
	CustomerPhone string      `json:"customerPhone,omitempty"`
	PaymentMethod string      `json:"paymentMethod"`
	PaymentStatus string      `json:"paymentStatus"`
}

type orderItem struct {
	ItemID    string `json:"itemId"`
	VariantID string `json:"variantId,omitempty"`
	Quantity  int    `json:"quantity"`
}

type orderResponse struct {
	ID string `json:"_id"`
}

// CreateOrder posts the submission and returns the remote order id
func (c *Client) CreateOrder(ctx context.Context, sub *builder.Submission) (string, error) {
	req := orderRequest{
		StoreID:       sub.StoreID,
		Items:         make([]orderItem, 0, len(sub.Items)),
		SubTotal:      float64(sub.Pricing.SubTotal) / 100,
		Discount:      float64(sub.Pricing.Discount) / 100,
		TaxPercent:    sub.Pricing.TaxPercent,
		TaxAmount:     float64(sub.Pricing.TaxAmount) / 100,
		TotalAmount:   float64(sub.Pricing.Total) / 100,
		CustomerName:  sub.Customer.Name,
		CustomerPhone: sub.Customer.Phone,
		PaymentMethod: sub.Payment.Method.String(),
		PaymentStatus: sub.Payment.Status.String(),
	}
	for _, it := range sub.Items {
		req.Items = append(req.Items, orderItem{
			ItemID:    it.ItemID,
			VariantID: it.VariantID,
			Quantity:  it.Quantity,
		})
	}

	var resp orderResponse
	if err := c.post(ctx, "/api/order", req, &resp); err != nil {
		return "", err
	}
	if resp.ID == "" {
		return "", apperror.NewBadRequestError("Remote API accepted the order but returned no id")
	}
	return resp.ID, nil
}

func (c *Client) get(ctx context.Context, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	return c.do(req, out)
}

func (c *Client) post(ctx context.Context, path string, body, out interface{}) error {
	buf, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(buf))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out interface{}) error {
	// Relay the caller's session cookie, if any
	if cookie, ok := req.Context().Value(sessionCookieKey{}).(string); ok && cookie != "" {
		req.Header.Set("Cookie", cookie)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return apperror.NewAppError(http.StatusBadGateway, fmt.Sprintf("Remote API unreachable: %v", err))
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return apperror.NewAppError(http.StatusBadGateway, "Failed to read remote API response")
	}

	var envelope apiEnvelope
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return apperror.NewAppError(http.StatusBadGateway, "Malformed remote API response")
	}

	if resp.StatusCode == http.StatusNotFound {
		return apperror.ErrNotFound
	}
	if resp.StatusCode >= 400 || !envelope.Success {
		msg := envelope.Message
		if msg == "" {
			msg = "Remote API request failed"
		}
		code := resp.StatusCode
		if code < 400 {
			code = http.StatusBadGateway
		}
		return apperror.NewAppError(code, msg)
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(envelope.Data, out); err != nil {
		return apperror.NewAppError(http.StatusBadGateway, "Malformed remote API payload")
	}
	return nil
}

type sessionCookieKey struct{}

// WithSessionCookie attaches the shopper/merchant session cookie to relay on
// outbound calls
func WithSessionCookie(ctx context.Context, cookie string) context.Context {
	return context.WithValue(ctx, sessionCookieKey{}, cookie)
}

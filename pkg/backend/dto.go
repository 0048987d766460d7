package backend

import (
	"math"
	"time"

	"github.com/ivankoranteng77/shopeasy-ecommerce/pkg/admin"
	"github.com/ivankoranteng77/shopeasy-ecommerce/pkg/domain/model"
)

// The wire contract uses snake_case JSON with float dollar prices; prices
// are converted to integer cents at this boundary and back on the way out.

type categoryDTO struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

type categoryCreateDTO struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type productDTO struct {
	ID            int64         `json:"id"`
	Name          string        `json:"name"`
	SKU           string        `json:"sku"`
	Description   string        `json:"description"`
	Price         float64       `json:"price"`
	StockQuantity int           `json:"stock_quantity"`
	ImageURL      *string       `json:"image_url"`
	Categories    []categoryDTO `json:"categories"`
}

type productCreateDTO struct {
	Name          string  `json:"name"`
	SKU           string  `json:"sku"`
	Description   string  `json:"description"`
	Price         float64 `json:"price"`
	StockQuantity int     `json:"stock_quantity"`
	CategoryIDs   []int64 `json:"category_ids"`
	ImageURL      *string `json:"image_url"`
}

type orderItemDTO struct {
	ProductID int64   `json:"product_id"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
}

type orderCreateDTO struct {
	CustomerName    string         `json:"customer_name"`
	CustomerPhone   string         `json:"customer_phone"`
	CustomerAddress string         `json:"customer_address"`
	Notes           *string        `json:"notes"`
	SessionID       *string        `json:"session_id,omitempty"`
	Items           []orderItemDTO `json:"items"`
}

type orderDTO struct {
	ID              int64   `json:"id"`
	OrderNumber     string  `json:"order_number"`
	CustomerName    string  `json:"customer_name"`
	CustomerPhone   string  `json:"customer_phone"`
	CustomerAddress string  `json:"customer_address"`
	Status          string  `json:"status"`
	TotalAmount     float64 `json:"total_amount"`
	Notes           *string `json:"notes"`
	WhatsAppSent    bool    `json:"whatsapp_sent"`
	CreatedAt       string  `json:"created_at"`
}

type tokenDTO struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

func centsFromDollars(dollars float64) int64 {
	return int64(math.Round(dollars * 100))
}

func dollarsFromCents(cents int64) float64 {
	return float64(cents) / 100
}

func (d productDTO) toModel() model.Product {
	p := model.Product{
		ID:            d.ID,
		Name:          d.Name,
		SKU:           d.SKU,
		Description:   d.Description,
		PriceCents:    centsFromDollars(d.Price),
		StockQuantity: d.StockQuantity,
	}
	if d.ImageURL != nil {
		p.ImageURL = *d.ImageURL
	}
	for _, c := range d.Categories {
		p.Categories = append(p.Categories, c.toModel())
	}
	return p
}

func (d categoryDTO) toModel() model.Category {
	return model.Category{ID: d.ID, Name: d.Name, Description: d.Description}
}

func (d orderDTO) toModel() model.Order {
	o := model.Order{
		ID:           d.ID,
		OrderNumber:  d.OrderNumber,
		CustomerName: d.CustomerName,
		Phone:        d.CustomerPhone,
		Address:      d.CustomerAddress,
		Status:       d.Status,
		TotalCents:   centsFromDollars(d.TotalAmount),
		WhatsAppSent: d.WhatsAppSent,
		CreatedAt:    parseTimestamp(d.CreatedAt),
	}
	if d.Notes != nil {
		o.Notes = *d.Notes
	}
	return o
}

func toOrderCreateDTO(draft model.OrderDraft) orderCreateDTO {
	dto := orderCreateDTO{
		CustomerName:    draft.Contact.Name,
		CustomerPhone:   draft.Contact.Phone,
		CustomerAddress: draft.Contact.Address,
	}
	if draft.Contact.Notes != "" {
		notes := draft.Contact.Notes
		dto.Notes = &notes
	}
	if draft.SessionID != "" {
		sessionID := draft.SessionID
		dto.SessionID = &sessionID
	}
	for _, item := range draft.Items {
		dto.Items = append(dto.Items, orderItemDTO{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     dollarsFromCents(item.PriceCents),
		})
	}
	return dto
}

func toProductCreateDTO(input admin.ProductInput, categoryIDs []int64) productCreateDTO {
	dto := productCreateDTO{
		Name:          input.Name,
		SKU:           input.SKU,
		Description:   input.Description,
		Price:         dollarsFromCents(input.PriceCents),
		StockQuantity: input.StockQuantity,
		CategoryIDs:   categoryIDs,
	}
	if dto.CategoryIDs == nil {
		dto.CategoryIDs = []int64{}
	}
	if input.ImageURL != "" {
		imageURL := input.ImageURL
		dto.ImageURL = &imageURL
	}
	return dto
}

// parseTimestamp accepts the backend's ISO 8601 timestamps with or without
// a timezone suffix. An unparseable value degrades to the zero time.
func parseTimestamp(value string) time.Time {
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02T15:04:05.999999", "2006-01-02T15:04:05"} {
		if t, err := time.Parse(layout, value); err == nil {
			return t
		}
	}
	return time.Time{}
}

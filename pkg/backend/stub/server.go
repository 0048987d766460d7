// Package stub is an in-memory stand-in for the ShopEasy backend, used by
// client tests and the stub-server development command. It implements just
// enough of the REST contract for both storefront and admin surfaces.
package stub

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

type category struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

type product struct {
	ID            int64      `json:"id"`
	Name          string     `json:"name"`
	SKU           string     `json:"sku"`
	Description   string     `json:"description"`
	Price         float64    `json:"price"`
	StockQuantity int        `json:"stock_quantity"`
	ImageURL      *string    `json:"image_url"`
	Categories    []category `json:"categories"`
}

type orderItem struct {
	ProductID int64   `json:"product_id"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
}

type order struct {
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

	Items []orderItem `json:"order_items"`
}

type Server struct {
	mu         sync.Mutex
	username   string
	password   string
	tokens     map[string]struct{}
	products   []product
	categories []category
	orders     []order
	nextID     int64
}

func NewServer(username, password string) *Server {
	s := &Server{
		username: username,
		password: password,
		tokens:   make(map[string]struct{}),
		nextID:   1,
	}
	s.seed()
	return s
}

func (s *Server) seed() {
	electronics := category{ID: s.allocID(), Name: "Electronics", Description: "Electronics"}
	books := category{ID: s.allocID(), Name: "Books", Description: "Books"}
	s.categories = []category{electronics, books}

	s.products = []product{
		{
			ID: s.allocID(), Name: "Wireless Headphones", SKU: "ELEC-001",
			Description: "Over-ear wireless headphones", Price: 59.99,
			StockQuantity: 12, Categories: []category{electronics},
		},
		{
			ID: s.allocID(), Name: "Go Programming", SKU: "BOOK-001",
			Description: "An introduction to Go", Price: 24.50,
			StockQuantity: 3, Categories: []category{books},
		},
		{
			ID: s.allocID(), Name: "USB-C Cable", SKU: "ELEC-002",
			Description: "1m braided cable", Price: 7.99,
			StockQuantity: 0, Categories: []category{electronics},
		},
	}
}

func (s *Server) allocID() int64 {
	id := s.nextID
	s.nextID++
	return id
}

// Router mounts the API under /api/v1 like the real backend.
func (s *Server) Router() http.Handler {
	r := mux.NewRouter()
	api := r.PathPrefix("/api/v1").Subrouter()

	api.HandleFunc("/products/", s.listProducts).Methods(http.MethodGet)
	api.HandleFunc("/products/", s.authenticated(s.createProduct)).Methods(http.MethodPost)
	api.HandleFunc("/products/categories", s.listCategories).Methods(http.MethodGet)
	api.HandleFunc("/products/categories/", s.listCategories).Methods(http.MethodGet)
	api.HandleFunc("/products/categories/", s.authenticated(s.createCategory)).Methods(http.MethodPost)
	api.HandleFunc("/products/{id}", s.authenticated(s.deleteProduct)).Methods(http.MethodDelete)

	api.HandleFunc("/orders/", s.createOrder).Methods(http.MethodPost)
	api.HandleFunc("/orders/admin/all", s.authenticated(s.listOrders)).Methods(http.MethodGet)

	api.HandleFunc("/auth/admin/login", s.login).Methods(http.MethodPost)

	return logMiddleware(r)
}

func logMiddleware(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log.WithFields(log.Fields{
			"method":     r.Method,
			"url":        r.URL,
			"remoteAddr": r.RemoteAddr,
		}).Debug("stub backend request")
		h.ServeHTTP(w, r)
	})
}

func (s *Server) authenticated(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		const prefix = "Bearer "
		if len(header) <= len(prefix) || header[:len(prefix)] != prefix {
			writeDetail(w, http.StatusUnauthorized, "Not authenticated")
			return
		}

		s.mu.Lock()
		_, ok := s.tokens[header[len(prefix):]]
		s.mu.Unlock()
		if !ok {
			writeDetail(w, http.StatusUnauthorized, "Invalid or expired token")
			return
		}
		next(w, r)
	}
}

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeDetail(w, http.StatusBadRequest, "malformed form body")
		return
	}

	if r.PostFormValue("username") != s.username || r.PostFormValue("password") != s.password {
		writeDetail(w, http.StatusUnauthorized, "Incorrect username or password")
		return
	}

	token := uuid.New().String()
	s.mu.Lock()
	s.tokens[token] = struct{}{}
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, map[string]string{
		"access_token": token,
		"token_type":   "bearer",
	})
}

func (s *Server) listProducts(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	products := append([]product(nil), s.products...)
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, products)
}

func (s *Server) listCategories(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	categories := append([]category(nil), s.categories...)
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, categories)
}

func (s *Server) createCategory(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeDetail(w, http.StatusUnprocessableEntity, "invalid category payload")
		return
	}

	s.mu.Lock()
	created := category{ID: s.allocID(), Name: payload.Name, Description: payload.Description}
	s.categories = append(s.categories, created)
	s.mu.Unlock()

	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) createProduct(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Name          string  `json:"name"`
		SKU           string  `json:"sku"`
		Description   string  `json:"description"`
		Price         float64 `json:"price"`
		StockQuantity int     `json:"stock_quantity"`
		CategoryIDs   []int64 `json:"category_ids"`
		ImageURL      *string `json:"image_url"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeDetail(w, http.StatusUnprocessableEntity, "invalid product payload")
		return
	}
	if payload.Price <= 0 {
		writeDetail(w, http.StatusUnprocessableEntity, "Price must be positive")
		return
	}
	if payload.StockQuantity < 0 {
		writeDetail(w, http.StatusUnprocessableEntity, "Stock quantity cannot be negative")
		return
	}

	s.mu.Lock()
	created := product{
		ID:            s.allocID(),
		Name:          payload.Name,
		SKU:           payload.SKU,
		Description:   payload.Description,
		Price:         payload.Price,
		StockQuantity: payload.StockQuantity,
		ImageURL:      payload.ImageURL,
		Categories:    []category{},
	}
	for _, categoryID := range payload.CategoryIDs {
		for _, c := range s.categories {
			if c.ID == categoryID {
				created.Categories = append(created.Categories, c)
			}
		}
	}
	s.products = append(s.products, created)
	s.mu.Unlock()

	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) deleteProduct(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		writeDetail(w, http.StatusUnprocessableEntity, "invalid product id")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i, p := range s.products {
		if p.ID == id {
			s.products = append(s.products[:i], s.products[i+1:]...)
			writeJSON(w, http.StatusOK, map[string]string{"message": "Product deleted"})
			return
		}
	}
	writeDetail(w, http.StatusNotFound, "Product not found")
}

func (s *Server) createOrder(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		CustomerName    string      `json:"customer_name"`
		CustomerPhone   string      `json:"customer_phone"`
		CustomerAddress string      `json:"customer_address"`
		Notes           *string     `json:"notes"`
		Items           []orderItem `json:"items"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeDetail(w, http.StatusUnprocessableEntity, "invalid order payload")
		return
	}
	if len(payload.Items) == 0 {
		writeDetail(w, http.StatusUnprocessableEntity, "order has no items")
		return
	}

	var total float64
	for _, item := range payload.Items {
		total += item.Price * float64(item.Quantity)
	}

	s.mu.Lock()
	created := order{
		ID:              s.allocID(),
		CustomerName:    payload.CustomerName,
		CustomerPhone:   payload.CustomerPhone,
		CustomerAddress: payload.CustomerAddress,
		Status:          "pending",
		TotalAmount:     total,
		Notes:           payload.Notes,
		CreatedAt:       time.Now().UTC().Format(time.RFC3339),
		Items:           payload.Items,
	}
	created.OrderNumber = fmt.Sprintf("ORD-%05d", created.ID)
	s.orders = append(s.orders, created)
	s.mu.Unlock()

	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) listOrders(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	orders := append([]order(nil), s.orders...)
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, orders)
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.WithError(err).Error("write response")
	}
}

func writeDetail(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"detail": detail})
}

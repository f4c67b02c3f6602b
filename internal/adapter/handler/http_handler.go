package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/IyshwaryaRamesh/Ecommerce-project/internal/core/domain"
	"github.com/IyshwaryaRamesh/Ecommerce-project/internal/core/service"
)

type HTTPHandler struct {
	shop *service.ShopService
	log  *slog.Logger
}

func NewHTTPHandler(shop *service.ShopService, log *slog.Logger) *HTTPHandler {
	if log == nil {
		log = slog.Default()
	}
	return &HTTPHandler{shop: shop, log: log}
}

func (h *HTTPHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /health", h.HealthCheck)

	mux.HandleFunc("POST /api/products", h.CreateProduct)
	mux.HandleFunc("GET /api/products/{id}", h.GetProduct)
	mux.HandleFunc("GET /api/products/{id}/stock", h.GetProductStock)
	mux.HandleFunc("DELETE /api/products/{id}", h.DeleteProduct)

	mux.HandleFunc("POST /api/customers", h.CreateCustomer)
	mux.HandleFunc("DELETE /api/customers/{id}", h.DeleteCustomer)
	mux.HandleFunc("GET /api/customers/{id}/cart", h.GetCart)
	mux.HandleFunc("GET /api/customers/{id}/orders", h.GetOrders)

	mux.HandleFunc("POST /api/cart/items", h.AddToCart)
	mux.HandleFunc("DELETE /api/cart/items", h.RemoveFromCart)

	mux.HandleFunc("POST /api/orders", h.PlaceOrder)
}

type createProductRequest struct {
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	Description string          `json:"description,omitempty"`
	Stock       int             `json:"stock"`
}

func (h *HTTPHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req createProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	id, err := h.shop.CreateProduct(r.Context(), domain.Product{
		Name:        req.Name,
		Price:       req.Price,
		Description: req.Description,
		Stock:       req.Stock,
	})
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]int64{"product_id": id})
}

type productResponse struct {
	ProductID   int64           `json:"product_id"`
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	Description string          `json:"description,omitempty"`
	Stock       int             `json:"stock"`
}

func toProductResponse(p domain.Product) productResponse {
	return productResponse{
		ProductID:   p.ID,
		Name:        p.Name,
		Price:       p.Price,
		Description: p.Description,
		Stock:       p.Stock,
	}
}

func (h *HTTPHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	p, err := h.shop.GetProduct(r.Context(), id)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toProductResponse(p))
}

func (h *HTTPHandler) GetProductStock(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	stock, err := h.shop.GetProductStock(r.Context(), id)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"product_id": id, "stock": stock})
}

func (h *HTTPHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := h.shop.DeleteProduct(r.Context(), id); err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

type createCustomerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *HTTPHandler) CreateCustomer(w http.ResponseWriter, r *http.Request) {
	var req createCustomerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	id, err := h.shop.CreateCustomer(r.Context(), domain.Customer{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]int64{"customer_id": id})
}

func (h *HTTPHandler) DeleteCustomer(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := h.shop.DeleteCustomer(r.Context(), id); err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

type cartItemRequest struct {
	CustomerID int64 `json:"customer_id"`
	ProductID  int64 `json:"product_id"`
	Quantity   int   `json:"quantity"`
}

func (h *HTTPHandler) AddToCart(w http.ResponseWriter, r *http.Request) {
	var req cartItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.shop.AddToCart(r.Context(), req.CustomerID, req.ProductID, req.Quantity); err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (h *HTTPHandler) RemoveFromCart(w http.ResponseWriter, r *http.Request) {
	var req cartItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	removed, err := h.shop.RemoveFromCart(r.Context(), req.CustomerID, req.ProductID)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"removed": removed})
}

type cartItemResponse struct {
	Product  productResponse `json:"product"`
	Quantity int             `json:"quantity"`
}

func (h *HTTPHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	items, err := h.shop.GetAllFromCart(r.Context(), id)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	resp := make([]cartItemResponse, 0, len(items))
	for _, item := range items {
		resp = append(resp, cartItemResponse{Product: toProductResponse(item.Product), Quantity: item.Quantity})
	}
	writeJSON(w, http.StatusOK, resp)
}

type placeOrderRequest struct {
	RequestID       string `json:"request_id,omitempty"`
	CustomerID      int64  `json:"customer_id"`
	ShippingAddress string `json:"shipping_address"`
	Items           []struct {
		ProductID int64 `json:"product_id"`
		Quantity  int   `json:"quantity"`
	} `json:"items,omitempty"`
}

type placeOrderResponse struct {
	OrderID    int64           `json:"order_id"`
	TotalPrice decimal.Decimal `json:"total_price"`
	OrderDate  string          `json:"order_date"`
}

func (h *HTTPHandler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	var req placeOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.RequestID == "" {
		req.RequestID = uuid.NewString()
	}

	var lines []domain.OrderLine
	if req.Items != nil {
		lines = make([]domain.OrderLine, 0, len(req.Items))
		for _, item := range req.Items {
			lines = append(lines, domain.OrderLine{ProductID: item.ProductID, Quantity: item.Quantity})
		}
	}

	order, err := h.shop.PlaceOrder(r.Context(), service.PlaceOrderRequest{
		CustomerID:      req.CustomerID,
		Items:           lines,
		ShippingAddress: req.ShippingAddress,
		RequestID:       req.RequestID,
	})
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, placeOrderResponse{
		OrderID:    order.ID,
		TotalPrice: order.Total,
		OrderDate:  order.Date.Format(time.RFC3339Nano),
	})
}

type orderEntryResponse struct {
	OrderID   int64           `json:"order_id"`
	OrderDate string          `json:"order_date"`
	Product   productResponse `json:"product"`
	Quantity  int             `json:"quantity"`
}

func (h *HTTPHandler) GetOrders(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	entries, err := h.shop.GetOrdersByCustomer(r.Context(), id)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	resp := make([]orderEntryResponse, 0, len(entries))
	for _, e := range entries {
		resp = append(resp, orderEntryResponse{
			OrderID:   e.OrderID,
			OrderDate: e.OrderDate.Format(time.RFC3339Nano),
			Product:   toProductResponse(e.Product),
			Quantity:  e.Quantity,
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *HTTPHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// writeServiceError maps the error taxonomy to HTTP statuses. Expected
// conditions carry their own message; anything else is an opaque 500.
func (h *HTTPHandler) writeServiceError(w http.ResponseWriter, err error) {
	var (
		notFound     *domain.NotFoundError
		insufficient *domain.InsufficientStockError
		integrity    *domain.IntegrityError
	)
	switch {
	case errors.As(err, &notFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrInvalidArgument):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrEmptyCart):
		writeError(w, http.StatusConflict, err.Error())
	case errors.As(err, &insufficient):
		writeError(w, http.StatusConflict, err.Error())
	case errors.As(err, &integrity):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrDuplicateRequest):
		writeError(w, http.StatusConflict, "duplicate request")
	default:
		h.log.Error("request failed", "err", err)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, "invalid id")
		return 0, false
	}
	return id, true
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

package controllers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"glik/middleware"
	"glik/models"
	"glik/services"

	"github.com/gorilla/mux"
)

// ProductController обрабатывает запросы каталога
type ProductController struct {
	productService *services.ProductService
	userService    *services.UserService
}

// NewProductController создает новый экземпляр ProductController
func NewProductController(productService *services.ProductService, userService *services.UserService) *ProductController {
	return &ProductController{
		productService: productService,
		userService:    userService,
	}
}

// GetProducts обрабатывает запрос на каталог товаров.
// Каталог публичный, авторизация не требуется.
func (c *ProductController) GetProducts(w http.ResponseWriter, r *http.Request) {
	featuredOnly := r.URL.Query().Get("featured") == "true"

	products, err := c.productService.GetProducts(r.Context(), featuredOnly)
	if err != nil {
		httpError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, products)
}

// GetProduct обрабатывает запрос на карточку товара с условиями лизинга
func (c *ProductController) GetProduct(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	productID, err := strconv.ParseUint(vars["id"], 10, 32)
	if err != nil {
		http.Error(w, "Invalid product ID", http.StatusBadRequest)
		return
	}

	product, err := c.productService.GetProductByID(r.Context(), uint(productID))
	if err != nil {
		httpError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, product)
}

// CreateProduct обрабатывает добавление товара в каталог.
// Операция доступна только администраторам.
func (c *ProductController) CreateProduct(w http.ResponseWriter, r *http.Request) {
	userID, _, err := middleware.GetUserFromContext(r)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	user, err := c.userService.FindById(userID)
	if err != nil || !user.InGroup(models.GroupAdmin) {
		http.Error(w, "Access denied", http.StatusForbidden)
		return
	}

	var dto services.CreateProductDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	product, err := c.productService.Create(r.Context(), dto)
	if err != nil {
		httpError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, product)
}

// UpdateStock обрабатывает изменение остатка товара.
// Операция доступна только администраторам.
func (c *ProductController) UpdateStock(w http.ResponseWriter, r *http.Request) {
	userID, _, err := middleware.GetUserFromContext(r)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	user, err := c.userService.FindById(userID)
	if err != nil || !user.InGroup(models.GroupAdmin) {
		http.Error(w, "Access denied", http.StatusForbidden)
		return
	}

	vars := mux.Vars(r)
	productID, err := strconv.ParseUint(vars["id"], 10, 32)
	if err != nil {
		http.Error(w, "Invalid product ID", http.StatusBadRequest)
		return
	}

	var req struct {
		Delta int64 `json:"delta"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := c.productService.UpdateStock(r.Context(), uint(productID), req.Delta); err != nil {
		httpError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

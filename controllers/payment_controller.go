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

// PaymentController обрабатывает запросы, связанные с платежами
type PaymentController struct {
	paymentService *services.PaymentService
	leaseService   *services.LeaseService
	userService    *services.UserService
}

// UpdatePaymentStatusRequest представляет запрос на смену статуса платежа
type UpdatePaymentStatusRequest struct {
	Status string `json:"status"`
}

// NewPaymentController создает новый экземпляр PaymentController
func NewPaymentController(paymentService *services.PaymentService, leaseService *services.LeaseService, userService *services.UserService) *PaymentController {
	return &PaymentController{
		paymentService: paymentService,
		leaseService:   leaseService,
		userService:    userService,
	}
}

// CreatePayment обрабатывает заявку о платеже по договору
func (c *PaymentController) CreatePayment(w http.ResponseWriter, r *http.Request) {
	// Получаем ID пользователя из контекста
	userID, _, err := middleware.GetUserFromContext(r)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	// Получаем ID договора из URL
	vars := mux.Vars(r)
	leaseID, err := strconv.ParseUint(vars["id"], 10, 32)
	if err != nil {
		http.Error(w, "Invalid lease ID", http.StatusBadRequest)
		return
	}

	// Проверяем, что договор принадлежит пользователю
	lease, err := c.leaseService.GetLeaseByID(uint(leaseID))
	if err != nil {
		httpError(w, err)
		return
	}
	if lease.UserID != userID && !c.isAdmin(userID) {
		http.Error(w, "Access denied", http.StatusForbidden)
		return
	}

	var dto services.CreatePaymentDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	payment, err := c.paymentService.Create(r.Context(), dto, uint(leaseID), userID)
	if err != nil {
		httpError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, payment)
}

// GetPayments обрабатывает запрос на получение платежей по договору
func (c *PaymentController) GetPayments(w http.ResponseWriter, r *http.Request) {
	userID, _, err := middleware.GetUserFromContext(r)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	vars := mux.Vars(r)
	leaseID, err := strconv.ParseUint(vars["id"], 10, 32)
	if err != nil {
		http.Error(w, "Invalid lease ID", http.StatusBadRequest)
		return
	}

	lease, err := c.leaseService.GetLeaseByID(uint(leaseID))
	if err != nil {
		httpError(w, err)
		return
	}
	if lease.UserID != userID && !c.isAdmin(userID) {
		http.Error(w, "Access denied", http.StatusForbidden)
		return
	}

	payments, err := c.paymentService.GetPayments(uint(leaseID), 0)
	if err != nil {
		httpError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, payments)
}

// UpdatePaymentStatus обрабатывает смену статуса платежа.
// Операция доступна только администраторам.
func (c *PaymentController) UpdatePaymentStatus(w http.ResponseWriter, r *http.Request) {
	userID, _, err := middleware.GetUserFromContext(r)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	if !c.isAdmin(userID) {
		http.Error(w, "Access denied", http.StatusForbidden)
		return
	}

	vars := mux.Vars(r)
	paymentID, err := strconv.ParseUint(vars["id"], 10, 32)
	if err != nil {
		http.Error(w, "Invalid payment ID", http.StatusBadRequest)
		return
	}

	var req UpdatePaymentStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := c.paymentService.UpdateStatus(r.Context(), req.Status, uint(paymentID)); err != nil {
		httpError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": req.Status})
}

// isAdmin проверяет членство пользователя в группе ADMIN
func (c *PaymentController) isAdmin(userID uint) bool {
	user, err := c.userService.FindById(userID)
	if err != nil {
		return false
	}
	return user.InGroup(models.GroupAdmin)
}

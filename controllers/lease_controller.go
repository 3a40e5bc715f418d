package controllers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"glik/middleware"
	"glik/models"
	"glik/services"

	"github.com/gorilla/mux"
)

// LeaseController обрабатывает запросы, связанные с договорами лизинга
type LeaseController struct {
	leaseService *services.LeaseService
	userService  *services.UserService
}

// UpdateLeaseStatusRequest представляет запрос на смену статуса договора
type UpdateLeaseStatusRequest struct {
	Status string `json:"status"`
}

// NewLeaseController создает новый экземпляр LeaseController
func NewLeaseController(leaseService *services.LeaseService, userService *services.UserService) *LeaseController {
	return &LeaseController{
		leaseService: leaseService,
		userService:  userService,
	}
}

// CreateLease обрабатывает запрос на создание договора
func (c *LeaseController) CreateLease(w http.ResponseWriter, r *http.Request) {
	// Получаем ID пользователя из контекста
	userID, _, err := middleware.GetUserFromContext(r)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	// Создаем DTO для запроса
	var dto services.CreateLeaseDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	// Создаем договор
	leaseID, err := c.leaseService.Create(dto, userID)
	if err != nil {
		httpError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]uint{"id": leaseID})
}

// GetLeases обрабатывает запрос на получение договоров пользователя.
// Администратор видит все договоры.
func (c *LeaseController) GetLeases(w http.ResponseWriter, r *http.Request) {
	userID, _, err := middleware.GetUserFromContext(r)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	filterUserID := userID
	if c.isAdmin(userID) {
		filterUserID = 0
	}

	leases, err := c.leaseService.GetLeases(filterUserID)
	if err != nil {
		httpError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, leases)
}

// GetLease обрабатывает запрос на получение информации о договоре
func (c *LeaseController) GetLease(w http.ResponseWriter, r *http.Request) {
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

	lease, err := c.leaseService.GetLeaseByID(uint(leaseID))
	if err != nil {
		httpError(w, err)
		return
	}

	// Проверяем, что договор принадлежит пользователю
	if lease.UserID != userID && !c.isAdmin(userID) {
		http.Error(w, "Access denied", http.StatusForbidden)
		return
	}

	writeJSON(w, http.StatusOK, lease)
}

// GetLeaseSchedule обрабатывает запрос на расчетный график договора
func (c *LeaseController) GetLeaseSchedule(w http.ResponseWriter, r *http.Request) {
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

	schedule, err := c.leaseService.GetSchedule(r.Context(), uint(leaseID), time.Now())
	if err != nil {
		httpError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, schedule)
}

// UpdateLeaseStatus обрабатывает смену статуса договора.
// Операция доступна только администраторам.
func (c *LeaseController) UpdateLeaseStatus(w http.ResponseWriter, r *http.Request) {
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
	leaseID, err := strconv.ParseUint(vars["id"], 10, 32)
	if err != nil {
		http.Error(w, "Invalid lease ID", http.StatusBadRequest)
		return
	}

	var req UpdateLeaseStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := c.leaseService.UpdateStatus(req.Status, uint(leaseID)); err != nil {
		httpError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": req.Status})
}

// isAdmin проверяет членство пользователя в группе ADMIN
func (c *LeaseController) isAdmin(userID uint) bool {
	user, err := c.userService.FindById(userID)
	if err != nil {
		return false
	}
	return user.InGroup(models.GroupAdmin)
}

package controllers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"glik/middleware"
	"glik/services"

	"github.com/gorilla/mux"
)

// UserController обрабатывает запросы профиля и адресов
type UserController struct {
	userService *services.UserService
}

// NewUserController создает новый экземпляр UserController
func NewUserController(userService *services.UserService) *UserController {
	return &UserController{userService: userService}
}

// GetProfile обрабатывает запрос на профиль текущего пользователя
func (c *UserController) GetProfile(w http.ResponseWriter, r *http.Request) {
	userID, _, err := middleware.GetUserFromContext(r)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	user, err := c.userService.FindById(userID)
	if err != nil {
		httpError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, c.userService.ToResponse(user))
}

// CreateAddress обрабатывает добавление адреса
func (c *UserController) CreateAddress(w http.ResponseWriter, r *http.Request) {
	userID, _, err := middleware.GetUserFromContext(r)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var dto services.CreateAddressDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	address, err := c.userService.CreateAddress(userID, dto)
	if err != nil {
		httpError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, address)
}

// GetAddresses обрабатывает запрос на активные адреса пользователя
func (c *UserController) GetAddresses(w http.ResponseWriter, r *http.Request) {
	userID, _, err := middleware.GetUserFromContext(r)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	addresses, err := c.userService.GetAddresses(userID)
	if err != nil {
		httpError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, addresses)
}

// DeleteAddress обрабатывает мягкое удаление адреса
func (c *UserController) DeleteAddress(w http.ResponseWriter, r *http.Request) {
	userID, _, err := middleware.GetUserFromContext(r)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	vars := mux.Vars(r)
	addressID, err := strconv.ParseUint(vars["id"], 10, 32)
	if err != nil {
		http.Error(w, "Invalid address ID", http.StatusBadRequest)
		return
	}

	if err := c.userService.DeleteAddress(uint(addressID), userID); err != nil {
		httpError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

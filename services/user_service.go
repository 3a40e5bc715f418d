package services

import (
	"errors"
	"strings"

	"glik/exceptions"
	"glik/models"
	"glik/utils"

	"github.com/go-playground/validator/v10"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// UserService предоставляет методы для работы с пользователями
type UserService struct {
	db        *gorm.DB
	validator *validator.Validate
	email     *EmailService
	tokenKey  []byte
}

// CreateUserRequest представляет данные регистрации
type CreateUserRequest struct {
	Username      string  `json:"username" validate:"required,min=2,max=50"`
	FirstName     string  `json:"first_name" validate:"max=50"`
	LastName      string  `json:"last_name" validate:"max=50"`
	Email         string  `json:"email" validate:"required,email"`
	Password      string  `json:"password" validate:"required,min=8"`
	CountryUserID string  `json:"country_user_id" validate:"max=10"`
	RIF           *string `json:"rif"`
	PhoneNumber   string  `json:"phone_number" validate:"max=20"`
	Type          string  `json:"type" validate:"required,oneof=natural juridic"`
}

// UserResponse представляет пользователя в ответах API
type UserResponse struct {
	ID            uint   `json:"id"`
	Username      string `json:"username"`
	FirstName     string `json:"first_name"`
	LastName      string `json:"last_name"`
	Email         string `json:"email"`
	CountryUserID string `json:"country_user_id"`
	Type          string `json:"type"`
}

func NewUserService(db *gorm.DB, email *EmailService, tokenKey []byte) *UserService {
	return &UserService{
		db:        db,
		validator: validator.New(),
		email:     email,
		tokenKey:  tokenKey,
	}
}

// CreateUserInternal создает нового пользователя.
// Новые пользователи попадают в группу CUSTOMER.
func (h *UserService) CreateUserInternal(req CreateUserRequest) (*models.User, error) {
	if err := validateDTO(h.validator, req); err != nil {
		return nil, err
	}

	// Проверяем, существует ли пользователь с таким email
	var existingUser models.User
	if err := h.db.Where("LOWER(email) = LOWER(?)", req.Email).First(&existingUser).Error; err == nil {
		return nil, exceptions.NewBadRequest("user with this email already exists")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	// Хешируем пароль
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	// Создаем нового пользователя
	user := &models.User{
		Username:      req.Username,
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		Email:         strings.TrimSpace(req.Email),
		Password:      string(hashedPassword),
		CountryUserID: req.CountryUserID,
		RIF:           req.RIF,
		PhoneNumber:   req.PhoneNumber,
		Type:          models.UserType(req.Type),
	}

	if err := h.db.Create(user).Error; err != nil {
		return nil, err
	}

	// Добавляем в группу CUSTOMER, создаем группу при первом обращении
	var group models.Group
	if err := h.db.Where("name = ?", models.GroupCustomer).
		FirstOrCreate(&group, models.Group{Name: models.GroupCustomer}).Error; err != nil {
		return nil, err
	}
	if err := h.db.Model(user).Association("Groups").Append(&group); err != nil {
		return nil, err
	}

	return user, nil
}

// FindById ищет пользователя с группами по ID
func (h *UserService) FindById(id uint) (*models.User, error) {
	var user models.User
	if err := h.db.Preload("Groups").First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, exceptions.NewNotFound("User")
		}
		return nil, err
	}
	return &user, nil
}

// FindByEmail ищет пользователя по email (игнорируя регистр и пробелы)
func (h *UserService) FindByEmail(email string) (*models.User, error) {
	var user models.User
	if err := h.db.Where("LOWER(TRIM(email)) = LOWER(TRIM(?))", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, exceptions.NewNotFound("User")
		}
		return nil, err
	}
	return &user, nil
}

// CheckPassword сверяет пароль с хешем
func (h *UserService) CheckPassword(user *models.User, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) == nil
}

// ForgotPassword выдает пользователю одноразовый токен восстановления
// и отправляет его на email. В базе хранится только HMAC токена,
// утечка базы не дает сбросить чужой пароль. Ответ одинаковый для
// существующих и несуществующих адресов, чтобы не раскрывать базу
// пользователей.
func (h *UserService) ForgotPassword(email string) error {
	user, err := h.FindByEmail(email)
	if err != nil {
		if exceptions.KindOf(err) == exceptions.KindNotFound {
			return nil
		}
		return err
	}

	token, err := utils.GenerateSecureToken(32)
	if err != nil {
		return err
	}
	hashed := utils.GenerateHMAC(token, h.tokenKey)
	if err := h.db.Model(user).Update("forgot_password_token", hashed).Error; err != nil {
		return err
	}

	if h.email != nil {
		if err := h.email.SendForgotPasswordEmail(user.Email, token); err != nil {
			utils.LogError("Ошибка при отправке письма восстановления пароля: %v", err)
		}
	}
	return nil
}

// ResetPassword меняет пароль по токену восстановления
func (h *UserService) ResetPassword(token, newPassword string) error {
	if len(newPassword) < 8 {
		return exceptions.NewBadRequest("password must be at least 8 characters")
	}

	hashed := utils.GenerateHMAC(token, h.tokenKey)
	var user models.User
	if err := h.db.Where("forgot_password_token = ?", hashed).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return exceptions.NewNotFound("User")
		}
		return err
	}
	if user.ForgotToken == nil || !utils.ValidateHMAC(token, *user.ForgotToken, h.tokenKey) {
		return exceptions.NewNotFound("User")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	return h.db.Model(&user).Updates(map[string]interface{}{
		"password":              string(hashedPassword),
		"forgot_password_token": nil,
	}).Error
}

// CreateAddressDTO представляет адрес пользователя
type CreateAddressDTO struct {
	Name        string  `json:"name" validate:"required,min=2,max=50"`
	Description string  `json:"description"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
}

// CreateAddress добавляет адрес пользователя
func (h *UserService) CreateAddress(userID uint, dto CreateAddressDTO) (*models.Address, error) {
	if err := validateDTO(h.validator, dto); err != nil {
		return nil, err
	}

	address := &models.Address{
		Name:        dto.Name,
		Description: dto.Description,
		Latitude:    dto.Latitude,
		Longitude:   dto.Longitude,
		UserID:      userID,
	}
	if err := h.db.Create(address).Error; err != nil {
		return nil, err
	}
	return address, nil
}

// GetAddresses возвращает активные адреса пользователя
func (h *UserService) GetAddresses(userID uint) ([]models.Address, error) {
	var addresses []models.Address
	if err := h.db.Where("user_id = ? AND is_deleted = ?", userID, false).
		Order("created_at ASC").Find(&addresses).Error; err != nil {
		return nil, err
	}
	return addresses, nil
}

// DeleteAddress помечает адрес удаленным.
// Договоры продолжают ссылаться на удаленные адреса.
func (h *UserService) DeleteAddress(addressID, userID uint) error {
	var address models.Address
	if err := h.db.Where("id = ? AND user_id = ?", addressID, userID).
		First(&address).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return exceptions.NewNotFound("Address")
		}
		return err
	}
	return h.db.Model(&address).Update("is_deleted", true).Error
}

// ToResponse конвертирует модель в представление для API
func (h *UserService) ToResponse(user *models.User) UserResponse {
	return UserResponse{
		ID:            user.ID,
		Username:      user.Username,
		FirstName:     user.FirstName,
		LastName:      user.LastName,
		Email:         user.Email,
		CountryUserID: user.CountryUserID,
		Type:          string(user.Type),
	}
}

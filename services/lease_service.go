package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"glik/cache"
	"glik/exceptions"
	"glik/models"
	"glik/utils"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

// CompanyDTO представляет данные компании поручителя
type CompanyDTO struct {
	Name      string `json:"name" validate:"required,min=2,max=50"`
	WebPage   string `json:"web_page"`
	Instagram string `json:"instagram"`
	Facebook  string `json:"facebook"`
	Address   string `json:"address" validate:"max=200"`
}

// LoanGrantorDTO представляет данные поручителя
type LoanGrantorDTO struct {
	FirstName      string `json:"first_name" validate:"required,min=2,max=50"`
	LastName       string `json:"last_name" validate:"required,min=2,max=50"`
	Relationship   string `json:"relationship" validate:"required,min=2,max=50"`
	PhoneNumber    string `json:"phone_number" validate:"required,min=2,max=50"`
	Email          string `json:"email" validate:"required,email,max=50"`
	AddressRoom    string `json:"address_room" validate:"max=50"`
	LandLineNumber string `json:"land_line_number" validate:"max=50"`
}

// LeaseDTO представляет данные договора при создании
type LeaseDTO struct {
	Type             string `json:"type" validate:"required,oneof=lease purchase"`
	FullProductPrice int64  `json:"full_product_price" validate:"required,gt=0"`
	InitialFee       int64  `json:"initial_fee" validate:"gte=0"`
	MonthlyFee       int64  `json:"monthly_fee" validate:"required,gt=0"`
	FeesNumber       int    `json:"fees_number" validate:"required,gt=0"`
	WeeklyIncome     int64  `json:"weekly_income" validate:"gte=0"`
	LeaseReason      string `json:"lease_reason" validate:"max=100"`
	UserScore        int    `json:"user_score"`
	ProductID        uint   `json:"product" validate:"required"`
	AddressID        uint   `json:"address" validate:"required"`
	RiderID          *uint  `json:"rider"`
}

// CreateLeaseDTO представляет полный запрос на создание договора:
// компания поручителя, поручитель и сам договор создаются одной транзакцией
type CreateLeaseDTO struct {
	Company     CompanyDTO     `json:"company" validate:"required"`
	LoanGrantor LoanGrantorDTO `json:"loan_grantor" validate:"required"`
	Lease       LeaseDTO       `json:"lease" validate:"required"`
}

// LeaseService предоставляет методы для работы с договорами лизинга
type LeaseService struct {
	db                *gorm.DB
	validator         *validator.Validate
	email             *EmailService
	strictTransitions bool
}

// NewLeaseService создает новый экземпляр LeaseService
func NewLeaseService(db *gorm.DB, email *EmailService, strictTransitions bool) *LeaseService {
	return &LeaseService{
		db:                db,
		validator:         validator.New(),
		email:             email,
		strictTransitions: strictTransitions,
	}
}

// validateDTO переводит ошибки валидатора в одно сообщение
func validateDTO(v *validator.Validate, dto interface{}) error {
	if err := v.Struct(dto); err != nil {
		var validationErrors validator.ValidationErrors
		if !errors.As(err, &validationErrors) {
			return err
		}
		var messages []string
		for _, e := range validationErrors {
			switch e.Tag() {
			case "required":
				messages = append(messages, "field "+e.Field()+" is required")
			case "gt":
				messages = append(messages, "field "+e.Field()+" must be greater than 0")
			default:
				messages = append(messages, "field "+e.Field()+" is invalid")
			}
		}
		return exceptions.NewBadRequest(strings.Join(messages, "; "))
	}
	return nil
}

// Create создает договор лизинга после проверки документов пользователя.
// Статус всегда выставляется PENDING_APPROVAL, что бы ни прислал клиент.
func (s *LeaseService) Create(dto CreateLeaseDTO, userID uint) (uint, error) {
	// Валидируем DTO
	if err := validateDTO(s.validator, dto); err != nil {
		return 0, err
	}

	// Загружаем пользователя с группами и документами
	var user models.User
	if err := s.db.Preload("Groups").First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, exceptions.NewNotFound("User")
		}
		return 0, err
	}
	var documents []models.UserDocument
	if err := s.db.Where("user_id = ? AND is_deleted = ?", userID, false).Find(&documents).Error; err != nil {
		return 0, err
	}

	// Проверяем право на создание договора
	if err := CanCreateLease(user.Type, user.IsCustomer(), NewDocumentSet(documents)); err != nil {
		return 0, err
	}

	if dto.Lease.InitialFee > dto.Lease.FullProductPrice {
		return 0, exceptions.NewBadRequest("initial fee must not exceed full product price")
	}

	// Начинаем транзакцию
	tx := s.db.Begin()
	if tx.Error != nil {
		return 0, tx.Error
	}

	// Создаем компанию поручителя
	company := &models.Company{
		Name:      dto.Company.Name,
		WebPage:   dto.Company.WebPage,
		Instagram: dto.Company.Instagram,
		Facebook:  dto.Company.Facebook,
		Address:   dto.Company.Address,
	}
	if err := tx.Create(company).Error; err != nil {
		tx.Rollback()
		return 0, err
	}

	// Создаем поручителя
	grantor := &models.LoanGrantor{
		FirstName:      dto.LoanGrantor.FirstName,
		LastName:       dto.LoanGrantor.LastName,
		Relationship:   dto.LoanGrantor.Relationship,
		PhoneNumber:    dto.LoanGrantor.PhoneNumber,
		Email:          dto.LoanGrantor.Email,
		AddressRoom:    dto.LoanGrantor.AddressRoom,
		LandLineNumber: dto.LoanGrantor.LandLineNumber,
		CompanyID:      company.ID,
	}
	if err := tx.Create(grantor).Error; err != nil {
		tx.Rollback()
		return 0, err
	}

	// Создаем договор
	lease := &models.Lease{
		Status:           models.LeaseStatusPendingApproval,
		Type:             models.LeaseType(dto.Lease.Type),
		UserScore:        dto.Lease.UserScore,
		FullProductPrice: dto.Lease.FullProductPrice,
		InitialFee:       dto.Lease.InitialFee,
		MonthlyFee:       dto.Lease.MonthlyFee,
		FeesNumber:       dto.Lease.FeesNumber,
		WeeklyIncome:     dto.Lease.WeeklyIncome,
		LeaseReason:      dto.Lease.LeaseReason,
		UserID:           userID,
		ProductID:        dto.Lease.ProductID,
		AddressID:        dto.Lease.AddressID,
		RiderID:          dto.Lease.RiderID,
		LoanGrantorID:    grantor.ID,
	}
	if err := tx.Create(lease).Error; err != nil {
		tx.Rollback()
		return 0, err
	}

	// Подтверждаем транзакцию
	if err := tx.Commit().Error; err != nil {
		return 0, err
	}

	utils.LeasesCreated.Inc()
	return lease.ID, nil
}

// GetLeaseByID возвращает договор с платежами по ID
func (s *LeaseService) GetLeaseByID(id uint) (*models.Lease, error) {
	var lease models.Lease
	if err := s.db.Preload("Payments", func(db *gorm.DB) *gorm.DB {
		return db.Order("payments.created_at ASC")
	}).First(&lease, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, exceptions.NewNotFound("Lease")
		}
		return nil, err
	}
	return &lease, nil
}

// GetLeases возвращает договоры с фильтром по пользователю.
// userID == 0 означает все договоры.
func (s *LeaseService) GetLeases(userID uint) ([]models.Lease, error) {
	query := s.db.Preload("Payments", func(db *gorm.DB) *gorm.DB {
		return db.Order("payments.created_at ASC")
	}).Order("id DESC")
	if userID != 0 {
		query = query.Where("user_id = ?", userID)
	}
	var leases []models.Lease
	if err := query.Find(&leases).Error; err != nil {
		return nil, err
	}
	return leases, nil
}

// UpdateStatus обновляет статус договора.
// Меняется только статус, остальные поля не трогаются.
func (s *LeaseService) UpdateStatus(newStatus string, leaseID uint) error {
	var lease models.Lease
	if err := s.db.Preload("User").First(&lease, leaseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return exceptions.NewNotFound("Lease")
		}
		return err
	}

	status, err := models.ValidateLeaseTransition(lease.Status, newStatus, s.strictTransitions)
	if err != nil {
		return err
	}

	lease.Status = status
	if err := s.db.Model(&models.Lease{}).Where("id = ?", leaseID).
		Update("status", status).Error; err != nil {
		return err
	}

	utils.LeaseStatusUpdates.WithLabelValues(string(status)).Inc()

	// Уведомляем пользователя о решении по заявке
	if s.email != nil && (status == models.LeaseStatusActive || status == models.LeaseStatusRejected) {
		if err := s.email.SendLeaseStatusNotification(lease.User.Email, lease.ID, status); err != nil {
			utils.LogError("Ошибка при отправке уведомления о статусе договора: %v", err)
		}
	}
	return nil
}

// GetSchedule возвращает расчетный график договора.
// Результат кешируется на короткий срок и сбрасывается при изменении платежей.
func (s *LeaseService) GetSchedule(ctx context.Context, leaseID uint, now time.Time) (*ScheduleView, error) {
	key := fmt.Sprintf(cache.LeaseScheduleFmt, leaseID)
	if data, ok := cache.GetCached(ctx, key); ok {
		var view ScheduleView
		if err := json.Unmarshal(data, &view); err == nil {
			return &view, nil
		}
	}

	lease, err := s.GetLeaseByID(leaseID)
	if err != nil {
		return nil, err
	}
	view, err := Schedule(lease, lease.Payments, now)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(view); err == nil {
		cache.SetCached(ctx, key, data, cache.ScheduleTTL)
	}
	return view, nil
}

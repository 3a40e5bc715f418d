package services

import (
	"context"
	"errors"
	"time"

	"glik/cache"
	"glik/exceptions"
	"glik/models"
	"glik/utils"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

// CreatePaymentDTO представляет заявку пользователя о платеже
type CreatePaymentDTO struct {
	Amount       int64  `json:"amount" validate:"required,gt=0"`
	Date         string `json:"date" validate:"required"`
	Type         string `json:"type" validate:"max=50"`
	Currency     string `json:"currency" validate:"max=10"`
	ExchangeRate int64  `json:"exchange_rate" validate:"gte=0"`
}

// PaymentService предоставляет методы для работы с платежами
type PaymentService struct {
	db                *gorm.DB
	validator         *validator.Validate
	email             *EmailService
	strictTransitions bool
}

// NewPaymentService создает новый экземпляр PaymentService
func NewPaymentService(db *gorm.DB, email *EmailService, strictTransitions bool) *PaymentService {
	return &PaymentService{
		db:                db,
		validator:         validator.New(),
		email:             email,
		strictTransitions: strictTransitions,
	}
}

// Create регистрирует платеж по договору.
// Статус всегда выставляется PENDING, подтверждает платеж только оператор.
func (s *PaymentService) Create(ctx context.Context, dto CreatePaymentDTO, leaseID, userID uint) (*models.Payment, error) {
	if err := validateDTO(s.validator, dto); err != nil {
		return nil, err
	}

	date, err := time.Parse("2006-01-02", dto.Date)
	if err != nil {
		return nil, exceptions.NewBadRequest("date must be in YYYY-MM-DD format")
	}

	var lease models.Lease
	if err := s.db.First(&lease, leaseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, exceptions.NewNotFound("Lease")
		}
		return nil, err
	}

	payment := &models.Payment{
		Amount:       dto.Amount,
		Date:         date,
		Type:         dto.Type,
		Status:       models.PaymentStatusPending,
		Currency:     dto.Currency,
		ExchangeRate: dto.ExchangeRate,
		LeaseID:      lease.ID,
		UserID:       userID,
	}
	if err := s.db.Create(payment).Error; err != nil {
		return nil, err
	}

	utils.PaymentsCreated.Inc()
	cache.InvalidateLeaseSchedule(ctx, lease.ID)
	return payment, nil
}

// GetPaymentByID возвращает платеж по ID
func (s *PaymentService) GetPaymentByID(id uint) (*models.Payment, error) {
	var payment models.Payment
	if err := s.db.First(&payment, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, exceptions.NewNotFound("Payment")
		}
		return nil, err
	}
	return &payment, nil
}

// GetPayments возвращает платежи с фильтрами по договору и пользователю.
// Нулевое значение фильтра означает отсутствие фильтра.
func (s *PaymentService) GetPayments(leaseID, userID uint) ([]models.Payment, error) {
	query := s.db.Order("created_at ASC")
	if leaseID != 0 {
		query = query.Where("lease_id = ?", leaseID)
	}
	if userID != 0 {
		query = query.Where("user_id = ?", userID)
	}
	var payments []models.Payment
	if err := query.Find(&payments).Error; err != nil {
		return nil, err
	}
	return payments, nil
}

// UpdateStatus обновляет статус платежа.
// Смена статуса сбрасывает кеш графика договора, так как от статусов
// платежей зависят totalPaid и дата следующего платежа.
func (s *PaymentService) UpdateStatus(ctx context.Context, newStatus string, paymentID uint) error {
	var payment models.Payment
	if err := s.db.First(&payment, paymentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return exceptions.NewNotFound("Payment")
		}
		return err
	}

	status, err := models.ValidatePaymentTransition(payment.Status, newStatus, s.strictTransitions)
	if err != nil {
		return err
	}

	if err := s.db.Model(&models.Payment{}).Where("id = ?", paymentID).
		Update("status", status).Error; err != nil {
		return err
	}

	utils.PaymentStatusUpdates.WithLabelValues(string(status)).Inc()
	cache.InvalidateLeaseSchedule(ctx, payment.LeaseID)

	// Уведомляем пользователя о подтверждении платежа
	if s.email != nil && status == models.PaymentStatusPaid {
		var user models.User
		if err := s.db.First(&user, payment.UserID).Error; err == nil {
			if err := s.email.SendPaymentReceived(user.Email, payment.Amount, payment.Currency); err != nil {
				utils.LogError("Ошибка при отправке уведомления о платеже: %v", err)
			}
		}
	}
	return nil
}

package services

import (
	"errors"
	"log"
	"time"

	"glik/models"
	"glik/utils"

	"gorm.io/gorm"
)

// DelaySchedulerService периодически проверяет активные договоры на
// просрочку. Фиксирует просрочки и шлет напоминания, но никогда не меняет
// статусы договоров и платежей: решения принимает только оператор.
type DelaySchedulerService struct {
	db       *gorm.DB
	email    *EmailService
	interval time.Duration
}

// NewDelaySchedulerService создает новый экземпляр DelaySchedulerService
func NewDelaySchedulerService(db *gorm.DB, email *EmailService, interval time.Duration) *DelaySchedulerService {
	return &DelaySchedulerService{
		db:       db,
		email:    email,
		interval: interval,
	}
}

// Start запускает проверку просрочек по таймеру
func (s *DelaySchedulerService) Start() {
	ticker := time.NewTicker(s.interval)
	go func() {
		for range ticker.C {
			if err := s.CheckDelays(time.Now()); err != nil {
				log.Printf("Ошибка при проверке просрочек: %v", err)
			}
		}
	}()
}

// CheckDelays обходит активные договоры и фиксирует новые просрочки
func (s *DelaySchedulerService) CheckDelays(now time.Time) error {
	var leases []models.Lease
	if err := s.db.Where("status = ?", models.LeaseStatusActive).
		Preload("User").
		Preload("Payments", func(db *gorm.DB) *gorm.DB {
			return db.Order("payments.created_at ASC")
		}).
		Find(&leases).Error; err != nil {
		return err
	}

	for i := range leases {
		if err := s.checkLease(&leases[i], now); err != nil {
			log.Printf("Ошибка при проверке договора %d: %v", leases[i].ID, err)
		}
	}
	return nil
}

// checkLease фиксирует просрочку по одному договору.
// Повторная проверка того же взноса не создает дубликат записи.
func (s *DelaySchedulerService) checkLease(lease *models.Lease, now time.Time) error {
	delayed, err := IsDelayed(lease, lease.Payments, now)
	if err != nil {
		return err
	}
	if !delayed {
		return nil
	}

	paid, err := installmentsPaid(TotalPaid(lease.Payments), lease.InitialFee, lease.MonthlyFee)
	if err != nil {
		return err
	}
	feeNumber := paid + 1

	var existing models.PaymentDelay
	err = s.db.Where("lease_id = ? AND fee_number = ?", lease.ID, feeNumber).
		First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	delay := &models.PaymentDelay{
		LeaseID:   lease.ID,
		FeeNumber: feeNumber,
		CreatedAt: now,
	}
	if err := s.db.Create(delay).Error; err != nil {
		return err
	}
	utils.DelaysRecorded.Inc()

	if s.email != nil {
		next, err := NextPaymentDate(lease, lease.Payments, now)
		if err == nil {
			if err := s.email.SendPaymentReminder(lease.User.Email, lease.ID, next); err != nil {
				utils.LogError("Ошибка при отправке напоминания о платеже: %v", err)
			}
		}
	}
	return nil
}

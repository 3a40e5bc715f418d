package models

import (
	"time"

	"glik/exceptions"
)

// PaymentStatus представляет статус платежа
type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "PENDING"  // Платеж заявлен пользователем
	PaymentStatusPaid     PaymentStatus = "PAID"     // Платеж подтвержден
	PaymentStatusCanceled PaymentStatus = "CANCELED" // Платеж отменен
)

// PaymentTransitions таблица допустимых переходов статусов платежа.
// PAID и CANCELED терминальные.
var PaymentTransitions = map[PaymentStatus][]PaymentStatus{
	PaymentStatusPending:  {PaymentStatusPaid, PaymentStatusCanceled},
	PaymentStatusPaid:     {},
	PaymentStatusCanceled: {},
}

// ValidatePaymentStatus проверяет, что статус входит в закрытый перечень
func ValidatePaymentStatus(status string) (PaymentStatus, error) {
	switch PaymentStatus(status) {
	case PaymentStatusPending, PaymentStatusPaid, PaymentStatusCanceled:
		return PaymentStatus(status), nil
	}
	return "", exceptions.NewInvalidStatus(status)
}

// ValidatePaymentTransition проверяет переход статуса платежа.
// Политика та же, что и у лизингов: без строгого режима достаточно
// принадлежности перечню.
func ValidatePaymentTransition(from PaymentStatus, to string, strict bool) (PaymentStatus, error) {
	newStatus, err := ValidatePaymentStatus(to)
	if err != nil {
		return "", err
	}
	if !strict {
		return newStatus, nil
	}
	for _, allowed := range PaymentTransitions[from] {
		if allowed == newStatus {
			return newStatus, nil
		}
	}
	return "", exceptions.NewInvalidStatus(to)
}

// Payment представляет платеж по договору лизинга.
// Amount хранится в минимальных единицах валюты.
type Payment struct {
	ID           uint          `gorm:"primaryKey;autoIncrement" json:"id"`
	Amount       int64         `gorm:"not null" json:"amount"`
	CreatedAt    time.Time     `gorm:"column:created_at;default:CURRENT_TIMESTAMP" json:"created_at"`
	Date         time.Time     `gorm:"not null" json:"date"` // Фактическая дата платежа
	Type         string        `gorm:"size:50" json:"type"`
	Status       PaymentStatus `gorm:"type:varchar(50);not null;default:'PENDING'" json:"status"`
	Currency     string        `gorm:"size:10" json:"currency"`
	ExchangeRate int64         `json:"exchange_rate"`
	LeaseID      uint          `gorm:"not null;index" json:"lease"`
	UserID       uint          `gorm:"not null" json:"user"`
}

// TableName возвращает имя таблицы для модели Payment
func (Payment) TableName() string {
	return "payments"
}

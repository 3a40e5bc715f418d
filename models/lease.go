package models

import (
	"errors"
	"time"

	"glik/exceptions"
	"gorm.io/gorm"
)

// LeaseStatus представляет статус лизинга
type LeaseStatus string

const (
	LeaseStatusPendingApproval LeaseStatus = "PENDING_APPROVAL" // Ожидает одобрения
	LeaseStatusActive          LeaseStatus = "ACTIVE"           // Активный лизинг
	LeaseStatusRejected        LeaseStatus = "REJECTED"         // Отклонен
	LeaseStatusCanceled        LeaseStatus = "CANCELED"         // Отменен
	LeaseStatusFinished        LeaseStatus = "FINISHED"         // Завершен
)

// LeaseType представляет тип договора
type LeaseType string

const (
	LeaseTypeLease    LeaseType = "lease"
	LeaseTypePurchase LeaseType = "purchase"
)

// LeaseWeeksPeriods допустимые сроки лизинга в неделях
var LeaseWeeksPeriods = []int{12, 24, 36, 48}

// LeaseTransitions таблица допустимых переходов статусов.
// REJECTED, CANCELED и FINISHED терминальные.
var LeaseTransitions = map[LeaseStatus][]LeaseStatus{
	LeaseStatusPendingApproval: {LeaseStatusActive, LeaseStatusRejected},
	LeaseStatusActive:          {LeaseStatusCanceled, LeaseStatusFinished},
	LeaseStatusRejected:        {},
	LeaseStatusCanceled:        {},
	LeaseStatusFinished:        {},
}

// ValidateLeaseStatus проверяет, что статус входит в закрытый перечень
func ValidateLeaseStatus(status string) (LeaseStatus, error) {
	switch LeaseStatus(status) {
	case LeaseStatusPendingApproval, LeaseStatusActive, LeaseStatusRejected,
		LeaseStatusCanceled, LeaseStatusFinished:
		return LeaseStatus(status), nil
	}
	return "", exceptions.NewInvalidStatus(status)
}

// ValidateLeaseTransition проверяет переход статуса.
// В обычном режиме проверяется только принадлежность перечню (поведение
// исходной системы), в строгом дополнительно таблица переходов.
func ValidateLeaseTransition(from LeaseStatus, to string, strict bool) (LeaseStatus, error) {
	newStatus, err := ValidateLeaseStatus(to)
	if err != nil {
		return "", err
	}
	if !strict {
		return newStatus, nil
	}
	for _, allowed := range LeaseTransitions[from] {
		if allowed == newStatus {
			return newStatus, nil
		}
	}
	return "", exceptions.NewInvalidStatus(to)
}

// Lease представляет договор лизинга
type Lease struct {
	ID               uint        `gorm:"primaryKey;autoIncrement" json:"id"`
	Status           LeaseStatus `gorm:"type:varchar(50);not null" json:"status"`
	CreatedAt        time.Time   `gorm:"column:created_at;default:CURRENT_TIMESTAMP" json:"created_at"`
	Type             LeaseType   `gorm:"type:varchar(10);not null" json:"type"`
	UserScore        int         `gorm:"not null;default:0" json:"user_score"`
	FullProductPrice int64       `gorm:"not null" json:"full_product_price"`
	InitialFee       int64       `gorm:"not null" json:"initial_fee"`
	MonthlyFee       int64       `gorm:"not null" json:"monthly_fee"`
	FeesNumber       int         `gorm:"not null" json:"fees_number"`
	WeeklyIncome     int64       `gorm:"not null" json:"weekly_income"`
	LeaseReason      string      `gorm:"size:100" json:"lease_reason"`
	UserID           uint        `gorm:"not null" json:"user"`
	User             User        `gorm:"foreignKey:UserID" json:"-"`
	ProductID        uint        `gorm:"not null" json:"product"`
	Product          Product     `gorm:"foreignKey:ProductID" json:"-"`
	AddressID        uint        `gorm:"not null" json:"address"`
	Address          Address     `gorm:"foreignKey:AddressID" json:"-"`
	RiderID          *uint       `json:"rider,omitempty"`
	LoanGrantorID    uint        `gorm:"not null" json:"loan_grantor"`
	LoanGrantor      LoanGrantor `gorm:"foreignKey:LoanGrantorID" json:"-"`
	Payments         []Payment   `gorm:"foreignKey:LeaseID;constraint:OnDelete:CASCADE" json:"payments,omitempty"`
}

// BeforeCreate хук для проверки инвариантов договора
func (l *Lease) BeforeCreate(tx *gorm.DB) error {
	if l.InitialFee > l.FullProductPrice {
		return errors.New("initial fee must not exceed full product price")
	}
	if l.FeesNumber <= 0 {
		return errors.New("fees number must be positive")
	}
	return nil
}

// TableName возвращает имя таблицы для модели Lease
func (Lease) TableName() string {
	return "leases"
}

// LoanGrantor представляет поручителя по договору
type LoanGrantor struct {
	ID             uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	FirstName      string  `gorm:"size:50;not null" json:"first_name"`
	LastName       string  `gorm:"size:50;not null" json:"last_name"`
	Relationship   string  `gorm:"size:50" json:"relationship"`
	PhoneNumber    string  `gorm:"size:50" json:"phone_number"`
	Email          string  `gorm:"size:50" json:"email"`
	AddressRoom    string  `gorm:"size:50" json:"address_room"`
	LandLineNumber string  `gorm:"size:50" json:"land_line_number"`
	CompanyID      uint    `gorm:"not null" json:"company"`
	Company        Company `gorm:"foreignKey:CompanyID" json:"-"`
}

// TableName возвращает имя таблицы для модели LoanGrantor
func (LoanGrantor) TableName() string {
	return "loan_grantors"
}

// PaymentDelay представляет зафиксированную просрочку по договору
type PaymentDelay struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
	FeeNumber int64     `gorm:"not null" json:"fee_number"`
	LeaseID   uint      `gorm:"not null" json:"lease"`
	Lease     Lease     `gorm:"foreignKey:LeaseID" json:"-"`
}

// TableName возвращает имя таблицы для модели PaymentDelay
func (PaymentDelay) TableName() string {
	return "payment_delays"
}

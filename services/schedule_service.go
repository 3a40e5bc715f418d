package services

import (
	"time"

	"glik/exceptions"
	"glik/models"
)

// InstallmentPeriodDays фиксированный интервал между взносами
const InstallmentPeriodDays = 7

// ScheduleView представляет расчетное состояние графика платежей договора
type ScheduleView struct {
	NextPaymentDate  time.Time `json:"next_payment_date"`
	IsDelayed        bool      `json:"is_delayed"`
	TotalPaid        int64     `json:"total_paid"`
	InstallmentsPaid int64     `json:"installments_paid"`
}

// installmentsPaid возвращает число оплаченных взносов после первоначального
// взноса: floor((totalPaid - initialFee) / monthlyFee), не меньше нуля
func installmentsPaid(totalPaid, initialFee, monthlyFee int64) (int64, error) {
	if monthlyFee == 0 {
		return 0, exceptions.NewDivisionByZero("monthly fee")
	}
	n := (totalPaid - initialFee) / monthlyFee
	if n < 0 {
		return 0, nil
	}
	return n, nil
}

// NextPaymentDate возвращает дату следующего платежа по договору.
// Пока первоначальный взнос не набран, платеж считается ожидаемым прямо
// сейчас: возвращается now. Это упрощение, а не настоящий график; учет
// числа просрочек остается за PaymentDelay.
func NextPaymentDate(lease *models.Lease, payments []models.Payment, now time.Time) (time.Time, error) {
	completionDate := InitialFeeCompletionDate(payments, lease.InitialFee)
	if completionDate == nil {
		return now, nil
	}
	paid, err := installmentsPaid(TotalPaid(payments), lease.InitialFee, lease.MonthlyFee)
	if err != nil {
		return time.Time{}, err
	}
	return completionDate.AddDate(0, 0, InstallmentPeriodDays*int(paid)), nil
}

// IsDelayed возвращает true, если дата следующего платежа уже прошла
func IsDelayed(lease *models.Lease, payments []models.Payment, now time.Time) (bool, error) {
	next, err := NextPaymentDate(lease, payments, now)
	if err != nil {
		return false, err
	}
	return next.Before(now), nil
}

// Schedule собирает расчетное представление графика. Чистая функция от
// полей договора, списка платежей и момента времени: повторный вызов на
// тех же данных дает тот же результат.
func Schedule(lease *models.Lease, payments []models.Payment, now time.Time) (*ScheduleView, error) {
	next, err := NextPaymentDate(lease, payments, now)
	if err != nil {
		return nil, err
	}
	totalPaid := TotalPaid(payments)
	var paid int64
	if InitialFeeCompletionDate(payments, lease.InitialFee) != nil {
		paid, err = installmentsPaid(totalPaid, lease.InitialFee, lease.MonthlyFee)
		if err != nil {
			return nil, err
		}
	}
	return &ScheduleView{
		NextPaymentDate:  next,
		IsDelayed:        next.Before(now),
		TotalPaid:        totalPaid,
		InstallmentsPaid: paid,
	}, nil
}

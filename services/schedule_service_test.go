package services

import (
	"testing"

	"glik/exceptions"
	"glik/models"
)

func testLease(initialFee, monthlyFee int64) *models.Lease {
	return &models.Lease{
		Status:           models.LeaseStatusActive,
		FullProductPrice: 1000,
		InitialFee:       initialFee,
		MonthlyFee:       monthlyFee,
		FeesNumber:       12,
	}
}

func TestNextPaymentDateAfterInitialFee(t *testing.T) {
	lease := testLease(100, 50)
	payments := []models.Payment{
		paymentAt(100, models.PaymentStatusPaid, 0),
	}

	// Взнос набран первым платежом, взносов после него нет:
	// следующий платеж ожидается в дату набора взноса
	next, err := NextPaymentDate(lease, payments, day(10))
	if err != nil {
		t.Fatal(err)
	}
	if !next.Equal(day(0)) {
		t.Errorf("next = %v, want %v", next, day(0))
	}
}

func TestNextPaymentDateShiftsPerInstallment(t *testing.T) {
	lease := testLease(100, 50)
	payments := []models.Payment{
		paymentAt(100, models.PaymentStatusPaid, 0),
		paymentAt(50, models.PaymentStatusPaid, 7),
	}

	// Один оплаченный взнос сдвигает дату на неделю от даты набора взноса
	next, err := NextPaymentDate(lease, payments, day(10))
	if err != nil {
		t.Fatal(err)
	}
	if !next.Equal(day(7)) {
		t.Errorf("next = %v, want %v", next, day(7))
	}
}

func TestNextPaymentDateFallsBackToNow(t *testing.T) {
	lease := testLease(100, 50)
	now := day(3)

	// Взнос не набран: платеж ожидается прямо сейчас
	next, err := NextPaymentDate(lease, nil, now)
	if err != nil {
		t.Fatal(err)
	}
	if !next.Equal(now) {
		t.Errorf("next = %v, want %v", next, now)
	}

	// И договор при этом не считается просроченным
	delayed, err := IsDelayed(lease, nil, now)
	if err != nil {
		t.Fatal(err)
	}
	if delayed {
		t.Error("lease without payments must not be delayed")
	}
}

func TestNextPaymentDateZeroMonthlyFee(t *testing.T) {
	lease := testLease(100, 0)
	payments := []models.Payment{
		paymentAt(100, models.PaymentStatusPaid, 0),
	}

	_, err := NextPaymentDate(lease, payments, day(10))
	if err == nil {
		t.Fatal("expected error for zero monthly fee")
	}
	if exceptions.KindOf(err) != exceptions.KindDivisionByZero {
		t.Errorf("error kind = %q, want %q", exceptions.KindOf(err), exceptions.KindDivisionByZero)
	}
}

func TestNextPaymentDateZeroMonthlyFeeBeforeCompletion(t *testing.T) {
	// Деление не выполняется, пока взнос не набран,
	// поэтому нулевой взнос здесь не ошибка
	lease := testLease(100, 0)
	now := day(3)

	next, err := NextPaymentDate(lease, nil, now)
	if err != nil {
		t.Fatal(err)
	}
	if !next.Equal(now) {
		t.Errorf("next = %v, want %v", next, now)
	}
}

func TestIsDelayed(t *testing.T) {
	lease := testLease(100, 50)
	payments := []models.Payment{
		paymentAt(100, models.PaymentStatusPaid, 0),
	}

	delayed, err := IsDelayed(lease, payments, day(10))
	if err != nil {
		t.Fatal(err)
	}
	if !delayed {
		t.Error("expected delayed lease")
	}

	delayed, err = IsDelayed(lease, payments, day(0))
	if err != nil {
		t.Fatal(err)
	}
	if delayed {
		t.Error("lease is not delayed on the due date itself")
	}
}

func TestScheduleView(t *testing.T) {
	lease := testLease(100, 50)
	payments := []models.Payment{
		paymentAt(100, models.PaymentStatusPaid, 0),
		paymentAt(50, models.PaymentStatusPaid, 7),
		paymentAt(25, models.PaymentStatusPending, 8),
	}
	now := day(20)

	view, err := Schedule(lease, payments, now)
	if err != nil {
		t.Fatal(err)
	}

	if view.TotalPaid != 150 {
		t.Errorf("TotalPaid = %d, want 150", view.TotalPaid)
	}
	if view.InstallmentsPaid != 1 {
		t.Errorf("InstallmentsPaid = %d, want 1", view.InstallmentsPaid)
	}
	if !view.NextPaymentDate.Equal(day(7)) {
		t.Errorf("NextPaymentDate = %v, want %v", view.NextPaymentDate, day(7))
	}
	if !view.IsDelayed {
		t.Error("expected delayed schedule")
	}
}

func TestScheduleIsIdempotent(t *testing.T) {
	lease := testLease(100, 50)
	payments := []models.Payment{
		paymentAt(100, models.PaymentStatusPaid, 0),
		paymentAt(50, models.PaymentStatusPaid, 7),
	}
	now := day(20)

	first, err := Schedule(lease, payments, now)
	if err != nil {
		t.Fatal(err)
	}
	second, err := Schedule(lease, payments, now)
	if err != nil {
		t.Fatal(err)
	}

	if *first != *second {
		t.Errorf("repeated calls differ: %+v vs %+v", first, second)
	}
}

func TestInstallmentsPaidClampsNegative(t *testing.T) {
	// Оплачено меньше взноса: отрицательных взносов не бывает
	n, err := installmentsPaid(50, 100, 50)
	if err != nil {
		t.Fatal(err)
	}
	if n != 0 {
		t.Errorf("installmentsPaid = %d, want 0", n)
	}
}

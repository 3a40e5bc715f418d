package services

import (
	"testing"
	"time"

	"glik/models"
)

func day(n int) time.Time {
	return time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, n)
}

func paymentAt(amount int64, status models.PaymentStatus, createdDay int) models.Payment {
	return models.Payment{
		Amount:    amount,
		Status:    status,
		CreatedAt: day(createdDay),
		Date:      day(createdDay),
	}
}

func TestTotalPaid(t *testing.T) {
	payments := []models.Payment{
		paymentAt(100, models.PaymentStatusPaid, 0),
		paymentAt(50, models.PaymentStatusPending, 1),
		paymentAt(30, models.PaymentStatusCanceled, 2),
		paymentAt(70, models.PaymentStatusPaid, 3),
	}

	// Считаются только подтвержденные платежи
	if got := TotalPaid(payments); got != 170 {
		t.Errorf("TotalPaid = %d, want 170", got)
	}
}

func TestTotalPaidEmpty(t *testing.T) {
	if got := TotalPaid(nil); got != 0 {
		t.Errorf("TotalPaid(nil) = %d, want 0", got)
	}
}

func TestInitialFeeCompletionDate(t *testing.T) {
	payments := []models.Payment{
		paymentAt(60, models.PaymentStatusPaid, 0),
		paymentAt(100, models.PaymentStatusPending, 1),
		paymentAt(40, models.PaymentStatusPaid, 2),
	}

	// Взнос 100 набирается вторым PAID-платежом, PENDING не учитывается
	got := InitialFeeCompletionDate(payments, 100)
	if got == nil {
		t.Fatal("expected completion date, got nil")
	}
	if !got.Equal(day(2)) {
		t.Errorf("completion date = %v, want %v", got, day(2))
	}
}

func TestInitialFeeCompletionDateNotReached(t *testing.T) {
	payments := []models.Payment{
		paymentAt(60, models.PaymentStatusPaid, 0),
	}

	if got := InitialFeeCompletionDate(payments, 100); got != nil {
		t.Errorf("expected nil, got %v", got)
	}
}

func TestInitialFeeCompletionDateOrdersByCreation(t *testing.T) {
	// Платежи приходят в произвольном порядке, результат зависит
	// только от порядка создания
	payments := []models.Payment{
		paymentAt(40, models.PaymentStatusPaid, 5),
		paymentAt(60, models.PaymentStatusPaid, 0),
	}

	got := InitialFeeCompletionDate(payments, 100)
	if got == nil {
		t.Fatal("expected completion date, got nil")
	}
	if !got.Equal(day(5)) {
		t.Errorf("completion date = %v, want %v", got, day(5))
	}
}

func TestInitialFeeCompletionDateIsMonotonic(t *testing.T) {
	// Более поздний платеж не сдвигает дату набора взноса назад
	payments := []models.Payment{
		paymentAt(60, models.PaymentStatusPaid, 0),
		paymentAt(40, models.PaymentStatusPaid, 2),
	}

	before := InitialFeeCompletionDate(payments, 100)
	if before == nil {
		t.Fatal("expected completion date, got nil")
	}

	later := append(payments, paymentAt(500, models.PaymentStatusPaid, 9))
	after := InitialFeeCompletionDate(later, 100)
	if after == nil {
		t.Fatal("expected completion date, got nil")
	}

	if after.Before(*before) {
		t.Errorf("completion date moved earlier: %v -> %v", before, after)
	}
	if !after.Equal(*before) {
		t.Errorf("completion date changed: %v -> %v", before, after)
	}
}

func TestInitialFeeCompletionDateDoesNotMutateInput(t *testing.T) {
	payments := []models.Payment{
		paymentAt(40, models.PaymentStatusPaid, 5),
		paymentAt(60, models.PaymentStatusPaid, 0),
	}

	InitialFeeCompletionDate(payments, 100)

	if !payments[0].CreatedAt.Equal(day(5)) || !payments[1].CreatedAt.Equal(day(0)) {
		t.Error("input slice was reordered")
	}
}

package services

import (
	"sort"
	"time"

	"glik/models"
)

// Чистые функции над списком платежей договора. Никаких запросов к базе:
// вызывающая сторона передает уже загруженный список, функции не меняют его.

// sortedByCreation возвращает копию списка, упорядоченную по времени создания
func sortedByCreation(payments []models.Payment) []models.Payment {
	sorted := make([]models.Payment, len(payments))
	copy(sorted, payments)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].CreatedAt.Before(sorted[j].CreatedAt)
	})
	return sorted
}

// TotalPaid возвращает сумму всех платежей в статусе PAID
func TotalPaid(payments []models.Payment) int64 {
	var total int64
	for _, p := range payments {
		if p.Status == models.PaymentStatusPaid {
			total += p.Amount
		}
	}
	return total
}

// InitialFeeCompletionDate возвращает дату платежа, на котором накопленная
// сумма PAID-платежей впервые достигла первоначального взноса.
// nil, если взнос еще не набран.
func InitialFeeCompletionDate(payments []models.Payment, initialFee int64) *time.Time {
	var currentSum int64
	for _, p := range sortedByCreation(payments) {
		if p.Status != models.PaymentStatusPaid {
			continue
		}
		currentSum += p.Amount
		if currentSum >= initialFee {
			date := p.Date
			return &date
		}
	}
	return nil
}

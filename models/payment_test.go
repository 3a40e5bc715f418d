package models

import (
	"testing"

	"glik/exceptions"
)

func TestValidatePaymentStatus(t *testing.T) {
	for _, status := range []string{"PENDING", "PAID", "CANCELED"} {
		if _, err := ValidatePaymentStatus(status); err != nil {
			t.Errorf("ValidatePaymentStatus(%q) = %v", status, err)
		}
	}

	_, err := ValidatePaymentStatus("OVERDUE")
	if err == nil {
		t.Fatal("expected error for unknown status")
	}
	if exceptions.KindOf(err) != exceptions.KindInvalidStatus {
		t.Errorf("error kind = %q, want %q", exceptions.KindOf(err), exceptions.KindInvalidStatus)
	}
}

func TestValidatePaymentTransitionStrict(t *testing.T) {
	if _, err := ValidatePaymentTransition(PaymentStatusPending, "PAID", true); err != nil {
		t.Errorf("PENDING -> PAID: unexpected error %v", err)
	}
	if _, err := ValidatePaymentTransition(PaymentStatusPending, "CANCELED", true); err != nil {
		t.Errorf("PENDING -> CANCELED: unexpected error %v", err)
	}

	// PAID и CANCELED терминальные
	if _, err := ValidatePaymentTransition(PaymentStatusPaid, "PENDING", true); err == nil {
		t.Error("PAID -> PENDING: expected error")
	}
	if _, err := ValidatePaymentTransition(PaymentStatusCanceled, "PAID", true); err == nil {
		t.Error("CANCELED -> PAID: expected error")
	}
}

func TestValidatePaymentTransitionPermissive(t *testing.T) {
	got, err := ValidatePaymentTransition(PaymentStatusPaid, "PENDING", false)
	if err != nil {
		t.Fatal(err)
	}
	if got != PaymentStatusPending {
		t.Errorf("got %q, want %q", got, PaymentStatusPending)
	}
}

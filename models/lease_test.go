package models

import (
	"net/http"
	"reflect"
	"strings"
	"testing"

	"glik/exceptions"
)

func TestValidateLeaseStatus(t *testing.T) {
	for _, status := range []string{"PENDING_APPROVAL", "ACTIVE", "REJECTED", "CANCELED", "FINISHED"} {
		if _, err := ValidateLeaseStatus(status); err != nil {
			t.Errorf("ValidateLeaseStatus(%q) = %v", status, err)
		}
	}
}

func TestValidateLeaseStatusUnknown(t *testing.T) {
	_, err := ValidateLeaseStatus("NOT_A_STATUS")
	if err == nil {
		t.Fatal("expected error for unknown status")
	}
	if exceptions.KindOf(err) != exceptions.KindInvalidStatus {
		t.Errorf("error kind = %q, want %q", exceptions.KindOf(err), exceptions.KindInvalidStatus)
	}
	if exceptions.StatusCodeOf(err) != http.StatusBadRequest {
		t.Errorf("status code = %d, want %d", exceptions.StatusCodeOf(err), http.StatusBadRequest)
	}
}

func TestValidateLeaseTransitionPermissive(t *testing.T) {
	// Без строгого режима любой допустимый статус проходит,
	// даже из терминального состояния
	got, err := ValidateLeaseTransition(LeaseStatusRejected, "ACTIVE", false)
	if err != nil {
		t.Fatal(err)
	}
	if got != LeaseStatusActive {
		t.Errorf("got %q, want %q", got, LeaseStatusActive)
	}
}

func TestValidateLeaseTransitionStrict(t *testing.T) {
	cases := []struct {
		from    LeaseStatus
		to      string
		allowed bool
	}{
		{LeaseStatusPendingApproval, "ACTIVE", true},
		{LeaseStatusPendingApproval, "REJECTED", true},
		{LeaseStatusPendingApproval, "FINISHED", false},
		{LeaseStatusActive, "CANCELED", true},
		{LeaseStatusActive, "FINISHED", true},
		{LeaseStatusActive, "PENDING_APPROVAL", false},
		{LeaseStatusRejected, "ACTIVE", false},
		{LeaseStatusFinished, "ACTIVE", false},
	}

	for _, c := range cases {
		_, err := ValidateLeaseTransition(c.from, c.to, true)
		if c.allowed && err != nil {
			t.Errorf("%s -> %s: unexpected error %v", c.from, c.to, err)
		}
		if !c.allowed && err == nil {
			t.Errorf("%s -> %s: expected error", c.from, c.to)
		}
	}
}

func TestValidateLeaseTransitionUnknownTarget(t *testing.T) {
	// Неизвестный статус отклоняется в обоих режимах
	if _, err := ValidateLeaseTransition(LeaseStatusActive, "NOT_A_STATUS", false); err == nil {
		t.Error("permissive mode accepted unknown status")
	}
	if _, err := ValidateLeaseTransition(LeaseStatusActive, "NOT_A_STATUS", true); err == nil {
		t.Error("strict mode accepted unknown status")
	}
}

func TestLeasePaymentsCascadeOnDelete(t *testing.T) {
	// Платежи принадлежат договору и удаляются вместе с ним.
	// Каскад объявлен на стороне связи, где gorm его и читает.
	field, ok := reflect.TypeOf(Lease{}).FieldByName("Payments")
	if !ok {
		t.Fatal("Lease has no Payments field")
	}
	if !strings.Contains(field.Tag.Get("gorm"), "OnDelete:CASCADE") {
		t.Error("Payments association must declare OnDelete:CASCADE")
	}
}

func TestLeaseTransitionsTableIsComplete(t *testing.T) {
	// Каждый статус присутствует в таблице, терминальные с пустыми списками
	for _, status := range []LeaseStatus{
		LeaseStatusPendingApproval, LeaseStatusActive, LeaseStatusRejected,
		LeaseStatusCanceled, LeaseStatusFinished,
	} {
		if _, ok := LeaseTransitions[status]; !ok {
			t.Errorf("status %q missing from transitions table", status)
		}
	}
	for _, terminal := range []LeaseStatus{LeaseStatusRejected, LeaseStatusCanceled, LeaseStatusFinished} {
		if len(LeaseTransitions[terminal]) != 0 {
			t.Errorf("terminal status %q has outgoing transitions", terminal)
		}
	}
}

package exceptions

import (
	"errors"
	"net/http"
	"testing"
)

func TestMissingDocumentsMessage(t *testing.T) {
	err := NewMissingDocuments([]string{"CI", "PASSPORT"})

	want := "You need one of the following documents: CI, PASSPORT."
	if err.Error() != want {
		t.Errorf("message = %q, want %q", err.Error(), want)
	}
	if len(err.Group) != 2 {
		t.Errorf("group size = %d, want 2", len(err.Group))
	}
}

func TestInvalidStatusNamesValue(t *testing.T) {
	err := NewInvalidStatus("NOT_A_STATUS")

	want := "Invalid status: NOT_A_STATUS"
	if err.Error() != want {
		t.Errorf("message = %q, want %q", err.Error(), want)
	}
}

func TestKindOf(t *testing.T) {
	if KindOf(NewNotFound("Lease")) != KindNotFound {
		t.Error("wrong kind for not found error")
	}
	if KindOf(NewMissingDocuments([]string{"RIF"})) != KindMissingDocuments {
		t.Error("wrong kind for missing documents error")
	}
	if KindOf(errors.New("plain")) != "" {
		t.Error("plain error must have empty kind")
	}
}

func TestStatusCodeOf(t *testing.T) {
	cases := []struct {
		err  error
		code int
	}{
		{NewInvalidStatus("X"), http.StatusBadRequest},
		{NewNotFound("Lease"), http.StatusNotFound},
		{NewDivisionByZero("monthly fee"), http.StatusUnprocessableEntity},
		{NewInvalidUserType(), http.StatusBadRequest},
		{NewMissingDocuments([]string{"RIF"}), http.StatusBadRequest},
		{errors.New("plain"), http.StatusInternalServerError},
	}

	for _, c := range cases {
		if got := StatusCodeOf(c.err); got != c.code {
			t.Errorf("StatusCodeOf(%v) = %d, want %d", c.err, got, c.code)
		}
	}
}

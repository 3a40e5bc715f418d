package services

import (
	"strings"
	"testing"

	"glik/exceptions"
	"glik/models"
)

func documentsOf(types ...models.DocumentType) []models.UserDocument {
	docs := make([]models.UserDocument, len(types))
	for i, t := range types {
		docs[i] = models.UserDocument{Type: t}
	}
	return docs
}

func TestNewDocumentSetSkipsDeleted(t *testing.T) {
	docs := []models.UserDocument{
		{Type: models.DocumentCI},
		{Type: models.DocumentRIF, IsDeleted: true},
	}

	set := NewDocumentSet(docs)
	if !set[models.DocumentCI] {
		t.Error("CI must be in the set")
	}
	if set[models.DocumentRIF] {
		t.Error("deleted RIF must not be in the set")
	}
}

func TestCanCreateLeaseNaturalComplete(t *testing.T) {
	set := NewDocumentSet(documentsOf(
		models.DocumentCI,
		models.DocumentRIF,
		models.DocumentServiceStatement,
		models.DocumentWorkStatement,
	))

	if err := CanCreateLease(models.UserTypeNatural, true, set); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestCanCreateLeaseNaturalAlternatives(t *testing.T) {
	// Паспорт заменяет CI, вид на жительство заменяет справку о услугах
	set := NewDocumentSet(documentsOf(
		models.DocumentPassport,
		models.DocumentRIF,
		models.DocumentResidencePermit,
		models.DocumentWorkStatement,
	))

	if err := CanCreateLease(models.UserTypeNatural, true, set); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestCanCreateLeaseNaturalMissingGroup(t *testing.T) {
	set := NewDocumentSet(documentsOf(models.DocumentCI))

	err := CanCreateLease(models.UserTypeNatural, true, set)
	if err == nil {
		t.Fatal("expected missing documents error")
	}
	if exceptions.KindOf(err) != exceptions.KindMissingDocuments {
		t.Fatalf("error kind = %q, want %q", exceptions.KindOf(err), exceptions.KindMissingDocuments)
	}

	// Первая неудовлетворенная строка матрицы это RIF
	if !strings.Contains(err.Error(), "RIF") {
		t.Errorf("error %q does not name the missing group", err.Error())
	}
}

func TestCanCreateLeaseNaturalNotCustomer(t *testing.T) {
	set := NewDocumentSet(documentsOf(
		models.DocumentCI,
		models.DocumentRIF,
		models.DocumentServiceStatement,
		models.DocumentWorkStatement,
	))

	err := CanCreateLease(models.UserTypeNatural, false, set)
	if err == nil {
		t.Fatal("expected error for user outside CUSTOMER group")
	}
	if err.Error() != "User is not a customer" {
		t.Errorf("error = %q", err.Error())
	}
}

func TestCanCreateLeaseJuridic(t *testing.T) {
	set := NewDocumentSet(documentsOf(
		models.DocumentCommercialRegister,
		models.DocumentRIF,
		models.DocumentCI,
	))

	// Для юридических лиц группа CUSTOMER не требуется
	if err := CanCreateLease(models.UserTypeJuridic, false, set); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestCanCreateLeaseJuridicMissingGroup(t *testing.T) {
	set := NewDocumentSet(documentsOf(models.DocumentRIF, models.DocumentCI))

	err := CanCreateLease(models.UserTypeJuridic, false, set)
	if err == nil {
		t.Fatal("expected missing documents error")
	}
	if !strings.Contains(err.Error(), string(models.DocumentCommercialRegister)) {
		t.Errorf("error %q does not name the missing group", err.Error())
	}
}

func TestCanCreateLeaseUnknownType(t *testing.T) {
	err := CanCreateLease(models.UserType("alien"), true, DocumentSet{})
	if err == nil {
		t.Fatal("expected invalid user type error")
	}
	if exceptions.KindOf(err) != exceptions.KindInvalidUserType {
		t.Errorf("error kind = %q, want %q", exceptions.KindOf(err), exceptions.KindInvalidUserType)
	}
}

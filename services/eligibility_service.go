package services

import (
	"glik/exceptions"
	"glik/models"
)

// DocumentSet представляет активный набор типов документов пользователя
type DocumentSet map[models.DocumentType]bool

// NewDocumentSet собирает набор типов из активных (не удаленных) документов
func NewDocumentSet(documents []models.UserDocument) DocumentSet {
	set := make(DocumentSet, len(documents))
	for _, d := range documents {
		if !d.IsDeleted {
			set[d.Type] = true
		}
	}
	return set
}

// ValidateDocuments проверяет набор документов по матрице требований:
// в каждой строке матрицы должен найтись хотя бы один тип из набора.
// Первая неудовлетворенная строка возвращается в ошибке.
func ValidateDocuments(set DocumentSet, matrix [][]models.DocumentType) error {
	for _, group := range matrix {
		haveOne := false
		for _, doc := range group {
			if set[doc] {
				haveOne = true
				break
			}
		}
		if !haveOne {
			names := make([]string, len(group))
			for i, doc := range group {
				names[i] = string(doc)
			}
			return exceptions.NewMissingDocuments(names)
		}
	}
	return nil
}

// CanCreateLease решает, может ли пользователь создать договор лизинга.
// Для физических лиц дополнительно требуется группа CUSTOMER,
// для юридических лиц проверка группы не выполняется.
func CanCreateLease(userType models.UserType, isCustomer bool, set DocumentSet) error {
	switch userType {
	case models.UserTypeNatural:
		if !isCustomer {
			return exceptions.NewBadRequest("User is not a customer")
		}
		return ValidateDocuments(set, models.DocumentsNeededForPersonalLease)
	case models.UserTypeJuridic:
		return ValidateDocuments(set, models.DocumentsNeededForJuridicLease)
	default:
		return exceptions.NewInvalidUserType()
	}
}

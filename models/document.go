package models

import (
	"time"
)

// DocumentType представляет тип документа пользователя
type DocumentType string

const (
	DocumentCI                   DocumentType = "CI"
	DocumentRIF                  DocumentType = "RIF"
	DocumentPassport             DocumentType = "PASSPORT"
	DocumentDriverLicense        DocumentType = "DRIVER_LICENSE"
	DocumentServiceStatement     DocumentType = "SERVICE_STATEMENT"
	DocumentResidencePermit      DocumentType = "RESIDENCE_PERMIT"
	DocumentBankAccountStatement DocumentType = "BANK_ACCOUNT_STATEMENT"
	DocumentPayroll              DocumentType = "PAYROLL"
	DocumentCommercialRegister   DocumentType = "COMMERCIAL_REGISTER"
	DocumentConstitutiveDocument DocumentType = "CONSTITUTIVE_DOCUMENT"
	DocumentOther                DocumentType = "OTHER"
	DocumentWorkStatement        DocumentType = "WORK_STATEMENT"
)

// DocumentTypes закрытый перечень типов документов
var DocumentTypes = []DocumentType{
	DocumentCI, DocumentRIF, DocumentPassport, DocumentDriverLicense,
	DocumentServiceStatement, DocumentResidencePermit, DocumentBankAccountStatement,
	DocumentPayroll, DocumentCommercialRegister, DocumentConstitutiveDocument,
	DocumentOther, DocumentWorkStatement,
}

// IsValidDocumentType проверяет принадлежность перечню типов
func IsValidDocumentType(t string) bool {
	for _, dt := range DocumentTypes {
		if DocumentType(t) == dt {
			return true
		}
	}
	return false
}

// Матрицы требований: у пользователя должен быть хотя бы один документ
// из каждой строки.
var (
	DocumentsNeededForPersonalLease = [][]DocumentType{
		{DocumentCI, DocumentPassport},
		{DocumentRIF},
		{DocumentServiceStatement, DocumentResidencePermit},
		{DocumentWorkStatement},
	}
	DocumentsNeededForJuridicLease = [][]DocumentType{
		{DocumentCommercialRegister, DocumentConstitutiveDocument},
		{DocumentRIF},
		{DocumentCI},
	}
)

// UserDocument представляет загруженный документ пользователя.
// Файл хранится в объектном хранилище по ключу StorageKey.
type UserDocument struct {
	ID         uint         `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID     uint         `gorm:"not null;index" json:"user"`
	CreatedAt  time.Time    `gorm:"column:created_at;default:CURRENT_TIMESTAMP" json:"created_at"`
	Name       string       `gorm:"size:75;not null" json:"name"`
	Type       DocumentType `gorm:"type:varchar(50);not null" json:"type"`
	IsDeleted  bool         `gorm:"not null;default:false" json:"is_deleted"`
	StorageKey string       `gorm:"size:200;not null" json:"-"`
}

// TableName возвращает имя таблицы для модели UserDocument
func (UserDocument) TableName() string {
	return "user_documents"
}

package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"glik/exceptions"
	"glik/models"

	"gorm.io/gorm"
)

// DocumentService предоставляет методы для работы с документами пользователей
type DocumentService struct {
	db      *gorm.DB
	storage *StorageService
}

// NewDocumentService создает новый экземпляр DocumentService
func NewDocumentService(db *gorm.DB, storage *StorageService) *DocumentService {
	return &DocumentService{db: db, storage: storage}
}

// internalName строит имя документа вида <userID>_<TYPE>_<n>,
// где n это порядковый номер документа этого типа у пользователя,
// включая удаленные, чтобы имена не повторялись
func (s *DocumentService) internalName(userID uint, docType models.DocumentType) (string, error) {
	var count int64
	if err := s.db.Model(&models.UserDocument{}).
		Where("user_id = ? AND type = ?", userID, docType).
		Count(&count).Error; err != nil {
		return "", err
	}
	return fmt.Sprintf("%d_%s_%d", userID, docType, count+1), nil
}

// Upload загружает документ в хранилище и регистрирует его в базе
func (s *DocumentService) Upload(ctx context.Context, userID uint, docType, contentType string, content []byte) (*models.UserDocument, error) {
	if !models.IsValidDocumentType(docType) {
		return nil, exceptions.NewBadRequest("unknown document type: " + docType)
	}
	if len(content) == 0 {
		return nil, exceptions.NewBadRequest("document content is empty")
	}

	name, err := s.internalName(userID, models.DocumentType(docType))
	if err != nil {
		return nil, err
	}

	storageKey := fmt.Sprintf("documents/%d/%s", userID, name)
	if s.storage != nil {
		if _, err := s.storage.Upload(ctx, storageKey, content, contentType); err != nil {
			return nil, err
		}
	}

	document := &models.UserDocument{
		UserID:     userID,
		Name:       name,
		Type:       models.DocumentType(docType),
		StorageKey: storageKey,
	}
	if err := s.db.Create(document).Error; err != nil {
		return nil, err
	}
	return document, nil
}

// GetActiveDocuments возвращает активные (не удаленные) документы пользователя
func (s *DocumentService) GetActiveDocuments(userID uint) ([]models.UserDocument, error) {
	var documents []models.UserDocument
	if err := s.db.Where("user_id = ? AND is_deleted = ?", userID, false).
		Order("created_at ASC").Find(&documents).Error; err != nil {
		return nil, err
	}
	return documents, nil
}

// Delete помечает документ удаленным. Файл в хранилище остается,
// регуляторные требования не позволяют уничтожать KYC-документы сразу.
func (s *DocumentService) Delete(documentID, userID uint) error {
	var document models.UserDocument
	if err := s.db.Where("id = ? AND user_id = ?", documentID, userID).
		First(&document).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return exceptions.NewNotFound("Document")
		}
		return err
	}
	return s.db.Model(&document).Update("is_deleted", true).Error
}

// Restore снимает пометку удаления с документа
func (s *DocumentService) Restore(documentID, userID uint) error {
	var document models.UserDocument
	if err := s.db.Where("id = ? AND user_id = ?", documentID, userID).
		First(&document).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return exceptions.NewNotFound("Document")
		}
		return err
	}
	return s.db.Model(&document).Update("is_deleted", false).Error
}

// DownloadContent возвращает документ вместе с расшифрованным содержимым.
// Доступно только администраторам, фильтра по владельцу нет.
func (s *DocumentService) DownloadContent(ctx context.Context, documentID uint) (*models.UserDocument, []byte, error) {
	var document models.UserDocument
	if err := s.db.First(&document, documentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, exceptions.NewNotFound("Document")
		}
		return nil, nil, err
	}
	if s.storage == nil {
		return nil, nil, exceptions.NewBadRequest("document storage is not configured")
	}
	content, err := s.storage.DownloadDecrypted(ctx, document.StorageKey)
	if err != nil {
		return nil, nil, err
	}
	return &document, content, nil
}

// DownloadURL возвращает временную ссылку на скачивание документа
func (s *DocumentService) DownloadURL(ctx context.Context, documentID, userID uint) (string, error) {
	var document models.UserDocument
	if err := s.db.Where("id = ? AND user_id = ? AND is_deleted = ?", documentID, userID, false).
		First(&document).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", exceptions.NewNotFound("Document")
		}
		return "", err
	}
	if s.storage == nil {
		return "", exceptions.NewBadRequest("document storage is not configured")
	}
	return s.storage.PresignedURL(ctx, document.StorageKey, 15*time.Minute)
}

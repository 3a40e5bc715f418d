package controllers

import (
	"io"
	"net/http"
	"strconv"

	"glik/middleware"
	"glik/models"
	"glik/services"

	"github.com/gorilla/mux"
)

// Лимит размера загружаемого документа
const maxDocumentSize = 10 << 20 // 10 MB

// DocumentController обрабатывает запросы, связанные с документами
type DocumentController struct {
	documentService *services.DocumentService
	userService     *services.UserService
}

// NewDocumentController создает новый экземпляр DocumentController
func NewDocumentController(documentService *services.DocumentService, userService *services.UserService) *DocumentController {
	return &DocumentController{
		documentService: documentService,
		userService:     userService,
	}
}

// UploadDocument обрабатывает загрузку документа.
// Тип документа передается в multipart-поле "type", файл в поле "file".
func (c *DocumentController) UploadDocument(w http.ResponseWriter, r *http.Request) {
	userID, _, err := middleware.GetUserFromContext(r)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	if err := r.ParseMultipartForm(maxDocumentSize); err != nil {
		http.Error(w, "Invalid multipart form", http.StatusBadRequest)
		return
	}

	docType := r.FormValue("type")
	file, header, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "File is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	content, err := io.ReadAll(io.LimitReader(file, maxDocumentSize))
	if err != nil {
		http.Error(w, "Failed to read file", http.StatusBadRequest)
		return
	}

	document, err := c.documentService.Upload(r.Context(), userID, docType, header.Header.Get("Content-Type"), content)
	if err != nil {
		httpError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, document)
}

// GetDocuments обрабатывает запрос на список активных документов
func (c *DocumentController) GetDocuments(w http.ResponseWriter, r *http.Request) {
	userID, _, err := middleware.GetUserFromContext(r)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	documents, err := c.documentService.GetActiveDocuments(userID)
	if err != nil {
		httpError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, documents)
}

// DeleteDocument обрабатывает мягкое удаление документа
func (c *DocumentController) DeleteDocument(w http.ResponseWriter, r *http.Request) {
	userID, _, err := middleware.GetUserFromContext(r)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	vars := mux.Vars(r)
	documentID, err := strconv.ParseUint(vars["id"], 10, 32)
	if err != nil {
		http.Error(w, "Invalid document ID", http.StatusBadRequest)
		return
	}

	if err := c.documentService.Delete(uint(documentID), userID); err != nil {
		httpError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// RestoreDocument обрабатывает восстановление удаленного документа
func (c *DocumentController) RestoreDocument(w http.ResponseWriter, r *http.Request) {
	userID, _, err := middleware.GetUserFromContext(r)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	vars := mux.Vars(r)
	documentID, err := strconv.ParseUint(vars["id"], 10, 32)
	if err != nil {
		http.Error(w, "Invalid document ID", http.StatusBadRequest)
		return
	}

	if err := c.documentService.Restore(uint(documentID), userID); err != nil {
		httpError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "restored"})
}

// GetDocumentURL обрабатывает запрос на временную ссылку скачивания
func (c *DocumentController) GetDocumentURL(w http.ResponseWriter, r *http.Request) {
	userID, _, err := middleware.GetUserFromContext(r)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	vars := mux.Vars(r)
	documentID, err := strconv.ParseUint(vars["id"], 10, 32)
	if err != nil {
		http.Error(w, "Invalid document ID", http.StatusBadRequest)
		return
	}

	url, err := c.documentService.DownloadURL(r.Context(), uint(documentID), userID)
	if err != nil {
		httpError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"url": url})
}

// DownloadDocumentContent отдает расшифрованное содержимое документа.
// Операция доступна только администраторам, для проверки KYC.
func (c *DocumentController) DownloadDocumentContent(w http.ResponseWriter, r *http.Request) {
	userID, _, err := middleware.GetUserFromContext(r)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	user, err := c.userService.FindById(userID)
	if err != nil || !user.InGroup(models.GroupAdmin) {
		http.Error(w, "Access denied", http.StatusForbidden)
		return
	}

	vars := mux.Vars(r)
	documentID, err := strconv.ParseUint(vars["id"], 10, 32)
	if err != nil {
		http.Error(w, "Invalid document ID", http.StatusBadRequest)
		return
	}

	document, content, err := c.documentService.DownloadContent(r.Context(), uint(documentID))
	if err != nil {
		httpError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/octet-stream")
	w.Header().Set("Content-Disposition", "attachment; filename=\""+document.Name+"\"")
	w.WriteHeader(http.StatusOK)
	w.Write(content)
}

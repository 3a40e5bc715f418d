package exceptions

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// ErrorKind определяет вид доменной ошибки
type ErrorKind string

const (
	KindInvalidStatus    ErrorKind = "INVALID_STATUS"
	KindNotFound         ErrorKind = "NOT_FOUND"
	KindDivisionByZero   ErrorKind = "DIVISION_BY_ZERO"
	KindInvalidUserType  ErrorKind = "INVALID_USER_TYPE"
	KindMissingDocuments ErrorKind = "MISSING_DOCUMENTS"
)

// CustomError представляет доменную ошибку с HTTP-кодом для транспортного слоя
type CustomError struct {
	Kind       ErrorKind
	Message    string
	StatusCode int
}

func (e *CustomError) Error() string {
	return e.Message
}

// NewInvalidStatus создает ошибку недопустимого статуса
func NewInvalidStatus(status string) *CustomError {
	return &CustomError{
		Kind:       KindInvalidStatus,
		Message:    fmt.Sprintf("Invalid status: %s", status),
		StatusCode: http.StatusBadRequest,
	}
}

// NewNotFound создает ошибку отсутствующей сущности
func NewNotFound(entity string) *CustomError {
	return &CustomError{
		Kind:       KindNotFound,
		Message:    entity + " not found",
		StatusCode: http.StatusNotFound,
	}
}

// NewDivisionByZero создает ошибку деления на ноль при расчете графика
func NewDivisionByZero(field string) *CustomError {
	return &CustomError{
		Kind:       KindDivisionByZero,
		Message:    fmt.Sprintf("Division by zero: %s is 0", field),
		StatusCode: http.StatusUnprocessableEntity,
	}
}

// NewBadRequest создает ошибку бизнес-правила без отдельного вида
func NewBadRequest(message string) *CustomError {
	return &CustomError{
		Message:    message,
		StatusCode: http.StatusBadRequest,
	}
}

// NewInvalidUserType создает ошибку неизвестного типа пользователя
func NewInvalidUserType() *CustomError {
	return &CustomError{
		Kind:       KindInvalidUserType,
		Message:    "User type is not valid",
		StatusCode: http.StatusBadRequest,
	}
}

// MissingDocumentsError дополнительно несет группу документов, которой не хватило
type MissingDocumentsError struct {
	CustomError
	Group []string
}

// NewMissingDocuments создает ошибку по первой неудовлетворенной группе матрицы
func NewMissingDocuments(group []string) *MissingDocumentsError {
	return &MissingDocumentsError{
		CustomError: CustomError{
			Kind:       KindMissingDocuments,
			Message:    "You need one of the following documents: " + strings.Join(group, ", ") + ".",
			StatusCode: http.StatusBadRequest,
		},
		Group: group,
	}
}

// KindOf возвращает вид доменной ошибки, пустая строка для посторонних ошибок
func KindOf(err error) ErrorKind {
	var ce *CustomError
	if errors.As(err, &ce) {
		return ce.Kind
	}
	var me *MissingDocumentsError
	if errors.As(err, &me) {
		return me.Kind
	}
	return ""
}

// StatusCodeOf возвращает HTTP-код доменной ошибки, 500 для посторонних ошибок
func StatusCodeOf(err error) int {
	var ce *CustomError
	if errors.As(err, &ce) {
		return ce.StatusCode
	}
	var me *MissingDocumentsError
	if errors.As(err, &me) {
		return me.StatusCode
	}
	return http.StatusInternalServerError
}

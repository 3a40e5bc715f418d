package utils

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"time"
)

var (
	InfoLogger   *log.Logger
	ErrorLogger  *log.Logger
	AccessLogger *log.Logger
)

func init() {
	// Директория логов переопределяется переменной окружения
	logDir := os.Getenv("LOG_DIR")
	if logDir == "" {
		logDir = "logs"
	}
	if err := os.MkdirAll(logDir, 0755); err != nil {
		log.Fatal("Failed to create log directory:", err)
	}

	// Открываем файлы для логирования
	infoFile, err := os.OpenFile(filepath.Join(logDir, "info.log"), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		log.Fatal("Failed to open info log file:", err)
	}

	errorFile, err := os.OpenFile(filepath.Join(logDir, "error.log"), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		log.Fatal("Failed to open error log file:", err)
	}

	accessFile, err := os.OpenFile(filepath.Join(logDir, "access.log"), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		log.Fatal("Failed to open access log file:", err)
	}

	// Инициализируем логгеры
	InfoLogger = log.New(infoFile, "INFO: ", log.Ldate|log.Ltime|log.Lshortfile)
	ErrorLogger = log.New(errorFile, "ERROR: ", log.Ldate|log.Ltime|log.Lshortfile)
	AccessLogger = log.New(accessFile, "", log.Ldate|log.Ltime)
}

// LogInfo логирует информационное сообщение
func LogInfo(format string, v ...interface{}) {
	_, file, line, _ := runtime.Caller(1)
	InfoLogger.Printf("%s:%d - %s", filepath.Base(file), line, fmt.Sprintf(format, v...))
}

// LogError логирует сообщение об ошибке
func LogError(format string, v ...interface{}) {
	_, file, line, _ := runtime.Caller(1)
	ErrorLogger.Printf("%s:%d - %s", filepath.Base(file), line, fmt.Sprintf(format, v...))
}

// LogRequest логирует HTTP-запрос в access-лог
func LogRequest(method, path, remoteAddr string, status int, duration time.Duration) {
	AccessLogger.Printf("%s %s %s %d %v", remoteAddr, method, path, status, duration)
}

// LogOperation логирует операцию с ее длительностью
func LogOperation(operation string, startTime time.Time, err error) {
	duration := time.Since(startTime)
	if err != nil {
		LogError("Operation %s failed after %v: %v", operation, duration, err)
	} else {
		LogInfo("Operation %s completed in %v", operation, duration)
	}
}

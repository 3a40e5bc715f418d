package main

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"glik/cache"
	"glik/config"
	"glik/controllers"
	"glik/database"
	"glik/middleware"
	"glik/monitoring"
	"glik/services"

	"github.com/gorilla/mux"
)

// healthHandler отдает состояние API
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

func main() {
	// Инициализируем конфигурацию
	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("Ошибка загрузки конфигурации: %v", err)
	}

	// Инициализируем подключение к базе данных
	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Ошибка подключения к базе данных: %v", err)
	}
	if err := database.SeedGroups(db); err != nil {
		log.Fatalf("Ошибка создания групп: %v", err)
	}

	// Инициализируем кеш. Без Redis работаем, но без кеша.
	if err := cache.Init(cfg.Redis.Addr, cfg.Redis.Password); err != nil {
		log.Printf("Redis недоступен, кеш отключен: %v", err)
	}

	// Инициализируем сервис email
	emailService := services.NewEmailService(cfg)

	// Инициализируем хранилище документов
	storageService, err := services.NewStorageService(cfg)
	if err != nil {
		log.Printf("Хранилище документов недоступно: %v", err)
		storageService = nil
	}

	// Инициализируем сервисы
	userService := services.NewUserService(db, emailService, []byte(cfg.JWT.SecretKey))
	leaseService := services.NewLeaseService(db, emailService, cfg.LeaseStrictTransitions)
	paymentService := services.NewPaymentService(db, emailService, cfg.PaymentStrictTransitions)
	documentService := services.NewDocumentService(db, storageService)
	productService := services.NewProductService(db)

	// Запускаем проверку просрочек
	delayScheduler := services.NewDelaySchedulerService(db, emailService,
		time.Duration(cfg.DelayCheckInterval)*time.Minute)
	delayScheduler.Start()
	log.Println("Проверка просрочек запущена")

	// Запускаем сервер мониторинга
	monitoring.NewServer(db, cfg.Server.MonitoringPort).Start()

	// Создаем роутер
	router := mux.NewRouter()
	router.Use(middleware.RecoveryMiddleware)
	router.Use(middleware.CORSMiddleware)
	router.Use(middleware.RateLimitMiddleware)
	router.Use(middleware.LoggingMiddleware)

	// Инициализируем контроллеры
	authController := controllers.NewAuthController(userService, cfg)
	leaseController := controllers.NewLeaseController(leaseService, userService)
	paymentController := controllers.NewPaymentController(paymentService, leaseService, userService)
	documentController := controllers.NewDocumentController(documentService, userService)
	productController := controllers.NewProductController(productService, userService)
	userController := controllers.NewUserController(userService)

	// Публичные маршруты
	router.HandleFunc("/api/health", healthHandler).Methods("GET")
	router.HandleFunc("/api/auth/signUp", authController.SignUp).Methods("POST")
	router.HandleFunc("/api/auth/signIn", authController.SignIn).Methods("POST")
	router.HandleFunc("/api/auth/forgotPassword", authController.ForgotPassword).Methods("POST")
	router.HandleFunc("/api/auth/resetPassword", authController.ResetPassword).Methods("POST")
	router.HandleFunc("/api/products", productController.GetProducts).Methods("GET")
	router.HandleFunc("/api/products/{id}", productController.GetProduct).Methods("GET")

	// Защищенные маршруты
	protected := router.PathPrefix("/api").Subrouter()
	protected.Use(middleware.AuthMiddleware([]byte(cfg.JWT.SecretKey)))

	// Маршруты для работы с договорами
	protected.HandleFunc("/leases", leaseController.CreateLease).Methods("POST")
	protected.HandleFunc("/leases", leaseController.GetLeases).Methods("GET")
	protected.HandleFunc("/leases/{id}", leaseController.GetLease).Methods("GET")
	protected.HandleFunc("/leases/{id}/schedule", leaseController.GetLeaseSchedule).Methods("GET")
	protected.HandleFunc("/leases/{id}/status", leaseController.UpdateLeaseStatus).Methods("PATCH")

	// Маршруты для работы с платежами
	protected.HandleFunc("/leases/{id}/payments", paymentController.CreatePayment).Methods("POST")
	protected.HandleFunc("/leases/{id}/payments", paymentController.GetPayments).Methods("GET")
	protected.HandleFunc("/payments/{id}/status", paymentController.UpdatePaymentStatus).Methods("PATCH")

	// Маршруты для работы с документами
	protected.HandleFunc("/documents", documentController.UploadDocument).Methods("POST")
	protected.HandleFunc("/documents", documentController.GetDocuments).Methods("GET")
	protected.HandleFunc("/documents/{id}", documentController.DeleteDocument).Methods("DELETE")
	protected.HandleFunc("/documents/{id}/restore", documentController.RestoreDocument).Methods("POST")
	protected.HandleFunc("/documents/{id}/url", documentController.GetDocumentURL).Methods("GET")
	protected.HandleFunc("/documents/{id}/content", documentController.DownloadDocumentContent).Methods("GET")

	// Маршруты профиля и адресов
	protected.HandleFunc("/users/me", userController.GetProfile).Methods("GET")
	protected.HandleFunc("/users/me/addresses", userController.CreateAddress).Methods("POST")
	protected.HandleFunc("/users/me/addresses", userController.GetAddresses).Methods("GET")
	protected.HandleFunc("/users/me/addresses/{id}", userController.DeleteAddress).Methods("DELETE")

	// Маршруты каталога для администраторов
	protected.HandleFunc("/products", productController.CreateProduct).Methods("POST")
	protected.HandleFunc("/products/{id}/stock", productController.UpdateStock).Methods("PATCH")

	// Запускаем сервер
	port := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Printf("Сервер запущен на порту %s", port)
	if err := http.ListenAndServe(port, router); err != nil {
		log.Fatalf("Ошибка запуска сервера: %v", err)
	}
}

package middleware

import (
	"net/http"
	"strconv"
	"time"

	"glik/utils"

	"github.com/rs/cors"
)

var (
	// Глобальный rate limiter, 100 запросов в минуту с одного адреса
	globalLimiter = utils.NewRateLimiter(100, time.Minute)
)

type LoggingResponseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (lrw *LoggingResponseWriter) WriteHeader(code int) {
	lrw.statusCode = code
	lrw.ResponseWriter.WriteHeader(code)
}

// LoggingMiddleware пишет запрос в access-лог и метрики
func LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		// Создаем обертку для ResponseWriter
		lrw := &LoggingResponseWriter{
			ResponseWriter: w,
			statusCode:     http.StatusOK,
		}

		next.ServeHTTP(lrw, r)

		duration := time.Since(start)
		utils.LogRequest(r.Method, r.URL.Path, r.RemoteAddr, lrw.statusCode, duration)
		utils.RequestsTotal.WithLabelValues(r.Method, r.URL.Path, strconv.Itoa(lrw.statusCode)).Inc()
		utils.RequestDuration.WithLabelValues(r.Method, r.URL.Path).Observe(duration.Seconds())
	})
}

// RateLimitMiddleware ограничивает частоту запросов по адресу клиента
func RateLimitMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		clientIP := r.RemoteAddr

		if !globalLimiter.Allow(clientIP) {
			w.Header().Set("Retry-After", globalLimiter.RetryAfter(clientIP).Format(time.RFC1123))
			http.Error(w, "Too many requests", http.StatusTooManyRequests)
			return
		}

		// Добавляем заголовки с информацией о лимитах
		w.Header().Set("X-RateLimit-Limit", "100")
		w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(globalLimiter.Remaining(clientIP)))

		next.ServeHTTP(w, r)
	})
}

// RecoveryMiddleware перехватывает паники обработчиков
func RecoveryMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				utils.LogError("Panic recovered: %v", err)
				http.Error(w, "Internal server error", http.StatusInternalServerError)
			}
		}()
		next.ServeHTTP(w, r)
	})
}

// CORSMiddleware настраивает CORS для API
func CORSMiddleware(next http.Handler) http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization", "X-Requested-With"},
		AllowCredentials: false,
	})
	return c.Handler(next)
}

package monitoring

import (
	"fmt"
	"log"
	"net/http"

	"glik/cache"
	"glik/database"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"
)

// Server отдает служебные ручки на отдельном порту,
// чтобы не выставлять их наружу вместе с API
type Server struct {
	engine *gin.Engine
	db     *gorm.DB
	port   int
}

// NewServer создает новый экземпляр Server
func NewServer(db *gorm.DB, port int) *Server {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())

	s := &Server{
		engine: engine,
		db:     db,
		port:   port,
	}

	engine.GET("/health", s.health)
	engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return s
}

// health отдает состояние зависимостей сервиса
func (s *Server) health(c *gin.Context) {
	dbOK := database.IsHealthy(s.db)
	redisOK := cache.IsHealthy()

	status := http.StatusOK
	if !dbOK {
		status = http.StatusServiceUnavailable
	}

	c.JSON(status, gin.H{
		"status":   map[bool]string{true: "ok", false: "degraded"}[dbOK],
		"database": dbOK,
		"redis":    redisOK,
	})
}

// Start запускает сервер мониторинга в отдельной горутине
func (s *Server) Start() {
	go func() {
		addr := fmt.Sprintf(":%d", s.port)
		log.Printf("Сервер мониторинга запущен на порту %s", addr)
		if err := s.engine.Run(addr); err != nil {
			log.Printf("Ошибка сервера мониторинга: %v", err)
		}
	}()
}

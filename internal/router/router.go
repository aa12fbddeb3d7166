package router

import (
	"net/http"
	"time"

	"github.com/academy-uk/placement-exam/internal/config"
	"github.com/academy-uk/placement-exam/internal/handler"
	"github.com/academy-uk/placement-exam/internal/middleware"
	"github.com/academy-uk/placement-exam/internal/response"
	"github.com/academy-uk/placement-exam/internal/service"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Exam *handler.ExamHandler
	WS   *handler.WSHandler
}

// SetupRouter configures all Gin route groups with appropriate middlewares.
func SetupRouter(
	tokenService *service.TokenService,
	handlers *Handlers,
	cfg *config.Config,
) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	router := gin.Default()

	// ─── CORS ──────────────────────────────────────────────────────────
	// If AllowedOrigins is set in config, restrict to that list;
	// otherwise allow all (*) so dev works without extra config.
	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"}
	corsConfig.ExposeHeaders = []string{"X-Request-ID"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	// Apply request ID middleware globally so every response includes metadata.
	router.Use(response.RequestIDMiddleware())

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{"status": "ok"})
	})

	// Rate limiter for exam starts (10 per minute per IP).
	startLimiter := middleware.NewRateLimiter(10, time.Minute)

	// ─── 1. Public Group (No Token) ────────────────────────────────────
	examAPI := router.Group("/api/v1/exam")
	{
		examAPI.GET("/paper", handlers.Exam.GetPaper)
		examAPI.POST("/start", startLimiter.Middleware(), handlers.Exam.StartExam)
	}

	// ─── 2. Session Group (Session Token) ──────────────────────────────
	sessionAPI := router.Group("/api/v1/exam")
	sessionAPI.Use(middleware.RequireSessionToken(tokenService))
	{
		sessionAPI.PUT("/answers", handlers.Exam.SaveAnswers)
		sessionAPI.GET("/state", middleware.NoStore(), handlers.Exam.GetState)
		sessionAPI.POST("/submit", handlers.Exam.SubmitExam)
		sessionAPI.GET("/result", middleware.NoStore(), handlers.Exam.GetResult)
	}

	// ─── 3. WebSocket Group (Session WS Auth) ──────────────────────────
	ws := router.Group("/ws/v1")
	ws.Use(middleware.RequireSessionWSAuth(tokenService))
	{
		ws.GET("/exam/stream", handlers.WS.TimerStream)
	}

	return router
}

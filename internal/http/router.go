package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"saju-mbti/internal/service"
)

// Pinger es lo minimo que /healthz necesita del pool de Postgres.
type Pinger interface {
	Ping(ctx context.Context) error
}

// NewRouter configura el router de Gin con middlewares y rutas.
func NewRouter(
	logger *zap.Logger,
	limiter service.RateLimiter,
	trustedProxies []string,
	db Pinger,
	profileH *ProfileHandler,
	insightH *InsightHandler,
) *gin.Engine {
	r := gin.New()

	// Sin proxies de confianza ClientIP usa la IP del socket e ignora X-Forwarded-For.
	if err := r.SetTrustedProxies(trustedProxies); err != nil {
		logger.Error("invalid trusted proxies, trusting none", zap.Error(err))
		_ = r.SetTrustedProxies(nil)
	}

	// Middlewares basicos: logging, recovery y JSON content-type.
	r.Use(zapLoggerMiddleware(logger), gin.Recovery(), jsonContentTypeMiddleware())

	r.GET("/healthz", healthHandler(logger, db))

	api := r.Group("")
	api.Use(RateLimitMiddleware(limiter))

	api.GET("/pillars/:date", insightH.Pillars)

	profiles := api.Group("/profiles")
	profiles.POST("", profileH.CreateProfile)
	profiles.GET("/:id", profileH.GetProfile)
	profiles.DELETE("/:id", profileH.DeleteProfile)
	profiles.GET("/:id/daily", profileH.Daily)
	profiles.GET("/:id/calendar", profileH.Calendar)
	profiles.POST("/:id/compatibility", profileH.Compatibility)
	profiles.PUT("/:id/reflections/:date", profileH.SaveReflection)
	profiles.GET("/:id/reflections", profileH.ListReflections)
	profiles.DELETE("/:id/reflections/:date", profileH.DeleteReflection)

	compat := api.Group("/compatibility")
	compat.POST("", insightH.Compare)
	compat.POST("/share", insightH.Share)
	compat.GET("/shared/:token", insightH.GetShared)
	compat.DELETE("/shared/:token", insightH.RevokeShared)

	api.GET("/quiz/questions", insightH.QuizQuestions)
	api.POST("/quiz/score", insightH.QuizScore)
	api.GET("/types/:code", insightH.DescribeType)

	return r
}

func healthHandler(logger *zap.Logger, db Pinger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if db == nil {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
			return
		}
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := db.Ping(ctx); err != nil {
			logger.Warn("health check failed", zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}

// zapLoggerMiddleware crea un middleware simple de logging con zap.
func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		latency := time.Since(start)
		logger.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", latency),
			zap.String("client_ip", c.ClientIP()),
		)
	}
}

// jsonContentTypeMiddleware fuerza Content-Type: application/json en responses.
func jsonContentTypeMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Content-Type", "application/json")
		c.Next()
	}
}

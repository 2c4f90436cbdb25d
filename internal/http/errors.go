package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"saju-mbti/internal/bazi"
	"saju-mbti/internal/mbti"
	"saju-mbti/internal/service"
)

// badRequestErrors son errores de entrada: se devuelven con detalle al cliente.
var badRequestErrors = []error{
	bazi.ErrInvalidDate,
	bazi.ErrUnknownElement,
	bazi.ErrUnknownPolarity,
	mbti.ErrUnknownTypeCode,
	service.ErrInvalidInput,
	service.ErrInvalidTimezone,
	service.ErrQuizInvalidAnswer,
	service.ErrQuizIncomplete,
}

// writeError traduce errores de servicio a respuestas HTTP.
func writeError(c *gin.Context, logger *zap.Logger, msg string, err error) {
	for _, target := range badRequestErrors {
		if errors.Is(err, target) {
			c.JSON(http.StatusBadRequest, gin.H{"error": msg, "detail": err.Error()})
			return
		}
	}
	switch {
	case errors.Is(err, service.ErrProfileNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "profile not found"})
	case errors.Is(err, service.ErrReflectionNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "reflection not found"})
	case errors.Is(err, service.ErrShareExpired):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "share link expired"})
	case errors.Is(err, service.ErrShareInvalid):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid share link"})
	default:
		logger.Error(msg, zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": msg})
	}
}

package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"saju-mbti/internal/engine"
	"saju-mbti/internal/service"
)

// InsightHandler expone las consultas que no dependen de un perfil guardado.
type InsightHandler struct {
	logger   *zap.Logger
	insights *service.InsightService
	shares   *service.ShareService
	quiz     *service.QuizService
}

func NewInsightHandler(
	logger *zap.Logger,
	insights *service.InsightService,
	shares *service.ShareService,
	quiz *service.QuizService,
) *InsightHandler {
	return &InsightHandler{
		logger:   logger,
		insights: insights,
		shares:   shares,
		quiz:     quiz,
	}
}

type pairRequest struct {
	A service.PersonInput `json:"a" binding:"required"`
	B service.PersonInput `json:"b" binding:"required"`
}

// Pillars maneja GET /pillars/:date.
func (h *InsightHandler) Pillars(c *gin.Context) {
	info, err := h.insights.Pillars(c.Param("date"))
	if err != nil {
		writeError(c, h.logger, "could not resolve pillars", err)
		return
	}
	c.JSON(http.StatusOK, info)
}

// Compare maneja POST /compatibility.
func (h *InsightHandler) Compare(c *gin.Context) {
	var req pairRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid compatibility request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	report, err := h.insights.Compare(req.A, req.B)
	if err != nil {
		writeError(c, h.logger, "could not compute compatibility", err)
		return
	}
	c.JSON(http.StatusOK, report)
}

// Share maneja POST /compatibility/share. Valida el par antes de firmar.
func (h *InsightHandler) Share(c *gin.Context) {
	var req pairRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid share request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	report, err := h.insights.Compare(req.A, req.B)
	if err != nil {
		writeError(c, h.logger, "could not compute compatibility", err)
		return
	}
	link, err := h.shares.Create(req.A, req.B)
	if err != nil {
		writeError(c, h.logger, "could not create share link", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"token":         link.Token,
		"id":            link.ID,
		"expires_at":    link.ExpiresAt,
		"overall_score": report.OverallScore,
		"label":         report.Label,
	})
}

type sharedResponse struct {
	A      service.PersonInput        `json:"a"`
	B      service.PersonInput        `json:"b"`
	Report engine.CompatibilityReport `json:"report"`
}

// GetShared maneja GET /compatibility/shared/:token.
func (h *InsightHandler) GetShared(c *gin.Context) {
	claims, err := h.shares.Resolve(c.Param("token"))
	if err != nil {
		writeError(c, h.logger, "could not resolve share link", err)
		return
	}
	report, err := h.insights.Compare(claims.PersonA, claims.PersonB)
	if err != nil {
		writeError(c, h.logger, "could not compute compatibility", err)
		return
	}
	c.JSON(http.StatusOK, sharedResponse{A: claims.PersonA, B: claims.PersonB, Report: report})
}

// RevokeShared maneja DELETE /compatibility/shared/:token.
func (h *InsightHandler) RevokeShared(c *gin.Context) {
	if err := h.shares.Revoke(c.Param("token")); err != nil {
		writeError(c, h.logger, "could not revoke share link", err)
		return
	}
	c.Status(http.StatusNoContent)
}

// QuizQuestions maneja GET /quiz/questions.
func (h *InsightHandler) QuizQuestions(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"questions": h.quiz.Questions()})
}

// QuizScore maneja POST /quiz/score.
func (h *InsightHandler) QuizScore(c *gin.Context) {
	var req struct {
		Answers []service.QuizAnswer `json:"answers" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid quiz request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	result, err := h.quiz.Score(req.Answers)
	if err != nil {
		writeError(c, h.logger, "could not score quiz", err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// DescribeType maneja GET /types/:code.
func (h *InsightHandler) DescribeType(c *gin.Context) {
	typ, desc, err := h.quiz.Describe(c.Param("code"))
	if err != nil {
		writeError(c, h.logger, "could not describe type", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"type": typ, "description": desc})
}

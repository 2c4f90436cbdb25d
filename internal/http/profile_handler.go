package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"saju-mbti/internal/service"
)

type ProfileHandler struct {
	logger      *zap.Logger
	profiles    *service.ProfileService
	insights    *service.InsightService
	reflections *service.ReflectionService
}

func NewProfileHandler(
	logger *zap.Logger,
	profiles *service.ProfileService,
	insights *service.InsightService,
	reflections *service.ReflectionService,
) *ProfileHandler {
	return &ProfileHandler{
		logger:      logger,
		profiles:    profiles,
		insights:    insights,
		reflections: reflections,
	}
}

// CreateProfile maneja POST /profiles.
func (h *ProfileHandler) CreateProfile(c *gin.Context) {
	var req struct {
		DisplayName string `json:"display_name"`
		MBTIType    string `json:"mbti_type" binding:"required"`
		BirthDate   string `json:"birth_date" binding:"required"`
		Timezone    string `json:"timezone"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid create profile request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	profile, err := h.profiles.CreateProfile(c.Request.Context(), service.CreateProfileInput{
		DisplayName: req.DisplayName,
		MBTIType:    req.MBTIType,
		BirthDate:   req.BirthDate,
		Timezone:    req.Timezone,
	})
	if err != nil {
		writeError(c, h.logger, "could not create profile", err)
		return
	}
	c.JSON(http.StatusCreated, profile)
}

// GetProfile maneja GET /profiles/:id.
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	profile, err := h.profiles.GetProfile(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, h.logger, "could not load profile", err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

// DeleteProfile maneja DELETE /profiles/:id.
func (h *ProfileHandler) DeleteProfile(c *gin.Context) {
	if err := h.profiles.DeleteProfile(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, h.logger, "could not delete profile", err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Daily maneja GET /profiles/:id/daily?date=YYYY-MM-DD.
func (h *ProfileHandler) Daily(c *gin.Context) {
	insight, err := h.insights.Daily(c.Request.Context(), c.Param("id"), c.Query("date"))
	if err != nil {
		writeError(c, h.logger, "could not build daily message", err)
		return
	}
	c.JSON(http.StatusOK, insight)
}

// Calendar maneja GET /profiles/:id/calendar?year=&month=.
func (h *ProfileHandler) Calendar(c *gin.Context) {
	year, errY := strconv.Atoi(c.Query("year"))
	month, errM := strconv.Atoi(c.Query("month"))
	if errY != nil || errM != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "year and month are required"})
		return
	}
	cal, err := h.insights.Calendar(c.Request.Context(), c.Param("id"), year, month)
	if err != nil {
		writeError(c, h.logger, "could not build calendar", err)
		return
	}
	c.JSON(http.StatusOK, cal)
}

// Compatibility maneja POST /profiles/:id/compatibility.
func (h *ProfileHandler) Compatibility(c *gin.Context) {
	var partner service.PersonInput
	if err := c.ShouldBindJSON(&partner); err != nil {
		h.logger.Warn("invalid compatibility request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	report, err := h.insights.CompareWithProfile(c.Request.Context(), c.Param("id"), partner)
	if err != nil {
		writeError(c, h.logger, "could not compute compatibility", err)
		return
	}
	c.JSON(http.StatusOK, report)
}

// SaveReflection maneja PUT /profiles/:id/reflections/:date.
func (h *ProfileHandler) SaveReflection(c *gin.Context) {
	var req struct {
		Note string `json:"note" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid reflection request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	ref, err := h.reflections.Save(c.Request.Context(), c.Param("id"), c.Param("date"), req.Note)
	if err != nil {
		writeError(c, h.logger, "could not save reflection", err)
		return
	}
	c.JSON(http.StatusOK, ref)
}

// ListReflections maneja GET /profiles/:id/reflections?limit=.
func (h *ProfileHandler) ListReflections(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit"})
			return
		}
		limit = n
	}
	refs, err := h.reflections.List(c.Request.Context(), c.Param("id"), limit)
	if err != nil {
		writeError(c, h.logger, "could not list reflections", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"reflections": refs})
}

// DeleteReflection maneja DELETE /profiles/:id/reflections/:date.
func (h *ProfileHandler) DeleteReflection(c *gin.Context) {
	if err := h.reflections.Delete(c.Request.Context(), c.Param("id"), c.Param("date")); err != nil {
		writeError(c, h.logger, "could not delete reflection", err)
		return
	}
	c.Status(http.StatusNoContent)
}

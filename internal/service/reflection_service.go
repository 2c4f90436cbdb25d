package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"saju-mbti/internal/bazi"
	"saju-mbti/internal/domain"
	"saju-mbti/internal/repository"
)

var (
	ErrReflectionNotFound             = errors.New("reflection not found")
	ErrReflectionServiceNotConfigured = errors.New("reflection service not configured")
)

const (
	maxNoteLength       = 2000
	defaultReflections  = 30
	maxReflectionsLimit = 366
)

// ReflectionService guarda notas diarias junto con el mensaje de ese dia.
type ReflectionService struct {
	logger      *zap.Logger
	reflections repository.ReflectionRepository
	insights    *InsightService
	now         func() time.Time
}

func NewReflectionService(logger *zap.Logger, reflections repository.ReflectionRepository, insights *InsightService) *ReflectionService {
	return &ReflectionService{
		logger:      logger,
		reflections: reflections,
		insights:    insights,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// Save crea o reemplaza la reflexion del dia.
func (s *ReflectionService) Save(ctx context.Context, profileID, date, note string) (domain.Reflection, error) {
	if s == nil || s.reflections == nil || s.insights == nil {
		return domain.Reflection{}, ErrReflectionServiceNotConfigured
	}
	note = strings.TrimSpace(note)
	if note == "" || len([]rune(note)) > maxNoteLength {
		return domain.Reflection{}, fmt.Errorf("%w: note must have 1-%d characters", ErrInvalidInput, maxNoteLength)
	}
	day, err := bazi.ParseDate(date)
	if err != nil {
		return domain.Reflection{}, err
	}

	daily, err := s.insights.Daily(ctx, profileID, day.String())
	if err != nil {
		return domain.Reflection{}, err
	}

	reflection := domain.Reflection{
		ID:             uuid.NewString(),
		ProfileID:      strings.TrimSpace(profileID),
		Date:           day.String(),
		Note:           note,
		DayDescription: daily.TodayEnergy,
		MainMessage:    daily.MainMessage,
		EnergyLevel:    daily.EnergyLevel,
		Luck:           daily.Luck,
		Element:        daily.TodayElement.String(),
		Polarity:       daily.TodayPolarity.String(),
		BestFor:        daily.BestFor,
		WatchOutFor:    daily.WatchOutFor,
		SavedAt:        s.now(),
	}
	id, err := s.reflections.Upsert(ctx, reflection)
	if err != nil {
		return domain.Reflection{}, err
	}
	reflection.ID = id
	if s.logger != nil {
		s.logger.Info("reflection saved", zap.String("profile_id", reflection.ProfileID), zap.String("date", reflection.Date))
	}
	return reflection, nil
}

// List devuelve las reflexiones del perfil, mas recientes primero.
func (s *ReflectionService) List(ctx context.Context, profileID string, limit int) ([]domain.Reflection, error) {
	if s == nil || s.reflections == nil || s.insights == nil {
		return nil, ErrReflectionServiceNotConfigured
	}
	if _, err := s.insights.profiles.GetProfile(ctx, profileID); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = defaultReflections
	}
	if limit > maxReflectionsLimit {
		limit = maxReflectionsLimit
	}
	items, err := s.reflections.ListByProfile(ctx, strings.TrimSpace(profileID), limit)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []domain.Reflection{}
	}
	return items, nil
}

func (s *ReflectionService) Delete(ctx context.Context, profileID, date string) error {
	if s == nil || s.reflections == nil || s.insights == nil {
		return ErrReflectionServiceNotConfigured
	}
	if _, err := s.insights.profiles.GetProfile(ctx, profileID); err != nil {
		return err
	}
	day, err := bazi.ParseDate(date)
	if err != nil {
		return err
	}
	err = s.reflections.Delete(ctx, strings.TrimSpace(profileID), day.String())
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrReflectionNotFound
	}
	return err
}

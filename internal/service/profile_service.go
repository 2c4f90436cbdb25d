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
	"saju-mbti/internal/engine"
	"saju-mbti/internal/mbti"
	"saju-mbti/internal/repository"
)

var (
	ErrProfileNotFound             = errors.New("profile not found")
	ErrProfileServiceNotConfigured = errors.New("profile service not configured")
	ErrInvalidTimezone             = errors.New("invalid timezone")
	ErrInvalidInput                = errors.New("invalid input")
)

const maxDisplayName = 80

// ProfileService crea perfiles con la carta de nacimiento ya resuelta.
type ProfileService struct {
	logger    *zap.Logger
	profiles  repository.ProfileRepository
	resolver  *bazi.Resolver
	defaultTZ string
	now       func() time.Time
}

func NewProfileService(logger *zap.Logger, profiles repository.ProfileRepository, resolver *bazi.Resolver, defaultTZ string) *ProfileService {
	if resolver == nil {
		resolver = bazi.NewResolver(logger, nil)
	}
	if strings.TrimSpace(defaultTZ) == "" {
		defaultTZ = "UTC"
	}
	return &ProfileService{
		logger:    logger,
		profiles:  profiles,
		resolver:  resolver,
		defaultTZ: defaultTZ,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

type CreateProfileInput struct {
	DisplayName string
	MBTIType    string
	BirthDate   string
	Timezone    string
}

// CreateProfile valida tipo, fecha y zona, resuelve los pilares y persiste el perfil.
func (s *ProfileService) CreateProfile(ctx context.Context, input CreateProfileInput) (domain.Profile, error) {
	if s == nil || s.profiles == nil {
		return domain.Profile{}, ErrProfileServiceNotConfigured
	}

	typ, err := mbti.ParseType(input.MBTIType)
	if err != nil {
		return domain.Profile{}, err
	}
	birth, err := bazi.ParseDate(input.BirthDate)
	if err != nil {
		return domain.Profile{}, err
	}
	tz := strings.TrimSpace(input.Timezone)
	if tz == "" {
		tz = s.defaultTZ
	}
	if _, err := time.LoadLocation(tz); err != nil {
		return domain.Profile{}, fmt.Errorf("%w: %q", ErrInvalidTimezone, tz)
	}
	displayName := strings.TrimSpace(input.DisplayName)
	if len([]rune(displayName)) > maxDisplayName {
		return domain.Profile{}, fmt.Errorf("%w: display name too long", ErrInvalidInput)
	}

	day, err := s.resolver.Pillar(birth)
	if err != nil {
		return domain.Profile{}, err
	}
	year, err := s.resolver.YearPillar(birth)
	if err != nil {
		return domain.Profile{}, err
	}

	profile := domain.Profile{
		ID:            uuid.NewString(),
		DisplayName:   displayName,
		MBTIType:      typ.String(),
		BirthDate:     birth.String(),
		Timezone:      tz,
		BirthStem:     day.Stem.String(),
		BirthBranch:   day.Branch.String(),
		BirthElement:  day.Element.String(),
		BirthPolarity: day.Polarity.String(),
		YearStem:      year.Stem.String(),
		YearBranch:    year.Branch.String(),
		YearAnimal:    year.Animal,
		CreatedAt:     s.now(),
	}
	if err := s.profiles.Create(ctx, profile); err != nil {
		return domain.Profile{}, err
	}

	if s.logger != nil {
		s.logger.Info("profile created",
			zap.String("profile_id", profile.ID),
			zap.String("pillar", day.Label()),
			zap.String("provider", s.resolver.ProviderName()),
		)
	}
	return profile, nil
}

// GetProfile devuelve ErrProfileNotFound para ids inexistentes o mal formados.
func (s *ProfileService) GetProfile(ctx context.Context, id string) (domain.Profile, error) {
	if s == nil || s.profiles == nil {
		return domain.Profile{}, ErrProfileServiceNotConfigured
	}
	if _, err := uuid.Parse(strings.TrimSpace(id)); err != nil {
		return domain.Profile{}, ErrProfileNotFound
	}
	profile, err := s.profiles.GetByID(ctx, strings.TrimSpace(id))
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Profile{}, ErrProfileNotFound
	}
	if err != nil {
		return domain.Profile{}, err
	}
	return profile, nil
}

func (s *ProfileService) DeleteProfile(ctx context.Context, id string) error {
	if s == nil || s.profiles == nil {
		return ErrProfileServiceNotConfigured
	}
	if _, err := uuid.Parse(strings.TrimSpace(id)); err != nil {
		return ErrProfileNotFound
	}
	err := s.profiles.Delete(ctx, strings.TrimSpace(id))
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrProfileNotFound
	}
	return err
}

// ChartOf reconstruye la carta desde las columnas guardadas.
func ChartOf(p domain.Profile) (engine.UserChart, error) {
	typ, err := mbti.ParseType(p.MBTIType)
	if err != nil {
		return engine.UserChart{}, err
	}
	stem, err := bazi.ParseStem(p.BirthStem)
	if err != nil {
		return engine.UserChart{}, err
	}
	branch, err := bazi.ParseBranch(p.BirthBranch)
	if err != nil {
		return engine.UserChart{}, err
	}
	pillar, err := bazi.NewPillar(stem, branch)
	if err != nil {
		return engine.UserChart{}, err
	}
	return engine.UserChart{Type: typ, Birth: pillar}, nil
}

// LocationOf devuelve la zona del perfil o UTC si no se puede cargar.
func LocationOf(p domain.Profile) *time.Location {
	loc, err := time.LoadLocation(p.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

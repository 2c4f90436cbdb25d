package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"saju-mbti/internal/bazi"
	"saju-mbti/internal/engine"
	"saju-mbti/internal/mbti"
)

var ErrInsightServiceNotConfigured = errors.New("insight service not configured")

// displayDateLayout imita "Monday, Jan 2".
const displayDateLayout = "Monday, Jan 2"

// InsightService arma mensajes diarios, calendarios y reportes de compatibilidad.
type InsightService struct {
	logger   *zap.Logger
	engine   *engine.Engine
	profiles *ProfileService
	now      func() time.Time
}

func NewInsightService(logger *zap.Logger, eng *engine.Engine, profiles *ProfileService) *InsightService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &InsightService{
		logger:   logger,
		engine:   eng,
		profiles: profiles,
		now:      time.Now,
	}
}

// PersonInput describe a una persona para compatibilidad: tipo mas fecha de
// nacimiento, o tipo mas elemento y polaridad si no se conoce la fecha.
type PersonInput struct {
	Name      string `json:"name,omitempty"`
	Type      string `json:"type"`
	BirthDate string `json:"birth_date,omitempty"`
	Element   string `json:"element,omitempty"`
	Polarity  string `json:"polarity,omitempty"`
}

// DailyInsight agrega saludo y fecha legible al mensaje del motor.
type DailyInsight struct {
	Greeting string `json:"greeting"`
	Date     string `json:"date"`
	Day      string `json:"day"`
	engine.DailyMessage
}

type PillarInfo struct {
	Date     string          `json:"date"`
	Label    string          `json:"label"`
	Day      bazi.Pillar     `json:"day"`
	Animal   string          `json:"animal"`
	Year     bazi.YearPillar `json:"year"`
	Provider string          `json:"provider"`
}

// Greeting saluda segun la hora local: antes de 12, antes de 17, resto.
func Greeting(hour int) string {
	switch {
	case hour < 12:
		return "Good morning!"
	case hour < 17:
		return "Good afternoon!"
	default:
		return "Good evening!"
	}
}

// Pillars resuelve el pilar del dia y del año para una fecha YYYY-MM-DD.
func (s *InsightService) Pillars(date string) (PillarInfo, error) {
	if err := s.ready(); err != nil {
		return PillarInfo{}, err
	}
	d, err := bazi.ParseDate(date)
	if err != nil {
		return PillarInfo{}, err
	}
	resolver := s.engine.Resolver()
	day, err := resolver.Pillar(d)
	if err != nil {
		return PillarInfo{}, err
	}
	year, err := resolver.YearPillar(d)
	if err != nil {
		return PillarInfo{}, err
	}
	return PillarInfo{
		Date:     d.String(),
		Label:    day.Label(),
		Day:      day,
		Animal:   day.Animal(),
		Year:     year,
		Provider: resolver.ProviderName(),
	}, nil
}

// Daily devuelve el mensaje del perfil para date (vacio = hoy en la zona del perfil).
func (s *InsightService) Daily(ctx context.Context, profileID, date string) (DailyInsight, error) {
	if err := s.ready(); err != nil {
		return DailyInsight{}, err
	}
	profile, err := s.profiles.GetProfile(ctx, profileID)
	if err != nil {
		return DailyInsight{}, err
	}
	chart, err := ChartOf(profile)
	if err != nil {
		return DailyInsight{}, err
	}
	return s.DailyForChart(chart, LocationOf(profile), date)
}

// DailyForChart es Daily sin persistencia; la usa tambien la CLI.
func (s *InsightService) DailyForChart(chart engine.UserChart, loc *time.Location, date string) (DailyInsight, error) {
	if err := s.ready(); err != nil {
		return DailyInsight{}, err
	}
	if loc == nil {
		loc = time.UTC
	}
	now := s.now().In(loc)
	day := bazi.DateOf(now)
	if strings.TrimSpace(date) != "" {
		parsed, err := bazi.ParseDate(date)
		if err != nil {
			return DailyInsight{}, err
		}
		day = parsed
	}

	pillar, err := s.engine.Resolver().Pillar(day)
	if err != nil {
		return DailyInsight{}, err
	}
	msg, err := s.engine.AssembleDailyMessage(chart, pillar)
	if err != nil {
		return DailyInsight{}, err
	}
	s.logger.Debug("daily message assembled",
		zap.String("day", day.String()),
		zap.String("pillar", pillar.Label()),
		zap.String("relationship", msg.Relationship.String()),
		zap.String("provider", s.engine.Resolver().ProviderName()),
	)
	return DailyInsight{
		Greeting:     Greeting(now.Hour()),
		Date:         day.Time().Format(displayDateLayout),
		Day:          day.String(),
		DailyMessage: msg,
	}, nil
}

// Calendar devuelve el calendario de energia del mes para el perfil.
func (s *InsightService) Calendar(ctx context.Context, profileID string, year, month int) (engine.Month, error) {
	if err := s.ready(); err != nil {
		return engine.Month{}, err
	}
	profile, err := s.profiles.GetProfile(ctx, profileID)
	if err != nil {
		return engine.Month{}, err
	}
	chart, err := ChartOf(profile)
	if err != nil {
		return engine.Month{}, err
	}
	return s.engine.MonthCalendar(chart, year, month)
}

// Compare calcula la compatibilidad entre dos personas sueltas.
func (s *InsightService) Compare(a, b PersonInput) (engine.CompatibilityReport, error) {
	if err := s.ready(); err != nil {
		return engine.CompatibilityReport{}, err
	}
	pa, err := s.PersonProfile(a)
	if err != nil {
		return engine.CompatibilityReport{}, fmt.Errorf("person a: %w", err)
	}
	pb, err := s.PersonProfile(b)
	if err != nil {
		return engine.CompatibilityReport{}, fmt.Errorf("person b: %w", err)
	}
	return s.engine.Aggregate(pa, pb)
}

// CompareWithProfile compara un perfil guardado con una pareja.
func (s *InsightService) CompareWithProfile(ctx context.Context, profileID string, partner PersonInput) (engine.CompatibilityReport, error) {
	if err := s.ready(); err != nil {
		return engine.CompatibilityReport{}, err
	}
	profile, err := s.profiles.GetProfile(ctx, profileID)
	if err != nil {
		return engine.CompatibilityReport{}, err
	}
	chart, err := ChartOf(profile)
	if err != nil {
		return engine.CompatibilityReport{}, err
	}
	pb, err := s.PersonProfile(partner)
	if err != nil {
		return engine.CompatibilityReport{}, fmt.Errorf("partner: %w", err)
	}
	return s.engine.Aggregate(engine.ProfileFromPillar(chart.Type, chart.Birth), pb)
}

// PersonProfile resuelve el elemento desde la fecha de nacimiento, o usa el
// elemento y la polaridad dados explicitamente.
func (s *InsightService) PersonProfile(in PersonInput) (engine.PersonProfile, error) {
	typ, err := mbti.ParseType(in.Type)
	if err != nil {
		return engine.PersonProfile{}, err
	}
	if strings.TrimSpace(in.BirthDate) != "" {
		d, err := bazi.ParseDate(in.BirthDate)
		if err != nil {
			return engine.PersonProfile{}, err
		}
		p, err := s.engine.Resolver().Pillar(d)
		if err != nil {
			return engine.PersonProfile{}, err
		}
		return engine.ProfileFromPillar(typ, p), nil
	}
	if strings.TrimSpace(in.Element) == "" {
		return engine.PersonProfile{}, fmt.Errorf("%w: birth_date or element required", ErrInvalidInput)
	}
	el, err := bazi.ParseElement(in.Element)
	if err != nil {
		return engine.PersonProfile{}, err
	}
	pol, err := bazi.ParsePolarity(in.Polarity)
	if err != nil {
		return engine.PersonProfile{}, err
	}
	return engine.PersonProfile{Type: typ, Element: el, Polarity: pol}, nil
}

func (s *InsightService) ready() error {
	if s == nil || s.engine == nil || s.engine.Tables() == nil {
		return ErrInsightServiceNotConfigured
	}
	return nil
}

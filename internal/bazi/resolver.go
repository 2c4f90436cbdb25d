package bazi

import (
	"fmt"
	"time"

	"go.uber.org/zap"
)

// Provider es una fuente externa de pilares (ej. una libreria astronomica).
// Puede fallar; el Resolver nunca propaga sus errores.
type Provider interface {
	Name() string
	DayPillar(d Date) (Pillar, error)
	YearPillar(d Date) (YearPillar, error)
}

// Resolver resuelve pilares usando el proveedor si existe y la formula
// deterministica como respaldo.
type Resolver struct {
	logger   *zap.Logger
	provider Provider
}

// NewResolver crea un Resolver. provider puede ser nil.
func NewResolver(logger *zap.Logger, provider Provider) *Resolver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Resolver{logger: logger, provider: provider}
}

// ProviderName devuelve "builtin" cuando no hay proveedor externo.
func (r *Resolver) ProviderName() string {
	if r == nil || r.provider == nil {
		return "builtin"
	}
	return r.provider.Name()
}

// Pillar devuelve el pilar del dia d.
func (r *Resolver) Pillar(d Date) (Pillar, error) {
	if err := d.Validate(); err != nil {
		return Pillar{}, err
	}
	if r != nil && r.provider != nil {
		p, err := r.providerDay(d)
		if err == nil {
			return p, nil
		}
		r.logger.Warn("pillar provider failed, using fallback",
			zap.String("provider", r.provider.Name()),
			zap.String("date", d.String()),
			zap.Error(err),
		)
	}
	return ResolvePillar(d.Year, d.Month, d.Day)
}

// YearPillar devuelve el pilar del año de nacimiento para la fecha d.
// El respaldo usa el año calendario (sin corte de año nuevo lunar).
func (r *Resolver) YearPillar(d Date) (YearPillar, error) {
	if err := d.Validate(); err != nil {
		return YearPillar{}, err
	}
	if r != nil && r.provider != nil {
		yp, err := r.providerYear(d)
		if err == nil {
			return yp, nil
		}
		r.logger.Warn("year pillar provider failed, using fallback",
			zap.String("provider", r.provider.Name()),
			zap.String("date", d.String()),
			zap.Error(err),
		)
	}
	return ResolveYearPillar(d.Year)
}

// Today resuelve el pilar de la fecha local de now.
func (r *Resolver) Today(now time.Time) (Pillar, error) {
	return r.Pillar(DateOf(now))
}

func (r *Resolver) providerDay(d Date) (p Pillar, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("%w: panic: %v", ErrProviderFailure, rec)
		}
	}()
	raw, err := r.provider.DayPillar(d)
	if err != nil {
		return Pillar{}, fmt.Errorf("%w: %v", ErrProviderFailure, err)
	}
	// Elemento y polaridad salen siempre de la tabla local de troncos.
	p, err = NewPillar(raw.Stem, raw.Branch)
	if err != nil {
		return Pillar{}, fmt.Errorf("%w: %v", ErrProviderFailure, err)
	}
	return p, nil
}

func (r *Resolver) providerYear(d Date) (yp YearPillar, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("%w: panic: %v", ErrProviderFailure, rec)
		}
	}()
	raw, err := r.provider.YearPillar(d)
	if err != nil {
		return YearPillar{}, fmt.Errorf("%w: %v", ErrProviderFailure, err)
	}
	if _, err := NewPillar(raw.Stem, raw.Branch); err != nil {
		return YearPillar{}, fmt.Errorf("%w: %v", ErrProviderFailure, err)
	}
	return YearPillar{Stem: raw.Stem, Branch: raw.Branch, Animal: raw.Branch.Animal()}, nil
}
